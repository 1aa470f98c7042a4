package clubs

import (
	"context"
	"errors"

	"publicsquare/internal/domain"
	"publicsquare/internal/repository"
)

type ClubStore interface {
	Create(ctx context.Context, c *domain.Club) error
	GetByID(ctx context.Context, id int64) (*domain.Club, error)
	List(ctx context.Context, skip, limit int) ([]domain.Club, error)
	Update(ctx context.Context, c *domain.Club) error
	Delete(ctx context.Context, id int64) error
	AddMember(ctx context.Context, clubID, userID int64, role domain.ClubRole) (*domain.ClubMember, error)
	RemoveMember(ctx context.Context, clubID, userID int64) (bool, error)
	GetMember(ctx context.Context, clubID, userID int64) (*domain.ClubMember, error)
	ListMembers(ctx context.Context, clubID int64) ([]domain.ClubMember, error)
	CountMembers(ctx context.Context, clubID int64) (int64, error)
}

type Service struct {
	clubs  ClubStore
	events Publisher
}

func NewService(clubs ClubStore, events Publisher) *Service {
	return &Service{clubs: clubs, events: events}
}

// Create stores a new active club; the creator joins it as owner.
func (s *Service) Create(ctx context.Context, userID int64, req CreateClubRequest) (*domain.Club, error) {
	club := &domain.Club{
		Name:        req.Name,
		Description: req.Description,
		Topic:       req.Topic,
		CreatedBy:   userID,
		IsActive:    true,
		MaxMembers:  req.MaxMembers,
	}
	if err := s.clubs.Create(ctx, club); err != nil {
		return nil, err
	}
	return club, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Club, error) {
	club, err := s.clubs.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrClubNotFound
	}
	return club, err
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]domain.Club, error) {
	return s.clubs.List(ctx, skip, limit)
}

func (s *Service) Update(ctx context.Context, userID, id int64, req UpdateClubRequest) (*domain.Club, error) {
	club, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if club.CreatedBy != userID {
		return nil, ErrNotAllowedUpdate
	}

	if req.Name != nil {
		club.Name = *req.Name
	}
	if req.Description != nil {
		club.Description = req.Description
	}
	if req.Topic != nil {
		club.Topic = req.Topic
	}
	if req.IsActive != nil {
		club.IsActive = *req.IsActive
	}
	if req.MaxMembers != nil {
		club.MaxMembers = req.MaxMembers
	}

	if err := s.clubs.Update(ctx, club); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	s.events.Publish(Event{Type: EventClubUpdated, ClubID: club.ID, Payload: club})
	return club, nil
}

// Delete removes the club with its memberships.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	club, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if club.CreatedBy != userID {
		return ErrNotAllowedDelete
	}
	if err := s.clubs.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClubNotFound
		}
		return err
	}
	s.events.Publish(Event{Type: EventClubDeleted, ClubID: id})
	return nil
}

// Join enrols the user as a plain member of an active club with room left.
func (s *Service) Join(ctx context.Context, userID, clubID int64) (*domain.ClubMember, error) {
	club, err := s.Get(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if !club.IsActive {
		return nil, ErrClubInactive
	}

	if _, err := s.clubs.GetMember(ctx, clubID, userID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	count, err := s.clubs.CountMembers(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if club.IsFull(count) {
		return nil, ErrClubFull
	}

	member, err := s.clubs.AddMember(ctx, clubID, userID, domain.ClubRoleMember)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}
	s.events.Publish(Event{Type: EventMemberJoined, ClubID: clubID, Payload: member})
	return member, nil
}

func (s *Service) Leave(ctx context.Context, userID, clubID int64) error {
	club, err := s.Get(ctx, clubID)
	if err != nil {
		return err
	}
	if club.CreatedBy == userID {
		return ErrOwnerCannotLeave
	}

	removed, err := s.clubs.RemoveMember(ctx, clubID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotMember
	}
	s.events.Publish(Event{Type: EventMemberLeft, ClubID: clubID, Payload: map[string]int64{"user_id": userID}})
	return nil
}

func (s *Service) Members(ctx context.Context, clubID int64) ([]domain.ClubMember, error) {
	if _, err := s.Get(ctx, clubID); err != nil {
		return nil, err
	}
	return s.clubs.ListMembers(ctx, clubID)
}
