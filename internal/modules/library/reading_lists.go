package library

import (
	"context"
	"errors"

	"publicsquare/internal/domain"
	"publicsquare/internal/repository"
)

func (s *Service) CreateList(ctx context.Context, userID int64, req CreateReadingListRequest) (*ReadingListResponse, error) {
	l := &domain.ReadingList{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		IsDefault:   req.IsDefault,
	}
	if err := s.lists.Create(ctx, l); err != nil {
		return nil, err
	}
	return &ReadingListResponse{ReadingList: *l}, nil
}

// Lists returns the caller's lists, default first, each with its item count.
func (s *Service) Lists(ctx context.Context, userID int64) ([]ReadingListResponse, error) {
	lists, err := s.lists.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(lists))
	for _, l := range lists {
		ids = append(ids, l.ID)
	}
	counts, err := s.lists.ItemCounts(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]ReadingListResponse, 0, len(lists))
	for _, l := range lists {
		out = append(out, ReadingListResponse{ReadingList: l, ItemCount: counts[l.ID]})
	}
	return out, nil
}

// GetList returns the list with its items in order, each item carrying the
// library entry and its book.
func (s *Service) GetList(ctx context.Context, userID, id int64) (*ReadingListDetail, error) {
	l, err := s.ownList(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	items, err := s.lists.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}

	ubIDs := make([]int64, 0, len(items))
	for _, it := range items {
		ubIDs = append(ubIDs, it.UserBookID)
	}
	userBooks, err := s.userBooks.GetByIDs(ctx, ubIDs)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.UserBook, 0, len(userBooks))
	for _, it := range items {
		if ub, ok := userBooks[it.UserBookID]; ok {
			entries = append(entries, ub)
		}
	}
	detailed, err := s.withBooks(ctx, entries)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*UserBookResponse, len(detailed))
	for i := range detailed {
		byID[detailed[i].ID] = &detailed[i]
	}

	resp := &ReadingListDetail{
		ReadingListResponse: ReadingListResponse{ReadingList: *l, ItemCount: int64(len(items))},
		Items:               make([]ReadingListItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, ReadingListItemResponse{ReadingListItem: it, UserBook: byID[it.UserBookID]})
	}
	return resp, nil
}

func (s *Service) UpdateList(ctx context.Context, userID, id int64, req UpdateReadingListRequest) (*ReadingListResponse, error) {
	l, err := s.ownList(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		l.Name = *req.Name
	}
	if req.Description != nil {
		l.Description = req.Description
	}
	if req.IsDefault != nil {
		l.IsDefault = *req.IsDefault
	}
	if err := s.lists.Update(ctx, l); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	counts, err := s.lists.ItemCounts(ctx, []int64{l.ID})
	if err != nil {
		return nil, err
	}
	return &ReadingListResponse{ReadingList: *l, ItemCount: counts[l.ID]}, nil
}

func (s *Service) DeleteList(ctx context.Context, userID, id int64) error {
	if _, err := s.ownList(ctx, userID, id); err != nil {
		return err
	}
	err := s.lists.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrListNotFound
	}
	return err
}

func (s *Service) AddItem(ctx context.Context, userID, listID int64, req AddItemRequest) (*domain.ReadingListItem, error) {
	if _, err := s.ownList(ctx, userID, listID); err != nil {
		return nil, err
	}
	if _, err := s.ownUserBook(ctx, userID, req.UserBookID); err != nil {
		return nil, err
	}
	item, err := s.lists.AddItem(ctx, listID, req.UserBookID, req.OrderIndex)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyInList
		}
		return nil, err
	}
	return item, nil
}

func (s *Service) RemoveItem(ctx context.Context, userID, listID, userBookID int64) error {
	if _, err := s.ownList(ctx, userID, listID); err != nil {
		return err
	}
	removed, err := s.lists.RemoveItem(ctx, listID, userBookID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotInList
	}
	return nil
}

// Reorder moves items of the list to new positions. Item ids from other
// lists are ignored.
func (s *Service) Reorder(ctx context.Context, userID, listID int64, items []ReorderItem) error {
	if _, err := s.ownList(ctx, userID, listID); err != nil {
		return err
	}
	orders := make([]repository.ItemOrder, 0, len(items))
	for _, it := range items {
		if it.OrderIndex == nil {
			continue
		}
		orders = append(orders, repository.ItemOrder{ItemID: it.ItemID, OrderIndex: *it.OrderIndex})
	}
	return s.lists.Reorder(ctx, listID, orders)
}

func (s *Service) ownList(ctx context.Context, userID, id int64) (*domain.ReadingList, error) {
	l, err := s.lists.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	if l.UserID != userID {
		return nil, ErrListNotFound
	}
	return l, nil
}
