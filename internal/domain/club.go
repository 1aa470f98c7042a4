package domain

import "time"

type ClubRole string

const (
	ClubRoleMember ClubRole = "member"
	ClubRoleOwner  ClubRole = "owner"
)

type Club struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Topic       *string   `json:"topic"`
	CreatedBy   int64     `json:"created_by"`
	IsActive    bool      `json:"is_active"`
	MaxMembers  *int      `json:"max_members"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsFull reports whether a club with the given member count accepts no one else.
func (c *Club) IsFull(members int64) bool {
	return c.MaxMembers != nil && members >= int64(*c.MaxMembers)
}

type ClubMember struct {
	UserID   int64     `json:"user_id"`
	ClubID   int64     `json:"club_id"`
	JoinDate time.Time `json:"join_date"`
	Role     ClubRole  `json:"role"`
}
