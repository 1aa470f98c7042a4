package clubs

type CreateClubRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Topic       *string `json:"topic" binding:"omitempty,max=255"`
	MaxMembers  *int    `json:"max_members" binding:"omitempty,gt=0"`
}

type UpdateClubRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Topic       *string `json:"topic" binding:"omitempty,max=255"`
	IsActive    *bool   `json:"is_active"`
	MaxMembers  *int    `json:"max_members" binding:"omitempty,gt=0"`
}
