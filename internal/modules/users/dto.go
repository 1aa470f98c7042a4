package users

// UpdateUserRequest carries the profile fields a user may change. Absent
// fields are left untouched.
type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,username"`
	Email    *string `json:"email" binding:"omitempty,email"`
	FullName *string `json:"full_name" binding:"omitempty,max=255"`
	IsActive *bool   `json:"is_active"`
}
