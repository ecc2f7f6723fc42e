package dto

// Profile is the body of GET /api/me.
type Profile struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
}

// ProfileRequest is the body of PUT /api/me.
type ProfileRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone"`
}
