package models

type LoginRequest struct {
	Username string `json:"username"` // username or email
	Password string `json:"password"`
}

// SessionUser is the identity payload returned by login and /auth/me.
type SessionUser struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Language string `json:"language"`
}
