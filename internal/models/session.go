package models

// Role enum
type Role string

const (
	RoleNurse  Role = "nurse"
	RoleDoctor Role = "doctor"
)

// Session is the single persisted marker of which user is logged in.
// At most one session exists at a time; there is no expiry.
type Session struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
