package model

import "time"

// Roles stored in users.role.
const (
    RoleGuest = "guest"
    RoleStaff = "staff"
    RoleAdmin = "admin"
)

// User represents an application user record as stored in the `users`
// table.  PasswordHash never leaves the server.
type User struct {
    ID           uint64    `json:"id"`         // users.id
    FirstName    string    `json:"first_name"` // users.first_name
    LastName     string    `json:"last_name"`  // users.last_name
    Email        string    `json:"email"`      // users.email (unique, lower-cased)
    PasswordHash string    `json:"-"`          // users.password_hash (bcrypt)
    Phone        string    `json:"phone"`      // users.phone
    Address      string    `json:"address"`    // users.address
    Role         string    `json:"role"`       // users.role: guest, staff or admin
    IsActive     bool      `json:"is_active"`  // users.is_active
    CreatedAt    time.Time `json:"created_at"` // users.created_at
    UpdatedAt    time.Time `json:"updated_at"` // users.updated_at
}

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool { return r == RoleGuest || r == RoleStaff || r == RoleAdmin }

// RefreshToken models an entry in the `refresh_tokens` table.  The plain
// token is never stored; only its SHA‑256 hash.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    UserID    uint64     // refresh_tokens.user_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
