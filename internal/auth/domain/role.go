package domain

import "time"

// Role names are case-sensitive and unique. Users reference roles through
// the user_roles join table.
type Role struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
