package models

const (
	RoleSupport = "Support"
	RoleClient  = "Client"
)

// User is a login account. Accounts are seeded at startup and never
// mutated or deleted afterwards.
type User struct {
	Username       string `gorm:"primaryKey" json:"username"`
	HashedPassword string `gorm:"not null" json:"-"`
	Role           string `gorm:"not null" json:"role"` // Support or Client
}
