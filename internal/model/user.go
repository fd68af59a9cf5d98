package model

import "time"

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(64);uniqueIndex:idx_username;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(128);not null" json:"-"`
	Role         string    `gorm:"type:varchar(10);not null;default:User;index:idx_role" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

type UserBrief struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (u *User) Brief() UserBrief {
	return UserBrief{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
	}
}

// Principal is the authenticated identity the middleware hands to services.
// Every operation that needs the caller takes it as an explicit argument;
// there is no ambient current-user state below the HTTP layer.
type Principal struct {
	ID   uint
	Role string
}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }
