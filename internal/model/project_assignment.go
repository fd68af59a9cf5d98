package model

import "time"

// ProjectAssignment grants a non-admin user visibility into a project.
// Identity is the (project, user) pair; uk_project_user keeps it unique.
type ProjectAssignment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;uniqueIndex:uk_project_user" json:"project_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uk_project_user;index:idx_user_id" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ProjectAssignment) TableName() string { return "project_assignments" }
