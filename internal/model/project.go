package model

import "time"

type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(128);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	OwnerID     uint      `gorm:"not null;index:idx_owner_id" json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Owner   *User         `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Columns []BoardColumn `gorm:"foreignKey:ProjectID" json:"columns,omitempty"`
}

func (Project) TableName() string { return "projects" }
