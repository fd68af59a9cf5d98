package model

import "time"

// Default columns bootstrapped with every project, in OrderIndex order.
var DefaultColumnNames = [3]string{"Todo", "In Progress", "Done"}

type BoardColumn struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(64);not null" json:"name"`
	OrderIndex int       `gorm:"not null" json:"order_index"`
	ProjectID  uint      `gorm:"not null;index:idx_project_id" json:"project_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Tasks []TaskItem `gorm:"foreignKey:ColumnID" json:"tasks"`
}

func (BoardColumn) TableName() string { return "board_columns" }
