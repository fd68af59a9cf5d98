package model

import "time"

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// TaskItem is one card on the board. Position is its zero-based rank within
// the owning column; the task service keeps positions dense (0..count-1) for
// every column between mutations.
type TaskItem struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Title          string     `gorm:"type:varchar(255);not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	Priority       string     `gorm:"type:varchar(10);not null;default:Medium" json:"priority"`
	StartDate      *time.Time `json:"start_date"`
	DueDate        *time.Time `json:"due_date"`
	AssignedUserID *uint      `gorm:"index:idx_assigned_user" json:"assigned_user_id"`
	Position       int        `gorm:"not null" json:"position"`
	ColumnID       uint       `gorm:"not null;index:idx_column_id" json:"column_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (TaskItem) TableName() string { return "task_items" }
