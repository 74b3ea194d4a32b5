package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
	StatusCancelled TaskStatus = "cancelled"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Due dates must fall inside this year range.
const (
	MinDueYear = 2000
	MaxDueYear = 2100
)

type Task struct {
	ID          string       `json:"_id" gorm:"type:varchar(36);primaryKey"`
	Title       string       `json:"title" gorm:"type:varchar(255);not null"`
	Description string       `json:"description" gorm:"type:text;not null"`
	Status      TaskStatus   `json:"status" gorm:"type:varchar(20);not null;index:idx_tasks_user_status,priority:2"`
	Priority    TaskPriority `json:"priority" gorm:"type:varchar(10);not null;default:medium"`
	DueDate     *time.Time   `json:"dueDate"`
	UserID      uint         `json:"user_id" gorm:"not null;index:idx_tasks_user_status,priority:1"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	return nil
}
