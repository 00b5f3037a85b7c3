package models

import "time"

type GoalStatus string

const (
	StatusToDo       GoalStatus = "todo"
	StatusInProgress GoalStatus = "in_progress"
	StatusDone       GoalStatus = "done"
	// StatusArchived is terminal: set directly by a writer or by cascade
	// when the goal's category or board is soft-deleted.
	StatusArchived GoalStatus = "archived"
)

func (s GoalStatus) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone, StatusArchived:
		return true
	}
	return false
}

type GoalPriority string

const (
	PriorityLow      GoalPriority = "low"
	PriorityMedium   GoalPriority = "medium"
	PriorityHigh     GoalPriority = "high"
	PriorityCritical GoalPriority = "critical"
)

func (p GoalPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

type Goal struct {
	ID          uint         `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	Status      GoalStatus   `gorm:"size:20;not null;default:todo" json:"status"`
	Priority    GoalPriority `gorm:"size:20;not null;default:low" json:"priority"`
	UserID      uint         `gorm:"not null" json:"user"`
	CategoryID  uint         `gorm:"not null;index" json:"category"`
	CreatedAt   time.Time    `json:"created"`
	UpdatedAt   time.Time    `json:"updated"`
}
