package models

import "time"

type GoalCategory struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	UserID    uint      `gorm:"not null" json:"user"`
	BoardID   uint      `gorm:"not null;index" json:"board"`
	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated"`

	Goals []Goal `gorm:"foreignKey:CategoryID" json:"-"`
}

func (GoalCategory) TableName() string {
	return "goal_categories"
}
