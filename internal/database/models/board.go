package models

import "time"

type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleReader Role = "reader"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleEditor, RoleReader:
		return true
	}
	return false
}

type Board struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated"`

	Participants []BoardParticipant `gorm:"foreignKey:BoardID" json:"participants,omitempty"`
}

// BoardParticipant is the membership record governing access to a board.
// Exactly one owner row exists per board, created together with the board.
type BoardParticipant struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	BoardID   uint      `gorm:"not null;uniqueIndex:uq_board_user" json:"board"`
	UserID    uint      `gorm:"not null;uniqueIndex:uq_board_user" json:"user"`
	Role      Role      `gorm:"size:20;not null" json:"role"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated"`
}
