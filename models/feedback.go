package models

import (
	"errors"
	"fmt"
	"time"
)

type Feedback struct {
	ID          int64      `json:"id" bson:"_id" db:"id" gorm:"primaryKey"`
	Title       string     `json:"title" bson:"title" db:"title" gorm:"index;not null"`
	Description string     `json:"description" bson:"description" db:"description" gorm:"type:text"`
	Category    Category   `json:"category" bson:"category" db:"category" gorm:"type:varchar(16);index;not null"`
	Priority    Priority   `json:"priority" bson:"priority" db:"priority" gorm:"type:varchar(16);not null"`
	Status      Status     `json:"status" bson:"status" db:"status" gorm:"type:varchar(16);index;not null;default:new"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at" db:"created_at" gorm:"index;not null"`
	ClosedAt    *time.Time `json:"closed_at,omitempty" bson:"closed_at,omitempty" db:"closed_at"`
	UserID      int64      `json:"user_id" bson:"user_id" db:"user_id" gorm:"index;not null"`

	// Populated on reads, never persisted through these fields.
	User      *User      `json:"user,omitempty" bson:"-" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	Responses []Response `json:"responses,omitempty" bson:"-" gorm:"foreignKey:FeedbackID;constraint:OnDelete:CASCADE"`
}

func (Feedback) TableName() string { return "feedback" }

// ResolutionTime is closed_at minus created_at. ok is false unless the item
// is closed and both timestamps are set.
func (f *Feedback) ResolutionTime() (d time.Duration, ok bool) {
	if f.Status != StatusClosed || f.ClosedAt == nil || f.CreatedAt.IsZero() {
		return 0, false
	}
	return f.ClosedAt.Sub(f.CreatedAt), true
}

// Validate checks the enumerated fields before a write.
func (f *Feedback) Validate() error {
	if f.Title == "" {
		return errors.New("title is required")
	}
	if !f.Category.Valid() {
		return fmt.Errorf("invalid category %q", f.Category)
	}
	if !f.Priority.Valid() {
		return fmt.Errorf("invalid priority %q", f.Priority)
	}
	if !f.Status.Valid() {
		return fmt.Errorf("invalid status %q", f.Status)
	}
	if f.UserID == 0 {
		return errors.New("submitter is required")
	}
	return nil
}
