package models

import (
	"errors"
	"strings"
	"time"
)

// Response is a staff reply attached to one Feedback.
type Response struct {
	ID         int64     `json:"id" bson:"_id" db:"id" gorm:"primaryKey"`
	Content    string    `json:"content" bson:"content" db:"content" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at" db:"created_at" gorm:"index;not null"`
	FeedbackID int64     `json:"feedback_id" bson:"feedback_id" db:"feedback_id" gorm:"index;not null"`
	UserID     int64     `json:"user_id" bson:"user_id" db:"user_id" gorm:"index;not null"`

	User *User `json:"user,omitempty" bson:"-" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
}

func (r *Response) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return errors.New("response content is required")
	}
	if r.FeedbackID == 0 || r.UserID == 0 {
		return errors.New("response must reference feedback and author")
	}
	return nil
}
