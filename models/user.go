package models

import (
	"errors"
	"fmt"
)

// User is a portal account. PasswordHash is never rendered or serialized.
type User struct {
	ID           int64  `json:"id" bson:"_id" db:"id" gorm:"primaryKey"`
	Username     string `json:"username" bson:"username" db:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" bson:"password_hash" db:"password_hash" gorm:"not null"`
	Role         Role   `json:"role" bson:"role" db:"role" gorm:"type:varchar(16);not null"`
}

func (u *User) HasRole(roles ...Role) bool {
	if u == nil {
		return false
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

func (u *User) Validate() error {
	if u.Username == "" {
		return errors.New("username is required")
	}
	if u.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	if !u.Role.Valid() {
		return fmt.Errorf("invalid role %q", u.Role)
	}
	return nil
}
