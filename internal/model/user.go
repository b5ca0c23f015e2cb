package model

import (
	"strings"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	FullName string `json:"full_name"`

	// İlişkiler
	Subscription *Subscription      `json:"-" gorm:"foreignKey:UserID"`
	Usage        []UsageTracking    `json:"-" gorm:"foreignKey:UserID"`
	Content      []GeneratedContent `json:"-" gorm:"foreignKey:UserID"`
}

func (u *User) GetPublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":        u.ID,
		"email":     u.Email,
		"username":  u.Username,
		"full_name": strings.TrimSpace(u.FullName),
	}
}
