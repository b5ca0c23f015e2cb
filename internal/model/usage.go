package model

import (
	"time"

	"gorm.io/gorm"
)

// UsageTracking counts generated videos per user per calendar month. The
// composite unique index is what keeps concurrent first-of-the-month requests
// from inserting duplicate rows.
type UsageTracking struct {
	gorm.Model
	UserID          uint      `json:"user_id" gorm:"uniqueIndex:idx_usage_user_period;not null"`
	Month           int       `json:"month" gorm:"uniqueIndex:idx_usage_user_period;not null"`
	Year            int       `json:"year" gorm:"uniqueIndex:idx_usage_user_period;not null"`
	VideosGenerated int       `json:"videos_generated" gorm:"not null;default:0"`
	LastUpdated     time.Time `json:"last_updated"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}
