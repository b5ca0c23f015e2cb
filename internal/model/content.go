package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GeneratedContent struct {
	gorm.Model
	UserID         uint                        `json:"user_id" gorm:"index;not null"`
	YoutubeVideoID string                      `json:"youtube_video_id" gorm:"index"`
	TwitterThread  string                      `json:"twitter_thread" gorm:"type:text"`
	Tweets         datatypes.JSONSlice[string] `json:"tweets"`
	LinkedInPost   string                      `json:"linkedin_post" gorm:"type:text"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}
