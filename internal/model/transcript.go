package model

import "gorm.io/gorm"

// Transcript caches fetched YouTube transcripts keyed by video id.
type Transcript struct {
	gorm.Model
	YoutubeVideoID string `json:"youtube_video_id" gorm:"uniqueIndex;not null"`
	TranscriptText string `json:"transcript_text" gorm:"type:text;not null"`
	VideoTitle     string `json:"video_title"`
	VideoDuration  int    `json:"video_duration"` // saniye
	VideoURL       string `json:"video_url"`
}
