package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"repurposly_backend/internal/model"
	"repurposly_backend/pkg/analytics"
	"repurposly_backend/pkg/database"
	"repurposly_backend/pkg/generator"
	"repurposly_backend/pkg/usage"
	"repurposly_backend/pkg/utils/jwt"
	"repurposly_backend/pkg/youtube"
)

type TranscriptInput struct {
	YouTubeURL string `json:"youtubeUrl" validate:"required"`
}

type GenerateInput struct {
	Transcript string `json:"transcript" validate:"required"`
	VideoID    string `json:"videoId"`
}

var (
	generatorService  *generator.Service
	transcriptFetcher *youtube.Fetcher
)

func InitGenerateController(gen *generator.Service, fetcher *youtube.Fetcher) {
	generatorService = gen
	transcriptFetcher = fetcher
}

// GetTranscript resolves a YouTube URL to its transcript, serving from the
// transcripts table when the video has been fetched before.
func GetTranscript(c *fiber.Ctx) error {
	input := new(TranscriptInput)
	if err := c.BodyParser(input); err != nil || input.YouTubeURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "YouTube URL is required",
		})
	}

	videoID := youtube.ExtractVideoID(input.YouTubeURL)
	if videoID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid YouTube URL",
		})
	}

	var cached model.Transcript
	if err := database.DB.Where("youtube_video_id = ?", videoID).First(&cached).Error; err == nil {
		log.Printf("Transcript found in cache: %s", videoID)
		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"videoId":       videoID,
				"transcript":    cached.TranscriptText,
				"videoTitle":    cached.VideoTitle,
				"videoDuration": cached.VideoDuration,
				"cached":        true,
			},
		})
	}

	log.Printf("Fetching transcript from YouTube: %s", videoID)
	transcript, err := transcriptFetcher.FetchTranscript(c.Context(), videoID)
	if err != nil {
		if errors.Is(err, youtube.ErrNoCaptions) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No transcript available for this video. Make sure the video has captions enabled.",
			})
		}
		if errors.Is(err, youtube.ErrVideoUnavailable) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Video is unavailable or private",
			})
		}
		log.Printf("YouTube transcript error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch transcript",
		})
	}

	// Cache write is best effort; the transcript is already in hand.
	record := model.Transcript{
		YoutubeVideoID: videoID,
		TranscriptText: transcript.Text,
		VideoTitle:     transcript.Title,
		VideoDuration:  transcript.Duration,
		VideoURL:       input.YouTubeURL,
	}
	if err := database.DB.Create(&record).Error; err != nil {
		log.Printf("Error caching transcript: %v", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"videoId":       videoID,
			"transcript":    transcript.Text,
			"videoTitle":    transcript.Title,
			"videoDuration": transcript.Duration,
			"cached":        false,
		},
	})
}

// GenerateContent runs the three-format generation pipeline for a transcript.
// The route sits behind the usage gate; the counter is incremented only after
// a successful generation, and an increment failure is logged rather than
// clawing back content already produced.
func GenerateContent(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(GenerateInput)
	if err := c.BodyParser(input); err != nil || input.Transcript == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Transcript is required",
		})
	}

	videoID := input.VideoID
	if videoID == "" {
		videoID = "unknown"
	}

	log.Println("Generating content with OpenAI...")
	result, err := generatorService.GenerateAll(c.Context(), input.Transcript)
	if err != nil {
		if errors.Is(err, generator.ErrRateLimited) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "API rate limit exceeded. Please try again in a moment.",
			})
		}
		log.Printf("Content generation error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate content. Please try again.",
		})
	}

	content := model.GeneratedContent{
		UserID:         claims.UserID,
		YoutubeVideoID: videoID,
		TwitterThread:  result.TwitterThread,
		Tweets:         datatypes.NewJSONSlice(result.Tweets),
		LinkedInPost:   result.LinkedInPost,
	}
	if err := database.DB.Create(&content).Error; err != nil {
		// Best effort; the caller still gets the content.
		log.Printf("Error storing generated content: %v", err)
	}

	now := time.Now()
	if _, err := usage.Increment(database.DB, claims.UserID, int(now.Month()), now.Year()); err != nil {
		log.Printf("Error incrementing usage for user %d: %v", claims.UserID, err)
	}

	analytics.Capture(claims.UserID, "content_generated", map[string]interface{}{
		"video_id":    videoID,
		"tweet_count": len(result.Tweets),
	})

	log.Println("Content generation complete")

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
	})
}
