package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ErrRateLimited maps upstream 429s so handlers can pass the status through.
var ErrRateLimited = errors.New("language model rate limit exceeded")

type Result struct {
	TwitterThread string   `json:"twitter_thread"`
	Tweets        []string `json:"tweets"`
	LinkedInPost  string   `json:"linkedin_post"`
}

type Service struct {
	client *openai.Client
	model  string
}

func NewService(apiKey string) *Service {
	return NewServiceWithBaseURL(apiKey, "")
}

// NewServiceWithBaseURL points the client at an alternate completions
// endpoint, such as a proxy. An empty baseURL keeps the OpenAI default.
func NewServiceWithBaseURL(apiKey, baseURL string) *Service {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Service{
		client: openai.NewClientWithConfig(cfg),
		model:  openai.GPT4o,
	}
}

func (s *Service) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     s.model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429 {
			return "", ErrRateLimited
		}
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateAll runs the three content generations sequentially: thread,
// standalone tweets, LinkedIn post.
func (s *Service) GenerateAll(ctx context.Context, transcript string) (*Result, error) {
	prompts := GeneratePrompts(transcript)

	thread, err := s.complete(ctx, prompts.TwitterThread, 2000)
	if err != nil {
		return nil, err
	}

	tweetsRaw, err := s.complete(ctx, prompts.StandaloneTweets, 1500)
	if err != nil {
		return nil, err
	}

	linkedin, err := s.complete(ctx, prompts.LinkedInPost, 2000)
	if err != nil {
		return nil, err
	}

	return &Result{
		TwitterThread: thread,
		Tweets:        SplitTweets(tweetsRaw),
		LinkedInPost:  linkedin,
	}, nil
}

// SplitTweets turns the model's blank-line separated output into individual
// tweets, dropping empty chunks.
func SplitTweets(raw string) []string {
	var tweets []string
	for _, part := range strings.Split(raw, "\n\n") {
		if tweet := strings.TrimSpace(part); tweet != "" {
			tweets = append(tweets, tweet)
		}
	}
	return tweets
}
