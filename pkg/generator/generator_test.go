package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePromptsFillsTranscript(t *testing.T) {
	transcript := "today we talk about building an audience from scratch"
	prompts := GeneratePrompts(transcript)

	assert.Contains(t, prompts.TwitterThread, transcript)
	assert.Contains(t, prompts.StandaloneTweets, transcript)
	assert.Contains(t, prompts.LinkedInPost, transcript)
	assert.NotContains(t, prompts.TwitterThread, "{transcript}")
	assert.NotContains(t, prompts.StandaloneTweets, "{transcript}")
	assert.NotContains(t, prompts.LinkedInPost, "{transcript}")
}

func TestSplitTweets(t *testing.T) {
	raw := "First tweet here.\n\nSecond tweet here.\n\n\n\nThird tweet with\na line break inside.\n\n"
	tweets := SplitTweets(raw)

	assert.Len(t, tweets, 3)
	assert.Equal(t, "First tweet here.", tweets[0])
	assert.True(t, strings.Contains(tweets[2], "line break"))
}

func TestSplitTweetsEmptyInput(t *testing.T) {
	assert.Empty(t, SplitTweets(""))
	assert.Empty(t, SplitTweets("\n\n\n"))
}

type chatRequest struct {
	MaxTokens int `json:"max_tokens"`
	Messages  []struct {
		Content string `json:"content"`
	} `json:"messages"`
}

func TestGenerateAllRunsThreeCallsInOrder(t *testing.T) {
	contents := []string{
		"1/ First point\n\n2/ Second point",
		"Tweet one.\n\nTweet two.",
		"A LinkedIn post.",
	}

	var requests []chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		requests = append(requests, req)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"choices":[{"message":{"role":"assistant","content":%q},"finish_reason":"stop"}]}`,
			contents[len(requests)-1])
	}))
	defer server.Close()

	svc := NewServiceWithBaseURL("test-key", server.URL)
	result, err := svc.GenerateAll(context.Background(), "transcript text")
	require.NoError(t, err)

	require.Len(t, requests, 3)
	prompts := GeneratePrompts("transcript text")
	assert.Equal(t, prompts.TwitterThread, requests[0].Messages[0].Content)
	assert.Equal(t, prompts.StandaloneTweets, requests[1].Messages[0].Content)
	assert.Equal(t, prompts.LinkedInPost, requests[2].Messages[0].Content)
	assert.Equal(t, 2000, requests[0].MaxTokens)
	assert.Equal(t, 1500, requests[1].MaxTokens)
	assert.Equal(t, 2000, requests[2].MaxTokens)

	assert.Equal(t, "1/ First point\n\n2/ Second point", result.TwitterThread)
	assert.Equal(t, []string{"Tweet one.", "Tweet two."}, result.Tweets)
	assert.Equal(t, "A LinkedIn post.", result.LinkedInPost)
}

func TestGenerateAllMapsRateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"Rate limit reached","type":"requests","code":"rate_limit_exceeded"}}`)
	}))
	defer server.Close()

	svc := NewServiceWithBaseURL("test-key", server.URL)
	_, err := svc.GenerateAll(context.Background(), "transcript text")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestGenerateAllStopsOnMidPipelineError(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		if calls == 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"error":{"message":"Rate limit reached","type":"requests"}}`)
			return
		}
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"ok"},"finish_reason":"stop"}]}`)
	}))
	defer server.Close()

	svc := NewServiceWithBaseURL("test-key", server.URL)
	_, err := svc.GenerateAll(context.Background(), "transcript text")
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 2, calls)
}

func TestGenerateAllPassesThroughOtherErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":{"message":"upstream exploded","type":"server_error"}}`)
	}))
	defer server.Close()

	svc := NewServiceWithBaseURL("test-key", server.URL)
	_, err := svc.GenerateAll(context.Background(), "transcript text")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRateLimited)
}
