package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url with params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"shorts url", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"not a video url", "https://www.youtube.com/", ""},
		{"garbage", "not a url at all", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractVideoID(tt.url))
		})
	}
}

func newTestFetcher(server *httptest.Server) *Fetcher {
	return &Fetcher{
		httpClient: server.Client(),
		baseURL:    server.URL,
	}
}

func TestFetchTranscript(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html>... "captionTracks":[{"baseUrl":"%s/api/timedtext?v=abcdefghijk" ...</html>`, server.URL)
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.0" dur="2.5">hello   everyone</text>
  <text start="2.5" dur="3.0">welcome &amp; thanks for watching</text>
  <text start="5.5" dur="4.5">see you next time</text>
</transcript>`)
	})

	fetcher := newTestFetcher(server)
	transcript, err := fetcher.FetchTranscript(context.Background(), "abcdefghijk")
	require.NoError(t, err)

	assert.Equal(t, "hello everyone welcome & thanks for watching see you next time", transcript.Text)
	assert.Equal(t, 10, transcript.Duration)
	assert.Equal(t, "abcdefghijk", transcript.VideoID)
}

func TestFetchTranscriptNoCaptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>a watch page without caption tracks</html>`)
	}))
	defer server.Close()

	fetcher := newTestFetcher(server)
	_, err := fetcher.FetchTranscript(context.Background(), "abcdefghijk")
	assert.ErrorIs(t, err, ErrNoCaptions)
}

func TestFetchTranscriptUnavailableVideo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>Video unavailable</html>`)
	}))
	defer server.Close()

	fetcher := newTestFetcher(server)
	_, err := fetcher.FetchTranscript(context.Background(), "abcdefghijk")
	assert.ErrorIs(t, err, ErrVideoUnavailable)
}
