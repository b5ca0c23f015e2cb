package youtube

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"math"
	"net/http"
	"regexp"
	"strings"
	"time"
)

var (
	ErrNoCaptions       = errors.New("no captions available for this video")
	ErrVideoUnavailable = errors.New("video is unavailable or private")
)

var (
	videoIDPattern      = regexp.MustCompile(`(?:v=|youtu\.be/|embed/|shorts/|live/)([A-Za-z0-9_-]{11})`)
	bareVideoIDPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	captionTrackPattern = regexp.MustCompile(`"captionTracks":\[\{"baseUrl":"(.*?)"`)
)

// ExtractVideoID pulls the 11-character video id out of the usual YouTube
// URL shapes (watch, youtu.be, embed, shorts). Returns "" when none found.
func ExtractVideoID(url string) string {
	if match := videoIDPattern.FindStringSubmatch(url); match != nil {
		return match[1]
	}
	if bareVideoIDPattern.MatchString(url) {
		return url
	}
	return ""
}

type Transcript struct {
	VideoID  string
	Text     string
	Title    string
	Duration int // saniye
}

// Fetcher pulls caption tracks off the public watch page. No API key needed.
type Fetcher struct {
	httpClient *http.Client
	baseURL    string
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://www.youtube.com",
	}
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

// FetchTranscript fetches and flattens the caption track for a video.
func (f *Fetcher) FetchTranscript(ctx context.Context, videoID string) (*Transcript, error) {
	page, err := f.get(ctx, fmt.Sprintf("%s/watch?v=%s", f.baseURL, videoID))
	if err != nil {
		return nil, fmt.Errorf("error fetching watch page: %v", err)
	}

	body := string(page)
	if strings.Contains(body, "Video unavailable") {
		return nil, ErrVideoUnavailable
	}

	match := captionTrackPattern.FindStringSubmatch(body)
	if match == nil {
		return nil, ErrNoCaptions
	}

	// The track URL is embedded in JSON, so unescape & and friends.
	trackURL := strings.ReplaceAll(match[1], `\u0026`, "&")
	trackURL = strings.ReplaceAll(trackURL, `\/`, "/")

	trackXML, err := f.get(ctx, trackURL)
	if err != nil {
		return nil, fmt.Errorf("error fetching caption track: %v", err)
	}

	var track struct {
		Texts []struct {
			Start float64 `xml:"start,attr"`
			Dur   float64 `xml:"dur,attr"`
			Value string  `xml:",chardata"`
		} `xml:"text"`
	}
	if err := xml.Unmarshal(trackXML, &track); err != nil {
		return nil, fmt.Errorf("error parsing caption track: %v", err)
	}
	if len(track.Texts) == 0 {
		return nil, ErrNoCaptions
	}

	segments := make([]string, 0, len(track.Texts))
	for _, text := range track.Texts {
		segments = append(segments, html.UnescapeString(text.Value))
	}
	fullText := strings.Join(strings.Fields(strings.Join(segments, " ")), " ")

	last := track.Texts[len(track.Texts)-1]
	duration := int(math.Round(last.Start + last.Dur))

	return &Transcript{
		VideoID:  videoID,
		Text:     fullText,
		Title:    fmt.Sprintf("Video %s", videoID),
		Duration: duration,
	}, nil
}
