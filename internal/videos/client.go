package videos

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/focuslearner/backend/internal/logger"
)

const searchEndpoint = "https://www.googleapis.com/youtube/v3/search"

// educationCategoryID is the YouTube category the search is pinned to.
const educationCategoryID = "27"

// Video is one discovered video candidate.
type Video struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	Channel     string `json:"channel"`
	URL         string `json:"url"`
}

type Client struct {
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

func New(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logger.Default().WithPrefix("videos"),
	}
}

type searchResp struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// Search queries the discovery provider for educational videos on a subject.
// Without an API key it returns deterministic placeholder entries so the
// pipeline keeps working in development.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Video, error) {
	log := logger.FromContext(ctx).WithPrefix("videos").WithField("query", query)

	if c.apiKey == "" {
		log.Debug("no API key, returning placeholder videos")
		return placeholderVideos(query, maxResults), nil
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))
	params.Set("videoCategoryId", educationCategoryID)
	params.Set("order", "relevance")
	params.Set("key", c.apiKey)

	log.Debug("searching videos")
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to search videos: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("search response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("search request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("video search status %d: %s", resp.StatusCode, string(body))
	}

	var payload searchResp
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Error("failed to decode search response: %v", err)
		return nil, err
	}

	out := make([]Video, 0, len(payload.Items))
	for _, item := range payload.Items {
		out = append(out, Video{
			VideoID:     item.ID.VideoID,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
			Thumbnail:   item.Snippet.Thumbnails.Medium.URL,
			Channel:     item.Snippet.ChannelTitle,
			URL:         fmt.Sprintf("https://www.youtube.com/watch?v=%s", item.ID.VideoID),
		})
	}

	log.Info("found %d video candidates for %q", len(out), query)
	return out, nil
}

func placeholderVideos(query string, maxResults int) []Video {
	if maxResults > 3 {
		maxResults = 3
	}
	out := make([]Video, 0, maxResults)
	for i := 0; i < maxResults; i++ {
		id := fmt.Sprintf("mock-%d", i+1)
		out = append(out, Video{
			VideoID:     id,
			Title:       fmt.Sprintf("%s lecture part %d", query, i+1),
			Description: fmt.Sprintf("Introductory lecture on %s", query),
			Channel:     "Sample University",
			URL:         fmt.Sprintf("https://www.youtube.com/watch?v=%s", id),
		})
	}
	return out
}
