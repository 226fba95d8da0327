package rewardcentral

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
	"tourguide.openclassrooms.org/internal/config"
)

// Client asks a remote reward oracle for scores.
//
//	GET {BaseURL}/rewardPoints?attractionId={id}&userId={id} -> {"points": n}
//
// When Limiter is set, every request waits for a token first.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	MaxRetries int
	Limiter    *rate.Limiter
}

type pointsResponse struct {
	Points int `json:"points"`
}

// NewClient creates a Client. A positive rps caps the outgoing request rate.
func NewClient(baseURL string, httpClient *http.Client, maxRetries int, rps float64) *Client {
	c := &Client{
		BaseURL:    baseURL,
		HTTPClient: httpClient,
		MaxRetries: maxRetries,
	}
	if rps > 0 {
		c.Limiter = rate.NewLimiter(rate.Limit(rps), max(1, int(rps)))
	}
	return c
}

// AttractionRewardPoints fetches the score of an attraction for a traveler.
func (c *Client) AttractionRewardPoints(ctx context.Context, attractionID, travelerID uuid.UUID) (int, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return 0, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	query := url.Values{}
	query.Set("attractionId", attractionID.String())
	query.Set("userId", travelerID.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/rewardPoints?"+query.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := config.DoWithBackoff(ctx, c.HTTPClient, req, c.MaxRetries)
	if err != nil {
		return 0, fmt.Errorf("fetching reward points: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetching reward points: unexpected status %d", resp.StatusCode)
	}

	var body pointsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode reward points: %w", err)
	}
	return body.Points, nil
}
