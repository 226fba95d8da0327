package gpsutil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"tourguide.openclassrooms.org/internal/config"
	"tourguide.openclassrooms.org/internal/models"
)

// Client fetches attractions and locations from a remote location provider.
//
//	GET {BaseURL}/attractions            -> []Attraction
//	GET {BaseURL}/users/{id}/location    -> Visit
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	MaxRetries int
}

// NewClient creates a Client for the provider at baseURL.
func NewClient(baseURL string, httpClient *http.Client, maxRetries int) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: httpClient,
		MaxRetries: maxRetries,
	}
}

// Attractions fetches the provider's attraction catalog.
func (c *Client) Attractions(ctx context.Context) ([]models.Attraction, error) {
	var attractions []models.Attraction
	if err := c.getJSON(ctx, "/attractions", &attractions); err != nil {
		return nil, err
	}
	return attractions, nil
}

// UserLocation fetches the current location of a traveler.
func (c *Client) UserLocation(ctx context.Context, travelerID uuid.UUID) (models.Visit, error) {
	var visit models.Visit
	if err := c.getJSON(ctx, "/users/"+url.PathEscape(travelerID.String())+"/location", &visit); err != nil {
		return models.Visit{}, err
	}
	if visit.TravelerID == uuid.Nil {
		visit.TravelerID = travelerID
	}
	return visit, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := config.DoWithBackoff(ctx, c.HTTPClient, req, c.MaxRetries)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("GET %s: failed to decode response: %w", path, err)
	}
	return nil
}
