package klaviyo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	apiBase    = "https://a.klaviyo.com/api"
	apiRevision = "2024-10-15"
)

// Client talks to the Klaviyo REST API for profile upserts, list
// subscriptions and event tracking.
type Client struct {
	apiKey     string
	listID     string
	httpClient *http.Client
}

func NewClient(apiKey, listID string) *Client {
	return &Client{
		apiKey:     apiKey,
		listID:     listID,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled reports whether the client is configured; marketing calls are
// skipped silently in environments without a key.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

type Profile struct {
	Email      string
	FirstName  string
	LastName   string
	Properties map[string]interface{}
}

type profilePayload struct {
	Data struct {
		Type       string `json:"type"`
		Attributes struct {
			Email      string                 `json:"email"`
			FirstName  string                 `json:"first_name,omitempty"`
			LastName   string                 `json:"last_name,omitempty"`
			Properties map[string]interface{} `json:"properties,omitempty"`
		} `json:"attributes"`
	} `json:"data"`
}

type profileResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
	Errors []struct {
		Detail string `json:"detail"`
		Status string `json:"status"`
	} `json:"errors"`
}

// UpsertProfile creates or updates a profile and returns its Klaviyo ID.
func (c *Client) UpsertProfile(ctx context.Context, profile *Profile) (string, error) {
	if profile.Email == "" {
		return "", errors.New("profile email is required")
	}

	payload := profilePayload{}
	payload.Data.Type = "profile"
	payload.Data.Attributes.Email = profile.Email
	payload.Data.Attributes.FirstName = profile.FirstName
	payload.Data.Attributes.LastName = profile.LastName
	payload.Data.Attributes.Properties = profile.Properties

	raw, err := c.do(ctx, http.MethodPost, "/profile-import/", payload)
	if err != nil {
		return "", err
	}

	var parsed profileResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse Klaviyo response: %w", err)
	}
	if parsed.Data.ID == "" {
		return "", errors.New("Klaviyo returned no profile ID")
	}

	return parsed.Data.ID, nil
}

// Subscribe adds a profile to the configured newsletter list with email
// marketing consent.
func (c *Client) Subscribe(ctx context.Context, email string) error {
	if c.listID == "" {
		return errors.New("no Klaviyo list configured")
	}

	payload := map[string]interface{}{
		"data": map[string]interface{}{
			"type": "profile-subscription-bulk-create-job",
			"attributes": map[string]interface{}{
				"profiles": map[string]interface{}{
					"data": []map[string]interface{}{
						{
							"type": "profile",
							"attributes": map[string]interface{}{
								"email": email,
								"subscriptions": map[string]interface{}{
									"email": map[string]interface{}{
										"marketing": map[string]interface{}{
											"consent": "SUBSCRIBED",
										},
									},
								},
							},
						},
					},
				},
			},
			"relationships": map[string]interface{}{
				"list": map[string]interface{}{
					"data": map[string]interface{}{
						"type": "list",
						"id":   c.listID,
					},
				},
			},
		},
	}

	_, err := c.do(ctx, http.MethodPost, "/profile-subscription-bulk-create-jobs/", payload)
	return err
}

// Unsubscribe removes marketing consent for a profile.
func (c *Client) Unsubscribe(ctx context.Context, email string) error {
	payload := map[string]interface{}{
		"data": map[string]interface{}{
			"type": "profile-subscription-bulk-delete-job",
			"attributes": map[string]interface{}{
				"profiles": map[string]interface{}{
					"data": []map[string]interface{}{
						{
							"type": "profile",
							"attributes": map[string]interface{}{
								"email": email,
							},
						},
					},
				},
			},
		},
	}

	_, err := c.do(ctx, http.MethodPost, "/profile-subscription-bulk-delete-jobs/", payload)
	return err
}

// TrackEvent records a metric event against a profile, e.g. a price alert
// match or booking inquiry.
func (c *Client) TrackEvent(ctx context.Context, email, metric string, properties map[string]interface{}) error {
	payload := map[string]interface{}{
		"data": map[string]interface{}{
			"type": "event",
			"attributes": map[string]interface{}{
				"properties": properties,
				"time":       time.Now().UTC().Format(time.RFC3339),
				"metric": map[string]interface{}{
					"data": map[string]interface{}{
						"type": "metric",
						"attributes": map[string]interface{}{
							"name": metric,
						},
					},
				},
				"profile": map[string]interface{}{
					"data": map[string]interface{}{
						"type": "profile",
						"attributes": map[string]interface{}{
							"email": email,
						},
					},
				},
			},
		},
	}

	_, err := c.do(ctx, http.MethodPost, "/events/", payload)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	if c.apiKey == "" {
		return nil, errors.New("missing Klaviyo API key")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, apiBase+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Klaviyo-API-Key "+c.apiKey)
	req.Header.Set("Revision", apiRevision)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("klaviyo request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("klaviyo returned status %d: %s", resp.StatusCode, truncate(raw, 200))
	}

	return raw, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
