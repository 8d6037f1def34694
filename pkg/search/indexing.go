package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/indexing/v3"
	"google.golang.org/api/option"
)

// IndexingClient notifies Google when published URLs change so listings and
// blog posts get recrawled quickly.
type IndexingClient struct {
	service    *indexing.Service
	siteURL    string
	httpClient *http.Client
}

// NewIndexingClient builds a client from service account credentials JSON.
// Passing empty credentials returns a disabled client.
func NewIndexingClient(ctx context.Context, credentialsJSON []byte, siteURL string) (*IndexingClient, error) {
	client := &IndexingClient{
		siteURL:    siteURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}

	if len(credentialsJSON) == 0 {
		return client, nil
	}

	jwtConfig, err := google.JWTConfigFromJSON(credentialsJSON, indexing.IndexingScope)
	if err != nil {
		return nil, fmt.Errorf("invalid indexing credentials: %w", err)
	}

	service, err := indexing.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create indexing service: %w", err)
	}

	client.service = service
	return client, nil
}

func (c *IndexingClient) Enabled() bool {
	return c.service != nil
}

// PageURL joins a site-relative path onto the configured site URL.
func (c *IndexingClient) PageURL(path string) string {
	return strings.TrimRight(c.siteURL, "/") + path
}

// NotifyUpdated tells Google a URL was published or changed.
func (c *IndexingClient) NotifyUpdated(ctx context.Context, pageURL string) error {
	return c.publish(ctx, pageURL, "URL_UPDATED")
}

// NotifyDeleted tells Google a URL was removed.
func (c *IndexingClient) NotifyDeleted(ctx context.Context, pageURL string) error {
	return c.publish(ctx, pageURL, "URL_DELETED")
}

func (c *IndexingClient) publish(ctx context.Context, pageURL, notificationType string) error {
	if c.service == nil {
		return nil
	}

	_, err := c.service.UrlNotifications.Publish(&indexing.UrlNotification{
		Url:  pageURL,
		Type: notificationType,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to publish URL notification: %w", err)
	}

	return nil
}

// PingSitemap asks Google to refetch the sitemap. This needs no credentials
// and is a best-effort signal.
func (c *IndexingClient) PingSitemap(ctx context.Context) error {
	if c.siteURL == "" {
		return nil
	}

	sitemap := c.siteURL + "/sitemap.xml"
	pingURL := "https://www.google.com/ping?sitemap=" + url.QueryEscape(sitemap)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pingURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sitemap ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sitemap ping returned status %d", resp.StatusCode)
	}

	return nil
}
