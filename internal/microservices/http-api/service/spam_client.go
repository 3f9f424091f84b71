package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// Bounded timeout for the external classifier; a timeout is a hard
	// failure surfaced to the caller, never an implicit "not spam"
	spamCheckTimeout = 10 * time.Second
)

// AkismetClient submits comment fields to the Akismet comment-check API
type AkismetClient struct {
	endpoint   string
	siteURL    string
	httpClient *http.Client
}

// NewAkismetClient creates a spam classifier backed by Akismet. key is the
// API key, siteURL identifies the site the comments belong to.
func NewAkismetClient(key, siteURL string) *AkismetClient {
	return &AkismetClient{
		endpoint: fmt.Sprintf("https://%s.rest.akismet.com/1.1/comment-check", key),
		siteURL:  siteURL,
		httpClient: &http.Client{
			Timeout: spamCheckTimeout,
		},
	}
}

// IsSpam asks the classifier for a verdict on the submitted fields
func (c *AkismetClient) IsSpam(ctx context.Context, fields *SpamFields) (bool, error) {
	form := url.Values{}
	form.Set("blog", c.siteURL)
	form.Set("user_ip", fields.IP)
	form.Set("comment_type", "comment")
	form.Set("comment_author", fields.Name)
	form.Set("comment_author_email", fields.Email)
	form.Set("comment_author_url", fields.Website)
	form.Set("comment_content", fields.Body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("building spam check request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("spam check request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("spam check returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("reading spam check response: %w", err)
	}

	// The API answers with a literal "true" or "false" body
	switch strings.TrimSpace(string(body)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("unexpected spam check response: %q", string(body))
	}
}
