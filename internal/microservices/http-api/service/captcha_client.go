package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	recaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

	captchaVerifyTimeout = 10 * time.Second
)

// RecaptchaClient verifies challenge responses against the reCAPTCHA
// siteverify endpoint
type RecaptchaClient struct {
	endpoint   string
	secret     string
	httpClient *http.Client
}

func NewRecaptchaClient(secret string) *RecaptchaClient {
	return &RecaptchaClient{
		endpoint: recaptchaVerifyURL,
		secret:   secret,
		httpClient: &http.Client{
			Timeout: captchaVerifyTimeout,
		},
	}
}

type recaptchaVerifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes,omitempty"`
}

// Verify checks a challenge response. False with a nil error is a failed
// challenge; an error is a transport problem the caller must treat as a
// verification outage, not as a pass.
func (c *RecaptchaClient) Verify(ctx context.Context, response, remoteIP string) (bool, error) {
	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", response)
	form.Set("remoteip", remoteIP)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("building captcha verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("captcha verify request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("captcha verify returned status %d", resp.StatusCode)
	}

	var verify recaptchaVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&verify); err != nil {
		return false, fmt.Errorf("decoding captcha verify response: %w", err)
	}

	return verify.Success, nil
}
