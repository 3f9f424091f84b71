package service

import (
	"context"
	"fmt"

	"commenthub/internal/microservices/http-api/models"
)

// SpamFields is the subset of a submission handed to the spam classifier
type SpamFields struct {
	Name    string
	Email   string
	Website string
	Body    string
	IP      string
}

// SpamClassifier decides whether a comment looks like spam. A transport
// error must be returned as an error, never as a "not spam" verdict.
type SpamClassifier interface {
	IsSpam(ctx context.Context, fields *SpamFields) (bool, error)
}

// CaptchaVerifier validates a captcha challenge response
type CaptchaVerifier interface {
	Verify(ctx context.Context, response, remoteIP string) (bool, error)
}

// submission carries one request through the gate chain
type submission struct {
	policy CommentPolicy
	node   *models.Node
	// fields is nil for display-only prechecks; gates that inspect
	// submitted data are no-ops without it
	fields  *SpamFields
	captcha string
}

// gate is one pass/fail check in the chain. nil means pass; a rejection
// sentinel stops the chain with that reason.
type gate func(ctx context.Context, sub *submission) error

// runGates folds the chain left to right, short-circuiting on the first
// rejection. Later gates are never evaluated after a failure.
func runGates(ctx context.Context, gates []gate, sub *submission) error {
	for _, g := range gates {
		if err := g(ctx, sub); err != nil {
			return err
		}
	}
	return nil
}

// spamGate rejects submissions the classifier flags as spam. A classifier
// failure rejects too: fail closed, not open.
func spamGate(classifier SpamClassifier) gate {
	return func(ctx context.Context, sub *submission) error {
		if !sub.policy.SpamProtection || sub.fields == nil {
			return nil
		}
		isSpam, err := classifier.IsSpam(ctx, sub.fields)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrProtectionUnavailable, err)
		}
		if isSpam {
			return ErrLikelySpam
		}
		return nil
	}
}

// captchaGate rejects submissions whose challenge response does not verify
func captchaGate(verifier CaptchaVerifier) gate {
	return func(ctx context.Context, sub *submission) error {
		if !sub.policy.CaptchaProtection || sub.fields == nil {
			return nil
		}
		ok, err := verifier.Verify(ctx, sub.captcha, sub.fields.IP)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrProtectionUnavailable, err)
		}
		if !ok {
			return ErrInvalidCaptcha
		}
		return nil
	}
}
