// Package client implements the browser side of the booking pipeline for
// Go callers: local throttling, sanitization and validation before the
// request ever leaves the process, then the POST to the booking endpoint.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SiliveruSumanth/pest-protect-gallery-web/internal/model"
	"github.com/SiliveruSumanth/pest-protect-gallery-web/internal/ratelimit"
	"github.com/SiliveruSumanth/pest-protect-gallery-web/internal/sanitize"
	"github.com/SiliveruSumanth/pest-protect-gallery-web/internal/validate"
)

// Local throttle: stricter than the server's so a well-behaved caller is
// never the one to see a 429.
const (
	defaultMaxRequests = 2
	defaultWindow      = 10 * time.Minute
	requestTimeout     = 15 * time.Second
)

// User-facing feedback strings. Internal error detail never appears here.
const (
	msgSuccess        = "We'll contact you soon to confirm your appointment!"
	msgMissingFields  = "Please fill in all required fields"
	msgInvalidPhone   = "Please enter a valid phone number"
	msgFailure        = "Something went wrong. Please try again later."
	msgInFlight       = "A submission is already in progress"
	msgRateLimitedFmt = "Too many booking attempts. Please try again in about %d minute(s)."
)

// Result is the user-facing outcome of one submission attempt.
type Result struct {
	OK      bool
	Message string

	// RetryAfter is set when the local limiter denied the attempt.
	RetryAfter time.Duration

	// Response holds the server payload on success.
	Response *model.BookingResponse
}

// Submitter orchestrates a single booking form's submissions. One
// submission may be in flight at a time; concurrent calls are rejected
// rather than queued.
type Submitter struct {
	log      *zap.Logger
	endpoint string
	client   *http.Client
	limiter  *ratelimit.Limiter

	mu       sync.Mutex
	inFlight bool
}

// New creates a Submitter posting to endpoint with the default local
// throttle of 2 requests per 10 minutes per phone number.
func New(log *zap.Logger, endpoint string) *Submitter {
	return &Submitter{
		log:      log,
		endpoint: endpoint,
		client:   &http.Client{Timeout: requestTimeout},
		limiter:  ratelimit.New(defaultMaxRequests, defaultWindow),
	}
}

// NewWithLimiter is New with an explicit limiter, for callers that share
// one throttle across forms or need different bounds.
func NewWithLimiter(log *zap.Logger, endpoint string, l *ratelimit.Limiter) *Submitter {
	s := New(log, endpoint)
	s.limiter = l
	return s
}

// Submit runs the client side of the pipeline: throttle check, sanitize,
// required-field and phone checks, then the network call. On success the
// form is reset in place, retaining only the email identity field.
func (s *Submitter) Submit(ctx context.Context, form *model.AppointmentRequest) Result {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return Result{Message: msgInFlight}
	}
	s.inFlight = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	// Throttle before anything else: a denied attempt makes no network call.
	key := "appointment_" + form.Phone
	if !s.limiter.Allow(key) {
		wait := s.limiter.RemainingTime(key)
		s.log.Warn("local rate limit hit", zap.Duration("retry_after", wait))
		minutes := int(math.Ceil(wait.Minutes()))
		if minutes < 1 {
			minutes = 1
		}
		return Result{
			Message:    fmt.Sprintf(msgRateLimitedFmt, minutes),
			RetryAfter: wait,
		}
	}

	clean := sanitize.Request(*form)

	if clean.Name == "" || clean.Phone == "" || clean.Address == "" || clean.PestType == "" {
		return Result{Message: msgMissingFields}
	}
	if !validate.IsValidPhone(clean.Phone) {
		return Result{Message: msgInvalidPhone}
	}

	resp, err := s.post(ctx, clean)
	if err != nil {
		s.log.Error("booking submission failed", zap.Error(err))
		return Result{Message: msgFailure}
	}

	*form = model.AppointmentRequest{Email: form.Email}
	return Result{OK: true, Message: msgSuccess, Response: resp}
}

func (s *Submitter) post(ctx context.Context, req model.AppointmentRequest) (*model.BookingResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("booking endpoint returned status %d", httpResp.StatusCode)
	}

	var booking model.BookingResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&booking); err != nil {
		return nil, err
	}
	if !booking.Success {
		return nil, fmt.Errorf("booking endpoint reported failure")
	}
	return &booking, nil
}
