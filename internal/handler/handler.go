// Package handler contains HTTP handlers for the booking API.
package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/SiliveruSumanth/pest-protect-gallery-web/internal/apperror"
	"github.com/SiliveruSumanth/pest-protect-gallery-web/internal/mailer"
	"github.com/SiliveruSumanth/pest-protect-gallery-web/internal/model"
	"github.com/SiliveruSumanth/pest-protect-gallery-web/internal/notifyqueue"
	"github.com/SiliveruSumanth/pest-protect-gallery-web/internal/ratelimit"
	"github.com/SiliveruSumanth/pest-protect-gallery-web/internal/sanitize"
	"github.com/SiliveruSumanth/pest-protect-gallery-web/internal/store"
	"github.com/SiliveruSumanth/pest-protect-gallery-web/internal/validate"
)

// Handler wires the booking pipeline: rate limit, validate, sanitize,
// persist, notify. The limiter instance here is the authoritative one;
// whatever throttling the browser does is trivially bypassable.
type Handler struct {
	log      *zap.Logger
	store    store.Store
	mail     mailer.Mailer
	limiter  *ratelimit.Limiter
	queue    notifyqueue.Queue
	validate *validator.Validate

	ownerEmail string
	fromEmail  string
}

// New creates a new Handler instance. queue may be nil, in which case a
// failed owner notification is logged and dropped instead of retried.
func New(log *zap.Logger, s store.Store, m mailer.Mailer, l *ratelimit.Limiter, q notifyqueue.Queue, ownerEmail, fromEmail string) *Handler {
	v := validator.New()
	_ = v.RegisterValidation("bookingphone", validate.Phone)
	return &Handler{
		log:        log,
		store:      s,
		mail:       m,
		limiter:    l,
		queue:      q,
		validate:   v,
		ownerEmail: ownerEmail,
		fromEmail:  fromEmail,
	}
}

// Healthz is a simple health check endpoint.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// Book accepts an appointment submission, re-validates and re-sanitizes it,
// persists a pending record, and dispatches notification emails. The owner
// notification must succeed for the request to succeed; the customer
// confirmation is best-effort.
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req model.AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode json", zap.Error(err))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		return
	}

	// Rejected(RateLimited). Keyed by IP and phone before any field check so
	// a flood of garbage submissions still burns the sender's quota.
	limitKey := fmt.Sprintf("appointment_%s_%s", clientIP(r), req.Phone)
	if !h.limiter.Allow(limitKey) {
		h.log.Warn("rate limit exceeded", zap.String("key", limitKey))
		retry := h.limiter.RemainingTime(limitKey)
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(retry.Seconds())))
		h.writeError(w, apperror.ErrRateLimited)
		return
	}

	// Rejected(InvalidInput).
	if err := h.validate.Struct(req); err != nil {
		h.log.Warn("validation failed", zap.Error(err))
		h.writeError(w, apperror.FromValidation(err))
		return
	}

	// Server-authoritative pass, independent of any client sanitization.
	req = sanitize.Request(req)

	rec, err := h.store.Insert(r.Context(), req)
	if err != nil {
		// Rejected(StoreFailure): no email goes out for an unsaved booking.
		h.log.Error("database error", zap.Error(err))
		h.writeError(w, apperror.ErrStoreFailure)
		return
	}
	h.log.Info("appointment saved",
		zap.String("appointment_id", rec.ID),
		zap.String("pest_type", rec.PestType))

	ownerMsg := mailer.OwnerNotification(rec)
	ownerMsg.From = h.fromEmail
	ownerMsg.To = h.ownerEmail
	ownerID, err := h.mail.Send(ownerMsg)
	if err != nil {
		// The record stays persisted with status pending. The queue retries
		// the notification in the background; the request still reports
		// failure because the caller was not told their booking went through.
		h.log.Error("owner notification failed",
			zap.String("appointment_id", rec.ID), zap.Error(err))
		if h.queue != nil {
			h.queue.Add(rec.ID, ownerMsg)
		}
		h.writeError(w, apperror.ErrInternal)
		return
	}

	var customerID *string
	if validate.IsValidEmail(rec.Email) {
		msg := mailer.CustomerConfirmation(rec)
		msg.From = h.fromEmail
		if id, err := h.mail.Send(msg); err != nil {
			h.log.Warn("customer confirmation failed",
				zap.String("appointment_id", rec.ID), zap.Error(err))
		} else {
			customerID = &id
		}
	}

	h.writeJSON(w, http.StatusOK, model.BookingResponse{
		Success:         true,
		AppointmentID:   rec.ID,
		OwnerEmailID:    ownerID,
		CustomerEmailID: customerID,
	})
}

func (h *Handler) writeError(w http.ResponseWriter, e *apperror.Error) {
	h.writeJSON(w, e.Status, map[string]string{"error": e.Message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("unable to write response stream", zap.Error(err))
	}
}

// setCORSHeaders marks every booking response, errors included, as
// callable from any origin. The form is served from a static site host
// that is not this process.
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
}

// clientIP prefers the CDN-provided address, then the standard proxy
// header, and falls back to "unknown" rather than trusting RemoteAddr,
// which behind the CDN is never the caller.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		if i := strings.IndexByte(ip, ','); i >= 0 {
			ip = ip[:i]
		}
		return strings.TrimSpace(ip)
	}
	return "unknown"
}
