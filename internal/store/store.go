// Package store provides the durable record of appointments.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/SiliveruSumanth/pest-protect-gallery-web/internal/config"
	"github.com/SiliveruSumanth/pest-protect-gallery-web/internal/model"
)

// Store is the persistence surface the booking handler depends on.
type Store interface {
	Insert(ctx context.Context, req model.AppointmentRequest) (model.AppointmentRecord, error)
}

// Database provides Postgres-backed appointment storage.
type Database struct {
	db *sqlx.DB
}

// NewDatabase connects to Postgres using the supplied configuration.
func NewDatabase(cfg config.Config) (*Database, error) {
	db, err := sqlx.Connect("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &Database{db: db}, nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// Insert writes a new appointment with a generated id, status "pending"
// and the current time, and returns the stored record.
func (d *Database) Insert(ctx context.Context, req model.AppointmentRequest) (model.AppointmentRecord, error) {
	rec := model.AppointmentRecord{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		PestType:      req.PestType,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		Status:        model.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO appointments (id, name, phone, email, address, pest_type, preferred_date, preferred_time, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, rec.ID, rec.Name, rec.Phone, rec.Email, rec.Address, rec.PestType, rec.PreferredDate, rec.PreferredTime, rec.Status, rec.CreatedAt)
	if err != nil {
		return model.AppointmentRecord{}, fmt.Errorf("insert appointment: %w", err)
	}

	return rec, nil
}

// GetByID fetches a single appointment.
func (d *Database) GetByID(ctx context.Context, id string) (model.AppointmentRecord, error) {
	var rec model.AppointmentRecord
	err := d.db.GetContext(ctx, &rec, "SELECT * FROM appointments WHERE id = $1", id)
	return rec, err
}

// List returns appointments newest first, for follow-up and reconciliation.
func (d *Database) List(ctx context.Context) ([]model.AppointmentRecord, error) {
	var recs []model.AppointmentRecord
	err := d.db.SelectContext(ctx, &recs, "SELECT * FROM appointments ORDER BY created_at DESC")
	return recs, err
}

// UpdateStatus moves an appointment to confirmed or cancelled. The booking
// pipeline never calls this; it exists for out-of-band follow-up.
func (d *Database) UpdateStatus(ctx context.Context, id, status string) error {
	if status != model.StatusConfirmed && status != model.StatusCancelled && status != model.StatusPending {
		return fmt.Errorf("unknown appointment status %q", status)
	}
	_, err := d.db.ExecContext(ctx, "UPDATE appointments SET status = $1 WHERE id = $2", status, id)
	return err
}
