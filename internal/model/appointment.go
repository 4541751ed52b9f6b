package model

import "time"

// Pest categories offered on the booking form.
const (
	PestCockroach = "cockroach"
	PestTermite   = "termite"
	PestLizard    = "lizard"
	PestRodent    = "rodent"
	PestFlies     = "flies"
	PestAnts      = "ants"
	PestBedbugs   = "bedbugs"
	PestGeneral   = "general"
)

// Preferred visiting time bands.
const (
	TimeMorning   = "morning"   // 9 AM - 12 PM
	TimeAfternoon = "afternoon" // 12 PM - 4 PM
	TimeEvening   = "evening"   // 4 PM - 7 PM
)

// Appointment statuses. The booking pipeline only ever writes "pending";
// confirmed/cancelled are set by out-of-band follow-up.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// AppointmentRequest is the structure of an incoming booking submission.
// Enumeration membership of PestType and PreferredTime is deliberately not
// enforced; only presence and phone shape are.
type AppointmentRequest struct {
	Name          string `json:"name" validate:"required"`
	Phone         string `json:"phone" validate:"required,bookingphone"`
	Email         string `json:"email,omitempty"`
	Address       string `json:"address" validate:"required"`
	PestType      string `json:"pestType" validate:"required"`
	PreferredDate string `json:"preferredDate,omitempty"`
	PreferredTime string `json:"preferredTime,omitempty"`
}

// AppointmentRecord is the persisted form of an accepted submission.
// Immutable once written, apart from status transitions.
type AppointmentRecord struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Phone         string    `db:"phone" json:"phone"`
	Email         string    `db:"email" json:"email,omitempty"`
	Address       string    `db:"address" json:"address"`
	PestType      string    `db:"pest_type" json:"pestType"`
	PreferredDate string    `db:"preferred_date" json:"preferredDate,omitempty"`
	PreferredTime string    `db:"preferred_time" json:"preferredTime,omitempty"`
	Status        string    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// BookingResponse is the success payload of the booking endpoint.
// CustomerEmailID is nil when no confirmation was delivered.
type BookingResponse struct {
	Success         bool    `json:"success"`
	AppointmentID   string  `json:"appointmentId"`
	OwnerEmailID    string  `json:"ownerEmailId"`
	CustomerEmailID *string `json:"customerEmailId"`
}
