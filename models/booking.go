package models

import "time"

// Booking statuses.
const (
	BookingPending   = "PENDING"
	BookingPaid      = "PAID"
	BookingCancelled = "CANCELLED"
)

// CancelGraceWindow is both the undo window after a cancellation and the
// grace period before the sweeper deletes the booking. The two deadlines
// must stay numerically identical.
const CancelGraceWindow = 15 * time.Minute

// Booking represents a user's reservation of a service at a date/time slot.
// Invariant: CancelledAt is non-nil if and only if Status == CANCELLED.
type Booking struct {
	ID          string     `bson:"id" json:"id"`
	UserID      string     `bson:"userId" json:"userId"`
	ServiceID   string     `bson:"serviceId" json:"serviceId"`
	BookingDate string     `bson:"bookingDate" json:"bookingDate"` // "YYYY-MM-DD"
	BookingTime string     `bson:"bookingTime" json:"bookingTime"` // slot label, e.g. "10:00"
	PetName     string     `bson:"petName" json:"petName"`
	Note        string     `bson:"note,omitempty" json:"note,omitempty"`
	Status      string     `bson:"status" json:"status"`
	CancelledAt *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// ValidBookingStatus reports whether status is one of the booking statuses.
func ValidBookingStatus(status string) bool {
	switch status {
	case BookingPending, BookingPaid, BookingCancelled:
		return true
	}
	return false
}

// BookingView is a booking enriched with its owner, service and latest
// payment state, assembled read-side by the services (no embedded documents
// are persisted).
type BookingView struct {
	Booking
	User          *PublicUser     `json:"user,omitempty"`
	Service       *ServiceSummary `json:"service,omitempty"`
	PaymentID     string          `json:"paymentId,omitempty"`
	PaymentStatus string          `json:"paymentStatus,omitempty"`
	SlipURL       string          `json:"slipUrl,omitempty"`
}

// CancelResult is returned from a cancellation: the updated booking plus the
// deadline after which the sweeper may delete it.
type CancelResult struct {
	Booking   *Booking  `json:"booking"`
	ExpiresAt time.Time `json:"cancelExpiresAt"`
}
