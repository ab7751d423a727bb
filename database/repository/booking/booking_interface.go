package bookingRepo

import (
	"time"

	"petcare/models"
)

// BookingRepository abstracts persistence for booking documents.
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	GetByUser(userID string) ([]models.Booking, error)
	GetAll() ([]models.Booking, error)
	// SetStatus updates only the status field.
	SetStatus(id, status string) error
	// MarkCancelled sets status=CANCELLED and stamps cancelledAt.
	MarkCancelled(id string, cancelledAt time.Time) error
	// ClearCancellation resets status=PENDING and unsets cancelledAt.
	ClearCancellation(id string) error
	Delete(id string) error
	// DeleteExpiredCancellations removes every booking cancelled before the
	// cutoff and returns the number deleted.
	DeleteExpiredCancellations(cutoff time.Time) (int64, error)
	// CountCreatedBetween counts bookings created in [from, to).
	CountCreatedBetween(from, to time.Time) (int64, error)
}
