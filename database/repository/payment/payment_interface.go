package paymentRepo

import "petcare/models"

// PaymentRepository abstracts persistence for payment documents.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id string) (*models.Payment, error)
	// GetLatestByBooking returns the most recent payment attempt for a
	// booking (bookingId is not unique: reject/resubmit cycles accumulate
	// records).
	GetLatestByBooking(bookingID string) (*models.Payment, error)
	// GetAll returns all payments, newest first.
	GetAll() ([]models.Payment, error)
	// GetByStatus returns all payments with the given status, newest first.
	GetByStatus(status string) ([]models.Payment, error)
	SetStatus(id, status string) error
	SetSlipURL(id, slipURL string) error
	CountByStatus(status string) (int64, error)
	// SumAmountByStatus sums amounts over all payments with the status.
	SumAmountByStatus(status string) (float64, error)
}
