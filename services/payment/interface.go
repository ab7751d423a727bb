package payment

import (
	bookingRepo "petcare/database/repository/booking"
	paymentRepo "petcare/database/repository/payment"
	serviceRepo "petcare/database/repository/service"
	userRepo "petcare/database/repository/user"
	"petcare/models"
	"petcare/services/storage"

	"github.com/go-redis/redis/v8"
)

// CreatePaymentInput is the payload for initiating a payment attempt.
type CreatePaymentInput struct {
	BookingID string  `json:"bookingId"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
}

// SlipUpload carries an uploaded slip image prior to validation.
type SlipUpload struct {
	Data        []byte
	ContentType string
	Size        int64
}

// PaymentService is the reconciliation engine: it owns payment records and
// is the only component allowed to mutate a payment and its sibling booking
// in one logical operation.
type PaymentService interface {
	CreatePayment(actor models.Actor, input CreatePaymentInput) (*models.Payment, error)
	AttachSlip(actor models.Actor, paymentID string, upload SlipUpload) (string, error)
	GetPayment(actor models.Actor, id string) (*models.PaymentView, error)
	ListMine(actor models.Actor) ([]models.PaymentView, error)
	ListAllAdmin(actor models.Actor) ([]models.PaymentView, error)
	SetStatus(actor models.Actor, id, status string) (*models.Payment, error)

	ApprovePayment(bookingID string, actor models.Actor) (*models.Payment, error)
	RejectPayment(bookingID string, actor models.Actor) error
	GetPendingForReview(actor models.Actor) ([]models.PendingReview, error)
	GetAdminStats(actor models.Actor) (*models.AdminStats, error)
}

// DefaultPaymentService is the production implementation.
type DefaultPaymentService struct {
	Repo        paymentRepo.PaymentRepository
	BookingRepo bookingRepo.BookingRepository
	UserRepo    userRepo.UserRepository
	ServiceRepo serviceRepo.ServiceRepository
	Storage     storage.StorageService
	// Cache, when set, holds the admin stats snapshot for a few seconds.
	Cache *redis.Client
}
