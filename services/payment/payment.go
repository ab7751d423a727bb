package payment

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"petcare/models"
	"petcare/services/storage"
	"petcare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxSlipSize = 2 * 1024 * 1024 // 2 MiB

const refTokenAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// newTransactionRef builds a reference unique per call even under rapid
// repeated attempts for the same booking: bookingID + millis + random token.
func newTransactionRef(bookingID string) string {
	token := make([]byte, 9)
	for i := range token {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(refTokenAlphabet))))
		if err != nil {
			// crypto/rand failing is not survivable for uniqueness.
			panic(fmt.Sprintf("transaction ref: %v", err))
		}
		token[i] = refTokenAlphabet[n.Int64()]
	}
	return fmt.Sprintf("%s_%d_%s", bookingID, time.Now().UnixMilli(), token)
}

// CreatePayment stores a new PENDING payment attempt for a booking.
func (s *DefaultPaymentService) CreatePayment(actor models.Actor, input CreatePaymentInput) (*models.Payment, error) {
	if input.BookingID == "" || input.Amount == 0 {
		return nil, utils.Validationf("bookingId and amount are required")
	}
	if input.Amount < 0 {
		return nil, utils.Validationf("amount must be positive")
	}
	if _, err := s.BookingRepo.GetByID(input.BookingID); err != nil {
		return nil, err
	}

	method := input.Method
	if method == "" {
		method = models.PaymentMethodPromptPay
	}

	payment := &models.Payment{
		ID:             uuid.New().String(),
		BookingID:      input.BookingID,
		Amount:         input.Amount,
		Method:         method,
		TransactionRef: newTransactionRef(input.BookingID),
		Status:         models.PaymentPending,
	}
	if err := s.Repo.Create(payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	utils.GetLogger().Info("Payment created",
		zap.String("paymentID", payment.ID),
		zap.String("bookingID", input.BookingID))
	return payment, nil
}

// AttachSlip validates the uploaded slip image, stores it in the blob store
// and persists the returned URL on the payment.
func (s *DefaultPaymentService) AttachSlip(actor models.Actor, paymentID string, upload SlipUpload) (string, error) {
	if len(upload.Data) == 0 {
		return "", utils.Validationf("image file is required")
	}
	if upload.ContentType != "image/jpeg" && upload.ContentType != "image/png" {
		return "", utils.Validationf("invalid file type")
	}
	if upload.Size > maxSlipSize {
		return "", utils.Validationf("file too large (max 2MB)")
	}

	payment, err := s.Repo.GetByID(paymentID)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	name := fmt.Sprintf("%s-%d", payment.ID, time.Now().UnixMilli())
	slipURL, err := s.Storage.Upload(ctx, storage.FolderSlips, name, bytes.NewReader(upload.Data), upload.ContentType)
	if err != nil {
		return "", fmt.Errorf("upload slip for payment %s: %w", paymentID, err)
	}

	if err := s.Repo.SetSlipURL(paymentID, slipURL); err != nil {
		return "", fmt.Errorf("persist slip url for payment %s: %w", paymentID, err)
	}
	utils.GetLogger().Info("Slip uploaded", zap.String("paymentID", paymentID))
	return slipURL, nil
}

// GetPayment returns a payment with its booking resolved. Owners see their
// own payments; admins see any.
func (s *DefaultPaymentService) GetPayment(actor models.Actor, id string) (*models.PaymentView, error) {
	payment, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	view := models.PaymentView{Payment: *payment}
	booking, err := s.BookingRepo.GetByID(payment.BookingID)
	if err == nil {
		view.Booking = booking
	}
	if booking == nil || booking.UserID != actor.ID {
		if err := utils.RequireRole(actor.Role, models.RoleAdmin, models.RoleService); err != nil {
			return nil, err
		}
	}
	return &view, nil
}

// ListMine returns payments whose booking belongs to the caller, newest
// first. Payments against deleted bookings are dropped.
func (s *DefaultPaymentService) ListMine(actor models.Actor) ([]models.PaymentView, error) {
	payments, err := s.Repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	views := make([]models.PaymentView, 0, len(payments))
	for _, p := range payments {
		booking, err := s.BookingRepo.GetByID(p.BookingID)
		if err != nil || booking.UserID != actor.ID {
			continue
		}
		views = append(views, models.PaymentView{Payment: p, Booking: booking})
	}
	return views, nil
}

// ListAllAdmin returns every payment with booking, owner and service
// resolved, newest first. Admin only.
func (s *DefaultPaymentService) ListAllAdmin(actor models.Actor) ([]models.PaymentView, error) {
	if err := utils.RequireRole(actor.Role, models.RoleAdmin); err != nil {
		return nil, err
	}
	payments, err := s.Repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("list all payments: %w", err)
	}

	views := make([]models.PaymentView, 0, len(payments))
	for _, p := range payments {
		view := models.PaymentView{Payment: p}
		if booking, err := s.BookingRepo.GetByID(p.BookingID); err == nil {
			view.Booking = booking
			if u, err := s.UserRepo.GetByID(booking.UserID); err == nil {
				pub := u.Public()
				view.User = &pub
			}
			if svc, err := s.ServiceRepo.GetByID(booking.ServiceID); err == nil {
				summary := svc.Summary()
				view.Service = &summary
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// SetStatus updates a payment's status directly. Staff and admins only.
func (s *DefaultPaymentService) SetStatus(actor models.Actor, id, status string) (*models.Payment, error) {
	if err := utils.RequireRole(actor.Role, models.RoleAdmin, models.RoleService); err != nil {
		return nil, err
	}
	if !models.ValidPaymentStatus(status) {
		return nil, utils.Validationf("valid status is required (PENDING, PAID, REJECTED)")
	}
	if err := s.Repo.SetStatus(id, status); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(id)
}
