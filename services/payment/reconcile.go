package payment

import (
	"fmt"

	"petcare/models"
	"petcare/utils"

	"go.uber.org/zap"
)

// ApprovePayment marks the booking's current payment PAID and then the
// booking itself PAID. Admin only.
//
// The payment write always goes first: if the process dies between the two
// writes, the payment is already terminal and only the booking lags, which
// is auditable and recoverable. A failed second write is reported as an
// InconsistencyError so it can be alerted on; it is never masked as a
// generic failure.
func (s *DefaultPaymentService) ApprovePayment(bookingID string, actor models.Actor) (*models.Payment, error) {
	if err := utils.RequireRole(actor.Role, models.RoleAdmin); err != nil {
		return nil, err
	}
	if bookingID == "" {
		return nil, utils.Validationf("booking ID is required")
	}

	payment, err := s.Repo.GetLatestByBooking(bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.SetStatus(payment.ID, models.PaymentPaid); err != nil {
		return nil, fmt.Errorf("approve payment %s: %w", payment.ID, err)
	}
	if err := s.BookingRepo.SetStatus(bookingID, models.BookingPaid); err != nil {
		return nil, utils.InconsistencyError{
			Op:        "approvePayment",
			BookingID: bookingID,
			PaymentID: payment.ID,
			Err:       err,
		}
	}

	utils.GetLogger().Info("Payment approved",
		zap.String("bookingID", bookingID),
		zap.String("paymentID", payment.ID))
	return s.Repo.GetByID(payment.ID)
}

// RejectPayment marks the booking's current payment REJECTED and resets the
// booking to PENDING so the user can resubmit. Admin only. The rejected
// record is retained: a booking accumulates one payment record per attempt.
func (s *DefaultPaymentService) RejectPayment(bookingID string, actor models.Actor) error {
	if err := utils.RequireRole(actor.Role, models.RoleAdmin); err != nil {
		return err
	}
	if bookingID == "" {
		return utils.Validationf("booking ID is required")
	}

	payment, err := s.Repo.GetLatestByBooking(bookingID)
	if err != nil {
		return err
	}

	if err := s.Repo.SetStatus(payment.ID, models.PaymentRejected); err != nil {
		return fmt.Errorf("reject payment %s: %w", payment.ID, err)
	}
	if err := s.BookingRepo.SetStatus(bookingID, models.BookingPending); err != nil {
		return utils.InconsistencyError{
			Op:        "rejectPayment",
			BookingID: bookingID,
			PaymentID: payment.ID,
			Err:       err,
		}
	}

	utils.GetLogger().Info("Payment rejected",
		zap.String("bookingID", bookingID),
		zap.String("paymentID", payment.ID))
	return nil
}

// GetPendingForReview returns one row per PENDING payment, flattened for the
// admin review screen. Payments whose booking has since been deleted are
// dropped silently.
func (s *DefaultPaymentService) GetPendingForReview(actor models.Actor) ([]models.PendingReview, error) {
	if err := utils.RequireRole(actor.Role, models.RoleAdmin); err != nil {
		return nil, err
	}

	pending, err := s.Repo.GetByStatus(models.PaymentPending)
	if err != nil {
		return nil, fmt.Errorf("list pending payments: %w", err)
	}

	reviews := make([]models.PendingReview, 0, len(pending))
	for _, p := range pending {
		booking, err := s.BookingRepo.GetByID(p.BookingID)
		if err != nil {
			continue
		}

		review := models.PendingReview{
			BookingID: booking.ID,
			PaymentID: p.ID,
			SlipURL:   p.SlipURL,
		}
		if u, err := s.UserRepo.GetByID(booking.UserID); err == nil {
			pub := u.Public()
			review.User = &pub
		}
		if svc, err := s.ServiceRepo.GetByID(booking.ServiceID); err == nil {
			summary := svc.Summary()
			review.Service = &summary
			review.Price = svc.Price
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}
