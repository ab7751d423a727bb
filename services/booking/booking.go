package booking

import (
	"errors"
	"fmt"
	"time"

	"petcare/models"
	"petcare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking validates the input and stores a new PENDING booking.
func (s *DefaultBookingService) CreateBooking(actor models.Actor, input CreateBookingInput) (*models.Booking, error) {
	if input.ServiceID == "" || input.BookingDate == "" || input.BookingTime == "" || input.PetName == "" {
		return nil, utils.Validationf("serviceId, bookingDate, bookingTime, petName are required")
	}

	booking := &models.Booking{
		ID:          uuid.New().String(),
		UserID:      actor.ID,
		ServiceID:   input.ServiceID,
		BookingDate: input.BookingDate,
		BookingTime: input.BookingTime,
		PetName:     input.PetName,
		Note:        input.Note,
		Status:      models.BookingPending,
	}
	if err := s.Repo.Create(booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	utils.GetLogger().Info("Booking created",
		zap.String("bookingID", booking.ID),
		zap.String("userID", actor.ID))
	return booking, nil
}

// GetBooking returns a single booking with its service and latest payment
// resolved. Owners see their own bookings; staff and admins see any.
func (s *DefaultBookingService) GetBooking(actor models.Actor, id string) (*models.BookingView, error) {
	booking, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if booking.UserID != actor.ID {
		if err := utils.RequireRole(actor.Role, models.RoleAdmin, models.RoleService); err != nil {
			return nil, err
		}
	}
	view := s.resolve(*booking, false)
	return &view, nil
}

// ListMine returns the caller's bookings enriched with payment state.
func (s *DefaultBookingService) ListMine(actor models.Actor) ([]models.BookingView, error) {
	bookings, err := s.Repo.GetByUser(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list bookings for user %s: %w", actor.ID, err)
	}
	views := make([]models.BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, s.resolve(b, false))
	}
	return views, nil
}

// ListAll returns every booking with owner and service resolved. Admin only.
func (s *DefaultBookingService) ListAll(actor models.Actor) ([]models.BookingView, error) {
	if err := utils.RequireRole(actor.Role, models.RoleAdmin); err != nil {
		return nil, err
	}
	bookings, err := s.Repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("list all bookings: %w", err)
	}
	views := make([]models.BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, s.resolve(b, true))
	}
	return views, nil
}

// resolve assembles the read-side composition for a booking: the service
// summary, the latest payment attempt, and (for admin views) the owner.
// Dangling references resolve to nil rather than failing the whole listing.
func (s *DefaultBookingService) resolve(b models.Booking, withUser bool) models.BookingView {
	view := models.BookingView{Booking: b}

	if svc, err := s.ServiceRepo.GetByID(b.ServiceID); err == nil {
		summary := svc.Summary()
		view.Service = &summary
	}
	if withUser {
		if u, err := s.UserRepo.GetByID(b.UserID); err == nil {
			pub := u.Public()
			view.User = &pub
		}
	}
	if p, err := s.PaymentRepo.GetLatestByBooking(b.ID); err == nil {
		view.PaymentID = p.ID
		view.PaymentStatus = p.Status
		view.SlipURL = p.SlipURL
	}
	return view
}

// UpdateStatus sets a booking's status directly. Staff and admins only.
func (s *DefaultBookingService) UpdateStatus(actor models.Actor, id, status string) (*models.Booking, error) {
	if err := utils.RequireRole(actor.Role, models.RoleAdmin, models.RoleService); err != nil {
		return nil, err
	}
	if !models.ValidBookingStatus(status) {
		return nil, utils.Validationf("valid status is required (PENDING, PAID, CANCELLED)")
	}
	if err := s.Repo.SetStatus(id, status); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(id)
}

// Cancel marks a booking CANCELLED and stamps cancelledAt. Permitted for the
// owner and for staff/admins. The returned result carries the deadline after
// which the sweeper deletes the booking permanently.
func (s *DefaultBookingService) Cancel(actor models.Actor, id string) (*models.CancelResult, error) {
	booking, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if booking.UserID != actor.ID {
		if err := utils.RequireRole(actor.Role, models.RoleAdmin, models.RoleService); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	if err := s.Repo.MarkCancelled(id, now); err != nil {
		return nil, fmt.Errorf("cancel booking %s: %w", id, err)
	}

	booking, err = s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Booking cancelled",
		zap.String("bookingID", id),
		zap.Time("deleteAfter", now.Add(models.CancelGraceWindow)))
	return &models.CancelResult{
		Booking:   booking,
		ExpiresAt: now.Add(models.CancelGraceWindow),
	}, nil
}

// UndoCancel restores a cancelled booking to PENDING, permitted for the
// owner and admins, only within the grace window. A booking the sweeper
// already deleted surfaces as not-found; callers treat that the same as an
// expired window.
func (s *DefaultBookingService) UndoCancel(actor models.Actor, id string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if booking.UserID != actor.ID {
		if err := utils.RequireRole(actor.Role, models.RoleAdmin); err != nil {
			return nil, err
		}
	}
	if booking.Status != models.BookingCancelled || booking.CancelledAt == nil {
		return nil, fmt.Errorf("booking %s is not cancelled: %w", id, utils.ErrInvalidState)
	}
	if time.Since(*booking.CancelledAt) > models.CancelGraceWindow {
		return nil, fmt.Errorf("cannot undo after %v: %w", models.CancelGraceWindow, utils.ErrWindowExpired)
	}

	if err := s.Repo.ClearCancellation(id); err != nil {
		return nil, fmt.Errorf("undo cancel for booking %s: %w", id, err)
	}
	utils.GetLogger().Info("Booking restored", zap.String("bookingID", id))
	return s.Repo.GetByID(id)
}

// DeleteExpiredCancellations removes every booking cancelled longer than
// grace ago. Errors are logged, never propagated: the sweeper must outlive
// any single failed pass.
func (s *DefaultBookingService) DeleteExpiredCancellations(grace time.Duration) int64 {
	logger := utils.GetLogger()
	cutoff := time.Now().Add(-grace)

	deleted, err := s.Repo.DeleteExpiredCancellations(cutoff)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		logger.Error("Failed to delete expired cancellations", zap.Error(err))
		return 0
	}
	if deleted > 0 {
		logger.Info("Deleted expired cancelled bookings", zap.Int64("count", deleted))
	}
	return deleted
}
