package booking

import (
	"time"

	bookingRepo "petcare/database/repository/booking"
	paymentRepo "petcare/database/repository/payment"
	serviceRepo "petcare/database/repository/service"
	userRepo "petcare/database/repository/user"
	"petcare/models"
)

// CreateBookingInput is the payload for creating a booking.
type CreateBookingInput struct {
	ServiceID   string `json:"serviceId"`
	BookingDate string `json:"bookingDate"`
	BookingTime string `json:"bookingTime"`
	PetName     string `json:"petName"`
	Note        string `json:"note"`
}

// BookingService owns the booking lifecycle: creation, listing, status
// transitions, the cancel/undo grace window and the expiry sweep.
type BookingService interface {
	CreateBooking(actor models.Actor, input CreateBookingInput) (*models.Booking, error)
	GetBooking(actor models.Actor, id string) (*models.BookingView, error)
	ListMine(actor models.Actor) ([]models.BookingView, error)
	ListAll(actor models.Actor) ([]models.BookingView, error)
	UpdateStatus(actor models.Actor, id, status string) (*models.Booking, error)
	Cancel(actor models.Actor, id string) (*models.CancelResult, error)
	UndoCancel(actor models.Actor, id string) (*models.Booking, error)
	// DeleteExpiredCancellations removes bookings cancelled longer than
	// grace ago and returns the number deleted. It never returns an error:
	// it runs unattended from the sweeper, so failures are logged instead.
	DeleteExpiredCancellations(grace time.Duration) int64
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo        bookingRepo.BookingRepository
	PaymentRepo paymentRepo.PaymentRepository
	ServiceRepo serviceRepo.ServiceRepository
	UserRepo    userRepo.UserRepository
}
