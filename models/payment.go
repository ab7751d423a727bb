package models

import "time"

// Payment statuses.
const (
	PaymentPending  = "PENDING"
	PaymentPaid     = "PAID"
	PaymentRejected = "REJECTED"
)

// PaymentMethodPromptPay is the only supported method: a manual bank
// transfer verified by slip review.
const PaymentMethodPromptPay = "PROMPTPAY"

// Payment records one payment attempt against a booking. A booking may
// accumulate several payment records across reject/resubmit cycles, so
// bookingId carries no uniqueness constraint; the current attempt is the
// most recent by CreatedAt.
type Payment struct {
	ID             string    `bson:"id" json:"id"`
	BookingID      string    `bson:"bookingId" json:"bookingId"`
	Amount         float64   `bson:"amount" json:"amount"`
	Method         string    `bson:"method" json:"method"`
	TransactionRef string    `bson:"transactionRef" json:"transactionRef"`
	SlipURL        string    `bson:"slipUrl,omitempty" json:"slipUrl,omitempty"`
	Status         string    `bson:"status" json:"status"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ValidPaymentStatus reports whether status is one of the payment statuses.
func ValidPaymentStatus(status string) bool {
	switch status {
	case PaymentPending, PaymentPaid, PaymentRejected:
		return true
	}
	return false
}

// PaymentView is a payment with its booking (and, for admin listings, the
// booking's owner and service) resolved.
type PaymentView struct {
	Payment
	Booking *Booking        `json:"booking,omitempty"`
	User    *PublicUser     `json:"user,omitempty"`
	Service *ServiceSummary `json:"service,omitempty"`
}

// PendingReview is the flattened projection the admin review screen works
// with: one row per payment awaiting manual verification.
type PendingReview struct {
	BookingID string          `json:"bookingId"`
	PaymentID string          `json:"paymentId"`
	User      *PublicUser     `json:"user,omitempty"`
	Service   *ServiceSummary `json:"service,omitempty"`
	Price     float64         `json:"price"`
	SlipURL   string          `json:"slipUrl,omitempty"`
}

// AdminStats aggregates the dashboard counters as of "now". The four values
// are computed independently; momentary skew between them is acceptable.
type AdminStats struct {
	TodayBookings   int64   `json:"todayBookings"`
	PendingPayments int64   `json:"pendingPayments"`
	TotalUsers      int64   `json:"totalUsers"`
	TotalRevenue    float64 `json:"totalRevenue"`
}
