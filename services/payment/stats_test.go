package payment

import (
	"testing"
	"time"

	"petcare/models"
	"petcare/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAdminStats(t *testing.T) {
	f := newPaymentFixture()

	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)

	// Three bookings today, two yesterday.
	for i, createdAt := range []time.Time{now, now, now, yesterday, yesterday} {
		require.NoError(t, f.bookings.Create(&models.Booking{
			ID:        "bk-" + string(rune('a'+i)),
			UserID:    owner.ID,
			ServiceID: "svc-1",
			Status:    models.BookingPending,
			CreatedAt: createdAt,
		}))
	}

	// Two pending payments and two paid ones worth 1500 total.
	require.NoError(t, f.payments.Create(&models.Payment{ID: "p1", BookingID: "bk-a", Amount: 500, Status: models.PaymentPending}))
	require.NoError(t, f.payments.Create(&models.Payment{ID: "p2", BookingID: "bk-b", Amount: 300, Status: models.PaymentPending}))
	require.NoError(t, f.payments.Create(&models.Payment{ID: "p3", BookingID: "bk-c", Amount: 1000, Status: models.PaymentPaid}))
	require.NoError(t, f.payments.Create(&models.Payment{ID: "p4", BookingID: "bk-d", Amount: 500, Status: models.PaymentPaid}))
	// A rejected payment counts toward neither pending nor revenue.
	require.NoError(t, f.payments.Create(&models.Payment{ID: "p5", BookingID: "bk-e", Amount: 999, Status: models.PaymentRejected}))

	for i := 0; i < 5; i++ {
		f.users.users[string(rune('u'+i))] = &models.User{ID: string(rune('u' + i))}
	}

	stats, err := f.svc.GetAdminStats(admin)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TodayBookings)
	assert.Equal(t, int64(2), stats.PendingPayments)
	assert.Equal(t, int64(5), stats.TotalUsers)
	assert.Equal(t, 1500.0, stats.TotalRevenue)
}

func TestGetAdminStatsRequiresAdmin(t *testing.T) {
	f := newPaymentFixture()

	_, err := f.svc.GetAdminStats(owner)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	_, err = f.svc.GetAdminStats(models.Actor{ID: "staff-1", Role: models.RoleService})
	assert.ErrorIs(t, err, utils.ErrForbidden)
}
