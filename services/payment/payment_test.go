package payment

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"petcare/models"
	"petcare/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePaymentRepo is an in-memory PaymentRepository that preserves creation
// order so latest-by-createdAt behaves like the Mongo index.
type fakePaymentRepo struct {
	payments []*models.Payment
	failSet  bool
}

func (r *fakePaymentRepo) Create(p *models.Payment) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = p.CreatedAt
	copied := *p
	r.payments = append(r.payments, &copied)
	return nil
}

func (r *fakePaymentRepo) find(id string) *models.Payment {
	for _, p := range r.payments {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *fakePaymentRepo) GetByID(id string) (*models.Payment, error) {
	p := r.find(id)
	if p == nil {
		return nil, fmt.Errorf("payment %s: %w", id, utils.ErrNotFound)
	}
	copied := *p
	return &copied, nil
}

func (r *fakePaymentRepo) GetLatestByBooking(bookingID string) (*models.Payment, error) {
	var latest *models.Payment
	for _, p := range r.payments {
		if p.BookingID != bookingID {
			continue
		}
		if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
			latest = p
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("payment for booking %s: %w", bookingID, utils.ErrNotFound)
	}
	copied := *latest
	return &copied, nil
}

func (r *fakePaymentRepo) GetAll() ([]models.Payment, error) {
	out := make([]models.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakePaymentRepo) GetByStatus(status string) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range r.payments {
		if p.Status == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) SetStatus(id, status string) error {
	if r.failSet {
		return fmt.Errorf("write concern error")
	}
	p := r.find(id)
	if p == nil {
		return fmt.Errorf("payment %s: %w", id, utils.ErrNotFound)
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	return nil
}

func (r *fakePaymentRepo) SetSlipURL(id, slipURL string) error {
	p := r.find(id)
	if p == nil {
		return fmt.Errorf("payment %s: %w", id, utils.ErrNotFound)
	}
	p.SlipURL = slipURL
	p.UpdatedAt = time.Now()
	return nil
}

func (r *fakePaymentRepo) CountByStatus(status string) (int64, error) {
	var n int64
	for _, p := range r.payments {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakePaymentRepo) SumAmountByStatus(status string) (float64, error) {
	var sum float64
	for _, p := range r.payments {
		if p.Status == status {
			sum += p.Amount
		}
	}
	return sum, nil
}

// fakeBookingStore is an in-memory BookingRepository with a switch to fail
// status writes, for exercising the reconciliation failure path.
type fakeBookingStore struct {
	bookings map[string]*models.Booking
	failSet  bool
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingStore) Create(b *models.Booking) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *fakeBookingStore) GetByID(id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, utils.ErrNotFound)
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingStore) GetByUser(userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingStore) GetAll() ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBookingStore) SetStatus(id, status string) error {
	if r.failSet {
		return fmt.Errorf("write concern error")
	}
	b, ok := r.bookings[id]
	if !ok {
		return fmt.Errorf("booking %s: %w", id, utils.ErrNotFound)
	}
	b.Status = status
	return nil
}

func (r *fakeBookingStore) MarkCancelled(id string, cancelledAt time.Time) error {
	b, ok := r.bookings[id]
	if !ok {
		return fmt.Errorf("booking %s: %w", id, utils.ErrNotFound)
	}
	b.Status = models.BookingCancelled
	b.CancelledAt = &cancelledAt
	return nil
}

func (r *fakeBookingStore) ClearCancellation(id string) error {
	b, ok := r.bookings[id]
	if !ok {
		return fmt.Errorf("booking %s: %w", id, utils.ErrNotFound)
	}
	b.Status = models.BookingPending
	b.CancelledAt = nil
	return nil
}

func (r *fakeBookingStore) Delete(id string) error {
	delete(r.bookings, id)
	return nil
}

func (r *fakeBookingStore) DeleteExpiredCancellations(cutoff time.Time) (int64, error) {
	var deleted int64
	for id, b := range r.bookings {
		if b.Status == models.BookingCancelled && b.CancelledAt != nil && b.CancelledAt.Before(cutoff) {
			delete(r.bookings, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeBookingStore) CountCreatedBetween(from, to time.Time) (int64, error) {
	var n int64
	for _, b := range r.bookings {
		if !b.CreatedAt.Before(from) && b.CreatedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

type fakeUserStore struct {
	users map[string]*models.User
}

func (r *fakeUserStore) Create(u *models.User) error               { r.users[u.ID] = u; return nil }
func (r *fakeUserStore) Update(u *models.User) error               { r.users[u.ID] = u; return nil }
func (r *fakeUserStore) UpdateFields(string, map[string]any) error { return nil }
func (r *fakeUserStore) Delete(id string) error                    { delete(r.users, id); return nil }
func (r *fakeUserStore) GetByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return u, nil
}
func (r *fakeUserStore) GetByUsername(string) (*models.User, error) { return nil, utils.ErrNotFound }
func (r *fakeUserStore) GetByEmail(string) (*models.User, error)    { return nil, utils.ErrNotFound }
func (r *fakeUserStore) GetAll() ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}
func (r *fakeUserStore) Count() (int64, error) { return int64(len(r.users)), nil }

type fakeServiceStore struct {
	services map[string]*models.Service
}

func (r *fakeServiceStore) Create(s *models.Service) error { r.services[s.ID] = s; return nil }
func (r *fakeServiceStore) Update(s *models.Service) error { r.services[s.ID] = s; return nil }
func (r *fakeServiceStore) Delete(id string) error         { delete(r.services, id); return nil }
func (r *fakeServiceStore) GetByID(id string) (*models.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return s, nil
}
func (r *fakeServiceStore) GetAll(activeOnly bool) ([]models.Service, error) {
	var out []models.Service
	for _, s := range r.services {
		if !activeOnly || s.IsActive {
			out = append(out, *s)
		}
	}
	return out, nil
}

// fakeStorage records uploads and returns a deterministic URL.
type fakeStorage struct {
	uploads []string
}

func (s *fakeStorage) Upload(ctx context.Context, folder, name string, data io.Reader, contentType string) (string, error) {
	s.uploads = append(s.uploads, folder+"/"+name)
	return "https://cdn.example/" + folder + "/" + name, nil
}

func (s *fakeStorage) Delete(ctx context.Context, publicID string) error { return nil }

type paymentFixture struct {
	svc      *DefaultPaymentService
	payments *fakePaymentRepo
	bookings *fakeBookingStore
	users    *fakeUserStore
	services *fakeServiceStore
	storage  *fakeStorage
}

func newPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		payments: &fakePaymentRepo{},
		bookings: newFakeBookingStore(),
		users:    &fakeUserStore{users: map[string]*models.User{}},
		services: &fakeServiceStore{services: map[string]*models.Service{}},
		storage:  &fakeStorage{},
	}
	f.svc = &DefaultPaymentService{
		Repo:        f.payments,
		BookingRepo: f.bookings,
		UserRepo:    f.users,
		ServiceRepo: f.services,
		Storage:     f.storage,
	}
	return f
}

func (f *paymentFixture) addBooking(id, userID string) *models.Booking {
	b := &models.Booking{
		ID:        id,
		UserID:    userID,
		ServiceID: "svc-1",
		Status:    models.BookingPending,
		CreatedAt: time.Now(),
	}
	_ = f.bookings.Create(b)
	return b
}

var (
	owner = models.Actor{ID: "user-1", Role: models.RoleUser}
	admin = models.Actor{ID: "admin-1", Role: models.RoleAdmin}
)

func TestCreatePayment(t *testing.T) {
	f := newPaymentFixture()
	f.addBooking("bk-1", owner.ID)

	created, err := f.svc.CreatePayment(owner, CreatePaymentInput{BookingID: "bk-1", Amount: 500})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, created.Status)
	assert.Equal(t, models.PaymentMethodPromptPay, created.Method)
	assert.True(t, strings.HasPrefix(created.TransactionRef, "bk-1_"))
}

func TestCreatePaymentValidation(t *testing.T) {
	f := newPaymentFixture()
	f.addBooking("bk-1", owner.ID)

	var vErr utils.ValidationError
	_, err := f.svc.CreatePayment(owner, CreatePaymentInput{Amount: 500})
	assert.ErrorAs(t, err, &vErr)

	_, err = f.svc.CreatePayment(owner, CreatePaymentInput{BookingID: "bk-1"})
	assert.ErrorAs(t, err, &vErr)

	_, err = f.svc.CreatePayment(owner, CreatePaymentInput{BookingID: "bk-1", Amount: -10})
	assert.ErrorAs(t, err, &vErr)

	_, err = f.svc.CreatePayment(owner, CreatePaymentInput{BookingID: "missing", Amount: 500})
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestTransactionRefsAreUnique(t *testing.T) {
	f := newPaymentFixture()
	f.addBooking("bk-1", owner.ID)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		p, err := f.svc.CreatePayment(owner, CreatePaymentInput{BookingID: "bk-1", Amount: 100})
		require.NoError(t, err)
		assert.False(t, seen[p.TransactionRef], "duplicate ref %s", p.TransactionRef)
		seen[p.TransactionRef] = true
	}
}

func TestAttachSlip(t *testing.T) {
	f := newPaymentFixture()
	f.addBooking("bk-1", owner.ID)
	p, err := f.svc.CreatePayment(owner, CreatePaymentInput{BookingID: "bk-1", Amount: 500})
	require.NoError(t, err)

	upload := SlipUpload{
		Data:        make([]byte, 1024*1024),
		ContentType: "image/png",
		Size:        1024 * 1024,
	}
	url, err := f.svc.AttachSlip(owner, p.ID, upload)
	require.NoError(t, err)
	assert.Contains(t, url, "payment-slips/")

	stored, err := f.payments.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, url, stored.SlipURL)
	assert.Len(t, f.storage.uploads, 1)
}

func TestAttachSlipRejectsBadUploads(t *testing.T) {
	f := newPaymentFixture()
	f.addBooking("bk-1", owner.ID)
	p, err := f.svc.CreatePayment(owner, CreatePaymentInput{BookingID: "bk-1", Amount: 500})
	require.NoError(t, err)

	var vErr utils.ValidationError

	// Over the 2 MiB limit.
	_, err = f.svc.AttachSlip(owner, p.ID, SlipUpload{
		Data:        make([]byte, 3*1024*1024),
		ContentType: "image/png",
		Size:        3 * 1024 * 1024,
	})
	assert.ErrorAs(t, err, &vErr)

	// Wrong content type.
	_, err = f.svc.AttachSlip(owner, p.ID, SlipUpload{
		Data:        []byte("definitely not an image"),
		ContentType: "text/plain",
		Size:        23,
	})
	assert.ErrorAs(t, err, &vErr)

	// Empty body.
	_, err = f.svc.AttachSlip(owner, p.ID, SlipUpload{ContentType: "image/png"})
	assert.ErrorAs(t, err, &vErr)

	// Nothing reached the blob store.
	assert.Empty(t, f.storage.uploads)
}

func TestSetStatusRequiresStaff(t *testing.T) {
	f := newPaymentFixture()
	f.addBooking("bk-1", owner.ID)
	p, err := f.svc.CreatePayment(owner, CreatePaymentInput{BookingID: "bk-1", Amount: 500})
	require.NoError(t, err)

	_, err = f.svc.SetStatus(owner, p.ID, models.PaymentPaid)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	var vErr utils.ValidationError
	_, err = f.svc.SetStatus(admin, p.ID, "SETTLED")
	assert.ErrorAs(t, err, &vErr)

	updated, err := f.svc.SetStatus(admin, p.ID, models.PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, updated.Status)
}

func TestListMineFiltersByBookingOwnership(t *testing.T) {
	f := newPaymentFixture()
	f.addBooking("bk-1", owner.ID)
	f.addBooking("bk-2", "someone-else")

	_, err := f.svc.CreatePayment(owner, CreatePaymentInput{BookingID: "bk-1", Amount: 500})
	require.NoError(t, err)
	_, err = f.svc.CreatePayment(models.Actor{ID: "someone-else", Role: models.RoleUser},
		CreatePaymentInput{BookingID: "bk-2", Amount: 700})
	require.NoError(t, err)

	views, err := f.svc.ListMine(owner)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "bk-1", views[0].BookingID)
}
