package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ayuraa/wellness-backend/internal/domain/profile"
	"github.com/ayuraa/wellness-backend/internal/pkg/apperr"
	"github.com/ayuraa/wellness-backend/internal/pkg/email"
	"github.com/ayuraa/wellness-backend/internal/pkg/logger"
	"github.com/ayuraa/wellness-backend/internal/pkg/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu   sync.Mutex
	seen []Booking
	err  error
}

func (n *recordingNotifier) BookingCreated(_ context.Context, b Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.seen = append(n.seen, b)
	return n.err
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.seen)
}

func newTestService(t *testing.T, n Notifier) *Service {
	t.Helper()
	return NewService(testdb.New(t, &Booking{}), n, logger.Discard())
}

func validRequest() *CreateRequest {
	return &CreateRequest{HealerID: "h1", ServiceType: "Reiki", Date: "2026-11-02", Time: "10:00"}
}

func TestCreate_Defaults(t *testing.T) {
	n := &recordingNotifier{}
	svc := newTestService(t, n)

	b, err := svc.Create(context.Background(), "u1", validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "u1", b.UserID)
	assert.Equal(t, DefaultPrice, b.Price)
	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, "", b.Notes)
	assert.Eventually(t, func() bool { return n.count() == 1 }, time.Second, 5*time.Millisecond)
}

func TestCreate_KeepsPriceAndNotes(t *testing.T) {
	svc := newTestService(t, nil)
	req := validRequest()
	req.Price = "1800"
	req.Notes = "first session"

	b, err := svc.Create(context.Background(), "u1", req)
	require.NoError(t, err)
	assert.Equal(t, "1800", b.Price)
	assert.Equal(t, "first session", b.Notes)
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "", validRequest())
	assert.True(t, apperr.Is(err, apperr.Unauthorized))

	for _, mutate := range []func(*CreateRequest){
		func(r *CreateRequest) { r.HealerID = "" },
		func(r *CreateRequest) { r.ServiceType = " " },
		func(r *CreateRequest) { r.Date = "" },
		func(r *CreateRequest) { r.Time = "" },
	} {
		req := validRequest()
		mutate(req)
		_, err := svc.Create(ctx, "u1", req)
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.Invalid))
		assert.Equal(t, "Missing required booking information", apperr.PublicMessage(err))
	}
}

func TestCreate_NotifierErrorIsSwallowed(t *testing.T) {
	n := &recordingNotifier{err: errors.New("mail down")}
	svc := newTestService(t, n)

	_, err := svc.Create(context.Background(), "u1", validRequest())
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return n.count() == 1 }, time.Second, 5*time.Millisecond)
}

func TestListByUserAndHealer(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	clock := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	first, err := svc.Create(ctx, "u1", validRequest())
	require.NoError(t, err)
	other := validRequest()
	other.HealerID = "h2"
	second, err := svc.Create(ctx, "u1", other)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u2", validRequest())
	require.NoError(t, err)

	mine, err := svc.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, first.ID, mine[0].ID)
	assert.Equal(t, second.ID, mine[1].ID)

	hosted, err := svc.ListByHealer(ctx, "h1")
	require.NoError(t, err)
	assert.Len(t, hosted, 2)

	none, err := svc.ListByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestGetFor(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	b, err := svc.Create(ctx, "u1", validRequest())
	require.NoError(t, err)

	_, err = svc.GetFor(ctx, b.ID, "u1")
	assert.NoError(t, err)
	_, err = svc.GetFor(ctx, b.ID, "h1")
	assert.NoError(t, err)
	_, err = svc.GetFor(ctx, b.ID, "u9")
	assert.True(t, apperr.Is(err, apperr.NotFound))
	_, err = svc.GetFor(ctx, "missing", "u1")
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestUpdateStatus(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	b, err := svc.Create(ctx, "u1", validRequest())
	require.NoError(t, err)

	got, err := svc.UpdateStatus(ctx, b.ID, "h1", &StatusRequest{Status: StatusConfirmed})
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, got.Status)

	_, err = svc.UpdateStatus(ctx, b.ID, "u1", &StatusRequest{Status: StatusCompleted})
	assert.True(t, apperr.Is(err, apperr.Forbidden))

	got, err = svc.UpdateStatus(ctx, b.ID, "u1", &StatusRequest{Status: StatusCancelled})
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)

	_, err = svc.UpdateStatus(ctx, b.ID, "stranger", &StatusRequest{Status: StatusCancelled})
	assert.True(t, apperr.Is(err, apperr.NotFound))

	_, err = svc.UpdateStatus(ctx, b.ID, "h1", &StatusRequest{Status: "lost"})
	assert.True(t, apperr.Is(err, apperr.Invalid))
}

type stubProfiles map[string]*profile.Profile

func (s stubProfiles) Get(_ context.Context, id string) (*profile.Profile, error) {
	if p, ok := s[id]; ok {
		return p, nil
	}
	return nil, apperr.NotFoundErr("Profile not found")
}

type mailerFunc func(context.Context, email.BookingConfirmationData) error

func (f mailerFunc) SendBookingConfirmation(ctx context.Context, d email.BookingConfirmationData) error {
	return f(ctx, d)
}

func TestMailNotifier(t *testing.T) {
	var got email.BookingConfirmationData
	n := NewMailNotifier(mailerFunc(func(_ context.Context, d email.BookingConfirmationData) error {
		got = d
		return nil
	}), stubProfiles{
		"u1": {ID: "u1", Name: "Asha", Email: "asha@example.com"},
	})

	b := Booking{ID: "b1", UserID: "u1", HealerID: "h1", ServiceType: "Reiki", Price: "2500", Status: StatusPending}
	require.NoError(t, n.BookingCreated(context.Background(), b))
	assert.Equal(t, "asha@example.com", got.To)
	assert.Equal(t, "Asha", got.UserName)
	assert.Equal(t, "h1", got.HealerName)

	b.UserID = "ghost"
	assert.Error(t, n.BookingCreated(context.Background(), b))
}

func TestReceipt(t *testing.T) {
	b := &Booking{ID: "b1", UserID: "u1", HealerID: "h1", Price: "2500"}
	data := Receipt(b, &profile.Profile{Name: "Asha", Email: "a@b.co"}, nil)
	assert.Equal(t, "Asha", data.ClientName)
	assert.Equal(t, "a@b.co", data.ClientEmail)
	assert.Equal(t, "h1", data.HealerName)
}
