package wishlist

import (
	"context"
	"testing"

	"github.com/ayuraa/wellness-backend/internal/pkg/apperr"
	"github.com/ayuraa/wellness-backend/internal/pkg/logger"
	"github.com/ayuraa/wellness-backend/internal/pkg/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(testdb.New(t, &WishlistItem{}), logger.Discard())
}

func TestAdd_Dedupes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.Add(ctx, "u1", &AddToWishlistRequest{ProductID: "ashwagandha"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, []string{"ashwagandha"}, res.Wishlist)

	_, err = svc.Add(ctx, "u1", &AddToWishlistRequest{ProductID: "triphala"})
	require.NoError(t, err)
	res, err = svc.Add(ctx, "u1", &AddToWishlistRequest{ProductID: " ashwagandha "})
	require.NoError(t, err)
	assert.Equal(t, []string{"ashwagandha", "triphala"}, res.Wishlist)
}

func TestAdd_Validation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Add(context.Background(), "u1", &AddToWishlistRequest{})
	assert.True(t, apperr.Is(err, apperr.Invalid))
	assert.Equal(t, "Product ID required", apperr.PublicMessage(err))

	_, err = svc.Add(context.Background(), "", &AddToWishlistRequest{ProductID: "x"})
	assert.True(t, apperr.Is(err, apperr.Unauthorized))
}

func TestListRemoveClear(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		_, err := svc.Add(ctx, "u1", &AddToWishlistRequest{ProductID: id})
		require.NoError(t, err)
	}
	_, err := svc.Add(ctx, "u2", &AddToWishlistRequest{ProductID: "a"})
	require.NoError(t, err)

	empty, err := svc.List(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	left, err := svc.Remove(ctx, "u1", "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, left)

	_, err = svc.Remove(ctx, "u1", "b")
	assert.True(t, apperr.Is(err, apperr.NotFound))

	require.NoError(t, svc.Clear(ctx, "u1"))
	ids, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = svc.List(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids)
}
