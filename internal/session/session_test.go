package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgvega/tienda-backend/internal/cart"
	"github.com/mgvega/tienda-backend/models"
)

func tempStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := Open(path)
	require.NoError(t, err)
	return s, path
}

func TestRoundTrip(t *testing.T) {
	s, path := tempStore(t)

	c := cart.New()
	c.Add(testProduct())
	c.Add(testProduct())
	require.NoError(t, s.SetCart(c))
	require.NoError(t, s.SetUser(&Profile{CustomerID: 7, Name: "Lucía", Email: "lucia@example.com"}))
	_, err := s.ToggleFavorite(3)
	require.NoError(t, err)

	// a fresh open sees the same state
	reopened, err := Open(path)
	require.NoError(t, err)
	snap := reopened.Snapshot()
	assert.Equal(t, s.Snapshot().ID, snap.ID, "session identity survives reloads")
	require.Len(t, snap.Cart, 1)
	assert.Equal(t, 2, snap.Cart[0].Quantity)
	assert.Equal(t, []uint{3}, snap.Favorites)
	require.NotNil(t, snap.User)
	assert.Equal(t, "lucia@example.com", snap.User.Email)
}

func TestToggleFavorite(t *testing.T) {
	s, _ := tempStore(t)

	fav, err := s.ToggleFavorite(5)
	require.NoError(t, err)
	assert.True(t, fav)

	fav, err = s.ToggleFavorite(5)
	require.NoError(t, err)
	assert.False(t, fav)
	assert.Empty(t, s.Snapshot().Favorites)
}

func TestSubscribeSeesChanges(t *testing.T) {
	s, _ := tempStore(t)

	ch, cancel := s.Subscribe()
	defer cancel()

	c := cart.New()
	c.Add(testProduct())
	require.NoError(t, s.SetCart(c))

	select {
	case snap := <-ch:
		require.Len(t, snap.Cart, 1)
	case <-time.After(time.Second):
		t.Fatal("no snapshot received")
	}
}

func TestSubscribeDropsStaleSnapshots(t *testing.T) {
	s, _ := tempStore(t)

	ch, cancel := s.Subscribe()
	defer cancel()

	// two changes without the subscriber reading: only the latest matters
	_, err := s.ToggleFavorite(1)
	require.NoError(t, err)
	_, err = s.ToggleFavorite(2)
	require.NoError(t, err)

	snap := <-ch
	assert.Equal(t, []uint{1, 2}, snap.Favorites)
}

func testProduct() models.Product {
	return models.Product{ID: 1, Name: "Teclado", Price: decimal.RequireFromString("25.00")}
}
