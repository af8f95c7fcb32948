package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgvega/tienda-backend/models"
)

func TestCacheServesFreshResult(t *testing.T) {
	now := time.Unix(0, 0)
	clock := func() time.Time { return now }
	c := NewCache(30*time.Second, clock)

	loads := 0
	load := func() (ListResult, error) {
		loads++
		return ListResult{Products: []models.Product{{ID: 1}}, Total: 1}, nil
	}

	res, err := c.Get(load)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)
	assert.Equal(t, 1, loads)

	_, err = c.Get(load)
	require.NoError(t, err)
	assert.Equal(t, 1, loads, "second read within the TTL hits the cache")

	now = now.Add(31 * time.Second)
	_, err = c.Get(load)
	require.NoError(t, err)
	assert.Equal(t, 2, loads, "expired entry reloads")
}

func TestCacheInvalidate(t *testing.T) {
	c := NewCache(time.Hour, func() time.Time { return time.Unix(0, 0) })

	loads := 0
	load := func() (ListResult, error) {
		loads++
		return ListResult{}, nil
	}

	_, err := c.Get(load)
	require.NoError(t, err)
	c.Invalidate()
	_, err = c.Get(load)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}

func TestCacheDoesNotCacheErrors(t *testing.T) {
	c := NewCache(time.Hour, func() time.Time { return time.Unix(0, 0) })

	loads := 0
	_, err := c.Get(func() (ListResult, error) {
		loads++
		return ListResult{}, assert.AnError
	})
	assert.Error(t, err)

	_, err = c.Get(func() (ListResult, error) {
		loads++
		return ListResult{}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}
