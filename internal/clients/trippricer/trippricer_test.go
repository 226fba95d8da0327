package trippricer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceReturnsDistinctProviders(t *testing.T) {
	id := uuid.New()
	offers, err := NewSimulator().Price(context.Background(), "test-server-api-key", id, 2, 1, 3, 0)
	require.NoError(t, err)
	require.Len(t, offers, OffersPerQuote)

	seen := make(map[string]struct{})
	for _, o := range offers {
		assert.Equal(t, id, o.TripID)
		assert.Contains(t, providerNames, o.Name)
		assert.Greater(t, o.Price, 0.0)
		seen[o.Name] = struct{}{}
	}
	assert.Len(t, seen, OffersPerQuote)
}

func TestPriceNeverNegative(t *testing.T) {
	offers, err := NewSimulator().Price(context.Background(), "key", uuid.New(), 1, 0, 1, 1_000_000)
	require.NoError(t, err)
	for _, o := range offers {
		assert.Equal(t, 0.0, o.Price)
	}
}

func TestPriceRequiresAPIKey(t *testing.T) {
	_, err := NewSimulator().Price(context.Background(), "", uuid.New(), 1, 0, 1, 0)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
