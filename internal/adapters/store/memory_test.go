package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insquote/internal/domain"
)

func testQuote(name string) *domain.Quote {
	return &domain.Quote{
		Name:          name,
		TaxpayerID:    "12345678901",
		Gender:        domain.GenderFemale,
		BirthDate:     time.Date(1990, time.January, 15, 0, 0, 0, 0, time.UTC),
		StartDate:     time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2027, time.September, 1, 0, 0, 0, 0, time.UTC),
		Capital:       decimal.RequireFromString("100000"),
		BaseRate:      decimal.RequireFromString("0.01"),
		AdjustedRate:  decimal.RequireFromString("0.0107"),
		CoverageDays:  365,
		CoverageYears: decimal.RequireFromString("1"),
		Premium:       decimal.RequireFromString("1069.27"),
		Description:   "Life coverage over 365 days at base annual rate 1%, adjusted to 1.07%.",
	}
}

func TestMemoryStore_Insert(t *testing.T) {
	s := NewMemoryStore()

	first := testQuote("Maria Silva")
	second := testQuote("Ana Souza")

	require.NoError(t, s.Insert(context.Background(), first))
	require.NoError(t, s.Insert(context.Background(), second))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.Equal(t, time.UTC, first.CreatedAt.Location())
}

func TestMemoryStore_GetByID(t *testing.T) {
	s := NewMemoryStore()
	quote := testQuote("Maria Silva")
	require.NoError(t, s.Insert(context.Background(), quote))

	got, err := s.GetByID(context.Background(), quote.ID)

	require.NoError(t, err)
	assert.Equal(t, quote.Name, got.Name)
	assert.True(t, got.Premium.Equal(quote.Premium))
	assert.NotSame(t, quote, got, "store must return a copy")
}

func TestMemoryStore_GetByID_NotFound(t *testing.T) {
	s := NewMemoryStore()

	got, err := s.GetByID(context.Background(), 42)

	assert.Nil(t, got)
	assert.True(t, domain.IsNotFound(err))
	assert.Contains(t, err.Error(), "42")
}

func TestMemoryStore_GetByID_ReturnsIsolatedCopy(t *testing.T) {
	s := NewMemoryStore()
	quote := testQuote("Maria Silva")
	require.NoError(t, s.Insert(context.Background(), quote))

	got, err := s.GetByID(context.Background(), quote.ID)
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := s.GetByID(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", again.Name)
}

func TestMemoryStore_List_NewestFirst(t *testing.T) {
	s := NewMemoryStore()

	for _, name := range []string{"First", "Second", "Third"} {
		require.NoError(t, s.Insert(context.Background(), testQuote(name)))
	}

	quotes, err := s.List(context.Background())

	require.NoError(t, err)
	require.Len(t, quotes, 3)
	assert.Equal(t, "Third", quotes[0].Name)
	assert.Equal(t, "Second", quotes[1].Name)
	assert.Equal(t, "First", quotes[2].Name)
}

func TestMemoryStore_List_Empty(t *testing.T) {
	s := NewMemoryStore()

	quotes, err := s.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestMemoryStore_HealthCheck(t *testing.T) {
	s := NewMemoryStore()

	assert.Equal(t, "memory", s.Name())
	assert.NoError(t, s.Check(context.Background()))
}
