package localdb

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T, rows []Hotel) *Repo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Hotel{}))
	if len(rows) > 0 {
		require.NoError(t, db.Create(&rows).Error)
	}
	return NewRepo(db)
}

func galleRows() []Hotel {
	return []Hotel{
		{Name: "Sea Breeze Villa", City: "Galle", PriceRange: "LKR 18,000", AvgReview: 4.6, ReviewCount: 310, Active: true},
		{Name: "Fort Grand Luxury Resort", City: "Galle", PriceRange: "LKR 42,000", AvgReview: 4.5, ReviewCount: 200, Description: "luxury suites, premium spa", Active: true},
		{Name: "Budget Rest", City: "Galle", PriceRange: "LKR 6,000", AvgReview: 3.9, ReviewCount: 80, Active: true},
		{Name: "Closed Palace", City: "Galle", PriceRange: "LKR 30,000", AvgReview: 4.8, ReviewCount: 500, Active: false},
		{Name: "Kandy Hills", City: "Kandy", PriceRange: "LKR 15,000", AvgReview: 4.2, ReviewCount: 150, Active: true},
	}
}

func TestSearchFiltersByCityAndActive(t *testing.T) {
	repo := newTestRepo(t, galleRows())

	hotels, err := repo.Search(context.Background(), "Galle", SearchOptions{})
	require.NoError(t, err)
	require.Len(t, hotels, 3)
	for _, h := range hotels {
		assert.Equal(t, "Galle", h.Location)
		assert.NotEqual(t, "Closed Palace", h.Name)
		assert.Equal(t, "local_db", h.Source)
	}
	// Default order is rating first.
	assert.Equal(t, "Sea Breeze Villa", hotels[0].Name)
}

func TestSearchRatingFilter(t *testing.T) {
	repo := newTestRepo(t, galleRows())

	rating := 4
	hotels, err := repo.Search(context.Background(), "Galle", SearchOptions{Rating: &rating})
	require.NoError(t, err)
	require.Len(t, hotels, 2)
	for _, h := range hotels {
		assert.GreaterOrEqual(t, h.Rating, 4.0)
	}
}

func TestSearchPriceFilter(t *testing.T) {
	repo := newTestRepo(t, galleRows())

	max := 20000
	hotels, err := repo.Search(context.Background(), "Galle", SearchOptions{PriceMax: &max})
	require.NoError(t, err)
	require.Len(t, hotels, 2)
	names := []string{hotels[0].Name, hotels[1].Name}
	assert.Contains(t, names, "Sea Breeze Villa")
	assert.Contains(t, names, "Budget Rest")

	min := 20000
	hotels, err = repo.Search(context.Background(), "Galle", SearchOptions{PriceMin: &min})
	require.NoError(t, err)
	require.Len(t, hotels, 1)
	assert.Equal(t, "Fort Grand Luxury Resort", hotels[0].Name)
}

func TestSearchLuxuryPreferenceReorders(t *testing.T) {
	repo := newTestRepo(t, galleRows())

	hotels, err := repo.Search(context.Background(), "Galle", SearchOptions{UserRequest: "luxury hotels in galle"})
	require.NoError(t, err)
	require.NotEmpty(t, hotels)
	// The luxury-described hotel outranks the higher-rated plain one.
	assert.Equal(t, "Fort Grand Luxury Resort", hotels[0].Name)
}

func TestSearchLimit(t *testing.T) {
	repo := newTestRepo(t, galleRows())

	hotels, err := repo.Search(context.Background(), "Galle", SearchOptions{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, hotels, 1)
}

func TestSearchUnknownCity(t *testing.T) {
	repo := newTestRepo(t, galleRows())

	hotels, err := repo.Search(context.Background(), "Jaffna", SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, hotels)
}

func TestListCities(t *testing.T) {
	repo := newTestRepo(t, galleRows())

	cities, err := repo.ListCities(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Galle", "Kandy"}, cities)
}

func TestExtractPriceNumber(t *testing.T) {
	n, ok := extractPriceNumber("LKR 25,000")
	require.True(t, ok)
	assert.Equal(t, 25000, n)

	_, ok = extractPriceNumber("call for rates")
	assert.False(t, ok)
}

func TestPreferenceScore(t *testing.T) {
	h := Hotel{Name: "Family Beach Resort", Description: "family rooms, kids club"}
	assert.Greater(t, preferenceScore(h, "family friendly hotel"), 0)
	assert.Zero(t, preferenceScore(h, "cheap hotel"))

	plain := Hotel{Name: "City Stay"}
	assert.Zero(t, preferenceScore(plain, "luxury hotel"))
}
