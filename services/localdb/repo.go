package localdb

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"scenery/models"

	"github.com/glebarez/sqlite"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultLimit = 20

// SearchOptions are the optional filters for an exploratory search.
type SearchOptions struct {
	Limit       int
	Rating      *int
	PriceMin    *int
	PriceMax    *int
	UserRequest string
}

// Repo is the SQLite-backed hotel index.
type Repo struct {
	db *gorm.DB
}

// Open opens the hotel index at the given path.
func Open(path string) (*Repo, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open hotel index: %w", err)
	}
	return &Repo{db: db}, nil
}

// NewRepo wraps an existing gorm handle (tests use an in-memory database).
func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// DB exposes the underlying handle for health checks and migrations.
func (r *Repo) DB() *gorm.DB { return r.db }

// Search runs an exploratory query against the index: city match, optional
// rating and price filters, preference-scored ordering. Overfetches so the
// in-memory price filter still fills the page.
func (r *Repo) Search(ctx context.Context, location string, opts SearchOptions) ([]models.Hotel, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	q := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("LOWER(city) LIKE ?", "%"+strings.ToLower(location)+"%")
	if opts.Rating != nil {
		q = q.Where("avg_review >= ?", *opts.Rating)
	}

	var rows []Hotel
	if err := q.Order("avg_review DESC, review_count DESC").Limit(limit * 4).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query hotel index: %w", err)
	}

	type ranked struct {
		pref int
		row  Hotel
	}
	var kept []ranked
	for _, row := range rows {
		if opts.PriceMin != nil || opts.PriceMax != nil {
			price, ok := extractPriceNumber(row.PriceRange)
			if !ok {
				continue
			}
			if opts.PriceMin != nil && price < *opts.PriceMin {
				continue
			}
			if opts.PriceMax != nil && price > *opts.PriceMax {
				continue
			}
		}
		kept = append(kept, ranked{pref: preferenceScore(row, opts.UserRequest), row: row})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].pref != kept[j].pref {
			return kept[i].pref > kept[j].pref
		}
		if kept[i].row.AvgReview != kept[j].row.AvgReview {
			return kept[i].row.AvgReview > kept[j].row.AvgReview
		}
		return kept[i].row.ReviewCount > kept[j].row.ReviewCount
	})
	if len(kept) > limit {
		kept = kept[:limit]
	}

	return lo.Map(kept, func(r ranked, _ int) models.Hotel {
		return models.Hotel{
			ID:       r.row.ID,
			Name:     r.row.Name,
			Location: r.row.City,
			Rating:   r.row.AvgReview,
			Reviews:  r.row.ReviewCount,
			Price:    r.row.PriceRange,
			Source:   "local_db",
		}
	}), nil
}

// ListCities returns the distinct active cities in the index, used to warm
// the extractor's known-city set.
func (r *Repo) ListCities(ctx context.Context) ([]string, error) {
	var cities []string
	err := r.db.WithContext(ctx).Model(&Hotel{}).
		Where("active = ?", true).
		Distinct().Pluck("city", &cities).Error
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	return cities, nil
}
