package service

import (
	"context"
	"time"

	"hangout-api/modules/discovery/entity"
)

// WeatherProvider supplies current conditions for a location. The fetch lives
// outside this module; a nil result means conditions are unknown.
type WeatherProvider interface {
	GetConditions(ctx context.Context, lat, lon float64, at time.Time) (*entity.WeatherConditions, error)
}

// SearchRequest narrows the external candidate search.
type SearchRequest struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
	Start     time.Time
	End       time.Time
	Category  string
}

// ActivitySearchProvider supplies raw candidates from an external search or
// enrichment service.
type ActivitySearchProvider interface {
	Search(ctx context.Context, req SearchRequest) ([]SupplierActivity, error)
}

// SupplierActivity is the loose shape different suppliers return. It is
// normalized into the canonical CandidateActivity at this boundary so the
// scorer never branches on payload shape.
type SupplierActivity struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Title       string     `json:"title"` // some suppliers use title instead of name
	Category    string     `json:"category"`
	Kind        string     `json:"kind"` // alternate category field
	Description string     `json:"description"`
	Lat         float64    `json:"lat"`
	Lon         float64    `json:"lon"`
	Price       *float64   `json:"price"`
	PriceLevel  *int       `json:"price_level"` // 0..4 tier when no absolute price
	Rating      float64    `json:"rating"`
	ReviewCount int        `json:"review_count"`
	Indoor      *bool      `json:"indoor"`
	StartsAt    *time.Time `json:"starts_at"`
}

// price tier midpoints used when a supplier only reports a 0..4 price level
var priceLevelEstimates = []float64{0, 10, 25, 60, 120}

// NormalizeActivity maps one supplier payload into the canonical shape.
func NormalizeActivity(raw SupplierActivity) entity.CandidateActivity {
	name := raw.Name
	if name == "" {
		name = raw.Title
	}

	category := raw.Category
	if category == "" {
		category = raw.Kind
	}

	cost := 0.0
	if raw.Price != nil {
		cost = *raw.Price
	} else if raw.PriceLevel != nil {
		level := *raw.PriceLevel
		if level >= 0 && level < len(priceLevelEstimates) {
			cost = priceLevelEstimates[level]
		}
	}

	return entity.CandidateActivity{
		ID:            raw.ID,
		Name:          name,
		Category:      category,
		Description:   raw.Description,
		Latitude:      raw.Lat,
		Longitude:     raw.Lon,
		EstimatedCost: cost,
		Rating:        raw.Rating,
		RatingCount:   raw.ReviewCount,
		Indoor:        raw.Indoor,
		StartTime:     raw.StartsAt,
	}
}
