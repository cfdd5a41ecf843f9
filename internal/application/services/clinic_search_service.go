package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/medigate/clinic-navigator/internal/domain/entities"
	"github.com/medigate/clinic-navigator/internal/domain/repositories"
	"github.com/medigate/clinic-navigator/pkg/geo"
)

var (
	searchCounterOnce sync.Once
	searchCounter     metric.Int64Counter
)

// ClinicSearchService runs point-of-care clinic searches over the merged
// dataset: radius and keyword filtering, live reception status derivation,
// and priority-aware ranking. The dataset is read-only; every query builds
// an independent result set, so concurrent searches are safe.
type ClinicSearchService struct {
	repo      repositories.FacilityDatasetRepository
	reception *ReceptionService
	ranking   *SearchRankingService
	now       func() time.Time
}

// NewClinicSearchService creates a new clinic search service
func NewClinicSearchService(
	repo repositories.FacilityDatasetRepository,
	reception *ReceptionService,
	ranking *SearchRankingService,
) *ClinicSearchService {
	loc := reception.Location()
	return &ClinicSearchService{
		repo:      repo,
		reception: reception,
		ranking:   ranking,
		now: func() time.Time {
			return time.Now().In(loc)
		},
	}
}

// WithClock overrides the service clock. Tests pin it to fixed instants.
func (s *ClinicSearchService) WithClock(now func() time.Time) *ClinicSearchService {
	s.now = now
	return s
}

// Search loads the dataset and runs the query pipeline against the current
// instant.
func (s *ClinicSearchService) Search(ctx context.Context, origin entities.Location, q entities.SearchQuery) ([]*entities.ClinicSearchResult, error) {
	facilities, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	results := s.SearchAt(facilities, origin, q, s.now())
	s.recordSearch(ctx, len(results))
	return results, nil
}

// SearchAt runs the query pipeline against an explicit reference instant.
func (s *ClinicSearchService) SearchAt(facilities []*entities.Facility, origin entities.Location, q entities.SearchQuery, now time.Time) []*entities.ClinicSearchResult {
	type candidate struct {
		facility *entities.Facility
		distance float64
	}

	// Rows without coordinates never qualify; distances for the rest are
	// computed in one vectorized pass.
	located := make([]*entities.Facility, 0, len(facilities))
	lats := make([]float64, 0, len(facilities))
	lngs := make([]float64, 0, len(facilities))
	for _, f := range facilities {
		if f.Location == nil {
			continue
		}
		located = append(located, f)
		lats = append(lats, f.Location.Latitude)
		lngs = append(lngs, f.Location.Longitude)
	}
	distances := geo.DistancesKm(origin.Latitude, origin.Longitude, lats, lngs)

	candidates := make([]candidate, 0, len(located))
	for i, f := range located {
		if distances[i] > q.RadiusKm {
			continue
		}
		candidates = append(candidates, candidate{facility: f, distance: distances[i]})
	}

	if len(q.DepartmentKeywords) > 0 {
		kept := candidates[:0]
		for _, c := range candidates {
			if containsAny(c.facility.Departments, q.DepartmentKeywords) {
				kept = append(kept, c)
			}
		}
		candidates = kept
	}

	if len(q.ExcludeDepartmentKeywords) > 0 {
		kept := candidates[:0]
		for _, c := range candidates {
			if !containsAny(c.facility.Departments, q.ExcludeDepartmentKeywords) {
				kept = append(kept, c)
			}
		}
		candidates = kept
	}

	if len(q.ExcludeNameKeywords) > 0 {
		kept := candidates[:0]
		for _, c := range candidates {
			if !containsAny(c.facility.Name, q.ExcludeNameKeywords) {
				kept = append(kept, c)
			}
		}
		candidates = kept
	}

	results := make([]*entities.ClinicSearchResult, 0, len(candidates))
	for _, c := range candidates {
		mins, accepting := s.reception.MinutesToClose(c.facility, now)
		if q.OnlyAcceptingNow && !accepting {
			continue
		}

		row := &entities.ClinicSearchResult{
			Facility:        c.facility,
			DistanceKm:      c.distance,
			ReceptionStatus: StatusLabel(mins, accepting, q.SoonCloseThresholdMin),
		}
		if accepting {
			m := mins
			row.MinutesToClose = &m
		}
		if next, ok := s.reception.NextReceptionStart(c.facility, now); ok {
			n := next
			row.NextReceptionStart = &n
		}
		row.NextReceptionLabel = s.reception.NextReceptionLabel(row.NextReceptionStart, now, q.SoonStartThresholdMin)

		results = append(results, row)
	}

	s.ranking.Rank(results, q.DepartmentKeywords)

	if q.Limit > 0 && len(results) > q.Limit {
		results = results[:q.Limit]
	}
	return results
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func (s *ClinicSearchService) recordSearch(ctx context.Context, resultCount int) {
	searchCounterOnce.Do(func() {
		meter := otel.Meter("github.com/medigate/clinic-navigator/internal/application/services")
		counter, err := meter.Int64Counter(
			"clinic.search.count",
			metric.WithDescription("Number of clinic searches executed"),
		)
		if err == nil {
			searchCounter = counter
		}
	})
	if searchCounter != nil {
		searchCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.Bool("empty", resultCount == 0),
		))
	}
}
