package dataset

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/medigate/clinic-navigator/internal/domain/entities"
	"github.com/medigate/clinic-navigator/internal/domain/repositories"
	apperrors "github.com/medigate/clinic-navigator/pkg/errors"
)

// Fallback header names seen across dataset vintages.
var (
	nameColumns    = []string{ColName, "医療機関名称", "医療機関名", "名称", "name"}
	addressColumns = []string{ColAddress, "所在地", "所在地住所"}
	websiteColumns = []string{ColWebsite, "ホームページ", "URL", "url"}
)

// LoadFacilities reads the merged clinic dataset into the canonical
// in-memory form. Rows with unparseable coordinates are kept but carry no
// location; a dataset without coordinate columns at all is malformed and
// rejected so a schema mismatch is detected instead of silently matching
// nothing.
func LoadFacilities(path string) ([]*entities.Facility, error) {
	t, err := ReadTable(path)
	if err != nil {
		return nil, err
	}

	if _, ok := t.Column(ColLatitude); !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("dataset %s is missing required column %s", path, ColLatitude))
	}
	if _, ok := t.Column(ColLongitude); !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("dataset %s is missing required column %s", path, ColLongitude))
	}

	facilities := make([]*entities.Facility, 0, len(t.Rows))
	for _, row := range t.Rows {
		f := &entities.Facility{
			ID:          t.Value(row, ColID),
			Name:        firstValue(t, row, nameColumns),
			Address:     firstValue(t, row, addressColumns),
			Website:     firstValue(t, row, websiteColumns),
			Departments: t.Value(row, ColDepartments),
		}

		if lat, err := strconv.ParseFloat(t.Value(row, ColLatitude), 64); err == nil {
			if lng, err := strconv.ParseFloat(t.Value(row, ColLongitude), 64); err == nil {
				f.Location = &entities.Location{Latitude: lat, Longitude: lng}
			}
		}

		for _, day := range entities.DayCategories {
			start := t.Value(row, string(day)+startSuffix)
			end := t.Value(row, string(day)+endSuffix)
			if start == "" && end == "" {
				continue
			}
			if f.ReceptionHours == nil {
				f.ReceptionHours = make(map[entities.DayCategory]entities.ReceptionWindow, len(entities.DayCategories))
			}
			f.ReceptionHours[day] = entities.ReceptionWindow{Start: start, End: end}
		}

		facilities = append(facilities, f)
	}
	return facilities, nil
}

func firstValue(t *Table, row []string, columns []string) string {
	for _, c := range columns {
		if v := t.Value(row, c); v != "" {
			return v
		}
	}
	return ""
}

// Repository serves the dataset to the query path. The file is immutable
// once built, so the first successful or failed load is memoized and shared;
// concurrent first access performs exactly one read.
type Repository struct {
	path string

	once       sync.Once
	facilities []*entities.Facility
	err        error
}

// NewRepository creates a memoizing dataset repository
func NewRepository(path string) repositories.FacilityDatasetRepository {
	return &Repository{path: path}
}

// Load returns the cached dataset, reading it on first call.
func (r *Repository) Load(ctx context.Context) ([]*entities.Facility, error) {
	r.once.Do(func() {
		start := time.Now()
		r.facilities, r.err = LoadFacilities(r.path)
		recordLoad(ctx, r.path, time.Since(start), r.err == nil)
	})
	return r.facilities, r.err
}

var (
	loadMetricOnce sync.Once
	loadDuration   metric.Float64Histogram
)

func recordLoad(ctx context.Context, path string, elapsed time.Duration, ok bool) {
	loadMetricOnce.Do(func() {
		meter := otel.Meter("github.com/medigate/clinic-navigator/internal/adapters/dataset")
		if histogram, err := meter.Float64Histogram(
			"dataset.load.duration",
			metric.WithDescription("Clinic dataset load duration in milliseconds"),
			metric.WithUnit("ms"),
		); err == nil {
			loadDuration = histogram
		}
	})
	if loadDuration != nil {
		loadDuration.Record(ctx, float64(elapsed.Milliseconds()), metric.WithAttributes(
			attribute.String("dataset.path", path),
			attribute.Bool("success", ok),
		))
	}
}
