package geolocation

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	cacheMetricsOnce sync.Once
	cacheHitCounter  metric.Int64Counter
	cacheMissCounter metric.Int64Counter
)

func recordCacheLookup(ctx context.Context, hit bool) {
	cacheMetricsOnce.Do(func() {
		meter := otel.Meter("github.com/medigate/clinic-navigator/internal/adapters/providers/geolocation")
		if counter, err := meter.Int64Counter(
			"geocode.cache.hit.count",
			metric.WithDescription("Number of geocode cache hits"),
		); err == nil {
			cacheHitCounter = counter
		}
		if counter, err := meter.Int64Counter(
			"geocode.cache.miss.count",
			metric.WithDescription("Number of geocode cache misses"),
		); err == nil {
			cacheMissCounter = counter
		}
	})

	if hit {
		if cacheHitCounter != nil {
			cacheHitCounter.Add(ctx, 1)
		}
		return
	}
	if cacheMissCounter != nil {
		cacheMissCounter.Add(ctx, 1)
	}
}
