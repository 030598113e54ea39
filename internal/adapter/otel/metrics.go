package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "webscout"

// Metrics holds all WebScout metric instruments.
type Metrics struct {
	CacheHits        metric.Int64Counter
	CacheMisses      metric.Int64Counter
	UpstreamFailures metric.Int64Counter
	DispatchDuration metric.Float64Histogram
}

// NewMetrics creates all metric instruments against the global meter. With
// no SDK installed the instruments are noops, so tests and disabled-telemetry
// runs record into the void at no cost.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.CacheHits, err = meter.Int64Counter("webscout.cache.hits",
		metric.WithDescription("Number of dispatches served from a cache pool"))
	if err != nil {
		return nil, err
	}

	m.CacheMisses, err = meter.Int64Counter("webscout.cache.misses",
		metric.WithDescription("Number of dispatches that required an upstream call"))
	if err != nil {
		return nil, err
	}

	m.UpstreamFailures, err = meter.Int64Counter("webscout.upstream.failures",
		metric.WithDescription("Number of dispatches resolved as failures"))
	if err != nil {
		return nil, err
	}

	m.DispatchDuration, err = meter.Float64Histogram("webscout.dispatch.duration_seconds",
		metric.WithDescription("End-to-end dispatch duration in seconds"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
