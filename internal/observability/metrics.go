package observability

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/people-notes-backend/internal/platform/logger"
)

const defaultScrapeInterval = 10 * time.Second

type Metrics struct {
	apiRequests  *CounterVec
	apiLatency   *HistogramVec
	apiInflight  *GaugeVec
	rateLimited  *CounterVec
	dbStats      *GaugeVec
	redisUp      *GaugeVec
	redisLatency *GaugeVec
}

// New returns nil when metrics are disabled. Every method on a nil *Metrics
// is a no-op so callers never need to check.
func New(enabled bool) *Metrics {
	if !enabled {
		return nil
	}
	return &Metrics{
		apiRequests: NewCounterVec("pn_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"pn_api_request_duration_seconds",
			"API request latency in seconds by method/route/status.",
			[]string{"method", "route", "status"},
			nil,
		),
		apiInflight:  NewGaugeVec("pn_api_inflight_requests", "In-flight API requests.", nil),
		rateLimited:  NewCounterVec("pn_api_rate_limited_total", "Requests rejected by the rate limiter.", []string{"route"}),
		dbStats:      NewGaugeVec("pn_db_pool", "database/sql connection pool stats.", []string{"stat"}),
		redisUp:      NewGaugeVec("pn_redis_up", "Redis reachability (1 up, 0 down).", nil),
		redisLatency: NewGaugeVec("pn_redis_ping_seconds", "Last redis ping round trip in seconds.", nil),
	}
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route, status)
}

func (m *Metrics) InflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Add(1)
}

func (m *Metrics) InflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Add(-1)
}

func (m *Metrics) IncRateLimited(route string) {
	if m == nil {
		return
	}
	m.rateLimited.Inc(route)
}

func (m *Metrics) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if m == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		_ = m.WritePrometheus(w)
	})
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, fam := range []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.rateLimited,
		m.dbStats,
		m.redisUp,
		m.redisLatency,
	} {
		if err := fam.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) CollectDBStats(db *gorm.DB) error {
	if m == nil || db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	stats := sqlDB.Stats()
	m.dbStats.Set(float64(stats.OpenConnections), "open_connections")
	m.dbStats.Set(float64(stats.InUse), "in_use")
	m.dbStats.Set(float64(stats.Idle), "idle")
	m.dbStats.Set(float64(stats.WaitCount), "wait_count")
	m.dbStats.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
	m.dbStats.Set(float64(stats.MaxOpenConnections), "max_open_connections")
	return nil
}

func (m *Metrics) CollectRedis(ctx context.Context, rdb redis.UniversalClient) error {
	if m == nil || rdb == nil {
		return nil
	}
	start := time.Now()
	if err := rdb.Ping(ctx).Err(); err != nil {
		m.redisUp.Set(0)
		return err
	}
	m.redisUp.Set(1)
	m.redisLatency.Set(time.Since(start).Seconds())
	return nil
}

// StartCollectors samples pool and redis state until ctx is done. rdb may be nil.
func (m *Metrics) StartCollectors(ctx context.Context, log *logger.Logger, db *gorm.DB, rdb redis.UniversalClient, interval time.Duration) {
	if m == nil {
		return
	}
	if interval <= 0 {
		interval = defaultScrapeInterval
	}
	collect := func() {
		if err := m.CollectDBStats(db); err != nil && log != nil {
			log.Warn("metrics: db stats unavailable", "error", err)
		}
		if err := m.CollectRedis(ctx, rdb); err != nil && log != nil && ctx.Err() == nil {
			log.Warn("metrics: redis ping failed", "error", strings.TrimSpace(err.Error()))
		}
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		collect()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				collect()
			}
		}
	}()
}
