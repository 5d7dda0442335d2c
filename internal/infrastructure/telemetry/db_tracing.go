package telemetry

import (
	"errors"
	"time"

	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const slowQueryStartKey = "slow_query:start"

// RegisterDBTracing adds otelgorm spans to db and flags slow statements on
// the active span. Query variables are left out unless DBLogFullSQL is set.
func RegisterDBTracing(db *gorm.DB, cfg config.TelemetryConfig, dbName string, logger *zap.Logger) error {
	if !cfg.DBTraceEnabled {
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(dbName)}
	if !cfg.DBLogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	// Registered ahead of otelgorm so the after hooks run while its span is
	// still open.
	if err := registerSlowQueryCallbacks(db, cfg.DBSlowQueryThresh, logger); err != nil {
		return err
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.DBLogFullSQL),
		zap.Duration("slow_query_threshold", cfg.DBSlowQueryThresh),
	)
	return nil
}

func registerSlowQueryCallbacks(db *gorm.DB, threshold time.Duration, logger *zap.Logger) error {
	if threshold <= 0 {
		return nil
	}
	// The start time lives in statement instance storage: otelgorm swaps
	// Statement.Context back to its parent when its span ends.
	before := func(tx *gorm.DB) {
		tx.InstanceSet(slowQueryStartKey, time.Now())
	}
	after := func(tx *gorm.DB) {
		v, ok := tx.InstanceGet(slowQueryStartKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		elapsed := time.Since(start)
		if elapsed < threshold {
			return
		}
		if ctx := tx.Statement.Context; ctx != nil {
			trace.SpanFromContext(ctx).AddEvent("slow_query", trace.WithAttributes(
				attribute.String("db.table", tx.Statement.Table),
				attribute.Int64("db.duration_ms", elapsed.Milliseconds()),
			))
		}
		logger.Warn("Slow query",
			zap.String("table", tx.Statement.Table),
			zap.Duration("elapsed", elapsed),
			zap.Duration("threshold", threshold),
		)
	}

	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("slow_query:before_create", before),
		cb.Create().After("gorm:create").Register("slow_query:after_create", after),
		cb.Query().Before("gorm:query").Register("slow_query:before_query", before),
		cb.Query().After("gorm:query").Register("slow_query:after_query", after),
		cb.Update().Before("gorm:update").Register("slow_query:before_update", before),
		cb.Update().After("gorm:update").Register("slow_query:after_update", after),
		cb.Delete().Before("gorm:delete").Register("slow_query:before_delete", before),
		cb.Delete().After("gorm:delete").Register("slow_query:after_delete", after),
		cb.Row().Before("gorm:row").Register("slow_query:before_row", before),
		cb.Row().After("gorm:row").Register("slow_query:after_row", after),
		cb.Raw().Before("gorm:raw").Register("slow_query:before_raw", before),
		cb.Raw().After("gorm:raw").Register("slow_query:after_raw", after),
	)
}
