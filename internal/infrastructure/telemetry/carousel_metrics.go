package telemetry

import (
	"context"

	carouselapp "github.com/storefront/backend/internal/application/carousel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var _ carouselapp.SlideMetrics = (*CarouselMetrics)(nil)

// CarouselMetrics records image uploads and batch saves
type CarouselMetrics struct {
	uploads     metric.Int64Counter
	uploadBytes metric.Int64Histogram
	batches     metric.Int64Counter
	batchSize   metric.Int64Histogram
}

// NewCarouselMetrics creates the carousel instruments on meter
func NewCarouselMetrics(meter metric.Meter) (*CarouselMetrics, error) {
	uploads, err := meter.Int64Counter("storefront.carousel.image_uploads",
		metric.WithDescription("Carousel image uploads by outcome"),
		metric.WithUnit("{upload}"))
	if err != nil {
		return nil, err
	}
	uploadBytes, err := meter.Int64Histogram("storefront.carousel.image_upload_size",
		metric.WithDescription("Size of uploaded carousel images"),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(64<<10, 256<<10, 512<<10, 1<<20, 2<<20, 5<<20))
	if err != nil {
		return nil, err
	}
	batches, err := meter.Int64Counter("storefront.carousel.batch_saves",
		metric.WithDescription("Batch slide saves by outcome"),
		metric.WithUnit("{save}"))
	if err != nil {
		return nil, err
	}
	batchSize, err := meter.Int64Histogram("storefront.carousel.batch_size",
		metric.WithDescription("Slides per batch save"),
		metric.WithUnit("{slide}"),
		metric.WithExplicitBucketBoundaries(1, 2, 5, 10, 20, 50))
	if err != nil {
		return nil, err
	}
	return &CarouselMetrics{uploads: uploads, uploadBytes: uploadBytes, batches: batches, batchSize: batchSize}, nil
}

// RecordUpload implements carouselapp.SlideMetrics
func (m *CarouselMetrics) RecordUpload(ctx context.Context, bytes int64, err error) {
	m.uploads.Add(ctx, 1, metric.WithAttributes(outcome(err)))
	if err == nil {
		m.uploadBytes.Record(ctx, bytes)
	}
}

// RecordBatch implements carouselapp.SlideMetrics
func (m *CarouselMetrics) RecordBatch(ctx context.Context, size int, err error) {
	m.batches.Add(ctx, 1, metric.WithAttributes(outcome(err)))
	if err == nil {
		m.batchSize.Record(ctx, int64(size))
	}
}

func outcome(err error) attribute.KeyValue {
	if err != nil {
		return attribute.String("outcome", "error")
	}
	return attribute.String("outcome", "success")
}
