package ingest

import (
	"context"

	"github.com/kailas-cloud/photodex/internal/domain"
)

// ObjectStore reads operator-supplied label tags from stored objects.
type ObjectStore interface {
	FetchLabelTags(ctx context.Context, bucket, objectKey string) ([]string, error)
}

// Detector produces descriptive label names for a stored image.
type Detector interface {
	DetectLabelNames(ctx context.Context, bucket, objectKey string, maxLabels int, minConfidence float64) ([]string, error)
}

// PhotoIndexer writes photo records into the search index.
type PhotoIndexer interface {
	Index(ctx context.Context, rec *domain.PhotoRecord) error
}

// Notifier reports job outcomes to an external orchestrator.
type Notifier interface {
	ReportSuccess(ctx context.Context, jobID string) error
	ReportFailure(ctx context.Context, jobID, detail string) error
}
