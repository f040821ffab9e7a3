package search

import (
	"context"
	"time"

	"github.com/kailas-cloud/photodex/internal/domain"
)

// Resolver extracts search terms from free-text queries.
type Resolver interface {
	ResolveSlots(ctx context.Context, text string) (map[string]string, error)
}

// PhotoSearcher finds indexed photos matching all given labels.
type PhotoSearcher interface {
	SearchByLabels(ctx context.Context, labels []string, limit int) ([]domain.PhotoRecord, error)
}

// URLSigner mints time-limited retrieval links for stored objects.
type URLSigner interface {
	PresignURL(ctx context.Context, bucket, objectKey string, ttl time.Duration) (string, error)
}
