// Package photo persists PhotoRecord documents in the searchable index.
package photo

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/photodex/internal/db"
	"github.com/kailas-cloud/photodex/internal/domain"
)

const (
	// KeyPrefix is the hash key prefix for photo documents.
	KeyPrefix = "photodex:photos:"
	// IndexName is the FT index over photo documents.
	IndexName = "photodex:photos-idx"
)

// store is the consumer interface for photo persistence (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchTags(ctx context.Context, q *db.TagQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// Repo implements the photo index repository.
type Repo struct {
	store store
}

// New creates a photo repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// EnsureIndex creates the FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, IndexName)
	if err != nil {
		return fmt.Errorf("check index %s: %w", IndexName, err)
	}
	if exists {
		return nil
	}

	def, err := db.NewIndex(IndexName).
		Prefix(KeyPrefix).
		TagWithOpts("labels", ",", false).
		Tag("bucket").
		Build()
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		return fmt.Errorf("create index %s: %w", IndexName, err)
	}
	return nil
}

// Index writes a photo record as a new document. Re-ingesting the same object
// key overwrites the previous document fields (blind create, no merge).
func (r *Repo) Index(ctx context.Context, rec *domain.PhotoRecord) error {
	key := docKey(rec.Bucket(), rec.ObjectKey())
	if err := r.store.HSet(ctx, key, buildHashFields(rec)); err != nil {
		return fmt.Errorf("index photo %s: %w", key, err)
	}
	return nil
}

// Get returns a photo record by bucket and object key.
func (r *Repo) Get(ctx context.Context, bucket, objectKey string) (domain.PhotoRecord, error) {
	key := docKey(bucket, objectKey)
	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domain.PhotoRecord{}, fmt.Errorf("get photo %s: %w", key, err)
	}
	if len(fields) == 0 {
		return domain.PhotoRecord{}, domain.ErrPhotoNotFound
	}
	return parseHashFields(fields), nil
}

// SearchByLabels returns photo records whose label set contains every given
// label (boolean AND across terms).
func (r *Repo) SearchByLabels(ctx context.Context, labels []string, limit int) ([]domain.PhotoRecord, error) {
	if len(labels) == 0 {
		return nil, nil
	}

	clauses := make([]db.TagClause, 0, len(labels))
	for _, l := range labels {
		clauses = append(clauses, db.TagClause{Field: "labels", Value: l})
	}

	sr, err := r.store.SearchTags(ctx, &db.TagQuery{
		IndexName: IndexName,
		Clauses:   clauses,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search photos: %w", err)
	}

	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	records := make([]domain.PhotoRecord, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		records = append(records, parseHashFields(entry.Fields))
	}
	return records, nil
}

// Count returns the number of indexed photo documents.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, IndexName, "*")
	if err != nil {
		return 0, fmt.Errorf("count photos: %w", err)
	}
	return n, nil
}

func docKey(bucket, objectKey string) string {
	return KeyPrefix + bucket + "/" + objectKey
}
