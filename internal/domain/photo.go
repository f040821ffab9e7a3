package domain

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/photodex/internal/domain/label"
)

// PhotoRecord is the indexed photo metadata document (immutable value object).
// Labels are normalized on construction: trimmed, lower-cased, deduplicated.
type PhotoRecord struct {
	objectKey string
	bucket    string
	createdAt time.Time
	labels    []string
}

// NewPhotoRecord validates and creates a PhotoRecord with a fresh creation
// timestamp. Label sources are merged and normalized; empty sources contribute
// nothing.
func NewPhotoRecord(bucket, objectKey string, labelSources ...[]string) (PhotoRecord, error) {
	if bucket == "" {
		return PhotoRecord{}, fmt.Errorf("bucket is required")
	}
	if objectKey == "" {
		return PhotoRecord{}, fmt.Errorf("object key is required")
	}

	return PhotoRecord{
		objectKey: objectKey,
		bucket:    bucket,
		createdAt: time.Now().UTC(),
		labels:    label.Normalize(labelSources...),
	}, nil
}

// ReconstructPhotoRecord creates a PhotoRecord without validation or
// re-normalization (storage hydration).
func ReconstructPhotoRecord(bucket, objectKey string, createdAt time.Time, labels []string) PhotoRecord {
	return PhotoRecord{objectKey: objectKey, bucket: bucket, createdAt: createdAt, labels: labels}
}

// ObjectKey returns the stored object's key within its bucket.
func (p *PhotoRecord) ObjectKey() string { return p.objectKey }

// Bucket returns the storage bucket holding the object.
func (p *PhotoRecord) Bucket() string { return p.bucket }

// CreatedAt returns the record creation time, set once at ingestion.
func (p *PhotoRecord) CreatedAt() time.Time { return p.createdAt }

// Labels returns the normalized label set.
func (p *PhotoRecord) Labels() []string { return p.labels }

// HasLabel reports whether the record carries the given normalized label.
func (p *PhotoRecord) HasLabel(l string) bool {
	for _, have := range p.labels {
		if have == l {
			return true
		}
	}
	return false
}
