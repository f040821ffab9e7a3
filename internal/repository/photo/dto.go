package photo

import (
	"strings"
	"time"

	"github.com/kailas-cloud/photodex/internal/domain"
)

// buildHashFields converts a PhotoRecord into a flat map[string]string for HSET.
// Labels are comma-joined to match the TAG SEPARATOR of the index.
func buildHashFields(rec *domain.PhotoRecord) map[string]string {
	return map[string]string{
		"object_key": rec.ObjectKey(),
		"bucket":     rec.Bucket(),
		"created_at": rec.CreatedAt().UTC().Format(time.RFC3339),
		"labels":     strings.Join(rec.Labels(), ","),
	}
}

// parseHashFields converts a flat hash map back into a PhotoRecord.
func parseHashFields(m map[string]string) domain.PhotoRecord {
	var labels []string
	if raw := m["labels"]; raw != "" {
		labels = strings.Split(raw, ",")
	}

	createdAt, err := time.Parse(time.RFC3339, m["created_at"])
	if err != nil {
		createdAt = time.Time{}
	}

	return domain.ReconstructPhotoRecord(m["bucket"], m["object_key"], createdAt, labels)
}
