// Package ingest turns stored photos into searchable index documents.
package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/photodex/internal/domain"
	"github.com/kailas-cloud/photodex/internal/metrics"
)

// Request identifies the photo to ingest. ExtraLabels are merged with the
// object's metadata tags and the detector output. JobID, when present, keys
// the orchestration signal emitted after the attempt.
type Request struct {
	Bucket      string
	Key         string
	ExtraLabels []string
	JobID       string
}

// Result describes a completed ingest.
type Result struct {
	Bucket string
	Key    string
	Labels []string
}

// Service runs the ingest pipeline for a single photo.
type Service struct {
	store         ObjectStore
	detector      Detector
	indexer       PhotoIndexer
	notifier      Notifier
	maxLabels     int
	minConfidence float64
	logger        *zap.Logger
}

// New creates an ingest service. notifier may be nil when no orchestrator
// integration is configured.
func New(store ObjectStore, detector Detector, indexer PhotoIndexer, notifier Notifier, logger *zap.Logger) *Service {
	return &Service{
		store:         store,
		detector:      detector,
		indexer:       indexer,
		notifier:      notifier,
		maxLabels:     10,
		minConfidence: 80,
		logger:        logger,
	}
}

// WithDetection overrides the detector's label cap and confidence floor.
func (s *Service) WithDetection(maxLabels int, minConfidence float64) *Service {
	if maxLabels > 0 {
		s.maxLabels = maxLabels
	}
	if minConfidence > 0 {
		s.minConfidence = minConfidence
	}
	return s
}

// Ingest fetches the photo's metadata tags, detects labels, and writes one
// index document. Any step failure aborts the ingest.
func (s *Service) Ingest(ctx context.Context, req Request) (Result, error) {
	res, err := s.ingest(ctx, req)
	if err != nil {
		metrics.IngestTotal.WithLabelValues("error").Inc()
		s.notify(ctx, req.JobID, err)
		return Result{}, err
	}
	metrics.IngestTotal.WithLabelValues("success").Inc()
	s.notify(ctx, req.JobID, nil)
	return res, nil
}

func (s *Service) ingest(ctx context.Context, req Request) (Result, error) {
	tagLabels, err := s.store.FetchLabelTags(ctx, req.Bucket, req.Key)
	if err != nil {
		return Result{}, fmt.Errorf("fetch object tags: %w", err)
	}

	detected, err := s.detector.DetectLabelNames(ctx, req.Bucket, req.Key, s.maxLabels, s.minConfidence)
	if err != nil {
		return Result{}, fmt.Errorf("detect labels: %w", err)
	}

	rec, err := domain.NewPhotoRecord(req.Bucket, req.Key, tagLabels, detected, req.ExtraLabels)
	if err != nil {
		return Result{}, err
	}

	if err := s.indexer.Index(ctx, &rec); err != nil {
		return Result{}, fmt.Errorf("index photo: %w", err)
	}

	s.logger.Info("photo ingested",
		zap.String("bucket", rec.Bucket()),
		zap.String("object_key", rec.ObjectKey()),
		zap.Int("label_count", len(rec.Labels())),
	)

	return Result{Bucket: rec.Bucket(), Key: rec.ObjectKey(), Labels: rec.Labels()}, nil
}

// notify emits the job outcome signal. Signal delivery failures are logged,
// the ingest outcome is not changed by them.
func (s *Service) notify(ctx context.Context, jobID string, ingestErr error) {
	if s.notifier == nil || jobID == "" {
		return
	}
	var err error
	if ingestErr != nil {
		err = s.notifier.ReportFailure(ctx, jobID, ingestErr.Error())
	} else {
		err = s.notifier.ReportSuccess(ctx, jobID)
	}
	if err != nil {
		s.logger.Warn("job signal delivery failed",
			zap.String("job_id", jobID),
			zap.Error(err),
		)
	}
}
