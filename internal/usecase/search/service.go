// Package search answers free-text photo queries: resolve search terms,
// match them against the label index, and return presigned retrieval links.
package search

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/photodex/internal/domain"
	"github.com/kailas-cloud/photodex/internal/domain/label"
	"github.com/kailas-cloud/photodex/internal/metrics"
)

// Result is a single search hit.
type Result struct {
	URL    string   `json:"url"`
	Labels []string `json:"labels"`
}

// Service handles the query side of the pipeline.
type Service struct {
	resolver Resolver
	searcher PhotoSearcher
	signer   URLSigner
	limit    int
	linkTTL  time.Duration
	logger   *zap.Logger
}

// New creates a search service.
func New(resolver Resolver, searcher PhotoSearcher, signer URLSigner, logger *zap.Logger) *Service {
	return &Service{
		resolver: resolver,
		searcher: searcher,
		signer:   signer,
		limit:    50,
		linkTTL:  time.Hour,
		logger:   logger,
	}
}

// WithLimits overrides the result cap and the retrieval link lifetime.
func (s *Service) WithLimits(limit int, linkTTL time.Duration) *Service {
	if limit > 0 {
		s.limit = limit
	}
	if linkTTL > 0 {
		s.linkTTL = linkTTL
	}
	return s
}

// Search resolves the query into label terms and returns all photos carrying
// every term. A blank query is rejected; downstream failures degrade to an
// empty result set rather than surfacing to the caller.
func (s *Service) Search(ctx context.Context, query string) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}

	terms := s.resolveTerms(ctx, query)
	if len(terms) == 0 {
		metrics.SearchQueriesTotal.WithLabelValues("empty").Inc()
		return []Result{}, nil
	}

	records, err := s.searcher.SearchByLabels(ctx, terms, s.limit)
	if err != nil {
		s.logger.Error("label search failed",
			zap.Strings("terms", terms),
			zap.Error(err),
		)
		metrics.SearchQueriesTotal.WithLabelValues("degraded").Inc()
		return []Result{}, nil
	}

	results := make([]Result, 0, len(records))
	for i := range records {
		rec := &records[i]
		url, err := s.signer.PresignURL(ctx, rec.Bucket(), rec.ObjectKey(), s.linkTTL)
		if err != nil {
			s.logger.Warn("presign failed, dropping hit",
				zap.String("bucket", rec.Bucket()),
				zap.String("object_key", rec.ObjectKey()),
				zap.Error(err),
			)
			continue
		}
		results = append(results, Result{URL: url, Labels: rec.Labels()})
	}

	if len(results) == 0 {
		metrics.SearchQueriesTotal.WithLabelValues("empty").Inc()
	} else {
		metrics.SearchQueriesTotal.WithLabelValues("results").Inc()
	}
	return results, nil
}

// resolveTerms extracts and normalizes slot values from the query. A resolver
// failure is treated as a query with no recognizable terms.
func (s *Service) resolveTerms(ctx context.Context, query string) []string {
	slots, err := s.resolver.ResolveSlots(ctx, query)
	if err != nil {
		s.logger.Warn("slot resolution failed", zap.String("query", query), zap.Error(err))
		return nil
	}

	values := make([]string, 0, len(slots))
	for _, v := range slots {
		values = append(values, v)
	}
	return label.Normalize(values)
}
