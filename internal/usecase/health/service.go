package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results. Photos is the number of indexed
// documents, present only when the index check passed.
type Report struct {
	Status Status
	Checks map[string]CheckResult
	Photos int
}

// Service coordinates health checks.
type Service struct {
	db      DBPinger
	store   ObjectStoreChecker
	counter PhotoCounter
}

// New creates a Service. store can be nil.
func New(db DBPinger, store ObjectStoreChecker) *Service {
	return &Service{db: db, store: store}
}

// WithPhotoCount adds an index document count to the health report.
func (s *Service) WithPhotoCount(c PhotoCounter) *Service {
	s.counter = c
	return s
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
	} else {
		checks["database"] = CheckOK
	}

	if s.store != nil {
		if err := s.store.HealthCheck(ctx); err != nil {
			checks["object_store"] = CheckError
		} else {
			checks["object_store"] = CheckOK
		}
	}

	photos := 0
	if s.counter != nil {
		n, err := s.counter.Count(ctx)
		if err != nil {
			checks["index"] = CheckError
		} else {
			checks["index"] = CheckOK
			photos = n
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks, Photos: photos}
}
