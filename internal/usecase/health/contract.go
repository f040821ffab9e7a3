package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// ObjectStoreChecker checks object store reachability.
type ObjectStoreChecker interface {
	HealthCheck(ctx context.Context) error
}

// PhotoCounter reports the number of indexed photo documents.
type PhotoCounter interface {
	Count(ctx context.Context) (int, error)
}
