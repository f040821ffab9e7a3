// Package nats publishes pipeline lifecycle signals to a NATS subject so
// external orchestrators can resume or fail a pending job.
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Config holds the NATS connection settings.
type Config struct {
	URL     string
	Subject string
	Name    string
}

// publisher is the slice of *nats.Conn the notifier needs.
type publisher interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// JobSignal is the wire format of a pipeline signal.
type JobSignal struct {
	JobID   string    `json:"job_id"`
	Status  string    `json:"status"`
	Detail  string    `json:"detail,omitempty"`
	Emitted time.Time `json:"emitted"`
}

const (
	statusSucceeded = "succeeded"
	statusFailed    = "failed"
)

// Notifier reports ingest job outcomes as JSON messages.
type Notifier struct {
	conn    publisher
	subject string
	logger  *zap.Logger
}

// Connect dials the NATS server and returns a ready Notifier.
func Connect(cfg Config, logger *zap.Logger) (*Notifier, error) {
	opts := []nats.Option{
		nats.Name(cfg.Name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
	}
	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	logger.Info("connected to nats", zap.String("url", cfg.URL), zap.String("subject", cfg.Subject))
	return &Notifier{conn: nc, subject: cfg.Subject, logger: logger}, nil
}

// NewNotifierForTest wires a Notifier over an existing connection.
func NewNotifierForTest(conn publisher, subject string, logger *zap.Logger) *Notifier {
	return &Notifier{conn: conn, subject: subject, logger: logger}
}

// ReportSuccess signals that the job completed and its photo is searchable.
func (n *Notifier) ReportSuccess(ctx context.Context, jobID string) error {
	return n.publish(ctx, JobSignal{
		JobID:   jobID,
		Status:  statusSucceeded,
		Emitted: time.Now().UTC(),
	})
}

// ReportFailure signals that the job failed with the given detail.
func (n *Notifier) ReportFailure(ctx context.Context, jobID, detail string) error {
	return n.publish(ctx, JobSignal{
		JobID:   jobID,
		Status:  statusFailed,
		Detail:  detail,
		Emitted: time.Now().UTC(),
	})
}

func (n *Notifier) publish(ctx context.Context, sig JobSignal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(sig)
	if err != nil {
		return fmt.Errorf("marshal job signal: %w", err)
	}
	if err := n.conn.Publish(n.subject, data); err != nil {
		return fmt.Errorf("publish job signal: %w", err)
	}
	n.logger.Debug("job signal published",
		zap.String("job_id", sig.JobID),
		zap.String("status", sig.Status),
	)
	return nil
}

// Close drains the connection, flushing buffered messages.
func (n *Notifier) Close() error {
	return n.conn.Drain()
}
