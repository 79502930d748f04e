package ports

import (
	"context"
	"time"

	"github.com/secureapp/identity-service/internal/core/domain"
)

// AuditEventInput is the DTO handed from services to the audit pipeline.
type AuditEventInput struct {
	Actor     string
	Action    string
	Target    string
	Outcome   string
	Timestamp time.Time
}

// AuditRecorder is the fire-and-forget side of the pipeline; implementations
// must never block the request path for longer than a channel send.
type AuditRecorder interface {
	Record(event AuditEventInput)
}

// AuditService persists audit events delivered by the dispatcher workers.
type AuditService interface {
	Process(ctx context.Context, event AuditEventInput) error
}

// AuditRepository is the storage adapter for the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}
