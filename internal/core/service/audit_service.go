package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/secureapp/identity-service/internal/core/domain"
	"github.com/secureapp/identity-service/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns the AuditService implementation invoked by the
// dispatcher workers.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single audit event. A zero timestamp is stamped with
// the processing time so entries are never unordered-by-zero.
func (s *auditService) Process(ctx context.Context, in ports.AuditEventInput) error {
	ts := in.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	event := &domain.AuditEvent{
		Actor:     in.Actor,
		Action:    in.Action,
		Target:    in.Target,
		Outcome:   in.Outcome,
		Timestamp: ts,
	}

	if err := s.repo.Insert(ctx, event); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}

	s.log.Debug().
		Str("actor", in.Actor).
		Str("action", in.Action).
		Str("outcome", in.Outcome).
		Msg("audit event recorded")
	return nil
}
