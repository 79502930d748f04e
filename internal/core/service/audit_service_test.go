package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/secureapp/identity-service/internal/core/domain"
	"github.com/secureapp/identity-service/internal/core/ports"
)

func TestAuditService_Process(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	ts := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	err := svc.Process(context.Background(), ports.AuditEventInput{
		Actor:     "alice",
		Action:    domain.AuditLogin,
		Target:    "u1",
		Outcome:   domain.AuditSuccess,
		Timestamp: ts,
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	got := repo.events[0]
	if got.Actor != "alice" || got.Action != domain.AuditLogin || !got.Timestamp.Equal(ts) {
		t.Fatalf("unexpected event: %+v", got)
	}
}

func TestAuditService_Process_StampsZeroTimestamp(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	if err := svc.Process(context.Background(), ports.AuditEventInput{
		Actor:   "bob",
		Action:  domain.AuditRegister,
		Outcome: domain.AuditSuccess,
	}); err != nil {
		t.Fatalf("process: %v", err)
	}

	if repo.events[0].Timestamp.IsZero() {
		t.Fatalf("expected timestamp to be stamped")
	}
}
