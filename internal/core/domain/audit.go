package domain

import "time"

// Audit actions recorded by the security log.
const (
	AuditLogin      = "login"
	AuditRegister   = "register"
	AuditRoleAssign = "role_assign"
	AuditRoleRemove = "role_remove"
)

// Audit outcomes.
const (
	AuditSuccess = "success"
	AuditFailure = "failure"
	AuditDenied  = "denied"
)

// AuditEvent is a single entry in the security audit trail. Actor is the
// username (or attempted username) driving the operation; Target names what
// was acted on, e.g. a user id or "user_id:role".
type AuditEvent struct {
	Actor     string
	Action    string
	Target    string
	Outcome   string
	Timestamp time.Time
}
