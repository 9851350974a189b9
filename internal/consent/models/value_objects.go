package models

// Status represents the lifecycle state of a consent record. The stored field
// only ever holds states reached by an explicit operation (active, revoked);
// pending, authorized and rejected are reserved by the PSD2 flow and expired
// is derived from the clock via EffectiveStatus.
type Status string

const (
	StatusPending    Status = "pending"
	StatusAuthorized Status = "authorized"
	StatusActive     Status = "active"
	StatusExpired    Status = "expired"
	StatusRevoked    Status = "revoked"
	StatusRejected   Status = "rejected"
)

// AllStatuses lists every lifecycle state, in flow order. Status breakdowns
// report all of them, including zero counts.
var AllStatuses = []Status{
	StatusPending,
	StatusAuthorized,
	StatusActive,
	StatusExpired,
	StatusRevoked,
	StatusRejected,
}

// IsValid checks if the status is one of the supported enum values.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAuthorized, StatusActive, StatusExpired, StatusRevoked, StatusRejected:
		return true
	}
	return false
}
