package routeros

import "context"

// Session is one connected administrative session on the hotspot router.
// A session belongs to a single issuance batch and is never shared.
type Session interface {
	// CreateHotspotAccount registers a hotspot user on the router.
	CreateHotspotAccount(ctx context.Context, username, password, profileName, duration string) error

	// RemoveHotspotAccount deletes a hotspot user. Used for best-effort
	// cleanup of accounts created by an aborted batch; missing accounts
	// are not an error.
	RemoveHotspotAccount(ctx context.Context, username string) error

	// Close tears the session down. Safe to call after a partial failure.
	Close() error
}

// Dialer opens router sessions. Implementations must be safe for
// concurrent use; the sessions they return need not be.
type Dialer interface {
	Open(ctx context.Context) (Session, error)
}
