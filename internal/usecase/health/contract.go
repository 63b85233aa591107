package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexChecker checks that the candidate index can serve lookups.
type IndexChecker interface {
	CheckIndex(ctx context.Context) error
}
