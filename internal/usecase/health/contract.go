package health

import "context"

// DBPinger checks preference store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}
