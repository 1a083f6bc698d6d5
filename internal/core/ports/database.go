// internal/core/ports/database.go
package ports

import "context"

// HealthPinger is implemented by backends the health endpoints probe
type HealthPinger interface {
	Ping(ctx context.Context) error
}
