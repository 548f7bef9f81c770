package audit

import (
	"context"

	"github.com/google/uuid"
)

// Entry is one recorded change.
type Entry struct {
	OrganizationID uuid.UUID
	Action         string
	EntityType     string
	EntityID       string
	Context        map[string]interface{}
}

// Logger defines the interface for auditing operations
type Logger interface {
	// Record stores an entry. Request metadata and the acting user are taken
	// from ctx when present.
	Record(ctx context.Context, entry Entry) error
}

// NoOpLogger is a logger that does nothing
type NoOpLogger struct{}

// Record implements Logger.Record
func (l *NoOpLogger) Record(ctx context.Context, entry Entry) error {
	return nil
}
