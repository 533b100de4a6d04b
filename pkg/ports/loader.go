package ports

import (
	"context"

	"github.com/aretw0/tmsim/pkg/domain"
)

// MachineLoader defines how machine definitions are retrieved.
// This allows the storage layer (Files, Loam, Memory) to be decoupled.
type MachineLoader interface {
	// GetMachine returns the definition with the given id.
	// Returns domain.ErrMachineNotFound if there is none.
	GetMachine(ctx context.Context, id string) (*domain.Machine, error)

	// ListMachines returns the ids of every available machine, sorted.
	ListMachines(ctx context.Context) ([]string, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// This is typically used for hot-reload or dev-mode functionality.
type Watchable interface {
	// Watch returns a channel that receives the id of every machine that changed.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}
