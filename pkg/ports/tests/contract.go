package tests

import (
	"context"
	"testing"

	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/aretw0/tmsim/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MachineLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.MachineLoader.
// want maps every id the loader must expose to the rules it must return.
func MachineLoaderContractTest(t *testing.T, loader ports.MachineLoader, want map[string][]domain.Rule) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetMachine_Success", func(t *testing.T) {
		for id, rules := range want {
			m, err := loader.GetMachine(ctx, id)
			require.NoError(t, err, "machine %s", id)
			assert.Equal(t, id, m.ID)
			require.Len(t, m.Rules, len(rules), "machine %s", id)
			for i := range rules {
				assert.Equal(t, rules[i].String(), m.Rules[i].String(), "machine %s rule %d", id, i)
			}
		}
	})

	t.Run("GetMachine_NotFound", func(t *testing.T) {
		_, err := loader.GetMachine(ctx, "non-existent-machine")
		assert.ErrorIs(t, err, domain.ErrMachineNotFound)
	})

	t.Run("ListMachines", func(t *testing.T) {
		ids, err := loader.ListMachines(ctx)
		require.NoError(t, err)
		assert.Len(t, ids, len(want))
		for id := range want {
			assert.Contains(t, ids, id)
		}
		assert.IsNonDecreasing(t, ids)
	})
}
