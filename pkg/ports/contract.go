package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractResult(input string) *domain.Result {
	final := domain.Record{
		Label:   "STEP3",
		Step:    3,
		State:   "2",
		Tape:    input + "_",
		Pointer: 0,
		Status:  domain.StatusHalted,
	}
	return &domain.Result{
		Machine:     "contract",
		Fingerprint: "f00d",
		Input:       input,
		Status:      domain.StatusHalted,
		Steps:       2,
		Final:       final,
		Records: []domain.Record{
			{Label: domain.LabelStart, State: "1", Tape: input, Status: domain.StatusRunning},
			final,
		},
	}
}

// RunResultStoreContract runs a suite of tests to verify that a ResultStore implementation
// adheres to the defined interface contract.
func RunResultStoreContract(t *testing.T, store ResultStore) {
	ctx := context.Background()
	key := ResultKey("contract-"+time.Now().Format("20060102150405"), 0, "1")

	t.Run("Save and Load", func(t *testing.T) {
		res := contractResult("1")

		err := store.Save(ctx, key, res)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, res.Status, loaded.Status)
		assert.Equal(t, res.Steps, loaded.Steps)
		assert.Equal(t, res.Final, loaded.Final)
		assert.Equal(t, res.Records, loaded.Records)
		assert.Equal(t, "contract", loaded.Machine)
	})

	t.Run("Load Returns A Copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		loaded.Records[0].Tape = "mutated"

		again, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.NotEqual(t, "mutated", again.Records[0].Tape)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrResultNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		res := contractResult("1")
		res.Steps = 99
		require.NoError(t, store.Save(ctx, key, res))

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 99, loaded.Steps)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrResultNotFound, "Load after Delete should return ErrResultNotFound")

		assert.NoError(t, store.Delete(ctx, key), "Delete of a missing key is a no-op")
	})

	t.Run("List", func(t *testing.T) {
		k1 := key + "-1"
		k2 := key + "-2"
		_ = store.Save(ctx, k1, contractResult("10"))
		_ = store.Save(ctx, k2, contractResult("11"))

		defer func() {
			_ = store.Delete(ctx, k1)
			_ = store.Delete(ctx, k2)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, k1)
		assert.Contains(t, keys, k2)
	})
}
