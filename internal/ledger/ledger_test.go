package ledger

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/lurelands/internal/sqlite"
	"github.com/mesh-intelligence/lurelands/pkg/types"
)

func setupStore(t *testing.T) *sqlite.Backend {
	t.Helper()
	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })
	return b
}

func inTx(t *testing.T, b *sqlite.Backend, fn func(tx types.Tx)) {
	t.Helper()
	require.NoError(t, b.Update(context.Background(), func(tx types.Tx) error {
		fn(tx)
		return nil
	}))
}

func quantities(t *testing.T, tx types.Tx, player, item string, rarity uint8) []uint32 {
	t.Helper()
	stacks, err := tx.ListStacks(player, item, rarity)
	require.NoError(t, err)
	out := []uint32{}
	for _, s := range stacks {
		out = append(out, s.Quantity)
	}
	return out
}

func TestAddSplitsIntoCapacityStacks(t *testing.T) {
	tests := []struct {
		name   string
		item   string
		rarity uint8
		adds   []uint32
		want   []uint32
	}{
		{name: "fish split five and two", item: "fish_pond_1", rarity: 1, adds: []uint32{7}, want: []uint32{5, 2}},
		{name: "top up before new stack", item: "fish_pond_1", rarity: 1, adds: []uint32{2, 4}, want: []uint32{5, 1}},
		{name: "exact capacity", item: "fish_river_2", rarity: 2, adds: []uint32{5, 5}, want: []uint32{5, 5}},
		{name: "poles hold one", item: "pole_2", adds: []uint32{3}, want: []uint32{1, 1, 1}},
		{name: "lures stack without bound", item: "lure_1", adds: []uint32{40, 60}, want: []uint32{100}},
		{name: "zero is a no-op", item: "fish_pond_1", rarity: 1, adds: []uint32{0}, want: []uint32{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setupStore(t)
			l := New(nil)
			inTx(t, b, func(tx types.Tx) {
				for _, q := range tt.adds {
					require.NoError(t, l.Add(tx, "p1", tt.item, tt.rarity, q))
				}
				assert.Equal(t, tt.want, quantities(t, tx, "p1", tt.item, tt.rarity))
			})
		})
	}
}

func TestAddKeepsRaritiesApart(t *testing.T) {
	b := setupStore(t)
	l := New(nil)
	inTx(t, b, func(tx types.Tx) {
		require.NoError(t, l.Add(tx, "p1", "fish_ocean_3", 1, 3))
		require.NoError(t, l.Add(tx, "p1", "fish_ocean_3", 3, 3))
		assert.Equal(t, []uint32{3}, quantities(t, tx, "p1", "fish_ocean_3", 1))
		assert.Equal(t, []uint32{3}, quantities(t, tx, "p1", "fish_ocean_3", 3))

		all, err := TotalOwnedAnyRarity(tx, "p1", "fish_ocean_3")
		require.NoError(t, err)
		assert.Equal(t, uint64(6), all)
	})
}

func TestRoundTrip(t *testing.T) {
	b := setupStore(t)
	l := New(nil)
	inTx(t, b, func(tx types.Tx) {
		require.NoError(t, l.Add(tx, "p", "fish_pond_1", 1, 7))
		assert.Equal(t, []uint32{5, 2}, quantities(t, tx, "p", "fish_pond_1", 1))

		require.NoError(t, l.Remove(tx, "p", "fish_pond_1", 1, 7))
		total, err := TotalOwned(tx, "p", "fish_pond_1", 1)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, quantities(t, tx, "p", "fish_pond_1", 1))
	})
}

func TestRemoveConsumesInStackOrder(t *testing.T) {
	b := setupStore(t)
	l := New(nil)
	inTx(t, b, func(tx types.Tx) {
		require.NoError(t, l.Add(tx, "p", "fish_pond_1", 1, 12))
		require.NoError(t, l.Remove(tx, "p", "fish_pond_1", 1, 7))
		assert.Equal(t, []uint32{3, 2}, quantities(t, tx, "p", "fish_pond_1", 1))

		require.NoError(t, l.Remove(tx, "p", "fish_pond_1", 1, 0))
		assert.Equal(t, []uint32{3, 2}, quantities(t, tx, "p", "fish_pond_1", 1))
	})
}

func TestRemoveInsufficientChangesNothing(t *testing.T) {
	b := setupStore(t)
	l := New(nil)
	inTx(t, b, func(tx types.Tx) {
		require.NoError(t, l.Add(tx, "p", "fish_pond_1", 1, 3))
		before, err := TotalOwned(tx, "p", "fish_pond_1", 1)
		require.NoError(t, err)

		err = l.Remove(tx, "p", "fish_pond_1", 1, 5)
		assert.ErrorIs(t, err, ErrInsufficientQuantity)
		assert.ErrorIs(t, err, types.ErrInsufficientQuantity)

		after, err := TotalOwned(tx, "p", "fish_pond_1", 1)
		require.NoError(t, err)
		assert.Equal(t, before, after)
		assert.Equal(t, []uint32{3}, quantities(t, tx, "p", "fish_pond_1", 1))

		err = l.Remove(tx, "p", "fish_pond_1", 2, 1)
		assert.ErrorIs(t, err, ErrInsufficientQuantity, "other rarities do not count")
	})
}

type fixedKinds map[string]types.ItemKind

func (k fixedKinds) Kind(id string) types.ItemKind { return k[id] }

func TestCustomKinds(t *testing.T) {
	b := setupStore(t)
	l := New(fixedKinds{"golden_boot": types.KindPole})
	assert.Equal(t, uint32(1), l.Capacity("golden_boot"))
	inTx(t, b, func(tx types.Tx) {
		require.NoError(t, l.Add(tx, "p", "golden_boot", 0, 2))
		assert.Equal(t, []uint32{1, 1}, quantities(t, tx, "p", "golden_boot", 0))
	})
}

func TestRandomSequencesKeepInvariants(t *testing.T) {
	b := setupStore(t)
	l := New(nil)
	rng := rand.New(rand.NewSource(7))
	items := []string{"fish_pond_1", "pole_3", "lure_2"}
	owned := map[string]uint64{}

	inTx(t, b, func(tx types.Tx) {
		for i := 0; i < 300; i++ {
			item := items[rng.Intn(len(items))]
			q := uint32(rng.Intn(9))
			if rng.Intn(2) == 0 {
				require.NoError(t, l.Add(tx, "p", item, 1, q))
				owned[item] += uint64(q)
			} else {
				err := l.Remove(tx, "p", item, 1, q)
				if uint64(q) > owned[item] {
					require.True(t, errors.Is(err, ErrInsufficientQuantity))
				} else {
					require.NoError(t, err)
					owned[item] -= uint64(q)
				}
			}

			for _, it := range items {
				stacks, err := tx.ListStacks("p", it, 1)
				require.NoError(t, err)
				for _, s := range stacks {
					require.GreaterOrEqual(t, s.Quantity, uint32(1))
					require.LessOrEqual(t, s.Quantity, l.Capacity(it))
				}
				total, err := TotalOwned(tx, "p", it, 1)
				require.NoError(t, err)
				require.Equal(t, owned[it], total)
			}
		}
	})
}
