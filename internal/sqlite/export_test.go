package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/lurelands/pkg/types"
)

func seedEvents(t *testing.T, b *Backend, n int) {
	t.Helper()
	update(t, b, func(tx types.Tx) error {
		for i := 0; i < n; i++ {
			gold := uint32(i * 10)
			e := &types.GameEvent{ID: fmt.Sprintf("e%02d", i), PlayerID: "p1",
				EventType: types.EventItemSold, GoldAmount: &gold, CreatedAt: tx.Now()}
			if err := tx.InsertEvent(e); err != nil {
				return err
			}
		}
		return nil
	})
}

func TestExportEvents(t *testing.T) {
	for _, name := range []string{"events.jsonl", "events.jsonl" + ZstdSuffix} {
		t.Run(name, func(t *testing.T) {
			b := setupBackend(t)
			seedEvents(t, b, 12)
			path := filepath.Join(t.TempDir(), "out", name)

			n, err := b.ExportEvents(context.Background(), path, types.EventFilter{})
			require.NoError(t, err)
			assert.Equal(t, 12, n)

			events, err := ReadEvents(path)
			require.NoError(t, err)
			require.Len(t, events, 12)
			assert.Equal(t, "e00", events[0].ID)
			require.NotNil(t, events[11].GoldAmount)
			assert.Equal(t, uint32(110), *events[11].GoldAmount)
			assert.True(t, events[0].CreatedAt.Equal(testNow))

			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, entries, 1, "no temp files left behind")
		})
	}
}

func TestExportEventsReplacesFile(t *testing.T) {
	b := setupBackend(t)
	path := filepath.Join(t.TempDir(), "events.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0o644))

	n, err := b.ExportEvents(context.Background(), path, types.EventFilter{PlayerID: "nobody"})
	require.NoError(t, err)
	assert.Zero(t, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestReadEventsSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	body := `{"id":"e1","player_id":"p1","event_type":"item_sold","created_at":"2026-03-01T12:00:00Z"}
not json

{"id":"e2","player_id":"p1","event_type":"item_bought","created_at":"2026-03-01T12:00:00Z"}
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	events, err := ReadEvents(path)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "item_bought", events[1].EventType)
}
