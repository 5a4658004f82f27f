package sqlite

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/mesh-intelligence/lurelands/pkg/types"
)

// ZstdSuffix marks compressed exports.
const ZstdSuffix = ".zst"

// ExportEvents writes the audit events matching filter to path as JSONL,
// one event per line. When path ends in ZstdSuffix the stream is zstd
// compressed. The file is replaced atomically. It returns the number of
// events written.
func (b *Backend) ExportEvents(ctx context.Context, path string, filter types.EventFilter) (int, error) {
	var events []*types.GameEvent
	err := b.View(ctx, func(tx types.Tx) error {
		var err error
		events, err = tx.ListEvents(filter)
		return err
	})
	if err != nil {
		return 0, err
	}

	records := make([]json.RawMessage, 0, len(events))
	for _, e := range events {
		rec, err := json.Marshal(e)
		if err != nil {
			return 0, fmt.Errorf("encoding event %s: %w", e.ID, err)
		}
		records = append(records, rec)
	}
	if err := writeJSONL(path, records, strings.HasSuffix(path, ZstdSuffix)); err != nil {
		return 0, err
	}
	return len(records), nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage, compress bool) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".export-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	var (
		sink io.Writer = tmp
		enc  *zstd.Encoder
	)
	if compress {
		enc, err = zstd.NewWriter(tmp, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			return fail(fmt.Errorf("creating zstd encoder: %w", err))
		}
		sink = enc
	}

	w := bufio.NewWriter(sink)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail(fmt.Errorf("writing record: %w", err))
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail(fmt.Errorf("writing newline: %w", err))
		}
	}
	if err := w.Flush(); err != nil {
		return fail(fmt.Errorf("flushing buffer: %w", err))
	}
	if enc != nil {
		if err := enc.Close(); err != nil {
			return fail(fmt.Errorf("closing zstd encoder: %w", err))
		}
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("syncing temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// ReadEvents reads a JSONL export written by ExportEvents, decompressing
// when path ends in ZstdSuffix. Malformed lines are skipped.
func ReadEvents(path string) ([]*types.GameEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var src io.Reader = f
	if strings.HasSuffix(path, ZstdSuffix) {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}
		defer dec.Close()
		src = dec
	}

	var events []*types.GameEvent
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e types.GameEvent
		if err := json.Unmarshal(line, &e); err != nil {
			continue
		}
		events = append(events, &e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return events, nil
}
