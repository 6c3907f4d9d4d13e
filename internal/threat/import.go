package threat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

const DefaultImportBatch = 500

// Inserter is the write side of the threat store
type Inserter interface {
	CreateMany(ctx context.Context, threats []Threat) error
}

// Import streams a JSON array of threats from r into store in batches and
// returns the number of records written. Records already written stay
// written if a later batch fails.
func Import(ctx context.Context, store Inserter, r io.Reader, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = DefaultImportBatch
	}

	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return 0, fmt.Errorf("failed to read import: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return 0, fmt.Errorf("import must be a JSON array of threats")
	}

	imported := 0
	batch := make([]Threat, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := store.CreateMany(ctx, batch); err != nil {
			return err
		}
		imported += len(batch)
		batch = batch[:0]
		return nil
	}

	for dec.More() {
		var t Threat
		if err := dec.Decode(&t); err != nil {
			return imported, fmt.Errorf("failed to decode threat %d: %w", imported+len(batch)+1, err)
		}
		if t.ThreatCategory == "" {
			return imported, fmt.Errorf("threat %d has no Threat_Category", imported+len(batch)+1)
		}
		t.ID = 0
		batch = append(batch, t)

		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return imported, err
			}
		}
	}

	if _, err := dec.Token(); err != nil {
		return imported, fmt.Errorf("failed to read import: %w", err)
	}
	if err := flush(); err != nil {
		return imported, err
	}
	return imported, nil
}
