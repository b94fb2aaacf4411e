// Package fixture serves entry summaries from data bundled with the binary,
// for use without network access.
package fixture

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/fakhrymubarak/pdbe-client/internal/config"
	"github.com/fakhrymubarak/pdbe-client/internal/model"
)

//go:embed data/summary.json
var files embed.FS

var ErrUnknownEntry = errors.New("entry not in offline data")

var (
	loadOnce  sync.Once
	summaries model.SummaryResponse
	loadErr   error
)

func load() (model.SummaryResponse, error) {
	loadOnce.Do(func() {
		b, err := files.ReadFile("data/summary.json")
		if err != nil {
			loadErr = err
			return
		}
		loadErr = json.Unmarshal(b, &summaries)
	})
	return summaries, loadErr
}

// Entry returns the bundled summary of pdbID.
func Entry(pdbID string) (*model.EntrySummary, error) {
	data, err := load()
	if err != nil {
		return nil, fmt.Errorf("load offline data: %w", err)
	}
	id := strings.ToLower(strings.TrimSpace(pdbID))
	entries, ok := data[id]
	if !ok || len(entries) == 0 {
		config.GetLogger().Warnw("Key error", "pdb_id", pdbID)
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntry, pdbID)
	}
	e := entries[0]
	return &e, nil
}

// IDs lists the bundled entries.
func IDs() []string {
	data, err := load()
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(data))
	for id := range data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
