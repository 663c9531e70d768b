// Package timezones holds the curated list of zones a ward may run in and
// resolves them to *time.Location.
package timezones

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

//go:embed timezonedata/timezones.json
var FS embed.FS

type Zone struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Region string `json:"region,omitempty"`
}

// Default is the zone wards use when none is configured.
const Default = "Asia/Bangkok"

var (
	loadOnce sync.Once
	zones    []Zone
	byID     map[string]Zone
	loadErr  error
)

func load() {
	loadOnce.Do(func() {
		data, err := FS.ReadFile("timezonedata/timezones.json")
		if err != nil {
			loadErr = err
			return
		}

		var list []Zone
		if err := json.Unmarshal(data, &list); err != nil {
			loadErr = err
			return
		}

		zones = list
		byID = make(map[string]Zone, len(list))
		for _, z := range list {
			byID[z.ID] = z
		}
	})
}

// Load is optional: call it at startup to fail fast on a broken embed.
func Load() error {
	load()
	return loadErr
}

// All returns the curated list of zones in file order.
func All() ([]Zone, error) {
	load()
	if loadErr != nil {
		return nil, loadErr
	}
	return zones, nil
}

// Label returns the human-friendly label for an ID, or the ID itself if not found.
func Label(id string) string {
	load()
	if loadErr != nil {
		return id
	}
	if z, ok := byID[id]; ok && z.Label != "" {
		return z.Label
	}
	return id
}

// Valid reports whether the given ID exists in the curated list.
func Valid(id string) bool {
	load()
	if loadErr != nil {
		return false
	}
	_, ok := byID[id]
	return ok
}

// Location resolves a curated zone ID. An empty id means Default.
func Location(id string) (*time.Location, error) {
	if id == "" {
		id = Default
	}
	if !Valid(id) {
		return nil, fmt.Errorf("timezone %q is not supported", id)
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", id, err)
	}
	return loc, nil
}
