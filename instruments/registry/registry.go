// Package registry resolves instrument drivers by vendor and model, or by
// free-text search, so host applications can build a bench from a config
// file instead of hard-wiring driver constructors.
package registry

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/gomeasure/gomeasure/instruments"
	"github.com/gomeasure/gomeasure/instruments/agilent"
	"github.com/gomeasure/gomeasure/instruments/ami"
	"github.com/gomeasure/gomeasure/instruments/ar"
	"github.com/gomeasure/gomeasure/instruments/etslindgren"
	"github.com/gomeasure/gomeasure/instruments/racal"
	"github.com/gomeasure/gomeasure/internal/errors"
)

// Entry describes one registered driver.
type Entry struct {
	Vendor      string
	Model       string
	Description string
	New         func(adapter instruments.Adapter) instruments.Driver
}

// ID returns the vendor/model key an entry is looked up by.
func (e Entry) ID() string {
	return strings.ToLower(e.Vendor) + "/" + strings.ToLower(e.Model)
}

// Registry holds a set of driver entries.
type Registry struct {
	entries []Entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// Register adds an entry.
func (r *Registry) Register(e Entry) {
	r.entries = append(r.entries, e)
}

// Entries returns all registered entries.
func (r *Registry) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Lookup resolves a driver by its vendor/model key, case-insensitively.
func (r *Registry) Lookup(id string) (Entry, error) {
	key := strings.ToLower(id)
	for _, e := range r.entries {
		if e.ID() == key {
			return e, nil
		}
	}
	return Entry{}, errors.DriverNotFoundError(id)
}

// Search returns entries matching a free-text query, fuzzy-matched against
// vendor, model and description, best match first.
func (r *Registry) Search(query string) []Entry {
	haystack := make([]string, len(r.entries))
	for i, e := range r.entries {
		haystack[i] = fmt.Sprintf("%s %s %s", e.Vendor, e.Model, e.Description)
	}
	matches := fuzzy.Find(query, haystack)

	results := make([]Entry, 0, len(matches))
	for _, m := range matches {
		results = append(results, r.entries[m.Index])
	}
	return results
}

// Default returns a registry with every driver in this module registered.
func Default() *Registry {
	r := New()
	r.Register(Entry{
		Vendor:      "ar",
		Model:       "fp4036",
		Description: "Amplifier Research FP4036 isotropic field probe",
		New: func(a instruments.Adapter) instruments.Driver {
			return ar.NewFP4036(a)
		},
	})
	r.Register(Entry{
		Vendor:      "racal",
		Model:       "1992",
		Description: "Racal-Dana 1992 universal counter",
		New: func(a instruments.Adapter) instruments.Driver {
			return racal.NewRacal1992(a)
		},
	})
	r.Register(Entry{
		Vendor:      "etslindgren",
		Model:       "emcenter",
		Description: "ETS-Lindgren EMCenter modular mainframe",
		New: func(a instruments.Adapter) instruments.Driver {
			return etslindgren.NewEMCenter(a)
		},
	})
	r.Register(Entry{
		Vendor:      "etslindgren",
		Model:       "m7006",
		Description: "ETS-Lindgren M7006 positioner card",
		New: func(a instruments.Adapter) instruments.Driver {
			return etslindgren.NewM7006(a, 1, "A")
		},
	})
	r.Register(Entry{
		Vendor:      "ami",
		Model:       "430",
		Description: "AMI 430 superconducting magnet power supply",
		New: func(a instruments.Adapter) instruments.Driver {
			return ami.NewAMI430(a)
		},
	})
	r.Register(Entry{
		Vendor:      "agilent",
		Model:       "e4407b",
		Description: "Agilent E4407B spectrum analyzer",
		New: func(a instruments.Adapter) instruments.Driver {
			return agilent.NewE4407B(a)
		},
	})
	return r
}
