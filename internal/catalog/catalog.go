// Package catalog describes the training programs offered to users.
//
// The catalog is descriptive only: whether a program can be enrolled into is
// decided by the program registry. Check reports drift between the two.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/enroll/internal/program"
)

//go:embed catalog.yaml
var builtinYAML []byte

// ErrNotFound is returned by Get for an identifier not in the catalog.
var ErrNotFound = errors.New("program not in catalog")

// Entry describes one training program.
type Entry struct {
	ID          program.ID `yaml:"id" json:"id"`
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description" json:"description"`
	Labels      []string   `yaml:"labels" json:"labels"`
}

// HasLabel reports whether the entry carries label (case-insensitive).
func (e Entry) HasLabel(label string) bool {
	return slices.ContainsFunc(e.Labels, func(l string) bool {
		return strings.EqualFold(l, label)
	})
}

type document struct {
	Programs []Entry `yaml:"programs"`
}

// Catalog is an immutable set of entries ordered by ID.
type Catalog struct {
	entries []Entry
	byID    map[program.ID]int
}

// Builtin returns the catalog compiled into the binary.
func Builtin() (*Catalog, error) {
	return Parse(builtinYAML)
}

// Load reads catalog.yaml from fsys.
func Load(fsys fs.FS) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, "catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a catalog document. Entries need a unique, non-empty id and a title.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{byID: make(map[program.ID]int, len(doc.Programs))}
	for i, e := range doc.Programs {
		e.ID = program.ID(strings.TrimSpace(string(e.ID)))
		switch {
		case e.ID == "":
			return nil, fmt.Errorf("catalog entry %d: missing id", i)
		case strings.TrimSpace(e.Title) == "":
			return nil, fmt.Errorf("catalog entry %q: missing title", e.ID)
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("catalog entry %q: duplicate id", e.ID)
		}
		c.byID[e.ID] = -1
		c.entries = append(c.entries, e)
	}

	slices.SortFunc(c.entries, func(a, b Entry) int { return strings.Compare(string(a.ID), string(b.ID)) })
	for i, e := range c.entries {
		c.byID[e.ID] = i
	}
	return c, nil
}

// Get returns the entry for id.
func (c *Catalog) Get(id program.ID) (Entry, error) {
	i, ok := c.byID[id]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.entries[i], nil
}

// List returns all entries ordered by ID.
func (c *Catalog) List() []Entry {
	return slices.Clone(c.entries)
}

// Filter returns entries carrying label. An empty label returns everything.
func (c *Catalog) Filter(label string) []Entry {
	if label == "" {
		return c.List()
	}
	var out []Entry
	for _, e := range c.entries {
		if e.HasLabel(label) {
			out = append(out, e)
		}
	}
	return out
}

// Drift lists disagreements between the catalog and a set of registered programs.
type Drift struct {
	// Undocumented are registered programs with no catalog entry.
	Undocumented []program.ID
	// Unavailable are catalog entries with no registered handler.
	Unavailable []program.ID
}

// Empty reports whether catalog and registry agree.
func (d Drift) Empty() bool {
	return len(d.Undocumented) == 0 && len(d.Unavailable) == 0
}

// Check compares the catalog against registered program ids.
func (c *Catalog) Check(registered []program.ID) Drift {
	var d Drift
	seen := make(map[program.ID]bool, len(registered))
	for _, id := range registered {
		seen[id] = true
		if _, ok := c.byID[id]; !ok {
			d.Undocumented = append(d.Undocumented, id)
		}
	}
	for _, e := range c.entries {
		if !seen[e.ID] {
			d.Unavailable = append(d.Unavailable, e.ID)
		}
	}
	return d
}
