// Package prompt resolves logical template names against an ordered list of
// template tiers and renders the winning definition with access to the
// episode memory log.
//
// A tier is one directory under the template root holding
// <logical-name>.tmpl files. Tiers are consulted most-specific first; the
// last tier in the configured list is conventionally "default", but the
// resolver does not special-case it.
package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/epirun/epirun/internal/memory"
)

// Ext is the file extension for template definitions within a tier.
const Ext = ".tmpl"

// ErrTemplateNotFound indicates that no configured tier defines a requested
// logical name. This is a configuration error, fatal to the run.
var ErrTemplateNotFound = errors.New("template not found")

// Resolver resolves and renders templates. Rendering exposes the memory
// store to template bodies via the retrieve/latest/keys functions.
type Resolver struct {
	root  string
	tiers []string
	store *memory.Store
}

// NewResolver creates a Resolver over root with the given ordered tier list.
// Every tier directory must exist; a missing tier is a configuration error
// reported up front rather than silently skipped during resolution.
func NewResolver(root string, tiers []string, store *memory.Store) (*Resolver, error) {
	if len(tiers) == 0 {
		return nil, errors.New("at least one template tier is required")
	}
	if store == nil {
		return nil, errors.New("memory store is required")
	}
	for _, tier := range tiers {
		dir := filepath.Join(root, tier)
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("template tier %q: %w", tier, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("template tier %q is not a directory", tier)
		}
	}
	return &Resolver{root: root, tiers: tiers, store: store}, nil
}

// Tiers returns the configured tier list in priority order.
func (r *Resolver) Tiers() []string {
	tiers := make([]string, len(r.tiers))
	copy(tiers, r.tiers)
	return tiers
}

// Resolve returns the content of name from the first tier that defines it.
// Resolution is deterministic for a fixed tier list and fixed directory
// contents. Returns ErrTemplateNotFound when no tier defines name.
func (r *Resolver) Resolve(name string) (string, error) {
	_, content, err := r.resolve(name)
	return content, err
}

// ResolveTier returns the tier that defines name, without reading past the
// first hit.
func (r *Resolver) ResolveTier(name string) (string, error) {
	tier, _, err := r.resolve(name)
	return tier, err
}

func (r *Resolver) resolve(name string) (tier, content string, err error) {
	for _, tier := range r.tiers {
		path := filepath.Join(r.root, tier, name+Ext)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", "", fmt.Errorf("failed to read template %s: %w", path, err)
		}
		return tier, string(data), nil
	}
	return "", "", fmt.Errorf("%w: %q (tiers: %s)", ErrTemplateNotFound, name, strings.Join(r.tiers, ", "))
}

// Names returns every logical name defined in any tier, sorted. Useful for
// diagnostics; resolution itself never enumerates.
func (r *Resolver) Names() ([]string, error) {
	seen := map[string]bool{}
	for _, tier := range r.tiers {
		entries, err := os.ReadDir(filepath.Join(r.root, tier))
		if err != nil {
			return nil, fmt.Errorf("failed to read template tier %q: %w", tier, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), Ext) {
				continue
			}
			seen[strings.TrimSuffix(entry.Name(), Ext)] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// funcMap exposes the memory store to template bodies. Keys are referenced
// by their template-facing names; an unknown name fails the render.
func (r *Resolver) funcMap() template.FuncMap {
	return template.FuncMap{
		"retrieve": func(name string) ([]string, error) {
			key, err := memory.ParseKey(name)
			if err != nil {
				return nil, err
			}
			return r.store.Retrieve(key), nil
		},
		"latest": func(name string) (string, error) {
			key, err := memory.ParseKey(name)
			if err != nil {
				return "", err
			}
			value, _ := r.store.Latest(key)
			return value, nil
		},
		"keys": memory.KeyNames,
	}
}

// Render resolves name and executes it as a text/template against data,
// with the memory functions installed. A missing template surfaces as
// ErrTemplateNotFound; parse and execution failures wrap the underlying
// template error.
func (r *Resolver) Render(name string, data any) (string, error) {
	content, err := r.Resolve(name)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(name).Funcs(r.funcMap()).Parse(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", name, err)
	}
	return buf.String(), nil
}
