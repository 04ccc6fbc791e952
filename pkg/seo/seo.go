// Package seo holds the per-page title and meta descriptor that the shell
// forwards to a display. Generating tag markup is the display's concern.
package seo

import (
	"context"
	"maps"
	"sort"
)

// Well-known keys.
const (
	Title       = "title"
	Description = "description"
	Keywords    = "keywords"
)

// Meta is an inert key/value record describing a page.
type Meta map[string]string

// Provider is implemented by page components that carry their own SEO record.
type Provider interface {
	SEO() Meta
}

// Updater receives the merged record on every navigation.
type Updater interface {
	UpdateMeta(ctx context.Context, m Meta) error
}

// UpdaterFunc adapts a function to Updater.
type UpdaterFunc func(ctx context.Context, m Meta) error

// UpdateMeta implements Updater.
func (f UpdaterFunc) UpdateMeta(ctx context.Context, m Meta) error {
	return f(ctx, m)
}

// Merge returns a new record with page values layered over defaults.
// Empty page values do not clear a default.
func Merge(defaults, page Meta) Meta {
	out := make(Meta, len(defaults)+len(page))
	maps.Copy(out, defaults)
	for k, v := range page {
		if v == "" {
			continue
		}
		out[k] = v
	}
	return out
}

// Of returns the SEO record of v if it implements Provider.
func Of(v any) Meta {
	if p, ok := v.(Provider); ok {
		return p.SEO()
	}
	return nil
}

// Keys returns the record's keys in sorted order.
func (m Meta) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a copy of m.
func (m Meta) Clone() Meta {
	if m == nil {
		return nil
	}
	return maps.Clone(m)
}
