package library

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// UnknownLabel marks a file whose category could not be resolved.
// Files resolving to it are excluded from the library.
const UnknownLabel = "unknown"

// LabelResolver maps a file to its category label. Implementations
// return ok=false when they cannot resolve the file; the chain then
// moves on to the next resolver.
type LabelResolver interface {
	Resolve(path string) (label string, ok bool)
}

// ResolverChain tries each resolver in order and returns the first
// successful label. Priority is fixed: configuration table first,
// filename convention as fallback, explicit overrides last.
type ResolverChain struct {
	resolvers []LabelResolver
}

// NewResolverChain builds a chain from the given resolvers, in priority order
func NewResolverChain(resolvers ...LabelResolver) *ResolverChain {
	return &ResolverChain{resolvers: resolvers}
}

// Resolve walks the chain. Returns (UnknownLabel, false) when no
// resolver produces a label.
func (c *ResolverChain) Resolve(path string) (string, bool) {
	for _, r := range c.resolvers {
		if label, ok := r.Resolve(path); ok && label != "" {
			return label, true
		}
	}
	return UnknownLabel, false
}

// TableResolver resolves labels through a configuration table keyed by
// sample identifier (base filename without extension).
type TableResolver struct {
	table map[string]string
}

// NewTableResolver creates a resolver over the given identifier→label table
func NewTableResolver(table map[string]string) *TableResolver {
	return &TableResolver{table: table}
}

// LoadTableResolver reads an identifier→label table from a YAML file
func LoadTableResolver(path string) (*TableResolver, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read label table failed")
	}

	table := make(map[string]string)
	if err := yaml.Unmarshal(raw, &table); err != nil {
		return nil, errors.Wrap(err, "parse label table failed")
	}

	return &TableResolver{table: table}, nil
}

// Resolve looks the file's identifier up in the table
func (t *TableResolver) Resolve(path string) (string, bool) {
	if len(t.table) == 0 {
		return "", false
	}
	label, ok := t.table[sampleIdentifier(path)]
	return label, ok && label != ""
}

// FilenameResolver derives the label from the filename convention:
// everything before the first "_" of the base name, extension stripped,
// "-" normalized to "_". "happy_1.wav" and "happy_2.wav" both resolve
// to "happy".
type FilenameResolver struct{}

// NewFilenameResolver creates a filename-convention resolver
func NewFilenameResolver() *FilenameResolver {
	return &FilenameResolver{}
}

// Resolve parses the category from the file's base name
func (f *FilenameResolver) Resolve(path string) (string, bool) {
	basename := filepath.Base(path)

	var label string
	if idx := strings.Index(basename, "_"); idx >= 0 {
		label = basename[:idx]
	} else {
		label = strings.TrimSuffix(basename, filepath.Ext(basename))
	}

	label = strings.ReplaceAll(label, "-", "_")
	if label == "" {
		return "", false
	}
	return label, true
}

// OverrideResolver resolves labels from an explicit per-file map,
// keyed by sample identifier.
type OverrideResolver struct {
	overrides map[string]string
}

// NewOverrideResolver creates a resolver over explicit overrides
func NewOverrideResolver(overrides map[string]string) *OverrideResolver {
	return &OverrideResolver{overrides: overrides}
}

// Resolve looks the file's identifier up in the override map
func (o *OverrideResolver) Resolve(path string) (string, bool) {
	if len(o.overrides) == 0 {
		return "", false
	}
	label, ok := o.overrides[sampleIdentifier(path)]
	return label, ok && label != ""
}

// sampleIdentifier is the base filename without its extension
func sampleIdentifier(path string) string {
	basename := filepath.Base(path)
	return strings.TrimSuffix(basename, filepath.Ext(basename))
}

// DefaultResolver is the standard chain: table (when present), then
// filename convention, then overrides.
func DefaultResolver(table, overrides map[string]string) *ResolverChain {
	return NewResolverChain(
		NewTableResolver(table),
		NewFilenameResolver(),
		NewOverrideResolver(overrides),
	)
}
