// Package schema loads resource schemas: the declared field order used
// for deterministic diff traversal and the per-list identity metadata
// used to match items between revisions. Schemas are YAML files, either
// embedded defaults or overrides loaded from disk.
package schema

import (
	"io/fs"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/equinor/fmu-settings-api/pkg/errors"
	"github.com/equinor/fmu-settings-api/pkg/identity"
)

// Identity tags for list fields in schema files.
const (
	// IdentityField keys list items by a named attribute.
	IdentityField = "field"
	// IdentityItem keys list items by their whole canonical form.
	IdentityItem = "item"
)

// ListSpec declares how items of a list field are matched.
type ListSpec struct {
	Identity  string `yaml:"identity"`            // "field" or "item"
	Attribute string `yaml:"attribute,omitempty"` // keying attribute for "field"
}

// Field declares one field of a resource schema, in declaration order.
type Field struct {
	Path string    `yaml:"path"`
	List *ListSpec `yaml:"list,omitempty"`
}

// Schema describes one resource kind: its backing file, its fields in
// declaration order, and the identity strategy of its list fields.
type Schema struct {
	Kind   string  `yaml:"kind"`
	File   string  `yaml:"file"`
	Fields []Field `yaml:"fields"`

	// order maps a declared field path to its declaration index.
	order map[string]int
}

// Registry holds the loaded schemas, addressed by resource kind.
type Registry struct {
	schemas map[string]*Schema
}

// New loads the embedded default schemas.
func New() (*Registry, error) {
	return NewFromFS(FS, "schemas")
}

// NewFromFS loads every *.yaml schema under dir in the given filesystem.
func NewFromFS(fsys fs.FS, dir string) (*Registry, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.WrapIO("read", dir, err)
	}

	registry := &Registry{schemas: make(map[string]*Schema)}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		name := dir + "/" + entry.Name()
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, errors.WrapIO("read", name, err)
		}

		var schema Schema
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, errors.WrapParse("yaml", name, err)
		}
		if err := schema.init(); err != nil {
			return nil, err
		}
		registry.schemas[schema.Kind] = &schema
	}

	return registry, nil
}

// Schema returns the schema for a resource kind.
func (r *Registry) Schema(kind string) (*Schema, bool) {
	schema, ok := r.schemas[kind]
	return schema, ok
}

// Kinds returns the known resource kinds in sorted order.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.schemas))
	for kind := range r.schemas {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// init validates the schema and indexes its declaration order.
func (s *Schema) init() error {
	if s.Kind == "" {
		return errors.NewConfigError("schema", "schema is missing its resource kind", nil)
	}
	s.order = make(map[string]int, len(s.Fields))
	for i, field := range s.Fields {
		if field.Path == "" {
			return errors.NewConfigError("schema", "schema "+s.Kind+" declares a field without a path", nil)
		}
		if field.List != nil {
			switch field.List.Identity {
			case IdentityField:
				if field.List.Attribute == "" {
					return errors.NewConfigError("schema",
						"list field "+field.Path+" keys by attribute but names none", nil)
				}
			case IdentityItem:
			default:
				return errors.NewConfigError("schema",
					"list field "+field.Path+" has unknown identity tag "+field.List.Identity, nil)
			}
		}
		s.order[field.Path] = i
	}
	return nil
}

// Identities returns the identity registry embedded in the schema: every
// declared list field mapped to its identity spec. This is the
// schema-backed counterpart of an externally maintained identity.Table;
// both satisfy identity.Registry.
func (s *Schema) Identities() identity.Registry {
	table := identity.Table{}
	for _, field := range s.Fields {
		if field.List == nil {
			continue
		}
		switch field.List.Identity {
		case IdentityField:
			table[field.Path] = identity.NamedField(field.List.Attribute)
		case IdentityItem:
			table[field.Path] = identity.WholeItem()
		}
	}
	return table
}

// Sort orders sibling field names under a prefix by their declaration
// position. Undeclared names keep their incoming (sorted) order after
// the declared ones. Sort implements the diff walker's Order.
func (s *Schema) Sort(prefix string, names []string) []string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, iDeclared := s.order[join(prefix, sorted[i])]
		pj, jDeclared := s.order[join(prefix, sorted[j])]
		if iDeclared && jDeclared {
			return pi < pj
		}
		// Declared fields come before undeclared ones.
		return iDeclared && !jDeclared
	})
	return sorted
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
