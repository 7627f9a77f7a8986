package service

import (
	"fmt"

	"github.com/equinor/fmu-settings-api/internal/resources"
	"github.com/equinor/fmu-settings-api/pkg/document"
	"github.com/equinor/fmu-settings-api/pkg/errors"
)

// mappingsKind is the resource kind holding masterdata mappings.
const mappingsKind = "mappings"

// MappingGroup bundles the stratigraphy mappings that share a target
// identifier and a source/target system pair.
type MappingGroup struct {
	TargetID     string          `json:"target_id"`
	TargetSystem string          `json:"target_system"`
	SourceSystem string          `json:"source_system"`
	Mappings     []document.Item `json:"mappings"`
}

// MappingsService handles masterdata mapping queries.
type MappingsService struct {
	store *resources.Store
}

// NewMappingsService creates a mappings service over a project store.
func NewMappingsService(store *resources.Store) *MappingsService {
	return &MappingsService{store: store}
}

// ListStratigraphyMappings returns all stratigraphy mappings in the
// project, in stored order.
func (s *MappingsService) ListStratigraphyMappings() ([]document.Item, error) {
	doc, err := s.store.Load(mappingsKind)
	if err != nil {
		return nil, err
	}

	items, ok := document.Items(doc["stratigraphy"])
	if !ok {
		return nil, errors.NewValidationError("stratigraphy", doc["stratigraphy"],
			"stratigraphy mappings are not a list of records")
	}
	return items, nil
}

// UpdateStratigraphyMappings replaces the project's stratigraphy
// mappings with the given ones and returns the stored list. Other
// fields of the mappings resource are preserved.
func (s *MappingsService) UpdateStratigraphyMappings(mappings []document.Item) ([]document.Item, error) {
	doc, err := s.store.Load(mappingsKind)
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, err
		}
		doc = document.Document{}
	}

	if mappings == nil {
		mappings = []document.Item{}
	}
	items := make([]any, 0, len(mappings))
	for _, mapping := range mappings {
		items = append(items, mapping)
	}
	doc["stratigraphy"] = items

	if err := s.store.Save(mappingsKind, doc); err != nil {
		return nil, err
	}
	return mappings, nil
}

// GroupStratigraphyMappings groups stratigraphy mappings by target
// identifier, target system, and source system, preserving the order in
// which groups first appear.
func (s *MappingsService) GroupStratigraphyMappings() ([]MappingGroup, error) {
	mappings, err := s.ListStratigraphyMappings()
	if err != nil {
		return nil, err
	}

	groups := []MappingGroup{}
	index := map[string]int{}
	for _, mapping := range mappings {
		targetID := attr(mapping, "target_id")
		targetSystem := attr(mapping, "target_system")
		sourceSystem := attr(mapping, "source_system")

		key := targetID + "\x00" + targetSystem + "\x00" + sourceSystem
		i, seen := index[key]
		if !seen {
			i = len(groups)
			index[key] = i
			groups = append(groups, MappingGroup{
				TargetID:     targetID,
				TargetSystem: targetSystem,
				SourceSystem: sourceSystem,
				Mappings:     []document.Item{},
			})
		}
		groups[i].Mappings = append(groups[i].Mappings, mapping)
	}

	return groups, nil
}

// attr reads a mapping attribute as a string.
func attr(item document.Item, name string) string {
	value, ok := item[name]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
