// Package entity defines the entity catalog and the name registry used to
// rebuild stored entities from a save file.
package entity

import (
	"fmt"
	"sort"
)

// Type identifies an entity definition in the catalog.
type Type string

const (
	// TypePlayer is never stored: save files may contain player rows written
	// by older builds and the loader recognizes and skips them.
	TypePlayer      Type = "player"
	TypeSaintShield Type = "saint_shield"
)

// Definition captures the static parameters of an entity type.
type Definition struct {
	ID        Type
	Name      string
	MaxHealth int
	Speed     float64
	Hostile   bool
}

var catalog = buildCatalog()

func buildCatalog() map[Type]Definition {
	defs := []Definition{
		{
			ID:        TypeSaintShield,
			Name:      "Saint Shield",
			MaxHealth: 40,
			Speed:     0.8,
			Hostile:   true,
		},
	}

	byType := make(map[Type]Definition, len(defs))
	for _, def := range defs {
		if def.ID == "" {
			panic("entity: definition missing id")
		}
		if _, exists := byType[def.ID]; exists {
			panic(fmt.Sprintf("entity: duplicate definition %q", def.ID))
		}
		byType[def.ID] = def
	}
	return byType
}

// Entity is a live instance of a catalog entry.
type Entity struct {
	def    Definition
	Health int
}

// Definition returns the static parameters of the entity.
func (e *Entity) Definition() Definition { return e.def }

// Type returns the catalog identifier of the entity.
func (e *Entity) Type() Type { return e.def.ID }

// String renders the persisted name of the entity.
func (e *Entity) String() string { return string(e.def.ID) }

// New constructs a default instance of the given type.
func New(t Type) (*Entity, error) {
	def, ok := catalog[t]
	if !ok {
		return nil, fmt.Errorf("entity: unknown type %q", t)
	}
	return &Entity{def: def, Health: def.MaxHealth}, nil
}

// FromName resolves a persisted name back into a default instance.
func FromName(name string) (*Entity, error) {
	return New(Type(name))
}

// Types returns every registered type in stable sorted order.
func Types() []Type {
	out := make([]Type, 0, len(catalog))
	for t := range catalog {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
