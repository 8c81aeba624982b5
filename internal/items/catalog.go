// Package items defines the item catalog and the name registry used to
// rebuild hotbar and stored-item contents from a save file.
package items

import (
	"fmt"
	"sort"
)

// Type identifies an item definition in the catalog. The persisted form of an
// item is its Type string.
type Type string

const (
	TypeJesterSword      Type = "jester_sword"
	TypeRickBoombox      Type = "rick_boombox"
	TypeRepeaterCrossbow Type = "repeater_crossbow"
	TypeHealthPotion     Type = "health_potion"
)

// Class groups items by how the combat layer uses them.
type Class string

const (
	ClassMeleeWeapon  Class = "melee_weapon"
	ClassRangedWeapon Class = "ranged_weapon"
	ClassMagic        Class = "magic"
	ClassConsumable   Class = "consumable"
)

// Definition captures the static parameters of an item type.
type Definition struct {
	ID          Type
	Class       Class
	Name        string
	Description string
	Damage      int
	CooldownAct int
}

var catalog = buildCatalog()

func buildCatalog() map[Type]Definition {
	defs := []Definition{
		mustDefine(Definition{
			ID:          TypeJesterSword,
			Class:       ClassMeleeWeapon,
			Name:        "Jester Sword",
			Description: "A juggling blade that arcs between nearby targets.",
			Damage:      6,
			CooldownAct: 25,
		}),
		mustDefine(Definition{
			ID:          TypeRickBoombox,
			Class:       ClassMagic,
			Name:        "Rick's Boombox",
			Description: "Blasts a damaging chorus around the wielder.",
			Damage:      4,
			CooldownAct: 90,
		}),
		mustDefine(Definition{
			ID:          TypeRepeaterCrossbow,
			Class:       ClassRangedWeapon,
			Name:        "Repeater Crossbow",
			Description: "Fires a burst of bolts along the aim line.",
			Damage:      3,
			CooldownAct: 40,
		}),
		mustDefine(Definition{
			ID:          TypeHealthPotion,
			Class:       ClassConsumable,
			Name:        "Health Potion",
			Description: "Restores a chunk of health when consumed.",
		}),
	}

	byType := make(map[Type]Definition, len(defs))
	for _, def := range defs {
		if _, exists := byType[def.ID]; exists {
			panic(fmt.Sprintf("items: duplicate definition %q", def.ID))
		}
		byType[def.ID] = def
	}
	return byType
}

func mustDefine(def Definition) Definition {
	if def.ID == "" {
		panic("items: definition missing id")
	}
	if def.Class == "" {
		panic(fmt.Sprintf("items: definition %q missing class", def.ID))
	}
	if def.Name == "" {
		panic(fmt.Sprintf("items: definition %q missing name", def.ID))
	}
	return def
}

// Item is a live instance of a catalog entry.
type Item struct {
	def Definition
}

// Definition returns the static parameters of the item.
func (i *Item) Definition() Definition { return i.def }

// Type returns the catalog identifier of the item.
func (i *Item) Type() Type { return i.def.ID }

// String renders the persisted name of the item.
func (i *Item) String() string { return string(i.def.ID) }

// New constructs a default instance of the given type.
func New(t Type) (*Item, error) {
	def, ok := catalog[t]
	if !ok {
		return nil, fmt.Errorf("items: unknown type %q", t)
	}
	return &Item{def: def}, nil
}

// FromName resolves a persisted name back into a default instance. It is the
// registry hook the save loader uses for hotbar and stored-item records.
func FromName(name string) (*Item, error) {
	return New(Type(name))
}

// Lookup returns the definition registered for the given type.
func Lookup(t Type) (Definition, bool) {
	def, ok := catalog[t]
	return def, ok
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
