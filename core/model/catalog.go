package model

import "fmt"

// ItemID identifies one food item. The same ID names its image and its
// identifying cue, which is what makes a pairing correct.
type ItemID int

// Item is a catalog entry.
type Item struct {
	ID   ItemID
	Name string
}

// ImageKey is the asset key of the item's picture.
func (it Item) ImageKey() string { return fmt.Sprintf("food_%d", it.ID) }

// AudioKey is the asset key of the item's identifying cue.
func (it Item) AudioKey() string { return fmt.Sprintf("audio_%d", it.ID) }

// Catalog is the ordered set of items a round may draw from.
type Catalog []Item

// DefaultCatalog holds the ten foods shipped with the game.
func DefaultCatalog() Catalog {
	names := []string{
		"rice", "noodles", "dumplings", "egg", "apple",
		"banana", "carrot", "fish", "milk", "bread",
	}
	c := make(Catalog, len(names))
	for i, n := range names {
		c[i] = Item{ID: ItemID(i + 1), Name: n}
	}
	return c
}

// Lookup returns the item with the given ID.
func (c Catalog) Lookup(id ItemID) (Item, bool) {
	for _, it := range c {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
