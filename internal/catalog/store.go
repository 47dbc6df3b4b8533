package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Store holds the canonical item instances in insertion order and owns
// the identifier space. It is not safe for concurrent use; the whole
// application runs as a single actor between load and save.
type Store struct {
	items  []*Item
	nextID int
}

func NewStore() *Store {
	return &Store{nextID: 1}
}

// Add inserts a new item or, when an item with the same name
// (case-insensitive) and exactly the same price already exists, adds the
// given stock to it instead of creating a duplicate. The merged or newly
// stored item is returned.
func (s *Store) Add(it Item) (*Item, error) {
	it.Name = strings.TrimSpace(it.Name)

	if existing := s.merge(it.Name, it.Price); existing != nil {
		if it.Stock < 0 {
			return nil, &ValidationError{Field: "stock", Reason: "must not be negative"}
		}
		existing.Stock += it.Stock
		return existing, nil
	}

	if err := it.validate(); err != nil {
		return nil, err
	}

	it.ID = s.nextID
	s.nextID++

	stored := &it
	s.items = append(s.items, stored)
	return stored, nil
}

func (s *Store) merge(name string, price decimal.Decimal) *Item {
	for _, it := range s.items {
		if strings.EqualFold(it.Name, name) && it.Price.Equal(price) {
			return it
		}
	}
	return nil
}

func (s *Store) FindByID(id int) (*Item, bool) {
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return nil, false
}

// FindByName returns the first item whose name matches case-insensitively.
// Names are not unique across different prices, so first match wins.
func (s *Store) FindByName(name string) (*Item, bool) {
	name = strings.TrimSpace(name)
	for _, it := range s.items {
		if strings.EqualFold(it.Name, name) {
			return it, true
		}
	}
	return nil, false
}

// Patch carries the optional fields of an update; nil means keep.
type Patch struct {
	Name  *string
	Price *decimal.Decimal
	Stock *int
}

// Update applies the non-nil fields of the patch to the item with the
// given ID. Every provided field is validated before any of them is
// applied, so an invalid patch leaves the item untouched. The bool
// reports whether the item was found.
func (s *Store) Update(id int, p Patch) (bool, error) {
	it, ok := s.FindByID(id)
	if !ok {
		return false, nil
	}

	var name string
	if p.Name != nil {
		name = strings.TrimSpace(*p.Name)
		if name == "" {
			return true, &ValidationError{Field: "name", Reason: "must not be empty"}
		}
		if containsSep(name) {
			return true, &ValidationError{Field: "name", Reason: "must not contain ';'"}
		}
	}
	if p.Price != nil && p.Price.IsNegative() {
		return true, &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if p.Stock != nil && *p.Stock < 0 {
		return true, &ValidationError{Field: "stock", Reason: "must not be negative"}
	}

	if p.Name != nil {
		it.Name = name
	}
	if p.Price != nil {
		it.Price = *p.Price
	}
	if p.Stock != nil {
		it.Stock = *p.Stock
	}
	return true, nil
}

// Delete removes the item with the given ID and reports whether it
// existed. Its identifier is never reused.
func (s *Store) Delete(id int) bool {
	for i, it := range s.items {
		if it.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// List returns a snapshot of the item sequence in insertion order. The
// items themselves are shared, not copied.
func (s *Store) List() []*Item {
	out := make([]*Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) IsEmpty() bool {
	return len(s.items) == 0
}

// Restore replaces the store content wholesale and adopts the given
// identifier counter. Used by the persistence gateway after a fully
// successful load.
func (s *Store) Restore(items []*Item, nextID int) {
	s.items = items
	s.nextID = nextID
}

// SetNextID adopts an identifier counter, typically max(id)+1 after a load.
func (s *Store) SetNextID(n int) {
	s.nextID = n
}
