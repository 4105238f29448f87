package domain

import (
	"sort"
	"time"
)

// RucksackScope determines where a rucksack item is persisted and how it
// shadows in the merged view.
type RucksackScope string

// Available scopes.
const (
	// ScopeProject stores items next to the tracked directory. Project
	// items shadow user items of the same kind and name.
	ScopeProject RucksackScope = "project"

	// ScopeUser stores items globally for the user.
	ScopeUser RucksackScope = "user"
)

// IsValid returns true if the scope is recognised.
func (s RucksackScope) IsValid() bool {
	return s == ScopeProject || s == ScopeUser
}

// String returns the string representation.
func (s RucksackScope) String() string {
	return string(s)
}

// FragmentKind identifies the type of a reusable document fragment.
type FragmentKind string

// Available fragment kinds.
const (
	// KindTextStyle is a saved text style.
	KindTextStyle FragmentKind = "text-style"

	// KindLayer is a saved layer (or mask) subtree.
	KindLayer FragmentKind = "layer"

	// KindVectorObject is a saved vector shape selection.
	KindVectorObject FragmentKind = "vector-object"

	// KindLayerEffect is a saved layer effect/style.
	KindLayerEffect FragmentKind = "layer-effect"
)

// IsValid returns true if the fragment kind is recognised.
func (k FragmentKind) IsValid() bool {
	switch k {
	case KindTextStyle, KindLayer, KindVectorObject, KindLayerEffect:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k FragmentKind) String() string {
	return string(k)
}

// RucksackItem is a named, typed fragment with an opaque payload only the
// host understands. Identity is (kind, name) within a scope; storing a
// duplicate name overwrites within the same scope but never across scopes.
type RucksackItem struct {
	// Scope the item is stored in.
	Scope RucksackScope

	// Kind of fragment.
	Kind FragmentKind

	// Name is the user-chosen identifier within (scope, kind).
	Name string

	// Payload is the serialised fragment, opaque to batchman.
	Payload []byte

	// UpdatedAt is when the item was last written.
	UpdatedAt time.Time
}

// itemKey is the view-level identity of an item.
type itemKey struct {
	kind FragmentKind
	name string
}

// RucksackView is a read-only merge of project-scope and user-scope items:
// for each (kind, name) present in both scopes the project item shadows
// the user item. The view is a snapshot: it never observes later store
// edits, which lets a dialog reuse one view for repeated inserts.
type RucksackView struct {
	items map[itemKey]RucksackItem
}

// NewRucksackView builds the merged view. Project items win over user
// items with the same (kind, name).
func NewRucksackView(user, project []RucksackItem) *RucksackView {
	items := make(map[itemKey]RucksackItem, len(user)+len(project))
	for _, it := range user {
		items[itemKey{it.Kind, it.Name}] = it
	}
	for _, it := range project {
		items[itemKey{it.Kind, it.Name}] = it
	}
	return &RucksackView{items: items}
}

// Resolve looks up an item by kind and name, project shadow first.
// Returns ErrItemNotFound when the pair is absent from both scopes.
func (v *RucksackView) Resolve(kind FragmentKind, name string) (RucksackItem, error) {
	it, ok := v.items[itemKey{kind, name}]
	if !ok {
		return RucksackItem{}, ErrItemNotFound
	}
	return it, nil
}

// Items returns the merged items sorted by kind then name.
func (v *RucksackView) Items() []RucksackItem {
	out := make([]RucksackItem, 0, len(v.items))
	for _, it := range v.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Len returns the number of merged items.
func (v *RucksackView) Len() int {
	return len(v.items)
}
