// Package model contains the schema selection form tree
package model

import "strings"

// EntryKind distinguishes the rows of a group's entry list
type EntryKind int

const (
	KindProperty    EntryKind = iota // Selectable property checkbox
	KindPlaceholder                  // Transient text row for a new property name
	KindSentinel                     // Fixed trailing "add new property" row
)

func (k EntryKind) String() string {
	switch k {
	case KindProperty:
		return "property"
	case KindPlaceholder:
		return "placeholder"
	case KindSentinel:
		return "sentinel"
	default:
		return "unknown"
	}
}

// SentinelLabel is the text shown on every group's trailing row
const SentinelLabel = "Add new property"

// Entry is a single row in a group's entry list
type Entry struct {
	Kind     EntryKind `json:"kind"`
	Property string    `json:"property,omitempty"` // Dotted property path, e.g. "donor.biomaterial_id"
	Label    string    `json:"label,omitempty"`
	Checked  bool      `json:"checked,omitempty"`
	Text     string    `json:"-"` // Placeholder input, not persisted
	Children []*Entry  `json:"children,omitempty"`
	Parent   *Entry    `json:"-"`
	Group    *Group    `json:"-"`
}

// Group is a schema group together with its collapsible section
type Group struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Selected bool     `json:"selected,omitempty"`
	Entries  []*Entry `json:"entries"`
	Expanded bool     `json:"-"` // Section visibility, not persisted
}

// Form is the root data container holding every schema group
type Form struct {
	Groups []*Group `json:"groups"`
}

// NewForm creates an empty form
func NewForm() *Form {
	return &Form{
		Groups: make([]*Group, 0),
	}
}

// NewGroup creates a group whose entry list holds only the sentinel row
func NewGroup(id, title string) *Group {
	if title == "" {
		title = id
	}
	g := &Group{
		ID:    id,
		Title: title,
	}
	g.Entries = []*Entry{{Kind: KindSentinel, Label: SentinelLabel, Group: g}}
	return g
}

// NewProperty creates an unchecked property entry
func NewProperty(property, label string) *Entry {
	if label == "" {
		label = property
	}
	return &Entry{
		Kind:     KindProperty,
		Property: property,
		Label:    label,
		Children: make([]*Entry, 0),
	}
}

// NewPlaceholder creates an empty placeholder row
func NewPlaceholder() *Entry {
	return &Entry{Kind: KindPlaceholder}
}

// AddGroup appends a group to the form
func (f *Form) AddGroup(g *Group) {
	f.Groups = append(f.Groups, g)
}

// Group finds a group by its schema id
func (f *Form) Group(id string) *Group {
	for _, g := range f.Groups {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// Walk visits every entry of every group in document order.
// Returning false from fn stops the walk.
func (f *Form) Walk(fn func(*Entry) bool) {
	for _, g := range f.Groups {
		if !g.Walk(fn) {
			return
		}
	}
}

// Placeholders returns all placeholder rows in document order
func (f *Form) Placeholders() []*Entry {
	var result []*Entry
	f.Walk(func(e *Entry) bool {
		if e.Kind == KindPlaceholder {
			result = append(result, e)
		}
		return true
	})
	return result
}

// Walk visits the group's entries depth-first in document order
func (g *Group) Walk(fn func(*Entry) bool) bool {
	return walkEntries(g.Entries, fn)
}

func walkEntries(entries []*Entry, fn func(*Entry) bool) bool {
	for _, e := range entries {
		if !fn(e) {
			return false
		}
		if !walkEntries(e.Children, fn) {
			return false
		}
	}
	return true
}

// AddProperty inserts a property entry at the top level, before the sentinel
func (g *Group) AddProperty(e *Entry) {
	g.InsertBeforeSentinel(e)
}

// Sentinel returns the group's trailing sentinel row
func (g *Group) Sentinel() *Entry {
	for i := len(g.Entries) - 1; i >= 0; i-- {
		if g.Entries[i].Kind == KindSentinel {
			return g.Entries[i]
		}
	}
	return nil
}

// InsertBeforeSentinel inserts e directly before the sentinel row.
// A group without a sentinel gets one appended first.
func (g *Group) InsertBeforeSentinel(e *Entry) {
	e.Group = g
	e.Parent = nil
	idx := -1
	for i, existing := range g.Entries {
		if existing.Kind == KindSentinel {
			idx = i
			break
		}
	}
	if idx < 0 {
		g.Entries = append(g.Entries, &Entry{Kind: KindSentinel, Label: SentinelLabel, Group: g})
		idx = len(g.Entries) - 1
	}
	g.Entries = append(g.Entries[:idx], append([]*Entry{e}, g.Entries[idx:]...)...)
}

// Remove removes an entry from whichever list holds it
func (g *Group) Remove(e *Entry) bool {
	list := &g.Entries
	if e.Parent != nil {
		list = &e.Parent.Children
	}
	for idx, existing := range *list {
		if existing == e {
			*list = append((*list)[:idx], (*list)[idx+1:]...)
			e.Parent = nil
			return true
		}
	}
	return false
}

// Find finds a property entry by its dotted path
func (g *Group) Find(property string) *Entry {
	var found *Entry
	g.Walk(func(e *Entry) bool {
		if e.Kind == KindProperty && e.Property == property {
			found = e
			return false
		}
		return true
	})
	return found
}

// ContentHeight returns the number of rows the section shows: every row
// of the entry tree when expanded, nothing when collapsed
func (g *Group) ContentHeight() int {
	if !g.Expanded {
		return 0
	}
	rows := 0
	g.Walk(func(*Entry) bool {
		rows++
		return true
	})
	return rows
}

// AddChild adds a nested property entry
func (e *Entry) AddChild(child *Entry) {
	child.Parent = e
	child.Group = e.Group
	e.Children = append(e.Children, child)
}

// Value encodes the owning schema id and the property name
func (e *Entry) Value() string {
	if e.Group == nil {
		return e.Property
	}
	return e.Group.ID + ":" + e.Property
}

// IsCheckbox reports whether the entry renders as a checkbox
func (e *Entry) IsCheckbox() bool {
	return e.Kind == KindProperty
}

// Siblings returns the other checkbox entries of the list that holds e
func (e *Entry) Siblings() []*Entry {
	var list []*Entry
	if e.Parent != nil {
		list = e.Parent.Children
	} else if e.Group != nil {
		list = e.Group.Entries
	}
	var result []*Entry
	for _, s := range list {
		if s != e && s.IsCheckbox() {
			result = append(result, s)
		}
	}
	return result
}

// ShortName returns the last segment of the property path
func (e *Entry) ShortName() string {
	if idx := strings.LastIndex(e.Property, "."); idx >= 0 {
		return e.Property[idx+1:]
	}
	return e.Property
}

// RestoreParents reconstructs group and parent pointers after decoding
func (f *Form) RestoreParents() {
	for _, g := range f.Groups {
		if g.Sentinel() == nil {
			g.Entries = append(g.Entries, &Entry{Kind: KindSentinel, Label: SentinelLabel})
		}
		restoreEntries(g, nil, g.Entries)
	}
}

func restoreEntries(g *Group, parent *Entry, entries []*Entry) {
	for _, e := range entries {
		e.Group = g
		e.Parent = parent
		if e.Kind == KindSentinel && e.Label == "" {
			e.Label = SentinelLabel
		}
		restoreEntries(g, e, e.Children)
	}
}
