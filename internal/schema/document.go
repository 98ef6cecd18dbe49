// Package schema loads JSON metadata schemas and turns them into form groups
package schema

import (
	"context"
	"fmt"
	"log"
	"sort"

	json "github.com/goccy/go-json"

	"github.com/pstuifzand/tui-templategen/internal/model"
)

// DefaultExcluded lists bookkeeping properties that never become checkboxes
var DefaultExcluded = []string{"describedBy", "schema_version", "schema_type", "provenance"}

// Property is one entry of a schema's "properties" object
type Property struct {
	Ref          string `json:"$ref,omitempty"`
	UserFriendly string `json:"user_friendly,omitempty"`
	Description  string `json:"description,omitempty"`
}

// Document is the subset of a JSON schema the form needs
type Document struct {
	ID         string              `json:"$id,omitempty"`
	Title      string              `json:"title"`
	Name       string              `json:"name,omitempty"`
	Properties map[string]Property `json:"properties"`
}

// Parse decodes a schema document
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	if doc.Title == "" && doc.Name == "" {
		return nil, fmt.Errorf("schema has neither title nor name")
	}
	return &doc, nil
}

// GroupName returns the schema's name, falling back to its title
func (d *Document) GroupName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.Title
}

// PropertyNames returns property names in a stable order
func (d *Document) PropertyNames() []string {
	names := make([]string, 0, len(d.Properties))
	for name := range d.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolver fetches the schema a reference points to
type Resolver interface {
	Fetch(ctx context.Context, ref string) (*Document, error)
}

// Extractor turns schema documents into form groups
type Extractor struct {
	Resolver Resolver
	Excluded []string
	Logger   *log.Logger
}

// NewExtractor creates an extractor with the default exclusions
func NewExtractor(resolver Resolver) *Extractor {
	return &Extractor{
		Resolver: resolver,
		Excluded: DefaultExcluded,
		Logger:   log.Default(),
	}
}

// Extract builds a group for doc, following $ref properties into nested lists
func (x *Extractor) Extract(ctx context.Context, doc *Document) (*model.Group, error) {
	name := doc.GroupName()
	g := model.NewGroup(name, doc.Title)

	entries, err := x.extractProperties(ctx, doc, name, map[string]bool{})
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		g.AddProperty(e)
	}
	return g, nil
}

func (x *Extractor) extractProperties(ctx context.Context, doc *Document, prefix string, seen map[string]bool) ([]*model.Entry, error) {
	var entries []*model.Entry
	for _, name := range doc.PropertyNames() {
		if x.excluded(name) {
			continue
		}
		prop := doc.Properties[name]
		path := prefix + "." + name

		label := name
		if prop.UserFriendly != "" {
			label = prop.UserFriendly
		}
		entry := model.NewProperty(path, label)

		if prop.Ref != "" {
			if seen[prop.Ref] {
				x.logf("skipping recursive reference %s at %s", prop.Ref, path)
			} else {
				children, err := x.extractRef(ctx, prop.Ref, path, seen)
				if err != nil {
					return nil, err
				}
				for _, child := range children {
					entry.AddChild(child)
				}
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (x *Extractor) extractRef(ctx context.Context, ref, prefix string, seen map[string]bool) ([]*model.Entry, error) {
	if x.Resolver == nil {
		return nil, fmt.Errorf("cannot resolve %s: no resolver configured", ref)
	}
	refDoc, err := x.Resolver.Fetch(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", ref, err)
	}

	seen[ref] = true
	defer delete(seen, ref)
	return x.extractProperties(ctx, refDoc, prefix, seen)
}

func (x *Extractor) excluded(name string) bool {
	for _, e := range x.Excluded {
		if e == name {
			return true
		}
	}
	return false
}

func (x *Extractor) logf(format string, args ...any) {
	if x.Logger != nil {
		x.Logger.Printf(format, args...)
	}
}
