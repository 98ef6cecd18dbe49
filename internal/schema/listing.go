package schema

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/pstuifzand/tui-templategen/internal/model"
)

const (
	// DefaultListingURL is the ingest API's "latest schemas" search, {env} is the deployment
	DefaultListingURL = "http://api.ingest.{env}.data.humancellatlas.org/schemas/search/latestSchemas"
	// DefaultSchemaBase is where schema documents are published, {schema_env} is the deployment
	DefaultSchemaBase = "http://schema.{schema_env}.humancellatlas.org/"

	maxListingPages = 100
)

// ListingEntry describes one schema in the ingest listing
type ListingEntry struct {
	HighLevelEntity string `json:"highLevelEntity"`
	DomainEntity    string `json:"domainEntity"`
	SubDomainEntity string `json:"subDomainEntity"`
	SchemaVersion   string `json:"schemaVersion"`
	ConcreteEntity  string `json:"concreteEntity"`
}

type listingPage struct {
	Embedded struct {
		Schemas []ListingEntry `json:"schemas"`
	} `json:"_embedded"`
	Links struct {
		Next *struct {
			Href string `json:"href"`
		} `json:"next,omitempty"`
	} `json:"_links"`
}

// Lister walks the paged schema listing
type Lister struct {
	Client     *http.Client
	SchemaBase string
}

// NewLister creates a lister publishing URLs under the given schema environment
func NewLister(schemaEnv string) *Lister {
	return &Lister{
		Client:     NewHTTPResolver().Client,
		SchemaBase: strings.ReplaceAll(DefaultSchemaBase, "{schema_env}", schemaEnv),
	}
}

// ListingURL fills the environment into a listing URL template
func ListingURL(template, env string) string {
	return strings.ReplaceAll(template, "{env}", env)
}

// LatestSchemaURLs follows the listing's next links and returns the URL of
// every "type" schema, analysis schemas excluded
func (l *Lister) LatestSchemaURLs(ctx context.Context, listingURL string) ([]string, error) {
	var urls []string
	next := listingURL
	for page := 0; next != ""; page++ {
		if page >= maxListingPages {
			return nil, fmt.Errorf("schema listing exceeds %d pages", maxListingPages)
		}
		data, err := getJSON(ctx, l.Client, next)
		if err != nil {
			return nil, err
		}

		var p listingPage
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to parse schema listing: %w", err)
		}

		for _, entry := range p.Embedded.Schemas {
			if u := l.SchemaURL(entry); u != "" {
				urls = append(urls, u)
			}
		}

		next = ""
		if p.Links.Next != nil {
			next = p.Links.Next.Href
		}
	}
	return urls, nil
}

// SchemaURL builds the document URL of a listing entry, or "" when the
// entry is not a selectable type schema
func (l *Lister) SchemaURL(e ListingEntry) string {
	if e.HighLevelEntity != "type" || strings.Contains(e.ConcreteEntity, "analysis_") {
		return ""
	}
	u := l.SchemaBase + e.HighLevelEntity
	for _, part := range []string{e.DomainEntity, e.SubDomainEntity, e.SchemaVersion, e.ConcreteEntity} {
		if part != "" {
			u += "/" + part
		}
	}
	return u
}

// Loader builds a complete form out of schema references
type Loader struct {
	Resolver  Resolver
	Extractor *Extractor
	Logger    *log.Logger
}

// NewLoader creates a loader whose extractor shares the resolver
func NewLoader(resolver Resolver, excluded []string) *Loader {
	x := NewExtractor(resolver)
	if excluded != nil {
		x.Excluded = excluded
	}
	return &Loader{
		Resolver:  resolver,
		Extractor: x,
		Logger:    log.Default(),
	}
}

// LoadForm fetches every reference and adds one group per schema.
// Schemas sharing a name with an earlier one are skipped.
func (l *Loader) LoadForm(ctx context.Context, refs []string) (*model.Form, error) {
	form := model.NewForm()
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := l.Resolver.Fetch(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("failed to load schema %s: %w", ref, err)
		}
		g, err := l.Extractor.Extract(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("failed to extract %s: %w", ref, err)
		}
		if form.Group(g.ID) != nil {
			l.Logger.Printf("duplicate schema %s from %s, keeping the first", g.ID, ref)
			continue
		}
		l.Logger.Printf("loaded schema %s (%s)", g.ID, ref)
		form.AddGroup(g)
	}
	return form, nil
}
