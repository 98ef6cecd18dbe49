package schema

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-templategen/internal/model"
)

// mapResolver serves documents from memory
type mapResolver map[string]*Document

func (m mapResolver) Fetch(ctx context.Context, ref string) (*Document, error) {
	doc, ok := m[ref]
	if !ok {
		return nil, fmt.Errorf("no document %s", ref)
	}
	return doc, nil
}

func quietExtractor(r Resolver) *Extractor {
	x := NewExtractor(r)
	x.Logger = log.New(io.Discard, "", 0)
	return x
}

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(`{
		"title": "Donor organism",
		"name": "donor_organism",
		"properties": {
			"describedBy": {},
			"sex": {"user_friendly": "Biological sex"},
			"biomaterial_core": {"$ref": "core/biomaterial_core"}
		}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "donor_organism", doc.GroupName())
	assert.Equal(t, []string{"biomaterial_core", "describedBy", "sex"}, doc.PropertyNames())
	assert.Equal(t, "core/biomaterial_core", doc.Properties["biomaterial_core"].Ref)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"properties": {}}`))
	assert.Error(t, err)
}

func TestGroupNameFallsBackToTitle(t *testing.T) {
	doc := &Document{Title: "cell_suspension"}
	assert.Equal(t, "cell_suspension", doc.GroupName())
}

func TestExtract(t *testing.T) {
	resolver := mapResolver{
		"core/biomaterial_core": {
			Title: "biomaterial_core",
			Properties: map[string]Property{
				"biomaterial_id":   {UserFriendly: "Biomaterial ID"},
				"schema_type":      {},
				"biomaterial_name": {},
			},
		},
	}
	doc := &Document{
		Title: "Donor organism",
		Name:  "donor_organism",
		Properties: map[string]Property{
			"provenance":       {},
			"sex":              {UserFriendly: "Biological sex"},
			"biomaterial_core": {Ref: "core/biomaterial_core"},
		},
	}

	g, err := quietExtractor(resolver).Extract(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, "donor_organism", g.ID)
	assert.Equal(t, "Donor organism", g.Title)
	require.Len(t, g.Entries, 3)
	assert.Equal(t, model.KindSentinel, g.Entries[2].Kind)

	core := g.Entries[0]
	assert.Equal(t, "donor_organism.biomaterial_core", core.Property)
	require.Len(t, core.Children, 2)
	assert.Equal(t, "donor_organism.biomaterial_core.biomaterial_id", core.Children[0].Property)
	assert.Equal(t, "Biomaterial ID", core.Children[0].Label)
	assert.Equal(t, "donor_organism.biomaterial_core.biomaterial_name", core.Children[1].Property)
	assert.Same(t, core, core.Children[0].Parent)

	sex := g.Find("donor_organism.sex")
	require.NotNil(t, sex)
	assert.Equal(t, "Biological sex", sex.Label)
}

func TestExtractSkipsRecursiveReference(t *testing.T) {
	resolver := mapResolver{}
	resolver["node"] = &Document{
		Title:      "node",
		Properties: map[string]Property{"next": {Ref: "node"}, "value": {}},
	}
	doc := &Document{Title: "list", Properties: map[string]Property{"head": {Ref: "node"}}}

	g, err := quietExtractor(resolver).Extract(context.Background(), doc)
	require.NoError(t, err)

	head := g.Find("list.head")
	require.NotNil(t, head)
	next := g.Find("list.head.next")
	require.NotNil(t, next)
	assert.Empty(t, next.Children)
	assert.NotNil(t, g.Find("list.head.value"))
}

func TestExtractUnresolvableReference(t *testing.T) {
	doc := &Document{Title: "x", Properties: map[string]Property{"a": {Ref: "missing"}}}

	_, err := quietExtractor(mapResolver{}).Extract(context.Background(), doc)
	assert.Error(t, err)

	_, err = quietExtractor(nil).Extract(context.Background(), doc)
	assert.Error(t, err)
}

func TestFileResolver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "type", "biomaterial", "5.1.0", "donor_organism.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(`{"title":"donor_organism","properties":{"sex":{}}}`), 0644))

	r := NewFileResolver(dir)
	assert.Equal(t, path, r.Path("http://schema.dev.data.humancellatlas.org/type/biomaterial/5.1.0/donor_organism"))
	assert.Equal(t, path, r.Path("type/biomaterial/5.1.0/donor_organism.json"))

	doc, err := r.Fetch(context.Background(), "type/biomaterial/5.1.0/donor_organism")
	require.NoError(t, err)
	assert.Equal(t, "donor_organism", doc.Title)

	_, err = r.Fetch(context.Background(), "nope")
	assert.Error(t, err)
}

func TestHTTPResolver(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/type/donor" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"title":"donor","properties":{"sex":{}}}`)
	}))
	defer srv.Close()

	r := NewHTTPResolver()
	doc, err := r.Fetch(context.Background(), srv.URL+"/type/donor")
	require.NoError(t, err)
	assert.Equal(t, "donor", doc.Title)

	_, err = r.Fetch(context.Background(), srv.URL+"/missing")
	assert.Error(t, err)
}

func TestLatestSchemaURLsFollowsPages(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "":
			fmt.Fprintf(w, `{
				"_embedded": {"schemas": [
					{"highLevelEntity": "type", "domainEntity": "biomaterial", "subDomainEntity": "", "schemaVersion": "5.1.0", "concreteEntity": "donor_organism"},
					{"highLevelEntity": "module", "domainEntity": "ontology", "schemaVersion": "1.0.0", "concreteEntity": "sex_ontology"}
				]},
				"_links": {"next": {"href": "%s/latest?page=1"}}
			}`, srv.URL)
		case "1":
			fmt.Fprint(w, `{
				"_embedded": {"schemas": [
					{"highLevelEntity": "type", "domainEntity": "process", "subDomainEntity": "analysis", "schemaVersion": "2.0.0", "concreteEntity": "analysis_process"},
					{"highLevelEntity": "type", "domainEntity": "protocol", "subDomainEntity": "sequencing", "schemaVersion": "9.0.1", "concreteEntity": "library_preparation_protocol"}
				]},
				"_links": {}
			}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := NewLister("dev.data")
	urls, err := l.LatestSchemaURLs(context.Background(), srv.URL+"/latest")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"http://schema.dev.data.humancellatlas.org/type/biomaterial/5.1.0/donor_organism",
		"http://schema.dev.data.humancellatlas.org/type/protocol/sequencing/9.0.1/library_preparation_protocol",
	}, urls)
}

func TestLatestSchemaURLsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewLister("dev").LatestSchemaURLs(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestListingURL(t *testing.T) {
	assert.Equal(t,
		"http://api.ingest.dev.data.humancellatlas.org/schemas/search/latestSchemas",
		ListingURL(DefaultListingURL, "dev"))
}

func TestLoadForm(t *testing.T) {
	resolver := mapResolver{
		"a":  {Name: "donor", Title: "Donor", Properties: map[string]Property{"sex": {}}},
		"b":  {Title: "specimen", Properties: map[string]Property{"organ": {}}},
		"a2": {Name: "donor", Title: "Donor again", Properties: map[string]Property{}},
	}
	loader := NewLoader(resolver, nil)
	loader.Logger = log.New(io.Discard, "", 0)
	loader.Extractor.Logger = loader.Logger

	form, err := loader.LoadForm(context.Background(), []string{"a", "b", "a2"})
	require.NoError(t, err)

	require.Len(t, form.Groups, 2)
	assert.Equal(t, "Donor", form.Group("donor").Title)
	assert.NotNil(t, form.Group("specimen").Find("specimen.organ"))

	_, err = loader.LoadForm(context.Background(), []string{"zzz"})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = loader.LoadForm(ctx, []string{"a"})
	assert.ErrorIs(t, err, context.Canceled)
}
