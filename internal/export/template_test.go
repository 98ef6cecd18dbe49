package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pstuifzand/tui-templategen/internal/model"
)

func TestBuildTemplate(t *testing.T) {
	tmpl := BuildTemplate(testForm())

	require.Len(t, tmpl.Tabs, 1)
	tab, ok := tmpl.Tabs[0]["donor"]
	require.True(t, ok)
	assert.Equal(t, "Donor organism", tab.DisplayName)
	assert.Equal(t, []string{"donor.core.id", "donor.sex", "donor.Foo"}, tab.Columns)
}

func TestBuildTemplateFallsBackToID(t *testing.T) {
	form := model.NewForm()
	g := &model.Group{ID: "cell_suspension", Selected: true}
	form.AddGroup(g)

	tmpl := BuildTemplate(form)
	require.Len(t, tmpl.Tabs, 1)
	assert.Equal(t, "cell_suspension", tmpl.Tabs[0]["cell_suspension"].DisplayName)
	assert.Empty(t, tmpl.Tabs[0]["cell_suspension"].Columns)
}

func TestColumnName(t *testing.T) {
	g := model.NewGroup("donor", "")
	prefixed := model.NewProperty("donor.sex", "")
	bare := model.NewProperty("Foo", "")
	g.AddProperty(prefixed)
	g.AddProperty(bare)

	assert.Equal(t, "donor.sex", ColumnName(prefixed))
	assert.Equal(t, "donor.Foo", ColumnName(bare))
	assert.Equal(t, "loose", ColumnName(model.NewProperty("loose", "")))
}

func TestWriteYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.yaml")
	require.NoError(t, WriteYAML(testForm(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		Tabs []map[string]struct {
			DisplayName string   `yaml:"display_name"`
			Columns     []string `yaml:"columns"`
		} `yaml:"tabs"`
	}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	require.Len(t, decoded.Tabs, 1)
	assert.Equal(t, "Donor organism", decoded.Tabs[0]["donor"].DisplayName)
	assert.Contains(t, decoded.Tabs[0]["donor"].Columns, "donor.Foo")
	assert.Contains(t, string(data), "display_name: Donor organism")
}
