package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-templategen/internal/model"
	"github.com/pstuifzand/tui-templategen/internal/socket"
	"github.com/pstuifzand/tui-templategen/internal/storage"
)

// execute runs the command line with a config file that does not exist,
// so the defaults apply
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "config.toml")))
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// shortDir keeps unix socket paths under the platform length limit
func shortDir(t *testing.T) string {
	dir, err := os.MkdirTemp("", "tgen")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tgen dev\n", out)
}

func TestLoadFromDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "donor.json"), `{
		"name": "donor",
		"title": "Donor",
		"properties": {"sex": {}, "describedBy": {}}
	}`)
	writeFile(t, filepath.Join(dir, "specimen.json"), `{
		"name": "specimen",
		"properties": {"organ": {"user_friendly": "Organ"}}
	}`)
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a schema")
	output := filepath.Join(t.TempDir(), "form.json")

	out, err := execute(t, "load", "--dir", dir, "-o", output)
	require.NoError(t, err)
	assert.Equal(t, "Loaded 2 schemas into "+output+"\n", out)

	form, err := storage.NewJSONStore(output).Load()
	require.NoError(t, err)
	require.Len(t, form.Groups, 2)
	assert.NotNil(t, form.Group("donor").Find("donor.sex"))
	assert.Nil(t, form.Group("donor").Find("donor.describedBy"))
	assert.Equal(t, "Organ", form.Group("specimen").Find("specimen.organ").Label)
}

func TestLoadNamedSchemasFromDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "donor.json"), `{"name": "donor", "properties": {"sex": {}}}`)
	writeFile(t, filepath.Join(dir, "specimen.json"), `{"name": "specimen", "properties": {"organ": {}}}`)
	output := filepath.Join(t.TempDir(), "form.json")

	_, err := execute(t, "load", "--dir", dir, "-o", output, "specimen")
	require.NoError(t, err)

	form, err := storage.NewJSONStore(output).Load()
	require.NoError(t, err)
	require.Len(t, form.Groups, 1)
	assert.Equal(t, "specimen", form.Groups[0].ID)
}

func TestLoadOverHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/type/donor" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name": "donor", "properties": {"sex": {}}}`))
	}))
	defer server.Close()
	output := filepath.Join(t.TempDir(), "form.json")

	_, err := execute(t, "load", "-o", output, server.URL+"/type/donor")
	require.NoError(t, err)

	form, err := storage.NewJSONStore(output).Load()
	require.NoError(t, err)
	assert.NotNil(t, form.Group("donor"))

	_, err = execute(t, "load", "-o", output, server.URL+"/type/missing")
	assert.Error(t, err)
}

func TestLoadEmptyDirectory(t *testing.T) {
	_, err := execute(t, "load", "--dir", t.TempDir(), "-o", filepath.Join(t.TempDir(), "form.json"))
	assert.EqualError(t, err, "no schemas to load")
}

func savedForm(t *testing.T) string {
	form := model.NewForm()
	g := model.NewGroup("donor", "Donor")
	g.Selected = true
	sex := model.NewProperty("donor.sex", "")
	sex.Checked = true
	g.AddProperty(sex)
	g.AddProperty(model.NewProperty("donor.age", ""))
	form.AddGroup(g)

	path := filepath.Join(t.TempDir(), "form.json")
	require.NoError(t, storage.NewJSONStore(path).Save(form))
	return path
}

func TestExportYAML(t *testing.T) {
	formPath := savedForm(t)
	output := filepath.Join(t.TempDir(), "template.yaml")

	out, err := execute(t, "export", formPath, "-o", output)
	require.NoError(t, err)
	assert.Equal(t, "Wrote "+output+"\n", out)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "donor.sex")
	assert.NotContains(t, string(data), "donor.age")
}

func TestExportMarkdown(t *testing.T) {
	formPath := savedForm(t)
	output := filepath.Join(t.TempDir(), "form.md")

	_, err := execute(t, "export", formPath, "--markdown", "-o", output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "- [x] donor.sex")
	assert.Contains(t, string(data), "- [ ] donor.age")
}

func TestExportMissingForm(t *testing.T) {
	_, err := execute(t, "export", filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorContains(t, err, "does not exist")
}

func TestSendWithoutInstance(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", shortDir(t))

	_, err := execute(t, "send", "select-all")
	assert.ErrorContains(t, err, "no running tgen instance found")
}

func TestSendToRunningInstance(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", shortDir(t))
	server, err := socket.NewServer(os.Getpid())
	require.NoError(t, err)
	server.Start()
	defer server.Stop()

	out, err := execute(t, "send", "add:donor", "--text", " donor.weight ")
	require.NoError(t, err)
	assert.Equal(t, "Command queued\n", out)

	msg := <-server.Messages()
	assert.Equal(t, "add:donor", msg.Command)
	assert.Equal(t, "donor.weight", msg.Text)
}

func TestImportColumns(t *testing.T) {
	formPath := savedForm(t)
	columns := filepath.Join(t.TempDir(), "columns.txt")
	writeFile(t, columns, "donor.age\n")

	out, err := execute(t, "import", formPath, columns)
	require.NoError(t, err)
	assert.Equal(t, "Applied 2 marks to "+formPath+"\n", out)

	form, err := storage.NewJSONStore(formPath).Load()
	require.NoError(t, err)
	assert.True(t, form.Group("donor").Find("donor.age").Checked)
	assert.False(t, form.Group("donor").Find("donor.sex").Checked)
}

func TestImportMarkdownReportsUnknown(t *testing.T) {
	formPath := savedForm(t)
	checklist := filepath.Join(t.TempDir(), "form.md")
	writeFile(t, checklist, "## [x] donor\n- [x] donor.age\n- [x] donor.weight\n")

	out, err := execute(t, "import", formPath, checklist)
	require.NoError(t, err)
	assert.Contains(t, out, "unknown: donor/donor.weight\n")
	assert.Contains(t, out, "Applied 2 marks")

	form, err := storage.NewJSONStore(formPath).Load()
	require.NoError(t, err)
	assert.True(t, form.Group("donor").Find("donor.age").Checked)
	assert.True(t, form.Group("donor").Find("donor.sex").Checked)
}
