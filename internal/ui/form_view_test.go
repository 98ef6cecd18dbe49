package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-templategen/internal/model"
	"github.com/pstuifzand/tui-templategen/internal/selection"
	"github.com/pstuifzand/tui-templategen/internal/theme"
)

func testController() *selection.Controller {
	form := model.NewForm()
	for _, id := range []string{"donor", "specimen"} {
		g := model.NewGroup(id, "")
		g.AddProperty(model.NewProperty(id+".one", ""))
		g.AddProperty(model.NewProperty(id+".two", "Second"))
		form.AddGroup(g)
	}
	return selection.NewController(form, nil)
}

func newSimScreen(t *testing.T, width, height int) (*Screen, tcell.SimulationScreen) {
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := NewScreenFrom(sim, theme.Default())
	require.NoError(t, err)
	t.Cleanup(func() { screen.Close() })
	sim.SetSize(width, height)
	screen.Size()
	return screen, sim
}

func screenLine(sim tcell.SimulationScreen, y int) string {
	cells, width, _ := sim.GetContents()
	var sb strings.Builder
	for x := 0; x < width; x++ {
		runes := cells[y*width+x].Runes
		if len(runes) == 0 {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(runes[0])
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestFormViewCollapsedRows(t *testing.T) {
	view := NewFormView(testController())

	rows := view.Rows()
	require.Len(t, rows, 4)
	assert.Equal(t, RowExpandAll, rows[0].Kind)
	assert.Equal(t, RowSelectAll, rows[1].Kind)
	assert.Equal(t, RowGroup, rows[2].Kind)
	assert.Equal(t, "donor", rows[2].Group.ID)
	assert.Equal(t, "specimen", rows[3].Group.ID)
}

func TestFormViewRowsFollowContentHeight(t *testing.T) {
	ctrl := testController()
	view := NewFormView(ctrl)

	ctrl.ExpandAll()
	view.Rebuild()

	counts := make(map[string]int)
	for _, row := range view.Rows() {
		if row.Kind == RowEntry {
			counts[row.Group.ID]++
		}
	}
	for _, g := range ctrl.Form().Groups {
		assert.Equal(t, g.ContentHeight(), counts[g.ID], g.ID)
	}
	assert.Len(t, view.Rows(), 10)

	_, err := ctrl.AddProperty(selection.Add("donor"))
	require.NoError(t, err)
	view.Rebuild()
	assert.Equal(t, ctrl.Form().Group("donor").ContentHeight(), 4)
	assert.Len(t, view.Rows(), 11)
}

func TestFormViewKeepsCursorOnRebuild(t *testing.T) {
	ctrl := testController()
	view := NewFormView(ctrl)
	ctrl.ExpandAll()
	view.Rebuild()

	entry := ctrl.Form().Group("specimen").Find("specimen.two")
	require.True(t, view.SelectEntry(entry))
	selected := view.SelectedIndex()

	ctrl.SelectAll()
	view.Rebuild()
	assert.Equal(t, selected, view.SelectedIndex())

	// Collapsing hides the entry, the cursor falls back to its group header
	ctrl.ExpandAll()
	view.Rebuild()
	assert.Equal(t, RowGroup, view.Selected().Kind)
	assert.Equal(t, "specimen", view.CurrentGroup().ID)
}

func TestFormViewNavigation(t *testing.T) {
	ctrl := testController()
	view := NewFormView(ctrl)
	ctrl.ExpandAll()
	view.Rebuild()

	view.SelectPrev()
	assert.Equal(t, 0, view.SelectedIndex())

	view.SelectNextGroup()
	assert.Equal(t, "donor", view.CurrentGroup().ID)
	view.SelectNextGroup()
	assert.Equal(t, "specimen", view.CurrentGroup().ID)
	assert.Equal(t, RowGroup, view.Selected().Kind)
	view.SelectPrevGroup()
	assert.Equal(t, "donor", view.CurrentGroup().ID)

	view.SelectLast()
	assert.Equal(t, len(view.Rows())-1, view.SelectedIndex())
	assert.Equal(t, model.KindSentinel, view.Selected().Entry.Kind)
	view.SelectNext()
	assert.Equal(t, len(view.Rows())-1, view.SelectedIndex())

	view.ScrollPageUp(3)
	assert.Equal(t, len(view.Rows())-4, view.SelectedIndex())
	view.SelectFirst()
	assert.Equal(t, RowExpandAll, view.Selected().Kind)
}

func TestFormViewRowText(t *testing.T) {
	ctrl := testController()
	view := NewFormView(ctrl)

	assert.Equal(t, "▸ Expand all sections", view.RowText(view.Rows()[0]))
	assert.Equal(t, "[ ] Select all", view.RowText(view.Rows()[1]))
	assert.Equal(t, "▸ [ ] donor (donor)", view.RowText(view.Rows()[2]))

	ctrl.SelectAll()
	placeholder, err := ctrl.AddProperty(selection.Add("donor"))
	require.NoError(t, err)
	placeholder.Text = "donor.age"
	view.Rebuild()

	var texts []string
	for _, row := range view.Rows() {
		if row.Group != nil && row.Group.ID == "donor" {
			texts = append(texts, view.RowText(row))
		}
	}
	assert.Equal(t, []string{
		"▾ [x] donor (donor)",
		"  [x] donor.one",
		"  [x] Second (donor.two)",
		"  > donor.age",
		"  + Add new property",
	}, texts)
	assert.Equal(t, "▾ Collapse all sections", view.RowText(view.Rows()[0]))
	assert.Equal(t, "[x] All selected", view.RowText(view.Rows()[1]))
}

func TestFormViewRender(t *testing.T) {
	screen, sim := newSimScreen(t, 40, 6)
	ctrl := testController()
	view := NewFormView(ctrl)
	ctrl.ExpandAll()
	view.Rebuild()
	view.SelectLast()

	view.Render(screen, 0, 5, nil)
	screen.Show()

	// The viewport scrolls so the last row is on the bottom line
	assert.Equal(t, "   + Add new property", screenLine(sim, 0))
	assert.Equal(t, " ▾ [ ] specimen (specimen)", screenLine(sim, 1))
	assert.Equal(t, "   [ ] specimen.one", screenLine(sim, 2))
	assert.Equal(t, "   + Add new property", screenLine(sim, 4))
	assert.Equal(t, "", screenLine(sim, 5))
}

func TestFormViewRenderActiveInput(t *testing.T) {
	screen, sim := newSimScreen(t, 40, 12)
	ctrl := testController()
	view := NewFormView(ctrl)
	ctrl.ExpandAll()
	placeholder, err := ctrl.AddProperty(selection.Add("donor"))
	require.NoError(t, err)
	view.Rebuild()

	input := NewPropertyInput(nil)
	input.Start(placeholder)
	input.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))

	view.Render(screen, 0, 12, input)
	screen.Show()

	assert.Equal(t, "   > x", screenLine(sim, 5))
}
