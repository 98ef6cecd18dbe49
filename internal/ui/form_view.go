package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-templategen/internal/model"
	"github.com/pstuifzand/tui-templategen/internal/selection"
)

// RowKind identifies what a FormView row displays
type RowKind int

const (
	RowExpandAll RowKind = iota
	RowSelectAll
	RowGroup
	RowEntry
)

// Row is one line of the flattened form
type Row struct {
	Kind  RowKind
	Group *model.Group
	Entry *model.Entry
	Depth int
}

// FormView manages the display and navigation of the schema form
type FormView struct {
	ctrl           *selection.Controller
	rows           []Row
	selectedIdx    int
	viewportOffset int // Index of first visible row in the viewport
}

// NewFormView creates a FormView over the controller's form
func NewFormView(ctrl *selection.Controller) *FormView {
	v := &FormView{ctrl: ctrl}
	v.Rebuild()
	return v
}

// Rebuild flattens the form into rows, keeping the cursor on the same
// row when it is still visible
func (v *FormView) Rebuild() {
	var current Row
	hadCurrent := false
	if len(v.rows) > 0 && v.selectedIdx < len(v.rows) {
		current, hadCurrent = v.rows[v.selectedIdx], true
	}

	rows := []Row{{Kind: RowExpandAll}, {Kind: RowSelectAll}}
	for _, g := range v.ctrl.Form().Groups {
		rows = append(rows, Row{Kind: RowGroup, Group: g})
		if g.Expanded {
			rows = appendEntryRows(rows, g, g.Entries, 1)
		}
	}
	v.rows = rows

	if hadCurrent && v.selectRow(current) {
		return
	}
	if hadCurrent && current.Group != nil {
		// The row vanished with its collapsed section, fall back to the header
		if v.SelectGroup(current.Group) {
			return
		}
	}
	v.clampSelection()
}

func appendEntryRows(rows []Row, g *model.Group, entries []*model.Entry, depth int) []Row {
	for _, e := range entries {
		rows = append(rows, Row{Kind: RowEntry, Group: g, Entry: e, Depth: depth})
		rows = appendEntryRows(rows, g, e.Children, depth+1)
	}
	return rows
}

func (v *FormView) selectRow(target Row) bool {
	for idx, row := range v.rows {
		if row.Kind == target.Kind && row.Group == target.Group && row.Entry == target.Entry {
			v.selectedIdx = idx
			return true
		}
	}
	return false
}

func (v *FormView) clampSelection() {
	if v.selectedIdx >= len(v.rows) {
		v.selectedIdx = len(v.rows) - 1
	}
	if v.selectedIdx < 0 {
		v.selectedIdx = 0
	}
}

// Rows returns the flattened rows
func (v *FormView) Rows() []Row {
	return v.rows
}

// SelectedIndex returns the cursor position
func (v *FormView) SelectedIndex() int {
	return v.selectedIdx
}

// Selected returns the row under the cursor
func (v *FormView) Selected() Row {
	if len(v.rows) == 0 {
		return Row{}
	}
	return v.rows[v.selectedIdx]
}

// CurrentGroup returns the group the cursor is in, if any
func (v *FormView) CurrentGroup() *model.Group {
	return v.Selected().Group
}

// SelectNext moves selection down
func (v *FormView) SelectNext() {
	if v.selectedIdx < len(v.rows)-1 {
		v.selectedIdx++
	}
}

// SelectPrev moves selection up
func (v *FormView) SelectPrev() {
	if v.selectedIdx > 0 {
		v.selectedIdx--
	}
}

// SelectFirst moves selection to the first row
func (v *FormView) SelectFirst() {
	v.selectedIdx = 0
}

// SelectLast moves selection to the last row
func (v *FormView) SelectLast() {
	v.selectedIdx = len(v.rows) - 1
	v.clampSelection()
}

// SelectNextGroup moves selection to the next group header
func (v *FormView) SelectNextGroup() {
	for idx := v.selectedIdx + 1; idx < len(v.rows); idx++ {
		if v.rows[idx].Kind == RowGroup {
			v.selectedIdx = idx
			return
		}
	}
}

// SelectPrevGroup moves selection to the previous group header
func (v *FormView) SelectPrevGroup() {
	for idx := v.selectedIdx - 1; idx >= 0; idx-- {
		if v.rows[idx].Kind == RowGroup {
			v.selectedIdx = idx
			return
		}
	}
}

// SelectGroup moves selection to a group's header row
func (v *FormView) SelectGroup(g *model.Group) bool {
	return v.selectRow(Row{Kind: RowGroup, Group: g})
}

// SelectEntry moves selection to an entry row
func (v *FormView) SelectEntry(e *model.Entry) bool {
	if e == nil {
		return false
	}
	return v.selectRow(Row{Kind: RowEntry, Group: e.Group, Entry: e})
}

// ScrollPageUp moves selection up by pageSize rows
func (v *FormView) ScrollPageUp(pageSize int) {
	if pageSize <= 0 {
		pageSize = 1
	}
	v.selectedIdx -= pageSize
	v.clampSelection()
	v.viewportOffset = v.selectedIdx
}

// ScrollPageDown moves selection down by pageSize rows
func (v *FormView) ScrollPageDown(pageSize int) {
	if pageSize <= 0 {
		pageSize = 1
	}
	v.selectedIdx += pageSize
	v.clampSelection()
	v.viewportOffset = v.selectedIdx - pageSize + 1
	if v.viewportOffset < 0 {
		v.viewportOffset = 0
	}
}

// adjustViewport keeps the cursor inside a viewport of height rows
func (v *FormView) adjustViewport(height int) {
	if height <= 0 {
		return
	}
	if v.selectedIdx < v.viewportOffset {
		v.viewportOffset = v.selectedIdx
	}
	if v.selectedIdx >= v.viewportOffset+height {
		v.viewportOffset = v.selectedIdx - height + 1
	}
	if maxOffset := len(v.rows) - height; v.viewportOffset > maxOffset {
		v.viewportOffset = maxOffset
	}
	if v.viewportOffset < 0 {
		v.viewportOffset = 0
	}
}

// RowText returns the plain text shown for a row
func (v *FormView) RowText(row Row) string {
	switch row.Kind {
	case RowExpandAll:
		return arrow(v.ctrl.State().Expanded) + " " + v.ctrl.ExpandLabel()
	case RowSelectAll:
		return checkbox(v.ctrl.State().Selected) + " " + v.ctrl.SelectLabel()
	case RowGroup:
		return arrow(row.Group.Expanded) + " " + checkbox(row.Group.Selected) + " " + row.Group.Title + " (" + row.Group.ID + ")"
	}

	indent := strings.Repeat("  ", row.Depth)
	e := row.Entry
	switch e.Kind {
	case model.KindPlaceholder:
		return indent + "> " + e.Text
	case model.KindSentinel:
		return indent + "+ " + e.Label
	}
	text := indent + checkbox(e.Checked) + " " + e.Label
	if e.Label != e.Property {
		text += " (" + e.Property + ")"
	}
	return text
}

func arrow(expanded bool) string {
	if expanded {
		return "▾"
	}
	return "▸"
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

// Render draws the rows between y and y+height. When input is active it
// is drawn in place of the placeholder it edits.
func (v *FormView) Render(screen *Screen, y, height int, input *PropertyInput) {
	v.adjustViewport(height)
	width := screen.GetWidth()

	for i := 0; i < height; i++ {
		idx := v.viewportOffset + i
		row := y + i
		screen.ClearLine(0, row, screen.TreeNormalStyle())
		if idx >= len(v.rows) {
			continue
		}

		r := v.rows[idx]
		selected := idx == v.selectedIdx

		if r.Kind == RowEntry && r.Entry.Kind == model.KindPlaceholder && input != nil && input.IsActive() && input.Entry() == r.Entry {
			x := screen.DrawString(1, row, strings.Repeat("  ", r.Depth)+"> ", screen.PlaceholderStyle())
			input.Render(screen, x, row, width-x)
			continue
		}

		style := v.rowStyle(screen, r)
		if selected {
			style = screen.TreeSelectedStyle()
		}
		screen.DrawStringLimited(1, row, v.RowText(r), width-2, style)
	}
}

func (v *FormView) rowStyle(screen *Screen, r Row) tcell.Style {
	switch r.Kind {
	case RowExpandAll, RowSelectAll:
		return screen.ControlStyle()
	case RowGroup:
		return screen.GroupHeaderStyle()
	}
	switch r.Entry.Kind {
	case model.KindPlaceholder:
		return screen.PlaceholderStyle()
	case model.KindSentinel:
		return screen.SentinelStyle()
	}
	return screen.CheckboxStyle(r.Entry.Checked)
}
