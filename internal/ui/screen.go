package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-templategen/internal/theme"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.Theme
}

// NewScreenWithTheme creates and initializes a terminal screen with a specific theme
func NewScreenWithTheme(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	return NewScreenFrom(tcellScreen, t)
}

// NewScreenFrom wraps an existing tcell screen, initializing it.
// Tests pass a tcell.SimulationScreen here.
func NewScreenFrom(tcellScreen tcell.Screen, t *theme.Theme) (*Screen, error) {
	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	if t == nil {
		t = theme.Default()
	}

	width, height := tcellScreen.Size()
	return &Screen{
		tcellScreen: tcellScreen,
		width:       width,
		height:      height,
		Theme:       t,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Clear clears the entire screen
func (s *Screen) Clear() {
	s.tcellScreen.Clear()
}

// SetCell sets a cell at the given position
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws a string at the given position and returns the column after it
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		s.SetCell(x, y, r, style)
		x += RuneWidth(r)
	}
	return x
}

// DrawStringLimited draws a string, truncating it to maxWidth columns
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) int {
	if maxWidth <= 0 {
		return x
	}
	return s.DrawString(x, y, TruncateToWidthWithEllipsis(text, maxWidth), style)
}

// ClearLine fills a row from x to the right edge with blanks
func (s *Screen) ClearLine(x, y int, style tcell.Style) {
	for ; x < s.width; x++ {
		s.SetCell(x, y, ' ', style)
	}
}

// PollEvent polls for the next event (key press, mouse, etc.)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Sync refreshes the size after a resize event
func (s *Screen) Sync() {
	s.tcellScreen.Sync()
	s.Size()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	s.width, s.height = s.tcellScreen.Size()
	return s.width, s.height
}

// GetWidth returns the width of the screen
func (s *Screen) GetWidth() int {
	s.width, _ = s.tcellScreen.Size()
	return s.width
}

// GetHeight returns the height of the screen
func (s *Screen) GetHeight() int {
	_, s.height = s.tcellScreen.Size()
	return s.height
}

// EnableMouse enables mouse support on the screen
func (s *Screen) EnableMouse() {
	s.tcellScreen.EnableMouse()
}

// Theme-aware style methods

// TreeNormalStyle returns the style for property labels
func (s *Screen) TreeNormalStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.TreeNormalText)
}

// TreeSelectedStyle returns the style for the row under the cursor
func (s *Screen) TreeSelectedStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.TreeSelectedItem).Bold(true).Reverse(true)
}

// ArrowStyle returns the style for a section's expand arrow
func (s *Screen) ArrowStyle(expanded bool) tcell.Style {
	if expanded {
		return theme.ColorToStyle(s.Theme.Colors.TreeExpandedArrow)
	}
	return theme.ColorToStyle(s.Theme.Colors.TreeCollapsedArrow)
}

// GroupHeaderStyle returns the style for schema group titles
func (s *Screen) GroupHeaderStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.GroupHeader).Bold(true)
}

// CheckboxStyle returns the style for a checkbox in the given state
func (s *Screen) CheckboxStyle(checked bool) tcell.Style {
	if checked {
		return theme.ColorToStyle(s.Theme.Colors.CheckboxChecked)
	}
	return theme.ColorToStyle(s.Theme.Colors.CheckboxUnchecked)
}

// PlaceholderStyle returns the style for a new property input row
func (s *Screen) PlaceholderStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.Placeholder)
}

// SentinelStyle returns the style for the trailing "add new property" row
func (s *Screen) SentinelStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.Sentinel).Italic(true)
}

// ControlStyle returns the style for the select-all and expand-all controls
func (s *Screen) ControlStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.ControlButton).Bold(true)
}

// EditorStyle returns the style for editor text
func (s *Screen) EditorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.EditorText)
}

// EditorCursorStyle returns the style for editor cursor
func (s *Screen) EditorCursorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.EditorCursor).Reverse(true)
}

// CommandPromptStyle returns the style for command prompt
func (s *Screen) CommandPromptStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.CommandPrompt)
}

// CommandTextStyle returns the style for command text
func (s *Screen) CommandTextStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.CommandText)
}

// CommandCursorStyle returns the style for command cursor
func (s *Screen) CommandCursorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.CommandCursor).Reverse(true)
}

// HelpStyle returns the style for help background
func (s *Screen) HelpStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpContent, s.Theme.Colors.HelpBackground)
}

// HelpBorderStyle returns the style for help borders
func (s *Screen) HelpBorderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpBorder, s.Theme.Colors.HelpBackground)
}

// HelpTitleStyle returns the style for help title
func (s *Screen) HelpTitleStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpTitle, s.Theme.Colors.HelpBackground).Bold(true)
}

// StatusModeStyle returns the style for mode indicator
func (s *Screen) StatusModeStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusMode).Bold(true)
}

// StatusMessageStyle returns the style for status messages
func (s *Screen) StatusMessageStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusMessage)
}

// StatusModifiedStyle returns the style for modified indicator
func (s *Screen) StatusModifiedStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusModified)
}

// StatusErrorStyle returns the style for error messages
func (s *Screen) StatusErrorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusError).Bold(true)
}

// HeaderStyle returns the style for header title
func (s *Screen) HeaderStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.HeaderTitle).Bold(true)
}
