package ui

import "fmt"

// KeyBindingInfo represents a keybinding for display
type KeyBindingInfo interface {
	GetKey() string
	GetDescription() string
}

// HelpScreen manages the help display
type HelpScreen struct {
	visible     bool
	keybindings []KeyBindingInfo
}

// NewHelpScreen creates a new HelpScreen
func NewHelpScreen() *HelpScreen {
	return &HelpScreen{
		keybindings: []KeyBindingInfo{},
	}
}

// SetKeybindings sets the keybindings to display
func (h *HelpScreen) SetKeybindings(keybindings []KeyBindingInfo) {
	h.keybindings = keybindings
}

// Toggle toggles the help screen visibility
func (h *HelpScreen) Toggle() {
	h.visible = !h.visible
}

// Hide hides the help screen
func (h *HelpScreen) Hide() {
	h.visible = false
}

// IsVisible returns whether the help screen is visible
func (h *HelpScreen) IsVisible() bool {
	return h.visible
}

// GetKeybindings returns a formatted list of keybindings
func (h *HelpScreen) GetKeybindings() []string {
	result := []string{"Keybindings:", ""}

	for _, kb := range h.keybindings {
		result = append(result, fmt.Sprintf("  %-6s - %s", kb.GetKey(), kb.GetDescription()))
	}

	result = append(result,
		"",
		"Property input:",
		"  Enter  - Add the property, checked",
		"  Tab    - Complete from previously added names",
		"  Escape - Drop the new row",
		"",
		"Commands:",
		"  :w [file]        - Save the form",
		"  :export [file]   - Write the template YAML",
		"  :markdown [file] - Write a markdown checklist",
		"  :select <schema> / :unselect <schema> / :add <schema>",
		"  :import <file>   - Apply a checklist or column list",
		"  :set [key=value] - Show or set a session setting (:set! saves it)",
		"  :dump            - Write the form state to the log",
		"  :q / :q! / :wq   - Quit",
	)

	return result
}

// Render renders the help screen
func (h *HelpScreen) Render(screen *Screen) {
	if !h.visible {
		return
	}

	contentStyle := screen.HelpStyle()
	borderStyle := screen.HelpBorderStyle()
	titleStyle := screen.HelpTitleStyle()

	for y := 0; y < screen.GetHeight(); y++ {
		screen.ClearLine(0, y, contentStyle)
	}

	startY := 1
	startX := 3
	boxWidth := screen.GetWidth() - 6
	height := screen.GetHeight() - 2
	if boxWidth < 10 || height < 5 {
		return
	}

	hline := func(y int, left, right rune) {
		screen.SetCell(startX, y, left, borderStyle)
		for i := 1; i < boxWidth-1; i++ {
			screen.SetCell(startX+i, y, '─', borderStyle)
		}
		screen.SetCell(startX+boxWidth-1, y, right, borderStyle)
	}
	sides := func(y int) {
		screen.SetCell(startX, y, '│', borderStyle)
		screen.SetCell(startX+boxWidth-1, y, '│', borderStyle)
	}

	hline(startY, '┌', '┐')
	sides(startY + 1)
	screen.DrawStringLimited(startX+2, startY+1, " Keybindings (? to close) ", boxWidth-4, titleStyle)
	hline(startY+2, '├', '┤')

	y := startY + 3
	for _, line := range h.GetKeybindings() {
		if y >= startY+height-1 {
			break
		}
		sides(y)
		screen.DrawStringLimited(startX+2, y, line, boxWidth-4, contentStyle)
		y++
	}

	hline(y, '└', '┘')
}
