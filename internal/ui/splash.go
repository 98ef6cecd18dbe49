package ui

import "fmt"

type splashCommand struct {
	usage string
	what  string
}

var splashCommands = []splashCommand{
	{"tgen load -o form.json", "Fetch the latest schemas"},
	{"tgen load --dir <path>", "Read schemas from a directory"},
	{":import <file>", "Apply a checklist or column list"},
	{":restore", "Restore the newest backup"},
	{":q", "Quit"},
}

// SplashScreen is shown instead of the form while it has no schemas
type SplashScreen struct {
	visible  bool
	formPath string
}

// NewSplashScreen creates a hidden splash screen for the form file at formPath
func NewSplashScreen(formPath string) *SplashScreen {
	return &SplashScreen{formPath: formPath}
}

func (s *SplashScreen) Show()           { s.visible = true }
func (s *SplashScreen) Hide()           { s.visible = false }
func (s *SplashScreen) IsVisible() bool { return s.visible }

// GetContent returns the splash lines. The command list is aligned on the
// longest usage.
func (s *SplashScreen) GetContent() []string {
	usageWidth := 0
	for _, c := range splashCommands {
		usageWidth = max(usageWidth, StringWidth(c.usage))
	}

	lines := []string{
		"~~ Template Generator ~~",
		"",
		"Pick metadata schema properties",
		"and write a spreadsheet template",
		"",
	}
	if s.formPath != "" {
		lines = append(lines, fmt.Sprintf("%s has no schemas yet.", s.formPath))
	} else {
		lines = append(lines, "This form has no schemas yet.")
	}
	lines = append(lines, "", "Commands:")
	for _, c := range splashCommands {
		lines = append(lines, "  "+PadStringToWidth(c.usage, usageWidth)+"  "+c.what)
	}
	return lines
}

// Render draws the content as a block centered on the screen
func (s *SplashScreen) Render(screen *Screen) {
	if !s.visible {
		return
	}

	width, height := screen.GetWidth(), screen.GetHeight()
	for y := 0; y < height; y++ {
		screen.ClearLine(0, y, screen.TreeNormalStyle())
	}

	content := s.GetContent()
	blockWidth := 0
	for _, line := range content {
		blockWidth = max(blockWidth, StringWidth(line))
	}
	startX := max(0, (width-blockWidth)/2)
	startY := max(0, (height-len(content))/2)

	style := screen.HeaderStyle()
	for i, line := range content {
		y := startY + i
		if y >= height {
			break
		}
		if line == "Commands:" {
			style = screen.StatusMessageStyle()
		}
		screen.DrawStringLimited(startX, y, line, width-startX, style)
	}
}
