package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestSplashScreenVisibility(t *testing.T) {
	splash := NewSplashScreen("")
	assert.False(t, splash.IsVisible())

	splash.Show()
	assert.True(t, splash.IsVisible())

	splash.Hide()
	assert.False(t, splash.IsVisible())
}

func TestSplashScreenContent(t *testing.T) {
	content := strings.Join(NewSplashScreen("").GetContent(), "\n")
	assert.Contains(t, content, "Template Generator")
	assert.Contains(t, content, "This form has no schemas yet.")
	assert.Contains(t, content, "tgen load -o form.json")

	content = strings.Join(NewSplashScreen("empty.json").GetContent(), "\n")
	assert.Contains(t, content, "empty.json has no schemas yet.")
}

func TestSplashScreenCommandsAligned(t *testing.T) {
	var columns []int
	for _, line := range NewSplashScreen("").GetContent() {
		if i := strings.Index(line, "  Quit"); i >= 0 {
			columns = append(columns, i)
		}
		if i := strings.Index(line, "  Fetch the latest schemas"); i >= 0 {
			columns = append(columns, i)
		}
	}
	if assert.Len(t, columns, 2) {
		assert.Equal(t, columns[0], columns[1])
	}
}

func TestSplashScreenRender(t *testing.T) {
	screen, sim := newSimScreen(t, 80, 24)
	splash := NewSplashScreen("form.json")
	splash.Render(screen)
	screen.Show()
	assert.NotContains(t, screenText(sim, 24), "Template Generator")

	splash.Show()
	splash.Render(screen)
	screen.Show()
	assert.Contains(t, screenText(sim, 24), "form.json has no schemas yet.")
}

func screenText(sim tcell.SimulationScreen, height int) string {
	lines := make([]string, height)
	for y := range lines {
		lines[y] = screenLine(sim, y)
	}
	return strings.Join(lines, "\n")
}
