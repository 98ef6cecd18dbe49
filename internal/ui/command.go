package ui

import (
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pstuifzand/tui-templategen/internal/history"
)

// CommandMode manages command line input (`:command`)
type CommandMode struct {
	active  bool
	editor  lineEditor
	history *History

	completions []string
}

// NewCommandMode creates a new CommandMode without history persistence
func NewCommandMode() *CommandMode {
	return &CommandMode{history: NewHistory(50)}
}

// NewCommandModeWithHistory creates a new CommandMode with history persistence.
// A history file that fails to load leaves the command line with empty history.
func NewCommandModeWithHistory(manager *history.Manager) *CommandMode {
	h, err := NewHistoryWithManager(50, manager, history.CommandsFile)
	if err != nil {
		h = NewHistory(50)
	}

	return &CommandMode{history: h}
}

// Start enters command mode
func (c *CommandMode) Start() {
	c.active = true
	c.editor.set("")
	c.history.Reset()
}

// Stop exits command mode
func (c *CommandMode) Stop() {
	c.active = false
}

// IsActive returns whether command mode is active
func (c *CommandMode) IsActive() bool {
	return c.active
}

// HandleKey processes a key press in command mode. done is true when the
// command line closed, with the entered command or "" when cancelled.
func (c *CommandMode) HandleKey(ev *tcell.EventKey) (command string, done bool) {
	switch ev.Key() {
	case tcell.KeyTab:
		c.completeWord()
	case tcell.KeyEscape:
		c.Stop()
		return "", true
	case tcell.KeyEnter:
		cmd := strings.TrimSpace(c.editor.text)
		_ = c.history.Add(cmd)
		c.Stop()
		return cmd, true
	case tcell.KeyUp:
		if prevCmd, ok := c.history.Previous(c.editor.text); ok {
			c.editor.set(prevCmd)
		}
	case tcell.KeyDown:
		if nextCmd, ok := c.history.Next(); ok {
			c.editor.set(nextCmd)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if c.editor.text == "" {
			c.Stop()
			return "", true
		}
		c.editor.handleKey(ev)
	default:
		c.editor.handleKey(ev)
	}

	return "", false
}

// SetCompletions sets the words Tab completes the last argument from,
// typically the schema ids of the open form
func (c *CommandMode) SetCompletions(words []string) {
	c.completions = words
}

// completeWord replaces the word before the cursor with the best matching
// completion. Prefix matches win over fuzzy ones.
func (c *CommandMode) completeWord() {
	input, cursor := c.editor.text, c.editor.cursor
	start := strings.LastIndexAny(input[:cursor], " \t") + 1
	word := input[start:cursor]
	if word == "" {
		return
	}

	match := ""
	for _, candidate := range c.completions {
		if strings.HasPrefix(candidate, word) {
			match = candidate
			break
		}
	}
	if match == "" {
		ranks := fuzzy.RankFindFold(word, c.completions)
		if len(ranks) == 0 {
			return
		}
		sort.Sort(ranks)
		match = ranks[0].Target
	}

	c.editor.text = input[:start] + match + input[cursor:]
	c.editor.cursor = start + len(match)
}

// GetInput returns the current command input
func (c *CommandMode) GetInput() string {
	return strings.TrimSpace(c.editor.text)
}

// Render renders the command line
func (c *CommandMode) Render(screen *Screen, y int) {
	if !c.active {
		return
	}

	textStyle := screen.CommandTextStyle()
	screenWidth := screen.GetWidth()

	x := screen.DrawString(0, y, ":", screen.CommandPromptStyle())
	x = c.editor.render(screen, x, y, screenWidth-x, textStyle, screen.CommandCursorStyle())

	for ; x < screenWidth; x++ {
		screen.SetCell(x, y, ' ', textStyle)
	}
}
