package ui

import (
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pstuifzand/tui-templategen/internal/model"
)

// InputResult tells the caller what a key press did to the input
type InputResult int

const (
	InputContinue InputResult = iota // Key consumed, keep editing
	InputCommit                      // Enter pressed
	InputCancel                      // Escape pressed
)

// PropertyInput edits the name typed into a placeholder row
type PropertyInput struct {
	entry      *model.Entry
	editor     lineEditor
	active     bool
	candidates []string

	// Completion cycling state
	matches  []string
	matchIdx int
}

// NewPropertyInput creates an input completing from candidates
func NewPropertyInput(candidates []string) *PropertyInput {
	return &PropertyInput{candidates: candidates}
}

// SetCandidates replaces the completion candidates
func (p *PropertyInput) SetCandidates(candidates []string) {
	p.candidates = candidates
}

// Start starts editing a placeholder row
func (p *PropertyInput) Start(entry *model.Entry) {
	p.entry = entry
	p.editor.set(entry.Text)
	p.active = true
	p.resetCompletion()
}

// Stop stops editing and writes the text back to the placeholder
func (p *PropertyInput) Stop() string {
	p.active = false
	if p.entry != nil {
		p.entry.Text = p.editor.text
	}
	return p.editor.text
}

// Cancel stops editing without touching the placeholder
func (p *PropertyInput) Cancel() {
	p.active = false
	p.resetCompletion()
}

// IsActive returns whether the input is active
func (p *PropertyInput) IsActive() bool {
	return p.active
}

// Entry returns the placeholder being edited
func (p *PropertyInput) Entry() *model.Entry {
	return p.entry
}

// Text returns the current input
func (p *PropertyInput) Text() string {
	return p.editor.text
}

func (p *PropertyInput) resetCompletion() {
	p.matches = nil
	p.matchIdx = 0
}

// Complete returns the candidates matching text, best match first
func (p *PropertyInput) Complete(text string) []string {
	ranks := fuzzy.RankFindFold(text, p.candidates)
	sort.Sort(ranks)

	result := make([]string, 0, len(ranks))
	for _, r := range ranks {
		result = append(result, r.Target)
	}
	return result
}

// HandleKey handles a key press while editing
func (p *PropertyInput) HandleKey(ev *tcell.EventKey) InputResult {
	if !p.active {
		return InputContinue
	}

	if ev.Key() == tcell.KeyTab {
		p.cycleCompletion()
		return InputContinue
	}
	p.resetCompletion()

	switch ev.Key() {
	case tcell.KeyEscape:
		return InputCancel
	case tcell.KeyEnter:
		return InputCommit
	}
	p.editor.handleKey(ev)
	return InputContinue
}

// cycleCompletion replaces the text with the next fuzzy match
func (p *PropertyInput) cycleCompletion() {
	if p.matches == nil {
		p.matches = p.Complete(p.editor.text)
		p.matchIdx = 0
	} else if len(p.matches) > 0 {
		p.matchIdx = (p.matchIdx + 1) % len(p.matches)
	}
	if len(p.matches) == 0 {
		return
	}
	p.editor.set(p.matches[p.matchIdx])
}

// Render draws the input at x, y within maxWidth columns
func (p *PropertyInput) Render(screen *Screen, x, y int, maxWidth int) {
	p.editor.render(screen, x, y, maxWidth, screen.EditorStyle(), screen.EditorCursorStyle())
}
