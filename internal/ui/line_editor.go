package ui

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// lineEditor is a single line of editable text with a byte-offset cursor,
// shared by the command line and the property input
type lineEditor struct {
	text   string
	cursor int
}

func (e *lineEditor) set(text string) {
	e.text = text
	e.cursor = len(text)
}

func (e *lineEditor) insert(s string) {
	e.text = e.text[:e.cursor] + s + e.text[e.cursor:]
	e.cursor += len(s)
}

// deleteWordBackwards deletes the word before the cursor and the blanks after it
func (e *lineEditor) deleteWordBackwards() {
	pos := e.cursor
	for pos > 0 && (e.text[pos-1] == ' ' || e.text[pos-1] == '\t') {
		pos--
	}
	for pos > 0 && e.text[pos-1] != ' ' && e.text[pos-1] != '\t' {
		pos--
	}
	e.text = e.text[:pos] + e.text[e.cursor:]
	e.cursor = pos
}

// handleKey applies an editing key and reports whether it was one
func (e *lineEditor) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if e.cursor > 0 {
			_, size := utf8.DecodeLastRuneInString(e.text[:e.cursor])
			e.text = e.text[:e.cursor-size] + e.text[e.cursor:]
			e.cursor -= size
		}
	case tcell.KeyDelete:
		if e.cursor < len(e.text) {
			_, size := utf8.DecodeRuneInString(e.text[e.cursor:])
			e.text = e.text[:e.cursor] + e.text[e.cursor+size:]
		}
	case tcell.KeyLeft:
		if e.cursor > 0 {
			_, size := utf8.DecodeLastRuneInString(e.text[:e.cursor])
			e.cursor -= size
		}
	case tcell.KeyRight:
		if e.cursor < len(e.text) {
			_, size := utf8.DecodeRuneInString(e.text[e.cursor:])
			e.cursor += size
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		e.cursor = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		e.cursor = len(e.text)
	case tcell.KeyCtrlU:
		e.text = e.text[e.cursor:]
		e.cursor = 0
	case tcell.KeyCtrlK:
		e.text = e.text[:e.cursor]
	case tcell.KeyCtrlW:
		e.deleteWordBackwards()
	case tcell.KeyRune:
		if r := ev.Rune(); r > 0 {
			e.insert(string(r))
		}
	default:
		return false
	}
	return true
}

// render draws the text from x within maxWidth columns, scrolled so the
// cursor stays visible, and returns the column after the last cell drawn
func (e *lineEditor) render(screen *Screen, x, y, maxWidth int, style, cursorStyle tcell.Style) int {
	text := e.text
	cursor := e.cursor
	for cursor > 0 && StringWidth(text[:cursor]) >= maxWidth {
		_, size := utf8.DecodeRuneInString(text)
		text = text[size:]
		cursor -= size
	}

	col := x
	for i, r := range text {
		if col-x+RuneWidth(r) > maxWidth {
			break
		}
		charStyle := style
		if i == cursor {
			charStyle = cursorStyle
		}
		screen.SetCell(col, y, r, charStyle)
		col += RuneWidth(r)
	}
	if cursor >= len(text) && col-x < maxWidth {
		screen.SetCell(col, y, ' ', cursorStyle)
		col++
	}
	return col
}
