package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	// Form view colors
	TreeNormalText     tcell.Color
	TreeSelectedItem   tcell.Color
	TreeExpandedArrow  tcell.Color
	TreeCollapsedArrow tcell.Color
	GroupHeader        tcell.Color
	CheckboxChecked    tcell.Color
	CheckboxUnchecked  tcell.Color
	Placeholder        tcell.Color
	Sentinel           tcell.Color
	ControlButton      tcell.Color

	// Property input colors
	EditorText   tcell.Color
	EditorCursor tcell.Color

	// Command line colors
	CommandPrompt tcell.Color
	CommandText   tcell.Color
	CommandCursor tcell.Color

	// Help overlay colors
	HelpBackground tcell.Color
	HelpBorder     tcell.Color
	HelpTitle      tcell.Color
	HelpContent    tcell.Color

	// Status line colors
	StatusMode     tcell.Color
	StatusMessage  tcell.Color
	StatusModified tcell.Color
	StatusError    tcell.Color

	HeaderTitle tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// Default returns a default theme using terminal defaults
func Default() *Theme {
	d := tcell.ColorDefault
	return &Theme{
		Name: "default",
		Colors: Colors{
			TreeNormalText:     d,
			TreeSelectedItem:   d,
			TreeExpandedArrow:  d,
			TreeCollapsedArrow: d,
			GroupHeader:        d,
			CheckboxChecked:    d,
			CheckboxUnchecked:  d,
			Placeholder:        d,
			Sentinel:           d,
			ControlButton:      d,
			EditorText:         d,
			EditorCursor:       d,
			CommandPrompt:      d,
			CommandText:        d,
			CommandCursor:      d,
			HelpBackground:     d,
			HelpBorder:         d,
			HelpTitle:          d,
			HelpContent:        d,
			StatusMode:         d,
			StatusMessage:      d,
			StatusModified:     d,
			StatusError:        d,
			HeaderTitle:        d,
		},
	}
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	return &Theme{
		Name: "tokyo-night",
		Colors: Colors{
			TreeNormalText:     HexToColor("#c0caf5"), // Light gray-blue
			TreeSelectedItem:   HexToColor("#7aa2f7"), // Blue
			TreeExpandedArrow:  HexToColor("#7dcfff"), // Cyan
			TreeCollapsedArrow: HexToColor("#7dcfff"),
			GroupHeader:        HexToColor("#bb9af7"), // Magenta
			CheckboxChecked:    HexToColor("#9ece6a"), // Green
			CheckboxUnchecked:  HexToColor("#565f89"), // Comment gray
			Placeholder:        HexToColor("#e0af68"), // Yellow
			Sentinel:           HexToColor("#565f89"),
			ControlButton:      HexToColor("#7dcfff"),
			EditorText:         HexToColor("#c0caf5"),
			EditorCursor:       HexToColor("#7aa2f7"),
			CommandPrompt:      HexToColor("#bb9af7"),
			CommandText:        HexToColor("#c0caf5"),
			CommandCursor:      HexToColor("#7aa2f7"),
			HelpBackground:     HexToColor("#1a1b26"), // Dark background
			HelpBorder:         HexToColor("#7dcfff"),
			HelpTitle:          HexToColor("#bb9af7"),
			HelpContent:        HexToColor("#c0caf5"),
			StatusMode:         HexToColor("#bb9af7"),
			StatusMessage:      HexToColor("#9ece6a"),
			StatusModified:     HexToColor("#f7768e"), // Red
			StatusError:        HexToColor("#f7768e"),
			HeaderTitle:        HexToColor("#bb9af7"),
		},
	}
}
