package theme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// HexToColor converts a hex color string (#RRGGBB or #RGB) to tcell.Color.
// Malformed input gives tcell.ColorDefault.
func HexToColor(hexColor string) tcell.Color {
	c, err := parseHex(hexColor)
	if err != nil {
		return tcell.ColorDefault
	}
	return c
}

func parseHex(hexColor string) (tcell.Color, error) {
	hex := strings.TrimPrefix(hexColor, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %q", hexColor)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %q: %w", hexColor, err)
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}

// ParseColor reads #RRGGBB, #RGB, rgb(r,g,b), a terminal color name such
// as "red", or "default"
func ParseColor(value string) (tcell.Color, error) {
	value = strings.TrimSpace(value)

	switch {
	case strings.HasPrefix(value, "#"):
		return parseHex(value)
	case strings.HasPrefix(value, "rgb(") && strings.HasSuffix(value, ")"):
		return parseRGB(value)
	case strings.EqualFold(value, "default"):
		return tcell.ColorDefault, nil
	}

	if c, ok := tcell.ColorNames[strings.ToLower(value)]; ok {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("unknown color %q", value)
}

func parseRGB(value string) (tcell.Color, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(value, "rgb("), ")")
	parts := strings.Split(inner, ",")
	if len(parts) != 3 {
		return tcell.ColorDefault, fmt.Errorf("invalid rgb color %q", value)
	}

	var rgb [3]int32
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 255 {
			return tcell.ColorDefault, fmt.Errorf("invalid rgb color %q", value)
		}
		rgb[i] = int32(n)
	}
	return tcell.NewRGBColor(rgb[0], rgb[1], rgb[2]), nil
}

// ColorToStyle creates a style with a specific foreground color
func ColorToStyle(fgColor tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fgColor)
}

// ColorPairToStyle creates a style with specific foreground and background colors
func ColorPairToStyle(fgColor, bgColor tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fgColor).Background(bgColor)
}
