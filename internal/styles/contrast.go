package styles

import (
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// RGB is a color in 0-255 channel space.
type RGB struct {
	R, G, B float64
}

// ParseHex converts #RRGGBB (alpha ignored) to RGB. Invalid input yields black.
func ParseHex(hex string) RGB {
	if !IsValidHexColor(hex) {
		return RGB{}
	}
	v, _ := strconv.ParseUint(hex[1:7], 16, 32)
	return RGB{
		R: float64(v >> 16 & 0xFF),
		G: float64(v >> 8 & 0xFF),
		B: float64(v & 0xFF),
	}
}

// ContrastText returns black or white, whichever reads better on bg.
func ContrastText(bg lipgloss.Color) lipgloss.Color {
	c := ParseHex(string(bg))
	if contrastRatio(RGB{0, 0, 0}, c) >= contrastRatio(RGB{255, 255, 255}, c) {
		return lipgloss.Color("#000000")
	}
	return lipgloss.Color("#FFFFFF")
}

func contrastRatio(fg, bg RGB) float64 {
	l1 := relativeLuminance(fg)
	l2 := relativeLuminance(bg)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(c RGB) float64 {
	r := linearize(c.R / 255.0)
	g := linearize(c.G / 255.0)
	b := linearize(c.B / 255.0)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func linearize(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}
