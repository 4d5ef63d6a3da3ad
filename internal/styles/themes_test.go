package styles

import (
	"math"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestIsValidHexColor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		// Valid 6-char hex colors
		{"valid uppercase", "#FF5500", true},
		{"valid lowercase", "#aabbcc", true},
		{"valid mixed case", "#AbCdEf", true},
		{"valid all zeros", "#000000", true},
		{"valid all Fs", "#FFFFFF", true},

		// Valid 8-char hex colors with alpha
		{"valid with alpha 80", "#00000080", true},
		{"valid with alpha FF", "#FF5500FF", true},
		{"valid with alpha 00", "#aabbcc00", true},

		// Invalid formats - wrong length
		{"invalid 3-char", "#FFF", false},
		{"invalid 4-char", "#FFFF", false},
		{"invalid 5-char", "#FF550", false},
		{"invalid 7-char", "#FF55001", false},
		{"invalid 9-char", "#FF5500801", false},

		// Invalid formats - no hash
		{"no hash 6-char", "FF5500", false},
		{"no hash 8-char", "FF550080", false},

		// Invalid formats - invalid characters
		{"invalid char G", "#GGGGGG", false},
		{"invalid char Z", "#ZZZZZZ", false},
		{"invalid char space", "#FF 550", false},
		{"invalid char dash", "#FF-550", false},

		// Edge cases
		{"empty string", "", false},
		{"just hash", "#", false},
		{"very long", "#FF5500FF5500FF5500", false},
		{"hash only no digits", "#XXXXXX", false},

		// Boundary cases
		{"exactly 6 hex digits", "#123456", true},
		{"exactly 8 hex digits", "#12345678", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsValidHexColor(tt.input)
			if got != tt.valid {
				t.Errorf("IsValidHexColor(%q) = %v, want %v", tt.input, got, tt.valid)
			}
		})
	}
}

func TestBuiltinThemes(t *testing.T) {
	want := []string{"dark", "dracula", "light", "nord", "sepia"}
	got := ListThemes()
	if len(got) != len(want) {
		t.Fatalf("ListThemes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ListThemes()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestThemeColorsAreValid(t *testing.T) {
	for _, name := range ListThemes() {
		c := GetTheme(name).Colors
		colors := map[string]string{
			"primary": c.Primary, "secondary": c.Secondary, "accent": c.Accent,
			"success": c.Success, "warning": c.Warning, "error": c.Error, "info": c.Info,
			"textPrimary": c.TextPrimary, "textMuted": c.TextMuted,
			"bgPrimary": c.BgPrimary, "bgSecondary": c.BgSecondary, "bgTertiary": c.BgTertiary,
			"borderNormal": c.BorderNormal, "borderActive": c.BorderActive, "link": c.Link,
		}
		for key, v := range colors {
			if !IsValidHexColor(v) {
				t.Errorf("%s.%s = %q is not a hex color", name, key, v)
			}
		}
		if c.SyntaxTheme == "" || c.MarkdownTheme == "" {
			t.Errorf("%s: missing syntax or markdown theme", name)
		}
	}
}

func TestThemeTextContrast(t *testing.T) {
	for _, name := range ListThemes() {
		c := GetTheme(name).Colors
		bgs := []RGB{ParseHex(c.BgPrimary), ParseHex(c.BgSecondary)}
		if r := minContrastRatio(ParseHex(c.TextPrimary), bgs); r < 4.5 {
			t.Errorf("%s: text contrast %.2f below 4.5", name, r)
		}
	}
}

func TestGetTheme_UnknownFallsBack(t *testing.T) {
	if got := GetTheme("neon").Name; got != DefaultThemeName {
		t.Errorf("GetTheme(neon) = %q, want %q", got, DefaultThemeName)
	}
}

func TestApplyThemeWithOverrides(t *testing.T) {
	defer ApplyTheme(DefaultThemeName)

	ApplyThemeWithOverrides("nord", map[string]string{
		"primary":     "#123456",
		"error":       "not-a-color",
		"syntaxTheme": "github",
	})

	if GetCurrentThemeName() != "nord" {
		t.Errorf("current theme = %q, want nord", GetCurrentThemeName())
	}
	if Primary != "#123456" {
		t.Errorf("Primary = %q, want override", Primary)
	}
	if Error != lipgloss.Color(NordTheme.Colors.Error) {
		t.Errorf("invalid override should be ignored, Error = %q", Error)
	}
	if GetSyntaxTheme() != "github" {
		t.Errorf("syntax theme = %q, want github", GetSyntaxTheme())
	}
	// The registry copy is untouched.
	if GetTheme("nord").Colors.Primary != NordTheme.Colors.Primary {
		t.Error("override leaked into registry")
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"#FF8000", RGB{255, 128, 0}},
		{"#00000080", RGB{0, 0, 0}},
		{"bogus", RGB{}},
	}
	for _, tt := range tests {
		if got := ParseHex(tt.in); got != tt.want {
			t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestContrastText(t *testing.T) {
	if got := ContrastText("#FFFFFF"); got != "#000000" {
		t.Errorf("ContrastText(white) = %q", got)
	}
	if got := ContrastText("#111827"); got != "#FFFFFF" {
		t.Errorf("ContrastText(dark) = %q", got)
	}
}

func minContrastRatio(fg RGB, bgs []RGB) float64 {
	if len(bgs) == 0 {
		return contrastRatio(fg, RGB{0, 0, 0})
	}
	minRatio := math.MaxFloat64
	for _, bg := range bgs {
		if ratio := contrastRatio(fg, bg); ratio < minRatio {
			minRatio = ratio
		}
	}
	return minRatio
}
