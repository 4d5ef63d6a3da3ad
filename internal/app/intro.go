package app

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/reflect/internal/styles"
)

const introText = "Reflect"

// IntroModel animates the header logo sliding in on startup.
type IntroModel struct {
	Active  bool
	Elapsed time.Duration
	Letters []*IntroLetter
	Done    bool // set once every letter has settled
}

type IntroLetter struct {
	Char     rune
	TargetX  float64
	CurrentX float64

	// Letters fly past their slot, then ease back.
	ReachedTarget bool
	OvershootMax  float64

	StartColor   styles.RGB
	EndColor     styles.RGB
	CurrentColor styles.RGB

	Delay time.Duration
}

func toColor(c styles.RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", int(c.R), int(c.G), int(c.B)))
}

// NewIntroModel lays the letters out off screen. They settle on a
// gradient from the theme's primary to its secondary color.
func NewIntroModel() IntroModel {
	letters := make([]*IntroLetter, 0, len(introText))

	from := styles.ParseHex(string(styles.Primary))
	to := styles.ParseHex(string(styles.Secondary))
	starts := []lipgloss.Color{styles.Error, styles.Info, styles.Success, styles.Accent, styles.Warning}

	n := len(introText)
	for i, char := range introText {
		t := float64(i) / float64(n-1)
		end := styles.RGB{
			R: from.R + t*(to.R-from.R),
			G: from.G + t*(to.G-from.G),
			B: from.B + t*(to.B-from.B),
		}
		start := styles.ParseHex(string(starts[i%len(starts)]))

		letters = append(letters, &IntroLetter{
			Char:         char,
			CurrentX:     -20.0 - float64(i)*10.0,
			TargetX:      float64(i),
			OvershootMax: float64(i) + 0.5 + float64(i)*0.1,
			StartColor:   start,
			EndColor:     end,
			CurrentColor: start,
			Delay:        time.Duration(i) * 120 * time.Millisecond,
		})
	}

	return IntroModel{
		Active:  true,
		Letters: letters,
	}
}

// Update advances the animation by dt.
func (m *IntroModel) Update(dt time.Duration) {
	if !m.Active || m.Done {
		return
	}
	m.Elapsed += dt

	allSettled := true
	for _, l := range m.Letters {
		if m.Elapsed < l.Delay {
			allSettled = false
			continue
		}

		var target, speed float64
		if !l.ReachedTarget {
			target = l.OvershootMax
			speed = 30.0
			if l.CurrentX >= l.OvershootMax-0.1 {
				l.ReachedTarget = true
			}
		} else {
			target = l.TargetX
			speed = 5.0
		}

		dist := target - l.CurrentX
		move := dist * 6.0 * dt.Seconds()
		if math.Abs(move) > math.Abs(dist) {
			move = dist
		}
		minMove := speed * dt.Seconds()
		if math.Abs(dist) > 0.1 && math.Abs(move) < minMove {
			move = math.Copysign(math.Min(minMove, math.Abs(dist)), dist)
		}
		l.CurrentX += move

		k := math.Min(1, 3.0*dt.Seconds())
		l.CurrentColor.R += (l.EndColor.R - l.CurrentColor.R) * k
		l.CurrentColor.G += (l.EndColor.G - l.CurrentColor.G) * k
		l.CurrentColor.B += (l.EndColor.B - l.CurrentColor.B) * k

		if !l.settled() {
			allSettled = false
		}
	}

	if allSettled {
		m.finish()
	}
}

func (l *IntroLetter) settled() bool {
	return l.ReachedTarget &&
		math.Abs(l.TargetX-l.CurrentX) < 0.1 &&
		math.Abs(l.EndColor.R-l.CurrentColor.R) < 1.0 &&
		math.Abs(l.EndColor.G-l.CurrentColor.G) < 1.0 &&
		math.Abs(l.EndColor.B-l.CurrentColor.B) < 1.0
}

// Skip jumps to the final frame.
func (m *IntroModel) Skip() {
	if m.Active && !m.Done {
		m.finish()
	}
}

func (m *IntroModel) finish() {
	for _, l := range m.Letters {
		l.ReachedTarget = true
		l.CurrentX = l.TargetX
		l.CurrentColor = l.EndColor
	}
	m.Done = true
}

func (m IntroModel) View() string {
	if !m.Active {
		return ""
	}

	// Letters left of slot 0 are still off screen.
	buf := make([]string, len(m.Letters))
	for i := range buf {
		buf[i] = " "
	}
	for _, l := range m.Letters {
		x := int(math.Round(l.CurrentX))
		if x >= 0 && x < len(buf) {
			style := lipgloss.NewStyle().Foreground(toColor(l.CurrentColor)).Bold(true)
			buf[x] = style.Render(string(l.Char))
		}
	}
	return strings.Join(buf, "")
}

// IntroTickMsg is sent to update the animation frame.
type IntroTickMsg time.Time

func IntroTick() tea.Cmd {
	return tea.Tick(time.Millisecond*16, func(t time.Time) tea.Msg {
		return IntroTickMsg(t)
	})
}
