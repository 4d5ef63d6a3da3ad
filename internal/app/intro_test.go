package app

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

func TestIntroModel_Update(t *testing.T) {
	m := NewIntroModel()
	if !m.Active {
		t.Fatal("NewIntroModel should be active")
	}
	if len(m.Letters) != len(introText) {
		t.Fatalf("got %d letters, want %d", len(m.Letters), len(introText))
	}

	const dt = 16 * time.Millisecond
	for i := 0; !m.Done; i++ {
		if i > 1000 {
			t.Fatal("intro animation never settled")
		}
		m.Update(dt)
	}

	for i, l := range m.Letters {
		if math.Abs(l.CurrentX-l.TargetX) > 0.5 {
			t.Errorf("letter %d at %f, want %f", i, l.CurrentX, l.TargetX)
		}
	}
	if got := ansi.Strip(m.View()); got != introText {
		t.Errorf("final frame = %q, want %q", got, introText)
	}
}

func TestIntroModel_FirstFrameHidden(t *testing.T) {
	m := NewIntroModel()
	if got := ansi.Strip(m.View()); strings.TrimSpace(got) != "" {
		t.Errorf("first frame = %q, want blank", got)
	}
}

func TestIntroModel_Skip(t *testing.T) {
	m := NewIntroModel()
	m.Update(16 * time.Millisecond)
	m.Skip()
	if !m.Done {
		t.Fatal("Skip should finish the animation")
	}
	if got := ansi.Strip(m.View()); got != introText {
		t.Errorf("frame after Skip = %q, want %q", got, introText)
	}

	before := m.Letters[0].CurrentX
	m.Update(time.Second)
	if m.Letters[0].CurrentX != before {
		t.Error("Update after Done should not move letters")
	}
}
