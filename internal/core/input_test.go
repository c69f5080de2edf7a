package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionDrop)
	f.Set(ActionDrop)
	f.Set(ActionNone)
	if !f.Has(ActionDrop) {
		t.Error("Drop should be set")
	}
	if f.Has(ActionPause) || f.Has(ActionNone) {
		t.Error("only Drop should be set")
	}

	f.Set(ActionPause)
	f.Clear()
	if !f.Empty() || f.Has(ActionDrop) {
		t.Error("Clear should drop every action")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:    "None",
		ActionDrop:    "Drop",
		ActionQuit:    "Quit",
		actionCount:   "Unknown",
		Action(200):   "Unknown",
		ActionRestart: "Restart",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, expected %q", a, got, want)
		}
	}
}

func TestColorString(t *testing.T) {
	if ColorGold.String() != "gold" || ColorBrown.String() != "brown" {
		t.Errorf("unexpected names %q %q", ColorGold, ColorBrown)
	}
	if Color(250).String() != "unknown" {
		t.Error("out of range color should be unknown")
	}
}
