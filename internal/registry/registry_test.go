package registry

import (
	"testing"

	"github.com/vovakirdan/tower-blocks/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string                           { return g.id }
func (g stubGame) Title() string                        { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig)             {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen)                  {}
func (g stubGame) State() core.GameState                { return core.GameState{} }

func stub(id string) Factory {
	return func() Game { return stubGame{id: id} }
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub_b", stub("zz_stub_b"))
	Register("zz_stub_a", stub("zz_stub_a"))

	if !Exists("zz_stub_a") || Exists("zz_missing") {
		t.Fatal("Exists returned unexpected values")
	}

	g, err := Create("zz_stub_a")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "zz_stub_a" {
		t.Errorf("Create built %q", g.ID())
	}

	if _, err := Create("zz_missing"); err == nil {
		t.Error("Create of an unknown id should fail")
	}

	var ids []string
	for _, info := range List() {
		if info.ID == "zz_stub_a" && info.Title != "Stub zz_stub_a" {
			t.Errorf("title = %q", info.Title)
		}
		ids = append(ids, info.ID)
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Errorf("List not sorted: %v", ids)
		}
	}
}

func TestRegisterRejectsBadInput(t *testing.T) {
	Register("zz_stub_dup", stub("zz_stub_dup"))

	expectPanic(t, "duplicate", func() { Register("zz_stub_dup", stub("zz_stub_dup")) })
	expectPanic(t, "mismatched id", func() { Register("zz_stub_x", stub("zz_stub_y")) })
	expectPanic(t, "empty id", func() { Register("", stub("")) })
	expectPanic(t, "nil factory", func() { Register("zz_stub_nil", nil) })

	if Exists("zz_stub_x") {
		t.Error("a rejected registration must not be stored")
	}
}
