package registry

import (
	"testing"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

type stubGame struct {
	id  string
	svc core.Services
}

func (s *stubGame) ID() string { return s.id }
func (s *stubGame) Title() string { return "Stub" }
func (s *stubGame) Attach(svc core.Services) { s.svc = svc }
func (s *stubGame) Reset(core.RuntimeConfig) {}
func (s *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (s *stubGame) Render(*core.Screen) {}
func (s *stubGame) State() core.GameState { return core.GameState{} }

func TestCreateAttachesServices(t *testing.T) {
	Register("stub_create", func() Game { return &stubGame{id: "stub_create"} })

	if !Exists("stub_create") {
		t.Fatal("Registered game should exist")
	}

	sound := core.NopSound{}
	g, err := Create("stub_create", core.Services{Sound: sound})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if g.ID() != "stub_create" {
		t.Errorf("ID() = %q, expected stub_create", g.ID())
	}
	if g.(*stubGame).svc.Sound != sound {
		t.Error("Create should attach the services")
	}

	other, _ := Create("stub_create", core.Services{})
	if other == g {
		t.Error("Each Create should build a new session")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("does_not_exist", core.Services{}); err == nil {
		t.Error("Create should fail for an unknown id")
	}
	if Exists("does_not_exist") {
		t.Error("Unknown id should not exist")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("Registering the same id twice should panic")
		}
	}()
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })
}
