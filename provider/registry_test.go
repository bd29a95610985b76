package provider

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

type fakeModel struct {
	name      string
	available bool
}

func (f *fakeModel) Name() string                       { return f.name }
func (f *fakeModel) IsAvailable(_ context.Context) bool { return f.available }

func TestRegistryCreate(t *testing.T) {
	reg := NewRegistry[*fakeModel]()
	reg.RegisterFactory("sensevoice", func(cfg map[string]any) (*fakeModel, error) {
		return &fakeModel{name: "sensevoice", available: true}, nil
	})

	m, err := reg.Create("sensevoice", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name() != "sensevoice" {
		t.Errorf("expected name sensevoice, got %q", m.Name())
	}
}

func TestRegistryCreateMemoizes(t *testing.T) {
	builds := 0
	reg := NewRegistry[*fakeModel]()
	reg.RegisterFactory("sensevoice", func(cfg map[string]any) (*fakeModel, error) {
		builds++
		return &fakeModel{name: "sensevoice"}, nil
	})

	first, err := reg.Create("sensevoice", nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := reg.Create("sensevoice", nil)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("expected the same instance on repeated create")
	}
	if builds != 1 {
		t.Errorf("expected factory to run once, ran %d times", builds)
	}
}

func TestRegistryCreateUnknownListsNames(t *testing.T) {
	reg := NewRegistry[*fakeModel]()
	reg.RegisterFactory("sensevoice", func(cfg map[string]any) (*fakeModel, error) {
		return &fakeModel{name: "sensevoice"}, nil
	})

	_, err := reg.Create("whisper", nil)
	if err == nil {
		t.Fatal("expected error for unregistered backend")
	}
	if !strings.Contains(err.Error(), "sensevoice") {
		t.Errorf("expected registered names in error, got %q", err.Error())
	}
}

func TestRegistryCreateFactoryError(t *testing.T) {
	reg := NewRegistry[*fakeModel]()
	reg.RegisterFactory("broken", func(cfg map[string]any) (*fakeModel, error) {
		return nil, fmt.Errorf("bad config")
	})
	if _, err := reg.Create("broken", nil); err == nil {
		t.Fatal("expected factory error to propagate")
	}
	// A failed build is not cached.
	if _, ok := reg.Get("broken"); ok {
		t.Error("expected no cached instance after factory failure")
	}
}

func TestRegistryGet(t *testing.T) {
	reg := NewRegistry[*fakeModel]()
	reg.RegisterFactory("sensevoice", func(cfg map[string]any) (*fakeModel, error) {
		return &fakeModel{name: "sensevoice"}, nil
	})

	if _, ok := reg.Get("sensevoice"); ok {
		t.Fatal("expected no instance before first create")
	}
	if _, err := reg.Create("sensevoice", nil); err != nil {
		t.Fatal(err)
	}
	m, ok := reg.Get("sensevoice")
	if !ok {
		t.Fatal("expected cached instance after create")
	}
	if m.Name() != "sensevoice" {
		t.Errorf("expected name sensevoice, got %q", m.Name())
	}
}

func TestRegistryNames(t *testing.T) {
	reg := NewRegistry[*fakeModel]()
	reg.RegisterFactory("whisper", func(cfg map[string]any) (*fakeModel, error) { return nil, nil })
	reg.RegisterFactory("sensevoice", func(cfg map[string]any) (*fakeModel, error) { return nil, nil })

	names := reg.Names()
	if len(names) != 2 || names[0] != "sensevoice" || names[1] != "whisper" {
		t.Errorf("expected sorted [sensevoice whisper], got %v", names)
	}
}
