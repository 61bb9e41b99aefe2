package render

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jobboard/pkg/question"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, question.Form, Options) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(stubRenderer{name: "vanilla"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	renderer, err := registry.Get("vanilla")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if renderer.Name() != "vanilla" {
		t.Fatalf("unexpected renderer: %q", renderer.Name())
	}

	if err := registry.Register(stubRenderer{name: "vanilla"}); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if _, err := registry.Get("missing"); err == nil {
		t.Fatal("expected missing renderer error")
	}
}

func TestRegistry_ListIsSorted(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(stubRenderer{name: "tui"})
	registry.MustRegister(stubRenderer{name: "vanilla"})
	registry.MustRegister(stubRenderer{name: "json"})

	if diff := cmp.Diff([]string{"json", "tui", "vanilla"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("tui") || registry.Has("nope") {
		t.Fatal("Has mismatch")
	}
}

func TestNormalizeMessages(t *testing.T) {
	got := NormalizeMessages([]string{" a ", "", "b", "a", "  "})
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Fatalf("normalize mismatch (-want +got):\n%s", diff)
	}
	if NormalizeMessages(nil) != nil {
		t.Fatal("nil input should stay nil")
	}
}

func TestMergeFormErrors(t *testing.T) {
	got := MergeFormErrors([]string{"first"}, "second", "first", " ")
	if diff := cmp.Diff([]string{"first", "second"}, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestSortedHiddenFields(t *testing.T) {
	got := SortedHiddenFields(map[string]string{
		"renderer": "vanilla",
		"jobId":    "42",
		" ":        "dropped",
	})
	want := []HiddenField{{Name: "jobId", Value: "42"}, {Name: "renderer", Value: "vanilla"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("hidden fields mismatch (-want +got):\n%s", diff)
	}
}
