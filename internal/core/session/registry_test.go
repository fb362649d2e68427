package session

import (
	"context"
	"strings"
	"testing"
)

func nopHandler(ctx context.Context, args []string, sctx *Context) (bool, error) {
	return true, nil
}

// alternateCase produces variants like "SeArCh" from "search".
func alternateCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i%2 == 0 {
			b.WriteString(strings.ToUpper(string(r)))
		} else {
			b.WriteString(strings.ToLower(string(r)))
		}
	}
	return b.String()
}

func TestRegistryCaseInsensitiveResolution(t *testing.T) {
	registry, err := NewCommandRegistry()
	if err != nil {
		t.Fatalf("NewCommandRegistry() error: %v", err)
	}

	for _, cmd := range registry.Commands() {
		for _, key := range append([]string{cmd.Name}, cmd.Aliases...) {
			variants := []string{key, strings.ToUpper(key), alternateCase(key)}
			for _, variant := range variants {
				got := registry.Find(variant)
				if got != cmd {
					t.Errorf("Find(%q) = %v, want descriptor for %q", variant, got, cmd.Name)
				}
			}
		}
	}
}

func TestRegistryUnknownToken(t *testing.T) {
	registry, err := NewCommandRegistry()
	if err != nil {
		t.Fatalf("NewCommandRegistry() error: %v", err)
	}
	if got := registry.Find("frobnicate"); got != nil {
		t.Errorf("Find(frobnicate) = %v, want nil", got)
	}
}

func TestRegistryRejectsAliasCollision(t *testing.T) {
	_, err := NewRegistry([]*Command{
		{Name: "alpha", Aliases: []string{"a"}, Handler: nopHandler},
		{Name: "beta", Aliases: []string{"A"}, Handler: nopHandler},
	})
	if err == nil {
		t.Fatal("expected collision error for duplicate alias")
	}
}

func TestRegistryRejectsNameAliasCollision(t *testing.T) {
	_, err := NewRegistry([]*Command{
		{Name: "alpha", Handler: nopHandler},
		{Name: "beta", Aliases: []string{"alpha"}, Handler: nopHandler},
	})
	if err == nil {
		t.Fatal("expected collision error for alias shadowing a name")
	}
}

func TestRegistryNames(t *testing.T) {
	registry, err := NewCommandRegistry()
	if err != nil {
		t.Fatalf("NewCommandRegistry() error: %v", err)
	}
	names := registry.Names()
	want := []string{"clean", "exit", "help", "search", "set", "settings", "tracks"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
