package highlight

import (
	"sort"
	"testing"
)

func TestRegistry_Lookup(t *testing.T) {
	tests := []struct {
		tag      string
		wantName string
		wantOK   bool
	}{
		{"go", "go", true},
		{"GoLang", "go", true},
		{"  Python ", "python", true},
		{"py", "python", true},
		{"ts", "javascript", true},
		{"yml", "yaml", true},
		{"sh", "bash", true},
		{"cpp", "c", true},
		{"brainfuck", "", false},
		{"", "", false},
	}

	reg := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			rs, ok := reg.Lookup(tt.tag)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.tag, ok, tt.wantOK)
			}
			if ok && rs.Name != tt.wantName {
				t.Fatalf("Lookup(%q) = %q, want %q", tt.tag, rs.Name, tt.wantName)
			}
		})
	}
}

func TestRegistry_Alias(t *testing.T) {
	reg := NewRegistry()

	if !reg.Alias("golang-src", "go") {
		t.Fatal("Alias to a known language failed")
	}
	rs, ok := reg.Lookup("golang-src")
	if !ok || rs.Name != "go" {
		t.Fatalf("Lookup after Alias = (%v, %v)", rs, ok)
	}

	if reg.Alias("x", "no-such-language") {
		t.Fatal("Alias to an unknown language succeeded")
	}
}

func TestRegistry_Names(t *testing.T) {
	names := NewRegistry().Names()
	if !sort.StringsAreSorted(names) {
		t.Fatalf("Names() not sorted: %v", names)
	}
	want := map[string]bool{"go": true, "python": true, "sql": true, "yaml": true}
	for _, n := range names {
		delete(want, n)
	}
	if len(want) != 0 {
		t.Fatalf("Names() missing %v (got %v)", want, names)
	}
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	reg := NewRegistry()
	custom := &Ruleset{
		Name:         "go",
		LineComments: []string{";"},
	}
	reg.Register(custom)

	rs, ok := reg.Lookup("go")
	if !ok || rs != custom {
		t.Fatal("Register did not replace the existing binding")
	}
}
