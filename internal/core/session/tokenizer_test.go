package session

import (
	"reflect"
	"testing"
)

func TestTokenizeEmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t", " \t  "} {
		name, args := Tokenize(raw)
		if name != "" {
			t.Errorf("Tokenize(%q) command = %q, want empty", raw, name)
		}
		if len(args) != 0 {
			t.Errorf("Tokenize(%q) args = %v, want none", raw, args)
		}
	}
}

func TestTokenizeQuotedSpans(t *testing.T) {
	tests := []struct {
		raw      string
		wantName string
		wantArgs []string
	}{
		{`search "Daft Punk"`, "search", []string{"Daft Punk"}},
		{`search "Artist - Album (2020)"`, "search", []string{"Artist - Album (2020)"}},
		{`search "Daft Punk" --type master`, "search", []string{"Daft Punk", "--type", "master"}},
		{`tracks master 12345`, "tracks", []string{"master", "12345"}},
		{`search ""`, "search", []string{""}},
		{`search "he said \"hi\""`, "search", []string{`he said "hi"`}},
	}
	for _, tt := range tests {
		name, args := Tokenize(tt.raw)
		if name != tt.wantName {
			t.Errorf("Tokenize(%q) command = %q, want %q", tt.raw, name, tt.wantName)
		}
		if !reflect.DeepEqual(args, tt.wantArgs) {
			t.Errorf("Tokenize(%q) args = %#v, want %#v", tt.raw, args, tt.wantArgs)
		}
	}
}

func TestTokenizeLowercasesCommandOnly(t *testing.T) {
	name, args := Tokenize(`SEARCH Daft PUNK`)
	if name != "search" {
		t.Errorf("command = %q, want %q", name, "search")
	}
	if !reflect.DeepEqual(args, []string{"Daft", "PUNK"}) {
		t.Errorf("args = %v, argument casing should be preserved", args)
	}
}
