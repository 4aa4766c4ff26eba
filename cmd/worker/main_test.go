package main

import (
	"reflect"
	"testing"
)

func TestParseIDs(t *testing.T) {
	got, err := parseIDs([]string{"39", "140"}, "league id")
	if err != nil {
		t.Fatalf("parse ids: %v", err)
	}
	if want := []int64{39, 140}; !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected ids: %v", got)
	}

	for _, raw := range []string{"0", "-4", "abc"} {
		if _, err := parseIDs([]string{raw}, "league id"); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
