package label

import (
	"reflect"
	"strings"
	"testing"
)

func TestNormalize_TrimsLowersDedupes(t *testing.T) {
	got := Normalize([]string{"Cat ", "cat", "DOG"})
	want := []string{"cat", "dog"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Normalize = %v, want %v", got, want)
	}
}

func TestNormalize_OrderIndependent(t *testing.T) {
	a := Normalize([]string{"beach", "Sunset"}, []string{"Ocean"})
	b := Normalize([]string{"Ocean"}, []string{"Sunset", "beach"})
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("order matters: %v vs %v", a, b)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	once := Normalize([]string{" Beach", "sunset", "SUNSET", ""})
	twice := Normalize(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("not idempotent: %v vs %v", once, twice)
	}
}

func TestNormalize_EmptySources(t *testing.T) {
	if got := Normalize(nil, []string{}, []string{"  ", ""}); len(got) != 0 {
		t.Fatalf("expected empty set, got %v", got)
	}
	if got := Normalize(); len(got) != 0 {
		t.Fatalf("expected empty set for no sources, got %v", got)
	}
}

func TestNormalize_SplitsCommaEntries(t *testing.T) {
	got := Normalize([]string{"rock,paper", " Scissors , rock,"})
	want := []string{"paper", "rock", "scissors"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Normalize = %v, want %v", got, want)
	}
	for _, l := range got {
		if strings.Contains(l, ",") {
			t.Fatalf("normalized label %q contains the storage separator", l)
		}
	}
}

func TestNormalize_MergesThreeSources(t *testing.T) {
	operator := SplitCSV("beach, Sunset")
	detector := []string{"Sunset", "Ocean"}
	extra := []string{"vacation"}

	got := Normalize(operator, detector, extra)
	want := []string{"beach", "ocean", "sunset", "vacation"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Normalize = %v, want %v", got, want)
	}
}

func TestSplitCSV(t *testing.T) {
	if got := SplitCSV(""); got != nil {
		t.Fatalf("SplitCSV(\"\") = %v, want nil", got)
	}
	got := SplitCSV("a, b ,c")
	want := []string{"a", " b ", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitCSV = %v, want %v", got, want)
	}
}
