package api

import (
	"errors"
	"strconv"
	"testing"
	"time"
)

func TestParseSuffixed(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"0", 0},
		{"120", 120},
		{"-45", -45},
		{"+7", 7},
		{" 310 ", 310},
		{"1,200", 1200},
		{"12,345,678", 12345678},
		{"1.5k", 1500},
		{"1.5K", 1500},
		{"2m", 2000000},
		{"2.1M", 2100000},
		{"3b", 3000000000},
		{"1.2b", 1200000000},
		{"4.35k", 4350},
		{"1.2345k", 1234},
		{"- 12", -12},
		{"+1.5k", 1500},
		{"-1.2345k", -1234},
		{" 1 , 000 ", 1000},
		{"12.5 k", 12500},
		{"9223372036854775.807k", 9223372036854775807},
		{"-9223372036854775.808k", -9223372036854775808},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSuffixed(tt.input)
			if err != nil {
				t.Fatalf("ParseSuffixed(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseSuffixed(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSuffixed_PlainIntegersUnchanged(t *testing.T) {
	for _, n := range []int64{0, 1, -1, 42, 999, 1000, -250000, 2147483647, 9007199254740993} {
		s := strconv.FormatInt(n, 10)
		got, err := ParseSuffixed(s)
		if err != nil {
			t.Fatalf("ParseSuffixed(%q) unexpected error: %v", s, err)
		}
		if got != n {
			t.Errorf("ParseSuffixed(%q) = %d, want %d", s, got, n)
		}
	}
}

func TestParseSuffixed_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "1.5", "abc", "k", "1.2.3k", "12x", "10000000000b", "99999999999b", "-10000000000b", "9223372036854775.808k"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseSuffixed(input)
			if err == nil {
				t.Fatalf("ParseSuffixed(%q) expected error, got nil", input)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if pe.Input != input {
				t.Errorf("ParseError.Input = %q, want %q", pe.Input, input)
			}
		})
	}
}

func TestParseSuffixed_OutOfRange(t *testing.T) {
	for _, input := range []string{"10000000000b", "99999999999b", "-10000000000b"} {
		got, err := ParseSuffixed(input)
		if !errors.Is(err, errOutOfRange) {
			t.Errorf("ParseSuffixed(%q) = %d, %v; want errOutOfRange", input, got, err)
		}
	}
}

func TestParseMembers(t *testing.T) {
	tests := []struct {
		input   string
		want    bool
		wantErr bool
	}{
		{"true", true, false},
		{"True", true, false},
		{"yes", true, false},
		{"1", true, false},
		{"on", true, false},
		{"false", false, false},
		{"FALSE", false, false},
		{"no", false, false},
		{"0", false, false},
		{"off", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		got, err := ParseMembers(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMembers(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMembers(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}

func validAPIItem() APIItem {
	return APIItem{
		ID:          ptr(int64(4151)),
		Icon:        ptr("https://example.com/icon.gif"),
		Type:        ptr("Miscellaneous"),
		Name:        ptr("Abyssal whip"),
		Description: ptr("A weapon from the abyss."),
		Members:     ptr(flexString("true")),
		Current:     &APIPrice{Trend: ptr("neutral"), Price: ptr(flexString("1.2m"))},
		Today:       &APIPrice{Trend: ptr("negative"), Price: ptr(flexString("- 3,417"))},
	}
}

func TestAPIItemToModel(t *testing.T) {
	fetchedAt := time.Date(2024, 1, 15, 18, 42, 7, 0, time.UTC)
	a := validAPIItem()

	item, snap, err := a.ToModel(fetchedAt)
	if err != nil {
		t.Fatalf("ToModel() unexpected error: %v", err)
	}

	if item.ItemID != 4151 {
		t.Errorf("ItemID = %d, want 4151", item.ItemID)
	}
	if item.Name != "Abyssal whip" {
		t.Errorf("Name = %q, want %q", item.Name, "Abyssal whip")
	}
	if item.Type != "Miscellaneous" {
		t.Errorf("Type = %q, want %q", item.Type, "Miscellaneous")
	}
	if !item.IsMembers {
		t.Error("IsMembers = false, want true")
	}
	if snap.ItemID != item.ItemID {
		t.Errorf("snapshot ItemID = %d, want %d", snap.ItemID, item.ItemID)
	}
	if snap.Price != 1200000 {
		t.Errorf("Price = %d, want 1200000", snap.Price)
	}
	if snap.ChangeToday != -3417 {
		t.Errorf("ChangeToday = %d, want -3417", snap.ChangeToday)
	}
	if snap.Trend != "negative" {
		t.Errorf("Trend = %q, want %q", snap.Trend, "negative")
	}
	wantDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if !snap.Date.Equal(wantDate) {
		t.Errorf("Date = %v, want %v", snap.Date, wantDate)
	}
}

func TestAPIItemToModel_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(a *APIItem)
		wantKind ErrorKind
	}{
		{"missing id", func(a *APIItem) { a.ID = nil }, KindDecode},
		{"missing name", func(a *APIItem) { a.Name = nil }, KindDecode},
		{"missing current", func(a *APIItem) { a.Current = nil }, KindDecode},
		{"missing today trend", func(a *APIItem) { a.Today.Trend = nil }, KindDecode},
		{"bad members", func(a *APIItem) { a.Members = ptr(flexString("perhaps")) }, KindDecode},
		{"bad price", func(a *APIItem) { a.Current.Price = ptr(flexString("1.5")) }, KindParse},
		{"bad change", func(a *APIItem) { a.Today.Price = ptr(flexString("n/a")) }, KindParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAPIItem()
			tt.mutate(&a)

			_, _, err := a.ToModel(time.Now())
			if err == nil {
				t.Fatal("ToModel() expected error, got nil")
			}
			if got := KindOf(err); got != tt.wantKind {
				t.Errorf("KindOf() = %v, want %v", got, tt.wantKind)
			}
		})
	}
}
