package validation

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/kitchenlink-backend/internal/types"
)

func TestRecipeName(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "ok", value: "Borscht", wantErr: false},
		{name: "empty", value: "", wantErr: true},
		{name: "whitespace_only", value: "   ", wantErr: true},
		{name: "at_limit", value: strings.Repeat("a", 200), wantErr: false},
		{name: "over_limit", value: strings.Repeat("a", 201), wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := RecipeName(tc.value)
			if (err != nil) != tc.wantErr {
				t.Fatalf("RecipeName(%q) err=%v, wantErr=%v", tc.value, err, tc.wantErr)
			}
			if err != nil && err.Field != "name" {
				t.Fatalf("error field=%q, want %q", err.Field, "name")
			}
		})
	}
}

func TestCookingTime(t *testing.T) {
	if err := CookingTime(1); err != nil {
		t.Fatalf("CookingTime(1) unexpected error: %v", err)
	}
	if err := CookingTime(0); err == nil {
		t.Fatal("CookingTime(0) expected error")
	}
	if err := CookingTime(-5); err == nil {
		t.Fatal("CookingTime(-5) expected error")
	}
}

func TestTagIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	cases := []struct {
		name    string
		ids     []uuid.UUID
		wantErr bool
	}{
		{name: "ok", ids: []uuid.UUID{a, b}, wantErr: false},
		{name: "empty", ids: nil, wantErr: true},
		{name: "duplicate", ids: []uuid.UUID{a, a}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := TagIDs(tc.ids); (err != nil) != tc.wantErr {
				t.Fatalf("TagIDs err=%v, wantErr=%v", err, tc.wantErr)
			}
		})
	}
}

func TestIngredientLines(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	cases := []struct {
		name    string
		lines   []types.IngredientAmountInput
		wantErr bool
	}{
		{
			name: "ok",
			lines: []types.IngredientAmountInput{
				{ID: a, Amount: 100},
				{ID: b, Amount: 1},
			},
		},
		{name: "empty", lines: nil, wantErr: true},
		{
			name:    "zero_amount",
			lines:   []types.IngredientAmountInput{{ID: a, Amount: 0}},
			wantErr: true,
		},
		{
			name: "duplicate_ingredient",
			lines: []types.IngredientAmountInput{
				{ID: a, Amount: 2},
				{ID: a, Amount: 3},
			},
			wantErr: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := IngredientLines(tc.lines)
			if (err != nil) != tc.wantErr {
				t.Fatalf("IngredientLines err=%v, wantErr=%v", err, tc.wantErr)
			}
			if err != nil && err.Field != "ingredients" {
				t.Fatalf("error field=%q, want %q", err.Field, "ingredients")
			}
		})
	}
}

func TestUsername(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "ok", value: "chef.anna+test@home", wantErr: false},
		{name: "empty", value: "", wantErr: true},
		{name: "reserved_me", value: "me", wantErr: true},
		{name: "reserved_me_upper", value: "ME", wantErr: true},
		{name: "bad_chars", value: "bad name!", wantErr: true},
		{name: "too_long", value: strings.Repeat("x", 151), wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := Username(tc.value); (err != nil) != tc.wantErr {
				t.Fatalf("Username(%q) err=%v, wantErr=%v", tc.value, err, tc.wantErr)
			}
		})
	}
}

func TestTagSlug(t *testing.T) {
	for slug, ok := range map[string]bool{
		"breakfast":    true,
		"quick-meals":  true,
		"under_30_min": true,
		"":             false,
		"bad slug":     false,
		"café":    false,
	} {
		if err := TagSlug(slug); (err == nil) != ok {
			t.Fatalf("TagSlug(%q) err=%v, want ok=%v", slug, err, ok)
		}
	}
}

func TestHexColor(t *testing.T) {
	for color, ok := range map[string]bool{
		"#49B64E": true,
		"#ffffff": true,
		"49B64E":  false,
		"#49B64":  false,
		"#GGGGGG": false,
	} {
		if err := HexColor(color); (err == nil) != ok {
			t.Fatalf("HexColor(%q) err=%v, want ok=%v", color, err, ok)
		}
	}
}
