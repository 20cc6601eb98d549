package engine

import (
	"errors"
	"math"
	"testing"
)

func TestAddXP_DerivesLevel(t *testing.T) {
	cases := []struct {
		xp        int
		wantLevel int
	}{
		{0, 1},
		{1, 1},
		{3599, 1},
		{3600, 2},
		{7199, 2},
		{7200, 3},
		{36000, 11},
	}
	for _, tc := range cases {
		p := NewProgression()
		if err := p.AddXP(tc.xp); err != nil {
			t.Fatalf("AddXP(%d): %v", tc.xp, err)
		}
		if p.Level != tc.wantLevel {
			t.Errorf("xp=%d: level = %d, want %d", tc.xp, p.Level, tc.wantLevel)
		}
	}
}

func TestAddXP_Accumulates(t *testing.T) {
	p := NewProgression()
	for i := 0; i < 5; i++ {
		if err := p.AddXP(1000); err != nil {
			t.Fatalf("AddXP: %v", err)
		}
	}
	if p.XP != 5000 {
		t.Errorf("xp = %d, want 5000", p.XP)
	}
	if p.Level != 2 {
		t.Errorf("level = %d, want 2", p.Level)
	}
}

func TestAddXP_RejectsNegative(t *testing.T) {
	p := NewProgression()
	p.AddXP(100)
	err := p.AddXP(-5)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
	if p.XP != 100 || p.Level != 1 {
		t.Errorf("rejected AddXP mutated state: xp=%d level=%d", p.XP, p.Level)
	}
}

func TestProgressFraction(t *testing.T) {
	cases := []struct {
		xp   int
		want float64
	}{
		{0, 0},
		{1800, 0.5},
		{3599, 3599.0 / 3600.0},
		{3600, 0},
		{5400, 0.5},
	}
	for _, tc := range cases {
		p := NewProgression()
		p.AddXP(tc.xp)
		if got := p.ProgressFraction(); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("xp=%d: fraction = %f, want %f", tc.xp, got, tc.want)
		}
	}
}

func TestTitleFor_GreatestBreakpointAtOrBelow(t *testing.T) {
	tt := TitleTable{
		{MinLevel: 1, Title: "Novice", ColorTag: "muted"},
		{MinLevel: 5, Title: "Apprentice", ColorTag: "primary"},
		{MinLevel: 10, Title: "Scholar", ColorTag: "primary"},
	}
	cases := []struct {
		level int
		want  string
	}{
		{1, "Novice"},
		{4, "Novice"},
		{5, "Apprentice"},
		{9, "Apprentice"},
		{10, "Scholar"},
		{99, "Scholar"},
	}
	for _, tc := range cases {
		if got := tt.TitleFor(tc.level); got.Title != tc.want {
			t.Errorf("level %d: title = %q, want %q", tc.level, got.Title, tc.want)
		}
	}
}

func TestTitleFor_BelowRangeSentinel(t *testing.T) {
	tt := TitleTable{{MinLevel: 1, Title: "Novice"}}
	if got := tt.TitleFor(0); got.Title != "Unranked" {
		t.Errorf("below-range title = %q, want Unranked", got.Title)
	}
	if got := tt.TitleFor(-3); got.Title != "Unranked" {
		t.Errorf("negative level title = %q, want Unranked", got.Title)
	}
}
