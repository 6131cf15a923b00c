package table

import "testing"

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"Anna", "3"},
		{"Bjørn Åsen", "12"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignRight})
	want := []string{
		"Anna         3",
		"Bjørn Åsen  12",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}

func TestFormatCountsWideRunes(t *testing.T) {
	got := Format([][]string{{"日本", "x"}, {"ab", "y"}}, nil)
	if got[1] != "ab    y" {
		t.Fatalf("expected padding to the wide cell, got %q", got[1])
	}
}

func TestFitPadsAndTruncates(t *testing.T) {
	got := Fit([]string{"hei", "en veldig lang linje"}, 8)
	if got[0] != "hei     " {
		t.Fatalf("expected padded row, got %q", got[0])
	}
	if cellWidth(got[1]) != 8 || got[1][len(got[1])-len("…"):] != "…" {
		t.Fatalf("expected truncated row of width 8, got %q", got[1])
	}
}
