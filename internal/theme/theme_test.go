package theme

import "testing"

func TestForFallsBackToDark(t *testing.T) {
	s := For("solarized", 1)
	if s.Name != "dark" {
		t.Fatalf("expected fallback to dark, got %q", s.Name)
	}
	if s.Palette.Background != palettes["dark"].Background {
		t.Fatalf("expected dark palette")
	}
}

func TestForSelectsLight(t *testing.T) {
	s := For(" Light ", 1)
	if s.Name != "light" || s.Palette.Foreground != "#000000" {
		t.Fatalf("expected light theme, got %q", s.Name)
	}
}

func TestSizeMultiplierScalesKeys(t *testing.T) {
	cases := []struct {
		size float64
		want int
	}{
		{1, baseKeyWidth},
		{2, 2 * baseKeyWidth},
		{0, baseKeyWidth},
		{0.1, 3},
	}
	for _, tc := range cases {
		if got := For("dark", tc.size).KeyWidth; got != tc.want {
			t.Fatalf("size %v: expected key width %d, got %d", tc.size, tc.want, got)
		}
	}
}
