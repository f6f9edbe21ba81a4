package filename

import "testing"

func TestForgeRoundTripLaws(t *testing.T) {
	cases := []struct {
		name     string
		framenum uint64
		pattern  string
		want     string
	}{
		{"cam", 123, "%n-%f.jpg", "cam-123.jpg"},
		{"anything", 0, "static.jpg", "static.jpg"},
		{"camz", 6, "%n-%f-%n-%f%f.jpg%n", "camz-6-camz-66.jpgcamz"},
	}

	for _, tc := range cases {
		got := Forge(tc.name, tc.framenum, tc.pattern)
		if got != tc.want {
			t.Errorf("Forge(%q, %d, %q) = %q, want %q", tc.name, tc.framenum, tc.pattern, got, tc.want)
		}
	}
}

func TestForgeTrailingPercentIsLiteral(t *testing.T) {
	got := Forge("cam", 1, "frame%")
	if got != "frame%" {
		t.Errorf("got %q, want %q", got, "frame%")
	}
}
