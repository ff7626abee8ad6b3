package scanopts

import "testing"

func TestParseSizeSuffixes(t *testing.T) {
	cases := map[string]uint64{
		"1024":  1024,
		"1k":    1024,
		"1kb":   1024,
		"2m":    2 * 1024 * 1024,
		"2MB":   2 * 1024 * 1024,
		"1g":    1024 * 1024 * 1024,
		"1gb":   1024 * 1024 * 1024,
	}
	for in, want := range cases {
		got, err := ParseSize(in)
		if err != nil {
			t.Fatalf("ParseSize(%q) error = %v", in, err)
		}
		if got != want {
			t.Errorf("ParseSize(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParseSizeClampsToMax(t *testing.T) {
	got, err := ParseSize("100gb")
	if err != nil {
		t.Fatalf("ParseSize() error = %v", err)
	}
	if got != MaxCompareSize {
		t.Fatalf("ParseSize(100gb) = %d, want clamp to %d", got, MaxCompareSize)
	}
}

func TestParseSizeRejectsGarbage(t *testing.T) {
	if _, err := ParseSize("not-a-size"); err == nil {
		t.Fatalf("expected an error for a non-numeric size")
	}
}
