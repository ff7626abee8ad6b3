package classify

import "testing"

func TestHashCaseInsensitive(t *testing.T) {
	if Hash("a.PDF") != Hash("a.pdf") {
		t.Fatalf("extension hash should be case-insensitive")
	}
}

func TestHashNoExtensionIsZero(t *testing.T) {
	if Hash("a") != 0 {
		t.Fatalf("a file with no extension should hash to zero")
	}
	if Hash("/some/path/noext") != 0 {
		t.Fatalf("a file with no extension should hash to zero")
	}
}

func TestHashDistinguishesDigitsFromLetters(t *testing.T) {
	if Hash("a.7z") == Hash("a.az") {
		t.Fatalf("digit and letter extensions should not trivially collide")
	}
}

func TestHashTrailingExtensionOnly(t *testing.T) {
	if Hash("archive.tar.gz") != Hash("other.gz") {
		t.Fatalf("only the trailing extension should be hashed")
	}
}
