package scanfilter

import "testing"

func TestNoFilterAllowsEverything(t *testing.T) {
	f := NoFilter{}
	if !f.Allow(Candidate{Path: "/tmp/whatever.xyz", Size: 0}) {
		t.Fatalf("NoFilter should allow any candidate")
	}
}

func TestExtensionWhitelistCaseInsensitive(t *testing.T) {
	w := NewDefaultWhitelist()

	cases := []struct {
		path string
		want bool
	}{
		{"/t/a.pdf", true},
		{"/t/a.PDF", true},
		{"/t/a.PdF", true},
		{"/t/a.txt", false},
		{"/t/noext", false},
	}

	for _, c := range cases {
		got := w.Allow(Candidate{Path: c.path})
		if got != c.want {
			t.Errorf("Allow(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestExtensionWhitelistComposition(t *testing.T) {
	// P6: ExtensionWhitelist(W).filter(f) => f.extension in W
	w := NewExtensionWhitelist([]string{"zip", "tar"})
	if w.Allow(Candidate{Path: "/t/a.rar"}) {
		t.Fatalf("rar should not be allowed by a {zip,tar} whitelist")
	}
	if !w.Allow(Candidate{Path: "/t/a.zip"}) {
		t.Fatalf("zip should be allowed by a {zip,tar} whitelist")
	}
}
