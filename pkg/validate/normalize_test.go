package validate

import "testing"

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spaced year", "IJCAI 2026", "ijcai"},
		{"joined year", "ijcai2026", "ijcai"},
		{"hyphenated year", "IJCAI-2026", "ijcai"},
		{"punctuation", "NeurIPS (Thirty-Ninth)", "neuripsthirtyninth"},
		{"year mid-name", "The 2025 Web Conference", "thewebconference"},
		{"adjacent years", "ICML 2025 2026", "icml"},
		{"longer digit run kept", "Expo 202611", "expo202611"},
		{"non-20 year kept", "VLDB 1999", "vldb1999"},
		{"empty", "", ""},
		{"only year", "2026", ""},
		{"digits only", "1234", "1234"},
		{"unicode stripped", "Congrès 2026 IA", "congrsia"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.in); got != tt.want {
				t.Errorf("Key(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Differently formatted spellings of the same entity must collapse onto one
// canonical key.
func TestKeyIdempotentGrouping(t *testing.T) {
	spellings := []string{"IJCAI 2026", "ijcai2026", "IJCAI-2026", "  IJCAI  "}
	want := Key(spellings[0])
	for _, s := range spellings[1:] {
		if got := Key(s); got != want {
			t.Errorf("Key(%q) = %q, want %q", s, got, want)
		}
	}
}
