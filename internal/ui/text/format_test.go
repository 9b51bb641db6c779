package text

import "testing"

func TestPlural(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 fixes"},
		{1, "1 fix"},
		{7, "7 fixes"},
	}
	for _, tt := range tests {
		if got := Plural(tt.n, "fix", "fixes"); got != tt.want {
			t.Errorf("Plural(%d): got %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestSigned(t *testing.T) {
	tests := map[int]string{10: "+10", -5: "-5", 0: "0"}
	for n, want := range tests {
		if got := Signed(n); got != want {
			t.Errorf("Signed(%d): got %q, want %q", n, got, want)
		}
	}
}

func TestPenalty(t *testing.T) {
	tests := map[int]string{5: "-5", -5: "-5", 0: "0"}
	for n, want := range tests {
		if got := Penalty(n); got != want {
			t.Errorf("Penalty(%d): got %q, want %q", n, got, want)
		}
	}
}

func TestLocation(t *testing.T) {
	if got := Location("src/app.py", 12); got != "src/app.py:12" {
		t.Errorf("Location: got %q", got)
	}
	if got := Location("README.md", 0); got != "README.md" {
		t.Errorf("Location without line: got %q", got)
	}
}

func TestPlaceholder(t *testing.T) {
	if got := Placeholder("", "—"); got != "—" {
		t.Errorf("Placeholder empty: got %q", got)
	}
	if got := Placeholder("team", "—"); got != "team" {
		t.Errorf("Placeholder set: got %q", got)
	}
}
