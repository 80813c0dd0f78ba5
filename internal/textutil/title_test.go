package textutil

import "testing"

func TestHumanizeSlug(t *testing.T) {
	tests := map[string]string{
		"side-by-side": "Side By Side",
		"diagonal":     "Diagonal",
		"  top_left ":  "Top Left",
		"":             "",
	}
	for input, want := range tests {
		if got := HumanizeSlug(input); got != want {
			t.Fatalf("HumanizeSlug(%q) = %q, want %q", input, got, want)
		}
	}
}
