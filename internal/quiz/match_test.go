package quiz

import "testing"

func TestEquivalent(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Barack Obama", "barack obama", true},
		{"  Obama  ", "obama", true},
		{"Obama", "OBAMA", true},
		{"Obama", "Mitt Romney", false},
		{"color", "colour", false},
		// Punctuation is deliberately significant.
		{"U.S.A.", "USA", false},
		{"", "", true},
		// Combining accent vs precomposed form.
		{"café", "café", true},
	}
	for _, tt := range tests {
		if got := Equivalent(tt.a, tt.b); got != tt.want {
			t.Errorf("Equivalent(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMatch_Variants(t *testing.T) {
	ans := Answer{"Mount Everest", "Everest"}

	if !Match(ans, "mount everest") {
		t.Error("expected case-folded variant to match")
	}
	if !Match(ans, " everest ") {
		t.Error("expected trimmed variant to match")
	}
	if Match(ans, "K2") {
		t.Error("unrelated string should not match")
	}
}

func TestMatchOne(t *testing.T) {
	slots := []Answer{
		{"Washington"},
		{"Adams", "John Adams"},
		{"Jefferson"},
	}

	if got := MatchOne(slots, "john adams"); got != 1 {
		t.Errorf("MatchOne = %d, want 1", got)
	}
	if got := MatchOne(slots, "Lincoln"); got != -1 {
		t.Errorf("MatchOne = %d, want -1", got)
	}
}

func TestMatchUnordered_FirstFreeSlot(t *testing.T) {
	slots := []Answer{{"red"}, {"green"}, {"blue"}}

	out := MatchUnordered(slots, nil, []string{"blue", "purple", "red"})
	if got := out.MatchedCount(); got != 2 {
		t.Errorf("MatchedCount = %d, want 2", got)
	}
	if len(out.Extras) != 1 || out.Extras[0] != "purple" {
		t.Errorf("Extras = %v, want [purple]", out.Extras)
	}
	missed := out.Missed()
	if len(missed) != 1 || missed[0] != "green" {
		t.Errorf("Missed = %v, want [green]", missed)
	}
}

func TestMatchUnordered_DuplicateLineDoesNotDoubleCount(t *testing.T) {
	slots := []Answer{{"red"}, {"green"}}

	out := MatchUnordered(slots, nil, []string{"red", "red"})
	if got := out.MatchedCount(); got != 1 {
		t.Errorf("MatchedCount = %d, want 1", got)
	}
	if len(out.Extras) != 1 {
		t.Errorf("duplicate should be recorded as an extra, got %v", out.Extras)
	}
}

func TestMatchOrdered_PositionMatters(t *testing.T) {
	slots := []Answer{{"first"}, {"second"}, {"third"}}

	out := MatchOrdered(slots, nil, []string{"third", "second", "first"})
	// "second" is the only line in its correct position.
	if got := out.MatchedCount(); got != 1 {
		t.Errorf("MatchedCount = %d, want 1", got)
	}

	out = MatchOrdered(slots, nil, []string{"first", "second", "third"})
	if got := out.MatchedCount(); got != 3 {
		t.Errorf("MatchedCount = %d, want 3", got)
	}
}

func TestNoCredit_RemovedFromBothSides(t *testing.T) {
	slots := []Answer{{"mercury"}, {"venus"}, {"pluto"}}
	noCredit := []string{"pluto"}

	// Submitting the nocredit item in place of a required item scores the
	// same as omitting that line entirely.
	withNC := MatchUnordered(slots, noCredit, []string{"mercury", "pluto"})
	without := MatchUnordered(slots, noCredit, []string{"mercury"})

	if len(withNC.Required) != 2 || len(without.Required) != 2 {
		t.Fatalf("required slots = %d/%d, want 2/2", len(withNC.Required), len(without.Required))
	}
	if withNC.MatchedCount() != without.MatchedCount() {
		t.Errorf("nocredit submission changed the score: %d vs %d",
			withNC.MatchedCount(), without.MatchedCount())
	}
	if len(withNC.Extras) != 0 {
		t.Errorf("nocredit line should not be an extra, got %v", withNC.Extras)
	}
}
