package resolve

import "testing"

func TestResolve_ExactContainment(t *testing.T) {
	r := NewResolver(0.7)

	match, ok := r.Resolve("Acme", []string{"Globex Corporation", "Acme Corp", "Initech"})
	if !ok {
		t.Fatal("expected a match")
	}
	if match != "Acme Corp" {
		t.Errorf("expected 'Acme Corp', got %q", match)
	}
}

func TestResolve_ExactBeatsApproximate(t *testing.T) {
	r := NewResolver(0.7)

	// "Acme Corp" qualifies both exactly (containment) and approximately;
	// "Acme Group" could qualify approximately. Exact must win.
	candidates := []string{"Acme Group", "Acme Corp"}
	match, ok := r.Resolve("acme corp", candidates)
	if !ok {
		t.Fatal("expected a match")
	}
	if match != "Acme Corp" {
		t.Errorf("exact containment should win, got %q", match)
	}
}

func TestResolve_ApproximateAboveCutoff(t *testing.T) {
	r := NewResolver(0.7)

	match, ok := r.Resolve("Exxon Mobil", []string{"ExxonMobil"})
	if !ok {
		t.Fatal("expected approximate match for near-identical names")
	}
	if match != "ExxonMobil" {
		t.Errorf("got %q", match)
	}
}

func TestResolve_NoMatchBelowCutoff(t *testing.T) {
	r := NewResolver(0.7)

	if _, ok := r.Resolve("Acme Corp", []string{"Globex", "Initech"}); ok {
		t.Error("expected no match for unrelated names")
	}
}

func TestResolve_EmptyCandidates(t *testing.T) {
	r := NewResolver(0.7)

	if _, ok := r.Resolve("Acme Corp", nil); ok {
		t.Error("expected no match for empty candidate set")
	}
	if _, ok := r.Resolve("Acme Corp", []string{}); ok {
		t.Error("expected no match for empty candidate slice")
	}
}

func TestResolve_TieBrokenByOrder(t *testing.T) {
	r := NewResolver(0.7)

	// Both candidates contain the needle; first encountered wins.
	match, ok := r.Resolve("Acme", []string{"Acme Energy", "Acme Power"})
	if !ok {
		t.Fatal("expected a match")
	}
	if match != "Acme Energy" {
		t.Errorf("expected first candidate to win the tie, got %q", match)
	}
}

func TestResolve_CorporateSuffixes(t *testing.T) {
	r := NewResolver(0.7)

	match, ok := r.Resolve("Shell plc", []string{"Shell"})
	if !ok {
		t.Fatal("expected suffix-stripped match")
	}
	if match != "Shell" {
		t.Errorf("got %q", match)
	}
}

func TestMatches(t *testing.T) {
	r := NewResolver(0.7)

	if !r.Matches("Acme Corp", "ACME CORPORATION") {
		t.Error("expected case-insensitive suffix-normalized match")
	}
	if r.Matches("Acme Corp", "Stark Industries") {
		t.Error("expected no match")
	}
}
