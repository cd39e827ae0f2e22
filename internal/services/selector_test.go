package services

import (
	"birding-trip-service/internal/domain"
	"testing"
)

func scoredFixture(scores ...float64) []domain.ScoredCandidate {
	out := make([]domain.ScoredCandidate, 0, len(scores))
	for i, s := range scores {
		out = append(out, domain.ScoredCandidate{
			Candidate: domain.Candidate{ID: string(rune('a' + i))},
			Score:     s,
		})
	}
	return out
}

func TestSelectStopsUnderCapIsIdentity(t *testing.T) {
	in := scoredFixture(0.2, 0.9, 0.5)

	got := SelectStops(in, 5)
	if len(got) != 3 {
		t.Fatalf("expected all 3 candidates, got %d", len(got))
	}
	// Under the cap the input must come back unchanged in original order.
	for i := range in {
		if got[i].ID != in[i].ID {
			t.Fatalf("order changed at %d: got %q, want %q", i, got[i].ID, in[i].ID)
		}
	}
}

func TestSelectStopsTopByScoreDescending(t *testing.T) {
	in := scoredFixture(0.2, 0.9, 0.5, 0.7)

	got := SelectStops(in, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].ID != "b" || got[1].ID != "d" {
		t.Fatalf("selected %q,%q; want b,d", got[0].ID, got[1].ID)
	}
}

func TestSelectStopsTieBreakByInputOrder(t *testing.T) {
	in := scoredFixture(0.5, 0.5, 0.5)

	got := SelectStops(in, 2)
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("tie-break broken: got %q,%q; want a,b", got[0].ID, got[1].ID)
	}
}

func TestSelectStopsIdempotent(t *testing.T) {
	in := scoredFixture(0.1, 0.8, 0.3, 0.6, 0.2)

	first := SelectStops(in, 3)
	second := SelectStops(first, 3)

	if len(first) != len(second) {
		t.Fatalf("re-selection changed length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("re-selection changed order at %d: %q vs %q", i, first[i].ID, second[i].ID)
		}
	}
}

func TestSelectStopsZeroCap(t *testing.T) {
	got := SelectStops(scoredFixture(0.4, 0.6), 0)
	if len(got) != 0 {
		t.Fatalf("expected no candidates with maxStops=0, got %d", len(got))
	}
}
