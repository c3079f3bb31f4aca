package activity

import "testing"

func TestWinnerHighestCount(t *testing.T) {
	options := []VoteOption{
		{ID: 1, VoteDate: "2025-11-01（周六）", VoteCount: 3},
		{ID: 2, VoteDate: "2025-11-02（周日）", VoteCount: 8},
		{ID: 3, VoteDate: "2025-11-08（周六）", VoteCount: 5},
	}
	winner, ok := Winner(options)
	if !ok || winner.ID != 2 {
		t.Fatalf("expected option 2, got %+v", winner)
	}
}

func TestWinnerTieBreakLowestID(t *testing.T) {
	options := []VoteOption{
		{ID: 4, VoteCount: 5},
		{ID: 2, VoteCount: 5},
		{ID: 9, VoteCount: 5},
	}
	for i := 0; i < 5; i++ {
		winner, ok := Winner(options)
		if !ok || winner.ID != 2 {
			t.Fatalf("run %d: expected lowest id 2, got %d", i, winner.ID)
		}
	}
}

func TestWinnerEmpty(t *testing.T) {
	if _, ok := Winner(nil); ok {
		t.Fatalf("expected no winner for empty input")
	}
}

func TestWinnerDraftOptionsKeepInputOrder(t *testing.T) {
	// drafts have zero ids; the first of a tie wins
	options := []VoteOption{
		{VoteDate: "2025-11-01（周六）", VoteCount: 2},
		{VoteDate: "2025-11-02（周日）", VoteCount: 2},
	}
	winner, ok := Winner(options)
	if !ok || winner.VoteDate != "2025-11-01（周六）" {
		t.Fatalf("expected first option to win tie, got %+v", winner)
	}
}
