package state

import "testing"

func TestClampCursor(t *testing.T) {
	if got := ClampCursor(-1, 3); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
	if got := ClampCursor(3, 3); got != 2 {
		t.Fatalf("expected clamp to 2, got %d", got)
	}
	if got := ClampCursor(1, 3); got != 1 {
		t.Fatalf("expected keep 1, got %d", got)
	}
	if got := ClampCursor(5, 0); got != 0 {
		t.Fatalf("expected 0 for empty list, got %d", got)
	}
}

func TestPageStep(t *testing.T) {
	if got := PageStep(0, false); got != 10 {
		t.Fatalf("expected default step 10, got %d", got)
	}
	if got := PageStep(12, false); got != 6 {
		t.Fatalf("expected step 6, got %d", got)
	}
	if got := PageStep(12, true); got != 4 {
		t.Fatalf("expected step 4 with status, got %d", got)
	}
}

func TestCenteredWindow(t *testing.T) {
	cases := []struct {
		total, cursor, height int
		start, end            int
	}{
		{total: 0, cursor: 0, height: 5, start: 0, end: 0},
		{total: 3, cursor: 2, height: 5, start: 0, end: 3},
		{total: 5, cursor: 3, height: 3, start: 2, end: 5},
		{total: 10, cursor: 5, height: 4, start: 3, end: 7},
		{total: 10, cursor: 0, height: 4, start: 0, end: 4},
	}
	for _, tc := range cases {
		start, end := CenteredWindow(tc.total, tc.cursor, tc.height)
		if start != tc.start || end != tc.end {
			t.Fatalf("CenteredWindow(%d,%d,%d) = %d,%d want %d,%d", tc.total, tc.cursor, tc.height, start, end, tc.start, tc.end)
		}
	}
}

func TestListHeight(t *testing.T) {
	if got := ListHeight(0, 6); got != 0 {
		t.Fatalf("expected 0 before first resize, got %d", got)
	}
	if got := ListHeight(20, 6); got != 14 {
		t.Fatalf("expected 14 rows, got %d", got)
	}
	if got := ListHeight(4, 6); got != 1 {
		t.Fatalf("expected at least one row, got %d", got)
	}
}
