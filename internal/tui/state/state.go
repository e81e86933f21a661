// Package state holds the cursor and window arithmetic of the list view.
package state

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

// PageStep is the number of rows pgup/pgdown moves for a terminal of the
// given height.
func PageStep(height int, hasStatus bool) int {
	if height <= 0 {
		return 10
	}
	headerLines := 6
	if hasStatus {
		headerLines += 2
	}
	step := height - headerLines
	if step < 3 {
		step = 3
	}
	return step
}

// CenteredWindow returns the [start, end) rows to draw so the cursor
// stays near the middle.
func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampCursor(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}

// ListHeight is the number of rows left for the list once chrome is
// drawn.
func ListHeight(height, chromeLines int) int {
	if height <= 0 {
		return 0
	}
	rows := height - chromeLines
	if rows < 1 {
		rows = 1
	}
	return rows
}
