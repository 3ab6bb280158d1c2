package vtterm

import (
	"runtime"
	"strings"
	"sync"
)

// Search scans the visible page for pattern and returns the start position
// of every match, in row-major order. Matching is over LineContent, which
// strips wide-char spacer cells, so Col is the rune offset of the match in
// that text; it equals the cell column only when no wide character precedes
// the match on its row.
func (t *Emulator) Search(pattern string) []Position {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if pattern == "" {
		return nil
	}

	var matches []Position
	for row := 0; row < t.rows; row++ {
		line := t.activePage.LineContent(row)
		matches = append(matches, findAllPositions(line, pattern, row)...)
	}
	return matches
}

// SearchScrollback scans stored scrollback lines for pattern. Positions use
// negative row numbers, with -1 being the line immediately above row 0 of
// the visible page and -N being the Nth most recent retained line
// (-ScrollbackLen() is the oldest), so callers can
// address scrollback and on-screen matches on one consistent axis.
func (t *Emulator) SearchScrollback(pattern string) []Position {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if pattern == "" {
		return nil
	}

	n := t.primaryPage.ScrollbackLen()
	var matches []Position
	for i := 0; i < n; i++ {
		cells := t.primaryPage.ScrollbackLine(i)
		line := cellsToString(cells)
		row := -(n - i)
		matches = append(matches, findAllPositions(line, pattern, row)...)
	}
	return matches
}

// SearchConcurrent is the parallel counterpart to SearchScrollback: it
// partitions the scrollback into contiguous spans, one per available CPU,
// and scans each span on its own goroutine. Results are returned in the same
// row-ascending order a sequential scan would produce.
func (t *Emulator) SearchConcurrent(pattern string) []Position {
	t.mu.RLock()
	n := t.primaryPage.ScrollbackLen()
	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers == 0 || pattern == "" {
		t.mu.RUnlock()
		return nil
	}

	spanSize := (n + workers - 1) / workers
	results := make([][]Position, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * spanSize
		end := start + spanSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			var local []Position
			for i := start; i < end; i++ {
				cells := t.primaryPage.ScrollbackLine(i)
				line := cellsToString(cells)
				row := -(n - i)
				local = append(local, findAllPositions(line, pattern, row)...)
			}
			results[w] = local
		}(w, start, end)
	}
	wg.Wait()
	t.mu.RUnlock()

	var matches []Position
	for _, r := range results {
		matches = append(matches, r...)
	}
	return matches
}

// findAllPositions returns every non-overlapping match of pattern within
// line, reported as Positions on the given row.
func findAllPositions(line, pattern string, row int) []Position {
	var matches []Position
	offset := 0
	for {
		idx := strings.Index(line[offset:], pattern)
		if idx < 0 {
			break
		}
		col := len([]rune(line[:offset+idx]))
		matches = append(matches, Position{Row: row, Col: col})
		offset += idx + len(pattern)
		if offset >= len(line) {
			break
		}
	}
	return matches
}

func cellsToString(cells []Cell) string {
	var b strings.Builder
	for _, c := range cells {
		if c.IsWideSpacer() {
			continue
		}
		if c.Char == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteRune(c.Char)
		}
	}
	return strings.TrimRight(b.String(), " ")
}
