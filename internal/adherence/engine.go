// Package adherence computes streaks, heatmap grids, and adherence rates from
// sets of completed calendar days. All functions are pure: they receive
// already-fetched day sets and an explicit reference date, perform no I/O, and
// return well-defined zero values for empty or degenerate input.
package adherence

import (
	"fmt"
	"math"

	"github.com/nutrilog/nutrilog/internal/calendar"
)

// Cell is one calendar day's binary completion flag, ordered oldest-first when
// returned in a grid. Count is 0 or 1.
type Cell struct {
	Day   calendar.Day
	Count int
}

// CurrentStreak returns the number of consecutive completed days ending at
// today, or at yesterday when today is not yet complete (the day is still in
// progress). A gap at both today and yesterday means the streak is broken.
func CurrentStreak(completed calendar.DaySet, today calendar.Day) int {
	start := today
	if !completed.Has(start) {
		start = today.Prev()
		if !completed.Has(start) {
			return 0
		}
	}

	streak := 0
	for d := start; completed.Has(d); d = d.Prev() {
		streak++
	}
	return streak
}

// BestStreak returns the length of the longest run of consecutive completed
// days anywhere in the set. Returns 0 for an empty set.
func BestStreak(completed calendar.DaySet) int {
	days := completed.Sorted()
	if len(days) == 0 {
		return 0
	}

	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

// BuildGrid produces numDays cells ending at endDate inclusive, oldest first,
// each flagged 1 when its day is in the completed set. Callers align numDays
// to a multiple of 7 so downstream rendering gets whole weeks; the engine only
// rejects a negative count.
func BuildGrid(completed calendar.DaySet, endDate calendar.Day, numDays int) ([]Cell, error) {
	if numDays < 0 {
		return nil, fmt.Errorf("numDays must be non-negative, got %d", numDays)
	}

	cells := make([]Cell, numDays)
	for i := 0; i < numDays; i++ {
		day := endDate.AddDays(i - numDays + 1)
		count := 0
		if completed.Has(day) {
			count = 1
		}
		cells[i] = Cell{Day: day, Count: count}
	}
	return cells, nil
}

// Rate returns the completed percentage over the cells, rounded to the nearest
// integer. An empty slice yields 0 rather than dividing by zero.
func Rate(cells []Cell) int {
	if len(cells) == 0 {
		return 0
	}
	sum := 0
	for _, c := range cells {
		sum += c.Count
	}
	return percent(sum, len(cells))
}

// WeekBlocks partitions the cells into chunks of 7 anchored at the most recent
// end of the range and returns each chunk's percentage, oldest chunk first. A
// partial chunk at the oldest end is averaged over its own length, not 7.
func WeekBlocks(cells []Cell) []int {
	if len(cells) == 0 {
		return nil
	}

	numBlocks := (len(cells) + 6) / 7
	blocks := make([]int, numBlocks)

	// Chunk boundaries are counted back from the end so the newest block is
	// always a full week and only the oldest may be partial.
	end := len(cells)
	for b := numBlocks - 1; b >= 0; b-- {
		start := end - 7
		if start < 0 {
			start = 0
		}
		sum := 0
		for _, c := range cells[start:end] {
			sum += c.Count
		}
		blocks[b] = percent(sum, end-start)
		end = start
	}
	return blocks
}

// WeekdayHistogram accumulates cell counts per weekday, indexed Sunday (0)
// through Saturday (6). No normalization is applied; scaling for display is a
// presentation concern.
func WeekdayHistogram(cells []Cell) [7]int {
	var hist [7]int
	for _, c := range cells {
		hist[int(c.Day.Weekday())] += c.Count
	}
	return hist
}

func percent(sum, n int) int {
	return int(math.Round(100 * float64(sum) / float64(n)))
}
