package adherence

import (
	"testing"

	"github.com/nutrilog/nutrilog/internal/calendar"
)

func daySet(dates ...string) calendar.DaySet {
	days := make([]calendar.Day, len(dates))
	for i, d := range dates {
		days[i] = calendar.MustParse(d)
	}
	return calendar.NewDaySet(days...)
}

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name      string
		completed calendar.DaySet
		today     string
		want      int
	}{
		{
			name:      "empty set",
			completed: daySet(),
			today:     "2025-01-03",
			want:      0,
		},
		{
			name:      "three consecutive days ending today",
			completed: daySet("2025-01-01", "2025-01-02", "2025-01-03"),
			today:     "2025-01-03",
			want:      3,
		},
		{
			name:      "today not yet complete counts back from yesterday",
			completed: daySet("2025-01-01", "2025-01-02"),
			today:     "2025-01-03",
			want:      2,
		},
		{
			name:      "gap before today breaks the run",
			completed: daySet("2025-01-01", "2025-01-05"),
			today:     "2025-01-05",
			want:      1,
		},
		{
			name:      "neither today nor yesterday complete",
			completed: daySet("2025-01-01", "2025-01-02"),
			today:     "2025-01-05",
			want:      0,
		},
		{
			name:      "only today complete",
			completed: daySet("2025-01-03"),
			today:     "2025-01-03",
			want:      1,
		},
		{
			name:      "history beyond the first gap is irrelevant",
			completed: daySet("2024-12-25", "2024-12-26", "2024-12-31", "2025-01-01", "2025-01-02"),
			today:     "2025-01-02",
			want:      3,
		},
		{
			name:      "streak crosses a month boundary",
			completed: daySet("2025-02-27", "2025-02-28", "2025-03-01"),
			today:     "2025-03-01",
			want:      3,
		},
		{
			name:      "streak crosses a year boundary",
			completed: daySet("2024-12-30", "2024-12-31", "2025-01-01"),
			today:     "2025-01-01",
			want:      3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CurrentStreak(tt.completed, calendar.MustParse(tt.today))
			if got != tt.want {
				t.Errorf("CurrentStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCurrentStreakExactLength(t *testing.T) {
	// A run of exactly k days ending today must yield k, with no off-by-one.
	today := calendar.MustParse("2025-06-15")
	for k := 1; k <= 40; k++ {
		completed := calendar.NewDaySet()
		for i := 0; i < k; i++ {
			completed.Add(today.AddDays(-i))
		}
		if got := CurrentStreak(completed, today); got != k {
			t.Fatalf("run of %d days: CurrentStreak() = %d", k, got)
		}
	}
}

func TestBestStreak(t *testing.T) {
	tests := []struct {
		name      string
		completed calendar.DaySet
		want      int
	}{
		{
			name:      "empty set",
			completed: daySet(),
			want:      0,
		},
		{
			name:      "single day",
			completed: daySet("2025-01-01"),
			want:      1,
		},
		{
			name:      "longest run is in the past",
			completed: daySet("2025-01-01", "2025-01-02", "2025-01-03", "2025-01-10"),
			want:      3,
		},
		{
			name:      "two equal runs",
			completed: daySet("2025-01-01", "2025-01-02", "2025-01-05", "2025-01-06"),
			want:      2,
		},
		{
			name:      "run spanning a month boundary",
			completed: daySet("2025-01-30", "2025-01-31", "2025-02-01", "2025-02-02"),
			want:      4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BestStreak(tt.completed); got != tt.want {
				t.Errorf("BestStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuildGrid(t *testing.T) {
	completed := daySet("2025-01-14")
	cells, err := BuildGrid(completed, calendar.MustParse("2025-01-14"), 14)
	if err != nil {
		t.Fatalf("BuildGrid() error: %v", err)
	}

	if len(cells) != 14 {
		t.Fatalf("expected 14 cells, got %d", len(cells))
	}

	// Oldest-first ordering: first cell is Jan 1, last is Jan 14.
	if got := cells[0].Day.String(); got != "2025-01-01" {
		t.Errorf("first cell day = %s, want 2025-01-01", got)
	}
	if got := cells[13].Day.String(); got != "2025-01-14" {
		t.Errorf("last cell day = %s, want 2025-01-14", got)
	}

	for i, c := range cells {
		want := 0
		if i == 13 {
			want = 1
		}
		if c.Count != want {
			t.Errorf("cell %d (%s): count = %d, want %d", i, c.Day, c.Count, want)
		}
	}

	if got := Rate(cells); got != 7 {
		t.Errorf("Rate() = %d, want 7", got)
	}
}

func TestBuildGridLengthInvariant(t *testing.T) {
	end := calendar.MustParse("2025-03-31")
	sets := []calendar.DaySet{
		daySet(),
		daySet("2025-03-31"),
		daySet("2020-01-01", "2025-03-15", "2025-03-31"),
	}
	for _, n := range []int{0, 7, 14, 28, 91} {
		for _, s := range sets {
			cells, err := BuildGrid(s, end, n)
			if err != nil {
				t.Fatalf("BuildGrid(%d) error: %v", n, err)
			}
			if len(cells) != n {
				t.Errorf("BuildGrid(%d) returned %d cells", n, len(cells))
			}
		}
	}
}

func TestBuildGridNegativeDays(t *testing.T) {
	if _, err := BuildGrid(daySet(), calendar.MustParse("2025-01-01"), -1); err == nil {
		t.Error("expected error for negative numDays")
	}
}

func TestRate(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		want   int
	}{
		{name: "empty", counts: nil, want: 0},
		{name: "all complete", counts: []int{1, 1, 1, 1}, want: 100},
		{name: "none complete", counts: []int{0, 0, 0}, want: 0},
		{name: "half rounds to 50", counts: []int{1, 0, 1, 0}, want: 50},
		{name: "one of three rounds to 33", counts: []int{1, 0, 0}, want: 33},
		{name: "two of three rounds to 67", counts: []int{1, 1, 0}, want: 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := cellsWithCounts(tt.counts)
			if got := Rate(cells); got != tt.want {
				t.Errorf("Rate() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWeekBlocks(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		want   []int
	}{
		{
			name:   "empty",
			counts: nil,
			want:   nil,
		},
		{
			name:   "single full week",
			counts: []int{1, 1, 1, 1, 1, 1, 1},
			want:   []int{100},
		},
		{
			name:   "two full weeks oldest first",
			counts: []int{0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1},
			want:   []int{0, 100},
		},
		{
			// 10 cells: chunking anchors at the newest end, so the oldest
			// block holds only the 3 leading cells and is averaged over 3.
			name:   "partial oldest block averaged over its own length",
			counts: []int{1, 1, 1, 0, 0, 0, 0, 0, 0, 0},
			want:   []int{100, 0},
		},
		{
			name:   "partial oldest block mixed",
			counts: []int{1, 0, 0, 1, 1, 1, 1, 1, 1, 1},
			want:   []int{33, 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekBlocks(cellsWithCounts(tt.counts))
			if len(got) != len(tt.want) {
				t.Fatalf("WeekBlocks() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("block %d = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestWeekdayHistogram(t *testing.T) {
	// 2025-01-05 is a Sunday; two full weeks ending Saturday 2025-01-18.
	completed := daySet("2025-01-05", "2025-01-12", "2025-01-08", "2025-01-18")
	cells, err := BuildGrid(completed, calendar.MustParse("2025-01-18"), 14)
	if err != nil {
		t.Fatalf("BuildGrid() error: %v", err)
	}

	hist := WeekdayHistogram(cells)

	if hist[0] != 2 {
		t.Errorf("Sunday count = %d, want 2", hist[0])
	}
	if hist[3] != 1 {
		t.Errorf("Wednesday count = %d, want 1", hist[3])
	}
	if hist[6] != 1 {
		t.Errorf("Saturday count = %d, want 1", hist[6])
	}

	// The histogram total always equals the total cell count.
	total := 0
	for _, n := range hist {
		total += n
	}
	sum := 0
	for _, c := range cells {
		sum += c.Count
	}
	if total != sum {
		t.Errorf("histogram total = %d, cell sum = %d", total, sum)
	}
}

func TestIsMilestone(t *testing.T) {
	for _, m := range Milestones {
		if !IsMilestone(m) {
			t.Errorf("IsMilestone(%d) = false", m)
		}
	}
	for _, n := range []int{0, 1, 4, 6, 11, 49, 51} {
		if IsMilestone(n) {
			t.Errorf("IsMilestone(%d) = true", n)
		}
	}
}

func cellsWithCounts(counts []int) []Cell {
	start := calendar.MustParse("2025-01-01")
	cells := make([]Cell, len(counts))
	for i, c := range counts {
		cells[i] = Cell{Day: start.AddDays(i), Count: c}
	}
	return cells
}
