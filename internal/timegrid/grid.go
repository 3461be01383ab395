package timegrid

import "fmt"

// Grid is a weekly availability matrix: Grid[day][bin] is true when the
// owner is free for that bin.
type Grid [][]bool

// Config describes the weekly scheduling grid geometry.
type Config struct {
	Days         int // number of week days covered (Mon..)
	Bins         int // bins per day
	BinMinutes   int // width of one bin in minutes
	DayStartHour int // hour of day the first bin starts at
	DurationBins int // bins a single presentation occupies
}

// Default returns the canonical grid: Mon-Fri, 16 thirty-minute bins
// covering 08:00-16:00, presentations one bin long.
func Default() Config {
	return Config{
		Days:         5,
		Bins:         16,
		BinMinutes:   30,
		DayStartHour: 8,
		DurationBins: 1,
	}
}

var dayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// NewGrid returns an all-busy grid of the configured shape.
func (c Config) NewGrid() Grid {
	g := make(Grid, c.Days)
	for d := range g {
		g[d] = make([]bool, c.Bins)
	}
	return g
}

// FullGrid returns an all-free grid of the configured shape.
func (c Config) FullGrid() Grid {
	g := c.NewGrid()
	for d := range g {
		for t := range g[d] {
			g[d][t] = true
		}
	}
	return g
}

// Normalize copies src into a grid of the canonical shape. Cells missing
// from src (short rows, nil rows, nil grid) are treated as busy; cells
// beyond the canonical shape are discarded.
func (c Config) Normalize(src Grid) Grid {
	g := c.NewGrid()
	for d := 0; d < c.Days; d++ {
		if d >= len(src) || src[d] == nil {
			continue
		}
		for t := 0; t < c.Bins && t < len(src[d]); t++ {
			g[d][t] = src[d][t]
		}
	}
	return g
}

// ValidShape reports whether g has exactly the configured shape.
func (c Config) ValidShape(g Grid) bool {
	if len(g) != c.Days {
		return false
	}
	for _, row := range g {
		if len(row) != c.Bins {
			return false
		}
	}
	return true
}

// Intersect returns the cell-wise AND of the given grids. Inputs are
// normalized first, so ragged grids only contribute busy cells.
func (c Config) Intersect(grids ...Grid) Grid {
	out := c.FullGrid()
	for _, g := range grids {
		n := c.Normalize(g)
		for d := 0; d < c.Days; d++ {
			for t := 0; t < c.Bins; t++ {
				out[d][t] = out[d][t] && n[d][t]
			}
		}
	}
	return out
}

// ValidDay reports whether d is a usable day index.
func (c Config) ValidDay(d int) bool {
	return d >= 0 && d < c.Days
}

// ValidBin reports whether t is a usable start-bin index.
func (c Config) ValidBin(t int) bool {
	return t >= 0 && t < c.Bins
}

// DayName returns the English week-day name for a day index.
func (c Config) DayName(d int) string {
	if d < 0 || d >= len(dayNames) {
		return fmt.Sprintf("Day%d", d)
	}
	return dayNames[d]
}

// SlotLabel renders a human-readable "<Day> HH:MM-HH:MM" label for a slot
// starting at startBin and spanning durBins bins.
func (c Config) SlotLabel(day, startBin, durBins int) string {
	start := c.DayStartHour*60 + startBin*c.BinMinutes
	end := start + durBins*c.BinMinutes
	return fmt.Sprintf("%s %02d:%02d-%02d:%02d",
		c.DayName(day), start/60, start%60, end/60, end%60)
}
