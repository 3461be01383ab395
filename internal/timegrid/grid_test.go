package timegrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cfg := Default()

	t.Run("nil grid becomes all busy", func(t *testing.T) {
		g := cfg.Normalize(nil)
		require.True(t, cfg.ValidShape(g))
		for d := 0; d < cfg.Days; d++ {
			for b := 0; b < cfg.Bins; b++ {
				assert.False(t, g[d][b])
			}
		}
	})

	t.Run("short rows pad as busy", func(t *testing.T) {
		src := Grid{{true, true}, nil}
		g := cfg.Normalize(src)
		require.True(t, cfg.ValidShape(g))
		assert.True(t, g[0][0])
		assert.True(t, g[0][1])
		assert.False(t, g[0][2])
		assert.False(t, g[1][0])
	})

	t.Run("oversized rows are truncated", func(t *testing.T) {
		row := make([]bool, 40)
		for i := range row {
			row[i] = true
		}
		src := Grid{row, row, row, row, row, row, row}
		g := cfg.Normalize(src)
		require.True(t, cfg.ValidShape(g))
		assert.Len(t, g, 5)
		assert.Len(t, g[0], 16)
		assert.True(t, g[4][15])
	})
}

func TestIntersect(t *testing.T) {
	cfg := Default()

	room := cfg.NewGrid()
	room[0][0] = true

	prof := cfg.NewGrid()
	prof[0][0] = true
	prof[0][1] = true

	student := cfg.NewGrid()
	student[0][0] = true

	got := cfg.Intersect(room, prof, student)
	assert.True(t, got[0][0])
	assert.False(t, got[0][1])
	for d := 0; d < cfg.Days; d++ {
		for b := 0; b < cfg.Bins; b++ {
			if d == 0 && b == 0 {
				continue
			}
			assert.False(t, got[d][b])
		}
	}
}

func TestSlotLabel(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "Monday 08:00-08:30", cfg.SlotLabel(0, 0, 1))
	assert.Equal(t, "Tuesday 09:00-09:30", cfg.SlotLabel(1, 2, 1))
	assert.Equal(t, "Friday 15:30-16:00", cfg.SlotLabel(4, 15, 1))
	assert.Equal(t, "Wednesday 10:00-11:00", cfg.SlotLabel(2, 4, 2))
}

func TestValidDayAndBin(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.ValidDay(0))
	assert.True(t, cfg.ValidDay(4))
	assert.False(t, cfg.ValidDay(-1))
	assert.False(t, cfg.ValidDay(5))

	assert.True(t, cfg.ValidBin(0))
	assert.True(t, cfg.ValidBin(15))
	assert.False(t, cfg.ValidBin(-1))
	assert.False(t, cfg.ValidBin(16))
}
