package memory

import (
	"fmt"
	"math"

	"github.com/vovakirdan/focus-arcade/internal/config"
	"github.com/vovakirdan/focus-arcade/internal/core"
)

// Layout returns the grid shape for a container of the given pixel size:
// a single row when wide, a single column when tall, 3x3 otherwise.
func Layout(w, h float64, t config.MemoryTuning) (cols, rows int) {
	aspect := w / math.Max(1, h)
	switch {
	case aspect >= t.WideAspect:
		return config.TileCount, 1
	case aspect <= t.TallAspect:
		return 1, config.TileCount
	default:
		return 3, 3
	}
}

type layout struct {
	w, h       int
	start      core.Rect // start button in the header
	box        core.Rect // grid border
	inner      core.Rect
	cols, rows int
	summaryY   int
	bestY      int
}

// Resize sets the game area size in cells and reflows the grid.
func (g *Game) Resize(w, h int) {
	l := layout{w: w, h: h}

	label := "[" + config.AimStart + "]"
	l.start = core.NewRect(w-len(label)-1, 0, len(label), 1)

	boxH := max(3, h-4)
	l.box = core.NewRect(0, 2, w, boxH)
	l.inner = core.NewRect(1, 3, max(1, w-2), max(1, boxH-2))
	l.summaryY = l.box.Bottom()
	l.bestY = l.summaryY + 1

	l.cols, l.rows = Layout(float64(l.inner.W)*g.cellW, float64(l.inner.H)*g.cellH, g.tuning)
	g.layout = l
}

// Grid returns the current grid shape.
func (g *Game) Grid() (cols, rows int) {
	return g.layout.cols, g.layout.rows
}

// tileRect returns the cell rectangle of tile i. Tiles are separated by a
// one-cell gap.
func (g *Game) tileRect(i int) core.Rect {
	l := g.layout
	col, row := i%l.cols, i/l.cols
	x0 := l.inner.X + col*l.inner.W/l.cols
	x1 := l.inner.X + (col+1)*l.inner.W/l.cols
	y0 := l.inner.Y + row*l.inner.H/l.rows
	y1 := l.inner.Y + (row+1)*l.inner.H/l.rows
	w, h := x1-x0, y1-y0
	if w > 2 {
		w--
	}
	if h > 2 {
		h--
	}
	return core.NewRect(x0, y0, max(1, w), max(1, h))
}

// cellAt converts a game-area pixel position to a cell.
func (g *Game) cellAt(pos core.Vec) (int, int) {
	return int(math.Floor(pos.X / g.cellW)), int(math.Floor(pos.Y / g.cellH))
}

// TileAt returns the tile under a game-area pixel position.
func (g *Game) TileAt(pos core.Vec) (int, bool) {
	x, y := g.cellAt(pos)
	for i := 0; i < config.TileCount; i++ {
		if g.tileRect(i).Contains(x, y) {
			return i, true
		}
	}
	return 0, false
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	l := g.layout

	dst.DrawTextColor(1, 0, config.MemoryTitle, core.ColorBrightCyan)
	badges := fmt.Sprintf("[%s] [%s] ", config.TimeLabel(g.timeLeft), config.RoundLabel(g.round))
	dst.DrawTextColor(l.start.X-len(badges), 0, badges, core.ColorYellow)
	startColor := core.ColorGreen
	if g.State().Running {
		startColor = core.ColorGray
	}
	dst.DrawTextColor(l.start.X, 0, "["+config.AimStart+"]", startColor)

	status := config.MemoryInfo
	switch g.phase {
	case PhasePlayback:
		status = "Watch the sequence..."
	case PhaseAwaitingInput:
		status = fmt.Sprintf("Your turn: %d/%d (keys 1-9 or click)", g.cursor, len(g.sequence))
	case PhaseRoundAdvancing:
		status = "Nice!"
	}
	dst.DrawTextColor(1, 1, status, core.ColorGray)

	dst.DrawBox(l.box, core.ColorGray)
	for i := 0; i < config.TileCount; i++ {
		g.drawTile(dst, i)
	}

	if g.summary != "" {
		c := core.ColorYellow
		if g.outcome == OutcomeMistake {
			c = core.ColorBrightRed
		}
		dst.DrawTextColor(1, l.summaryY, g.summary, c)
	}
	dst.DrawTextColor(1, l.bestY, config.BestLabel(g.sess.Best.Get(config.GameMemory)), core.ColorCyan)
}

func (g *Game) drawTile(dst *core.Screen, i int) {
	r := g.tileRect(i)
	fill, c := '░', core.ColorBlue
	if g.lit[i] {
		fill, c = '█', core.ColorBrightYellow
	}
	dst.DrawRect(r, fill, c)

	label := fmt.Sprintf("%d", i+1)
	cx, cy := r.Center()
	dst.SetColor(cx, cy, rune(label[0]), core.ColorWhite)
}
