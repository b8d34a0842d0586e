package aim

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/focus-arcade/internal/config"
	"github.com/vovakirdan/focus-arcade/internal/core"
)

// Visual characters for rendering
const (
	CrosshairChar = '+'
	DotChar       = '●'
	FadingDotChar = '○'
)

// layout places the aim screen inside the game area (cells).
type layout struct {
	w, h     int
	box      core.Rect // arena border
	inner    core.Rect // arena interior, the pixel space of the game
	hintY    int
	bestY    int
	docY     int
	docLines int
}

func computeLayout(w, h int) layout {
	l := layout{w: w, h: h}
	if h >= 24 {
		l.docLines = len(config.AimDoc)
	}
	footer := 2 + l.docLines

	boxH := h - 2 - footer
	if boxH < 3 {
		boxH = 3
	}
	l.box = core.NewRect(0, 2, w, boxH)
	l.inner = core.NewRect(1, 3, max(1, w-2), max(1, boxH-2))
	l.hintY = l.box.Bottom()
	l.bestY = l.hintY + 1
	l.docY = l.bestY + 1
	return l
}

// Resize sets the game area size in cells. The crosshair is stored as a
// fraction of the arena, so it keeps its relative position.
func (g *Game) Resize(w, h int) {
	g.layout = computeLayout(w, h)
	g.arena = core.Size{
		W: float64(g.layout.inner.W) * g.cellW,
		H: float64(g.layout.inner.H) * g.cellH,
	}
}

// toArena converts a game-area pixel position into arena pixels.
func (g *Game) toArena(pos core.Vec) (core.Vec, bool) {
	p := core.Vec{
		X: pos.X - float64(g.layout.inner.X)*g.cellW,
		Y: pos.Y - float64(g.layout.inner.Y)*g.cellH,
	}
	return p, g.arenaGeom().Contains(p)
}

// toCell maps an arena pixel position to a screen cell inside the arena.
func (g *Game) toCell(p core.Vec) (int, int) {
	in := g.layout.inner
	cx := core.Clamp(int(math.Floor(p.X/g.cellW)), 0, in.W-1)
	cy := core.Clamp(int(math.Floor(p.Y/g.cellH)), 0, in.H-1)
	return in.X + cx, in.Y + cy
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	g.drawHeader(dst)
	g.drawSettings(dst)

	l := g.layout
	dst.DrawBox(l.box, core.ColorGray)

	hot := g.HotZones()
	g.drawUnlock(dst, hot.Unlock)

	now := g.sched.Now()
	for _, t := range g.targets {
		g.drawTarget(dst, t, t.Remaining(now))
	}

	switch {
	case !g.locked && !g.fallback:
		c := core.ColorYellow
		if hot.Overlay {
			c = core.ColorBrightYellow
		}
		g.drawArenaText(dst, l.inner.Y+l.inner.H/2, config.AimOverlay, c)
	case g.startVisible:
		c := core.ColorGreen
		if g.sess.Runtime.HasPlayedAimBefore {
			c = core.ColorOrange
		}
		if hot.Start {
			c = core.ColorBrightGreen
		}
		g.drawArenaText(dst, l.inner.Y+l.inner.H/2, "[ "+g.StartLabel()+" ]", c)
	}

	if g.summary != "" {
		g.drawArenaText(dst, l.inner.Bottom()-1, g.summary, core.ColorWhite)
	}

	x, y := g.toCell(g.CrosshairPx())
	dst.SetColor(x, y, CrosshairChar, core.ColorBrightRed)

	dst.DrawTextColor(1, l.hintY, config.AimHint, core.ColorGray)
	dst.DrawTextColor(1, l.bestY, config.BestLabel(g.sess.Best.Get(config.GameAim)), core.ColorCyan)
	for i := 0; i < l.docLines; i++ {
		dst.DrawTextColor(1, l.docY+i, config.AimDoc[i], core.ColorGray)
	}
}

func (g *Game) drawHeader(dst *core.Screen) {
	dst.DrawTextColor(1, 0, config.AimTitle, core.ColorBrightCyan)

	lock := config.AimLockOff
	lockColor := core.ColorGray
	if g.locked {
		lock = config.AimLockOn
		lockColor = core.ColorBrightGreen
	}
	badges := []struct {
		text string
		c    core.Color
	}{
		{fmt.Sprintf("%s · eDPI %s", lock, g.sess.Sens.EDPI()), lockColor},
		{config.TimeLabel(g.timeLeft), core.ColorYellow},
		{config.ScoreLabel(g.score), core.ColorWhite},
	}

	width := 0
	for _, b := range badges {
		width += len([]rune(b.text)) + 3
	}
	x := dst.Width() - width
	for _, b := range badges {
		dst.DrawTextColor(x, 0, "["+b.text+"]", b.c)
		x += len([]rune(b.text)) + 3
	}
}

func (g *Game) drawSettings(dst *core.Screen) {
	s := g.sess.Sens
	var parts []string
	parts = append(parts, fmt.Sprintf("%s (g)", s.Profile().Name))
	parts = append(parts, fmt.Sprintf("DPI %.0f (d/D)", s.DPI))
	if s.AxisSplit {
		parts = append(parts, fmt.Sprintf("Sens X %.2f (s/S) Y %.2f (y/Y)", s.SensX, s.SensY))
	} else {
		parts = append(parts, fmt.Sprintf("Sens %.2f (s/S)", s.Sens))
	}
	axis := "off"
	if s.AxisSplit {
		axis = "on"
	}
	parts = append(parts, fmt.Sprintf("Split %s (x)", axis))
	parts = append(parts, fmt.Sprintf("%s (c)", g.sess.Difficulty().Label()))
	parts = append(parts, fmt.Sprintf("%.1fcm/360", s.CmPer360()))

	dst.DrawTextColor(1, 1, strings.Join(parts, "  "), core.ColorDefault)
}

func (g *Game) drawUnlock(dst *core.Screen, hot bool) {
	arena := g.arenaGeom()
	zw, zh, margin := arena.UnlockZone()
	x0, y0 := g.toCell(core.Vec{X: g.arena.W - zw - margin, Y: g.arena.H - zh - margin})
	x1, y1 := g.toCell(core.Vec{X: g.arena.W - margin, Y: g.arena.H - margin})

	c := core.ColorGray
	if hot {
		c = core.ColorBrightYellow
	}
	r := core.NewRect(x0, y0, x1-x0+1, y1-y0+1)
	if r.W >= len(config.AimUnlock)+2 && r.H >= 3 {
		dst.DrawBox(r, c)
	}
	cx, cy := g.toCell(arena.UnlockCenter())
	dst.DrawTextColor(cx-len(config.AimUnlock)/2, cy, config.AimUnlock, c)
}

func (g *Game) drawTarget(dst *core.Screen, t *Target, left float64) {
	x, y := g.toCell(t.Pos)

	r, c := DotChar, core.ColorBrightGreen
	switch {
	case left < 0.33:
		r, c = FadingDotChar, core.ColorGray
	case left < 0.66:
		c = core.ColorGreen
	}
	dst.SetColor(x, y, r, c)

	// Dots wider than a cell get brackets.
	if t.Size >= 2*g.cellW {
		dst.SetColor(x-1, y, '(', c)
		dst.SetColor(x+1, y, ')', c)
	}
}

// drawArenaText centres text horizontally inside the arena.
func (g *Game) drawArenaText(dst *core.Screen, y int, text string, c core.Color) {
	in := g.layout.inner
	x := in.X + (in.W-len([]rune(text)))/2
	if x < in.X {
		x = in.X
	}
	dst.DrawTextColor(x, y, text, c)
}
