package game

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/pipeshot/internal/core"
	"github.com/vovakirdan/pipeshot/internal/engine"
)

const (
	hudRows    = 2 // level line and status line above the board
	footerRows = 2 // message and control hints below the board
)

// Fallback cell sizes tried when the configured one does not fit.
var fallbackCells = [][2]int{{4, 2}, {2, 1}}

// grid maps field cells to screen characters.
type grid struct {
	x, y   int // top-left character of cell (0,0)
	cw, ch int // characters per cell
	w, h   int // field size in cells
}

func (gr grid) origin(c engine.Coord) (int, int) {
	return gr.x + c.Col*gr.cw, gr.y + c.Row*gr.ch
}

func (gr grid) center(c engine.Coord) (int, int) {
	x, y := gr.origin(c)
	return x + gr.cw/2, y + gr.ch/2
}

// project converts a pixel position to a screen character inside the board.
func (gr grid) project(p engine.Point, cellSize float64) (int, int) {
	x := gr.x + int(math.Floor(p.X/cellSize*float64(gr.cw)))
	y := gr.y + int(math.Floor(p.Y/cellSize*float64(gr.ch)))
	return core.Clamp(x, gr.x, gr.x+gr.w*gr.cw-1), core.Clamp(y, gr.y, gr.y+gr.h*gr.ch-1)
}

// fit picks the largest cell size whose board fits on the screen.
func (g *Game) fit() (cw, ch int, ok bool) {
	sizes := append([][2]int{{g.render.CellW, g.render.CellH}}, fallbackCells...)
	for _, s := range sizes {
		if s[0] < 1 || s[1] < 1 {
			continue
		}
		w := g.level.Width*s[0] + 2
		h := g.level.Height*s[1] + 2 + hudRows + footerRows
		if w <= g.screenW && h <= g.screenH {
			return s[0], s[1], true
		}
	}
	return 0, 0, false
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	cw, ch, _ := g.fit()
	gr := grid{cw: cw, ch: ch, w: g.level.Width, h: g.level.Height}
	boardW := gr.w * cw
	boardH := gr.h * ch
	gr.x = (g.screenW - boardW) / 2
	gr.y = hudRows + 1

	g.renderHUD(dst, gr.x, boardW)
	dst.DrawBox(core.NewRect(gr.x-1, gr.y-1, boardW+2, boardH+2), core.ColorGray)

	for row := range gr.h {
		for col := range gr.w {
			g.renderCell(dst, gr, engine.C(col, row))
		}
	}
	g.renderCursor(dst, gr)
	g.renderBalls(dst, gr)

	footerY := gr.y + boardH + 1
	if g.message != "" {
		dst.DrawTextCentered(footerY, g.message, core.ColorYellow)
	}
	dst.DrawTextCentered(footerY+1, g.shortControls(), core.ColorGray)

	g.renderOverlays(dst, gr.x+boardW/2, gr.y+boardH/2)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorGray)
}

func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := fmt.Sprintf("Level %d/%d: %s", g.index+1, len(g.levels), g.level.Title())
	dst.DrawTextColor(boardX, 0, title, core.ColorBrightCyan)

	counts := fmt.Sprintf("Shots: %d  Lost: %d", g.fired, g.lost)
	x := max(boardX+boardW-utf8.RuneCountInString(counts), boardX)
	dst.DrawText(x, 0, counts)

	var status string
	switch {
	case g.carry != nil:
		status = fmt.Sprintf("Carrying %c", g.carry.pipe.Glyph())
	case len(g.shots) > 0:
		status = fmt.Sprintf("Balls in flight: %d", len(g.shots))
	default:
		status = "Arrange the pipes, then fire"
	}
	dst.DrawTextCentered(1, status, core.ColorDefault)
}

func (g *Game) renderCell(dst *core.Screen, gr grid, c engine.Coord) {
	x0, y0 := gr.origin(c)
	cx, cy := gr.center(c)
	cell := core.NewRect(x0, y0, gr.cw, gr.ch)
	content := g.board.At(c)

	switch content.Kind {
	case engine.KindWall:
		dst.DrawRect(cell, '▓', core.ColorGray)
	case engine.KindPit:
		dst.DrawRect(cell, '~', core.ColorBlue)
	case engine.KindGoal:
		color := core.ColorGreen
		if g.cleared {
			color = core.ColorBrightGreen
		}
		dst.SetColor(cx, cy, '○', color)
	case engine.KindCannon:
		d := g.level.Cannon.Dir
		drawArm(dst, gr, c, d, core.ColorOrange)
		dst.SetColor(cx, cy, d.Arrow(), core.ColorOrange)
	case engine.KindPipe:
		drawPipe(dst, gr, c, content.Pipe, core.ColorCyan)
	default:
		if g.level.IsRoad(c) {
			dst.SetColor(cx, cy, '*', core.ColorGray)
		} else {
			dst.SetColor(cx, cy, '·', core.ColorGray)
		}
	}
}

// drawPipe draws pipe p as its corner glyph with arms reaching the two
// borders it connects.
func drawPipe(dst *core.Screen, gr grid, c engine.Coord, p engine.PipeType, color core.Color) {
	for _, entry := range engine.Entries(p) {
		drawArm(dst, gr, c, entry.Opposite(), color)
	}
	cx, cy := gr.center(c)
	dst.SetColor(cx, cy, p.Glyph(), color)
}

// drawArm draws a line from the cell center to its border facing d.
func drawArm(dst *core.Screen, gr grid, c engine.Coord, d engine.Dir, color core.Color) {
	x0, y0 := gr.origin(c)
	cx, cy := gr.center(c)

	switch d {
	case engine.DirRight:
		for x := cx + 1; x < x0+gr.cw; x++ {
			dst.SetColor(x, cy, '─', color)
		}
	case engine.DirLeft:
		for x := x0; x < cx; x++ {
			dst.SetColor(x, cy, '─', color)
		}
	case engine.DirUp:
		for y := y0; y < cy; y++ {
			dst.SetColor(cx, y, '│', color)
		}
	case engine.DirDown:
		for y := cy + 1; y < y0+gr.ch; y++ {
			dst.SetColor(cx, y, '│', color)
		}
	}
}

func (g *Game) renderCursor(dst *core.Screen, gr grid) {
	if g.carry != nil && g.board.At(g.cursor).Kind == engine.KindEmpty {
		drawPipe(dst, gr, g.cursor, g.carry.pipe, core.ColorBrightYellow)
	}

	x0, _ := gr.origin(g.cursor)
	cx, cy := gr.center(g.cursor)
	if gr.cw < 3 {
		dst.SetColor(cx, cy, dst.Get(cx, cy), core.ColorBrightYellow)
		return
	}
	dst.SetColor(x0, cy, '[', core.ColorYellow)
	dst.SetColor(x0+gr.cw-1, cy, ']', core.ColorYellow)
}

func (g *Game) renderBalls(dst *core.Screen, gr grid) {
	for _, s := range g.shots {
		p, scale, ok := s.position()
		if !ok {
			continue
		}
		glyph := '●'
		if scale > 1.1 {
			glyph = '◉'
		}
		x, y := gr.project(p, g.opts.Geometry.CellSize)
		dst.SetColor(x, y, glyph, core.ColorBrightRed)
	}
}

func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	switch {
	case g.done:
		g.drawOverlay(dst, centerX, centerY,
			"CAMPAIGN COMPLETE!",
			fmt.Sprintf("All %d levels solved", len(g.levels)),
			"Enter: play again")
	case g.cleared:
		next := "Enter: next level"
		if g.index >= len(g.levels)-1 {
			next = "Enter: finish"
		}
		g.drawOverlay(dst, centerX, centerY,
			"LEVEL CLEARED!",
			fmt.Sprintf("Shots: %d", g.fired),
			next)
	}
}

// drawOverlay draws a centered boxed text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightGreen)

	inner := box.Inset(1)
	for i, line := range lines {
		x := centerX - utf8.RuneCountInString(line)/2
		dst.DrawText(x, inner.Y+i, line)
	}
}

func (g *Game) shortControls() string {
	return "arrows move  space rotate  g grab  f fire  r restart  n/p level  q quit"
}
