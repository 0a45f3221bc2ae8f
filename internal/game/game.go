// Package game implements the playable pipeshot puzzle on top of the engine:
// a cursor over the field, pipes that can be picked up, dropped and rotated,
// and a cannon whose balls fly as engine flights animated tick by tick.
package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pipeshot/internal/config"
	"github.com/vovakirdan/pipeshot/internal/core"
	"github.com/vovakirdan/pipeshot/internal/engine"
	"github.com/vovakirdan/pipeshot/internal/level"
)

// Messages shown when an action is refused.
const (
	msgLocked    = "Pipes are locked while a ball is in flight"
	msgNoPipe    = "No pipe here"
	msgCantDrop  = "Cannot drop a pipe here"
	msgCarrying  = "Put the pipe down before firing"
	msgCleared   = "Level cleared!"
	msgCompleted = "Campaign complete!"
)

// ShotRecorder persists finished shots. storage.Store implements it.
type ShotRecorder interface {
	SaveShot(levelID, shotID string, won bool, reason string, steps int) error
}

// carried is a pipe the player has picked up.
type carried struct {
	pipe   engine.PipeType
	origin engine.Coord
}

// outcome is what a flight reports when it finishes.
type outcome struct {
	ball engine.Ball
	won  bool
}

// Game is one play session over an ordered list of levels.
type Game struct {
	levels []level.Level
	index  int
	level  level.Level // working copy, pipes as the player arranged them
	board  *engine.Board

	opts     engine.Options
	render   config.RenderConfig
	recorder ShotRecorder
	logger   *log.Logger

	ctx    context.Context
	cancel context.CancelFunc

	cursor engine.Coord
	carry  *carried
	shots  []*shot

	mu       sync.Mutex
	finished []outcome
	retired  map[string]*engine.Flight

	tick    uint64
	dt      time.Duration
	fired   int
	lost    int
	cleared bool
	done    bool
	message string

	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a game over levels, starting with the first one.
func New(levels []level.Level, cfg config.Config) (*Game, error) {
	if len(levels) == 0 {
		return nil, errors.New("game: no levels to play")
	}

	g := &Game{
		levels:  slices.Clone(levels),
		opts:    cfg.EngineOptions(),
		render:  cfg.Render,
		logger:  log.New(io.Discard),
		retired: make(map[string]*engine.Flight),
	}
	g.Reset(core.DefaultConfig())
	return g, nil
}

// SetRecorder sets where finished shots are saved. nil disables saving.
func (g *Game) SetRecorder(r ShotRecorder) {
	g.recorder = r
}

// SetLogger replaces the default discarding logger.
func (g *Game) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	g.logger = l
}

// Reset applies the runtime configuration and reloads the current level.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.dt = rc.TickDuration()
	g.tick = 0
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.load(g.index)
}

// Resize updates the screen dimensions without touching the level.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.refit()
}

func (g *Game) refit() {
	_, _, ok := g.fit()
	g.tooSmall = !ok
}

// Close stops every flight and waits for their goroutines to exit.
func (g *Game) Close() {
	g.stopFlights()
}

// Level returns the level as currently arranged by the player.
func (g *Game) Level() level.Level {
	return g.level.Clone()
}

// LevelIndex returns the 0-based position of the current level.
func (g *Game) LevelIndex() int {
	return g.index
}

// LevelCount returns the number of levels in the session.
func (g *Game) LevelCount() int {
	return len(g.levels)
}

// Cursor returns the cell under the cursor.
func (g *Game) Cursor() engine.Coord {
	return g.cursor
}

// InFlight returns how many balls are currently flying.
func (g *Game) InFlight() int {
	return len(g.shots)
}

// Message returns the latest status message.
func (g *Game) Message() string {
	return g.message
}

// SelectLevel jumps to the level at index i (0-based).
func (g *Game) SelectLevel(i int) error {
	if i < 0 || i >= len(g.levels) {
		return fmt.Errorf("game: level index %d out of range", i)
	}
	g.load(i)
	return nil
}

// load cancels every flight and restores level i as authored.
func (g *Game) load(i int) {
	g.stopFlights()

	g.index = i
	g.level = g.levels[i].Clone()
	g.board = g.level.Board()
	g.carry = nil
	g.fired = 0
	g.lost = 0
	g.cleared = false
	g.done = false
	g.message = ""

	g.cursor = g.level.Cannon.Pos
	if len(g.level.Pipes) > 0 {
		g.cursor = g.level.Pipes[0].Cell
	}

	g.refit()
	g.ctx, g.cancel = context.WithCancel(context.Background())
	g.logger.Debug("level loaded", "level", g.level.ID, "pipes", len(g.level.Pipes))
}

// stopFlights cancels all flights silently and forgets their results.
func (g *Game) stopFlights() {
	if g.cancel != nil {
		g.cancel()
	}
	for _, s := range g.shots {
		s.flight.Wait()
	}
	g.shots = nil

	g.mu.Lock()
	g.finished = nil
	g.mu.Unlock()
	clear(g.retired)
}

// Restart reloads the current level.
func (g *Game) Restart() {
	g.load(g.index)
}

// NextLevel moves on to the following level. After the last level the
// campaign is complete and the next call wraps around to the first.
func (g *Game) NextLevel() {
	if g.index >= len(g.levels)-1 {
		if g.cleared && !g.done {
			g.done = true
			g.message = msgCompleted
			g.stopFlights()
			return
		}
		g.load(0)
		return
	}
	g.load(g.index + 1)
}

// PrevLevel moves back one level, staying on the first.
func (g *Game) PrevLevel() {
	g.load(max(g.index-1, 0))
}

// MoveCursor moves the cursor one cell, staying inside the field.
func (g *Game) MoveCursor(d engine.Dir) {
	next := g.cursor.Step(d)
	next.Col = core.Clamp(next.Col, 0, g.level.Width-1)
	next.Row = core.Clamp(next.Row, 0, g.level.Height-1)
	g.cursor = next
}

// locked reports whether the field may not change right now.
func (g *Game) locked() bool {
	if len(g.shots) > 0 {
		g.message = msgLocked
		return true
	}
	return false
}

// Rotate turns the carried pipe, or the pipe under the cursor.
// It reports whether anything rotated.
func (g *Game) Rotate() bool {
	if g.carry != nil {
		g.carry.pipe = g.carry.pipe.Rotate()
		g.message = ""
		return true
	}

	i := g.level.PipeIndex(g.cursor)
	if i < 0 {
		g.message = msgNoPipe
		return false
	}
	if g.locked() {
		return false
	}

	g.level.Pipes[i].Type = g.level.Pipes[i].Type.Rotate()
	g.rebuild()
	return true
}

// Grab picks up the pipe under the cursor, or drops the carried pipe on the
// cursor cell. It reports whether anything changed.
func (g *Game) Grab() bool {
	if g.locked() {
		return false
	}

	if g.carry != nil {
		if !g.level.CanHoldPipe(g.cursor) {
			g.message = msgCantDrop
			return false
		}
		g.level.Pipes = append(g.level.Pipes, level.PipeSpot{Cell: g.cursor, Type: g.carry.pipe})
		g.logger.Debug("pipe dropped", "level", g.level.ID, "from", g.carry.origin, "to", g.cursor)
		g.carry = nil
		g.rebuild()
		return true
	}

	i := g.level.PipeIndex(g.cursor)
	if i < 0 {
		g.message = msgNoPipe
		return false
	}
	g.carry = &carried{pipe: g.level.Pipes[i].Type, origin: g.cursor}
	g.level.Pipes = slices.Delete(g.level.Pipes, i, i+1)
	g.rebuild()
	return true
}

// rebuild replaces the board after an edit. Flights keep the board they
// were launched with.
func (g *Game) rebuild() {
	g.board = g.level.Board()
	g.message = ""
}

// Fire launches a ball from the cannon. It reports whether a ball was fired.
func (g *Game) Fire() bool {
	if g.carry != nil {
		g.message = msgCarrying
		return false
	}

	ball := g.level.Cannon.Fire()
	fl := engine.Launch(g.ctx, g.board, ball, g.opts, g.complete)
	g.shots = append(g.shots, &shot{flight: fl})
	g.fired++
	g.message = ""
	g.logger.Debug("ball fired", "level", g.level.ID, "ball", ball.ID)
	return true
}

// complete runs on the flight's goroutine.
func (g *Game) complete(b engine.Ball, won bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.finished = append(g.finished, outcome{ball: b, won: won})
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) {
	g.tick++

	if g.tooSmall {
		return
	}

	g.handleInput(in)
	g.Advance(g.dt)
}

func (g *Game) handleInput(in core.InputFrame) {
	switch {
	case in.Has(core.ActionRestart):
		g.Restart()
		return
	case in.Has(core.ActionNext):
		g.NextLevel()
		return
	case in.Has(core.ActionPrev):
		g.PrevLevel()
		return
	}

	if g.cleared || g.done {
		if in.Has(core.ActionConfirm) || in.Has(core.ActionFire) {
			g.NextLevel()
		}
		return
	}

	switch {
	case in.Has(core.ActionUp):
		g.MoveCursor(engine.DirUp)
	case in.Has(core.ActionDown):
		g.MoveCursor(engine.DirDown)
	case in.Has(core.ActionLeft):
		g.MoveCursor(engine.DirLeft)
	case in.Has(core.ActionRight):
		g.MoveCursor(engine.DirRight)
	}

	switch {
	case in.Has(core.ActionRotate):
		g.Rotate()
	case in.Has(core.ActionGrab):
		g.Grab()
	case in.Has(core.ActionFire), in.Has(core.ActionConfirm):
		g.Fire()
	}
}

// Advance plays dt worth of animation on every flight and settles the ones
// that finished.
func (g *Game) Advance(dt time.Duration) {
	active := g.shots[:0]
	for _, s := range g.shots {
		if s.advance(dt) {
			active = append(active, s)
			continue
		}
		s.flight.Wait()
		g.retired[s.flight.ID()] = s.flight
	}
	clear(g.shots[len(active):])
	g.shots = active

	g.settle()
}

// settle handles outcomes reported by finished flights.
func (g *Game) settle() {
	g.mu.Lock()
	pending := g.finished[:0]
	var ready []outcome
	for _, o := range g.finished {
		if _, ok := g.retired[o.ball.ID]; ok {
			ready = append(ready, o)
		} else {
			pending = append(pending, o)
		}
	}
	g.finished = pending
	g.mu.Unlock()

	for _, o := range ready {
		fl := g.retired[o.ball.ID]
		delete(g.retired, o.ball.ID)
		g.finish(o, fl.Reason(), fl.Steps())
	}
}

func (g *Game) finish(o outcome, reason engine.LossReason, steps int) {
	reasonText := ""
	if !o.won {
		reasonText = reason.String()
		g.lost++
	}

	g.logger.Info("shot finished",
		"level", g.level.ID,
		"ball", o.ball.ID,
		"won", o.won,
		"reason", reasonText,
		"steps", steps,
	)

	if g.recorder != nil {
		if err := g.recorder.SaveShot(g.level.ID, o.ball.ID, o.won, reasonText, steps); err != nil {
			g.logger.Warn("cannot save shot", "ball", o.ball.ID, "err", err)
		}
	}

	if o.won && !g.cleared {
		g.cleared = true
		g.message = msgCleared
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Space: Rotate | G: Grab/Drop | F/Enter: Fire | R: Restart | N/P: Level | Q: Quit"
}
