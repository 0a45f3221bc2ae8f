package level

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/pipeshot/internal/engine"
)

// MaxSize is the largest accepted level width or height.
const MaxSize = 64

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validation error codes.
const (
	CodeBadSize      = "BAD_SIZE"
	CodeOutOfBounds  = "OUT_OF_BOUNDS"
	CodeOverlap      = "OVERLAP"
	CodeBadCannon    = "BAD_CANNON"
	CodeNotSolvable  = "NOT_SOLVABLE"
	CodeSolveTimeout = "SOLVE_TIMEOUT"
)

// Validate performs comprehensive validation of a level.
// Checks:
//   - Dimensions are within 1..MaxSize
//   - Every object lies inside the field
//   - No two objects share a cell (roads excepted)
//   - The cannon does not fire straight off the field
//   - Some arrangement of the level's pipes wins within maxSteps
func Validate(l Level, maxSteps int) error {
	if err := ValidateStructure(l); err != nil {
		return err
	}

	_, err := Solve(l, maxSteps)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrUnsolvable):
		return ValidationError{
			Code:    CodeNotSolvable,
			Message: fmt.Sprintf("no arrangement of %d pipe(s) reaches the goal within %d steps", len(l.Pipes), stepCap(maxSteps)),
		}
	case errors.Is(err, ErrSolveBudget):
		return ValidationError{
			Code:    CodeSolveTimeout,
			Message: fmt.Sprintf("solver gave up after %d positions", DefaultSolveBudget),
		}
	default:
		return err
	}
}

type object struct {
	what string
	at   engine.Coord
}

// ValidateStructure runs the checks that do not need a search.
func ValidateStructure(l Level) error {
	if l.Width < 1 || l.Height < 1 || l.Width > MaxSize || l.Height > MaxSize {
		return ValidationError{
			Code:    CodeBadSize,
			Message: fmt.Sprintf("size %dx%d outside 1..%d", l.Width, l.Height, MaxSize),
		}
	}

	inside := func(c engine.Coord) bool {
		return c.Col >= 0 && c.Col < l.Width && c.Row >= 0 && c.Row < l.Height
	}

	objects := []object{
		{"cannon", l.Cannon.Pos},
		{"goal", l.Goal},
	}
	for _, p := range l.Pipes {
		objects = append(objects, object{"pipe " + p.Type.String(), p.Cell})
	}
	for _, c := range l.Walls {
		objects = append(objects, object{"wall", c})
	}
	for _, c := range l.Pits {
		objects = append(objects, object{"pit", c})
	}

	taken := make(map[engine.Coord]string, len(objects))
	for _, o := range objects {
		if !inside(o.at) {
			return ValidationError{
				Code:    CodeOutOfBounds,
				Message: fmt.Sprintf("%s at %s is outside the %dx%d field", o.what, o.at, l.Width, l.Height),
			}
		}
		if prev, ok := taken[o.at]; ok {
			return ValidationError{
				Code:    CodeOverlap,
				Message: fmt.Sprintf("%s and %s share cell %s", prev, o.what, o.at),
			}
		}
		taken[o.at] = o.what
	}
	for _, c := range l.Roads {
		if !inside(c) {
			return ValidationError{
				Code:    CodeOutOfBounds,
				Message: fmt.Sprintf("road at %s is outside the %dx%d field", c, l.Width, l.Height),
			}
		}
	}

	if !l.Cannon.Dir.Valid() {
		return ValidationError{
			Code:    CodeBadCannon,
			Message: fmt.Sprintf("cannon has unknown direction %d", l.Cannon.Dir),
		}
	}
	if !inside(l.Cannon.Pos.Step(l.Cannon.Dir)) {
		return ValidationError{
			Code:    CodeBadCannon,
			Message: fmt.Sprintf("cannon at %s fires %s straight off the field", l.Cannon.Pos, l.Cannon.Dir),
		}
	}

	return nil
}
