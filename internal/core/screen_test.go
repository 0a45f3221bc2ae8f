package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Errorf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("new screen should be blank, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColor(5, 5, '╭', ColorCyan)
	if got := s.GetCell(5, 5); got.Rune != '╭' || got.Color != ColorCyan {
		t.Errorf("GetCell(5, 5) = %+v, expected ╭ cyan", got)
	}

	s.Set(5, 5, '╮')
	if got := s.GetCell(5, 5); got.Rune != '╮' || got.Color != ColorCyan {
		t.Errorf("Set must keep the color, got %+v", got)
	}

	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawTextUnicode(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawText(1, 0, "→╮·")
	if got := s.Row(0); got != " →╮·      " {
		t.Errorf("Row(0) = %q", got)
	}

	s.Clear()
	s.DrawTextCentered(0, "○○", ColorGreen)
	if s.Get(4, 0) != '○' || s.Get(5, 0) != '○' {
		t.Errorf("DrawTextCentered placed text at %q", s.Row(0))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(s.Bounds(), ColorGray)

	expected := "┌──┐\n│  │\n└──┘"
	if got := s.String(); got != expected {
		t.Errorf("DrawBox =\n%s\nexpected\n%s", got, expected)
	}
	if s.GetCell(0, 0).Color != ColorGray {
		t.Error("box border should carry its color")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(5, 2)
	s.DrawText(0, 0, "abcde")
	s.Resize(3, 3)

	if s.Width() != 3 || s.Height() != 3 {
		t.Fatalf("size after resize = %dx%d", s.Width(), s.Height())
	}
	if s.Row(0) != "abc" {
		t.Errorf("Row(0) after resize = %q, expected %q", s.Row(0), "abc")
	}
	if strings.TrimSpace(s.Row(2)) != "" {
		t.Errorf("new row should be blank, got %q", s.Row(2))
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame(ActionFire)
	if !f.Has(ActionFire) || f.Has(ActionRotate) {
		t.Errorf("Has() mismatch for %+v", f.Actions)
	}
	f.Set(ActionRotate)
	f.Clear()
	if !f.Empty() {
		t.Error("Clear() should leave the frame empty")
	}

	var zero InputFrame
	if zero.Has(ActionUp) {
		t.Error("zero frame should have no actions")
	}
	zero.Set(ActionUp)
	if !zero.Has(ActionUp) {
		t.Error("Set() on zero frame should work")
	}
}
