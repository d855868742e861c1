package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.GetCell(x, y) != blank {
				t.Fatalf("new screen should be blank, got %+v at (%d, %d)", s.GetCell(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorFood)
	if got := s.GetCell(5, 5); got.Rune != 'X' || got.Color != ColorFood {
		t.Errorf("GetCell(5, 5) = %+v, expected X in food color", got)
	}

	s.Set(5, 5, 'Y')
	if got := s.GetCell(5, 5); got.Rune != 'Y' || got.Color != ColorDefault {
		t.Errorf("Set should reset color, got %+v", got)
	}

	// Out of bounds writes are dropped
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 3)
	s.FillRect(NewRect(0, 0, 4, 3), '#')
	s.Clear()

	if strings.TrimSpace(s.String()) != "" {
		t.Errorf("after Clear expected blank screen, got %q", s.String())
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")

	if got := s.Row(1)[2:7]; got != "Hello" {
		t.Errorf("DrawText wrote %q, expected Hello", got)
	}

	// Clipped at the right edge
	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("text should be clipped at right boundary")
	}
}

func TestScreenDrawTextCenteredMultibyte(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "█ok")

	if s.Get(4, 0) != '█' || s.Get(5, 0) != 'o' || s.Get(6, 0) != 'k' {
		t.Errorf("centered row = %q", s.Row(0))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(7, 4)
	s.DrawBox(NewRect(0, 0, 7, 4), ColorBoard)

	expected := strings.Join([]string{
		"┌─────┐",
		"│     │",
		"│     │",
		"└─────┘",
	}, "\n")
	if s.String() != expected {
		t.Errorf("box mismatch:\n%s\nexpected:\n%s", s.String(), expected)
	}
	if s.GetCell(0, 0).Color != ColorBoard {
		t.Error("box should carry its color")
	}
}

func TestScreenResizeKeepsContent(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetColored(1, 1, 'o', ColorSnakeBody)
	s.SetColored(3, 3, '*', ColorFood)

	s.Resize(2, 2)
	if s.Width() != 2 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, expected 2x2", s.Width(), s.Height())
	}
	if got := s.GetCell(1, 1); got.Rune != 'o' || got.Color != ColorSnakeBody {
		t.Errorf("content inside new bounds lost: %+v", got)
	}

	s.Resize(5, 5)
	if s.Get(3, 3) != ' ' {
		t.Error("content clipped by shrink should not reappear")
	}
}
