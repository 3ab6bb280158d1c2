package vtterm

import "testing"

func TestLeftRightMarginsDisabledByDefault(t *testing.T) {
	term := New(WithSize(24, 80))

	if term.HasLeftRightMargins() {
		t.Fatal("expected DECLRMM to be off by default")
	}

	left, right := term.Margins()
	if left != 0 || right != 80 {
		t.Errorf("expected full-width margins (0, 80), got (%d, %d)", left, right)
	}
}

func TestSetLeftRightMarginsRequiresMode(t *testing.T) {
	term := New(WithSize(24, 80))

	term.SetLeftRightMargins(10, 40)

	left, right := term.Margins()
	if left != 0 || right != 80 {
		t.Errorf("expected margins unchanged without DECLRMM, got (%d, %d)", left, right)
	}
}

func TestSetLeftRightMargins(t *testing.T) {
	term := New(WithSize(24, 80))

	term.SetLeftRightMarginMode(true)
	term.SetLeftRightMargins(10, 40)

	left, right := term.Margins()
	if left != 9 || right != 40 {
		t.Errorf("expected margins (9, 40), got (%d, %d)", left, right)
	}

	row, col := term.CursorPos()
	if row != 0 || col != 0 {
		t.Errorf("expected cursor reset to (0, 0), got (%d, %d)", row, col)
	}
}

func TestSetLeftRightMarginsRejectsInverted(t *testing.T) {
	term := New(WithSize(24, 80))

	term.SetLeftRightMarginMode(true)
	term.SetLeftRightMargins(10, 40)
	term.SetLeftRightMargins(50, 20)

	left, right := term.Margins()
	if left != 9 || right != 40 {
		t.Errorf("expected margins to stay (9, 40) after an inverted request, got (%d, %d)", left, right)
	}
}

func TestDisablingLeftRightMarginModeResetsWidth(t *testing.T) {
	term := New(WithSize(24, 80))

	term.SetLeftRightMarginMode(true)
	term.SetLeftRightMargins(10, 40)
	term.SetLeftRightMarginMode(false)

	left, right := term.Margins()
	if left != 0 || right != 80 {
		t.Errorf("expected margins reset to (0, 80), got (%d, %d)", left, right)
	}
}
