package vtterm

import (
	"bytes"
	"strings"
	"testing"
)

func TestCompatibilityLevelDefaultsToVT200(t *testing.T) {
	term := New(WithSize(24, 80))
	if got := term.CompatibilityLevel(); got != 62 {
		t.Errorf("expected default compatibility level 62, got %d", got)
	}
}

func TestSetCompatibilityLevel(t *testing.T) {
	term := New(WithSize(24, 80))
	term.SetCompatibilityLevel(65)
	if got := term.CompatibilityLevel(); got != 65 {
		t.Errorf("expected 65, got %d", got)
	}
}

func TestReportControlFunctionSettingsDECSTBM(t *testing.T) {
	var buf bytes.Buffer
	term := New(WithSize(24, 80), WithResponse(&buf))

	term.ReportControlFunctionSettings("r")

	got := buf.String()
	if !strings.HasPrefix(got, "\x1bP1$r") || !strings.HasSuffix(got, "r\x1b\\") {
		t.Errorf("unexpected DECRQSS reply: %q", got)
	}
}

func TestReportControlFunctionSettingsDECSCL(t *testing.T) {
	var buf bytes.Buffer
	term := New(WithSize(24, 80), WithResponse(&buf))
	term.SetCompatibilityLevel(64)

	term.ReportControlFunctionSettings("\"p")

	want := "\x1bP1$r64;1\"p\x1b\\"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestReportControlFunctionSettingsUnknownIsFailure(t *testing.T) {
	var buf bytes.Buffer
	term := New(WithSize(24, 80), WithResponse(&buf))

	term.ReportControlFunctionSettings("???")

	want := "\x1bP0$r\x1b\\"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestReportControlFunctionSettingsDECSCUSR(t *testing.T) {
	var buf bytes.Buffer
	term := New(WithSize(24, 80), WithResponse(&buf))
	term.SetCursorStyle(5) // raw ordinal for CursorStyleSteadyBar

	term.ReportControlFunctionSettings(" q")

	got := buf.String()
	if !strings.HasPrefix(got, "\x1bP1$r") || !strings.HasSuffix(got, " q\x1b\\") {
		t.Errorf("unexpected DECRQSS reply: %q", got)
	}
}

func TestRestorePresentationStateTabStops(t *testing.T) {
	term := New(WithSize(24, 80))

	term.RestorePresentationState(2, "1/9/17")

	term.mu.RLock()
	defer term.mu.RUnlock()
	for _, col := range []int{0, 8, 16} {
		if !term.activePage.IsTabStop(col) {
			t.Errorf("expected tab stop at column %d", col)
		}
	}
	if term.activePage.IsTabStop(1) {
		t.Error("expected column 1 to not be a tab stop")
	}
}

func TestRestorePresentationStateIgnoresDECCIR(t *testing.T) {
	term := New(WithSize(24, 80))
	term.activePage.SetTabStop(4)

	term.RestorePresentationState(1, "whatever")

	term.mu.RLock()
	defer term.mu.RUnlock()
	if !term.activePage.IsTabStop(4) {
		t.Error("expected DECRSPS which=1 to be a no-op that leaves tab stops untouched")
	}
}

func TestReportTabStops(t *testing.T) {
	var buf bytes.Buffer
	term := New(WithSize(24, 80), WithResponse(&buf))
	term.activePage.ClearAllTabStops()
	term.activePage.SetTabStop(0)
	term.activePage.SetTabStop(8)

	term.ReportTabStops()

	want := "\x1bP2$u1/9\x1b\\"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
