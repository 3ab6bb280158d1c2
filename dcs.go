package vtterm

import (
	"fmt"
	"strings"
)

// Device control strings (DCS ... ST) are not part of go-ansicode's Handler
// interface at all — the decoder only ever dispatches CSI/OSC/ESC
// callbacks, never a Hook/Put/Unhook-style DCS capture. As with
// SetLeftRightMargins, the DECRQSS/DECRSPS/DECUDK entry points here are
// plain public methods called directly instead of through ansicode.Decoder
// dispatch: scanner.go's dispatchDCS calls the matching method for each DCS
// sequence written to the Emulator, and hosts may call them themselves.

// dcsSuccess and dcsFailure are the DECRQSS reply introducer/status digits;
// the full reply is DCS <digit> $ r <payload> ST, per ReportControlFunctionSettings.
const (
	dcsSuccess = "1"
	dcsFailure = "0"
)

// SetCompatibilityLevel sets the DECSCL operating level (61 for VT100/VT101,
// 62 for VT200, 63 for VT300, 64 for VT400, 65 for VT500), reported back by
// DECRQSS "\"p" requests.
func (t *Emulator) SetCompatibilityLevel(level int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.compatibilityLevel = level
}

// CompatibilityLevel returns the current DECSCL operating level.
func (t *Emulator) CompatibilityLevel() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.compatibilityLevel
}

// ReportControlFunctionSettings answers a DECRQSS ("Request Status String")
// request: the payload identifies which control function's current settings
// to report (e.g. "m" for SGR, "r" for DECSTBM), and the reply echoes them
// back in the same syntax that would set them, grounded on
// Console::ReportControlFunctionSettings. Unrecognized payloads get the
// DECRQSS failure reply rather than an error return, matching a real
// terminal's behavior toward a host that probes for unsupported settings.
func (t *Emulator) ReportControlFunctionSettings(payload string) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	t.writeResponseString(t.controlFunctionReplyLocked(payload))
}

func (t *Emulator) controlFunctionReplyLocked(payload string) string {
	switch payload {
	case "r": // DECSTBM
		return fmt.Sprintf("\x1bP%s$r%d;%dr\x1b\\", dcsSuccess, t.scrollTop+1, t.scrollBottom)
	case "s": // DECSLRM
		left, right := t.leftBoundLocked(), t.rightBoundLocked()
		return fmt.Sprintf("\x1bP%s$r%d;%ds\x1b\\", dcsSuccess, left+1, right+1)
	case "m": // SGR
		return fmt.Sprintf("\x1bP%s$r%sm\x1b\\", dcsSuccess, sgrOpcodesLocked(t.template))
	case "\"p": // DECSCL
		return fmt.Sprintf("\x1bP%s$r%d;1\"p\x1b\\", dcsSuccess, t.compatibilityLevel)
	case " q": // DECSCUSR
		return fmt.Sprintf("\x1bP%s$r%d q\x1b\\", dcsSuccess, cursorStyleDECSCUSR(t.cursor.Style))
	case "t": // DECSLPP
		return fmt.Sprintf("\x1bP%s$r%dt\x1b\\", dcsSuccess, t.rows)
	case "$|": // DECSCPP
		return fmt.Sprintf("\x1bP%s$r%d$|\x1b\\", dcsSuccess, t.cols)
	case "*|": // DECSNLS
		return fmt.Sprintf("\x1bP%s$r%d*|\x1b\\", dcsSuccess, t.rows)
	default:
		return fmt.Sprintf("\x1bP%s$r\x1b\\", dcsFailure)
	}
}

// cursorStyleDECSCUSR maps an internal CursorStyle to the DECSCUSR Ps value.
func cursorStyleDECSCUSR(s CursorStyle) int {
	switch s {
	case CursorStyleBlinkingBlock:
		return 1
	case CursorStyleSteadyBlock:
		return 2
	case CursorStyleBlinkingUnderline:
		return 3
	case CursorStyleSteadyUnderline:
		return 4
	case CursorStyleBlinkingBar:
		return 5
	case CursorStyleSteadyBar:
		return 6
	default:
		return 0
	}
}

// sgrOpcodesLocked renders tmpl as the semicolon-joined SGR parameter list
// that would reproduce it, for DECRQSS "m" replies.
func sgrOpcodesLocked(tmpl CellTemplate) string {
	var ops []string
	ops = append(ops, "0")
	if tmpl.HasFlag(CellFlagBold) {
		ops = append(ops, "1")
	}
	if tmpl.HasFlag(CellFlagDim) {
		ops = append(ops, "2")
	}
	if tmpl.HasFlag(CellFlagItalic) {
		ops = append(ops, "3")
	}
	if tmpl.HasFlag(CellFlagUnderline) {
		ops = append(ops, "4")
	}
	if tmpl.HasFlag(CellFlagBlinkSlow) {
		ops = append(ops, "5")
	}
	if tmpl.HasFlag(CellFlagBlinkFast) {
		ops = append(ops, "6")
	}
	if tmpl.HasFlag(CellFlagReverse) {
		ops = append(ops, "7")
	}
	if tmpl.HasFlag(CellFlagHidden) {
		ops = append(ops, "8")
	}
	if tmpl.HasFlag(CellFlagStrike) {
		ops = append(ops, "9")
	}
	if tmpl.HasFlag(CellFlagDoubleUnderline) {
		ops = append(ops, "21")
	}
	return strings.Join(ops, ";")
}

// RestorePresentationState answers a DECRSPS request restoring a prior
// DECTABSR ("which" == 2) tab-stop report: the payload is a '/'-separated
// list of 1-based column positions that should have tab stops, replacing
// whatever tab stops are currently set. DECCIR cursor-information restore
// ("which" == 1) is not implemented: the original's handling round-trips
// through SGR bits and charset-designation internals that have no
// counterpart in this cell/attribute model, and nothing in this module
// exercises a cursor-information save/restore path.
func (t *Emulator) RestorePresentationState(which int, payload string) {
	if which != 2 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.activePage.ClearAllTabStops()
	for _, s := range strings.Split(payload, "/") {
		var pos int
		if _, err := fmt.Sscanf(s, "%d", &pos); err != nil {
			continue
		}
		if pos > 0 {
			t.activePage.SetTabStop(pos - 1)
		}
	}
}

// ReportTabStops renders the current tab-stop positions as a DECTABSR
// ("which" == 2) DECRSPS-restorable payload, 1-based and '/'-separated.
func (t *Emulator) ReportTabStops() {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var cols []string
	for c := 0; c < t.cols; c++ {
		if t.activePage.IsTabStop(c) {
			cols = append(cols, fmt.Sprintf("%d", c+1))
		}
	}
	t.writeResponseString(fmt.Sprintf("\x1bP2$u%s\x1b\\", strings.Join(cols, "/")))
}
