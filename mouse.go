package vtterm

import "fmt"

// MouseButton identifies which button a mouse event concerns.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonMiddle
	MouseButtonRight
	MouseButtonNone // motion-only event, no button held
	MouseButtonWheelUp
	MouseButtonWheelDown
)

// MouseEventType distinguishes press, release, and motion reports.
type MouseEventType int

const (
	MouseEventPress MouseEventType = iota
	MouseEventRelease
	MouseEventMotion
)

// MouseEvent is a renderer-facing pointer event, with 0-based cell
// coordinates and, for the SGR-pixel protocol, the pixel position within
// the cell grid.
type MouseEvent struct {
	Type   MouseEventType
	Button MouseButton
	Row    int
	Col    int
	PixelX int
	PixelY int
	Mods   KeyMod
}

// MouseProtocol selects the coordinate/button wire encoding.
type MouseProtocol int

const (
	MouseProtocolNone MouseProtocol = iota
	MouseProtocolX10                // CSI M Cb Cx Cy, single-byte fixed-width coordinates
	MouseProtocolSGR                // CSI < Cb ; Cx ; Cy M/m
	MouseProtocolSGRPixel           // like SGR but Cx/Cy are pixel coordinates
	MouseProtocolUTF8                // X10-style framing, UTF-8 encoded coordinates
)

// ActiveMouseProtocol derives the wire protocol and motion-reporting
// requirements from the emulator's current mode bits (ModeSGRMouse,
// ModeUTF8Mouse, ModeReportMouseClicks, ModeReportCellMouseMotion,
// ModeReportAllMouseMotion), turning mode bits tracked for incoming
// mode-set sequences into an actual output encoding decision.
func (t *Emulator) ActiveMouseProtocol() (proto MouseProtocol, reportMotion, reportAllMotion bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	reportMotion = t.modes&ModeReportCellMouseMotion != 0
	reportAllMotion = t.modes&ModeReportAllMouseMotion != 0

	switch {
	case t.modes&ModeSGRMouse != 0:
		proto = MouseProtocolSGR
	case t.modes&ModeUTF8Mouse != 0:
		proto = MouseProtocolUTF8
	case t.modes&ModeReportMouseClicks != 0 || reportMotion || reportAllMotion:
		proto = MouseProtocolX10
	default:
		proto = MouseProtocolNone
	}
	return
}

// buttonCode returns the Cb low bits (button identity + motion/wheel flags),
// before modifier bits are OR'd in, matching the xterm mouse-tracking wire
// format shared by X10, UTF-8, and SGR protocols.
func buttonCode(ev MouseEvent) int {
	switch ev.Button {
	case MouseButtonLeft:
		return 0
	case MouseButtonMiddle:
		return 1
	case MouseButtonRight:
		return 2
	case MouseButtonNone:
		return 3
	case MouseButtonWheelUp:
		return 64
	case MouseButtonWheelDown:
		return 65
	default:
		return 3
	}
}

func modifierBits(mods KeyMod) int {
	bits := 0
	if mods&KeyModShift != 0 {
		bits |= 4
	}
	if mods&KeyModAlt != 0 {
		bits |= 8
	}
	if mods&KeyModCtrl != 0 {
		bits |= 16
	}
	return bits
}

// EncodeMouse renders ev as the byte sequence vtterm would deliver to a
// child process under the given protocol, or nil if proto is
// MouseProtocolNone or the event type isn't reportable under it (e.g. a
// plain-motion event while reportMotion/reportAllMotion are both false).
func EncodeMouse(ev MouseEvent, proto MouseProtocol, reportMotion, reportAllMotion bool) []byte {
	if proto == MouseProtocolNone {
		return nil
	}
	if ev.Type == MouseEventMotion {
		if ev.Button == MouseButtonNone && !reportAllMotion {
			return nil
		}
		if ev.Button != MouseButtonNone && !reportMotion && !reportAllMotion {
			return nil
		}
	}

	cb := buttonCode(ev) | modifierBits(ev.Mods)
	if ev.Type == MouseEventMotion {
		cb |= 32
	}

	switch proto {
	case MouseProtocolSGR:
		final := byte('M')
		if ev.Type == MouseEventRelease {
			final = 'm'
		}
		return []byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", cb, ev.Col+1, ev.Row+1, final))

	case MouseProtocolSGRPixel:
		final := byte('M')
		if ev.Type == MouseEventRelease {
			final = 'm'
		}
		return []byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", cb, ev.PixelX, ev.PixelY, final))

	case MouseProtocolUTF8:
		if ev.Type == MouseEventRelease {
			cb = 3 | modifierBits(ev.Mods)
		}
		out := []byte{0x1B, '[', 'M'}
		out = append(out, encodeUTF8MouseCoord(cb+32)...)
		out = append(out, encodeUTF8MouseCoord(ev.Col+1+32)...)
		out = append(out, encodeUTF8MouseCoord(ev.Row+1+32)...)
		return out

	default: // MouseProtocolX10
		if ev.Type == MouseEventRelease {
			cb = 3 | modifierBits(ev.Mods)
		}
		col := ev.Col + 1 + 32
		row := ev.Row + 1 + 32
		if col > 255 {
			col = 255
		}
		if row > 255 {
			row = 255
		}
		return []byte{0x1B, '[', 'M', byte(cb + 32), byte(col), byte(row)}
	}
}

// encodeUTF8MouseCoord encodes a coordinate value as UTF-8 bytes, extending
// the single-byte X10 range past 223 as the xterm UTF-8 mouse mode requires.
func encodeUTF8MouseCoord(v int) []byte {
	if v <= 127 {
		return []byte{byte(v)}
	}
	return []byte(string(rune(v)))
}
