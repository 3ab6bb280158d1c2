package vtterm

import "strconv"
import "strings"

// maxPendingScan bounds the carry-over buffer kept across Write calls while a
// DCS or CSI sequence this package intercepts is still incomplete. A
// sequence that never reaches its terminator within this many bytes,
// including a SIXEL image split across Write calls, is
// dropped and the scanner returns to ground, matching the cancellation
// behavior a host expects from an oversized or malformed control string.
const maxPendingScan = 1 << 16

const (
	escByte = 0x1B
	belByte = 0x07
)

// scanWrite splits data into runs the inner ansicode.Decoder dispatches
// normally and sequences this package must intercept before the decoder ever
// sees them. go-ansicode's Handler interface has no DCS Hook/Put/Unhook and
// no DECSLRM callback (see dcs.go, udk.go, margins.go), so DECRQSS, DECUDK,
// DECRSPS, DECSLRM, DECSCA, and the rectangular-area family are recognized
// here by their CSI/DCS header bytes and dispatched directly; everything else
// is forwarded to the decoder untouched. Sequences split across multiple
// Write calls are buffered until they complete or exceed maxPendingScan.
func (t *Emulator) scanWrite(data []byte) (int, error) {
	buf := data
	if len(t.scanPending) > 0 {
		buf = make([]byte, 0, len(t.scanPending)+len(data))
		buf = append(buf, t.scanPending...)
		buf = append(buf, data...)
		t.scanPending = nil
	}

	var firstErr error
	passStart := 0
	flush := func(end int) {
		if end <= passStart {
			return
		}
		if _, err := t.decoder.Write(buf[passStart:end]); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	i := 0
	for i < len(buf) {
		if buf[i] != escByte {
			i++
			continue
		}

		flush(i)

		if i+1 >= len(buf) {
			t.bufferPending(buf[i:])
			return len(data), firstErr
		}

		switch buf[i+1] {
		case 'P': // DCS
			end, ok := findStringTerminator(buf, i+2)
			if !ok {
				t.bufferPending(buf[i:])
				return len(data), firstErr
			}
			t.dispatchDCS(buf[i+2 : end])
			i = skipTerminator(buf, end)
		case ']', 'X', '^', '_': // OSC, SOS, PM, APC: pass the whole string through
			end, ok := findStringTerminator(buf, i+2)
			if !ok {
				t.bufferPending(buf[i:])
				return len(data), firstErr
			}
			term := skipTerminator(buf, end)
			if _, err := t.decoder.Write(buf[i:term]); err != nil && firstErr == nil {
				firstErr = err
			}
			i = term
		case '[': // CSI
			end, hdr, ok := parseCSIHeader(buf, i+2)
			if !ok {
				t.bufferPending(buf[i:])
				return len(data), firstErr
			}
			if t.interceptCSI(hdr) {
				// handled directly, do not forward
			} else if _, err := t.decoder.Write(buf[i:end]); err != nil && firstErr == nil {
				firstErr = err
			}
			i = end
		default:
			end, ok := scanSimpleEscape(buf, i)
			if !ok {
				t.bufferPending(buf[i:])
				return len(data), firstErr
			}
			if _, err := t.decoder.Write(buf[i:end]); err != nil && firstErr == nil {
				firstErr = err
			}
			i = end
		}
		passStart = i
	}
	flush(len(buf))
	return len(data), firstErr
}

// bufferPending stashes an incomplete trailing sequence for the next Write
// call, discarding it instead once it grows past maxPendingScan.
func (t *Emulator) bufferPending(rest []byte) {
	if len(rest) > maxPendingScan {
		t.logger.Tracef("vtterm: discarding %d-byte pending sequence, exceeds %d-byte limit", len(rest), maxPendingScan)
		t.scanPending = nil
		return
	}
	t.scanPending = append([]byte(nil), rest...)
}

// findStringTerminator scans a DCS/OSC/SOS/PM/APC string body starting at pos
// for its terminator, returning the index of the byte(s) that make up the
// terminator (BEL, or the ESC of an ESC \ pair) and whether one was found.
// An ESC that isn't followed by '\\' aborts the string defensively rather
// than risk scanning forever.
func findStringTerminator(buf []byte, pos int) (end int, ok bool) {
	for i := pos; i < len(buf); i++ {
		switch buf[i] {
		case belByte:
			return i, true
		case escByte:
			if i+1 >= len(buf) {
				return 0, false
			}
			return i, true
		}
	}
	return 0, false
}

// skipTerminator advances past the terminator found by findStringTerminator:
// one byte for BEL, two bytes (ESC \) when the terminator is a proper ST, or
// zero extra bytes when the string was defensively aborted on an unrelated
// escape sequence (that ESC is left for the next iteration to classify).
func skipTerminator(buf []byte, termStart int) int {
	if termStart >= len(buf) {
		return termStart
	}
	if buf[termStart] == belByte {
		return termStart + 1
	}
	if buf[termStart] == escByte && termStart+1 < len(buf) && buf[termStart+1] == '\\' {
		return termStart + 2
	}
	return termStart
}

// csiHeader is the parsed introducer of a CSI or DCS control function:
// an optional private marker, numeric parameters, intermediate bytes, and
// the final byte that selects the function.
type csiHeader struct {
	private byte
	params  []int
	inter   string
	final   byte
}

// parseCSIHeader parses a CSI-or-DCS-style header starting at pos (the byte
// right after the "ESC [" or "ESC P" introducer), per the ECMA-48 grammar
// shared by both: an optional single private-marker byte, parameter bytes,
// intermediate bytes, and one final byte. Returns the index right after the
// final byte, or ok=false if the buffer ends before a final byte appears.
func parseCSIHeader(buf []byte, pos int) (end int, hdr csiHeader, ok bool) {
	i := pos
	if i < len(buf) && (buf[i] == '?' || buf[i] == '<' || buf[i] == '=' || buf[i] == '>') {
		hdr.private = buf[i]
		i++
	}

	paramStart := i
	for i < len(buf) && buf[i] >= 0x30 && buf[i] <= 0x3B {
		i++
	}
	hdr.params = parseParams(string(buf[paramStart:i]))

	interStart := i
	for i < len(buf) && buf[i] >= 0x20 && buf[i] <= 0x2F {
		i++
	}
	hdr.inter = string(buf[interStart:i])

	if i >= len(buf) {
		return 0, csiHeader{}, false
	}
	hdr.final = buf[i]
	return i + 1, hdr, true
}

// parseParams splits a semicolon-separated CSI/DCS parameter string into
// ints, defaulting an empty or malformed field to 0 and dropping any
// colon-separated subparameters (only the leading value is used).
func parseParams(s string) []int {
	if s == "" {
		return nil
	}
	fields := strings.Split(s, ";")
	out := make([]int, len(fields))
	for i, f := range fields {
		if colon := strings.IndexByte(f, ':'); colon >= 0 {
			f = f[:colon]
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			n = 0
		}
		out[i] = n
	}
	return out
}

// paramsFrom returns params[offset:], or nil if offset is past the end.
func paramsFrom(params []int, offset int) []int {
	if offset >= len(params) {
		return nil
	}
	return params[offset:]
}

// scanSimpleEscape consumes a non-CSI, non-string escape sequence starting at
// pos (the ESC byte itself): any intermediate bytes followed by one final
// byte, per the general ECMA-48 escape-sequence grammar.
func scanSimpleEscape(buf []byte, pos int) (end int, ok bool) {
	i := pos + 1
	if i >= len(buf) {
		return 0, false
	}
	for i < len(buf) && buf[i] >= 0x20 && buf[i] <= 0x2F {
		i++
	}
	if i >= len(buf) {
		return 0, false
	}
	return i + 1, true
}

// interceptCSI dispatches the CSI sequences go-ansicode's Handler interface
// has no callback for, returning true when it handled the sequence (so the
// caller must not also forward it to the decoder).
func (t *Emulator) interceptCSI(hdr csiHeader) bool {
	switch {
	case hdr.private == '?' && hdr.final == 'J':
		t.SelectiveEraseDisplay(firstParam(hdr.params, 0))
		return true
	case hdr.private == '?' && hdr.final == 'K':
		t.SelectiveEraseLine(firstParam(hdr.params, 0))
		return true
	case hdr.inter == "$" && hdr.final == 'x':
		t.FillRectangularArea(hdr.params)
		return true
	case hdr.inter == "*" && hdr.final == 'x':
		t.SetAttributeChangeExtent(firstParam(hdr.params, 1))
		return true
	case hdr.inter == "$" && hdr.final == 'z':
		t.EraseRectangularArea(hdr.params)
		return true
	case hdr.inter == "$" && hdr.final == '{':
		t.SelectiveEraseRectangularArea(hdr.params)
		return true
	case hdr.inter == "$" && hdr.final == 'v':
		t.CopyRectangularArea(hdr.params)
		return true
	case hdr.inter == "$" && hdr.final == 'r':
		t.ChangeAttributesInRectangularArea(hdr.params)
		return true
	case hdr.inter == "$" && hdr.final == 't':
		t.ReverseAttributesInRectangularArea(hdr.params)
		return true
	case hdr.private == 0 && hdr.inter == "\"" && hdr.final == 'q':
		t.SetCharacterProtection(firstParam(hdr.params, 0))
		return true
	case hdr.private == 0 && hdr.inter == "" && hdr.final == 's' && t.HasMode(ModeLeftRightMargin):
		left := firstParam(hdr.params, 1)
		right := 0
		if len(hdr.params) > 1 {
			right = hdr.params[1]
		}
		t.SetLeftRightMargins(left, right)
		return true
	default:
		return false
	}
}

// firstParam returns params[0] if present, else def.
func firstParam(params []int, def int) int {
	if len(params) > 0 {
		return params[0]
	}
	return def
}

// dispatchDCS parses a captured DCS payload (the bytes between "ESC P" and
// its terminator) and routes it to the matching control-string handler. Any
// other DCS (SIXEL among them) is re-framed and forwarded to the decoder.
func (t *Emulator) dispatchDCS(payload []byte) {
	end, hdr, ok := parseCSIHeader(payload, 0)
	if !ok {
		return
	}
	data := string(payload[end:])

	switch {
	case hdr.inter == "$" && hdr.final == 'q':
		t.ReportControlFunctionSettings(data)
	case hdr.inter == "" && hdr.final == '|':
		clear := len(hdr.params) == 0 || hdr.params[0] == 0
		lock := len(hdr.params) < 2 || hdr.params[1] == 0
		t.SetUserDefinedKeys(clear, lock, data)
	case hdr.inter == "$" && hdr.final == 'p':
		t.RestorePresentationState(firstParam(hdr.params, 0), data)
	default:
		seq := make([]byte, 0, len(payload)+4)
		seq = append(seq, escByte, 'P')
		seq = append(seq, payload...)
		seq = append(seq, escByte, '\\')
		if _, err := t.decoder.Write(seq); err != nil {
			t.logger.Tracef("vtterm: forwarding DCS final byte %q: %v", hdr.final, err)
		}
	}
}
