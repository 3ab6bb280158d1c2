package vtterm

import "fmt"

// Key identifies a renderer-facing key event independent of any particular
// windowing toolkit's keycode space, grounded on the key classes (Cursor,
// EditPad, NumPad, Programmable, Function) walked by Keys.cpp's VTKey.
type Key int

const (
	KeyRune Key = iota // a printable rune carried in KeyEvent.Rune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyPageUp
	KeyPageDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyBackspace
	KeyTab
	KeyEnter
	KeyEscape
	KeyNumpad0
	KeyNumpad1
	KeyNumpad2
	KeyNumpad3
	KeyNumpad4
	KeyNumpad5
	KeyNumpad6
	KeyNumpad7
	KeyNumpad8
	KeyNumpad9
	KeyNumpadMultiply
	KeyNumpadAdd
	KeyNumpadSeparator
	KeyNumpadSubtract
	KeyNumpadDecimal
	KeyNumpadDivide
)

// KeyMod is a bitmask of key modifiers.
type KeyMod uint8

const (
	KeyModShift KeyMod = 1 << iota
	KeyModAlt
	KeyModCtrl
)

// pcModifierCode maps a modifier combination to the CSI modifier parameter
// used by both PC-style cursor/function keys and EditPad keys, per
// ProcessPCStyleFunctionKey's switch.
func (m KeyMod) pcModifierCode() int {
	switch m {
	case KeyModShift:
		return 2
	case KeyModAlt:
		return 3
	case KeyModAlt | KeyModShift:
		return 4
	case KeyModCtrl:
		return 5
	case KeyModCtrl | KeyModShift:
		return 6
	case KeyModCtrl | KeyModAlt:
		return 7
	case KeyModShift | KeyModAlt | KeyModCtrl:
		return 8
	default:
		return 0
	}
}

// KeyEvent is a single renderer-facing keystroke to encode into the byte
// sequence a child process expects on its stdin.
type KeyEvent struct {
	Key  Key
	Rune rune // valid when Key == KeyRune
	Mods KeyMod
}

// KeyEncoding configures EncodeKey's output to match the emulator's current
// mode state.
type KeyEncoding struct {
	ApplicationCursorKeys bool // DECCKM: cursor keys send SS3 instead of CSI
	ApplicationKeypad     bool // DECKPAM: numpad sends SS3/application codes
	PCStyleFunctionKeys   bool // modified cursor/function keys use "CSI 1;mod letter" / "CSI n;mod~"
	AltSendsEscape        bool // XTALTESCM: Alt+key prefixes ESC instead of setting the 0x80 bit
	BackspaceSendsDel     bool // DECBKM: Backspace sends DEL (0x7F) instead of BS (0x08)
}

// EncodeKey turns a KeyEvent into the bytes vtterm would deliver to a child
// process's stdin, honoring application-cursor/keypad mode, the PC vs VT
// function-key style, and Alt/Ctrl encoding; grounded on Keys.cpp's
// Key/VTKey/ProcessKey family.
func EncodeKey(ev KeyEvent, enc KeyEncoding) []byte {
	if ev.Key == KeyRune {
		return encodeRune(ev.Rune, ev.Mods, enc)
	}

	if seq, ok := encodeEditingKey(ev.Key, ev.Mods, enc); ok {
		return seq
	}
	if seq, ok := encodeCursorKey(ev.Key, ev.Mods, enc); ok {
		return seq
	}
	if seq, ok := encodeFunctionKey(ev.Key, ev.Mods, enc); ok {
		return seq
	}
	if seq, ok := encodeNumpadKey(ev.Key, enc); ok {
		return seq
	}

	switch ev.Key {
	case KeyBackspace:
		if enc.BackspaceSendsDel {
			return []byte{0x7F}
		}
		return []byte{0x08}
	case KeyTab:
		return []byte{0x09}
	case KeyEnter:
		return []byte{0x0D}
	case KeyEscape:
		return []byte{0x1B}
	}

	return nil
}

func encodeRune(r rune, mods KeyMod, enc KeyEncoding) []byte {
	if mods&KeyModCtrl != 0 {
		// ToAscii(key) & 0x1F, per ProcessKey.
		b := byte(r) & 0x1F
		return maybeEscapePrefix([]byte{b}, mods, enc)
	}

	buf := []byte(string(r))
	if mods&KeyModAlt != 0 {
		return maybeEscapePrefix(buf, mods, enc)
	}
	return buf
}

// maybeEscapePrefix implements the altkey branch of ProcessKey: either sets
// the high bit (classic meta) or prefixes ESC, depending on AltSendsEscape.
func maybeEscapePrefix(b []byte, mods KeyMod, enc KeyEncoding) []byte {
	if mods&KeyModAlt == 0 {
		return b
	}
	if enc.AltSendsEscape {
		out := make([]byte, 0, len(b)+1)
		out = append(out, 0x1B)
		return append(out, b...)
	}
	if len(b) == 1 && b[0] < 0x80 {
		return []byte{b[0] | 0x80}
	}
	return b
}

// cursorKeyCode is the CSI/SS3 final byte for arrow keys, per VTKey's
// FunctionKey::Cursor entries.
func cursorKeyCode(k Key) (byte, bool) {
	switch k {
	case KeyUp:
		return 'A', true
	case KeyDown:
		return 'B', true
	case KeyRight:
		return 'C', true
	case KeyLeft:
		return 'D', true
	default:
		return 0, false
	}
}

func encodeCursorKey(k Key, mods KeyMod, enc KeyEncoding) ([]byte, bool) {
	code, ok := cursorKeyCode(k)
	if !ok {
		return nil, false
	}

	if enc.PCStyleFunctionKeys && mods.pcModifierCode() != 0 {
		return []byte(fmt.Sprintf("\x1b[1;%d%c", mods.pcModifierCode(), code)), true
	}

	if enc.ApplicationCursorKeys {
		return []byte{0x1B, 'O', code}, true
	}
	return []byte{0x1B, '[', code}, true
}

// editPadEntry describes one EditPad-class key: its tilde code and, for
// Home/End, the alternate H/F final byte used with no modifiers.
type editPadEntry struct {
	code    string
	altCode byte
}

func editPadKey(k Key) (editPadEntry, bool) {
	switch k {
	case KeyInsert:
		return editPadEntry{code: "2"}, true
	case KeyDelete:
		return editPadEntry{code: "3"}, true
	case KeyHome:
		return editPadEntry{code: "1", altCode: 'H'}, true
	case KeyEnd:
		return editPadEntry{code: "4", altCode: 'F'}, true
	case KeyPageUp:
		return editPadEntry{code: "5"}, true
	case KeyPageDown:
		return editPadEntry{code: "6"}, true
	default:
		return editPadEntry{}, false
	}
}

func encodeEditingKey(k Key, mods KeyMod, enc KeyEncoding) ([]byte, bool) {
	entry, ok := editPadKey(k)
	if !ok {
		return nil, false
	}

	modCode := 0
	if enc.PCStyleFunctionKeys {
		modCode = mods.pcModifierCode()
	}

	if modCode != 0 {
		if entry.altCode != 0 {
			return []byte(fmt.Sprintf("\x1b[1;%d%c", modCode, entry.altCode)), true
		}
		return []byte(fmt.Sprintf("\x1b[%s;%d~", entry.code, modCode)), true
	}

	if entry.altCode != 0 {
		if enc.ApplicationKeypad {
			return []byte{0x1B, 'O', entry.altCode}, true
		}
		return []byte{0x1B, '[', entry.altCode}, true
	}

	return []byte(fmt.Sprintf("\x1b[%s~", entry.code)), true
}

// functionKeyTilde is the CSI n~ number for F5-F12, per VTKey's
// FunctionKey::Function entries (F1-F4 are Programmable/PF, handled
// separately via pfLetter: SS3, or CSI 1;mod with a PC-style modifier).
func functionKeyTilde(k Key) (string, bool) {
	switch k {
	case KeyF5:
		return "15", true
	case KeyF6:
		return "17", true
	case KeyF7:
		return "18", true
	case KeyF8:
		return "19", true
	case KeyF9:
		return "20", true
	case KeyF10:
		return "21", true
	case KeyF11:
		return "23", true
	case KeyF12:
		return "24", true
	default:
		return "", false
	}
}

// pfLetter returns the SS3 final byte for F1-F4 (PF1-PF4), per VTKey's
// Programmable entries.
func pfLetter(k Key) (byte, bool) {
	switch k {
	case KeyF1:
		return 'P', true
	case KeyF2:
		return 'Q', true
	case KeyF3:
		return 'R', true
	case KeyF4:
		return 'S', true
	default:
		return 0, false
	}
}

func encodeFunctionKey(k Key, mods KeyMod, enc KeyEncoding) ([]byte, bool) {
	if letter, ok := pfLetter(k); ok {
		modCode := 0
		if enc.PCStyleFunctionKeys {
			modCode = mods.pcModifierCode()
		}
		if modCode != 0 {
			return []byte(fmt.Sprintf("\x1b[1;%d%c", modCode, letter)), true
		}
		return []byte{0x1B, 'O', letter}, true
	}

	tilde, ok := functionKeyTilde(k)
	if !ok {
		return nil, false
	}
	modCode := 0
	if enc.PCStyleFunctionKeys {
		modCode = mods.pcModifierCode()
	}
	if modCode != 0 {
		return []byte(fmt.Sprintf("\x1b[%s;%d~", tilde, modCode)), true
	}
	return []byte(fmt.Sprintf("\x1b[%s~", tilde)), true
}

// numpadLetter maps application-keypad digits/operators to their SS3 final
// byte, per VTKey's FunctionKey::NumPad entries (only sent when DECKPAM is
// active; otherwise EncodeKey returns nil for these keys).
func numpadLetter(k Key) (byte, bool) {
	switch k {
	case KeyNumpadMultiply:
		return 'j', true
	case KeyNumpadAdd:
		return 'k', true
	case KeyNumpadSeparator:
		return 'l', true
	case KeyNumpadSubtract:
		return 'm', true
	case KeyNumpadDecimal:
		return 'n', true
	case KeyNumpadDivide:
		return 'o', true
	case KeyNumpad0:
		return 'p', true
	case KeyNumpad1:
		return 'q', true
	case KeyNumpad2:
		return 'r', true
	case KeyNumpad3:
		return 's', true
	case KeyNumpad4:
		return 't', true
	case KeyNumpad5:
		return 'u', true
	case KeyNumpad6:
		return 'v', true
	case KeyNumpad7:
		return 'w', true
	case KeyNumpad8:
		return 'x', true
	case KeyNumpad9:
		return 'y', true
	default:
		return 0, false
	}
}

func encodeNumpadKey(k Key, enc KeyEncoding) ([]byte, bool) {
	if !enc.ApplicationKeypad {
		return nil, false
	}
	letter, ok := numpadLetter(k)
	if !ok {
		return nil, false
	}
	return []byte{0x1B, 'O', letter}, true
}
