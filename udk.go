package vtterm

import (
	"encoding/hex"
	"strconv"
	"strings"
)

// udkSlot maps a function key (optionally with a modifier already folded in
// by the caller) to its DECUDK slot number, per Keys.cpp's sUDKMap.
func udkSlot(k Key, mods KeyMod) (int, bool) {
	base := map[Key]int{
		KeyF1: 11, KeyF2: 12, KeyF3: 13, KeyF4: 14,
		KeyF5: 15, KeyF6: 17, KeyF7: 18, KeyF8: 19,
		KeyF9: 20, KeyF10: 21, KeyF11: 23, KeyF12: 24,
	}
	slot, ok := base[k]
	if !ok {
		return 0, false
	}
	if mods&KeyModCtrl != 0 {
		ctrlSlot := map[Key]int{
			KeyF1: 25, KeyF2: 26, KeyF3: 28, KeyF4: 29,
			KeyF5: 31, KeyF6: 32, KeyF7: 33, KeyF8: 34,
		}
		if s, ok := ctrlSlot[k]; ok {
			return s, true
		}
		return 0, false
	}
	return slot, true
}

// SetUserDefinedKeys parses a DECUDK payload (DCS Pc;Pl|key/hex;key/hex...ST)
// and installs the resulting key/string bindings, grounded on
// Console::SetUserDefinedKeys. clear requests erasing existing bindings
// before installing the new ones; lock requests the binding set become
// read-only to further DECUDK sequences until UnlockUserDefinedKeys is
// called.
func (t *Emulator) SetUserDefinedKeys(clear, lock bool, payload string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.udkLocked {
		return
	}
	if t.udk == nil {
		t.udk = make(map[int]string)
	}
	if clear {
		for k := range t.udk {
			delete(t.udk, k)
		}
	}

	for _, pair := range strings.Split(payload, ";") {
		if pair == "" {
			continue
		}
		keyStr, hexStr, ok := strings.Cut(pair, "/")
		if !ok {
			continue
		}
		slot, err := strconv.Atoi(keyStr)
		if err != nil {
			continue
		}
		decoded, err := hex.DecodeString(hexStr)
		if err != nil {
			continue
		}
		t.udk[slot] = string(decoded)
	}

	if lock {
		t.udkLocked = true
	}
}

// UnlockUserDefinedKeys clears the lock set by a prior DECUDK Pl=0 request.
func (t *Emulator) UnlockUserDefinedKeys() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.udkLocked = false
}

// IsUserDefinedKeysLocked reports whether DECUDK redefinition is currently locked out.
func (t *Emulator) IsUserDefinedKeysLocked() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.udkLocked
}

// UserDefinedKey returns the string bound to the given key/modifier
// combination via DECUDK, and whether a binding exists.
func (t *Emulator) UserDefinedKey(k Key, mods KeyMod) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	slot, ok := udkSlot(k, mods)
	if !ok {
		return "", false
	}
	s, ok := t.udk[slot]
	return s, ok
}

// EncodeKeyWithUDK behaves like EncodeKey, but consults the emulator's
// DEC user-defined keys first: a key with an installed DECUDK binding sends
// that binding's raw bytes instead of its normal encoding.
func (t *Emulator) EncodeKeyWithUDK(ev KeyEvent, enc KeyEncoding) []byte {
	if ev.Key != KeyRune {
		if s, ok := t.UserDefinedKey(ev.Key, ev.Mods); ok {
			return []byte(s)
		}
	}
	return EncodeKey(ev, enc)
}
