package vtterm

import (
	"encoding/json"
	"fmt"
	"image/color"
)

// PaletteState is a persisted-state snapshot: the colors overridden in the
// 256-slot indexed palette and among the semantic named colors (foreground,
// background, cursor, and friends, indices 256 and up per colors.go; slots
// left at their defaults are not stored) and the caret style, encoded as plain RGBA/ints so it round-trips through
// JSON without depending on any particular color.Color implementation.
type PaletteState struct {
	Colors      map[int]PaletteColor `json:"colors"`
	CursorStyle CursorStyle          `json:"cursorStyle"`
	CursorBlink bool                 `json:"cursorBlink"`
}

// PaletteColor is an RGBA color in a JSON-friendly shape.
type PaletteColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

func toPaletteColor(c color.Color) PaletteColor {
	r, g, b, a := c.RGBA()
	return PaletteColor{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func (p PaletteColor) toColor() color.Color {
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: p.A}
}

// PaletteSnapshot captures the emulator's current color overrides and caret
// style into a PaletteState suitable for JSON persistence.
func (t *Emulator) PaletteSnapshot() PaletteState {
	t.mu.RLock()
	defer t.mu.RUnlock()

	state := PaletteState{
		Colors:      make(map[int]PaletteColor, len(t.colors)),
		CursorStyle: t.cursor.Style,
	}
	for idx, c := range t.colors {
		state.Colors[idx] = toPaletteColor(c)
	}
	switch t.cursor.Style {
	case CursorStyleBlinkingBlock, CursorStyleBlinkingUnderline, CursorStyleBlinkingBar:
		state.CursorBlink = true
	}
	return state
}

// RestorePaletteSnapshot installs a previously captured PaletteState,
// replacing all current color overrides and the caret style.
func (t *Emulator) RestorePaletteSnapshot(state PaletteState) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.colors = make(map[int]color.Color, len(state.Colors))
	for idx, c := range state.Colors {
		t.colors[idx] = c.toColor()
	}
	t.cursor.Style = state.CursorStyle
}

// SavePaletteState serializes the current palette/caret state to JSON.
func (t *Emulator) SavePaletteState() ([]byte, error) {
	data, err := json.Marshal(t.PaletteSnapshot())
	if err != nil {
		return nil, fmt.Errorf("vtterm: marshal palette state: %w", err)
	}
	return data, nil
}

// LoadPaletteState deserializes and installs a palette/caret state
// previously produced by SavePaletteState.
func (t *Emulator) LoadPaletteState(data []byte) error {
	var state PaletteState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("vtterm: unmarshal palette state: %w", err)
	}
	t.RestorePaletteSnapshot(state)
	return nil
}
