package vtterm

import "image/color"

// Renderer is the paint contract a host implements to draw an Emulator's
// current page: it is handed enough state on each call to redraw without
// reaching back into Emulator internals the host shouldn't depend on
// directly.
type Renderer interface {
	// SetSize is called whenever the emulator's grid dimensions change.
	SetSize(rows, cols int)
	// FetchLine returns the cells for one row of the active page.
	FetchLine(row int) []Cell
	// GetCursorPos returns the cursor's current row/col and visibility.
	GetCursorPos() (row, col int, visible bool)
	// GetCaretStyle returns the cursor's current rendering style.
	GetCaretStyle() CursorStyle
	// Palette returns the resolved 256-slot color table to paint with.
	Palette() [256]color.RGBA
}

// SizeHint describes a renderer's preferred pixel geometry for a given
// grid size, used by hosts that need to size a window before a single
// cell has been painted.
type SizeHint struct {
	Rows, Cols         int
	CellWidth          int
	CellHeight         int
	PixelW, PixelH     int
}

// SizeHintFor computes a SizeHint for rows/cols at the given cell pixel
// dimensions.
func SizeHintFor(rows, cols, cellW, cellH int) SizeHint {
	return SizeHint{
		Rows: rows, Cols: cols,
		CellWidth: cellW, CellHeight: cellH,
		PixelW: cols * cellW, PixelH: rows * cellH,
	}
}

// CaretVisible computes whether the caret should currently be painted,
// given a blink-phase boolean (the host's own ticker state) and the
// cursor's current style and visibility. Steady styles are always shown
// while visible; blinking styles alternate with the phase.
func CaretVisible(style CursorStyle, visible, blinkPhase bool) bool {
	if !visible {
		return false
	}
	switch style {
	case CursorStyleSteadyBlock, CursorStyleSteadyUnderline, CursorStyleSteadyBar:
		return true
	default:
		return blinkPhase
	}
}

// RenderHooks lets a host observe renderer-relevant events without
// implementing the full provider-interface set (BellProvider,
// TitleProvider, ...) for each one individually — a single struct of
// optional callbacks, in the same spirit as Middleware's function fields.
// Any field left nil is simply not invoked. The emulator invokes WhenBell,
// WhenTitle, WhenResize, WhenLink, WhenDirectoryChange and WhenMessage;
// WhenOutput, WhenImage, WhenProgress, WhenBackgroundChange and
// WhenAnnotation are never invoked.
type RenderHooks struct {
	WhenBell             func()
	WhenTitle            func(title string)
	WhenResize           func(rows, cols int)
	WhenOutput           func(data []byte)
	WhenLink             func(link *Hyperlink)
	WhenImage            func(placement *ImagePlacement)
	WhenProgress         func(state, percent int)
	WhenDirectoryChange  func(uri string)
	WhenMessage          func(payload string)
	WhenBackgroundChange func(c color.Color)
	WhenAnnotation       func(ann *Annotation)
}

// SetRenderHooks installs (or clears, with nil) the render-facing event
// hooks.
func (t *Emulator) SetRenderHooks(h *RenderHooks) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.renderHooks = h
}

// RenderHooksValue returns the currently installed render hooks, or nil.
func (t *Emulator) RenderHooksValue() *RenderHooks {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.renderHooks
}

func (t *Emulator) fireBell() {
	if t.renderHooks != nil && t.renderHooks.WhenBell != nil {
		t.renderHooks.WhenBell()
	}
}

func (t *Emulator) fireTitle(title string) {
	if t.renderHooks != nil && t.renderHooks.WhenTitle != nil {
		t.renderHooks.WhenTitle(title)
	}
}

func (t *Emulator) fireResize(rows, cols int) {
	if t.renderHooks != nil && t.renderHooks.WhenResize != nil {
		t.renderHooks.WhenResize(rows, cols)
	}
}

func (t *Emulator) fireDirectoryChange(uri string) {
	if t.renderHooks != nil && t.renderHooks.WhenDirectoryChange != nil {
		t.renderHooks.WhenDirectoryChange(uri)
	}
}

func (t *Emulator) fireLink(link *Hyperlink) {
	if t.renderHooks != nil && t.renderHooks.WhenLink != nil {
		t.renderHooks.WhenLink(link)
	}
}

func (t *Emulator) fireMessage(payload string) {
	if t.renderHooks != nil && t.renderHooks.WhenMessage != nil {
		t.renderHooks.WhenMessage(payload)
	}
}
