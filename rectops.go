package vtterm

// This file implements the DEC private sequences scanner.go intercepts ahead
// of the ansicode.Decoder: DECSCA character protection, DECSED/DECSEL
// selective erase, and the DECCRA/DECERA/DECFRA/DECSERA/DECCARA/DECRARA/
// DECSACE rectangular-area family. None of these have a callback on
// go-ansicode's Handler interface.

// SetCharacterProtection implements DECSCA (CSI Ps " q): Ps=1 marks
// subsequently printed characters protected (CellFlagProtected), Ps=0 or 2
// turns protection back off. The flag rides in the cell template exactly
// like any other SGR attribute, so ordinary printing already copies it onto
// each new cell.
func (t *Emulator) SetCharacterProtection(ps int) {
	if t.middleware != nil && t.middleware.SetCharacterProtection != nil {
		t.middleware.SetCharacterProtection(ps, t.setCharacterProtectionInternal)
		return
	}
	t.setCharacterProtectionInternal(ps)
}

func (t *Emulator) setCharacterProtectionInternal(ps int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if ps == 1 {
		t.template.SetFlag(CellFlagProtected)
	} else {
		t.template.ClearFlag(CellFlagProtected)
	}
}

// SetAttributeChangeExtent implements DECSACE (CSI Ps * x), selecting whether
// DECCARA/DECRARA act over the rectangle's columns only (Ps=2) or over the
// full width of every selected row (Ps=1 or default).
func (t *Emulator) SetAttributeChangeExtent(ps int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.attrExtentRect = ps == 2
}

// SelectiveEraseDisplay implements DECSED (CSI ? Ps J): like ED, but leaves
// protected cells untouched.
func (t *Emulator) SelectiveEraseDisplay(mode int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch mode {
	case 0:
		t.activePage.ClearRowRangeWithFill(t.cursor.Row, t.cursor.Col, t.cols, EraseFillSelective)
		for row := t.cursor.Row + 1; row < t.rows; row++ {
			t.activePage.ClearRowWithFill(row, EraseFillSelective)
		}
	case 1:
		for row := 0; row < t.cursor.Row; row++ {
			t.activePage.ClearRowWithFill(row, EraseFillSelective)
		}
		t.activePage.ClearRowRangeWithFill(t.cursor.Row, 0, t.cursor.Col+1, EraseFillSelective)
	case 2, 3:
		t.activePage.ClearAllWithFill(EraseFillSelective)
	}
}

// SelectiveEraseLine implements DECSEL (CSI ? Ps K): like EL, but leaves
// protected cells untouched.
func (t *Emulator) SelectiveEraseLine(mode int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch mode {
	case 0:
		t.activePage.ClearRowRangeWithFill(t.cursor.Row, t.cursor.Col, t.cols, EraseFillSelective)
	case 1:
		t.activePage.ClearRowRangeWithFill(t.cursor.Row, 0, t.cursor.Col+1, EraseFillSelective)
	case 2:
		t.activePage.ClearRowWithFill(t.cursor.Row, EraseFillSelective)
	}
}

// rectParam extracts the 1-based Pt;Pl;Pb;Pr rectangle parameters starting at
// params[offset], defaulting omitted trailing values to the page (or margin,
// under origin mode) extent and clamping the origin to the scrolling margins
// the same way DECSTBM-relative addressing does.
func (t *Emulator) rectParam(params []int, offset int) (top, left, bottom, right int) {
	at := func(i, def int) int {
		if offset+i < len(params) && params[offset+i] > 0 {
			return params[offset+i]
		}
		return def
	}

	t.mu.RLock()
	originTop, originLeft := 0, 0
	maxBottom, maxRight := t.rows, t.cols
	if t.modes&ModeOrigin != 0 {
		originTop = t.scrollTop
		originLeft = t.leftBoundLocked()
		maxBottom = t.scrollBottom
		maxRight = t.rightBoundLocked() + 1
	}
	t.mu.RUnlock()

	pt := at(0, 1)
	pl := at(1, 1)
	pb := at(2, maxBottom-originTop)
	pr := at(3, maxRight-originLeft)

	top = originTop + pt - 1
	left = originLeft + pl - 1
	bottom = originTop + pb - 1
	right = originLeft + pr - 1
	return
}

// EraseProtectedRegion clears only the cells in the given rectangle that
// carry CellFlagProtected, leaving everything else untouched. There is no
// DEC control sequence for this; it exists for hosts that want to drop
// DECSCA-guarded regions (e.g. stale prompt decoration) programmatically
// without erasing the surrounding unprotected text.
func (t *Emulator) EraseProtectedRegion(top, left, bottom, right int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activePage.EraseRectangle(top, left, bottom, right, EraseFillProtectedOnly)
}

// EraseRectangularArea implements DECERA (CSI Pt;Pl;Pb;Pr $ z): resets every
// cell in the rectangle, protected or not.
func (t *Emulator) EraseRectangularArea(params []int) {
	top, left, bottom, right := t.rectParam(params, 0)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activePage.EraseRectangle(top, left, bottom, right, EraseFillNormal)
}

// SelectiveEraseRectangularArea implements DECSERA (CSI Pt;Pl;Pb;Pr $ {):
// like DECERA, but leaves protected cells untouched.
func (t *Emulator) SelectiveEraseRectangularArea(params []int) {
	top, left, bottom, right := t.rectParam(params, 0)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activePage.EraseRectangle(top, left, bottom, right, EraseFillSelective)
}

// FillRectangularArea implements DECFRA (CSI Pch;Pt;Pl;Pb;Pr $ x): sets every
// cell's character in the rectangle to the character whose code point is
// Pch, keeping current attributes.
func (t *Emulator) FillRectangularArea(params []int) {
	if len(params) == 0 || params[0] <= 0 {
		return
	}
	ch := rune(params[0])
	top, left, bottom, right := t.rectParam(params, 1)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activePage.FillRectangle(top, left, bottom, right, ch, EraseFillNormal)
}

// CopyRectangularArea implements DECCRA (CSI Pts;Pls;Pbs;Prs;Pps;Ptd;Pld;Ppd
// $ v). Source/destination page numbers are accepted but ignored: this
// emulator only ever copies within the active page, via a temporary buffer
// so an overlapping source and destination rectangle copies correctly.
func (t *Emulator) CopyRectangularArea(params []int) {
	at := func(i, def int) int {
		if i < len(params) && params[i] > 0 {
			return params[i]
		}
		return def
	}

	t.mu.RLock()
	rows, cols := t.rows, t.cols
	t.mu.RUnlock()

	srcTop := at(0, 1) - 1
	srcLeft := at(1, 1) - 1
	srcBottom := at(2, rows) - 1
	srcRight := at(3, cols) - 1
	dstTop := at(5, 1) - 1
	dstLeft := at(6, 1) - 1

	t.mu.Lock()
	defer t.mu.Unlock()
	t.activePage.CopyRectangle(t.activePage, srcTop, srcLeft, srcBottom, srcRight, dstTop, dstLeft)
}

// attrCodeFlag maps a DECCARA/DECRARA SGR-style parameter to the cell flag it
// touches and whether it turns the attribute on or off; ok is false for
// unrecognized codes, which DECCARA/DECRARA silently ignore.
func attrCodeFlag(code int) (flag CellFlags, set bool, ok bool) {
	switch code {
	case 1:
		return CellFlagBold, true, true
	case 4:
		return CellFlagUnderline, true, true
	case 5:
		return CellFlagBlinkSlow, true, true
	case 7:
		return CellFlagReverse, true, true
	case 22:
		return CellFlagBold | CellFlagDim, false, true
	case 24:
		return CellFlagUnderline | CellFlagDoubleUnderline | CellFlagCurlyUnderline | CellFlagDottedUnderline | CellFlagDashedUnderline, false, true
	case 25:
		return CellFlagBlinkSlow | CellFlagBlinkFast, false, true
	case 27:
		return CellFlagReverse, false, true
	case 53:
		return CellFlagOverline, true, true
	case 55:
		return CellFlagOverline, false, true
	default:
		return 0, false, false
	}
}

// ChangeAttributesInRectangularArea implements DECCARA
// (CSI Pt;Pl;Pb;Pr;Ps... $ r): turns the listed SGR-style attributes on or
// off for every cell in range, honoring DECSACE's stream/rectangle extent.
func (t *Emulator) ChangeAttributesInRectangularArea(params []int) {
	top, left, bottom, right := t.rectParam(params, 0)

	var setMask, clearMask CellFlags
	for _, code := range paramsFrom(params, 4) {
		if flag, set, ok := attrCodeFlag(code); ok {
			if set {
				setMask |= flag
			} else {
				clearMask |= flag
			}
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.applyRectAttrsLocked(top, left, bottom, right, func(row, l, r int) {
		t.activePage.ChangeAttributesRectangle(row, l, row, r, setMask, clearMask)
	})
}

// ReverseAttributesInRectangularArea implements DECRARA
// (CSI Pt;Pl;Pb;Pr;Ps... $ t): toggles the listed attributes for every cell
// in range, honoring DECSACE's stream/rectangle extent.
func (t *Emulator) ReverseAttributesInRectangularArea(params []int) {
	top, left, bottom, right := t.rectParam(params, 0)

	var toggleMask CellFlags
	for _, code := range paramsFrom(params, 4) {
		if flag, _, ok := attrCodeFlag(code); ok {
			toggleMask |= flag
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.applyRectAttrsLocked(top, left, bottom, right, func(row, l, r int) {
		t.activePage.ReverseAttributesRectangle(row, l, row, r, toggleMask)
	})
}

// applyRectAttrsLocked calls apply once per row with either the rectangle's
// own columns (rectangle extent) or the full page width (stream extent), per
// DECSACE. Caller must hold t.mu.
func (t *Emulator) applyRectAttrsLocked(top, left, bottom, right int, apply func(row, l, r int)) {
	for row := top; row <= bottom; row++ {
		if t.attrExtentRect {
			apply(row, left, right)
		} else {
			apply(row, 0, t.cols-1)
		}
	}
}
