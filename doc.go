// Package vtterm provides a headless VT220/VT300-class terminal emulator
// core: a byte-stream interpreter, page model, and sequence dispatcher with
// no GUI attached.
//
// This package emulates a terminal without any display, making it ideal for:
//   - Testing terminal applications without a GUI
//   - Building terminal multiplexers and recorders
//   - Creating terminal-based web applications
//   - Automated testing of CLI tools
//   - Screen scraping and automation
//
// # Quick Start
//
// Create an emulator and write ANSI sequences to it:
//
//	term := vtterm.New()
//	term.WriteString("\x1b[31mHello \x1b[32mWorld\x1b[0m!")
//	fmt.Println(term.String()) // "Hello World!"
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [Emulator]: The dispatcher that classifies and applies parsed sequences
//   - [Page]: A 2D grid of cells with scrollback, margins, and tab stops
//   - [Cell]: A single character with colors, attributes, and object refs
//   - [Cursor]: Tracks position and rendering style
//
// # Emulator
//
// Emulator is the main entry point. It implements [io.Writer] so you can write
// raw bytes containing ANSI escape sequences:
//
//	term := vtterm.New(
//	    vtterm.WithSize(24, 80),           // 24 rows, 80 columns
//	    vtterm.WithScrollback(storage),    // Enable scrollback
//	    vtterm.WithResponse(ptyWriter),    // Handle terminal responses
//	)
//
//	// Process output from a command
//	cmd := exec.Command("ls", "-la", "--color")
//	cmd.Stdout = term
//	cmd.Run()
//
//	// Read the result
//	for row := 0; row < term.Rows(); row++ {
//	    fmt.Println(term.LineContent(row))
//	}
//
// # Dual Pages
//
// Emulator maintains two pages:
//
//   - Primary page: Normal mode with optional scrollback storage
//   - Alternate page: Used by full-screen apps (vim, less, htop), no scrollback
//
// Applications switch pages via ANSI sequences (CSI ?1049h/l). Check which
// page is active:
//
//	if term.IsAlternateScreen() {
//	    // Full-screen app is running
//	}
//
// # Margins
//
// In addition to the vertical scroll region (DECSTBM), Emulator tracks
// horizontal margins (DECSLRM) once left/right margin mode is enabled
// (DECSET 69). Cursor movement, autowrap, and scrolling honor both axes
// once margins are enabled; see margins.go.
//
// # Cells and Attributes
//
// Each cell stores a character with styling information:
//
//	cell := term.Cell(row, col)
//	if cell != nil {
//	    fmt.Printf("Char: %c\n", cell.Char)
//	    fmt.Printf("Bold: %v\n", cell.HasFlag(vtterm.CellFlagBold))
//	    fmt.Printf("FG: %v\n", cell.Fg)
//	    fmt.Printf("BG: %v\n", cell.Bg)
//	}
//
// Cell flags include: Bold, Dim, Italic, Underline (single/double/curly/
// dotted/dashed), Blink (slow/fast), Reverse, Hidden, Strike, Protected,
// Wide, WideSpacer.
//
// # Colors
//
// Colors are stored using Go's [image/color] interface. The package supports
// named colors (0-15), the 256-color palette, true color, and the extended
// parser grammar in colorparse.go: hash colors (#RGB.. #RRRRGGGGBBBB),
// rgb[a]:/rgb() forms, and cmyk:/cmy: forms (see [ParseColorSpec]).
//
// # Scrollback
//
// Lines scrolled off the top of the primary page can be stored for later
// access. Implement [ScrollbackProvider] and pass it with [WithScrollback];
// the only implementation in this package is [NoopScrollback], which
// stores nothing:
//
//	var storage vtterm.ScrollbackProvider = newMyScrollback(10000)
//	term := vtterm.New(vtterm.WithScrollback(storage))
//
//	for i := 0; i < term.ScrollbackLen(); i++ {
//	    line := term.ScrollbackLine(i) // []Cell
//	}
//
// # Providers
//
// Providers handle terminal events and queries. All are optional with no-op
// defaults: [BellProvider], [TitleProvider], [ClipboardProvider],
// [ScrollbackProvider], [RecordingProvider], [SizeProvider],
// [ShellIntegrationProvider].
//
// # Middleware
//
// Middleware intercepts dispatcher calls for custom behavior; see
// [Middleware].
//
// # Selection & search
//
// [Selection] supports Text, Line, Rect, and Word modes (see
// selection.go). [Emulator.Search] and [Emulator.SearchConcurrent] find
// substrings in the visible page and scrollback, the latter partitioning
// wrapped-line spans across goroutines.
//
// # Keys & mouse
//
// [EncodeKey] and [EncodeMouse] turn renderer-facing input events into the
// byte sequences a child process expects, honoring DECCKM, DECKPAM, DECBKM,
// XTALTESCM, PC-style modified function keys, and the active mouse protocol.
// Key encoding has no VT52 mode, no conformance-level switch and no
// modifyOtherKeys mode.
//
// # Snapshots & persistence
//
// [Emulator.Snapshot] captures page state for serialization or rendering.
// [Emulator.SavePaletteState]/[Emulator.LoadPaletteState] (de)serialize the palette and caret
// style as JSON, per the persisted-state contract.
//
// # Pty process
//
// The external pty collaborator lives in the sibling package
// [github.com/vtterm-go/vtterm/ptyproc], kept separate from the core per the
// scope boundary: the core never performs process I/O itself.
//
// # Thread Safety
//
// All Emulator methods are safe for concurrent use via internal locking.
package vtterm
