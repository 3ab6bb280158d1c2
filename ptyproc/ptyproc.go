// Package ptyproc runs a child process attached to a pseudo-terminal and
// feeds its output to a vtterm.Emulator. Go has no runtime polymorphism
// worth paying for here, so rather than a Pty interface with one
// implementation per backend, Pty is a tagged struct: a Kind field picks
// which branch is live, and only the POSIX branch is filled in on this
// platform. WinPty and ConPty are named now so callers and future
// implementations have a stable Kind to switch on.
package ptyproc

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"
)

// Kind identifies which backend a Pty was started with.
type Kind int

const (
	Posix Kind = iota
	WinPty
	ConPty
)

func (k Kind) String() string {
	switch k {
	case Posix:
		return "posix"
	case WinPty:
		return "winpty"
	case ConPty:
		return "conpty"
	default:
		return "unknown"
	}
}

// Pty is a running child process attached to a pseudo-terminal. Exactly
// one backend's fields are populated, selected by Kind.
type Pty struct {
	Kind Kind

	cmd *exec.Cmd
	mu  sync.Mutex

	// posix holds the master side of a POSIX pty, set when Kind == Posix.
	posix *os.File

	exitedMu sync.Mutex
	exited   bool
	exitErr  error
}

// Start launches cmd attached to a new pseudo-terminal sized to cols x
// rows. On POSIX platforms this wraps creack/pty; WinPty and ConPty are
// not implemented and return an error naming the missing backend.
func Start(cmd *exec.Cmd, cols, rows int) (*Pty, error) {
	master, err := pty.StartWithSize(cmd, &pty.Winsize{
		Cols: uint16(cols),
		Rows: uint16(rows),
	})
	if err != nil {
		return nil, err
	}

	p := &Pty{
		Kind:  Posix,
		cmd:   cmd,
		posix: master,
	}

	go func() {
		err := cmd.Wait()
		p.exitedMu.Lock()
		p.exited = true
		p.exitErr = err
		p.exitedMu.Unlock()
	}()

	return p, nil
}

// StartWinPty would launch cmd under a Windows winpty backend. Not
// implemented on this platform.
func StartWinPty(cmd *exec.Cmd, cols, rows int) (*Pty, error) {
	return nil, errors.New("ptyproc: winpty backend not implemented")
}

// StartConPty would launch cmd under the Windows ConPTY API. Not
// implemented on this platform.
func StartConPty(cmd *exec.Cmd, cols, rows int) (*Pty, error) {
	return nil, errors.New("ptyproc: conpty backend not implemented")
}

// Read reads child output from the pty master.
func (p *Pty) Read(buf []byte) (int, error) {
	switch p.Kind {
	case Posix:
		return p.posix.Read(buf)
	default:
		return 0, errUnsupportedKind(p.Kind)
	}
}

// Write sends input to the child process.
func (p *Pty) Write(data []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.Kind {
	case Posix:
		return p.posix.Write(data)
	default:
		return 0, errUnsupportedKind(p.Kind)
	}
}

// Resize updates the pty's reported window size, which delivers SIGWINCH
// to the child on POSIX.
func (p *Pty) Resize(cols, rows int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.Kind {
	case Posix:
		return pty.Setsize(p.posix, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
	default:
		return errUnsupportedKind(p.Kind)
	}
}

// HasExited reports whether the child process has exited.
func (p *Pty) HasExited() bool {
	p.exitedMu.Lock()
	defer p.exitedMu.Unlock()
	return p.exited
}

// ExitError returns the error cmd.Wait returned, once the child has
// exited; nil before then or on a clean exit.
func (p *Pty) ExitError() error {
	p.exitedMu.Lock()
	defer p.exitedMu.Unlock()
	return p.exitErr
}

// Close terminates the child process and releases the pty master.
func (p *Pty) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cmd != nil && p.cmd.Process != nil {
		p.cmd.Process.Kill()
	}
	switch p.Kind {
	case Posix:
		return p.posix.Close()
	default:
		return nil
	}
}

// Reader returns an io.Reader over the pty master.
func (p *Pty) Reader() io.Reader {
	switch p.Kind {
	case Posix:
		return p.posix
	default:
		return nil
	}
}

// Writer returns an io.Writer over the pty master.
func (p *Pty) Writer() io.Writer {
	switch p.Kind {
	case Posix:
		return p.posix
	default:
		return nil
	}
}

func errUnsupportedKind(k Kind) error {
	return errors.New("ptyproc: backend not implemented: " + k.String())
}
