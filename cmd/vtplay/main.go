// Command vtplay runs the user's shell under a pty and feeds its output
// into a vtterm.Emulator, printing the rendered page to stdout once the
// shell's pty output ends. It is a minimal host loop,
// not a full terminal UI: no raw-mode input forwarding, no TUI rendering.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	vtterm "github.com/vtterm-go/vtterm"
	"github.com/vtterm-go/vtterm/ptyproc"
)

func main() {
	rows, cols := 24, 80

	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	cmd := exec.Command(shell)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	p, err := ptyproc.Start(cmd, cols, rows)
	if err != nil {
		log.Fatalf("vtplay: starting pty: %v", err)
	}
	defer p.Close()

	term := vtterm.New(
		vtterm.WithSize(rows, cols),
		vtterm.WithResponse(p.Writer()),
	)

	sigwinch := make(chan os.Signal, 1)
	signal.Notify(sigwinch, syscall.SIGWINCH)
	go func() {
		for range sigwinch {
			term.Resize(rows, cols)
			p.Resize(cols, rows)
		}
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		buf := make([]byte, 4096)
		for {
			n, err := p.Read(buf)
			if n > 0 {
				term.Write(buf[:n])
			}
			if err != nil {
				if err != io.EOF {
					log.Printf("vtplay: pty read: %v", err)
				}
				return
			}
		}
	}()

	<-done
	fmt.Print(term.String())
}
