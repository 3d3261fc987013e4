// Package server streams finished frames to terminal sessions over SSH.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"unicode/utf8"

	"github.com/gliderlabs/ssh"
	"github.com/google/uuid"

	"github.com/idralyuk/GradienTea-sub001/internal/dmx"
	"github.com/idralyuk/GradienTea-sub001/internal/logging"
	"github.com/idralyuk/GradienTea-sub001/internal/monitor"
	"github.com/idralyuk/GradienTea-sub001/internal/pixel"
	"github.com/idralyuk/GradienTea-sub001/internal/show"
)

// Action is a key command from a session.
type Action int

const (
	ActionNone Action = iota
	ActionScrollUp
	ActionScrollDown
	ActionPageUp
	ActionPageDown
	ActionQuit
)

// FrameSource hands out per-session frame channels.
type FrameSource interface {
	Subscribe(id string) (show.FrameChan, error)
	Unsubscribe(id string)
}

// SSHServer wraps the SSH listener and the frame source.
type SSHServer struct {
	source  FrameSource
	pixels  []pixel.Pixel
	addr    string
	hostKey string
}

// NewSSHServer creates a new SSH server bound to the given address. pixels
// are the addresses each session displays.
func NewSSHServer(addr, hostKey string, source FrameSource, pixels []pixel.Pixel) *SSHServer {
	return &SSHServer{
		source:  source,
		pixels:  append([]pixel.Pixel(nil), pixels...),
		addr:    addr,
		hostKey: hostKey,
	}
}

// Serve listens for SSH connections until ctx is done.
func (s *SSHServer) Serve(ctx context.Context) error {
	server := &ssh.Server{
		Addr:    s.addr,
		Handler: s.handleSession,
	}
	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	go func() {
		<-ctx.Done()
		server.Close()
	}()

	logging.Logger().Info("ssh monitor listening", "addr", s.addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	id := uuid.NewString()
	frames, err := s.source.Subscribe(id)
	if err != nil {
		fmt.Fprintf(sess, "Error: %v\n", err)
		return
	}
	log := logging.Logger().With("session", id, "user", sess.User(), "remote", sess.RemoteAddr().String())
	log.Info("monitor connected")
	defer func() {
		s.source.Unsubscribe(id)
		log.Info("monitor disconnected")
	}()

	termW := ptyReq.Window.Width
	termH := ptyReq.Window.Height
	var termMu sync.Mutex

	engine := monitor.NewEngine(termW, termH, s.pixels)

	io.WriteString(sess, monitor.EnableAltScreen())
	io.WriteString(sess, monitor.HideCursor())
	io.WriteString(sess, monitor.ClearScreen())
	defer func() {
		io.WriteString(sess, monitor.ShowCursor())
		io.WriteString(sess, monitor.DisableAltScreen())
	}()

	actionCh := make(chan Action, 16)
	quitCh := make(chan struct{})

	go func() {
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				close(quitCh)
				return
			}
			for _, a := range parseInput(buf[:n]) {
				if a == ActionQuit {
					close(quitCh)
					return
				}
				select {
				case actionCh <- a:
				default:
				}
			}
		}
	}()

	go func() {
		for win := range winCh {
			termMu.Lock()
			termW = win.Width
			termH = win.Height
			termMu.Unlock()
		}
	}()

	var last monitor.Frame
	draw := func() {
		termMu.Lock()
		w, h := termW, termH
		termMu.Unlock()
		if out := engine.Render(last, w, h); len(out) > 0 {
			io.WriteString(sess, out)
		}
	}

	for {
		select {
		case <-quitCh:
			return
		case <-sess.Context().Done():
			return
		case a := <-actionCh:
			termMu.Lock()
			page := termH - monitor.StatusRows
			termMu.Unlock()
			engine.ScrollBy(scrollDelta(a, page))
			draw()
		case snap, ok := <-frames:
			if !ok {
				return
			}
			last = toMonitorFrame(snap)
			draw()
		}
	}
}

// toMonitorFrame exposes the snapshot's universes without copying; frames
// are never modified once broadcast.
func toMonitorFrame(s show.Snapshot) monitor.Frame {
	f := monitor.Frame{Seq: s.Seq, Fraction: s.Fraction}
	if s.Frame == nil {
		return f
	}
	f.Universes = make([][]byte, dmx.Universes)
	for i := range f.Universes {
		f.Universes[i] = s.Frame[i][:]
	}
	return f
}

func scrollDelta(a Action, page int) int {
	if page < 1 {
		page = 1
	}
	switch a {
	case ActionScrollUp:
		return -1
	case ActionScrollDown:
		return 1
	case ActionPageUp:
		return -page
	case ActionPageDown:
		return page
	}
	return 0
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// parseInput converts raw bytes into monitor actions.
// Handles arrow keys, PgUp/PgDn, vi and WASD keys, Q, and Ctrl-C.
func parseInput(data []byte) []Action {
	var actions []Action
	i := 0
	for i < len(data) {
		if i+3 < len(data) && data[i] == 0x1b && data[i+1] == '[' && isDigit(data[i+2]) && data[i+3] == '~' {
			switch data[i+2] {
			case '5':
				actions = append(actions, ActionPageUp)
			case '6':
				actions = append(actions, ActionPageDown)
			}
			i += 4
			continue
		}
		if i+2 < len(data) && data[i] == 0x1b && data[i+1] == '[' {
			switch data[i+2] {
			case 'A':
				actions = append(actions, ActionScrollUp)
			case 'B':
				actions = append(actions, ActionScrollDown)
			}
			i += 3
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case 'k', 'K', 'w', 'W':
			actions = append(actions, ActionScrollUp)
		case 'j', 'J', 's', 'S':
			actions = append(actions, ActionScrollDown)
		case ' ':
			actions = append(actions, ActionPageDown)
		case 'b', 'B':
			actions = append(actions, ActionPageUp)
		case 'q', 'Q':
			actions = append(actions, ActionQuit)
		case 3: // Ctrl-C
			actions = append(actions, ActionQuit)
		}
		i += size
	}
	return actions
}
