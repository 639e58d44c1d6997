package control

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"

	"github.com/google/uuid"

	"github.com/beamcast/playout/channel"
	"github.com/beamcast/playout/producer"
)

// Server accepts control connections and applies their commands to the
// channel group. One goroutine per connection; replies are single lines,
// "2xx ..." on success and "400 ERR ..." on failure.
type Server struct {
	log      *slog.Logger
	addr     string
	group    *channel.Group
	registry *producer.Registry
}

// NewServer creates a control server. If log is nil, slog.Default()
// is used.
func NewServer(addr string, group *channel.Group, registry *producer.Registry, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		log:      log.With("component", "control"),
		addr:     addr,
		group:    group,
		registry: registry,
	}
}

// Start listens for control connections until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	l, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("control: listen on %s: %w", s.addr, err)
	}
	s.log.Info("listening", "addr", l.Addr().String())

	go func() {
		<-ctx.Done()
		l.Close()
	}()

	for {
		conn, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.log.Warn("accept error", "error", err)
			continue
		}
		go s.handleConn(ctx, conn)
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	id := uuid.New()
	log := s.log.With("conn", id, "remote", conn.RemoteAddr().String())
	log.Info("connected")
	defer log.Info("disconnected")

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		cmd, err := ParseCommand(line)
		if err != nil {
			log.Warn("bad command", "line", line, "error", err)
			fmt.Fprintf(conn, "400 ERR %v\r\n", err)
			continue
		}
		if cmd.Name == "BYE" {
			fmt.Fprintf(conn, "200 BYE\r\n")
			return
		}

		reply, err := s.Execute(cmd)
		if err != nil {
			log.Warn("command failed", "command", cmd.Name, "error", err)
			fmt.Fprintf(conn, "400 ERR %v\r\n", err)
			continue
		}
		log.Debug("command ok", "command", cmd.Name)
		fmt.Fprintf(conn, "%s\r\n", reply)
	}
}

// Execute applies one parsed command to the channel group and returns the
// success reply line.
func (s *Server) Execute(cmd *Command) (string, error) {
	switch cmd.Name {
	case "LOAD":
		ch, err := s.lookup(cmd.Channel)
		if err != nil {
			return "", err
		}
		p, err := s.registry.CreateSpec(cmd.Spec)
		if err != nil {
			return "", err
		}
		if err := ch.Load(cmd.Layer, p); err != nil {
			return "", err
		}
		return "201 LOAD OK", nil

	case "PLAY":
		ch, err := s.lookup(cmd.Channel)
		if err != nil {
			return "", err
		}
		if cmd.Spec != "" {
			p, err := s.registry.CreateSpec(cmd.Spec)
			if err != nil {
				return "", err
			}
			if err := ch.Load(cmd.Layer, p); err != nil {
				return "", err
			}
		}
		if err := ch.Play(cmd.Layer, cmd.Transition); err != nil {
			return "", err
		}
		return "202 PLAY OK", nil

	case "STOP":
		ch, err := s.lookup(cmd.Channel)
		if err != nil {
			return "", err
		}
		ch.Stop(cmd.Layer)
		return "203 STOP OK", nil

	case "CLEAR":
		ch, err := s.lookup(cmd.Channel)
		if err != nil {
			return "", err
		}
		ch.Clear()
		return "204 CLEAR OK", nil

	case "INFO":
		payload, err := s.info(cmd.Channel)
		if err != nil {
			return "", err
		}
		return "200 INFO " + payload, nil

	default:
		return "", fmt.Errorf("%w %q", ErrUnknownCommand, cmd.Name)
	}
}

func (s *Server) lookup(num int) (*channel.Channel, error) {
	ch, ok := s.group.Get(num)
	if !ok {
		return nil, fmt.Errorf("%w %d", ErrUnknownChannel, num)
	}
	return ch, nil
}

// info marshals one channel's snapshot, or every channel's when num is
// negative.
func (s *Server) info(num int) (string, error) {
	if num >= 0 {
		ch, err := s.lookup(num)
		if err != nil {
			return "", err
		}
		b, err := json.Marshal(ch.Snapshot())
		if err != nil {
			return "", fmt.Errorf("control: marshal snapshot: %w", err)
		}
		return string(b), nil
	}

	snaps := make([]channel.Snapshot, 0)
	for _, ch := range s.group.All() {
		snaps = append(snaps, ch.Snapshot())
	}
	b, err := json.Marshal(snaps)
	if err != nil {
		return "", fmt.Errorf("control: marshal snapshots: %w", err)
	}
	return string(b), nil
}
