package socket

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

const socketPrefix = "tgen-"

// Server accepts one JSON message per connection on a unix socket and hands
// it to the application loop through Messages
type Server struct {
	path     string
	ln       net.Listener
	messages chan Message
	done     chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex
	open    map[net.Conn]struct{}
	serving sync.WaitGroup

	// timeout bounds how long a query waits for the application's answer
	timeout time.Duration
	// readTimeout bounds how long a client may take to send its message
	readTimeout time.Duration
}

// SocketDir is $XDG_RUNTIME_DIR/tui-templategen, or a directory under the
// user's data dir when no runtime dir is set
func SocketDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "tui-templategen")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "tui-templategen")
}

func socketName(pid int) string {
	return fmt.Sprintf("%s%d.sock", socketPrefix, pid)
}

// NewServer listens on the socket for pid in SocketDir
func NewServer(pid int) (*Server, error) {
	return NewServerIn(SocketDir(), pid)
}

// NewServerIn listens on the socket for pid in dir, replacing a stale one
func NewServerIn(dir string, pid int) (*Server, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create socket directory: %w", err)
	}

	path := filepath.Join(dir, socketName(pid))
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to remove stale socket: %w", err)
	}

	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on socket: %w", err)
	}
	log.Printf("Socket server listening on %s", path)

	return &Server{
		path:     path,
		ln:       ln,
		messages: make(chan Message, 10),
		done:     make(chan struct{}),
		open:     make(map[net.Conn]struct{}),

		timeout:     10 * time.Second,
		readTimeout: 5 * time.Second,
	}, nil
}

// Start accepts connections in the background until Stop
func (s *Server) Start() {
	go func() {
		for {
			conn, err := s.ln.Accept()
			if err != nil {
				select {
				case <-s.done:
					return
				default:
				}
				log.Printf("Socket accept: %v", err)
				continue
			}
			if !s.track(conn) {
				conn.Close()
				return
			}
			go func() {
				defer s.untrack(conn)
				s.serve(conn)
			}()
		}
	}()
}

// track registers an accepted connection, unless the server is stopping
func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.done:
		return false
	default:
	}
	s.open[conn] = struct{}{}
	s.serving.Add(1)
	return true
}

func (s *Server) untrack(conn net.Conn) {
	conn.Close()
	s.mu.Lock()
	delete(s.open, conn)
	s.mu.Unlock()
	s.serving.Done()
}

func (s *Server) serve(conn net.Conn) {
	var msg Message
	if err := conn.SetReadDeadline(time.Now().Add(s.readTimeout)); err != nil {
		log.Printf("Socket deadline: %v", err)
	}
	err := json.NewDecoder(conn).Decode(&msg)
	var response *Response
	switch {
	case err != nil:
		if !errors.Is(err, io.EOF) {
			log.Printf("Socket decode: %v", err)
		}
		response = &Response{Message: fmt.Sprintf("Invalid message format: %v", err)}
	case msg.Command == "":
		response = &Response{Message: "Missing command field"}
	default:
		response = s.deliver(msg)
	}

	if err := json.NewEncoder(conn).Encode(response); err != nil {
		log.Printf("Socket reply: %v", err)
	}
}

// deliver queues msg for the application loop. Queries wait for its answer.
func (s *Server) deliver(msg Message) *Response {
	if IsQuery(msg.Command) {
		msg.ResponseChan = make(chan *Response, 1)
	}

	select {
	case s.messages <- msg:
	case <-s.done:
		return &Response{Message: "Server is shutting down"}
	}
	if msg.ResponseChan == nil {
		return &Response{Success: true, Message: "Command queued"}
	}

	select {
	case response := <-msg.ResponseChan:
		return response
	case <-time.After(s.timeout):
		return &Response{Message: "Command timed out"}
	case <-s.done:
		return &Response{Message: "Server is shutting down"}
	}
}

// Messages delivers accepted messages in arrival order
func (s *Server) Messages() <-chan Message {
	return s.messages
}

func (s *Server) SocketPath() string {
	return s.path
}

// Stop closes the listener and every open connection, waits for their
// handlers and removes the socket file. It is safe to call more than once.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		close(s.done)
		for conn := range s.open {
			conn.Close()
		}
		s.mu.Unlock()

		s.ln.Close()
		s.serving.Wait()
		os.Remove(s.path)
		log.Printf("Socket server stopped")
	})
}
