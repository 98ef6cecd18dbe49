package socket

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const clientTimeout = 15 * time.Second

// ErrNoInstance is returned when no socket of a running tgen is found
var ErrNoInstance = errors.New("no running tgen instance found")

// Client sends messages to a running instance
type Client struct {
	socketPath string
}

// FindRunningInstance returns the socket path and pid of the most recently
// started instance
func FindRunningInstance() (string, int, error) {
	return FindRunningInstanceIn(SocketDir())
}

// FindRunningInstanceIn is FindRunningInstance for the sockets in dir
func FindRunningInstanceIn(dir string) (string, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", 0, fmt.Errorf("failed to scan socket directory: %w", err)
	}

	var newest string
	var newestTime time.Time
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, socketPrefix) || !strings.HasSuffix(name, ".sock") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest, newestTime = name, info.ModTime()
		}
	}
	if newest == "" {
		return "", 0, ErrNoInstance
	}

	// a name without a pid still points at a usable socket
	pid, _ := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(newest, socketPrefix), ".sock"))
	return filepath.Join(dir, newest), pid, nil
}

// NewClient returns a client for the socket at socketPath
func NewClient(socketPath string) (*Client, error) {
	if _, err := os.Stat(socketPath); err != nil {
		return nil, fmt.Errorf("socket not found: %w", err)
	}
	return &Client{socketPath: socketPath}, nil
}

// Send writes msg and waits for the server's response
func (c *Client) Send(msg Message) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, clientTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to socket: %w", err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(clientTimeout)); err != nil {
		return nil, fmt.Errorf("failed to set deadline: %w", err)
	}
	if err := json.NewEncoder(conn).Encode(msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	response := new(Response)
	if err := json.NewDecoder(conn).Decode(response); err != nil {
		return nil, fmt.Errorf("failed to receive response: %w", err)
	}
	return response, nil
}

// SendCommand sends a dispatch identifier such as "select:donor_organism"
func (c *Client) SendCommand(command string) (*Response, error) {
	return c.Send(Message{Command: command})
}

// SendAddProperty asks the instance to add a checked property named text to
// the schema's section
func (c *Client) SendAddProperty(schemaID, text string) (*Response, error) {
	return c.Send(Message{Command: "add:" + schemaID, Text: text})
}
