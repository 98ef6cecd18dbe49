package ui

import (
	"sync"
	"time"
)

// Message represents a status message with timestamp
type Message struct {
	Text      string
	Timestamp time.Time
	Repeats   int // Times the same text was shown again right after
}

// MessageLogger keeps the last N status messages for :messages
type MessageLogger struct {
	messages []*Message
	maxSize  int
	mu       sync.Mutex
}

// NewMessageLogger creates a new message logger with the specified max size
func NewMessageLogger(maxSize int) *MessageLogger {
	return &MessageLogger{
		messages: make([]*Message, 0, maxSize),
		maxSize:  maxSize,
	}
}

// AddMessage records a status message. A message equal to the previous
// one only bumps its repeat count, so autosave does not flood the log.
func (ml *MessageLogger) AddMessage(text string) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	if text == "" {
		return
	}

	if n := len(ml.messages); n > 0 && ml.messages[n-1].Text == text {
		ml.messages[n-1].Repeats++
		ml.messages[n-1].Timestamp = time.Now()
		return
	}

	ml.messages = append(ml.messages, &Message{
		Text:      text,
		Timestamp: time.Now(),
	})

	if len(ml.messages) > ml.maxSize {
		ml.messages = ml.messages[len(ml.messages)-ml.maxSize:]
	}
}

// GetMessagesReverse returns a copy of all messages, newest first
func (ml *MessageLogger) GetMessagesReverse() []*Message {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	result := make([]*Message, len(ml.messages))
	for i, msg := range ml.messages {
		result[len(ml.messages)-1-i] = msg
	}
	return result
}

// Recent returns the texts of the newest n messages, newest first
func (ml *MessageLogger) Recent(n int) []string {
	msgs := ml.GetMessagesReverse()
	if len(msgs) > n {
		msgs = msgs[:n]
	}
	texts := make([]string, len(msgs))
	for i, m := range msgs {
		texts[i] = m.Text
	}
	return texts
}
