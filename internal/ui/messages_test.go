package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageLoggerKeepsNewest(t *testing.T) {
	ml := NewMessageLogger(3)
	for _, text := range []string{"one", "", "two", "three", "four"} {
		ml.AddMessage(text)
	}

	assert.Equal(t, []string{"four", "three", "two"}, ml.Recent(10))
	assert.Equal(t, []string{"four"}, ml.Recent(1))
}

func TestMessageLoggerFoldsRepeats(t *testing.T) {
	ml := NewMessageLogger(5)
	ml.AddMessage("Saved")
	ml.AddMessage("Saved")
	ml.AddMessage("Saved")
	ml.AddMessage("Added x to donor")
	ml.AddMessage("Saved")

	msgs := ml.GetMessagesReverse()
	assert.Len(t, msgs, 3)
	assert.Equal(t, 0, msgs[0].Repeats)
	assert.Equal(t, "Saved", msgs[2].Text)
	assert.Equal(t, 2, msgs[2].Repeats)
}
