package socket

// Message represents a command sent to a running tgen instance.
// Command is a dispatch identifier such as "select:donor_organism",
// "add:donor_organism", "select-all" or "expand-all", or one of the
// query commands below.
type Message struct {
	Command string `json:"command"`
	// Text names the property to add; only used with "add:" commands
	Text string `json:"text,omitempty"`

	ResponseChan chan *Response `json:"-"`
}

// Response represents the response from the server
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Query commands are answered synchronously by the application loop
const (
	CommandState = "state"
	CommandSave  = "save"
)

// IsQuery reports whether the command waits for the application's answer
func IsQuery(command string) bool {
	return command == CommandState || command == CommandSave
}
