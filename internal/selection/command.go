package selection

import (
	"errors"
	"fmt"
	"strings"
)

// CommandKind is the verb half of a per-group control identifier
type CommandKind int

const (
	CommandSelect CommandKind = iota + 1
	CommandUnselect
	CommandAdd
)

var (
	ErrMalformedCommand = errors.New("malformed command")
	ErrWrongCommand     = errors.New("command kind not accepted here")
	ErrUnknownSchema    = errors.New("unknown schema")
	ErrNoPlaceholder    = errors.New("no placeholder row")
)

var commandVerbs = map[string]CommandKind{
	"select":   CommandSelect,
	"unselect": CommandUnselect,
	"add":      CommandAdd,
}

func (k CommandKind) String() string {
	switch k {
	case CommandSelect:
		return "select"
	case CommandUnselect:
		return "unselect"
	case CommandAdd:
		return "add"
	default:
		return "unknown"
	}
}

// Command targets a single schema group
type Command struct {
	Kind   CommandKind
	Target string
}

// Select builds a select command for the given schema
func Select(schemaID string) Command { return Command{Kind: CommandSelect, Target: schemaID} }

// Unselect builds an unselect command for the given schema
func Unselect(schemaID string) Command { return Command{Kind: CommandUnselect, Target: schemaID} }

// Add builds an add-property command for the given schema
func Add(schemaID string) Command { return Command{Kind: CommandAdd, Target: schemaID} }

// ParseCommand decodes a "verb:schemaId" control identifier
func ParseCommand(id string) (Command, error) {
	verb, target, ok := strings.Cut(strings.TrimSpace(id), ":")
	if !ok {
		return Command{}, fmt.Errorf("%w: %q has no ':' delimiter", ErrMalformedCommand, id)
	}
	kind, known := commandVerbs[verb]
	if !known {
		return Command{}, fmt.Errorf("%w: unknown verb %q", ErrMalformedCommand, verb)
	}
	if target == "" {
		return Command{}, fmt.Errorf("%w: %q has no schema id", ErrMalformedCommand, id)
	}
	return Command{Kind: kind, Target: target}, nil
}

// String encodes the command back into its identifier form
func (c Command) String() string {
	return c.Kind.String() + ":" + c.Target
}
