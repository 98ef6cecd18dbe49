// Package selection implements the cascading-selection and expand/collapse
// state machine over a schema form.
package selection

import (
	"fmt"
	"log"
	"slices"

	"github.com/pstuifzand/tui-templategen/internal/model"
)

const (
	LabelExpandAll   = "Expand all sections"
	LabelCollapseAll = "Collapse all sections"
	LabelSelectAll   = "Select all"
	LabelAllSelected = "All selected"
)

// Global commands accepted by Dispatch besides the per-group identifiers
const (
	CommandSelectAll = "select-all"
	CommandExpandAll = "expand-all"
)

// State holds the two tree-wide toggles
type State struct {
	Expanded bool
	Selected bool
}

// KeyEvent is a key press coming from a placeholder row
type KeyEvent struct {
	Key              string
	defaultPrevented bool
}

// PreventDefault suppresses the host's default handling of the key
func (e *KeyEvent) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a handler suppressed the default action
func (e *KeyEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Controller wires selection commands to a form
type Controller struct {
	form   *model.Form
	state  State
	logger *log.Logger
}

// NewController creates a controller over form. Every section starts collapsed.
func NewController(form *model.Form, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	for _, g := range form.Groups {
		g.Expanded = false
	}
	return &Controller{
		form:   form,
		logger: logger,
	}
}

// Form returns the controlled form
func (c *Controller) Form() *model.Form {
	return c.form
}

// State returns a copy of the tree-wide toggles
func (c *Controller) State() State {
	return c.state
}

// ExpandLabel returns the text of the expand/collapse control
func (c *Controller) ExpandLabel() string {
	if c.state.Expanded {
		return LabelCollapseAll
	}
	return LabelExpandAll
}

// SelectLabel returns the text of the select-all control
func (c *Controller) SelectLabel() string {
	if c.state.Selected {
		return LabelAllSelected
	}
	return LabelSelectAll
}

// SelectAll expands every section if needed, then checks every checkbox
func (c *Controller) SelectAll() {
	if !c.state.Expanded {
		c.ExpandAll()
	}
	for _, g := range c.form.Groups {
		g.Selected = true
		g.Walk(func(e *model.Entry) bool {
			if e.IsCheckbox() {
				e.Checked = true
			}
			return true
		})
	}
	c.state.Selected = true
}

// ExpandAll flips the global expanded flag and moves every section to match
func (c *Controller) ExpandAll() {
	c.state.Expanded = !c.state.Expanded
	for _, g := range c.form.Groups {
		if c.state.Expanded && !g.Expanded {
			g.Expanded = true
		} else if !c.state.Expanded && g.Expanded {
			g.Expanded = false
		}
	}
}

// SelectLocal checks or unchecks every checkbox in one schema's section
func (c *Controller) SelectLocal(cmd Command) error {
	if cmd.Kind != CommandSelect && cmd.Kind != CommandUnselect {
		return fmt.Errorf("select local %s: %w", cmd, ErrWrongCommand)
	}
	g := c.form.Group(cmd.Target)
	if g == nil {
		return fmt.Errorf("select local %s: %w", cmd, ErrUnknownSchema)
	}

	checked := cmd.Kind == CommandSelect
	g.Selected = checked
	g.Walk(func(e *model.Entry) bool {
		if e.IsCheckbox() {
			e.Checked = checked
		}
		return true
	})
	if !checked {
		c.state.Selected = false
	}
	return nil
}

// AddProperty opens a placeholder row before the schema's sentinel.
// The section's height follows its content, so the new row stays visible.
func (c *Controller) AddProperty(cmd Command) (*model.Entry, error) {
	if cmd.Kind != CommandAdd {
		return nil, fmt.Errorf("add property %s: %w", cmd, ErrWrongCommand)
	}
	g := c.form.Group(cmd.Target)
	if g == nil {
		return nil, fmt.Errorf("add property %s: %w", cmd, ErrUnknownSchema)
	}

	placeholder := model.NewPlaceholder()
	g.InsertBeforeSentinel(placeholder)
	return placeholder, nil
}

// AddCheckbox turns the pending placeholder into a checked property entry
// when Enter is pressed. Any other key is ignored. With several placeholders
// open the first in document order is used.
func (c *Controller) AddCheckbox(ev *KeyEvent) (*model.Entry, error) {
	if ev == nil || ev.Key != "Enter" {
		return nil, nil
	}
	ev.PreventDefault()

	placeholders := c.form.Placeholders()
	if len(placeholders) == 0 {
		return nil, ErrNoPlaceholder
	}
	return c.CommitPlaceholder(placeholders[0])
}

// CommitPlaceholder replaces placeholder with a checked property named by its
// text, directly before the sentinel. Every other open placeholder row is
// removed with it, after a warning.
func (c *Controller) CommitPlaceholder(placeholder *model.Entry) (*model.Entry, error) {
	placeholders := c.form.Placeholders()
	if placeholder == nil || !slices.Contains(placeholders, placeholder) {
		return nil, ErrNoPlaceholder
	}
	if len(placeholders) > 1 {
		c.logger.Printf("warning: %d placeholder rows open, using %s and dropping the rest",
			len(placeholders), placeholder.Group.ID)
	}
	for _, p := range placeholders {
		p.Group.Remove(p)
	}

	name := placeholder.Text
	entry := model.NewProperty(name, name)
	entry.Checked = true
	placeholder.Group.InsertBeforeSentinel(entry)
	return entry, nil
}

// DiscardPlaceholder removes a placeholder row without adding anything
func (c *Controller) DiscardPlaceholder(placeholder *model.Entry) {
	if placeholder == nil || placeholder.Kind != model.KindPlaceholder || placeholder.Group == nil {
		return
	}
	placeholder.Group.Remove(placeholder)
}

// SetChecked applies a user click on a property checkbox. Checking an
// entry checks its siblings and the owner of its list. Unchecking only
// affects the entry itself.
func (c *Controller) SetChecked(e *model.Entry, checked bool) {
	if e == nil || !e.IsCheckbox() {
		return
	}
	e.Checked = checked
	if !checked {
		c.state.Selected = false
		return
	}

	for _, sibling := range e.Siblings() {
		sibling.Checked = true
	}
	if e.Parent != nil {
		e.Parent.Checked = true
	} else if e.Group != nil {
		e.Group.Selected = true
	}
}

// Toggle flips a property checkbox through SetChecked
func (c *Controller) Toggle(e *model.Entry) {
	if e == nil {
		return
	}
	c.SetChecked(e, !e.Checked)
}

// SetGroupSelected applies a user click on a group's own checkbox
func (c *Controller) SetGroupSelected(g *model.Group, selected bool) {
	if g == nil {
		return
	}
	g.Selected = selected
	if !selected {
		c.state.Selected = false
	}
}

// Dispatch decodes a control identifier and runs the matching handler
func (c *Controller) Dispatch(id string) error {
	switch id {
	case CommandSelectAll:
		c.SelectAll()
		return nil
	case CommandExpandAll:
		c.ExpandAll()
		return nil
	}

	cmd, err := ParseCommand(id)
	if err != nil {
		return err
	}
	switch cmd.Kind {
	case CommandAdd:
		_, err = c.AddProperty(cmd)
	default:
		err = c.SelectLocal(cmd)
	}
	return err
}
