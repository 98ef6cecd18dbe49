package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/pstuifzand/tui-templategen/internal/model"
)

func typeText(p *PropertyInput, text string) {
	for _, r := range text {
		p.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestPropertyInputEditing(t *testing.T) {
	placeholder := model.NewPlaceholder()
	p := NewPropertyInput(nil)
	p.Start(placeholder)
	assert.True(t, p.IsActive())

	typeText(p, "donor.agé")
	assert.Equal(t, "donor.agé", p.Text())

	p.HandleKey(key(tcell.KeyBackspace2))
	assert.Equal(t, "donor.ag", p.Text())

	p.HandleKey(key(tcell.KeyHome))
	p.HandleKey(key(tcell.KeyDelete))
	assert.Equal(t, "onor.ag", p.Text())
	typeText(p, "D")
	assert.Equal(t, "Donor.ag", p.Text())

	p.HandleKey(key(tcell.KeyEnd))
	typeText(p, "e")
	assert.Equal(t, "Donor.age", p.Text())

	assert.Equal(t, InputCommit, p.HandleKey(key(tcell.KeyEnter)))
	assert.Equal(t, "", placeholder.Text, "text is written back only on Stop")

	assert.Equal(t, "Donor.age", p.Stop())
	assert.Equal(t, "Donor.age", placeholder.Text)
	assert.False(t, p.IsActive())
}

func TestPropertyInputCancel(t *testing.T) {
	placeholder := model.NewPlaceholder()
	placeholder.Text = "kept"
	p := NewPropertyInput(nil)
	p.Start(placeholder)
	typeText(p, "!")

	assert.Equal(t, InputCancel, p.HandleKey(key(tcell.KeyEscape)))
	p.Cancel()
	assert.Equal(t, "kept", placeholder.Text)
}

func TestPropertyInputComplete(t *testing.T) {
	p := NewPropertyInput([]string{"donor.weight", "donor.age", "specimen.organ"})

	assert.Equal(t, []string{"donor.weight"}, p.Complete("dwt"))
	assert.Equal(t, []string{"donor.age"}, p.Complete("age"))
	assert.Empty(t, p.Complete("zzz"))
}

func TestPropertyInputTabCyclesMatches(t *testing.T) {
	p := NewPropertyInput([]string{"donor.agent", "donor.age", "specimen.organ"})
	p.Start(model.NewPlaceholder())
	typeText(p, "age")

	p.HandleKey(key(tcell.KeyTab))
	assert.Equal(t, "donor.age", p.Text())
	p.HandleKey(key(tcell.KeyTab))
	assert.Equal(t, "donor.agent", p.Text())
	p.HandleKey(key(tcell.KeyTab))
	assert.Equal(t, "donor.age", p.Text())

	// Typing ends the cycle
	typeText(p, "s")
	assert.Equal(t, "donor.ages", p.Text())
}

func TestPropertyInputTabWithoutMatches(t *testing.T) {
	p := NewPropertyInput([]string{"donor.age"})
	p.Start(model.NewPlaceholder())
	typeText(p, "xyz")

	p.HandleKey(key(tcell.KeyTab))
	assert.Equal(t, "xyz", p.Text())
}
