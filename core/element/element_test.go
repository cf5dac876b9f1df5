package element

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Element {
	return &Element{
		ID:   "colors",
		Name: "colors",
		Options: []Option{
			{Value: "r", Label: "Red", Index: 0},
			{Value: "g", Label: "Green", Index: 1, FilterText: "grass leaf", Selected: true},
			{Value: "b", Label: "Blue", Index: 2},
		},
	}
}

func TestApplyMovesSelectionToFrontInOrder(t *testing.T) {
	el := sample()
	el.Apply([]string{"b", "r", "zzz", "b"})

	assert.Equal(t, []string{"b", "r"}, el.SelectedValues())
	require.Len(t, el.Options, 3)
	assert.Equal(t, "g", el.Options[2].Value)
	assert.False(t, el.Options[2].Selected)
	assert.Equal(t, 2, el.Options[0].Index, "ordinal index survives reordering")
}

func TestApplyEmptyClearsSelection(t *testing.T) {
	el := sample()
	el.Apply(nil)
	assert.Empty(t, el.SelectedValues())
}

func TestSelectionConversion(t *testing.T) {
	opts, initial := sample().Selection()
	require.Len(t, opts, 3)
	assert.Equal(t, []string{"grass", "leaf"}, opts[1].FilterWords)
	assert.Empty(t, opts[0].FilterWords)
	assert.Equal(t, []string{"g"}, initial)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, sample().Validate())

	var nilEl *Element
	assert.ErrorIs(t, nilEl.Validate(), ErrMissingID)
	assert.ErrorIs(t, (&Element{}).Validate(), ErrMissingID)

	el := sample()
	el.Options = append(el.Options, Option{Value: "r"})
	err := el.Validate()
	assert.True(t, errors.Is(err, ErrDuplicateValue))
}

func TestCloneIsIndependent(t *testing.T) {
	el := sample()
	c := el.Clone()
	c.Apply([]string{"r"})
	assert.Equal(t, []string{"g"}, el.SelectedValues())
	assert.Equal(t, []string{"r"}, c.SelectedValues())
}
