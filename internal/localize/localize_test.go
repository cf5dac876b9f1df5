package localize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestTitlesEnglishDefaults(t *testing.T) {
	got := Titles("en")
	assert.Equal(t, "Add selected choices", got.AddTitle)
	assert.Equal(t, "Move selection down", got.MoveDownTitle)
	assert.Equal(t, "Clear filter", got.ClearFilterTitle)
}

func TestTitlesDutchAndRegions(t *testing.T) {
	assert.Equal(t, "Alles toevoegen", Titles("nl").AddAllTitle)
	assert.Equal(t, "Alles toevoegen", Titles("nl-BE").AddAllTitle)
}

func TestUnknownLanguageFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, language.English, Match("ja"))
	assert.Equal(t, language.English, Match("not a tag!"))
	assert.Equal(t, "Remove all", Titles("").RemoveAllTitle)
}

func TestUnknownKeyIsEmpty(t *testing.T) {
	assert.Empty(t, Text("en", "frobnicate.title"))
}

func TestLanguages(t *testing.T) {
	assert.Equal(t, []string{"en", "nl"}, Languages())
}
