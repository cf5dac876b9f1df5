// Package localize holds the button titles of the picker per language.
package localize

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/jask/dualpick/core"
)

const (
	KeyAdd         = "add.title"
	KeyAddAll      = "add.all.title"
	KeyRemove      = "remove.title"
	KeyRemoveAll   = "remove.all.title"
	KeyMoveUp      = "move.up.title"
	KeyMoveDown    = "move.down.title"
	KeyClearFilter = "clear.filter.title"
)

var messages = map[language.Tag]map[string]string{
	language.English: {
		KeyAdd:         "Add selected choices",
		KeyAddAll:      "Add all",
		KeyRemove:      "Remove selection",
		KeyRemoveAll:   "Remove all",
		KeyMoveUp:      "Move selection up",
		KeyMoveDown:    "Move selection down",
		KeyClearFilter: "Clear filter",
	},
	language.Dutch: {
		KeyAdd:         "Geselecteerde keuzes toevoegen",
		KeyAddAll:      "Alles toevoegen",
		KeyRemove:      "Selectie verwijderen",
		KeyRemoveAll:   "Alles verwijderen",
		KeyMoveUp:      "Selectie omhoog",
		KeyMoveDown:    "Selectie omlaag",
		KeyClearFilter: "Filter wissen",
	},
}

// English comes first so the matcher falls back to it.
var supported = []language.Tag{language.English, language.Dutch}

var (
	cat     = buildCatalog()
	matcher = language.NewMatcher(supported)
)

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range messages {
		for key, text := range msgs {
			_ = b.SetString(tag, key, text)
		}
	}
	return b
}

// Match returns the supported language closest to lang. Unknown or
// malformed input gives English.
func Match(lang string) language.Tag {
	tag, err := language.Parse(lang)
	if err != nil {
		return language.English
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return language.English
	}
	return supported[idx]
}

// Text returns one title. Unknown keys give "".
func Text(lang, key string) string {
	if _, ok := messages[language.English][key]; !ok {
		return ""
	}
	p := message.NewPrinter(Match(lang), message.Catalog(cat))
	return p.Sprintf(key)
}

// Titles returns every picker title in the language closest to lang.
func Titles(lang string) core.LocalizedText {
	return core.LocalizedText{
		AddTitle:         Text(lang, KeyAdd),
		AddAllTitle:      Text(lang, KeyAddAll),
		RemoveTitle:      Text(lang, KeyRemove),
		RemoveAllTitle:   Text(lang, KeyRemoveAll),
		MoveUpTitle:      Text(lang, KeyMoveUp),
		MoveDownTitle:    Text(lang, KeyMoveDown),
		ClearFilterTitle: Text(lang, KeyClearFilter),
	}
}

// Languages lists the supported languages.
func Languages() []string {
	out := make([]string, 0, len(supported))
	for _, t := range supported {
		out = append(out, t.String())
	}
	return out
}
