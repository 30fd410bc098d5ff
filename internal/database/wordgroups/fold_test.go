package wordgroups

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/wordgroups/internal/database"
)

func strPtr(s string) *string {
	return &s
}

func TestParseList(t *testing.T) {
	sep := database.ListSeparator

	assert.Equal(t, []string{}, parseList(nil))
	assert.Equal(t, []string{}, parseList(strPtr("")))
	assert.Equal(t, []string{"a", "b"}, parseList(strPtr("b"+sep+"a"+sep+"b")))
	assert.Equal(t, []string{"hello, world"}, parseList(strPtr("hello, world")))
}

func TestFoldRows(t *testing.T) {
	sep := database.ListSeparator
	rows := []wordGroupRow{
		{GroupID: 1, WordID: 10, LanguageName: "English", Word: "cat", Tags: strPtr("pets" + sep + "animals")},
		{GroupID: 1, WordID: 11, LanguageName: "Finnish", Word: "kissa", Synonyms: strPtr("kisu" + sep + "kisu"), Tags: strPtr("animals" + sep + "pets")},
		{GroupID: 4, WordID: 12, LanguageName: "English", Word: "dog"},
		{GroupID: 4, WordID: 13, LanguageName: "German", Word: "Hund"},
	}

	groups := foldRows(rows)

	assert.Len(t, groups, 2)
	assert.Equal(t, uint(1), groups[0].ID)
	assert.Len(t, groups[0].Translations, 2)
	assert.Equal(t, []string{"kisu"}, groups[0].Translations[1].Synonyms)
	assert.Equal(t, []string{"animals", "pets"}, groups[0].Tags)

	assert.Equal(t, uint(4), groups[1].ID)
	assert.Equal(t, []string{}, groups[1].Tags)
	assert.Equal(t, []string{}, groups[1].Translations[0].Synonyms)
}

func TestFoldRows_Empty(t *testing.T) {
	groups := foldRows(nil)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}
