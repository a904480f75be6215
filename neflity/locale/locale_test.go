package locale

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestCatalog_Translate(t *testing.T) {
	c := NewCatalog()

	assert.Equal(t, "Staff Team", c.Translate(language.English, "staff.title"))
	assert.Equal(t, "© 2026 Neflity", c.Translate(language.English, "footer.copyright", 2026))
	assert.Equal(t, "About Shattered Universe", c.Translate(language.English, "portal.about.title", "Shattered Universe"))
	assert.Equal(t, "missing translation for 'nope'", c.Translate(language.English, "nope"))
	assert.Equal(t, "Staff Team", c.Translate(language.German, "staff.title"))
}

func TestCatalog_RegisterAndMatch(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Register(language.German, strings.NewReader(`
# comment
staff.title = Team
broken line without separator
nav.portal=Portal=Start
`)))

	assert.Equal(t, "Team", c.Translate(language.German, "staff.title"))
	assert.Equal(t, "Portal=Start", c.Translate(language.German, "nav.portal"))
	// Missing keys fall back to English.
	assert.Equal(t, "Ranks", c.Translate(language.German, "nav.ranks"))

	testCases := []struct {
		header   string
		expected language.Tag
	}{
		{header: "de-DE,de;q=0.9,en;q=0.8", expected: language.German},
		{header: "en-US", expected: language.English},
		{header: "fr-FR", expected: language.English},
		{header: "", expected: language.English},
		{header: "not a header;;;", expected: language.English},
	}
	for _, tc := range testCases {
		t.Run(tc.header, func(t *testing.T) {
			assert.Equal(t, tc.expected, c.Match(tc.header))
		})
	}
	assert.Equal(t, []language.Tag{language.English, language.German}, c.Languages())
}

func TestCatalog_Load(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "es.lang"), []byte("staff.title=Equipo\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	c := NewCatalog()
	require.NoError(t, c.Load(dir))
	assert.Equal(t, "Equipo", c.Translate(language.MustParse("es"), "staff.title"))

	assert.NoError(t, c.Load(filepath.Join(dir, "missing")))
	assert.NoError(t, c.Load(""))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "!!.lang"), []byte("x=y\n"), 0o644))
	assert.Error(t, c.Load(dir))
}
