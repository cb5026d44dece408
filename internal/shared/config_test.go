package shared

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSiteConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	c, err := LoadSiteConfig("")
	require.NoError(t, err)
	assert.Equal(t, 4567, c.Port)
	assert.Equal(t, StoreSQLite, c.Store)
	assert.Equal(t, int64(50), c.MinPointsCreateCircle)
	assert.False(t, c.Development())
	assert.Equal(t, ":4567", c.Addr())
}

func TestLoadSiteConfig_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agartha.yaml")
	yml := "port: 8080\nenvironment: development\nstore: MEMORY\ncontribution_percent: 20\npass_phrase: from-file\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0600))

	t.Setenv("PORT", "")
	t.Setenv("A_PASS_PHRASE", "from-env")
	t.Setenv("A_MIN_POINTS_CREATE_CIRCLE", "75")

	c, err := LoadSiteConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, c.Port)
	assert.True(t, c.Development())
	assert.Equal(t, StoreMemory, c.Store)
	assert.Equal(t, int64(20), c.ContributionPercent)
	assert.Equal(t, int64(75), c.MinPointsCreateCircle)
	assert.Equal(t, "from-env", c.PassPhrase)
}

func TestLoadSiteConfig_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSiteConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
	t.Run("bad port env", func(t *testing.T) {
		t.Setenv("PORT", "eighty")
		_, err := LoadSiteConfig("")
		assert.ErrorContains(t, err, "PORT")
	})
	t.Run("unknown store", func(t *testing.T) {
		t.Setenv("AGARTHA_STORE", "mongo")
		_, err := LoadSiteConfig("")
		assert.ErrorContains(t, err, "unknown store")
	})
	t.Run("percent out of range", func(t *testing.T) {
		t.Setenv("A_CONTRIBUTION_PERCENT", "150")
		_, err := LoadSiteConfig("")
		assert.Error(t, err)
	})
}

func TestPassPhraseMatches(t *testing.T) {
	assert.True(t, PassPhraseMatches("secret", []byte("secret")))
	assert.False(t, PassPhraseMatches("secret", []byte("Secret")))
	assert.False(t, PassPhraseMatches("", []byte("")))
}
