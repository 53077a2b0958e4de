package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "EMBED_PROVIDER", "EMBED_CACHE", "MAX_CARDS", "DEFAULT_CARDS", "GUESS_DELAY", "SESSION_TTL_HOURS", "VOCAB_FILE", "COOKIE_NAME", "SECURE_COOKIES"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5175", cfg.Port)
	assert.Equal(t, ProviderHash, cfg.EmbedProvider)
	assert.Equal(t, CacheMemory, cfg.EmbedCache)
	assert.Equal(t, 100, cfg.MaxCards)
	assert.Equal(t, 15, cfg.DefaultCards)
	assert.Equal(t, time.Duration(0), cfg.GuessDelay)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Empty(t, cfg.VocabFile)
	assert.Equal(t, "spybot_session", cfg.CookieName)
	assert.False(t, cfg.SecureCookies)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("EMBED_PROVIDER", "OLLAMA")
	t.Setenv("GUESS_DELAY", "750ms")
	t.Setenv("DEFAULT_CARDS", "20")
	t.Setenv("VOCAB_FILE", "/srv/spybot/words.txt")
	t.Setenv("COOKIE_NAME", "sb")
	t.Setenv("SECURE_COOKIES", "true")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderOllama, cfg.EmbedProvider)
	assert.Equal(t, 750*time.Millisecond, cfg.GuessDelay)
	assert.Equal(t, 20, cfg.DefaultCards)
	assert.Equal(t, "/srv/spybot/words.txt", cfg.VocabFile)
	assert.Equal(t, "sb", cfg.CookieName)
	assert.True(t, cfg.SecureCookies)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"EMBED_PROVIDER": "magic",
		"EMBED_CACHE":    "tape",
		"MAX_CARDS":      "many",
		"GUESS_DELAY":    "soon",
		"SECURE_COOKIES": "sometimes",
	}
	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv(k, v)
			_, err := Load()
			require.Error(t, err)
		})
	}

	t.Run("redis without url", func(t *testing.T) {
		t.Setenv("EMBED_CACHE", "redis")
		t.Setenv("REDIS_URL", "")
		_, err := Load()
		require.Error(t, err)
	})
}
