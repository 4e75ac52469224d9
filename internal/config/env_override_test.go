package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("LOCALECHECK_DIR and REFERENCE", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LOCALECHECK_DIR", "app/locales")
		t.Setenv("LOCALECHECK_REFERENCE", "en-US.json")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "app/locales", cfg.Dir)
		assert.Equal(t, "en-US.json", cfg.Reference)
	})

	t.Run("LOCALECHECK_LOCALES replaces the list", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LOCALECHECK_LOCALES", " ja.json, ,ru.json ")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, []string{"ja.json", "ru.json"}, cfg.Locales)
	})

	t.Run("empty values leave config untouched", func(t *testing.T) {
		clearEnv(t)

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("LOCALECHECK_FORMAT", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LOCALECHECK_FORMAT", "json")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "json", cfg.Format)
	})
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(" , "))
	assert.Equal(t, []string{"a.json", "b.json"}, SplitList("a.json,b.json"))
}
