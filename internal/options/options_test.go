package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Level   int
	Name    string
	History []string
}

func withLevel(level int) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if level < 0 {
			return errors.New("level cannot be negative")
		}
		c.Level = level
		c.History = append(c.History, "level")

		return nil
	})
}

func withName(name string) Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.Name = name
		c.History = append(c.History, "name")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withName("a"), withLevel(3), withName("b"))

		require.NoError(t, err)
		require.Equal(t, 3, cfg.Level)
		require.Equal(t, "b", cfg.Name)
		require.Equal(t, []string{"name", "level", "name"}, cfg.History)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withName("a"), withLevel(-1), withName("b"))

		require.Error(t, err)
		require.Contains(t, err.Error(), "level cannot be negative")
		require.Equal(t, "a", cfg.Name)
		require.Equal(t, []string{"name"}, cfg.History)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &testConfig{Level: 7}
		require.NoError(t, Apply(cfg))
		require.Equal(t, 7, cfg.Level)
	})

	t.Run("skips nil option", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply(cfg, nil, withLevel(1)))
		require.Equal(t, 1, cfg.Level)
	})
}
