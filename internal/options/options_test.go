package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type config struct {
	indent string
	level  int
}

func TestApply_InOrder(t *testing.T) {
	cfg := &config{}
	err := Apply(cfg,
		NoError(func(c *config) { c.indent = "\t" }),
		New(func(c *config) error {
			c.level = 3
			return nil
		}),
		NoError(func(c *config) { c.indent = "  " }),
	)

	require.NoError(t, err)
	assert.Equal(t, "  ", cfg.indent, "later options override earlier ones")
	assert.Equal(t, 3, cfg.level)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	cfg := &config{}

	err := Apply(cfg,
		NoError(func(c *config) { c.level = 1 }),
		New(func(*config) error { return boom }),
		NoError(func(c *config) { c.level = 2 }),
	)

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, cfg.level, "options after the failing one must not run")
}

func TestApply_NoOptions(t *testing.T) {
	assert.NoError(t, Apply(&config{}))
}
