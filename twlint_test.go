package twlint

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const themeSource = `export default {
  content: ['./src/**/*.tsx'],
  theme: {
    extend: {
      animation: {
        float: 'float 6s ease-in-out infinite',
        ghost: 'ghost 2s linear infinite',
      },
      keyframes: {
        float: {
          '0%, 100%': { transform: 'translateY(0)' },
          '50%': { transform: 'translateY(-10px)' },
        },
      },
      backgroundImage: {
        'gradient-radial': 'radial-gradient(var(--tw-gradient-stops))',
      },
    },
  },
};
`

func TestLoadAndValidate(t *testing.T) {
	cfg, err := LoadBytes("tailwind.config.js", []byte(themeSource))
	require.NoError(t, err)

	bg, ok := cfg.Theme.Extend.BackgroundImageByName("gradient-radial")
	require.True(t, ok)
	assert.Equal(t, "radial-gradient(var(--tw-gradient-stops))", bg.Value)

	result := Validate(cfg, ValidateOptions{})
	require.Len(t, result.Findings, 1)
	assert.Equal(t, "theme.extend.animation.ghost", result.Findings[0].Path)
	assert.Equal(t, SeverityWarning, result.Findings[0].Severity)

	result = Validate(cfg, ValidateOptions{DanglingSeverity: SeverityError})
	assert.True(t, result.HasErrors())
}

func TestLoadMalformed(t *testing.T) {
	_, err := LoadBytes("tailwind.config.js", []byte("export default { theme: 'dark' };"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedConfig))

	var mce *MalformedConfigError
	require.ErrorAs(t, err, &mce)
	assert.Equal(t, "theme", mce.Path)
	assert.Equal(t, 1, mce.Pos.Line)
}

func TestEncodeAndWriteTree(t *testing.T) {
	cfg, err := LoadBytes("tailwind.config.js", []byte(themeSource))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTree(&buf, Encode(cfg), FormatYAML))

	again, err := LoadBytes("theme.yaml", buf.Bytes())
	require.NoError(t, err)
	assert.True(t, Encode(again).Equal(cfg.Tree))
}

func TestLintAndWriteOutput(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	path := filepath.Join(t.TempDir(), "tailwind.config.js")
	require.NoError(t, os.WriteFile(path, []byte(themeSource), 0o600))

	config := LintConfig{ConfigFile: path, PrintLinterName: true}
	result, err := Lint(config)
	require.NoError(t, err)
	assert.Equal(t, 1, result.WarningCount)

	var buf bytes.Buffer
	WriteOutput(&buf, result, DetermineOutputFormat("", false), config)
	assert.Contains(t, buf.String(), `animation "ghost" references undefined keyframes "ghost" (dangling-reference)`)
}
