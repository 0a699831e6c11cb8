package cli_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchfolio/pubpager/internal/cli"
)

func TestBrowse_PlainWhenNotATerminal(t *testing.T) {
	setupCLITest(t)

	res := execute(t, "browse", "--source", fixture)
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "Google Scholar v2VkcZEAAAAJ: 7 publications, 42 citations, h-index 3")
	assert.Contains(t, res.stdout, "2024  "+firstTitle+" [12 citations]")
	assert.Contains(t, res.stdout, "      CA Ngom and J Smith")
	assert.NotContains(t, res.stdout, fourthTitle)
	assert.Contains(t, res.stdout, "Page 1 of 3")
}

func TestBrowse_PlainPage(t *testing.T) {
	setupCLITest(t)

	res := execute(t, "browse", "--plain", "--source", fixture, "--page", "3")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, seventhTitle+" [2 citations]")
	assert.Contains(t, res.stdout, "Page 3 of 3")
	assert.NotContains(t, res.stdout, firstTitle)
}

func TestBrowse_PlainSinglePage(t *testing.T) {
	setupCLITest(t)

	res := execute(t, "browse", "--source", fixture, "--page-size", "10")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, seventhTitle)
	assert.NotContains(t, res.stdout, "Page 1 of 1")
}

func TestBrowse_PageOutOfRange(t *testing.T) {
	setupCLITest(t)
	res := execute(t, "browse", "--source", fixture, "--page", "5")
	require.ErrorIs(t, res.err, cli.ErrPageOutOfRange)
}

func TestBrowse_LoadFailure(t *testing.T) {
	setupCLITest(t)

	res := execute(t, "browse", "--source", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, res.err)
	assert.Equal(t, cli.ExitDataError, cli.ExitCode(res.err))
	assert.Empty(t, res.stdout)
}
