package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/kasuboski/renamez/pkg/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintParsed(t *testing.T) {
	out := new(bytes.Buffer)

	printParsed(out, "The.Matrix.1999.1080p.BluRay.mkv")
	printParsed(out, "Random.Clip.mp4")

	assert.Equal(t, "→ The Matrix (1999) - 1080p.mkv\n"+parseFailure+"\n", out.String())
}

func TestRunREPL(t *testing.T) {
	ctx := context.Background()

	t.Run("stops at sentinel", func(t *testing.T) {
		out := new(bytes.Buffer)
		input := "The.Matrix.1999.1080p.BluRay.mkv\n\nMovie.2020\nSALIR\nDune.Part.Two.2024.2160p.HDR.mkv\n"

		err := runREPL(ctx, prompt.New(strings.NewReader(input), out), out, false)
		require.NoError(t, err)

		assert.Equal(t, "→ The Matrix (1999) - 1080p.mkv\n"+parseFailure+"\n", out.String())
	})

	t.Run("stops at end of input", func(t *testing.T) {
		out := new(bytes.Buffer)

		err := runREPL(ctx, prompt.New(strings.NewReader("Alien_1979_480i_DVDRip.m4v"), out), out, false)
		require.NoError(t, err)

		assert.Equal(t, "→ Alien (1979) - 480p.m4v\n", out.String())
	})

	t.Run("interactive prompts", func(t *testing.T) {
		out := new(bytes.Buffer)

		err := runREPL(ctx, prompt.New(strings.NewReader("Heat.1995.1080p.BluRay.REMUX.AVC.mkv\nexit\n"), out), out, true)
		require.NoError(t, err)

		assert.Contains(t, out.String(), "Type 'exit' to quit")
		assert.Equal(t, 2, strings.Count(out.String(), "Original name: "))
		assert.Contains(t, out.String(), "→ Heat (1995) - Remux.mkv\n\n")
	})

	t.Run("cancelled", func(t *testing.T) {
		out := new(bytes.Buffer)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		err := runREPL(cctx, prompt.New(strings.NewReader(""), out), out, false)
		assert.NoError(t, err)
	})
}

func TestParseCmd(t *testing.T) {
	out := new(bytes.Buffer)
	parseCmd.SetOut(out)
	t.Cleanup(func() { parseCmd.SetOut(nil) })

	err := parseCmd.RunE(parseCmd, []string{"Old Film 1985.AVI", "notes.txt"})
	require.NoError(t, err)

	assert.Equal(t, "→ Old Film (1985).AVI\n"+parseFailure+"\n", out.String())
}
