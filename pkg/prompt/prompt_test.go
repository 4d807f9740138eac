package prompt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/kasuboski/renamez/pkg/download"
	"github.com/kasuboski/renamez/pkg/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTerminal(input string) (*Terminal, *bytes.Buffer) {
	out := new(bytes.Buffer)
	return New(strings.NewReader(input), out), out
}

var proposal = workflow.Proposal{
	Entry:    download.Status{ID: "1", Name: "The.Matrix.1999.1080p.BluRay.mkv"},
	Proposed: "The Matrix (1999) - 1080p.mkv",
	Parsed:   true,
}

func TestTerminal_ReadLine(t *testing.T) {
	ctx := context.Background()

	t.Run("trims lines", func(t *testing.T) {
		term, out := newTerminal("  hello  \nworld\n")

		got, err := term.ReadLine(ctx, "> ")
		require.NoError(t, err)
		assert.Equal(t, "hello", got)

		got, err = term.ReadLine(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "world", got)

		assert.Equal(t, "> ", out.String())
	})

	t.Run("end of input", func(t *testing.T) {
		term, _ := newTerminal("only\n")

		_, err := term.ReadLine(ctx, "")
		require.NoError(t, err)

		_, err = term.ReadLine(ctx, "")
		assert.ErrorIs(t, err, io.EOF)

		_, err = term.ReadLine(ctx, "")
		assert.ErrorIs(t, err, io.EOF)

		_, open := <-term.lines
		assert.False(t, open, "reader should stop after end of input")
	})

	t.Run("cancelled while waiting", func(t *testing.T) {
		reader, writer := io.Pipe()
		defer writer.Close()

		term := New(reader, io.Discard)
		cctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()

		_, err := term.ReadLine(cctx, "> ")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestTerminal_Decide(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		input string
		want  workflow.Decision
	}{
		{name: "accept", input: "y\n", want: workflow.Accept()},
		{name: "accept spanish", input: "Sí\n", want: workflow.Accept()},
		{name: "reject", input: "no\n", want: workflow.Reject()},
		{name: "cancel", input: "cancelar\n", want: workflow.Cancel()},
		{name: "invalid", input: "what\n", want: workflow.Decision{Kind: workflow.DecisionInvalid}},
		{name: "edit", input: "e\n  Custom Name.mkv \n", want: workflow.Edit("Custom Name.mkv")},
		{name: "empty edit", input: "editar\n\n", want: workflow.Edit("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, out := newTerminal(tt.input)

			got, err := term.Decide(ctx, proposal)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Original: The.Matrix.1999.1080p.BluRay.mkv")
			assert.Contains(t, out.String(), "New:      The Matrix (1999) - 1080p.mkv")
		})
	}

	t.Run("header is shown once per proposal", func(t *testing.T) {
		term, out := newTerminal("maybe\ny\n")

		got, err := term.Decide(ctx, proposal)
		require.NoError(t, err)
		assert.Equal(t, workflow.DecisionInvalid, got.Kind)

		got, err = term.Decide(ctx, proposal)
		require.NoError(t, err)
		assert.Equal(t, workflow.DecisionAccept, got.Kind)

		assert.Equal(t, 1, strings.Count(out.String(), "Original:"))
		assert.Equal(t, 2, strings.Count(out.String(), "Is this correct?"))
	})

	t.Run("shows when the entry was added", func(t *testing.T) {
		term, out := newTerminal("y\n")

		added := proposal
		added.Entry.AddedAt = time.Now().Add(-3 * time.Hour)

		_, err := term.Decide(ctx, added)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Added:    3 hours ago")
	})

	t.Run("end of input", func(t *testing.T) {
		term, _ := newTerminal("")

		_, err := term.Decide(ctx, proposal)
		assert.ErrorIs(t, err, io.EOF)
	})
}

func TestTerminal_Notify(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		outcome workflow.Outcome
		want    string
	}{
		{outcome: workflow.Outcome{Kind: workflow.OutcomeRenamed, Name: "Film (2020).mkv"}, want: "Renamed to Film (2020).mkv\n\n"},
		{outcome: workflow.Outcome{Kind: workflow.OutcomeSkipped}, want: "Skipped\n\n"},
		{outcome: workflow.Outcome{Kind: workflow.OutcomeFailed, Err: errors.New("boom")}, want: "Rename failed: boom\n\n"},
		{outcome: workflow.Outcome{Kind: workflow.OutcomeEmptyEdit}, want: "Empty name, skipped\n\n"},
		{outcome: workflow.Outcome{Kind: workflow.OutcomeInvalid}, want: "Invalid option. Use: y/n/edit/cancel\n"},
		{outcome: workflow.Outcome{Kind: workflow.OutcomeCancelled}, want: "\nCancelled\n"},
	}

	for _, tt := range tests {
		term, out := newTerminal("")
		term.Notify(ctx, tt.outcome)
		assert.Equal(t, tt.want, out.String())
	}
}

func TestTerminal_Summary(t *testing.T) {
	t.Run("finished", func(t *testing.T) {
		term, out := newTerminal("")
		term.Summary(workflow.Summary{Renamed: 2, Skipped: 1})

		assert.Contains(t, out.String(), "Renamed:         2\n")
		assert.Contains(t, out.String(), "Skipped:         1\n")
		assert.Contains(t, out.String(), "Total processed: 3\n")
	})

	t.Run("cancelled", func(t *testing.T) {
		term, out := newTerminal("")
		term.Summary(workflow.Summary{Renamed: 1, Cancelled: true})

		assert.Contains(t, out.String(), "Renamed so far: 1\n")
		assert.NotContains(t, out.String(), "Total processed")
	})
}

func TestTerminal_Connection(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		term, out := newTerminal("\n\n\n")

		got, err := term.Connection(ctx, ConnectionSettings{})
		require.NoError(t, err)
		assert.Equal(t, ConnectionSettings{Host: DefaultHost, Port: DefaultPort}, got)
		assert.Contains(t, out.String(), "Host (default: localhost): ")
		assert.Contains(t, out.String(), "Port (default: 9091): ")
		assert.NotContains(t, out.String(), "Password")
	})

	t.Run("configured defaults", func(t *testing.T) {
		term, out := newTerminal("\n\n\n")

		got, err := term.Connection(ctx, ConnectionSettings{Host: "nas.local", Port: 9092})
		require.NoError(t, err)
		assert.Equal(t, ConnectionSettings{Host: "nas.local", Port: 9092}, got)
		assert.Contains(t, out.String(), "Host (default: nas.local): ")
	})

	t.Run("credentials", func(t *testing.T) {
		term, _ := newTerminal("seedbox\n9000\nadmin\nsecret\n")

		got, err := term.Connection(ctx, ConnectionSettings{})
		require.NoError(t, err)
		assert.Equal(t, ConnectionSettings{Host: "seedbox", Port: 9000, Username: "admin", Password: "secret"}, got)
	})

	t.Run("invalid port asks again", func(t *testing.T) {
		term, out := newTerminal("\nabc\n70000\n8080\n\n")

		got, err := term.Connection(ctx, ConnectionSettings{})
		require.NoError(t, err)
		assert.Equal(t, 8080, got.Port)
		assert.Contains(t, out.String(), `Invalid port "abc"`)
		assert.Contains(t, out.String(), `Invalid port "70000"`)
	})

	t.Run("end of input", func(t *testing.T) {
		term, _ := newTerminal("host\n")

		_, err := term.Connection(ctx, ConnectionSettings{})
		assert.ErrorIs(t, err, io.EOF)
	})
}

func TestIsTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "not-a-tty")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTerminal(f))
}
