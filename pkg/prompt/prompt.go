package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/kasuboski/renamez/pkg/workflow"
	"github.com/mattn/go-isatty"
)

const (
	separatorWidth = 60
	DefaultHost    = "localhost"
	DefaultPort    = 9091
)

var _ workflow.Prompter = (*Terminal)(nil)

// Terminal is a line based prompter. Reads are abandoned when the context is done.
type Terminal struct {
	in   io.Reader
	out  io.Writer
	once sync.Once

	// err is set before lines is closed
	lines chan string
	err   error
	shown string
}

func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:    in,
		out:   out,
		lines: make(chan string),
	}
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (t *Terminal) scan() {
	scanner := bufio.NewScanner(t.in)
	for scanner.Scan() {
		t.lines <- scanner.Text()
	}

	t.err = scanner.Err()
	if t.err == nil {
		t.err = io.EOF
	}
	close(t.lines)
}

// ReadLine writes the label and waits for the next line of input, trimmed
func (t *Terminal) ReadLine(ctx context.Context, label string) (string, error) {
	t.once.Do(func() {
		go t.scan()
	})

	if label != "" {
		fmt.Fprint(t.out, label)
	}

	select {
	case <-ctx.Done():
		fmt.Fprintln(t.out)
		return "", ctx.Err()
	case text, ok := <-t.lines:
		if !ok {
			return "", t.err
		}
		return strings.TrimSpace(text), nil
	}
}

// Decide shows the proposal once and asks whether to apply it
func (t *Terminal) Decide(ctx context.Context, proposal workflow.Proposal) (workflow.Decision, error) {
	if t.shown != proposal.Entry.ID {
		t.shown = proposal.Entry.ID
		fmt.Fprintln(t.out, strings.Repeat("─", separatorWidth))
		fmt.Fprintf(t.out, "Original: %s\n", proposal.Entry.Name)
		fmt.Fprintf(t.out, "New:      %s\n", proposal.Proposed)
		if proposal.Entry.HasAddedAt() {
			fmt.Fprintf(t.out, "Added:    %s\n", humanize.Time(proposal.Entry.AddedAt))
		}
		fmt.Fprintln(t.out)
	}

	input, err := t.ReadLine(ctx, "Is this correct? (y/n/edit/cancel): ")
	if err != nil {
		return workflow.Decision{}, err
	}

	decision := workflow.ParseDecision(input)
	if decision.Kind != workflow.DecisionEdit {
		return decision, nil
	}

	name, err := t.ReadLine(ctx, "New name: ")
	if err != nil {
		return workflow.Decision{}, err
	}

	return workflow.Edit(name), nil
}

// Notify reports the outcome of a decision
func (t *Terminal) Notify(ctx context.Context, outcome workflow.Outcome) {
	switch outcome.Kind {
	case workflow.OutcomeRenamed:
		fmt.Fprintf(t.out, "Renamed to %s\n\n", outcome.Name)
	case workflow.OutcomeSkipped:
		fmt.Fprint(t.out, "Skipped\n\n")
	case workflow.OutcomeFailed:
		fmt.Fprintf(t.out, "Rename failed: %v\n\n", outcome.Err)
	case workflow.OutcomeEmptyEdit:
		fmt.Fprint(t.out, "Empty name, skipped\n\n")
	case workflow.OutcomeInvalid:
		fmt.Fprintln(t.out, "Invalid option. Use: y/n/edit/cancel")
	case workflow.OutcomeCancelled:
		fmt.Fprintln(t.out, "\nCancelled")
	}
}

// Summary prints the counters of a finished or cancelled run
func (t *Terminal) Summary(summary workflow.Summary) {
	fmt.Fprintln(t.out, strings.Repeat("=", separatorWidth))
	if summary.Cancelled {
		fmt.Fprintf(t.out, "Renamed so far: %d\n", summary.Renamed)
		fmt.Fprintf(t.out, "Skipped:        %d\n", summary.Skipped)
		return
	}

	fmt.Fprintf(t.out, "Renamed:         %d\n", summary.Renamed)
	fmt.Fprintf(t.out, "Skipped:         %d\n", summary.Skipped)
	fmt.Fprintf(t.out, "Total processed: %d\n", summary.Processed())
}

// ConnectionSettings are the values needed to reach a torrent client
type ConnectionSettings struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Connection asks for the torrent client connection settings. Empty host and port answers use the defaults.
// The password is only asked for when a username is given.
func (t *Terminal) Connection(ctx context.Context, defaults ConnectionSettings) (ConnectionSettings, error) {
	if defaults.Host == "" {
		defaults.Host = DefaultHost
	}
	if defaults.Port == 0 {
		defaults.Port = DefaultPort
	}

	fmt.Fprintln(t.out, "Transmission settings:")
	fmt.Fprintln(t.out, strings.Repeat("-", separatorWidth))

	host, err := t.ReadLine(ctx, fmt.Sprintf("Host (default: %s): ", defaults.Host))
	if err != nil {
		return ConnectionSettings{}, err
	}
	if host == "" {
		host = defaults.Host
	}

	port := defaults.Port
	for {
		input, err := t.ReadLine(ctx, fmt.Sprintf("Port (default: %d): ", defaults.Port))
		if err != nil {
			return ConnectionSettings{}, err
		}
		if input == "" {
			break
		}

		p, err := strconv.Atoi(input)
		if err == nil && p > 0 && p <= 65535 {
			port = p
			break
		}

		fmt.Fprintf(t.out, "Invalid port %q\n", input)
	}

	username, err := t.ReadLine(ctx, "Username (leave empty if none): ")
	if err != nil {
		return ConnectionSettings{}, err
	}

	var password string
	if username != "" {
		password, err = t.ReadLine(ctx, "Password: ")
		if err != nil {
			return ConnectionSettings{}, err
		}
	}

	fmt.Fprintln(t.out)

	return ConnectionSettings{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
	}, nil
}
