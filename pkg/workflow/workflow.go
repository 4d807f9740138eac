package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/google/uuid"
	"github.com/kasuboski/renamez/pkg/download"
	"github.com/kasuboski/renamez/pkg/logger"
	"github.com/kasuboski/renamez/pkg/machine"
	"github.com/kasuboski/renamez/pkg/parser"
	"github.com/kasuboski/renamez/pkg/storage"
	"github.com/kasuboski/renamez/pkg/storage/sqlite/schema/gen/model"
	"go.uber.org/zap"
)

//go:generate mockgen -package mocks -destination mocks/prompter.go github.com/kasuboski/renamez/pkg/workflow Prompter
//go:generate mockgen -package mocks -destination mocks/recorder.go github.com/kasuboski/renamez/pkg/workflow Recorder

// Prompter asks the user about proposals and shows them what happened
type Prompter interface {
	// Decide returns the decision for a proposal. An edit decision carries the replacement name.
	Decide(ctx context.Context, proposal Proposal) (Decision, error)
	Notify(ctx context.Context, outcome Outcome)
}

// Recorder journals applied renames
type Recorder interface {
	CreateRename(ctx context.Context, rename model.Rename) (int64, error)
}

// Proposal pairs an entry with the canonical name the parser produced for it
type Proposal struct {
	Entry    download.Status
	Proposed string
	Parsed   bool
}

// Changed reports whether applying the proposal would change the entry's name
func (p Proposal) Changed() bool {
	return p.Parsed && p.Proposed != p.Entry.Name
}

type OutcomeKind int

const (
	OutcomeRenamed OutcomeKind = iota
	OutcomeSkipped
	OutcomeFailed
	OutcomeEmptyEdit
	OutcomeInvalid
	OutcomeCancelled
)

// Outcome is reported to the prompter after each decision is handled
type Outcome struct {
	Kind     OutcomeKind
	Proposal Proposal
	Name     string
	Err      error
}

// Summary counts what a run did
type Summary struct {
	Renamed   int  `json:"renamed"`
	Skipped   int  `json:"skipped"`
	Cancelled bool `json:"cancelled"`
}

// Processed is the number of entries that were renamed or skipped
func (s Summary) Processed() int {
	return s.Renamed + s.Skipped
}

type Runner struct {
	client    download.Client
	prompter  Prompter
	recorder  Recorder
	source    string
	sessionID uuid.UUID
}

type RunnerOption func(*Runner)

// WithRecorder journals every applied rename
func WithRecorder(recorder Recorder) RunnerOption {
	return func(r *Runner) {
		r.recorder = recorder
	}
}

// WithSource names the collaborator in journal entries
func WithSource(source string) RunnerOption {
	return func(r *Runner) {
		r.source = source
	}
}

// WithSessionID overrides the generated session id
func WithSessionID(id uuid.UUID) RunnerOption {
	return func(r *Runner) {
		r.sessionID = id
	}
}

func NewRunner(client download.Client, prompter Prompter, opts ...RunnerOption) *Runner {
	r := &Runner{
		client:    client,
		prompter:  prompter,
		source:    storage.SourceTransmission,
		sessionID: uuid.New(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// SessionID identifies the runner's journal entries
func (r *Runner) SessionID() uuid.UUID {
	return r.sessionID
}

// Plan lists every entry with the name it would be proposed, in presentation order
func (r *Runner) Plan(ctx context.Context) ([]Proposal, error) {
	entries, err := r.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	entries = Order(entries)
	proposals := make([]Proposal, 0, len(entries))
	for _, e := range entries {
		proposals = append(proposals, Propose(e))
	}

	return proposals, nil
}

// Run walks every entry, prompting for those whose canonical name differs from the current one.
// Cancellation, either chosen by the user or through ctx, ends the run without an error.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	log := logger.FromCtx(ctx, zap.String("session", r.sessionID.String()))
	ctx = logger.WithCtx(ctx, log)

	var summary Summary
	sm := newStateMachine()

	proposals, err := r.Plan(ctx)
	if err != nil {
		return summary, err
	}

	log.Debugw("listed entries", "count", len(proposals))

	for _, proposal := range proposals {
		if err := sm.ToState(StateProposing); err != nil {
			return summary, err
		}

		if !proposal.Changed() {
			log.Debugw("skipping entry without a new name", "name", proposal.Entry.Name, "parsed", proposal.Parsed)
			continue
		}

		if err := sm.ToState(StateAwaitingDecision); err != nil {
			return summary, err
		}

		decision, err := r.decide(ctx, proposal)
		if err != nil {
			return summary, err
		}

		switch decision.Kind {
		case DecisionCancel:
			if err := sm.ToState(StateCancelled); err != nil {
				return summary, err
			}

			summary.Cancelled = true
			r.prompter.Notify(ctx, Outcome{Kind: OutcomeCancelled, Proposal: proposal})
			log.Debugw("run cancelled", "renamed", summary.Renamed, "skipped", summary.Skipped)
			return summary, nil

		case DecisionReject:
			if err := sm.ToState(StateSkipping); err != nil {
				return summary, err
			}

			summary.Skipped++
			r.prompter.Notify(ctx, Outcome{Kind: OutcomeSkipped, Proposal: proposal})

		case DecisionEdit:
			if err := sm.ToState(StateEditing); err != nil {
				return summary, err
			}

			if decision.Text == "" {
				if err := sm.ToState(StateSkipping); err != nil {
					return summary, err
				}

				summary.Skipped++
				r.prompter.Notify(ctx, Outcome{Kind: OutcomeEmptyEdit, Proposal: proposal})
				continue
			}

			if err := sm.ToState(StateApplying); err != nil {
				return summary, err
			}

			if err := r.apply(ctx, sm, &summary, proposal, decision.Text, true); err != nil {
				return summary, err
			}

		case DecisionAccept:
			if err := sm.ToState(StateApplying); err != nil {
				return summary, err
			}

			if err := r.apply(ctx, sm, &summary, proposal, proposal.Proposed, false); err != nil {
				return summary, err
			}
		}
	}

	if ctx.Err() != nil {
		summary.Cancelled = true
	}

	if err := sm.ToState(StateDone); err != nil {
		return summary, err
	}

	log.Debugw("run finished", "renamed", summary.Renamed, "skipped", summary.Skipped)
	return summary, nil
}

// decide prompts until a valid decision is made. Interruption and end of input become a cancel.
func (r *Runner) decide(ctx context.Context, proposal Proposal) (Decision, error) {
	for {
		if ctx.Err() != nil {
			return Cancel(), nil
		}

		decision, err := r.prompter.Decide(ctx, proposal)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return Cancel(), nil
			}
			return Decision{}, fmt.Errorf("failed to read decision: %w", err)
		}

		if decision.Kind != DecisionInvalid {
			return decision, nil
		}

		r.prompter.Notify(ctx, Outcome{Kind: OutcomeInvalid, Proposal: proposal})
	}
}

// apply renames the entry. A failed rename is counted as a skip.
// A rename in flight is not interrupted by cancellation of ctx.
func (r *Runner) apply(ctx context.Context, sm *machine.StateMachine[State], summary *Summary, proposal Proposal, name string, edited bool) error {
	log := logger.FromCtx(ctx)
	applyCtx := context.WithoutCancel(ctx)

	err := r.client.Rename(applyCtx, download.RenameRequest{
		ID:   proposal.Entry.ID,
		From: proposal.Entry.Name,
		To:   name,
	})
	if err != nil {
		log.Debugw("rename failed", "id", proposal.Entry.ID, "error", err)
		if err := sm.ToState(StateSkipping); err != nil {
			return err
		}

		summary.Skipped++
		r.prompter.Notify(ctx, Outcome{Kind: OutcomeFailed, Proposal: proposal, Name: name, Err: err})
		return nil
	}

	summary.Renamed++
	r.prompter.Notify(ctx, Outcome{Kind: OutcomeRenamed, Proposal: proposal, Name: name})

	if r.recorder == nil {
		return nil
	}

	_, err = r.recorder.CreateRename(applyCtx, model.Rename{
		SessionID: r.sessionID.String(),
		Source:    r.source,
		EntryID:   proposal.Entry.ID,
		FromName:  proposal.Entry.Name,
		ToName:    name,
		Edited:    edited,
	})
	if err != nil {
		log.Warnw("failed to record rename", "id", proposal.Entry.ID, "error", err)
	}

	return nil
}

// Propose parses the entry's current name
func Propose(entry download.Status) Proposal {
	name, ok := parser.Name(entry.Name)
	return Proposal{
		Entry:    entry,
		Proposed: name,
		Parsed:   ok,
	}
}

// Order returns the entries newest first when every entry reports when it was added.
// Otherwise the input order is kept.
func Order(entries []download.Status) []download.Status {
	ordered := slices.Clone(entries)

	for _, e := range ordered {
		if !e.HasAddedAt() {
			return ordered
		}
	}

	slices.SortStableFunc(ordered, func(a, b download.Status) int {
		return b.AddedAt.Compare(a.AddedAt)
	})

	return ordered
}
