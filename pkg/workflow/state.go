package workflow

import "github.com/kasuboski/renamez/pkg/machine"

type State string

const (
	StateListing          State = "listing"
	StateProposing        State = "proposing"
	StateAwaitingDecision State = "awaiting-decision"
	StateApplying         State = "applying"
	StateSkipping         State = "skipping"
	StateEditing          State = "editing"
	StateCancelled        State = "cancelled"
	StateDone             State = "done"
)

func newStateMachine() *machine.StateMachine[State] {
	return machine.New(StateListing,
		machine.From(StateListing).To(StateProposing, StateDone),
		// entries without a new name are passed over without a prompt
		machine.From(StateProposing).To(StateProposing, StateAwaitingDecision, StateDone),
		machine.From(StateAwaitingDecision).To(StateApplying, StateSkipping, StateEditing, StateCancelled),
		machine.From(StateEditing).To(StateApplying, StateSkipping),
		machine.From(StateApplying).To(StateProposing, StateSkipping, StateDone),
		machine.From(StateSkipping).To(StateProposing, StateDone),
	)
}
