package workflow

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

type DecisionKind int

const (
	DecisionInvalid DecisionKind = iota
	DecisionAccept
	DecisionReject
	DecisionEdit
	DecisionCancel
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionAccept:
		return "accept"
	case DecisionReject:
		return "reject"
	case DecisionEdit:
		return "edit"
	case DecisionCancel:
		return "cancel"
	default:
		return "invalid"
	}
}

// Decision is the user's answer to a single proposal.
// Text only carries the replacement name of an edit.
type Decision struct {
	Kind DecisionKind
	Text string
}

func Accept() Decision {
	return Decision{Kind: DecisionAccept}
}

func Reject() Decision {
	return Decision{Kind: DecisionReject}
}

func Edit(text string) Decision {
	return Decision{Kind: DecisionEdit, Text: text}
}

func Cancel() Decision {
	return Decision{Kind: DecisionCancel}
}

var vocabulary = map[string]DecisionKind{
	"y":        DecisionAccept,
	"yes":      DecisionAccept,
	"s":        DecisionAccept,
	"si":       DecisionAccept,
	"sí":       DecisionAccept,
	"n":        DecisionReject,
	"no":       DecisionReject,
	"e":        DecisionEdit,
	"edit":     DecisionEdit,
	"editar":   DecisionEdit,
	"c":        DecisionCancel,
	"cancel":   DecisionCancel,
	"cancelar": DecisionCancel,
}

// ParseDecision decodes a line of user input, ignoring case and accent composition.
// Edit decisions are returned without text; the caller collects the replacement name separately.
func ParseDecision(input string) Decision {
	key := cases.Fold().String(norm.NFC.String(strings.TrimSpace(input)))
	kind, ok := vocabulary[key]
	if !ok {
		return Decision{Kind: DecisionInvalid}
	}

	return Decision{Kind: kind}
}
