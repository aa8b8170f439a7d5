package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/grc-lab/riskdesk/pkg/domain/types"
)

func TestProcessStateIsValid(t *testing.T) {
	for _, s := range types.AllProcessStates() {
		gt.Bool(t, s.IsValid()).True()
	}
	gt.Bool(t, types.ProcessState("").IsValid()).False()
	gt.Bool(t, types.ProcessState("PENDING").IsValid()).False()
	gt.Bool(t, types.ProcessState("draft").IsValid()).False()
}

func TestProcessStateNormalize(t *testing.T) {
	gt.Value(t, types.ProcessState("").Normalize()).Equal(types.ProcessStateDraft)
	gt.Value(t, types.ProcessStateApproved.Normalize()).Equal(types.ProcessStateApproved)
}

func TestProcessStateIsTerminal(t *testing.T) {
	testCases := map[types.ProcessState]bool{
		types.ProcessStateDraft:           false,
		types.ProcessStateInReview:        false,
		types.ProcessStateApproved:        true,
		types.ProcessStateHasObservations: false,
	}
	for state, want := range testCases {
		gt.Value(t, state.IsTerminal()).Equal(want)
	}
}

func TestProcessStateEditable(t *testing.T) {
	testCases := map[types.ProcessState]bool{
		types.ProcessStateDraft:           true,
		types.ProcessStateInReview:        false,
		types.ProcessStateApproved:        false,
		types.ProcessStateHasObservations: true,
	}
	for state, want := range testCases {
		gt.Value(t, state.Editable()).Equal(want)
	}
}

func TestParseProcessState(t *testing.T) {
	state, err := types.ParseProcessState("IN_REVIEW")
	gt.NoError(t, err)
	gt.Value(t, state).Equal(types.ProcessStateInReview)

	_, err = types.ParseProcessState("REVIEWING")
	gt.Error(t, err)
}
