package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func decision(d ReviewDecision) *ReviewDecision {
	return &d
}

func TestStatusFromDecisions(t *testing.T) {
	cases := []struct {
		name      string
		placement *ReviewDecision
		faculty   *ReviewDecision
		expected  NocStatus
	}{
		{name: `нет решений`, expected: NocStatusPending},
		{name: `отдел согласовал`, placement: decision(ReviewDecisionApprove), expected: NocStatusPendingFacultyApproval},
		{name: `отдел отклонил`, placement: decision(ReviewDecisionReject), expected: NocStatusRejected},
		{name: `оба согласовали`, placement: decision(ReviewDecisionApprove), faculty: decision(ReviewDecisionApprove), expected: NocStatusApproved},
		{name: `руководитель отклонил`, placement: decision(ReviewDecisionApprove), faculty: decision(ReviewDecisionReject), expected: NocStatusRejected},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status := StatusFromDecisions(tc.placement, tc.faculty)
			require.Equal(t, tc.expected, status)
			require.NoError(t, status.Validate())
		})
	}
}

func TestNocActionStageDecision(t *testing.T) {
	require.Equal(t, ReviewStagePlacement, NocActionPlacementApprove.Stage())
	require.Equal(t, ReviewStagePlacement, NocActionPlacementReject.Stage())
	require.Equal(t, ReviewStageFaculty, NocActionFacultyApprove.Stage())
	require.Equal(t, ReviewStageFaculty, NocActionFacultyReject.Stage())

	require.Equal(t, ReviewDecisionApprove, NocActionPlacementApprove.Decision())
	require.Equal(t, ReviewDecisionReject, NocActionPlacementReject.Decision())
	require.Equal(t, ReviewDecisionApprove, NocActionFacultyApprove.Decision())
	require.Equal(t, ReviewDecisionReject, NocActionFacultyReject.Decision())
}
