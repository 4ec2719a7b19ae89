package nocapimodels

import (
	"testing"

	"github.com/stretchr/testify/require"

	"noc-portal-backend/models"
)

func TestNocRequestViewVisibleTo(t *testing.T) {
	facultyReview := ReviewView{Stage: models.ReviewStageFaculty, Decision: models.ReviewDecisionReject}

	cases := []struct {
		name    string
		view    NocRequestView
		userID  string
		role    models.UserRole
		visible bool
	}{
		{
			name:    `студент видит собственную заявку`,
			view:    NocRequestView{StudentID: "student-1", Status: models.NocStatusPending},
			userID:  "student-1",
			role:    models.UserRoleStudent,
			visible: true,
		},
		{
			name:    `студент не видит чужую заявку`,
			view:    NocRequestView{StudentID: "student-1", Status: models.NocStatusPending},
			userID:  "student-2",
			role:    models.UserRoleStudent,
			visible: false,
		},
		{
			name:    `отдел трудоустройства видит заявку в любом статусе`,
			view:    NocRequestView{StudentID: "student-1", Status: models.NocStatusPending},
			userID:  "officer-1",
			role:    models.UserRolePlacementOfficer,
			visible: true,
		},
		{
			name:    `руководитель не видит заявку до решения отдела`,
			view:    NocRequestView{StudentID: "student-1", Status: models.NocStatusPending},
			userID:  "faculty-1",
			role:    models.UserRoleFaculty,
			visible: false,
		},
		{
			name:    `руководитель не видит заявку, отклонённую отделом`,
			view:    NocRequestView{StudentID: "student-1", Status: models.NocStatusRejected},
			userID:  "faculty-1",
			role:    models.UserRoleFaculty,
			visible: false,
		},
		{
			name:    `руководитель видит заявку на своём этапе`,
			view:    NocRequestView{StudentID: "student-1", Status: models.NocStatusPendingFacultyApproval},
			userID:  "faculty-1",
			role:    models.UserRoleFaculty,
			visible: true,
		},
		{
			name:    `руководитель видит согласованную заявку`,
			view:    NocRequestView{StudentID: "student-1", Status: models.NocStatusApproved},
			userID:  "faculty-1",
			role:    models.UserRoleFaculty,
			visible: true,
		},
		{
			name:    `руководитель видит отклонённую им заявку`,
			view:    NocRequestView{StudentID: "student-1", Status: models.NocStatusRejected, FacultyReview: &facultyReview},
			userID:  "faculty-1",
			role:    models.UserRoleFaculty,
			visible: true,
		},
		{
			name:    `неизвестная роль не видит ничего`,
			view:    NocRequestView{StudentID: "student-1", Status: models.NocStatusApproved},
			userID:  "someone",
			role:    models.UserRole("auditor"),
			visible: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.visible, tc.view.VisibleTo(tc.userID, tc.role))
		})
	}
}
