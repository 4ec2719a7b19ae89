package nocworkflow

import (
	"testing"

	"github.com/stretchr/testify/require"

	"noc-portal-backend/models"
)

var allStatuses = []models.NocStatus{
	models.NocStatusPending,
	models.NocStatusPendingFacultyApproval,
	models.NocStatusApproved,
	models.NocStatusRejected,
}

var allRoles = []models.UserRole{
	models.UserRoleStudent,
	models.UserRolePlacementOfficer,
	models.UserRoleFaculty,
}

var allActions = []models.NocAction{
	models.NocActionPlacementApprove,
	models.NocActionPlacementReject,
	models.NocActionFacultyApprove,
	models.NocActionFacultyReject,
}

func TestCanTransition(t *testing.T) {
	t.Run(`полный перебор (статус, роль, действие)`, func(t *testing.T) {
		for _, status := range allStatuses {
			for _, role := range allRoles {
				for _, action := range allActions {
					err := CanTransition(status, role, action, "комментарий")
					tr, ok := TransitionFor(action)
					require.True(t, ok)
					if status.IsTerminal() {
						require.ErrorIs(t, err, models.ErrAlreadyTerminal,
							"status=%v role=%v action=%v", status, role, action)
						continue
					}
					if role != tr.Role {
						require.ErrorIs(t, err, models.ErrWrongRole,
							"status=%v role=%v action=%v", status, role, action)
						continue
					}
					if status != tr.From {
						require.ErrorIs(t, err, models.ErrInvalidState,
							"status=%v role=%v action=%v", status, role, action)
						continue
					}
					require.NoError(t, err,
						"status=%v role=%v action=%v", status, role, action)
				}
			}
		}
	})

	t.Run(`пустой комментарий - ошибка валидации`, func(t *testing.T) {
		for _, feedback := range []string{"", "   ", "\t\n "} {
			err := CanTransition(models.NocStatusPending, models.UserRolePlacementOfficer, models.NocActionPlacementApprove, feedback)
			require.True(t, models.IsValidationError(err))
		}
	})

	t.Run(`неизвестное действие - ошибка валидации`, func(t *testing.T) {
		err := CanTransition(models.NocStatusPending, models.UserRolePlacementOfficer, models.NocAction("promote"), "комментарий")
		require.True(t, models.IsValidationError(err))
	})

	t.Run(`роль faculty не может выполнять действия отдела трудоустройства`, func(t *testing.T) {
		for _, status := range allStatuses {
			if status.IsTerminal() {
				continue
			}
			err := CanTransition(status, models.UserRoleFaculty, models.NocActionPlacementApprove, "комментарий")
			require.ErrorIs(t, err, models.ErrWrongRole)
			err = CanTransition(status, models.UserRoleFaculty, models.NocActionPlacementReject, "комментарий")
			require.ErrorIs(t, err, models.ErrWrongRole)
		}
	})
}

func TestTransitionTable(t *testing.T) {
	t.Run(`переходы соответствуют конвейеру`, func(t *testing.T) {
		tr, ok := TransitionFor(models.NocActionPlacementApprove)
		require.True(t, ok)
		require.Equal(t, models.NocStatusPendingFacultyApproval, tr.To)

		tr, ok = TransitionFor(models.NocActionPlacementReject)
		require.True(t, ok)
		require.Equal(t, models.NocStatusRejected, tr.To)

		tr, ok = TransitionFor(models.NocActionFacultyApprove)
		require.True(t, ok)
		require.Equal(t, models.NocStatusApproved, tr.To)

		tr, ok = TransitionFor(models.NocActionFacultyReject)
		require.True(t, ok)
		require.Equal(t, models.NocStatusRejected, tr.To)
	})

	t.Run(`после терминального статуса переходов нет`, func(t *testing.T) {
		for _, action := range allActions {
			tr, ok := TransitionFor(action)
			require.True(t, ok)
			require.False(t, tr.From.IsTerminal())
		}
	})
}
