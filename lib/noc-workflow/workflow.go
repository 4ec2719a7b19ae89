package nocworkflow

import (
	"strings"

	"noc-portal-backend/models"
)

// Transition - строка таблицы переходов конвейера согласования
type Transition struct {
	From     models.NocStatus
	To       models.NocStatus
	Role     models.UserRole
	Stage    models.ReviewStage
	Decision models.ReviewDecision
}

// Таблица переходов фиксированная: двухэтапный конвейер, не настраиваемый граф
var transitions = map[models.NocAction]Transition{
	models.NocActionPlacementApprove: {
		From:     models.NocStatusPending,
		To:       models.NocStatusPendingFacultyApproval,
		Role:     models.UserRolePlacementOfficer,
		Stage:    models.ReviewStagePlacement,
		Decision: models.ReviewDecisionApprove,
	},
	models.NocActionPlacementReject: {
		From:     models.NocStatusPending,
		To:       models.NocStatusRejected,
		Role:     models.UserRolePlacementOfficer,
		Stage:    models.ReviewStagePlacement,
		Decision: models.ReviewDecisionReject,
	},
	models.NocActionFacultyApprove: {
		From:     models.NocStatusPendingFacultyApproval,
		To:       models.NocStatusApproved,
		Role:     models.UserRoleFaculty,
		Stage:    models.ReviewStageFaculty,
		Decision: models.ReviewDecisionApprove,
	},
	models.NocActionFacultyReject: {
		From:     models.NocStatusPendingFacultyApproval,
		To:       models.NocStatusRejected,
		Role:     models.UserRoleFaculty,
		Stage:    models.ReviewStageFaculty,
		Decision: models.ReviewDecisionReject,
	},
}

// TransitionFor возвращает строку таблицы переходов для действия
func TransitionFor(action models.NocAction) (Transition, bool) {
	t, ok := transitions[action]
	return t, ok
}

// CanTransition - чистая проверка допустимости перехода, без побочных эффектов.
// Порядок проверок: сначала ошибки входных данных (пустой комментарий,
// неизвестное действие), затем терминальный статус, затем роль, затем статус.
func CanTransition(status models.NocStatus, role models.UserRole, action models.NocAction, feedback string) error {
	if strings.TrimSpace(feedback) == "" {
		return models.NewValidationError("отсутствует комментарий к решению")
	}
	t, ok := transitions[action]
	if !ok {
		return models.NewValidationError("неизвестное действие над заявкой")
	}
	if status.IsTerminal() {
		return models.ErrAlreadyTerminal
	}
	if role != t.Role {
		return models.ErrWrongRole
	}
	if status != t.From {
		return models.ErrInvalidState
	}
	return nil
}
