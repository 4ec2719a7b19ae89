package models

// NocStatus - статус заявки на согласование стажировки.
// Закрытый набор значений, статус всегда вычисляется из решений по этапам
// (см. StatusFromDecisions), недопустимо устанавливать его напрямую из запроса.
type NocStatus string

const (
	NocStatusPending                NocStatus = "pending"
	NocStatusPendingFacultyApproval NocStatus = "pending_faculty_approval"
	NocStatusApproved               NocStatus = "approved"
	NocStatusRejected               NocStatus = "rejected"
)

var nocStatusHumanName = map[NocStatus]string{
	NocStatusPending:                "На рассмотрении отдела трудоустройства",
	NocStatusPendingFacultyApproval: "На согласовании у научного руководителя",
	NocStatusApproved:               "Согласована",
	NocStatusRejected:               "Отклонена",
}

func (s NocStatus) ToHuman() string {
	if human, exist := nocStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s NocStatus) Validate() error {
	switch s {
	case NocStatusPending, NocStatusPendingFacultyApproval, NocStatusApproved, NocStatusRejected:
		return nil
	}
	return NewValidationError("неизвестный статус заявки")
}

// IsTerminal - из терминального статуса переходы запрещены
func (s NocStatus) IsTerminal() bool {
	return s == NocStatusApproved || s == NocStatusRejected
}

// ReviewStage - этап согласования заявки
type ReviewStage string

const (
	ReviewStagePlacement ReviewStage = "placement"
	ReviewStageFaculty   ReviewStage = "faculty"
)

// ReviewDecision - решение согласующего по этапу
type ReviewDecision string

const (
	ReviewDecisionApprove ReviewDecision = "approve"
	ReviewDecisionReject  ReviewDecision = "reject"
)

// NocAction - действие согласующего над заявкой
type NocAction string

const (
	NocActionPlacementApprove NocAction = "placement_approve"
	NocActionPlacementReject  NocAction = "placement_reject"
	NocActionFacultyApprove   NocAction = "faculty_approve"
	NocActionFacultyReject    NocAction = "faculty_reject"
)

func (a NocAction) Validate() error {
	switch a {
	case NocActionPlacementApprove, NocActionPlacementReject,
		NocActionFacultyApprove, NocActionFacultyReject:
		return nil
	}
	return NewValidationError("неизвестное действие над заявкой")
}

func (a NocAction) Stage() ReviewStage {
	if a == NocActionPlacementApprove || a == NocActionPlacementReject {
		return ReviewStagePlacement
	}
	return ReviewStageFaculty
}

func (a NocAction) Decision() ReviewDecision {
	if a == NocActionPlacementApprove || a == NocActionFacultyApprove {
		return ReviewDecisionApprove
	}
	return ReviewDecisionReject
}

// StatusFromDecisions вычисляет статус заявки по решениям этапов.
// Статус - производная величина: пара (решение отдела, решение руководителя)
// однозначно определяет положение заявки в конвейере.
func StatusFromDecisions(placement, faculty *ReviewDecision) NocStatus {
	if placement == nil {
		return NocStatusPending
	}
	if *placement == ReviewDecisionReject {
		return NocStatusRejected
	}
	if faculty == nil {
		return NocStatusPendingFacultyApproval
	}
	if *faculty == ReviewDecisionApprove {
		return NocStatusApproved
	}
	return NocStatusRejected
}
