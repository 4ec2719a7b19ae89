package dbmodels

import (
	"time"

	"noc-portal-backend/models"
)

// NocRequest - заявка студента на согласование стажировки.
// Данные заявки неизменяемы после подачи, заявки никогда не удаляются.
type NocRequest struct {
	BaseModel
	StudentID   string      `gorm:"type:varchar(36);index"`
	Student     *PortalUser `gorm:"foreignKey:StudentID"`
	CompanyName string      `gorm:"type:varchar(255)"`
	Position    string      `gorm:"type:varchar(255)"`
	Duration    string      `gorm:"type:varchar(100)"`
	StartDate   time.Time
	EndDate     *time.Time
	Description string
	// Status хранится для индексации и compare-and-set,
	// но всегда пересчитывается движком из решений этапов
	Status      models.NocStatus `gorm:"type:varchar(100);index"`
	SubmittedAt time.Time
	// CompanyVerified - информационный флаг из справочника компаний,
	// снимок на момент подачи
	CompanyVerified bool
	Reviews         []NocReview   `gorm:"foreignKey:RequestID"`
	Documents       []NocDocument `gorm:"foreignKey:RequestID"`
}

// PlacementReview возвращает решение отдела трудоустройства, если оно уже принято
func (r NocRequest) PlacementReview() *NocReview {
	return r.reviewByStage(models.ReviewStagePlacement)
}

// FacultyReview возвращает решение научного руководителя, если оно уже принято
func (r NocRequest) FacultyReview() *NocReview {
	return r.reviewByStage(models.ReviewStageFaculty)
}

func (r NocRequest) reviewByStage(stage models.ReviewStage) *NocReview {
	for idx := range r.Reviews {
		if r.Reviews[idx].Stage == stage {
			return &r.Reviews[idx]
		}
	}
	return nil
}

// DerivedStatus вычисляет статус по записанным решениям этапов
func (r NocRequest) DerivedStatus() models.NocStatus {
	var placement, faculty *models.ReviewDecision
	if rec := r.PlacementReview(); rec != nil {
		placement = &rec.Decision
	}
	if rec := r.FacultyReview(); rec != nil {
		faculty = &rec.Decision
	}
	return models.StatusFromDecisions(placement, faculty)
}

// NocReview - решение согласующего по этапу.
// Одна запись на этап, после создания не изменяется.
type NocReview struct {
	BaseModel
	RequestID  string                `gorm:"type:varchar(36);index;uniqueIndex:idx_request_stage,priority:1"`
	Stage      models.ReviewStage    `gorm:"type:varchar(100);uniqueIndex:idx_request_stage,priority:2"`
	Decision   models.ReviewDecision `gorm:"type:varchar(100)"`
	Feedback   string
	ReviewerID string      `gorm:"type:varchar(36)"`
	Reviewer   *PortalUser `gorm:"foreignKey:ReviewerID"`
	DecidedAt  time.Time
}

// NocDocument - ссылка на приложенный к заявке документ.
// Прикрепляется при подаче, далее только чтение.
type NocDocument struct {
	BaseModel
	RequestID string `gorm:"type:varchar(36);index"`
	Name      string `gorm:"type:varchar(255)"`
	ObjectKey string `gorm:"type:varchar(255)"`
}

// NocHistory - журнал принятых переходов по заявке, только добавление
type NocHistory struct {
	BaseModel
	RequestID  string      `gorm:"type:varchar(36);index"`
	ReviewerID string      `gorm:"type:varchar(36)"`
	Reviewer   *PortalUser `gorm:"foreignKey:ReviewerID"`
	Action     models.NocAction `gorm:"type:varchar(100)"`
	FromStatus models.NocStatus `gorm:"type:varchar(100)"`
	ToStatus   models.NocStatus `gorm:"type:varchar(100)"`
	Feedback   string
}
