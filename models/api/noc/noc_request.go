package nocapimodels

import (
	"time"

	"noc-portal-backend/models"
	apimodels "noc-portal-backend/models/api"
	dbmodels "noc-portal-backend/models/db"
)

const dateLayout = "2006-01-02"

type NocRequestCreateData struct {
	CompanyName string `json:"company_name"` // название компании
	Position    string `json:"position"`     // должность/позиция стажировки
	Duration    string `json:"duration"`     // длительность стажировки
	StartDate   string `json:"start_date"`   // дата начала, формат 2006-01-02
	EndDate     string `json:"end_date"`     // дата окончания, необязательно
	Description string `json:"description"`  // описание стажировки
}

func (v NocRequestCreateData) Validate() error {
	if v.CompanyName == "" {
		return models.NewValidationError("отсутствует название компании")
	}
	if v.Position == "" {
		return models.NewValidationError("отсутствует позиция стажировки")
	}
	if v.Duration == "" {
		return models.NewValidationError("отсутствует длительность стажировки")
	}
	if _, _, err := v.ParseDates(); err != nil {
		return err
	}
	return nil
}

// ParseDates разбирает даты заявки, некорректная дата - ошибка валидации
func (v NocRequestCreateData) ParseDates() (startDate time.Time, endDate *time.Time, err error) {
	startDate, err = time.Parse(dateLayout, v.StartDate)
	if err != nil {
		return time.Time{}, nil, models.NewValidationError("некорректная дата начала стажировки")
	}
	if v.EndDate != "" {
		parsed, err := time.Parse(dateLayout, v.EndDate)
		if err != nil {
			return time.Time{}, nil, models.NewValidationError("некорректная дата окончания стажировки")
		}
		if parsed.Before(startDate) {
			return time.Time{}, nil, models.NewValidationError("дата окончания раньше даты начала")
		}
		endDate = &parsed
	}
	return startDate, endDate, nil
}

type NocRequestSubmitData struct {
	NocRequestCreateData
	Documents []DocumentRef `json:"documents"` // документы, загруженные заранее
}

func (v NocRequestSubmitData) Validate() error {
	if err := v.NocRequestCreateData.Validate(); err != nil {
		return err
	}
	for _, doc := range v.Documents {
		if err := doc.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type DocumentRef struct {
	Name      string `json:"name"`       // имя файла
	ObjectKey string `json:"object_key"` // ключ объекта в хранилище
}

func (v DocumentRef) Validate() error {
	if v.Name == "" {
		return models.NewValidationError("отсутствует имя документа")
	}
	if v.ObjectKey == "" {
		return models.NewValidationError("отсутствует ссылка на документ")
	}
	return nil
}

type NocRequestView struct {
	NocRequestCreateData
	ID              string           `json:"id"`
	StudentID       string           `json:"student_id"`
	StudentName     string           `json:"student_name"`
	Status          models.NocStatus `json:"status"`
	StatusName      string           `json:"status_name"`
	SubmittedAt     time.Time        `json:"submitted_at"`
	CompanyVerified bool             `json:"company_verified"`
	PlacementReview *ReviewView      `json:"placement_review,omitempty"`
	FacultyReview   *ReviewView      `json:"faculty_review,omitempty"`
	Documents       []DocumentView   `json:"documents"`
}

// VisibleTo - видимость заявки для пользователя: студент видит только свои
// заявки, научный руководитель - только дошедшие до его этапа,
// отдел трудоустройства - все
func (v NocRequestView) VisibleTo(userID string, role models.UserRole) bool {
	switch role {
	case models.UserRoleStudent:
		return v.StudentID == userID
	case models.UserRolePlacementOfficer:
		return true
	case models.UserRoleFaculty:
		if v.Status == models.NocStatusPendingFacultyApproval || v.Status == models.NocStatusApproved {
			return true
		}
		return v.FacultyReview != nil
	}
	return false
}

type DocumentView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ObjectKey string `json:"object_key"`
}

func NocRequestConvert(rec dbmodels.NocRequest) NocRequestView {
	result := NocRequestView{
		NocRequestCreateData: NocRequestCreateData{
			CompanyName: rec.CompanyName,
			Position:    rec.Position,
			Duration:    rec.Duration,
			StartDate:   rec.StartDate.Format(dateLayout),
			Description: rec.Description,
		},
		ID:              rec.ID,
		StudentID:       rec.StudentID,
		Status:          rec.Status,
		StatusName:      rec.Status.ToHuman(),
		SubmittedAt:     rec.SubmittedAt,
		CompanyVerified: rec.CompanyVerified,
	}
	if rec.EndDate != nil {
		result.EndDate = rec.EndDate.Format(dateLayout)
	}
	if rec.Student != nil {
		result.StudentName = rec.Student.GetFullName()
	}
	if review := rec.PlacementReview(); review != nil {
		view := ReviewConvert(*review)
		result.PlacementReview = &view
	}
	if review := rec.FacultyReview(); review != nil {
		view := ReviewConvert(*review)
		result.FacultyReview = &view
	}
	documents := []DocumentView{}
	for _, doc := range rec.Documents {
		documents = append(documents, DocumentView{
			ID:        doc.ID,
			Name:      doc.Name,
			ObjectKey: doc.ObjectKey,
		})
	}
	result.Documents = documents
	return result
}

type NocFilter struct {
	apimodels.Pagination
	Status models.NocStatus `json:"status"` // фильтр по статусу, необязательно
}

func (v NocFilter) Validate() error {
	if v.Status != "" {
		return v.Status.Validate()
	}
	return nil
}
