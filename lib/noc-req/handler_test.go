package nocreqhandler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	companystore "noc-portal-backend/lib/dicts/company/store"
	nochistorystore "noc-portal-backend/lib/noc-req/history-store"
	nocreqstore "noc-portal-backend/lib/noc-req/store"
	"noc-portal-backend/models"
	nocapimodels "noc-portal-backend/models/api/noc"
	dbmodels "noc-portal-backend/models/db"
)

// setupTestHandler поднимает движок над sqlite в памяти
func setupTestHandler(t *testing.T) (impl, *gorm.DB) {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_busy_timeout=5000"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("не удалось открыть тестовую БД: %v", err)
	}
	err = gormDB.AutoMigrate(
		&dbmodels.PortalUser{},
		&dbmodels.Company{},
		&dbmodels.NocRequest{},
		&dbmodels.NocReview{},
		&dbmodels.NocDocument{},
		&dbmodels.NocHistory{},
	)
	if err != nil {
		t.Fatalf("не удалось выполнить миграцию: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := gormDB.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	handler := impl{
		gormDB:       gormDB,
		store:        nocreqstore.NewInstance(gormDB),
		historyStore: nochistorystore.NewInstance(gormDB),
		companyStore: companystore.NewInstance(gormDB),
		queryTimeout: 5 * time.Second,
	}
	return handler, gormDB
}

func createUser(t *testing.T, gormDB *gorm.DB, role models.UserRole) dbmodels.PortalUser {
	t.Helper()
	user := dbmodels.PortalUser{
		Email:     string(role) + "@example.edu",
		FirstName: "Тест",
		LastName:  string(role),
		Role:      role,
		IsActive:  true,
	}
	require.NoError(t, gormDB.Create(&user).Error)
	return user
}

func submitRequest(t *testing.T, handler impl, studentID string) nocapimodels.NocRequestView {
	t.Helper()
	view, err := handler.Submit(studentID, nocapimodels.NocRequestCreateData{
		CompanyName: "ООО Рога и Копыта",
		Position:    "Стажёр-разработчик",
		Duration:    "3 месяца",
		StartDate:   "2026-09-01",
		EndDate:     "2026-11-30",
		Description: "Летняя стажировка",
	}, []nocapimodels.DocumentRef{
		{Name: "offer.pdf", ObjectKey: "noc-docs/offer.pdf"},
	})
	require.NoError(t, err)
	return view
}

func TestSubmit(t *testing.T) {
	handler, gormDB := setupTestHandler(t)
	student := createUser(t, gormDB, models.UserRoleStudent)

	view := submitRequest(t, handler, student.ID)
	require.Equal(t, models.NocStatusPending, view.Status)
	require.Equal(t, student.ID, view.StudentID)
	require.False(t, view.SubmittedAt.IsZero())
	require.Nil(t, view.PlacementReview)
	require.Nil(t, view.FacultyReview)
	require.Len(t, view.Documents, 1)
	require.Equal(t, "offer.pdf", view.Documents[0].Name)
}

func TestSubmitCompanyVerifiedSnapshot(t *testing.T) {
	handler, gormDB := setupTestHandler(t)
	student := createUser(t, gormDB, models.UserRoleStudent)
	require.NoError(t, gormDB.Create(&dbmodels.Company{
		Name:     "ООО Рога и Копыта",
		Verified: true,
	}).Error)

	view := submitRequest(t, handler, student.ID)
	require.True(t, view.CompanyVerified)
}

func TestSubmitValidation(t *testing.T) {
	handler, gormDB := setupTestHandler(t)
	student := createUser(t, gormDB, models.UserRoleStudent)

	_, err := handler.Submit(student.ID, nocapimodels.NocRequestCreateData{
		CompanyName: "ООО Рога и Копыта",
		Position:    "Стажёр",
		Duration:    "3 месяца",
		StartDate:   "01.09.2026",
	}, nil)
	require.True(t, models.IsValidationError(err))
}

// Сценарий: отдел согласовал, затем руководитель отклонил
func TestApproveThenFacultyReject(t *testing.T) {
	handler, gormDB := setupTestHandler(t)
	student := createUser(t, gormDB, models.UserRoleStudent)
	officer := createUser(t, gormDB, models.UserRolePlacementOfficer)
	faculty := createUser(t, gormDB, models.UserRoleFaculty)

	view := submitRequest(t, handler, student.ID)

	view, err := handler.ApplyTransition(view.ID, officer.ID, models.UserRolePlacementOfficer, models.NocActionPlacementApprove, "документы проверены")
	require.NoError(t, err)
	require.Equal(t, models.NocStatusPendingFacultyApproval, view.Status)
	require.NotNil(t, view.PlacementReview)
	require.Equal(t, models.ReviewDecisionApprove, view.PlacementReview.Decision)
	require.Equal(t, "документы проверены", view.PlacementReview.Feedback)
	require.Equal(t, officer.ID, view.PlacementReview.ReviewerID)

	view, err = handler.ApplyTransition(view.ID, faculty.ID, models.UserRoleFaculty, models.NocActionFacultyReject, "не соответствует учебному плану")
	require.NoError(t, err)
	require.Equal(t, models.NocStatusRejected, view.Status)
	require.NotNil(t, view.FacultyReview)
	require.Equal(t, models.ReviewDecisionReject, view.FacultyReview.Decision)
	// решение отдела не перезаписано
	require.NotNil(t, view.PlacementReview)
	require.Equal(t, models.ReviewDecisionApprove, view.PlacementReview.Decision)

	history, err := handler.History(view.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, models.NocActionPlacementApprove, history[0].Action)
	require.Equal(t, models.NocActionFacultyReject, history[1].Action)
}

// Сценарий: отдел отклонил, дальнейшие действия невозможны
func TestPlacementRejectIsTerminal(t *testing.T) {
	handler, gormDB := setupTestHandler(t)
	student := createUser(t, gormDB, models.UserRoleStudent)
	officer := createUser(t, gormDB, models.UserRolePlacementOfficer)
	faculty := createUser(t, gormDB, models.UserRoleFaculty)

	view := submitRequest(t, handler, student.ID)

	view, err := handler.ApplyTransition(view.ID, officer.ID, models.UserRolePlacementOfficer, models.NocActionPlacementReject, "компания не прошла проверку")
	require.NoError(t, err)
	require.Equal(t, models.NocStatusRejected, view.Status)
	require.Nil(t, view.FacultyReview)

	_, err = handler.ApplyTransition(view.ID, faculty.ID, models.UserRoleFaculty, models.NocActionFacultyApprove, "согласен")
	require.ErrorIs(t, err, models.ErrAlreadyTerminal)

	// запись не изменилась
	after, err := handler.GetByID(view.ID)
	require.NoError(t, err)
	require.Equal(t, models.NocStatusRejected, after.Status)
	require.Nil(t, after.FacultyReview)
}

func TestFullApproval(t *testing.T) {
	handler, gormDB := setupTestHandler(t)
	student := createUser(t, gormDB, models.UserRoleStudent)
	officer := createUser(t, gormDB, models.UserRolePlacementOfficer)
	faculty := createUser(t, gormDB, models.UserRoleFaculty)

	view := submitRequest(t, handler, student.ID)

	_, err := handler.ApplyTransition(view.ID, officer.ID, models.UserRolePlacementOfficer, models.NocActionPlacementApprove, "документы проверены")
	require.NoError(t, err)
	view, err = handler.ApplyTransition(view.ID, faculty.ID, models.UserRoleFaculty, models.NocActionFacultyApprove, "соответствует учебному плану")
	require.NoError(t, err)
	require.Equal(t, models.NocStatusApproved, view.Status)

	// терминальный статус: повторное решение отклоняется, запись неизменна
	_, err = handler.ApplyTransition(view.ID, faculty.ID, models.UserRoleFaculty, models.NocActionFacultyReject, "передумал")
	require.ErrorIs(t, err, models.ErrAlreadyTerminal)
	after, err := handler.GetByID(view.ID)
	require.NoError(t, err)
	require.Equal(t, models.NocStatusApproved, after.Status)
	require.Equal(t, models.ReviewDecisionApprove, after.FacultyReview.Decision)
}

func TestWrongRole(t *testing.T) {
	handler, gormDB := setupTestHandler(t)
	student := createUser(t, gormDB, models.UserRoleStudent)
	faculty := createUser(t, gormDB, models.UserRoleFaculty)

	view := submitRequest(t, handler, student.ID)

	for _, action := range []models.NocAction{models.NocActionPlacementApprove, models.NocActionPlacementReject} {
		_, err := handler.ApplyTransition(view.ID, faculty.ID, models.UserRoleFaculty, action, "комментарий")
		require.ErrorIs(t, err, models.ErrWrongRole)
	}
	_, err := handler.ApplyTransition(view.ID, student.ID, models.UserRoleStudent, models.NocActionPlacementApprove, "комментарий")
	require.ErrorIs(t, err, models.ErrWrongRole)
}

func TestFacultyActionBeforePlacement(t *testing.T) {
	handler, gormDB := setupTestHandler(t)
	student := createUser(t, gormDB, models.UserRoleStudent)
	faculty := createUser(t, gormDB, models.UserRoleFaculty)

	view := submitRequest(t, handler, student.ID)

	_, err := handler.ApplyTransition(view.ID, faculty.ID, models.UserRoleFaculty, models.NocActionFacultyApprove, "комментарий")
	require.ErrorIs(t, err, models.ErrInvalidState)
}

func TestEmptyFeedback(t *testing.T) {
	handler, gormDB := setupTestHandler(t)
	student := createUser(t, gormDB, models.UserRoleStudent)
	officer := createUser(t, gormDB, models.UserRolePlacementOfficer)

	view := submitRequest(t, handler, student.ID)

	_, err := handler.ApplyTransition(view.ID, officer.ID, models.UserRolePlacementOfficer, models.NocActionPlacementApprove, "   \t")
	require.True(t, models.IsValidationError(err))

	after, err := handler.GetByID(view.ID)
	require.NoError(t, err)
	require.Equal(t, models.NocStatusPending, after.Status)
	require.Nil(t, after.PlacementReview)
}

func TestNotFound(t *testing.T) {
	handler, _ := setupTestHandler(t)
	_, err := handler.ApplyTransition("missing-id", "user", models.UserRolePlacementOfficer, models.NocActionPlacementApprove, "комментарий")
	require.ErrorIs(t, err, models.ErrNotFound)
	_, err = handler.GetByID("missing-id")
	require.ErrorIs(t, err, models.ErrNotFound)
}

// Два согласующих действуют по одной заявке одновременно:
// побеждает ровно один, проигравший получает ErrConflict
func TestConcurrentDecisions(t *testing.T) {
	handler, gormDB := setupTestHandler(t)
	student := createUser(t, gormDB, models.UserRoleStudent)
	officer1 := createUser(t, gormDB, models.UserRolePlacementOfficer)
	officer2 := dbmodels.PortalUser{
		Email:    "officer2@example.edu",
		Role:     models.UserRolePlacementOfficer,
		IsActive: true,
	}
	require.NoError(t, gormDB.Create(&officer2).Error)

	view := submitRequest(t, handler, student.ID)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = handler.ApplyTransition(view.ID, officer1.ID, models.UserRolePlacementOfficer, models.NocActionPlacementApprove, "документы проверены")
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = handler.ApplyTransition(view.ID, officer2.ID, models.UserRolePlacementOfficer, models.NocActionPlacementReject, "компания не прошла проверку")
	}()
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		// проигравший видит либо конфликт CAS, либо уже применённый переход
		require.True(t,
			errors.Is(err, models.ErrConflict) || errors.Is(err, models.ErrInvalidState) || errors.Is(err, models.ErrAlreadyTerminal),
			"неожиданная ошибка проигравшего: %v", err)
	}
	require.Equal(t, 1, winners)

	after, err := handler.GetByID(view.ID)
	require.NoError(t, err)
	if errs[0] == nil {
		require.Equal(t, models.NocStatusPendingFacultyApproval, after.Status)
		require.Equal(t, models.ReviewDecisionApprove, after.PlacementReview.Decision)
	} else {
		require.Equal(t, models.NocStatusRejected, after.Status)
		require.Equal(t, models.ReviewDecisionReject, after.PlacementReview.Decision)
	}
	require.Len(t, after.Documents, 1)
}

// Детерминированная проверка CAS: писатель с устаревшим статусом проигрывает
func TestStaleStatusCAS(t *testing.T) {
	handler, gormDB := setupTestHandler(t)
	student := createUser(t, gormDB, models.UserRoleStudent)
	officer := createUser(t, gormDB, models.UserRolePlacementOfficer)

	view := submitRequest(t, handler, student.ID)

	_, err := handler.ApplyTransition(view.ID, officer.ID, models.UserRolePlacementOfficer, models.NocActionPlacementApprove, "документы проверены")
	require.NoError(t, err)

	// попытка записи от статуса, который уже не актуален
	err = handler.store.UpdateStatusCAS(testCtx(t), view.ID, models.NocStatusPending, models.NocStatusRejected)
	require.ErrorIs(t, err, models.ErrConflict)

	after, err := handler.GetByID(view.ID)
	require.NoError(t, err)
	require.Equal(t, models.NocStatusPendingFacultyApproval, after.Status)
}

func TestRoleScopedLists(t *testing.T) {
	handler, gormDB := setupTestHandler(t)
	student1 := createUser(t, gormDB, models.UserRoleStudent)
	student2 := dbmodels.PortalUser{
		Email:    "student2@example.edu",
		Role:     models.UserRoleStudent,
		IsActive: true,
	}
	require.NoError(t, gormDB.Create(&student2).Error)
	officer := createUser(t, gormDB, models.UserRolePlacementOfficer)

	req1 := submitRequest(t, handler, student1.ID)
	_ = submitRequest(t, handler, student2.ID)

	// студент видит только свои заявки
	list, rowCount, err := handler.ListForStudent(student1.ID, nocapimodels.NocFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 1, rowCount)
	require.Len(t, list, 1)
	require.Equal(t, student1.ID, list[0].StudentID)

	// отдел трудоустройства видит все заявки
	list, rowCount, err = handler.ListForPlacementOfficer(nocapimodels.NocFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 2, rowCount)
	require.Len(t, list, 2)

	// руководителю заявки видны только после согласования отделом
	list, rowCount, err = handler.ListForFaculty(nocapimodels.NocFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 0, rowCount)
	require.Len(t, list, 0)

	_, err = handler.ApplyTransition(req1.ID, officer.ID, models.UserRolePlacementOfficer, models.NocActionPlacementApprove, "документы проверены")
	require.NoError(t, err)

	list, rowCount, err = handler.ListForFaculty(nocapimodels.NocFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 1, rowCount)
	require.Len(t, list, 1)
	require.Equal(t, req1.ID, list[0].ID)

	// фильтр по статусу
	list, _, err = handler.ListForPlacementOfficer(nocapimodels.NocFilter{Status: models.NocStatusPending})
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestFacultyVisibilityFollowsStage(t *testing.T) {
	handler, gormDB := setupTestHandler(t)
	student := createUser(t, gormDB, models.UserRoleStudent)
	officer := createUser(t, gormDB, models.UserRolePlacementOfficer)
	faculty := createUser(t, gormDB, models.UserRoleFaculty)
	reached := submitRequest(t, handler, student.ID)
	rejected := submitRequest(t, handler, student.ID)

	// до решения отдела заявка руководителю недоступна
	view, err := handler.GetByID(reached.ID)
	require.NoError(t, err)
	require.False(t, view.VisibleTo(faculty.ID, models.UserRoleFaculty))
	require.True(t, view.VisibleTo(officer.ID, models.UserRolePlacementOfficer))
	require.True(t, view.VisibleTo(student.ID, models.UserRoleStudent))

	view, err = handler.ApplyTransition(reached.ID, officer.ID, models.UserRolePlacementOfficer, models.NocActionPlacementApprove, "документы проверены")
	require.NoError(t, err)
	require.True(t, view.VisibleTo(faculty.ID, models.UserRoleFaculty))

	// отклонённая отделом заявка до руководителя не дошла
	view, err = handler.ApplyTransition(rejected.ID, officer.ID, models.UserRolePlacementOfficer, models.NocActionPlacementReject, "компания не прошла проверку")
	require.NoError(t, err)
	require.False(t, view.VisibleTo(faculty.ID, models.UserRoleFaculty))

	// решение руководителя оставляет заявку ему видимой
	view, err = handler.ApplyTransition(reached.ID, faculty.ID, models.UserRoleFaculty, models.NocActionFacultyReject, "не соответствует учебному плану")
	require.NoError(t, err)
	require.Equal(t, models.NocStatusRejected, view.Status)
	require.True(t, view.VisibleTo(faculty.ID, models.UserRoleFaculty))
}

func TestStoreUnavailable(t *testing.T) {
	handler, gormDB := setupTestHandler(t)
	student := createUser(t, gormDB, models.UserRoleStudent)
	officer := createUser(t, gormDB, models.UserRolePlacementOfficer)
	rec := submitRequest(t, handler, student.ID)

	expired := handler
	expired.queryTimeout = time.Nanosecond

	_, err := expired.ApplyTransition(rec.ID, officer.ID, models.UserRolePlacementOfficer, models.NocActionPlacementApprove, "документы проверены")
	require.ErrorIs(t, err, models.ErrStoreUnavailable)

	_, err = expired.GetByID(rec.ID)
	require.ErrorIs(t, err, models.ErrStoreUnavailable)

	// таймаут хранилища ничего не меняет
	view, err := handler.GetByID(rec.ID)
	require.NoError(t, err)
	require.Equal(t, models.NocStatusPending, view.Status)
	require.Nil(t, view.PlacementReview)

	var historyCount int64
	require.NoError(t, gormDB.Model(&dbmodels.NocHistory{}).Where("request_id = ?", rec.ID).Count(&historyCount).Error)
	require.EqualValues(t, 0, historyCount)
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}
