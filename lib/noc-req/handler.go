package nocreqhandler

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"noc-portal-backend/config"
	"noc-portal-backend/db"
	companystore "noc-portal-backend/lib/dicts/company/store"
	nochistorystore "noc-portal-backend/lib/noc-req/history-store"
	nocreqstore "noc-portal-backend/lib/noc-req/store"
	nocworkflow "noc-portal-backend/lib/noc-workflow"
	"noc-portal-backend/models"
	nocapimodels "noc-portal-backend/models/api/noc"
	dbmodels "noc-portal-backend/models/db"
)

type Provider interface {
	Submit(studentID string, data nocapimodels.NocRequestCreateData, docs []nocapimodels.DocumentRef) (nocapimodels.NocRequestView, error)
	GetByID(id string) (nocapimodels.NocRequestView, error)
	ApplyTransition(requestID, actorID string, role models.UserRole, action models.NocAction, feedback string) (nocapimodels.NocRequestView, error)
	ListForStudent(studentID string, filter nocapimodels.NocFilter) (list []nocapimodels.NocRequestView, rowCount int64, err error)
	ListForPlacementOfficer(filter nocapimodels.NocFilter) (list []nocapimodels.NocRequestView, rowCount int64, err error)
	ListForFaculty(filter nocapimodels.NocFilter) (list []nocapimodels.NocRequestView, rowCount int64, err error)
	// Register - полная выборка для выгрузки реестра, без постраничности
	Register(filter nocapimodels.NocFilter) (list []nocapimodels.NocRequestView, err error)
	History(requestID string) ([]nocapimodels.HistoryView, error)
}

// DecisionNotifier уведомляет студента о принятом решении,
// ошибки уведомления не влияют на результат перехода
type DecisionNotifier interface {
	NotifyDecision(view nocapimodels.NocRequestView)
}

var Instance Provider

func NewHandler(notifier DecisionNotifier) {
	Instance = impl{
		gormDB:       db.DB,
		store:        nocreqstore.NewInstance(db.DB),
		historyStore: nochistorystore.NewInstance(db.DB),
		companyStore: companystore.NewInstance(db.DB),
		notifier:     notifier,
		queryTimeout: time.Second * time.Duration(config.Conf.Database.QueryTimeoutSec),
	}
}

type impl struct {
	gormDB       *gorm.DB
	store        nocreqstore.Provider
	historyStore nochistorystore.Provider
	companyStore companystore.Provider
	notifier     DecisionNotifier
	queryTimeout time.Duration
}

// storeCtx ограничивает время операции с хранилищем,
// по истечении таймаута вызывающий получает ErrStoreUnavailable
func (i impl) storeCtx() (context.Context, context.CancelFunc) {
	timeout := i.queryTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

// classifyStoreErr отделяет недоступность хранилища от прочих ошибок
func classifyStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return models.ErrStoreUnavailable
	}
	return err
}

func (i impl) Submit(studentID string, data nocapimodels.NocRequestCreateData, docs []nocapimodels.DocumentRef) (nocapimodels.NocRequestView, error) {
	logger := log.WithField("student_id", studentID)
	startDate, endDate, err := data.ParseDates()
	if err != nil {
		return nocapimodels.NocRequestView{}, err
	}
	ctx, cancel := i.storeCtx()
	defer cancel()

	rec := dbmodels.NocRequest{
		StudentID:   studentID,
		CompanyName: data.CompanyName,
		Position:    data.Position,
		Duration:    data.Duration,
		StartDate:   startDate,
		EndDate:     endDate,
		Description: data.Description,
		Status:      models.NocStatusPending,
		SubmittedAt: time.Now(),
	}
	// снимок флага проверки компании из справочника, движок его не вычисляет
	company, err := i.companyStore.GetByName(ctx, data.CompanyName)
	if err != nil {
		logger.WithError(err).Error("Ошибка обращения к справочнику компаний")
		return nocapimodels.NocRequestView{}, classifyStoreErr(err)
	}
	if company != nil {
		rec.CompanyVerified = company.Verified
	}
	for _, doc := range docs {
		rec.Documents = append(rec.Documents, dbmodels.NocDocument{
			Name:      doc.Name,
			ObjectKey: doc.ObjectKey,
		})
	}

	id, err := i.store.Create(ctx, rec)
	if err != nil {
		logger.
			WithField("request", fmt.Sprintf("%+v", data)).
			WithError(err).
			Error("Ошибка создания заявки")
		return nocapimodels.NocRequestView{}, classifyStoreErr(err)
	}
	logger.
		WithField("rec_id", id).
		Info("Подана заявка на согласование стажировки")
	return i.GetByID(id)
}

func (i impl) GetByID(id string) (nocapimodels.NocRequestView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return nocapimodels.NocRequestView{}, err
	}
	return nocapimodels.NocRequestConvert(*rec), nil
}

func (i impl) ApplyTransition(requestID, actorID string, role models.UserRole, action models.NocAction, feedback string) (nocapimodels.NocRequestView, error) {
	logger := log.
		WithField("rec_id", requestID).
		WithField("user_id", actorID).
		WithField("action", action)
	rec, err := i.getRec(requestID)
	if err != nil {
		return nocapimodels.NocRequestView{}, err
	}
	// чистая проверка допустимости, до неё ничего не изменяется
	if err = nocworkflow.CanTransition(rec.Status, role, action, feedback); err != nil {
		return nocapimodels.NocRequestView{}, err
	}
	transition, ok := nocworkflow.TransitionFor(action)
	if !ok {
		return nocapimodels.NocRequestView{}, models.NewValidationError("неизвестное действие над заявкой")
	}

	ctx, cancel := i.storeCtx()
	defer cancel()
	err = i.gormDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		store := nocreqstore.NewInstance(tx)
		historyStore := nochistorystore.NewInstance(tx)
		review := dbmodels.NocReview{
			RequestID:  requestID,
			Stage:      transition.Stage,
			Decision:   transition.Decision,
			Feedback:   feedback,
			ReviewerID: actorID,
			DecidedAt:  time.Now(),
		}
		if _, err := store.CreateReview(ctx, review); err != nil {
			return err
		}
		// compare-and-set: проигравший параллельный переход получает ErrConflict,
		// решение победителя не перезаписывается
		if err := store.UpdateStatusCAS(ctx, requestID, transition.From, transition.To); err != nil {
			return err
		}
		_, err := historyStore.Create(ctx, dbmodels.NocHistory{
			RequestID:  requestID,
			ReviewerID: actorID,
			Action:     action,
			FromStatus: transition.From,
			ToStatus:   transition.To,
			Feedback:   feedback,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			logger.Warn("Конфликт параллельного согласования заявки")
			return nocapimodels.NocRequestView{}, models.ErrConflict
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// повторная вставка решения этапа - проигранная гонка
			logger.Warn("Повторное решение по этапу согласования")
			return nocapimodels.NocRequestView{}, models.ErrConflict
		}
		logger.WithError(err).Error("Ошибка применения перехода по заявке")
		return nocapimodels.NocRequestView{}, classifyStoreErr(err)
	}
	logger.
		WithField("new_status", transition.To).
		Info("Заявка переведена в новый статус")

	view, err := i.GetByID(requestID)
	if err != nil {
		return nocapimodels.NocRequestView{}, err
	}
	if i.notifier != nil && view.Status.IsTerminal() {
		i.notifier.NotifyDecision(view)
	}
	return view, nil
}

func (i impl) ListForStudent(studentID string, filter nocapimodels.NocFilter) ([]nocapimodels.NocRequestView, int64, error) {
	return i.list(nocreqstore.ListFilter{
		StudentID: studentID,
		Status:    filter.Status,
	}, filter)
}

func (i impl) ListForPlacementOfficer(filter nocapimodels.NocFilter) ([]nocapimodels.NocRequestView, int64, error) {
	return i.list(nocreqstore.ListFilter{
		Status: filter.Status,
	}, filter)
}

func (i impl) ListForFaculty(filter nocapimodels.NocFilter) ([]nocapimodels.NocRequestView, int64, error) {
	return i.list(nocreqstore.ListFilter{
		Status:       filter.Status,
		FacultyScope: true,
	}, filter)
}

func (i impl) list(storeFilter nocreqstore.ListFilter, filter nocapimodels.NocFilter) ([]nocapimodels.NocRequestView, int64, error) {
	ctx, cancel := i.storeCtx()
	defer cancel()
	rowCount, err := i.store.ListCount(ctx, storeFilter)
	if err != nil {
		return nil, 0, classifyStoreErr(err)
	}
	page, limit := filter.GetPage()
	storeFilter.Offset = (page - 1) * limit
	storeFilter.Limit = limit
	if int64(storeFilter.Offset) > rowCount {
		return []nocapimodels.NocRequestView{}, rowCount, nil
	}
	recList, err := i.store.List(ctx, storeFilter)
	if err != nil {
		log.WithError(err).Error("Ошибка получения списка заявок")
		return nil, 0, classifyStoreErr(err)
	}
	result := make([]nocapimodels.NocRequestView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, nocapimodels.NocRequestConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) Register(filter nocapimodels.NocFilter) ([]nocapimodels.NocRequestView, error) {
	ctx, cancel := i.storeCtx()
	defer cancel()
	recList, err := i.store.List(ctx, nocreqstore.ListFilter{
		Status: filter.Status,
	})
	if err != nil {
		log.WithError(err).Error("Ошибка выгрузки реестра заявок")
		return nil, classifyStoreErr(err)
	}
	result := make([]nocapimodels.NocRequestView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, nocapimodels.NocRequestConvert(rec))
	}
	return result, nil
}

func (i impl) History(requestID string) ([]nocapimodels.HistoryView, error) {
	if _, err := i.getRec(requestID); err != nil {
		return nil, err
	}
	ctx, cancel := i.storeCtx()
	defer cancel()
	list, err := i.historyStore.List(ctx, requestID)
	if err != nil {
		return nil, classifyStoreErr(err)
	}
	result := make([]nocapimodels.HistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, nocapimodels.HistoryConvert(rec))
	}
	return result, nil
}

func (i impl) getRec(id string) (*dbmodels.NocRequest, error) {
	logger := log.WithField("rec_id", id)
	ctx, cancel := i.storeCtx()
	defer cancel()
	rec, err := i.store.GetByID(ctx, id)
	if err != nil {
		logger.
			WithError(err).
			Error("Ошибка получения заявки")
		return nil, classifyStoreErr(err)
	}
	if rec == nil {
		return nil, models.ErrNotFound
	}
	return rec, nil
}
