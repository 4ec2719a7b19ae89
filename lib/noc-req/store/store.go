package nocreqstore

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"noc-portal-backend/models"
	dbmodels "noc-portal-backend/models/db"
)

type Provider interface {
	Create(ctx context.Context, rec dbmodels.NocRequest) (id string, err error)
	GetByID(ctx context.Context, id string) (rec *dbmodels.NocRequest, err error)
	// UpdateStatusCAS - атомарная смена статуса: запись обновляется только если
	// хранимый статус всё ещё равен from, иначе models.ErrConflict
	UpdateStatusCAS(ctx context.Context, id string, from, to models.NocStatus) error
	CreateReview(ctx context.Context, rec dbmodels.NocReview) (id string, err error)
	List(ctx context.Context, filter ListFilter) (list []dbmodels.NocRequest, err error)
	ListCount(ctx context.Context, filter ListFilter) (count int64, err error)
}

// ListFilter - параметры выборки для ролевых представлений
type ListFilter struct {
	StudentID string
	Status    models.NocStatus
	// FacultyScope оставляет только заявки, дошедшие до этапа научного
	// руководителя: текущие на согласовании, согласованные, либо отклонённые
	// с решением руководителя
	FacultyScope bool
	Offset       int
	Limit        int
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(ctx context.Context, rec dbmodels.NocRequest) (id string, err error) {
	err = i.db.WithContext(ctx).
		Omit("Student").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(ctx context.Context, id string) (*dbmodels.NocRequest, error) {
	rec := dbmodels.NocRequest{}
	err := i.db.WithContext(ctx).
		Where("id = ?", id).
		Preload(clause.Associations).
		Preload("Reviews.Reviewer").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) UpdateStatusCAS(ctx context.Context, id string, from, to models.NocStatus) error {
	tx := i.db.WithContext(ctx).
		Model(&dbmodels.NocRequest{}).
		Where("id = ?", id).
		Where("status = ?", from).
		Update("status", to)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.ErrConflict
	}
	return nil
}

func (i impl) CreateReview(ctx context.Context, rec dbmodels.NocReview) (id string, err error) {
	err = i.db.WithContext(ctx).
		Omit("Reviewer").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(ctx context.Context, filter ListFilter) (list []dbmodels.NocRequest, err error) {
	list = []dbmodels.NocRequest{}
	tx := i.applyFilter(i.db.WithContext(ctx), filter).
		Preload(clause.Associations).
		Preload("Reviews.Reviewer").
		Order("submitted_at DESC")
	if filter.Limit > 0 {
		tx = tx.Offset(filter.Offset).Limit(filter.Limit)
	}
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(ctx context.Context, filter ListFilter) (count int64, err error) {
	err = i.applyFilter(i.db.WithContext(ctx), filter).
		Model(&dbmodels.NocRequest{}).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) applyFilter(tx *gorm.DB, filter ListFilter) *gorm.DB {
	if filter.StudentID != "" {
		tx = tx.Where("student_id = ?", filter.StudentID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.FacultyScope {
		tx = tx.Where(
			"status IN ? OR id IN (?)",
			[]models.NocStatus{models.NocStatusPendingFacultyApproval, models.NocStatusApproved},
			i.db.Model(&dbmodels.NocReview{}).
				Select("request_id").
				Where("stage = ?", models.ReviewStageFaculty),
		)
	}
	return tx
}
