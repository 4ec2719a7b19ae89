package nochistorystore

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "noc-portal-backend/models/db"
)

type Provider interface {
	Create(ctx context.Context, rec dbmodels.NocHistory) (id string, err error)
	List(ctx context.Context, requestID string) (list []dbmodels.NocHistory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(ctx context.Context, rec dbmodels.NocHistory) (id string, err error) {
	err = i.db.WithContext(ctx).
		Omit("Reviewer").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(ctx context.Context, requestID string) (list []dbmodels.NocHistory, err error) {
	list = []dbmodels.NocHistory{}
	err = i.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at ASC").
		Preload("Reviewer").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
