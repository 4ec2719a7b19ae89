package store

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "noc-portal-backend/models/db"
)

type Provider interface {
	Create(ctx context.Context, rec dbmodels.Company) (id string, err error)
	GetByID(ctx context.Context, id string) (rec *dbmodels.Company, err error)
	GetByName(ctx context.Context, name string) (rec *dbmodels.Company, err error)
	FindByName(ctx context.Context, name string) (list []dbmodels.Company, err error)
	Update(ctx context.Context, id string, updMap map[string]interface{}) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(ctx context.Context, rec dbmodels.Company) (id string, err error) {
	err = i.isUnique(ctx, "", rec.Name)
	if err != nil {
		return "", err
	}
	err = i.db.WithContext(ctx).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(ctx context.Context, id string) (*dbmodels.Company, error) {
	rec := dbmodels.Company{}
	err := i.db.WithContext(ctx).
		Where("id = ?", id).
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

func (i impl) GetByName(ctx context.Context, name string) (*dbmodels.Company, error) {
	rec := dbmodels.Company{}
	err := i.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(name)).
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

func (i impl) FindByName(ctx context.Context, name string) (list []dbmodels.Company, err error) {
	list = []dbmodels.Company{}
	tx := i.db.WithContext(ctx)
	if name != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
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

func (i impl) Update(ctx context.Context, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	name, ok := updMap["name"]
	if ok {
		err := i.isUnique(ctx, id, name.(string))
		if err != nil {
			return err
		}
	}
	err := i.db.WithContext(ctx).
		Model(&dbmodels.Company{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) isUnique(ctx context.Context, id, name string) error {
	var count int64
	tx := i.db.WithContext(ctx).
		Model(&dbmodels.Company{}).
		Where("LOWER(name) = ?", strings.ToLower(name))
	if id != "" {
		tx = tx.Where("id <> ?", id)
	}
	err := tx.Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("компания с таким названием уже существует")
	}
	return nil
}
