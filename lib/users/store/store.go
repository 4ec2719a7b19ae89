package usersstore

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "noc-portal-backend/models/db"
)

type Provider interface {
	Create(ctx context.Context, rec dbmodels.PortalUser) (string, error)
	Update(ctx context.Context, userID string, updMap map[string]interface{}) error
	GetByID(ctx context.Context, userID string) (rec *dbmodels.PortalUser, err error)
	FindByEmail(ctx context.Context, email string) (rec *dbmodels.PortalUser, err error)
	List(ctx context.Context, role string) (list []dbmodels.PortalUser, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(ctx context.Context, rec dbmodels.PortalUser) (string, error) {
	rec.Email = strings.ToLower(strings.TrimSpace(rec.Email))
	err := i.db.WithContext(ctx).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(ctx context.Context, userID string, updMap map[string]interface{}) error {
	return i.db.WithContext(ctx).
		Model(&dbmodels.PortalUser{}).
		Where("id = ?", userID).
		Updates(updMap).
		Error
}

func (i impl) GetByID(ctx context.Context, userID string) (rec *dbmodels.PortalUser, err error) {
	err = i.db.WithContext(ctx).
		Model(dbmodels.PortalUser{}).
		Where("id = ?", userID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) FindByEmail(ctx context.Context, email string) (rec *dbmodels.PortalUser, err error) {
	err = i.db.WithContext(ctx).
		Model(dbmodels.PortalUser{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) List(ctx context.Context, role string) (list []dbmodels.PortalUser, err error) {
	tx := i.db.WithContext(ctx).Model(dbmodels.PortalUser{})
	if role != "" {
		tx = tx.Where("role = ?", role)
	}
	err = tx.
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
