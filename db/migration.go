package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dbmodels "noc-portal-backend/models/db"
)

func AutoMigrateDB() error {
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.PortalUser{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры PortalUser")
	}
	if err := DB.AutoMigrate(&dbmodels.Company{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Company")
	}
	if err := DB.AutoMigrate(&dbmodels.NocRequest{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры NocRequest")
	}
	if err := DB.AutoMigrate(&dbmodels.NocReview{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры NocReview")
	}
	if err := DB.AutoMigrate(&dbmodels.NocDocument{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры NocDocument")
	}
	if err := DB.AutoMigrate(&dbmodels.NocHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры NocHistory")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
