package companyprovider

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"noc-portal-backend/config"
	"noc-portal-backend/db"
	"noc-portal-backend/lib/dicts/company/store"
	"noc-portal-backend/models"
	dictapimodels "noc-portal-backend/models/api/dict"
	dbmodels "noc-portal-backend/models/db"
)

type Provider interface {
	Create(request dictapimodels.CompanyData) (id string, err error)
	Update(id string, request dictapimodels.CompanyData) error
	Get(id string) (item dictapimodels.CompanyView, err error)
	FindByName(name string) (list []dictapimodels.CompanyView, err error)
	// Verify выставляет флаг проверки компании сотрудником отдела трудоустройства
	Verify(id string, verified bool) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:        store.NewInstance(db.DB),
		queryTimeout: time.Second * time.Duration(config.Conf.Database.QueryTimeoutSec),
	}
}

type impl struct {
	store        store.Provider
	queryTimeout time.Duration
}

func (i impl) storeCtx() (context.Context, context.CancelFunc) {
	timeout := i.queryTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

func (i impl) Create(request dictapimodels.CompanyData) (id string, err error) {
	ctx, cancel := i.storeCtx()
	defer cancel()
	rec := dbmodels.Company{
		Name:       request.Name,
		Website:    request.Website,
		ContactFio: request.ContactFio,
	}
	id, err = i.store.Create(ctx, rec)
	if err != nil {
		return "", err
	}
	log.
		WithField("company_name", rec.Name).
		WithField("rec_id", id).
		Info("Создана компания")
	return id, nil
}

func (i impl) Update(id string, request dictapimodels.CompanyData) error {
	ctx, cancel := i.storeCtx()
	defer cancel()
	updMap := map[string]interface{}{
		"name":        request.Name,
		"website":     request.Website,
		"contact_fio": request.ContactFio,
	}
	err := i.store.Update(ctx, id, updMap)
	if err != nil {
		return err
	}
	log.WithField("rec_id", id).Info("Обновлена компания")
	return nil
}

func (i impl) Get(id string) (item dictapimodels.CompanyView, err error) {
	ctx, cancel := i.storeCtx()
	defer cancel()
	rec, err := i.store.GetByID(ctx, id)
	if err != nil {
		return dictapimodels.CompanyView{}, err
	}
	if rec == nil {
		return dictapimodels.CompanyView{}, models.ErrNotFound
	}
	return dictapimodels.CompanyConvert(*rec), nil
}

func (i impl) FindByName(name string) (list []dictapimodels.CompanyView, err error) {
	ctx, cancel := i.storeCtx()
	defer cancel()
	recList, err := i.store.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	result := make([]dictapimodels.CompanyView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, dictapimodels.CompanyConvert(rec))
	}
	return result, nil
}

func (i impl) Verify(id string, verified bool) error {
	ctx, cancel := i.storeCtx()
	defer cancel()
	err := i.store.Update(ctx, id, map[string]interface{}{
		"verified": verified,
	})
	if err != nil {
		return err
	}
	log.
		WithField("rec_id", id).
		WithField("verified", verified).
		Info("Изменён флаг проверки компании")
	return nil
}
