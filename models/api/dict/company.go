package dictapimodels

import (
	"github.com/pkg/errors"

	dbmodels "noc-portal-backend/models/db"
)

type CompanyData struct {
	Name       string `json:"name"`        // название компании
	Website    string `json:"website"`     // сайт компании
	ContactFio string `json:"contact_fio"` // контактное лицо
}

func (d CompanyData) Validate() error {
	if d.Name == "" {
		return errors.New("отсутствует название компании")
	}
	return nil
}

type CompanyView struct {
	CompanyData
	ID       string `json:"id"`
	Verified bool   `json:"verified"`
}

func CompanyConvert(rec dbmodels.Company) CompanyView {
	return CompanyView{
		CompanyData: CompanyData{
			Name:       rec.Name,
			Website:    rec.Website,
			ContactFio: rec.ContactFio,
		},
		ID:       rec.ID,
		Verified: rec.Verified,
	}
}
