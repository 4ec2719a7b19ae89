package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	nocapimodels "noc-portal-backend/models/api/noc"
)

type Provider interface {
	ExportNocRegister(list []nocapimodels.NocRequestView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var nocHeaders = []string{"Студент", "Компания", "Компания проверена", "Позиция", "Длительность", "Дата начала", "Дата окончания", "Дата подачи", "Статус", "Комментарий отдела", "Комментарий руководителя"}

func (i impl) ExportNocRegister(list []nocapimodels.NocRequestView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, nocHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeNocData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Заявки")
	return f.WriteToBuffer()
}

func writeNocData(f *excelize.File, sheet string, list []nocapimodels.NocRequestView, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(nocHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Студент"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.StudentName); err != nil {
			return row, err
		}

		// "Компания"
		col++
		if err := writeColumn(f, sheet, col, row, item.CompanyName); err != nil {
			return row, err
		}

		// "Компания проверена"
		col++
		verified := "нет"
		if item.CompanyVerified {
			verified = "да"
		}
		if err := writeColumn(f, sheet, col, row, verified); err != nil {
			return row, err
		}

		// "Позиция"
		col++
		if err := writeColumn(f, sheet, col, row, item.Position); err != nil {
			return row, err
		}

		// "Длительность"
		col++
		if err := writeColumn(f, sheet, col, row, item.Duration); err != nil {
			return row, err
		}

		// "Дата начала"
		col++
		if err := writeColumn(f, sheet, col, row, item.StartDate); err != nil {
			return row, err
		}

		// "Дата окончания"
		col++
		if err := writeColumn(f, sheet, col, row, item.EndDate); err != nil {
			return row, err
		}

		// "Дата подачи"
		col++
		if !item.SubmittedAt.IsZero() {
			if err := writeColumn(f, sheet, col, row, item.SubmittedAt.Format("02.01.2006")); err != nil {
				return row, err
			}
		}

		// "Статус"
		col++
		if err := writeColumn(f, sheet, col, row, item.StatusName); err != nil {
			return row, err
		}

		// "Комментарий отдела"
		col++
		if item.PlacementReview != nil {
			if err := writeColumn(f, sheet, col, row, item.PlacementReview.Feedback); err != nil {
				return row, err
			}
		}

		// "Комментарий руководителя"
		col++
		if item.FacultyReview != nil {
			if err := writeColumn(f, sheet, col, row, item.FacultyReview.Feedback); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}
