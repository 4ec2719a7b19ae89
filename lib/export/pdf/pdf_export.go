package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	nocapimodels "noc-portal-backend/models/api/noc"
)

// GenerateCertificate формирует справку о согласовании стажировки.
// Вызывается только для согласованных заявок.
func GenerateCertificate(view nocapimodels.NocRequestView) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateCertificate panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "static/font/")
	pdf.AddPage()
	pdf.AddUTF8Font("Arial", "", "Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 12, "Справка о согласовании стажировки", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 12)
	_, lineHt := pdf.GetFontSize()
	lineHt += 3

	writeLine := func(label, value string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(60, lineHt, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.MultiCell(0, lineHt, value, "", "L", false)
	}

	writeLine("Номер заявки:", view.ID)
	writeLine("Студент:", view.StudentName)
	writeLine("Компания:", view.CompanyName)
	writeLine("Позиция:", view.Position)
	writeLine("Длительность:", view.Duration)
	writeLine("Дата начала:", view.StartDate)
	if view.EndDate != "" {
		writeLine("Дата окончания:", view.EndDate)
	}
	writeLine("Дата подачи:", view.SubmittedAt.Format("02.01.2006"))
	pdf.Ln(6)

	if view.PlacementReview != nil {
		writeLine("Отдел трудоустройства:", fmt.Sprintf("согласовано, %s, %s",
			view.PlacementReview.ReviewerName,
			view.PlacementReview.DecidedAt.Format("02.01.2006")))
	}
	if view.FacultyReview != nil {
		writeLine("Научный руководитель:", fmt.Sprintf("согласовано, %s, %s",
			view.FacultyReview.ReviewerName,
			view.FacultyReview.DecidedAt.Format("02.01.2006")))
	}
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, lineHt, "Справка сформирована автоматически порталом согласования стажировок и действительна без подписи.", "", "L", false)

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
