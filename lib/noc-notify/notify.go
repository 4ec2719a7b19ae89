package nocnotify

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"noc-portal-backend/db"
	pdfexport "noc-portal-backend/lib/export/pdf"
	filestorage "noc-portal-backend/lib/file-storage"
	"noc-portal-backend/lib/smtp"
	usersstore "noc-portal-backend/lib/users/store"
	"noc-portal-backend/models"
	nocapimodels "noc-portal-backend/models/api/noc"
)

// Provider выполняется после принятия финального решения по заявке:
// письмо студенту и, для согласованных заявок, справка в хранилище.
// Переход уже зафиксирован, все ошибки здесь только логируются.
type Provider interface {
	NotifyDecision(view nocapimodels.NocRequestView)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		usersStore: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	usersStore usersstore.Provider
}

func (i impl) NotifyDecision(view nocapimodels.NocRequestView) {
	logger := log.WithField("rec_id", view.ID)
	if view.Status == models.NocStatusApproved {
		i.storeCertificate(view, logger)
	}
	i.sendDecisionMail(view, logger)
}

func (i impl) storeCertificate(view nocapimodels.NocRequestView, logger *log.Entry) {
	body, err := pdfexport.GenerateCertificate(view)
	if err != nil {
		logger.WithError(err).Error("Ошибка формирования справки о согласовании")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	objectKey, err := filestorage.Instance.UploadCertificate(ctx, view.ID, body)
	if err != nil {
		logger.WithError(err).Error("Ошибка сохранения справки о согласовании")
		return
	}
	logger.WithField("object_key", objectKey).Info("Справка о согласовании сохранена")
}

func (i impl) sendDecisionMail(view nocapimodels.NocRequestView, logger *log.Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	student, err := i.usersStore.GetByID(ctx, view.StudentID)
	if err != nil || student == nil {
		logger.WithError(err).Error("Не удалось получить студента для уведомления")
		return
	}

	subject := "решение по заявке на стажировку"
	message := fmt.Sprintf("Здравствуйте, %s!\r\nПо вашей заявке на стажировку в компании %s принято решение: %s.",
		student.GetFullName(), view.CompanyName, view.StatusName)
	if view.Status == models.NocStatusRejected {
		feedback := ""
		if view.FacultyReview != nil && view.FacultyReview.Decision == models.ReviewDecisionReject {
			feedback = view.FacultyReview.Feedback
		} else if view.PlacementReview != nil {
			feedback = view.PlacementReview.Feedback
		}
		if feedback != "" {
			message += fmt.Sprintf("\r\nКомментарий: %s", feedback)
		}
	}
	if err = smtp.Instance.SendEMail(student.Email, message, subject); err != nil {
		logger.WithError(err).Error("Ошибка отправки уведомления о решении")
	}
}
