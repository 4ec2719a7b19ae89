package apiv1

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"noc-portal-backend/controllers"
	pdfexport "noc-portal-backend/lib/export/pdf"
	xlsexport "noc-portal-backend/lib/export/xls"
	filestorage "noc-portal-backend/lib/file-storage"
	nocreqhandler "noc-portal-backend/lib/noc-req"
	"noc-portal-backend/middleware"
	"noc-portal-backend/models"
	apimodels "noc-portal-backend/models/api"
	nocapimodels "noc-portal-backend/models/api/noc"
)

type nocApiController struct {
	controllers.BaseAPIController
}

func InitNocApiRouters(app *fiber.App) {
	controller := nocApiController{}
	app.Route("noc", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Post("list", controller.list)
		router.Post("documents", controller.uploadDocument)
		router.Put("export", controller.export)
		router.Get(":id", controller.get)
		router.Get(":id/certificate", controller.certificate)
		router.Get(":id/documents/:docId", controller.getDocument)
	})
}

// @Summary Подать заявку на согласование стажировки
// @Tags Заявки на стажировку
// @Description Подать заявку на согласование стажировки
// @Param   Authorization		header	string								true	"Authorization token"
// @Param	body 				body	nocapimodels.NocRequestSubmitData	true	"request body"
// @Success 200 {object} apimodels.Response{data=nocapimodels.NocRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/noc [post]
func (c *nocApiController) create(ctx *fiber.Ctx) error {
	var payload nocapimodels.NocRequestSubmitData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	studentID := middleware.GetUserID(ctx)
	result, err := nocreqhandler.Instance.Submit(studentID, payload.NocRequestCreateData, payload.Documents)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка подачи заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Список заявок
// @Tags Заявки на стажировку
// @Description Список заявок, видимость определяется ролью пользователя
// @Param   Authorization		header	string					true	"Authorization token"
// @Param	body 				body	nocapimodels.NocFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]nocapimodels.NocRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/noc/list [post]
func (c *nocApiController) list(ctx *fiber.Ctx) error {
	var payload nocapimodels.NocFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var (
		result   []nocapimodels.NocRequestView
		rowCount int64
		err      error
	)
	switch middleware.GetUserRole(ctx) {
	case models.UserRoleStudent:
		result, rowCount, err = nocreqhandler.Instance.ListForStudent(middleware.GetUserID(ctx), payload)
	case models.UserRolePlacementOfficer:
		result, rowCount, err = nocreqhandler.Instance.ListForPlacementOfficer(payload)
	case models.UserRoleFaculty:
		result, rowCount, err = nocreqhandler.Instance.ListForFaculty(payload)
	default:
		return ctx.SendStatus(fiber.StatusForbidden)
	}
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(result, rowCount))
}

// @Summary Получить заявку
// @Tags Заявки на стажировку
// @Description Получить заявку
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=nocapimodels.NocRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/noc/{id} [get]
func (c *nocApiController) get(ctx *fiber.Ctx) error {
	result, err := c.getForViewer(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Справка о согласовании
// @Tags Заявки на стажировку
// @Description Справка о согласовании, доступна только для согласованных заявок
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {file} application/pdf
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/noc/{id}/certificate [get]
func (c *nocApiController) certificate(ctx *fiber.Ctx) error {
	result, err := c.getForViewer(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявки")
	}
	if result.Status != models.NocStatusApproved {
		return c.SendError(ctx, c.GetLogger(ctx), models.ErrInvalidState, "Справка доступна только для согласованных заявок")
	}
	body, err := pdfexport.GenerateCertificate(result)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования справки")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="noc-%v.pdf"`, result.ID))
	return ctx.Status(fiber.StatusOK).Send(body)
}

// @Summary Загрузить документ к заявке
// @Tags Заявки на стажировку
// @Description Загрузить документ, ссылка прикладывается при подаче заявки
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   file				formData file	true	"файл документа"
// @Success 200 {object} apimodels.Response{data=nocapimodels.DocumentRef}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/noc/documents [post]
func (c *nocApiController) uploadDocument(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось получить файл из запроса"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось прочитать файл из запроса"))
	}
	defer file.Close()

	objectKey, err := filestorage.Instance.UploadDocument(ctx.Context(), fileHeader.Filename, file,
		fileHeader.Size, fileHeader.Header.Get(fiber.HeaderContentType))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки документа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nocapimodels.DocumentRef{
		Name:      fileHeader.Filename,
		ObjectKey: objectKey,
	}))
}

// @Summary Скачать документ заявки
// @Tags Заявки на стажировку
// @Description Скачать документ заявки
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Param   docId          		path    string	true    "document ID"
// @Success 200 {file} application/octet-stream
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/noc/{id}/documents/{docId} [get]
func (c *nocApiController) getDocument(ctx *fiber.Ctx) error {
	result, err := c.getForViewer(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявки")
	}
	docID, err := c.GetIDByKey(ctx, "docId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	for _, doc := range result.Documents {
		if doc.ID != docID {
			continue
		}
		body, err := filestorage.Instance.GetDocument(ctx.Context(), doc.ObjectKey)
		if err != nil {
			return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения документа")
		}
		ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%v"`, doc.Name))
		return ctx.Status(fiber.StatusOK).Send(body)
	}
	return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("документ не найден"))
}

// @Summary Выгрузка реестра заявок
// @Tags Заявки на стажировку
// @Description Выгрузка реестра заявок в xlsx для отдела трудоустройства
// @Param   Authorization		header	string					true	"Authorization token"
// @Param	body 				body	nocapimodels.NocFilter	true	"request body"
// @Success 200 {file} application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/noc/export [put]
func (c *nocApiController) export(ctx *fiber.Ctx) error {
	var payload nocapimodels.NocFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := nocreqhandler.Instance.Register(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки реестра заявок")
	}
	buf, err := xlsexport.Instance.ExportNocRegister(list)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования xlsx")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="noc-register.xlsx"`)
	return ctx.Status(fiber.StatusOK).SendStream(buf)
}

// getForViewer возвращает заявку с учётом видимости:
// студент видит только собственные заявки, руководитель - дошедшие до его этапа
func (c *nocApiController) getForViewer(ctx *fiber.Ctx) (nocapimodels.NocRequestView, error) {
	id, err := c.GetID(ctx)
	if err != nil {
		return nocapimodels.NocRequestView{}, models.NewValidationError(err.Error())
	}
	result, err := nocreqhandler.Instance.GetByID(id)
	if err != nil {
		return nocapimodels.NocRequestView{}, err
	}
	if !result.VisibleTo(middleware.GetUserID(ctx), middleware.GetUserRole(ctx)) {
		return nocapimodels.NocRequestView{}, models.ErrNotFound
	}
	return result, nil
}
