package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"noc-portal-backend/controllers"
	nocreqhandler "noc-portal-backend/lib/noc-req"
	"noc-portal-backend/middleware"
	"noc-portal-backend/models"
	apimodels "noc-portal-backend/models/api"
	nocapimodels "noc-portal-backend/models/api/noc"
)

type nocReviewApiController struct {
	controllers.BaseAPIController
}

func InitNocReviewApiRouters(app *fiber.App) {
	controller := nocReviewApiController{}
	app.Route("noc", func(router fiber.Router) {
		router.Post(":id/placement/approve", middleware.RoleRequired(models.UserRolePlacementOfficer), controller.placementApprove)
		router.Post(":id/placement/reject", middleware.RoleRequired(models.UserRolePlacementOfficer), controller.placementReject)
		router.Post(":id/faculty/approve", middleware.RoleRequired(models.UserRoleFaculty), controller.facultyApprove)
		router.Post(":id/faculty/reject", middleware.RoleRequired(models.UserRoleFaculty), controller.facultyReject)
		router.Get(":id/history", middleware.RoleRequired(models.UserRolePlacementOfficer, models.UserRoleFaculty), controller.history)
	})
}

// @Summary Согласовать заявку (отдел трудоустройства)
// @Tags Согласование заявок
// @Description Согласовать заявку на этапе отдела трудоустройства
// @Param   Authorization		header	string					true	"Authorization token"
// @Param	body 				body	nocapimodels.ReviewData	true	"request body"
// @Param   id          		path    string					true    "rec ID"
// @Success 200 {object} apimodels.Response{data=nocapimodels.NocRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/noc/{id}/placement/approve [post]
func (c *nocReviewApiController) placementApprove(ctx *fiber.Ctx) error {
	return c.applyTransition(ctx, models.NocActionPlacementApprove)
}

// @Summary Отклонить заявку (отдел трудоустройства)
// @Tags Согласование заявок
// @Description Отклонить заявку на этапе отдела трудоустройства
// @Param   Authorization		header	string					true	"Authorization token"
// @Param	body 				body	nocapimodels.ReviewData	true	"request body"
// @Param   id          		path    string					true    "rec ID"
// @Success 200 {object} apimodels.Response{data=nocapimodels.NocRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/noc/{id}/placement/reject [post]
func (c *nocReviewApiController) placementReject(ctx *fiber.Ctx) error {
	return c.applyTransition(ctx, models.NocActionPlacementReject)
}

// @Summary Согласовать заявку (научный руководитель)
// @Tags Согласование заявок
// @Description Согласовать заявку на этапе научного руководителя
// @Param   Authorization		header	string					true	"Authorization token"
// @Param	body 				body	nocapimodels.ReviewData	true	"request body"
// @Param   id          		path    string					true    "rec ID"
// @Success 200 {object} apimodels.Response{data=nocapimodels.NocRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/noc/{id}/faculty/approve [post]
func (c *nocReviewApiController) facultyApprove(ctx *fiber.Ctx) error {
	return c.applyTransition(ctx, models.NocActionFacultyApprove)
}

// @Summary Отклонить заявку (научный руководитель)
// @Tags Согласование заявок
// @Description Отклонить заявку на этапе научного руководителя
// @Param   Authorization		header	string					true	"Authorization token"
// @Param	body 				body	nocapimodels.ReviewData	true	"request body"
// @Param   id          		path    string					true    "rec ID"
// @Success 200 {object} apimodels.Response{data=nocapimodels.NocRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/noc/{id}/faculty/reject [post]
func (c *nocReviewApiController) facultyReject(ctx *fiber.Ctx) error {
	return c.applyTransition(ctx, models.NocActionFacultyReject)
}

// @Summary История согласования
// @Tags Согласование заявок
// @Description История принятых решений по заявке
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=[]nocapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/noc/{id}/history [get]
func (c *nocReviewApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := nocreqhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории согласования")
	}
	if !rec.VisibleTo(middleware.GetUserID(ctx), middleware.GetUserRole(ctx)) {
		return c.SendError(ctx, c.GetLogger(ctx), models.ErrNotFound, "Ошибка получения истории согласования")
	}
	result, err := nocreqhandler.Instance.History(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

func (c *nocReviewApiController) applyTransition(ctx *fiber.Ctx, action models.NocAction) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload nocapimodels.ReviewData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	result, err := nocreqhandler.Instance.ApplyTransition(id, userID, role, action, payload.Feedback)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка применения решения по заявке")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
