package dict

import (
	"github.com/gofiber/fiber/v2"

	"noc-portal-backend/controllers"
	companyprovider "noc-portal-backend/lib/dicts/company"
	apimodels "noc-portal-backend/models/api"
	dictapimodels "noc-portal-backend/models/api/dict"
)

type companyDictApiController struct {
	controllers.BaseAPIController
}

func InitCompanyDictApiRouters(app *fiber.App) {
	controller := companyDictApiController{}
	app.Route("company", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Post("find", controller.find)
		router.Get(":id", controller.get)
		router.Put(":id", controller.update)
		router.Put(":id/verify", controller.verify)
	})
}

// @Summary Создать компанию
// @Tags Справочник компаний
// @Description Создать компанию
// @Param   Authorization		header	string						true	"Authorization token"
// @Param	body 				body	dictapimodels.CompanyData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/company [post]
func (c *companyDictApiController) create(ctx *fiber.Ctx) error {
	var payload dictapimodels.CompanyData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := companyprovider.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания компании")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Поиск компаний по названию
// @Tags Справочник компаний
// @Description Поиск компаний по названию
// @Param   Authorization		header	string						true	"Authorization token"
// @Param	body 				body	dictapimodels.CompanyData	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.CompanyView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/company/find [post]
func (c *companyDictApiController) find(ctx *fiber.Ctx) error {
	var payload dictapimodels.CompanyData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := companyprovider.Instance.FindByName(payload.Name)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка поиска компаний")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Получить компанию
// @Tags Справочник компаний
// @Description Получить компанию
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.CompanyView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/company/{id} [get]
func (c *companyDictApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := companyprovider.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения компании")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Обновить компанию
// @Tags Справочник компаний
// @Description Обновить компанию
// @Param   Authorization		header	string						true	"Authorization token"
// @Param	body 				body	dictapimodels.CompanyData	true	"request body"
// @Param   id          		path    string						true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/company/{id} [put]
func (c *companyDictApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload dictapimodels.CompanyData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = companyprovider.Instance.Update(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления компании")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отметить компанию проверенной
// @Tags Справочник компаний
// @Description Отметить компанию проверенной, флаг информационный
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/company/{id}/verify [put]
func (c *companyDictApiController) verify(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = companyprovider.Instance.Verify(id, true)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отметки компании")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
