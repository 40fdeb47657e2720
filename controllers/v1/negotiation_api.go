package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"hr-scheduler-backend/controllers"
	"hr-scheduler-backend/db"
	pdfexport "hr-scheduler-backend/lib/export/pdf"
	xlsexport "hr-scheduler-backend/lib/export/xls"
	negotiationhandler "hr-scheduler-backend/lib/negotiation"
	negotiationstore "hr-scheduler-backend/lib/negotiation/store"
	apimodels "hr-scheduler-backend/models/api"
	negotiationapimodels "hr-scheduler-backend/models/api/negotiation"
)

type negotiationApiController struct {
	controllers.BaseAPIController
}

func InitNegotiationApiRouters(app fiber.Router) {
	controller := negotiationApiController{}
	app.Route("negotiation", func(router fiber.Router) {
		router.Post("message", controller.processMessage)
		router.Get("escalations/xls", controller.exportEscalations)
		router.Get("escalations/pdf", controller.exportEscalationsPdf)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Post("start", controller.start)
			idRoute.Get("session", controller.getSession)
		})
	})
}

type startRequest struct {
	Message string `json:"message"`
}

// @Summary Начать согласование времени интервью
// @Tags Согласование
// @Description Создает сессию по первому сообщению кандидата и обрабатывает его
// @Param   space_id   path    string  true  "space ID"
// @Param   id         path    string  true  "interview ID"
// @Param	body body	 startRequest	true	"первое сообщение кандидата"
// @Success 200 {object} apimodels.Response{data=negotiationapimodels.ProcessResult}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/{space_id}/negotiation/{id}/start [post]
func (c *negotiationApiController) start(ctx *fiber.Ctx) error {
	spaceID, err := c.GetSpaceID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	interviewID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload startRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if payload.Message == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("пустое сообщение кандидата"))
	}
	result, err := negotiationhandler.Instance.StartNegotiation(ctx.Context(), spaceID, interviewID, payload.Message)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Сообщение кандидата
// @Tags Согласование
// @Description Обработка очередного сообщения кандидата
// @Param   space_id   path    string  true  "space ID"
// @Param	body body	 negotiationapimodels.NewMessageRequest	true	"сообщение кандидата"
// @Success 200 {object} apimodels.Response{data=negotiationapimodels.ProcessResult}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/{space_id}/negotiation/message [post]
func (c *negotiationApiController) processMessage(ctx *fiber.Ctx) error {
	spaceID, err := c.GetSpaceID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload negotiationapimodels.NewMessageRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := negotiationhandler.Instance.ProcessMessage(ctx.Context(), spaceID, payload)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Сессия согласования
// @Tags Согласование
// @Description Текущая сессия с историей переписки по интервью
// @Param   space_id   path    string  true  "space ID"
// @Param   id         path    string  true  "interview ID"
// @Success 200 {object} apimodels.Response{data=negotiationapimodels.SessionView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/{space_id}/negotiation/{id}/session [get]
func (c *negotiationApiController) getSession(ctx *fiber.Ctx) error {
	spaceID, err := c.GetSpaceID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	interviewID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := negotiationhandler.Instance.GetSession(spaceID, interviewID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Выгрузка эскалаций
// @Tags Согласование
// @Description Эскалированные сессии с перепиской в формате xlsx
// @Param   space_id   path    string  true  "space ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/{space_id}/negotiation/escalations/xls [get]
func (c *negotiationApiController) exportEscalations(ctx *fiber.Ctx) error {
	spaceID, err := c.GetSpaceID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := negotiationstore.NewInstance(db.DB).ListEscalated(spaceID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	buf, err := xlsexport.Instance.ExportEscalatedSessions(list)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="escalations.xlsx"`)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Выгрузка эскалаций в pdf
// @Tags Согласование
// @Description Эскалированные сессии с перепиской в формате pdf
// @Param   space_id   path    string  true  "space ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/{space_id}/negotiation/escalations/pdf [get]
func (c *negotiationApiController) exportEscalationsPdf(ctx *fiber.Ctx) error {
	spaceID, err := c.GetSpaceID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := negotiationstore.NewInstance(db.DB).ListEscalated(spaceID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	buf, err := pdfexport.Instance.ExportEscalatedSessions(list)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="escalations.pdf"`)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}
