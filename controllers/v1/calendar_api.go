package apiv1

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"hr-scheduler-backend/controllers"
	"hr-scheduler-backend/db"
	calendarhandler "hr-scheduler-backend/lib/calendar"
	calendarclient "hr-scheduler-backend/lib/calendar/client"
	"hr-scheduler-backend/lib/calendar/vault"
	spacesettingsstore "hr-scheduler-backend/lib/space/settings/store"
	"hr-scheduler-backend/models"
	apimodels "hr-scheduler-backend/models/api"
	calendarapimodels "hr-scheduler-backend/models/api/calendar"
)

type calendarApiController struct {
	controllers.BaseAPIController
}

func InitCalendarApiRouters(app fiber.Router) {
	controller := calendarApiController{}
	app.Route("calendar", func(router fiber.Router) {
		router.Get("connect/:recruiter_id", controller.connect)
		router.Post("slots", controller.availableSlots)
	})
	app.Route("interview/:id/event", func(router fiber.Router) {
		router.Post("", controller.createEvent)
		router.Put("", controller.updateEvent)
		router.Delete("", controller.deleteEvent)
	})
}

// oauth callback вне спейс-группы, спейс и рекрутер приходят в state
func InitCalendarOAuthRouters(app fiber.Router) {
	controller := calendarApiController{}
	app.Get("calendar/oauth", controller.oauthCallback)
}

// @Summary Подключение календаря
// @Tags Календарь
// @Description Ссылка авторизации для делегированного доступа к календарю рекрутера
// @Param   space_id      path    string  true  "space ID"
// @Param   recruiter_id  path    string  true  "recruiter ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/{space_id}/calendar/connect/{recruiter_id} [get]
func (c *calendarApiController) connect(ctx *fiber.Ctx) error {
	spaceID, err := c.GetSpaceID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	recruiterID := ctx.Params("recruiter_id")
	if recruiterID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан идентификатор рекрутера"))
	}
	clientID, err := spacesettingsstore.NewInstance(db.DB).GetValueByCode(spaceID, models.CalendarClientIDSetting)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	if clientID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("календарный провайдер не настроен для спейса"))
	}
	// state несет спейс и рекрутера через oauth редирект
	uri, err := calendarclient.Instance.GetLoginUri(clientID, spaceID+":"+recruiterID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(uri))
}

// @Summary OAuth callback
// @Tags Календарь
// @Description Обмен кода авторизации на токены и их сохранение
// @Param   code   query    string  true  "authorization code"
// @Param   state  query    string  true  "space:recruiter"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/calendar/oauth [get]
func (c *calendarApiController) oauthCallback(ctx *fiber.Ctx) error {
	code := ctx.Query("code")
	state := ctx.Query("state")
	parts := strings.SplitN(state, ":", 2)
	if code == "" || len(parts) != 2 {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("некорректные параметры oauth callback"))
	}
	spaceID, recruiterID := parts[0], parts[1]
	settingsStore := spacesettingsstore.NewInstance(db.DB)
	clientID, err := settingsStore.GetValueByCode(spaceID, models.CalendarClientIDSetting)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	clientSecret, err := settingsStore.GetValueByCode(spaceID, models.CalendarClientSecretSetting)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	token, err := calendarclient.Instance.RequestToken(ctx.Context(), calendarapimodels.RequestToken{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Code:         code,
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	if err = vault.Instance.SaveTokens(spaceID, recruiterID, *token); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse("календарь подключен"))
}

type slotsRequest struct {
	RecruiterID string    `json:"recruiter_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

// @Summary Свободные слоты
// @Tags Календарь
// @Description Свободные слоты рекрутера за период
// @Param   space_id   path    string  true  "space ID"
// @Param	body body	 slotsRequest	true	"период"
// @Success 200 {object} apimodels.Response{data=[]calendarapimodels.Slot}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/{space_id}/calendar/slots [post]
func (c *calendarApiController) availableSlots(ctx *fiber.Ctx) error {
	spaceID, err := c.GetSpaceID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload slotsRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if payload.RecruiterID == "" || payload.StartDate.IsZero() || payload.EndDate.IsZero() {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не заданы рекрутер или период"))
	}
	list, err := calendarhandler.Instance.GetAvailableSlots(ctx.Context(), spaceID, payload.RecruiterID, payload.StartDate, payload.EndDate)
	if err != nil {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Создать событие интервью
// @Tags Календарь
// @Description Создает событие у провайдера либо ics приглашение при его недоступности
// @Param   space_id   path    string  true  "space ID"
// @Param   id         path    string  true  "interview ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/{space_id}/interview/{id}/event [post]
func (c *calendarApiController) createEvent(ctx *fiber.Ctx) error {
	interviewID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = calendarhandler.Instance.CreateInterviewEvent(ctx.Context(), interviewID); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Обновить событие интервью
// @Tags Календарь
// @Description Обновляет событие после переноса времени
// @Param   space_id   path    string  true  "space ID"
// @Param   id         path    string  true  "interview ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/{space_id}/interview/{id}/event [put]
func (c *calendarApiController) updateEvent(ctx *fiber.Ctx) error {
	interviewID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = calendarhandler.Instance.UpdateInterviewEvent(ctx.Context(), interviewID); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удалить событие интервью
// @Tags Календарь
// @Description Удаление best-effort, ошибки провайдера не блокируют операцию
// @Param   space_id   path    string  true  "space ID"
// @Param   id         path    string  true  "interview ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @router /api/v1/space/{space_id}/interview/{id}/event [delete]
func (c *calendarApiController) deleteEvent(ctx *fiber.Ctx) error {
	interviewID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	calendarhandler.Instance.DeleteInterviewEvent(ctx.Context(), interviewID)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
