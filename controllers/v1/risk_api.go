package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"hr-scheduler-backend/controllers"
	"hr-scheduler-backend/lib/risk"
	apimodels "hr-scheduler-backend/models/api"
)

type riskApiController struct {
	controllers.BaseAPIController
}

func InitRiskApiRouters(app fiber.Router) {
	controller := riskApiController{}
	app.Get("interview/:id/risk", controller.analyze)
}

// @Summary Риск неявки
// @Tags Риски
// @Description Оценка вероятности неявки кандидата на интервью
// @Param   space_id   path    string  true  "space ID"
// @Param   id         path    string  true  "interview ID"
// @Success 200 {object} apimodels.Response{data=riskapimodels.RiskReport}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/{space_id}/interview/{id}/risk [get]
func (c *riskApiController) analyze(ctx *fiber.Ctx) error {
	spaceID, err := c.GetSpaceID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	interviewID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	report, err := risk.Instance.AnalyzeRisk(spaceID, interviewID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(report))
}
