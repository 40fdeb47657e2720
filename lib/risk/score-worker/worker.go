package riskscoreworker

import (
	"context"
	"time"

	"hr-scheduler-backend/db"
	interviewstore "hr-scheduler-backend/lib/interview/store"
	"hr-scheduler-backend/lib/risk"
	baseworker "hr-scheduler-backend/lib/utils/base-worker"
)

// пересчет риска неявки по предстоящим интервью
func StartWorker(ctx context.Context, firstRunDelay time.Duration) {
	i := &impl{
		BaseImpl:       *baseworker.NewInstance("RiskScoreWorker", firstRunDelay, handlePeriod),
		interviewStore: interviewstore.NewInstance(db.DB),
		risk:           risk.Instance,
	}
	go i.Run(ctx, func(ctx context.Context) {
		i.handle()
	})
}

const (
	handlePeriod = 30 * time.Minute
	batchSize    = 100
)

type impl struct {
	baseworker.BaseImpl
	interviewStore interviewstore.Provider
	risk           risk.Provider
}

func (i impl) handle() {
	logger := i.GetLogger()
	list, err := i.interviewStore.ListUpcoming(batchSize)
	if err != nil {
		logger.WithError(err).Error("ошибка получения списка предстоящих интервью")
		return
	}
	for _, interview := range list {
		report, err := i.risk.AnalyzeRisk(interview.SpaceID, interview.ID)
		if err != nil {
			logger.WithError(err).
				WithField("space_id", interview.SpaceID).
				WithField("interview_id", interview.ID).
				Error("ошибка оценки риска неявки")
			continue
		}
		err = i.interviewStore.Update(interview.ID, map[string]interface{}{
			"no_show_risk": report.NoShowRisk,
			"risk_level":   report.RiskLevel,
		})
		if err != nil {
			logger.WithError(err).
				WithField("interview_id", interview.ID).
				Error("ошибка сохранения оценки риска")
		}
	}
}
