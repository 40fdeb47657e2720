package initializers

import (
	"context"
	"time"

	"hr-scheduler-backend/config"
	"hr-scheduler-backend/fiberlog"
	calendarhandler "hr-scheduler-backend/lib/calendar"
	calendarclient "hr-scheduler-backend/lib/calendar/client"
	"hr-scheduler-backend/lib/calendar/vault"
	pdfexport "hr-scheduler-backend/lib/export/pdf"
	xlsexport "hr-scheduler-backend/lib/export/xls"
	filestorage "hr-scheduler-backend/lib/file-storage"
	gpthandler "hr-scheduler-backend/lib/gpt"
	negotiationhandler "hr-scheduler-backend/lib/negotiation"
	"hr-scheduler-backend/lib/negotiation/composer"
	"hr-scheduler-backend/lib/negotiation/extractor"
	"hr-scheduler-backend/lib/risk"
	riskscoreworker "hr-scheduler-backend/lib/risk/score-worker"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	filestorage.NewHandler()
	gpthandler.NewHandler()
	calendarclient.NewProvider(config.Conf.Calendar.Host, config.Conf.Calendar.RedirectUri)
	if err := vault.NewHandler(); err != nil {
		panic(err.Error())
	}
	calendarhandler.NewHandler()
	extractor.NewHandler()
	composer.NewHandler()
	negotiationhandler.NewHandler()
	risk.NewHandler()
	xlsexport.NewHandler()
	pdfexport.NewHandler()
	go initWorkers(ctx)
}

// запускаем с промежутком в 10 сек чтоб размыть нагрузку
func initWorkers(ctx context.Context) {
	firstRunDelay := 10 * time.Second

	// Задача пересчета риска неявки по предстоящим интервью
	riskscoreworker.StartWorker(ctx, firstRunDelay)
}
