package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"hr-scheduler" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	S3 struct {
		Endpoint        string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		BucketName      string `default:"hr-scheduler" env:"S3_BUCKET_NAME"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
	}
	YandexGPT struct {
		IAMToken  string `default:"" env:"YA_GPT_IAM_TOKEN"`
		CatalogID string `default:"" env:"YA_GPT_CATALOG_ID"`
		// таймауты запросов к оракулу, сек
		ExtractTimeoutSec  int `default:"10" env:"YA_GPT_EXTRACT_TIMEOUT_SEC"`
		GenerateTimeoutSec int `default:"15" env:"YA_GPT_GENERATE_TIMEOUT_SEC"`
	}
	Calendar struct {
		Host        string `default:"" env:"CALENDAR_HOST"`
		RedirectUri string `default:"http://localhost:8080/api/v1/calendar/oauth" env:"CALENDAR_REDIRECT_URI"`
		// ключ AES-256 в base64 для шифрования токенов делегированного доступа
		TokenSecret string `default:"" env:"CALENDAR_TOKEN_SECRET"`
	}
	Negotiation struct {
		MaxRounds         int `default:"3" env:"NEGOTIATION_MAX_ROUNDS"`
		SlotDurationMin   int `default:"60" env:"NEGOTIATION_SLOT_DURATION_MIN"`
		BusinessHourFrom  int `default:"9" env:"NEGOTIATION_BUSINESS_HOUR_FROM"`
		BusinessHourTo    int `default:"18" env:"NEGOTIATION_BUSINESS_HOUR_TO"`
		BreakerThreshold  int `default:"5" env:"NEGOTIATION_BREAKER_THRESHOLD"`
		BreakerTimeoutSec int `default:"60" env:"NEGOTIATION_BREAKER_TIMEOUT_SEC"`
		RetryAttempts     int `default:"3" env:"NEGOTIATION_RETRY_ATTEMPTS"`
		RetryBaseDelaySec int `default:"1" env:"NEGOTIATION_RETRY_BASE_DELAY_SEC"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
