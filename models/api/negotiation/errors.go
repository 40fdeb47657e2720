package negotiationapimodels

import "github.com/pkg/errors"

var (
	errNoInterviewID = errors.New("не указан идентификатор интервью")
	errNoMessage     = errors.New("пустое сообщение кандидата")
)
