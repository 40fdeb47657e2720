package retry

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

type Executor struct {
	maxRetries int
	baseDelay  time.Duration
}

// baseDelay — задержка перед первым повтором, далее удваивается (1s, 2s, 4s при базе в 1s)
func NewInstance(maxRetries int, baseDelay time.Duration) *Executor {
	return &Executor{
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
	}
}

// Run выполняет fn, повторяя с экспоненциальной задержкой.
// Всего делается не более maxRetries попыток; возвращается ошибка последней.
func (e *Executor) Run(ctx context.Context, opName string, fn func() error) error {
	logger := log.WithField("operation", opName)
	var err error
	delay := e.baseDelay
	for attempt := 1; ; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if attempt >= e.maxRetries {
			logger.WithError(err).
				WithField("attempts", attempt).
				Error("повторы исчерпаны")
			return err
		}
		logger.WithError(err).
			WithField("attempt", attempt).
			Warnf("ошибка выполнения, повтор через %v", delay)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}
