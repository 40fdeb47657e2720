package helpers

import (
	"context"
	"fmt"
	"time"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

// человекочитаемый интервал для сообщений кандидату, например "02.03.2026 с 14:00 до 15:00"
func FormatSlot(start, end time.Time) string {
	return fmt.Sprintf("%s с %s до %s", start.Format("02.01.2006"), start.Format("15:04"), end.Format("15:04"))
}
