package retry

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestRetryExecutor(t *testing.T) {
	errFail := errors.New("fail")

	t.Run(`успех с первой попытки без задержек`, func(t *testing.T) {
		e := NewInstance(3, 10*time.Millisecond)
		attempts := 0
		started := time.Now()
		err := e.Run(context.Background(), "op", func() error {
			attempts++
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, 1, attempts)
		require.Less(t, time.Since(started), 5*time.Millisecond)
	})

	t.Run(`k ошибок и успех: k+1 попыток и суммарная задержка (2^k-1)*base`, func(t *testing.T) {
		base := 10 * time.Millisecond
		e := NewInstance(3, base)
		attempts := 0
		started := time.Now()
		err := e.Run(context.Background(), "op", func() error {
			attempts++
			if attempts <= 2 {
				return errFail
			}
			return nil
		})
		elapsed := time.Since(started)
		require.NoError(t, err)
		require.Equal(t, 3, attempts)
		// задержки base и 2*base
		require.GreaterOrEqual(t, elapsed, 3*base)
		require.Less(t, elapsed, 6*base)
	})

	t.Run(`все попытки исчерпаны: ровно maxRetries вызовов и последняя ошибка`, func(t *testing.T) {
		e := NewInstance(3, time.Millisecond)
		attempts := 0
		err := e.Run(context.Background(), "op", func() error {
			attempts++
			return errors.Wrapf(errFail, "attempt %d", attempts)
		})
		require.Error(t, err)
		require.Equal(t, 3, attempts)
		require.Contains(t, err.Error(), "attempt 3")
	})

	t.Run(`отмена контекста прерывает ожидание`, func(t *testing.T) {
		e := NewInstance(3, time.Minute)
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()
		started := time.Now()
		err := e.Run(ctx, "op", func() error { return errFail })
		require.ErrorIs(t, err, context.Canceled)
		require.Less(t, time.Since(started), time.Second)
	})
}
