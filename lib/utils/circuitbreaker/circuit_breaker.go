package circuitbreaker

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

// ошибка, по которой вызывающий код отличает разомкнутый breaker от ошибки провайдера
var ErrUnavailable = errors.New("сервис временно недоступен, повторите попытку позже")

type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

type CircuitBreaker struct {
	mu            sync.Mutex
	threshold     int
	timeout       time.Duration
	failureCount  int
	state         State
	nextAttemptAt time.Time
}

func NewInstance(threshold int, timeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		threshold: threshold,
		timeout:   timeout,
		state:     StateClosed,
	}
}

// Do выполняет fn под защитой breaker-а.
// В разомкнутом состоянии до истечения таймаута возвращает ErrUnavailable не вызывая fn.
func (cb *CircuitBreaker) Do(fn func() error) error {
	if err := cb.before(); err != nil {
		return err
	}
	err := fn()
	cb.after(err)
	return err
}

func (cb *CircuitBreaker) before() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state == StateOpen {
		if time.Now().Before(cb.nextAttemptAt) {
			return ErrUnavailable
		}
		// таймаут прошел, пропускаем один пробный вызов
		cb.state = StateHalfOpen
	}
	return nil
}

func (cb *CircuitBreaker) after(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err == nil {
		// любой успех полностью сбрасывает счетчик
		cb.failureCount = 0
		cb.state = StateClosed
		return
	}
	if cb.state == StateHalfOpen {
		cb.state = StateOpen
		cb.nextAttemptAt = time.Now().Add(cb.timeout)
		return
	}
	cb.failureCount++
	if cb.failureCount >= cb.threshold {
		cb.state = StateOpen
		cb.nextAttemptAt = time.Now().Add(cb.timeout)
	}
}

func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *CircuitBreaker) FailureCount() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.failureCount
}
