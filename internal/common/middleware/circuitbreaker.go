package middleware

import (
	"context"
	"errors"
	"sync"
	"time"
)

// CircuitBreakerState estado do circuit breaker
type CircuitBreakerState int

const (
	StateClosed   CircuitBreakerState = iota // fechado (normal)
	StateOpen                                // aberto (bloqueando chamadas)
	StateHalfOpen                            // semiaberto (testando recuperação)
)

// ErrCircuitOpen devolvido quando o breaker está bloqueando chamadas.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreaker protege chamadas a dependências externas instáveis
// (provedor de geocodificação).
type CircuitBreaker struct {
	name          string
	maxFailures   int           // falhas consecutivas até abrir
	resetTimeout  time.Duration // tempo até tentar semiaberto
	halfOpenMax   int           // chamadas permitidas em semiaberto
	failures      int
	halfOpenCount int
	state         CircuitBreakerState
	lastFailTime  time.Time
	mu            sync.RWMutex
}

// NewCircuitBreaker cria um circuit breaker
func NewCircuitBreaker(name string, maxFailures int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		name:         name,
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		halfOpenMax:  3,
		state:        StateClosed,
	}
}

// Call executa fn respeitando o estado do breaker.
func (cb *CircuitBreaker) Call(ctx context.Context, fn func() error) error {
	cb.mu.Lock()
	state := cb.state

	if state == StateOpen {
		if time.Since(cb.lastFailTime) >= cb.resetTimeout {
			cb.state = StateHalfOpen
			cb.halfOpenCount = 0
			state = StateHalfOpen
		} else {
			cb.mu.Unlock()
			return ErrCircuitOpen
		}
	}

	if state == StateHalfOpen {
		if cb.halfOpenCount >= cb.halfOpenMax {
			cb.mu.Unlock()
			return errors.New("circuit breaker half-open limit reached")
		}
		cb.halfOpenCount++
	}

	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.failures++
		cb.lastFailTime = time.Now()

		if cb.state == StateHalfOpen {
			// falhou no semiaberto: volta a abrir
			cb.state = StateOpen
			cb.halfOpenCount = 0
		} else if cb.failures >= cb.maxFailures {
			cb.state = StateOpen
		}
	} else {
		if cb.state == StateHalfOpen {
			cb.state = StateClosed
			cb.halfOpenCount = 0
		}
		cb.failures = 0
	}

	return err
}

// GetState devolve o estado atual
func (cb *CircuitBreaker) GetState() CircuitBreakerState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}
