package order

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTransition marca tentativas de transição fora do grafo.
var ErrInvalidTransition = errors.New("transição de status não permitida")

// AllowTransition define o grafo de transições permitidas entre status.
// concluido e cancelado são terminais: nada sai deles.
var AllowTransition = map[Status][]Status{
	StatusAguardando:  {StatusEmAndamento, StatusCancelado},
	StatusEmAndamento: {StatusConcluido, StatusCancelado},
	StatusConcluido:   {},
	StatusCancelado:   {},
}

// CanTransition responde se from -> to é uma transição permitida.
// from == to é sempre permitido, o que torna o cancelamento idempotente.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	allowed, ok := AllowTransition[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// ApplyTransition aplica a mudança de status na ordem e carimba updated_at.
func ApplyTransition(o *Order, to Status, now time.Time) error {
	if o == nil {
		return fmt.Errorf("order is nil")
	}
	if !ValidStatus(to) {
		return fmt.Errorf("unknown order status: %s", to)
	}
	from := o.Status
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	o.Status = to
	o.UpdatedAt = now
	return nil
}
