package order

import (
	"testing"
	"time"
)

func TestCanTransitionAndApply(t *testing.T) {
	if !CanTransition(StatusAguardando, StatusEmAndamento) {
		t.Fatalf("expected aguardando -> em_andamento allowed")
	}
	if !CanTransition(StatusEmAndamento, StatusConcluido) {
		t.Fatalf("expected em_andamento -> concluido allowed")
	}
	if CanTransition(StatusAguardando, StatusConcluido) {
		t.Fatalf("expected aguardando -> concluido not allowed (shortcut)")
	}

	o := &Order{Status: StatusAguardando}
	now := time.Now()
	if err := ApplyTransition(o, StatusEmAndamento, now); err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}
	if o.Status != StatusEmAndamento {
		t.Fatalf("expected status em_andamento, got %s", o.Status)
	}
	if !o.UpdatedAt.Equal(now) {
		t.Fatalf("expected updated_at stamped")
	}
}

func TestTerminalStatesRejectTransitions(t *testing.T) {
	for _, terminal := range []Status{StatusConcluido, StatusCancelado} {
		for _, to := range []Status{StatusAguardando, StatusEmAndamento} {
			if CanTransition(terminal, to) {
				t.Fatalf("expected %s -> %s rejected", terminal, to)
			}
		}
	}
}

func TestCancelFromAnyActiveState(t *testing.T) {
	if !CanTransition(StatusAguardando, StatusCancelado) {
		t.Fatalf("expected aguardando -> cancelado allowed")
	}
	if !CanTransition(StatusEmAndamento, StatusCancelado) {
		t.Fatalf("expected em_andamento -> cancelado allowed")
	}
	if CanTransition(StatusConcluido, StatusCancelado) {
		t.Fatalf("expected concluido -> cancelado rejected")
	}
	// cancelar de novo é permitido (idempotente)
	if !CanTransition(StatusCancelado, StatusCancelado) {
		t.Fatalf("expected cancelado -> cancelado allowed")
	}
}

func TestApplyTransitionUnknownStatus(t *testing.T) {
	o := &Order{Status: StatusAguardando}
	if err := ApplyTransition(o, Status("pendente"), time.Now()); err == nil {
		t.Fatalf("expected unknown status to fail")
	}
}
