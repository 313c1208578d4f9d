package order

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/logger"
)

// ErrSequenceExhausted é devolvido quando o dia passa de 999 ordens.
var ErrSequenceExhausted = errors.New("limite diário de numeração de ordens atingido")

// NumberSource consulta o maior numero_ordem existente para um prefixo de dia.
// Devolve "" quando ainda não há ordem no dia.
type NumberSource interface {
	LastNumberWithPrefix(ctx context.Context, prefix string) (string, error)
}

// SequenceGenerator produz numeros de ordem no formato OS-YYYYMMDD-NNN,
// com sequencial de três dígitos reiniciado a cada dia.
//
// A unicidade real é garantida pelo índice único de numero_ordem: quem chama
// deve tentar de novo quando o insert conflitar (ver Service.CreateOrder).
type SequenceGenerator struct {
	src NumberSource
	log logger.Logger
	now func() time.Time
}

func NewSequenceGenerator(src NumberSource, log logger.Logger) *SequenceGenerator {
	return &SequenceGenerator{src: src, log: log, now: time.Now}
}

// Next calcula o próximo numero de ordem para a data atual (relógio local).
// Falha transitória na consulta degrada para <prefixo>-001 em vez de impedir
// a criação; o índice único segura eventual duplicata.
func (g *SequenceGenerator) Next(ctx context.Context) (string, error) {
	if g == nil || g.src == nil {
		return "", fmt.Errorf("sequence generator not initialized")
	}

	prefix := DayPrefix(g.now())

	last, err := g.src.LastNumberWithPrefix(ctx, prefix)
	if err != nil {
		if g.log != nil {
			g.log.Warnf("failed to look up last order number for %s, falling back to 001: %v", prefix, err)
		}
		return prefix + "-001", nil
	}
	return NextInSequence(prefix, last)
}

// DayPrefix monta o prefixo OS-YYYYMMDD para uma data.
func DayPrefix(t time.Time) string {
	return "OS-" + t.Format("20060102")
}

// NextInSequence incrementa o sufixo numérico de last dentro de prefix.
// last vazio inicia a sequência em 001.
func NextInSequence(prefix, last string) (string, error) {
	if last == "" {
		return prefix + "-001", nil
	}

	parts := strings.Split(last, "-")
	seq, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return "", fmt.Errorf("malformed order number %q: %w", last, err)
	}

	next := seq + 1
	if next > 999 {
		return "", ErrSequenceExhausted
	}
	return fmt.Sprintf("%s-%03d", prefix, next), nil
}
