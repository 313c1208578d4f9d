// Package brdoc valida e formata documentos e identificadores brasileiros
// usados pelo cadastro: CPF, placa veicular e telefone.
package brdoc

import (
	"regexp"
	"strings"
)

// Aceita o formato antigo ABC-1234 e o padrão Mercosul ABC1D23,
// com hífen opcional nos dois casos.
var plateRe = regexp.MustCompile(`^[A-Z]{3}-?\d{4}$|^[A-Z]{3}-?\d[A-Z]\d{2}$`)

var nonDigitRe = regexp.MustCompile(`\D`)

// ValidPlate informa se a placa está em um dos dois formatos aceitos.
// A comparação ignora caixa e hífen.
func ValidPlate(plate string) bool {
	return plateRe.MatchString(strings.ToUpper(strings.TrimSpace(plate)))
}

// NormalizePlate converte para maiúsculas e remove o hífen. Não valida.
func NormalizePlate(plate string) string {
	p := strings.ToUpper(strings.TrimSpace(plate))
	return strings.ReplaceAll(p, "-", "")
}

// FormatPlate re-insere o hífen após as três letras, para exibição.
func FormatPlate(plate string) string {
	p := NormalizePlate(plate)
	if len(p) != 7 {
		return p
	}
	return p[:3] + "-" + p[3:]
}

// ValidCPF verifica tamanho, sequência repetida e os dois dígitos
// verificadores (módulo 11).
func ValidCPF(cpf string) bool {
	digits := nonDigitRe.ReplaceAllString(cpf, "")
	if len(digits) != 11 {
		return false
	}
	repeated := true
	for i := 1; i < 11; i++ {
		if digits[i] != digits[0] {
			repeated = false
			break
		}
	}
	if repeated {
		return false
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(digits[i]-'0') * (10 - i)
	}
	d1 := 11 - sum%11
	if d1 >= 10 {
		d1 = 0
	}
	if d1 != int(digits[9]-'0') {
		return false
	}

	sum = 0
	for i := 0; i < 10; i++ {
		sum += int(digits[i]-'0') * (11 - i)
	}
	d2 := 11 - sum%11
	if d2 >= 10 {
		d2 = 0
	}
	return d2 == int(digits[10]-'0')
}

// NormalizeCPF mantém apenas os dígitos.
func NormalizeCPF(cpf string) string {
	return nonDigitRe.ReplaceAllString(cpf, "")
}

// FormatCPF devolve o CPF no formato 000.000.000-00. Entradas com tamanho
// inesperado voltam como estão.
func FormatCPF(cpf string) string {
	d := NormalizeCPF(cpf)
	if len(d) != 11 {
		return cpf
	}
	return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
}

// FormatPhone devolve (DD) 99999-9999 para celulares e (DD) 9999-9999 para
// fixos. Outros tamanhos voltam como estão.
func FormatPhone(phone string) string {
	d := nonDigitRe.ReplaceAllString(phone, "")
	switch len(d) {
	case 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	case 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	default:
		return phone
	}
}
