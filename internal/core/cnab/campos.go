// internal/core/cnab/campos.go
package cnab

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Campo extrai o trecho da linha entre as posições inicio e fim, 1-based e
// inclusivas, como os manuais CNAB descrevem os campos. Linhas curtas são
// truncadas em vez de estourar: o chamador decide se isso vira erro.
func Campo(linha string, inicio, fim int) string {
	r := []rune(linha)
	if inicio < 1 {
		inicio = 1
	}
	if fim > len(r) {
		fim = len(r)
	}
	if inicio > fim {
		return ""
	}
	return string(r[inicio-1 : fim])
}

// CampoTrim é Campo com espaços das bordas removidos.
func CampoTrim(linha string, inicio, fim int) string {
	return strings.TrimSpace(Campo(linha, inicio, fim))
}

// SomenteDigitos remove tudo que não for dígito decimal.
func SomenteDigitos(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TodosDigitos informa se a string é não vazia e composta só por dígitos.
func TodosDigitos(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ParseDataDDMMAAAA converte DDMMAAAA em data. Devolve nil para campo vazio,
// não numérico, fora do calendário ou com ano fora de 1900–2099.
func ParseDataDDMMAAAA(valor string) *time.Time {
	if len(valor) != 8 || !TodosDigitos(valor) {
		return nil
	}
	dia, _ := strconv.Atoi(valor[0:2])
	mes, _ := strconv.Atoi(valor[2:4])
	ano, _ := strconv.Atoi(valor[4:8])
	if ano < 1900 || ano > 2099 {
		return nil
	}
	t := time.Date(ano, time.Month(mes), dia, 0, 0, 0, 0, time.UTC)
	if t.Year() != ano || int(t.Month()) != mes || t.Day() != dia {
		return nil
	}
	return &t
}

// ParseDataDDMMAA converte DDMMAA em data, inferindo o século: anos 70–99
// caem em 1900, 00–69 em 2000. "000000" significa "sem data" e devolve nil.
func ParseDataDDMMAA(valor string) *time.Time {
	if len(valor) != 6 || !TodosDigitos(valor) || valor == "000000" {
		return nil
	}
	dia, _ := strconv.Atoi(valor[0:2])
	mes, _ := strconv.Atoi(valor[2:4])
	aa, _ := strconv.Atoi(valor[4:6])
	ano := 2000 + aa
	if aa >= 70 {
		ano = 1900 + aa
	}
	t := time.Date(ano, time.Month(mes), dia, 0, 0, 0, 0, time.UTC)
	if t.Year() != ano || int(t.Month()) != mes || t.Day() != dia {
		return nil
	}
	return &t
}

// ParseDataAAAAMMDD converte AAAAMMDD em data (formato dos headers Sicredi).
func ParseDataAAAAMMDD(valor string) *time.Time {
	if len(valor) != 8 || !TodosDigitos(valor) {
		return nil
	}
	ano, _ := strconv.Atoi(valor[0:4])
	mes, _ := strconv.Atoi(valor[4:6])
	dia, _ := strconv.Atoi(valor[6:8])
	if ano < 1900 || ano > 2099 {
		return nil
	}
	t := time.Date(ano, time.Month(mes), dia, 0, 0, 0, 0, time.UTC)
	if t.Year() != ano || int(t.Month()) != mes || t.Day() != dia {
		return nil
	}
	return &t
}

// FormatarDataBR formata uma data como dd/mm/aaaa; vazio para nil.
func FormatarDataBR(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02/01/2006")
}

// ParseValorCentavos interpreta um campo de valor em centavos. Campo em
// branco vale zero; campo com caractere não numérico devolve ok=false.
func ParseValorCentavos(valor string) (int64, bool) {
	v := strings.TrimSpace(valor)
	if v == "" {
		return 0, true
	}
	if !TodosDigitos(v) {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
