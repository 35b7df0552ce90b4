// Package cnab240 implementa o motor de validação estrutural do CNAB 240:
// estrutura de arquivo, lotes, sequência, segmentos dirigidos por layout e os
// pacotes de regras específicos de banco (BB, Sicredi e Itaú SISDEB).
package cnab240

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/LuisEduardoPedra/validaCnab/internal/core/cnab"
)

// ValidarEstrutura faz as validações gerais de estrutura do CNAB 240:
// header de arquivo (tipo '0') na primeira linha, trailer de arquivo (tipo
// '9') na última linha não vazia e tipo de registro válido em todas as
// linhas (posição 8).
func ValidarEstrutura(linhas []string) []string {
	var erros []string

	if len(linhas) == 0 {
		return []string{"Arquivo não possui linhas válidas (todas em branco)."}
	}

	header := strings.TrimRight(linhas[0], "\r\n")
	tipoHeader := cnab.Campo(header, 8, 8)
	if tipoHeader != "0" {
		erros = append(erros, fmt.Sprintf(
			"Header de arquivo inválido: tipo de registro na linha 1 é '%s', esperado '0'.", tipoHeader))
	}

	ultima := len(linhas) - 1
	for ultima >= 0 && strings.TrimSpace(linhas[ultima]) == "" {
		ultima--
	}
	if ultima < 0 {
		erros = append(erros, "Arquivo não possui linhas válidas (todas em branco).")
		return erros
	}

	trailer := strings.TrimRight(linhas[ultima], "\r\n")
	tipoTrailer := cnab.Campo(trailer, 8, 8)
	if tipoTrailer != "9" {
		erros = append(erros, fmt.Sprintf(
			"Trailer de arquivo inválido: tipo de registro na linha %d é '%s', esperado '9'.", ultima+1, tipoTrailer))
	}

	// Tipos previstos na FEBRABAN; alguns bancos nem usam todos.
	tiposValidos := map[string]bool{"0": true, "1": true, "2": true, "3": true, "4": true, "5": true, "9": true}
	for i, linha := range linhas {
		if strings.TrimSpace(linha) == "" {
			continue
		}
		l := strings.TrimRight(linha, "\r\n")
		if len([]rune(l)) < 8 {
			erros = append(erros, fmt.Sprintf("Linha %d: muito curta para conter o tipo de registro.", i+1))
			continue
		}
		tipo := cnab.Campo(l, 8, 8)
		if !tiposValidos[tipo] {
			erros = append(erros, fmt.Sprintf(
				"Linha %d: tipo de registro '%s' inválido (esperado um de [0 1 2 3 4 5 9]).", i+1, tipo))
		}
	}

	return erros
}

// ValidarCodigoBancoConsistente verifica se todas as linhas carregam o mesmo
// código de banco do header (posições 1 a 3).
func ValidarCodigoBancoConsistente(linhas []string, codigoBanco string) []string {
	var erros []string
	for i, linha := range linhas {
		if strings.TrimSpace(linha) == "" {
			continue
		}
		codigo := cnab.Campo(linha, 1, 3)
		if codigo != codigoBanco {
			erros = append(erros, fmt.Sprintf(
				"Linha %d: código do banco '%s' diferente do header '%s'.", i+1, codigo, codigoBanco))
		}
	}
	return erros
}

type estadoLote struct {
	header     bool
	trailer    bool
	temDetalhe bool
	ordem      int
}

// ValidarLotes confere a máquina de estados de cada lote: todo lote
// referenciado por um registro precisa de header (tipo 1), trailer (tipo 5)
// e ao menos um detalhe (tipo 3). A avaliação acontece depois da varredura
// completa, tolerando registros fora de ordem ou duplicados.
func ValidarLotes(linhas []string) []string {
	var erros []string

	lotes := map[string]*estadoLote{}
	var ordemLotes []string

	for i, linha := range linhas {
		if strings.TrimSpace(linha) == "" {
			continue
		}
		l := strings.TrimRight(linha, "\r\n")
		if len([]rune(l)) < 8 {
			erros = append(erros, fmt.Sprintf("Linha %d: muito curta para ler lote/tipo de registro.", i+1))
			continue
		}

		tipo := cnab.Campo(l, 8, 8)
		numeroLote := cnab.Campo(l, 4, 7)

		// Header e trailer de arquivo não pertencem a lote nenhum.
		if tipo == "0" || tipo == "9" {
			continue
		}

		info, ok := lotes[numeroLote]
		if !ok {
			info = &estadoLote{ordem: len(ordemLotes)}
			lotes[numeroLote] = info
			ordemLotes = append(ordemLotes, numeroLote)
		}

		switch tipo {
		case "1":
			info.header = true
		case "5":
			info.trailer = true
		case "3":
			info.temDetalhe = true
		}
	}

	for _, numeroLote := range ordemLotes {
		info := lotes[numeroLote]
		if !info.header {
			erros = append(erros, fmt.Sprintf("Lote %s: não possui Header de Lote (tipo 1).", numeroLote))
		}
		if !info.trailer {
			erros = append(erros, fmt.Sprintf("Lote %s: não possui Trailer de Lote (tipo 5).", numeroLote))
		}
		if !info.temDetalhe {
			erros = append(erros, fmt.Sprintf("Lote %s: não possui registros de detalhe (tipo 3).", numeroLote))
		}
	}

	return erros
}

// ValidarQuantidadesLote confere se a quantidade de registros declarada no
// trailer de cada lote (posições 18-23, padrão FEBRABAN) bate com a
// quantidade real de linhas pertencentes ao lote.
func ValidarQuantidadesLote(linhas []string) []string {
	var erros []string

	type infoLote struct {
		qtdLinhas   int
		trailerIdx  int
		trailerLine string
		ordem       int
	}
	lotes := map[string]*infoLote{}
	var ordemLotes []string

	for i, linha := range linhas {
		l := strings.TrimRight(linha, "\r\n")
		if len([]rune(l)) < 8 {
			continue
		}

		lote := cnab.Campo(l, 4, 7)
		tipo := cnab.Campo(l, 8, 8)

		if strings.TrimSpace(lote) == "" || tipo == "0" || tipo == "9" {
			continue
		}

		info, ok := lotes[lote]
		if !ok {
			info = &infoLote{ordem: len(ordemLotes)}
			lotes[lote] = info
			ordemLotes = append(ordemLotes, lote)
		}
		info.qtdLinhas++

		if tipo == "5" {
			info.trailerIdx = i + 1
			info.trailerLine = l
		}
	}

	for _, lote := range ordemLotes {
		info := lotes[lote]
		if info.trailerLine == "" {
			// A ausência de trailer já é apontada pela validação de lotes.
			continue
		}

		if len([]rune(info.trailerLine)) < 23 {
			erros = append(erros, fmt.Sprintf(
				"Lote %s: trailer (linha %d) muito curto para conter a quantidade de registros nas posições 18-23.",
				lote, info.trailerIdx))
			continue
		}

		qtdStr := cnab.Campo(info.trailerLine, 18, 23)
		if !cnab.TodosDigitos(qtdStr) {
			erros = append(erros, fmt.Sprintf(
				"Lote %s: quantidade de registros no trailer (linha %d) '%s' não é numérica.",
				lote, info.trailerIdx, qtdStr))
			continue
		}

		qtdTrailer, _ := strconv.Atoi(qtdStr)
		if info.qtdLinhas != qtdTrailer {
			erros = append(erros, fmt.Sprintf(
				"Lote %s: quantidade de registros informada no trailer (%d) é diferente da quantidade real de linhas do lote (%d).",
				lote, qtdTrailer, info.qtdLinhas))
		}
	}

	return erros
}

// ValidarTotaisArquivo confere as quantidades declaradas no trailer de
// arquivo (tipo 9): posições 18-23 trazem a quantidade de lotes e 24-29 a
// quantidade de registros, ambas conferidas contra valores recalculados.
func ValidarTotaisArquivo(linhas []string) []string {
	var erros []string

	if len(linhas) == 0 {
		return erros
	}

	var trailer string
	idxTrailer := 0
	for i, linha := range linhas {
		l := strings.TrimRight(linha, "\r\n")
		if len([]rune(l)) < 29 {
			continue
		}
		if cnab.Campo(l, 8, 8) == "9" {
			trailer = l
			idxTrailer = i + 1
			break
		}
	}
	if trailer == "" {
		// Sem trailer a validação básica de estrutura já acusa o problema.
		return erros
	}

	qtdLotesStr := cnab.Campo(trailer, 18, 23)
	qtdRegsStr := cnab.Campo(trailer, 24, 29)

	if !cnab.TodosDigitos(qtdLotesStr) {
		erros = append(erros, fmt.Sprintf(
			"Trailer de arquivo (linha %d): quantidade de lotes '%s' não é numérica.", idxTrailer, qtdLotesStr))
		return erros
	}
	if !cnab.TodosDigitos(qtdRegsStr) {
		erros = append(erros, fmt.Sprintf(
			"Trailer de arquivo (linha %d): quantidade de registros '%s' não é numérica.", idxTrailer, qtdRegsStr))
		return erros
	}

	qtdLotesTrailer, _ := strconv.Atoi(qtdLotesStr)
	qtdRegsTrailer, _ := strconv.Atoi(qtdRegsStr)

	qtdLotesReal := 0
	for _, linha := range linhas {
		l := strings.TrimRight(linha, "\r\n")
		if len([]rune(l)) < 8 {
			continue
		}
		if cnab.Campo(l, 8, 8) == "1" {
			qtdLotesReal++
		}
	}
	qtdRegsReal := len(linhas)

	if qtdLotesReal != qtdLotesTrailer {
		erros = append(erros, fmt.Sprintf(
			"Trailer de arquivo: quantidade de lotes informada (%d) é diferente da quantidade real de lotes (%d).",
			qtdLotesTrailer, qtdLotesReal))
	}
	if qtdRegsReal != qtdRegsTrailer {
		erros = append(erros, fmt.Sprintf(
			"Trailer de arquivo: quantidade de registros informada (%d) é diferente da quantidade real de registros (%d).",
			qtdRegsTrailer, qtdRegsReal))
	}

	return erros
}

// ValidarSequenciaRegistros confere o número sequencial (posições 9-13)
// apenas dos registros de detalhe (tipo 3), que deve crescer de 1 em 1
// dentro de cada lote, na ordem do arquivo. Headers e trailers ficam de
// fora: há layouts que usam esse campo de outra forma ou o deixam em branco.
func ValidarSequenciaRegistros(linhas []string) []string {
	var erros []string

	type registro struct {
		seq      int
		linhaIdx int
	}
	porLote := map[string][]registro{}
	var ordemLotes []string

	for i, linha := range linhas {
		if strings.TrimSpace(linha) == "" {
			continue
		}
		l := strings.TrimRight(linha, "\r\n")
		if len([]rune(l)) < 13 {
			continue
		}

		if cnab.Campo(l, 8, 8) != "3" {
			continue
		}

		numeroLote := cnab.Campo(l, 4, 7)
		seqStr := cnab.Campo(l, 9, 13)

		if !cnab.TodosDigitos(seqStr) {
			erros = append(erros, fmt.Sprintf(
				"Linha %d: no lote %s, número sequencial '%s' não é numérico (tipo de registro 3).",
				i+1, numeroLote, seqStr))
			continue
		}

		seq, _ := strconv.Atoi(seqStr)
		if _, ok := porLote[numeroLote]; !ok {
			ordemLotes = append(ordemLotes, numeroLote)
		}
		porLote[numeroLote] = append(porLote[numeroLote], registro{seq: seq, linhaIdx: i + 1})
	}

	for _, numeroLote := range ordemLotes {
		registros := porLote[numeroLote]
		prev := -1
		for _, r := range registros {
			if prev < 0 {
				prev = r.seq
				continue
			}
			esperado := prev + 1
			if r.seq != esperado {
				erros = append(erros, fmt.Sprintf(
					"Linha %d: no lote %s, número sequencial é %d, esperado %d.",
					r.linhaIdx, numeroLote, r.seq, esperado))
			}
			prev = r.seq
		}
	}

	return erros
}
