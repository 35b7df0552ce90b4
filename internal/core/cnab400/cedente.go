// internal/core/cnab400/cedente.go
package cnab400

import (
	"fmt"
	"strings"

	"github.com/LuisEduardoPedra/validaCnab/internal/core/cnab"
	"github.com/LuisEduardoPedra/validaCnab/internal/domain"
)

// ValidarDadosCedente compara os dados informados pelo usuário com o header
// do arquivo CNAB 400 (agência/conta/nome) e com o documento do beneficiário
// no primeiro registro de detalhe. Implementado para o layout do Banco do
// Brasil; demais bancos geram aviso.
func ValidarDadosCedente(codigoBanco string, linhas []string, dados domain.DadosConta) ([]string, []string) {
	var erros []string
	var avisos []string

	informouAlgo := dados.Agencia != "" || dados.Conta != "" || dados.Documento != "" || dados.Nome != ""
	if !informouAlgo {
		return erros, avisos
	}

	if codigoBanco != "001" {
		avisos = append(avisos, fmt.Sprintf(
			"Validação dos dados da conta/titular ainda não implementada para o banco %s.", codigoBanco))
		return erros, avisos
	}

	var header string
	for _, linha := range linhas {
		l := strings.TrimRight(linha, "\r\n")
		if strings.HasPrefix(l, "0") {
			header = l
			break
		}
	}
	if header == "" {
		avisos = append(avisos,
			"Não foi possível localizar o header do arquivo CNAB 400 para validar os dados do cedente.")
		return erros, avisos
	}

	agenciaArq := cnab.SomenteDigitos(cnab.Campo(header, 27, 30))
	contaArq := cnab.SomenteDigitos(cnab.Campo(header, 32, 39))
	nomeArq := cnab.CampoTrim(header, 47, 76)

	// O documento do beneficiário não vem no header do 400 do BB; sai do
	// primeiro registro de detalhe (tipo 7, pos. 004-017).
	var docArq string
	for _, linha := range linhas {
		l := strings.TrimRight(linha, "\r\n")
		if strings.HasPrefix(l, "7") {
			docArq = cnab.SomenteDigitos(cnab.Campo(l, 4, 17))
			break
		}
	}

	docInf := cnab.SomenteDigitos(dados.Documento)
	if docInf != "" && docArq != "" && docInf != docArq {
		erros = append(erros, fmt.Sprintf(
			"Documento do titular informado (%s) é diferente do documento do beneficiário no arquivo (%s).", docInf, docArq))
	}

	nomeInf := strings.TrimSpace(dados.Nome)
	if nomeInf != "" && nomeArq != "" {
		nomeInfUpper := strings.ToUpper(nomeInf)
		nomeArqUpper := strings.ToUpper(nomeArq)
		if !strings.Contains(nomeArqUpper, nomeInfUpper) && !strings.Contains(nomeInfUpper, nomeArqUpper) {
			avisos = append(avisos, fmt.Sprintf(
				"Nome/Razão social informada difere do nome do beneficiário no header: informado '%s', arquivo '%s'.",
				nomeInf, nomeArq))
		}
	}

	agInf := cnab.SomenteDigitos(dados.Agencia)
	if agInf != "" && agenciaArq != "" {
		if strings.TrimLeft(agInf, "0") != strings.TrimLeft(agenciaArq, "0") {
			erros = append(erros, fmt.Sprintf(
				"Agência informada (%s) é diferente da agência do header (%s).", agInf, agenciaArq))
		}
	}

	contaInf := cnab.SomenteDigitos(dados.Conta)
	if contaInf != "" && contaArq != "" {
		if strings.TrimLeft(contaInf, "0") != strings.TrimLeft(contaArq, "0") {
			erros = append(erros, fmt.Sprintf(
				"Conta informada (%s) é diferente da conta do header (%s).", contaInf, contaArq))
		}
	}

	return erros, avisos
}
