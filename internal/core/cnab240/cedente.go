// internal/core/cnab240/cedente.go
package cnab240

import (
	"fmt"
	"strings"

	"github.com/LuisEduardoPedra/validaCnab/internal/core/cnab"
	"github.com/LuisEduardoPedra/validaCnab/internal/domain"
)

// ValidarDadosCedente compara os dados informados pelo usuário com o que o
// arquivo CNAB 240 carrega no header de arquivo (documento e nome do
// cedente) e no primeiro header de lote (agência/conta). Implementado para o
// Banco do Brasil; para os demais bancos o confronto vira um aviso.
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

	if len(linhas) == 0 {
		return erros, avisos
	}

	header := strings.TrimRight(linhas[0], "\r\n")

	// No header de arquivo do BB, o documento do cedente ocupa as posições
	// 18-31 e o nome as posições 73-102.
	docArq := cnab.SomenteDigitos(cnab.CampoTrim(header, 18, 31))
	nomeArq := cnab.CampoTrim(header, 73, 102)

	docInf := cnab.SomenteDigitos(dados.Documento)
	if docInf != "" && docArq != "" && docInf != docArq {
		erros = append(erros, fmt.Sprintf(
			"Documento do titular informado (%s) é diferente do documento do cedente no arquivo (%s).", docInf, docArq))
	}

	nomeInf := strings.TrimSpace(dados.Nome)
	if nomeInf != "" && nomeArq != "" {
		nomeInfUpper := strings.ToUpper(nomeInf)
		nomeArqUpper := strings.ToUpper(nomeArq)
		// Tolera truncamento de um lado ou do outro; divergência vira aviso.
		if !strings.Contains(nomeArqUpper, nomeInfUpper) && !strings.Contains(nomeInfUpper, nomeArqUpper) {
			avisos = append(avisos, fmt.Sprintf(
				"Nome/Razão social informada difere do nome do cedente no arquivo: informado '%s', arquivo '%s'.",
				nomeInf, nomeArq))
		}
	}

	var headerLote string
	for _, linha := range linhas[1:] {
		l := strings.TrimRight(linha, "\r\n")
		if len([]rune(l)) >= 8 && cnab.Campo(l, 8, 8) == "1" {
			headerLote = l
			break
		}
	}

	if headerLote == "" {
		avisos = append(avisos, "Nenhum Header de Lote (tipo 1) encontrado para validar agência/conta.")
		return erros, avisos
	}

	// Header de lote do BB: agência mantenedora nas posições 54-58 (DV na
	// 59) e conta nas 60-71 (DV na 72).
	if len([]rune(headerLote)) < 72 {
		avisos = append(avisos, "Header de lote encontrado, mas muito curto para ler agência/conta.")
		return erros, avisos
	}

	agenciaArq := cnab.SomenteDigitos(cnab.Campo(headerLote, 54, 58))
	contaArq := cnab.SomenteDigitos(cnab.Campo(headerLote, 60, 71))

	agInf := cnab.SomenteDigitos(dados.Agencia)
	if agInf != "" && agenciaArq != "" {
		if strings.TrimLeft(agInf, "0") != strings.TrimLeft(agenciaArq, "0") {
			erros = append(erros, fmt.Sprintf(
				"Agência informada (%s) é diferente da agência no arquivo (%s).", agInf, agenciaArq))
		}
	}

	contaInf := cnab.SomenteDigitos(dados.Conta)
	if contaInf != "" && contaArq != "" {
		if strings.TrimLeft(contaInf, "0") != strings.TrimLeft(contaArq, "0") {
			erros = append(erros, fmt.Sprintf(
				"Conta informada (%s) é diferente da conta no arquivo (%s).", contaInf, contaArq))
		}
	}

	return erros, avisos
}
