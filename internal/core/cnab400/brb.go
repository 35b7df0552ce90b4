// internal/core/cnab400/brb.go
package cnab400

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/LuisEduardoPedra/validaCnab/internal/core/cnab"
	"github.com/LuisEduardoPedra/validaCnab/internal/domain"
	"github.com/shopspring/decimal"
)

// Códigos de instrução aceitos pelo layout DCB 075 do BRB.
var instrucoesBRB = map[string]bool{
	"00": true, "01": true, "02": true, "03": true, "04": true,
	"05": true, "06": true, "08": true, "09": true, "13": true, "94": true,
}

var tiposDocumentoBRB = map[string]bool{
	"21": true, "22": true, "25": true, "31": true, "32": true, "39": true,
}

// validadorBRB trata o layout DCB versão 075: não há trailer nem número de
// sequência por registro, e o header traz a contagem total de registros.
type validadorBRB struct{}

func (validadorBRB) Codigo() string { return "070" }

func validarHeaderBRB(l string) (*domain.HeaderCnab400, string, []string) {
	var erros []string
	header := &domain.HeaderCnab400{}

	if tamanho := len([]rune(l)); tamanho != 400 {
		erros = append(erros, fmt.Sprintf(
			"Header deve conter 400 posições, encontrado %d.", tamanho))
	}
	if cnab.Campo(l, 1, 3) != "DCB" {
		erros = append(erros, "Header: Literal DCB (pos. 001-003) deve ser 'DCB'.")
	}
	if cnab.Campo(l, 4, 6) != "001" {
		erros = append(erros, "Header: Versão (pos. 004-006) deve ser '001'.")
	}
	if cnab.Campo(l, 7, 9) != "075" {
		erros = append(erros, "Header: Arquivo (pos. 007-009) deve ser '075'.")
	}

	codigoBenef := cnab.Campo(l, 10, 19)
	if !cnab.TodosDigitos(codigoBenef) || len(codigoBenef) != 10 {
		erros = append(erros, "Header: Código do Beneficiário (pos. 010-019) deve ter 10 dígitos.")
	}
	header.Conta = codigoBenef

	dataFmt := cnab.ParseDataDDMMAAAA(cnab.Campo(l, 20, 27))
	if dataFmt == nil {
		erros = append(erros, "Header: Data de Formatação (pos. 020-027) deve estar em DDMMAAAA.")
	}
	header.DataGravacao = cnab.FormatarDataBR(dataFmt)

	hora := cnab.Campo(l, 28, 33)
	if len(hora) != 6 || !cnab.TodosDigitos(hora) {
		erros = append(erros, "Header: Hora da Formatação (pos. 028-033) deve conter 6 dígitos (HHMMSS).")
	} else {
		hh, _ := strconv.Atoi(hora[0:2])
		mm, _ := strconv.Atoi(hora[2:4])
		ss, _ := strconv.Atoi(hora[4:6])
		if hh > 23 || mm > 59 || ss > 59 {
			erros = append(erros, "Header: Hora da Formatação fora do intervalo válido (HHMMSS).")
		}
	}

	return header, codigoBenef, erros
}

func validarDetalheBRB(l string, numeroLinha int, codigoBenef string) (domain.Titulo, []string, []string) {
	var erros, avisos []string

	titulo := domain.Titulo{
		Linha:          numeroLinha,
		Sequencia:      strconv.Itoa(numeroLinha - 1),
		NossoNumero:    cnab.CampoTrim(l, 210, 221),
		SeuNumero:      cnab.CampoTrim(l, 123, 135),
		NomeSacado:     cnab.CampoTrim(l, 27, 61),
		EnderecoSacado: cnab.CampoTrim(l, 62, 96),
		CidadeSacado:   cnab.CampoTrim(l, 97, 111),
		UFSacado:       strings.ToUpper(cnab.Campo(l, 112, 113)),
		CEPSacado:      cnab.Campo(l, 114, 121),
	}

	if cnab.Campo(l, 1, 2) != "01" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Identificação do Registro (pos. 001-002) deve ser '01'.", numeroLinha))
	}

	contaBenef := cnab.Campo(l, 3, 12)
	if !cnab.TodosDigitos(contaBenef) || len(contaBenef) != 10 {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Código do Beneficiário (pos. 003-012) deve ter 10 dígitos.", numeroLinha))
	} else if cnab.TodosDigitos(codigoBenef) && contaBenef != codigoBenef {
		avisos = append(avisos, fmt.Sprintf(
			"Linha %d: conta do beneficiário diverge do header (%s x %s).", numeroLinha, contaBenef, codigoBenef))
	}

	titulo.DocumentoSacado = cnab.SomenteDigitos(cnab.CampoTrim(l, 13, 26))
	tipoPessoa := cnab.Campo(l, 122, 122)
	titulo.TipoInscricaoSacado = tipoPessoa
	switch tipoPessoa {
	case "1":
		if len(titulo.DocumentoSacado) != 11 {
			erros = append(erros, fmt.Sprintf("Linha %d: CPF do pagador deve ter 11 dígitos.", numeroLinha))
		}
	case "2":
		if len(titulo.DocumentoSacado) != 14 {
			erros = append(erros, fmt.Sprintf("Linha %d: CNPJ do pagador deve ter 14 dígitos.", numeroLinha))
		}
	default:
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Código Tipo Pessoa (pos. 122) deve ser 1=CPF ou 2=CNPJ.", numeroLinha))
	}

	if titulo.NomeSacado == "" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Nome do Pagador (pos. 027-061) é obrigatório.", numeroLinha))
	}
	if titulo.EnderecoSacado == "" {
		avisos = append(avisos, fmt.Sprintf(
			"Linha %d: Endereço do Pagador (pos. 062-096) em branco.", numeroLinha))
	}
	if titulo.CidadeSacado == "" {
		avisos = append(avisos, fmt.Sprintf(
			"Linha %d: Cidade do Pagador (pos. 097-111) em branco.", numeroLinha))
	}
	if uf := strings.TrimSpace(titulo.UFSacado); uf != "" && !cnab.EstadosBR[uf] {
		erros = append(erros, fmt.Sprintf("Linha %d: UF do Pagador (pos. 112-113) inválida.", numeroLinha))
	}
	if cep := titulo.CEPSacado; len(cep) != 8 || !cnab.TodosDigitos(cep) || cep == "00000000" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: CEP do Pagador (pos. 114-121) deve conter 8 dígitos válidos.", numeroLinha))
	}
	if titulo.SeuNumero == "" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Número do Documento/Seu Número (pos. 123-135) é obrigatório.", numeroLinha))
	}

	if m := cnab.Campo(l, 136, 136); m != "1" && m != "2" && m != "3" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Modalidade da Cobrança (pos. 136) deve ser 1, 2 ou 3.", numeroLinha))
	}

	dataEmissao := cnab.ParseDataDDMMAAAA(cnab.Campo(l, 137, 144))
	titulo.DataEmissaoStr = cnab.FormatarDataBR(dataEmissao)
	if dataEmissao == nil {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Data de Emissão do Título (pos. 137-144) inválida.", numeroLinha))
	}

	if !tiposDocumentoBRB[cnab.Campo(l, 145, 146)] {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Código Tipo Documento (pos. 145-146) fora da lista permitida.", numeroLinha))
	}
	if cnab.Campo(l, 147, 147) != "0" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Código da Natureza (pos. 147) deve ser 0.", numeroLinha))
	}
	if cnab.Campo(l, 148, 148) != "0" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Código da Condição Pagto (pos. 148) deve ser 0 (No vencimento).", numeroLinha))
	}
	if cnab.Campo(l, 149, 150) != "02" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Código da Moeda (pos. 149-150) deve ser 02 (Real).", numeroLinha))
	}
	if cnab.Campo(l, 151, 153) != "070" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Número do Banco (pos. 151-153) deve ser 070.", numeroLinha))
	}
	if ag := cnab.Campo(l, 154, 157); !cnab.TodosDigitos(ag) || len(ag) != 4 {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Agência Cobradora (pos. 154-157) deve conter 4 dígitos.", numeroLinha))
	}
	if cnab.CampoTrim(l, 158, 187) == "" {
		avisos = append(avisos, fmt.Sprintf(
			"Linha %d: Praça de Cobrança (pos. 158-187) em branco.", numeroLinha))
	}

	vencimento := cnab.ParseDataDDMMAAAA(cnab.Campo(l, 188, 195))
	titulo.DataVencimento = vencimento
	titulo.DataVencimentoStr = cnab.FormatarDataBR(vencimento)
	if vencimento == nil {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Data de Vencimento (pos. 188-195) inválida.", numeroLinha))
	}

	valorTitulo, ok := cnab.ParseValorCentavos(cnab.Campo(l, 196, 209))
	switch {
	case !ok:
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Valor do Título (pos. 196-209) deve conter dígitos.", numeroLinha))
	case valorTitulo <= 0:
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Valor do Título deve ser maior que zero.", numeroLinha))
	}
	titulo.ValorCentavos = valorTitulo
	titulo.ValorReais = decimal.New(valorTitulo, -2)

	nn := cnab.Campo(l, 210, 221)
	if len(nn) != 12 || !cnab.TodosDigitos(nn) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Nosso Número (pos. 210-221) deve ter 12 dígitos.", numeroLinha))
	} else {
		if strings.Trim(nn[1:7], "0") == "" {
			avisos = append(avisos, fmt.Sprintf(
				"Linha %d: Nosso Número parece zerado no trecho de sequencial (pos. 002-007).", numeroLinha))
		}
		if nn[7:10] != "070" {
			erros = append(erros, fmt.Sprintf(
				"Linha %d: Nosso Número deve conter '070' nas pos. 008-010.", numeroLinha))
		}
	}

	tipoJuros := cnab.Campo(l, 222, 223)
	if tipoJuros != "00" && tipoJuros != "50" && tipoJuros != "51" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Código do Tipo de Juros (pos. 222-223) deve ser 00, 50 ou 51.", numeroLinha))
	}
	valorJuros, ok := cnab.ParseValorCentavos(cnab.Campo(l, 224, 237))
	if !ok {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Valor do Juro (pos. 224-237) deve conter dígitos.", numeroLinha))
	} else if tipoJuros == "00" && valorJuros != 0 {
		avisos = append(avisos, fmt.Sprintf(
			"Linha %d: Tipo de juros 00 exige valor zerado.", numeroLinha))
	}

	if _, ok := cnab.ParseValorCentavos(cnab.Campo(l, 238, 251)); !ok {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Valor do Abatimento (pos. 238-251) deve conter dígitos.", numeroLinha))
	}

	codDesc := cnab.Campo(l, 252, 253)
	if codDesc != "00" && codDesc != "52" && codDesc != "53" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Código do Desconto (pos. 252-253) deve ser 00, 52 ou 53.", numeroLinha))
	}
	dataDescRaw := cnab.Campo(l, 254, 261)
	if strings.TrimSpace(dataDescRaw) != "" && dataDescRaw != "00000000" {
		if cnab.ParseDataDDMMAAAA(dataDescRaw) == nil {
			erros = append(erros, fmt.Sprintf(
				"Linha %d: Data limite para Desconto (pos. 254-261) inválida.", numeroLinha))
		}
	}
	valorDesc, ok := cnab.ParseValorCentavos(cnab.Campo(l, 262, 275))
	switch {
	case !ok:
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Valor do Desconto (pos. 262-275) deve conter dígitos.", numeroLinha))
	case codDesc == "00" && valorDesc != 0:
		avisos = append(avisos, fmt.Sprintf(
			"Linha %d: Código de desconto 00 deveria trazer valor zerado.", numeroLinha))
	case (codDesc == "52" || codDesc == "53") && valorDesc == 0:
		avisos = append(avisos, fmt.Sprintf(
			"Linha %d: Código de desconto %s exige valor informado.", numeroLinha, codDesc))
	}

	if instr1 := cnab.Campo(l, 276, 277); !instrucoesBRB[instr1] {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Código da 1ª Instrução (pos. 276-277) inválido.", numeroLinha))
	}
	if prazo1 := cnab.CampoTrim(l, 278, 279); prazo1 != "" && !cnab.TodosDigitos(prazo1) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Prazo da 1ª Instrução (pos. 278-279) deve ser numérico.", numeroLinha))
	}
	if instr2 := cnab.Campo(l, 280, 281); !instrucoesBRB[instr2] {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Código da 2ª Instrução (pos. 280-281) inválido.", numeroLinha))
	}
	if prazo2 := cnab.CampoTrim(l, 282, 283); prazo2 != "" && !cnab.TodosDigitos(prazo2) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Prazo da 2ª Instrução (pos. 282-283) deve ser numérico.", numeroLinha))
	}
	if taxa := cnab.CampoTrim(l, 284, 288); taxa != "" && !cnab.TodosDigitos(taxa) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Taxa ref. (pos. 284-288) deve conter dígitos.", numeroLinha))
	}
	if cnab.CampoTrim(l, 289, 328) == "" {
		avisos = append(avisos, fmt.Sprintf(
			"Linha %d: Emitente do Título (pos. 289-328) em branco.", numeroLinha))
	}
	if cnab.CampoTrim(l, 369, 397) != "" {
		avisos = append(avisos, fmt.Sprintf(
			"Linha %d: campo reservado (pos. 369-397) deveria estar em branco.", numeroLinha))
	}

	return titulo, erros, avisos
}

func (validadorBRB) Validar(linhas []string, _ domain.DadosConta) *domain.ResultadoCnab400 {
	res := novoResultado("070", cnab.NomeBanco("070"))

	if len(linhas) == 0 {
		res.ErrosHeader = append(res.ErrosHeader, "Arquivo vazio.")
		res.Resumo = &domain.ResumoRemessa{}
		return res
	}

	headerLinha := strings.TrimRight(linhas[0], "\r\n")
	header, codigoBenef, errosHeader := validarHeaderBRB(headerLinha)
	res.ErrosHeader = append(res.ErrosHeader, errosHeader...)

	qtdInformada := -1
	if qtd := cnab.Campo(headerLinha, 34, 39); cnab.TodosDigitos(qtd) {
		qtdInformada, _ = strconv.Atoi(qtd)
	} else {
		res.ErrosHeader = append(res.ErrosHeader,
			"Header: Quantidade de Registros (pos. 034-039) deve ser numérica.")
	}

	var acumulador acumuladorResumo

	for i, linha := range linhas[1:] {
		numeroLinha := i + 2
		if strings.TrimSpace(linha) == "" {
			continue
		}
		l := strings.TrimRight(linha, "\r\n")
		if tamanho := len([]rune(l)); tamanho != 400 {
			res.ErrosRegistros = append(res.ErrosRegistros, fmt.Sprintf(
				"Linha %d: registro deve conter 400 posições, encontrado %d.", numeroLinha, tamanho))
			continue
		}

		titulo, erros, avisosDetalhe := validarDetalheBRB(l, numeroLinha, codigoBenef)
		res.ErrosRegistros = append(res.ErrosRegistros, erros...)
		for _, a := range avisosDetalhe {
			aviso(res, domain.CategoriaOutros, a)
		}
		acumulador.somar(titulo.ValorCentavos, titulo.DataVencimento)
		res.Titulos = append(res.Titulos, titulo)
	}

	totalRegistros := 0
	for _, linha := range linhas {
		if strings.TrimSpace(linha) != "" {
			totalRegistros++
		}
	}
	if qtdInformada >= 0 && qtdInformada != totalRegistros {
		res.ErrosHeader = append(res.ErrosHeader, fmt.Sprintf(
			"Header: Quantidade de Registros informada (%d) difere do total real (%d).", qtdInformada, totalRegistros))
	}

	res.Header = header
	res.Resumo = acumulador.fechar()
	return res
}
