// internal/core/cnab400/bb.go
package cnab400

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/LuisEduardoPedra/validaCnab/internal/core/cnab"
	"github.com/LuisEduardoPedra/validaCnab/internal/domain"
	"github.com/shopspring/decimal"
)

// Conjuntos do manual CBR641 do Banco do Brasil.
var (
	carteirasBB = map[string]bool{
		"11": true, "12": true, "15": true, "17": true, "31": true, "51": true,
	}

	// Tipo de cobrança (pos. 102-106) aceito por carteira. Só a carteira 17
	// admite as variações de vinculação; nas demais o campo fica em branco.
	tiposCobrancaBB = map[string]map[string]bool{
		"11": {"": true},
		"12": {"": true},
		"15": {"": true},
		"17": {"": true, "02VIN": true, "04DSC": true, "08VDR": true},
		"31": {"": true},
		"51": {"": true},
	}

	comandosBB = map[string]bool{
		"01": true, "02": true, "03": true, "04": true, "05": true,
		"06": true, "07": true, "08": true, "09": true, "10": true,
		"11": true, "12": true, "16": true, "31": true, "32": true,
		"33": true, "34": true, "35": true, "36": true, "37": true,
		"38": true, "39": true, "40": true,
	}

	especiesBB = map[string]bool{
		"01": true, "02": true, "03": true, "05": true, "08": true,
		"09": true, "10": true, "12": true, "13": true, "15": true,
		"25": true, "26": true, "27": true,
	}

	tiposInscricaoBenefBB   = map[string]bool{"01": true, "02": true}
	tiposInscricaoPagadorBB = map[string]bool{"01": true, "02": true}
	indicadorParcialBB      = map[string]bool{"S": true, "N": true}

	agentesNegativacaoBB = map[string]string{
		"10": "SERASA",
		"11": "QUOD",
	}
)

// diasProtestoValidoBB aceita a faixa 06-29 e os prazos especiais 35 e 40.
func diasProtestoValidoBB(dias int) bool {
	return (dias >= 6 && dias <= 29) || dias == 35 || dias == 40
}

type validadorBB struct{}

func (validadorBB) Codigo() string { return "001" }

func validarHeaderBB(l string, numeroLinha int) (header *domain.HeaderCnab400, codigoBanco, nomeBanco string, erros []string, avisos []string) {
	header = &domain.HeaderCnab400{}

	if cnab.Campo(l, 1, 1) != "0" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: header CNAB 400 deve começar com '0', encontrado '%s'.", numeroLinha, cnab.Campo(l, 1, 1)))
	}
	if cnab.Campo(l, 2, 2) != "1" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: tipo de operação (pos. 002) deve ser '1' para remessa.", numeroLinha))
	}

	tipoExtenso := strings.ToUpper(cnab.CampoTrim(l, 3, 9))
	if tipoExtenso != "REMESSA" && tipoExtenso != "TESTE" {
		avisos = append(avisos, fmt.Sprintf(
			"Linha %d: identificação por extenso do tipo de operação (pos. 003-009) não está como 'REMESSA' ou 'TESTE'.", numeroLinha))
	}

	if cnab.Campo(l, 10, 11) != "01" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: tipo de serviço (pos. 010-011) deve ser '01'.", numeroLinha))
	}
	if strings.ToUpper(cnab.CampoTrim(l, 12, 19)) != "COBRANCA" {
		avisos = append(avisos, fmt.Sprintf(
			"Linha %d: descrição do serviço (pos. 012-019) diferente de 'COBRANCA'.", numeroLinha))
	}
	if cnab.CampoTrim(l, 20, 26) != "" {
		avisos = append(avisos, fmt.Sprintf(
			"Linha %d: complemento do registro (pos. 020-026) deveria estar em branco.", numeroLinha))
	}

	header.Agencia = cnab.CampoTrim(l, 27, 30)
	if header.Agencia == "" || !cnab.TodosDigitos(header.Agencia) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: prefixo da agência (pos. 027-030) deve conter 4 dígitos.", numeroLinha))
	}
	header.AgenciaDV = cnab.CampoTrim(l, 31, 31)
	if header.AgenciaDV == "" {
		erros = append(erros, fmt.Sprintf("Linha %d: DV da agência (pos. 031) não informado.", numeroLinha))
	}
	header.Conta = cnab.CampoTrim(l, 32, 39)
	if header.Conta == "" || !cnab.TodosDigitos(header.Conta) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: conta corrente (pos. 032-039) deve conter 8 dígitos.", numeroLinha))
	}
	header.ContaDV = cnab.CampoTrim(l, 40, 40)
	if header.ContaDV == "" {
		erros = append(erros, fmt.Sprintf("Linha %d: DV da conta corrente (pos. 040) não informado.", numeroLinha))
	}

	if cnab.Campo(l, 41, 46) != "000000" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: complemento do registro (pos. 041-046) deve estar com '000000'.", numeroLinha))
	}

	header.NomeCedente = cnab.CampoTrim(l, 47, 76)
	if header.NomeCedente == "" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: nome do beneficiário (pos. 047-076) não pode ficar em branco.", numeroLinha))
	}

	bancoRaw := cnab.Campo(l, 77, 94)
	codigoBanco = cnab.Campo(l, 77, 79)
	if !cnab.TodosDigitos(codigoBanco) || codigoBanco == "" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: código do banco (pos. 077-079) deve conter 3 dígitos.", numeroLinha))
	}
	nomeBanco = cnab.NomeBanco(codigoBanco)
	if !strings.HasPrefix(strings.TrimSpace(bancoRaw), codigoBanco) {
		avisos = append(avisos, fmt.Sprintf(
			"Linha %d: campo 001BANCODOBRASIL (pos. 077-094) está com conteúdo inesperado.", numeroLinha))
	}

	dataGravacao := cnab.ParseDataDDMMAA(cnab.Campo(l, 95, 100))
	if dataGravacao == nil {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: data de gravação (pos. 095-100) deve estar em DDMMAA.", numeroLinha))
	}
	header.DataGravacao = cnab.FormatarDataBR(dataGravacao)

	header.SequencialRemessa = cnab.CampoTrim(l, 101, 107)
	if header.SequencialRemessa == "" || !cnab.TodosDigitos(header.SequencialRemessa) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: sequencial da remessa (pos. 101-107) deve conter dígitos.", numeroLinha))
	}

	header.Convenio = cnab.CampoTrim(l, 130, 136)
	if header.Convenio != "" && !cnab.TodosDigitos(header.Convenio) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: número do convênio líder (pos. 130-136) deve ser numérico.", numeroLinha))
	}

	if cnab.CampoTrim(l, 395, 400) != "000001" {
		avisos = append(avisos, fmt.Sprintf(
			"Linha %d: sequência do registro no header (pos. 395-400) deveria ser '000001'.", numeroLinha))
	}

	return header, codigoBanco, nomeBanco, erros, avisos
}

func validarDetalheBB(l string, numeroLinha int, header *domain.HeaderCnab400, codigoBancoHeader string) (domain.Titulo, []string, []string) {
	var erros, avisos []string

	bb := &domain.DadosTituloBB{
		Agencia:          cnab.CampoTrim(l, 18, 21),
		AgenciaDV:        cnab.CampoTrim(l, 22, 22),
		Conta:            cnab.CampoTrim(l, 23, 30),
		ContaDV:          cnab.CampoTrim(l, 31, 31),
		ConvenioCobranca: cnab.CampoTrim(l, 32, 38),
		VariacaoCarteira: cnab.CampoTrim(l, 92, 94),
		TipoCobranca:     strings.ToUpper(cnab.CampoTrim(l, 102, 106)),
		NumeroBanco:      cnab.CampoTrim(l, 140, 142),
		AgenciaCobradora: cnab.CampoTrim(l, 143, 146),
		Instrucao1:       cnab.CampoTrim(l, 157, 158),
		Instrucao2:       cnab.CampoTrim(l, 159, 160),
		Observacoes:      cnab.CampoTrim(l, 352, 391),
		IndicadorParcial: strings.ToUpper(cnab.CampoTrim(l, 394, 394)),
	}

	titulo := domain.Titulo{
		Linha:               numeroLinha,
		Sequencia:           cnab.CampoTrim(l, 395, 400),
		NossoNumero:         cnab.CampoTrim(l, 64, 80),
		Carteira:            cnab.CampoTrim(l, 107, 108),
		Comando:             cnab.CampoTrim(l, 109, 110),
		SeuNumero:           cnab.CampoTrim(l, 111, 120),
		NomeSacado:          cnab.CampoTrim(l, 235, 271),
		DocumentoSacado:     cnab.SomenteDigitos(cnab.Campo(l, 221, 234)),
		TipoInscricaoSacado: cnab.CampoTrim(l, 219, 220),
		EnderecoSacado:      cnab.CampoTrim(l, 275, 314),
		BairroSacado:        cnab.CampoTrim(l, 315, 326),
		CidadeSacado:        cnab.CampoTrim(l, 335, 349),
		UFSacado:            strings.ToUpper(cnab.CampoTrim(l, 350, 351)),
		CEPSacado:           cnab.CampoTrim(l, 327, 334),
		DiasProtesto:        cnab.CampoTrim(l, 392, 393),
		DetalheBB:           bb,
	}

	if len([]rune(l)) < 400 {
		erros = append(erros, fmt.Sprintf("Linha %d: registro possui menos de 400 caracteres.", numeroLinha))
	}
	if cnab.Campo(l, 1, 1) != "7" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: registro tipo 7 esperado, encontrado '%s'.", numeroLinha, cnab.Campo(l, 1, 1)))
	}

	bb.TipoInscricaoBeneficiario = cnab.CampoTrim(l, 2, 3)
	if !tiposInscricaoBenefBB[bb.TipoInscricaoBeneficiario] {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: tipo de inscrição do beneficiário (pos. 002-003) deve ser 01=CPF ou 02=CNPJ.", numeroLinha))
	}

	bb.DocumentoBeneficiario = cnab.SomenteDigitos(cnab.Campo(l, 4, 17))
	switch {
	case bb.DocumentoBeneficiario == "":
		erros = append(erros, fmt.Sprintf(
			"Linha %d: CPF/CNPJ do beneficiário (pos. 004-017) não informado.", numeroLinha))
	case bb.TipoInscricaoBeneficiario == "01" && len(bb.DocumentoBeneficiario) != 11:
		erros = append(erros, fmt.Sprintf("Linha %d: CPF do beneficiário deve ter 11 dígitos.", numeroLinha))
	case bb.TipoInscricaoBeneficiario == "02" && len(bb.DocumentoBeneficiario) != 14:
		erros = append(erros, fmt.Sprintf("Linha %d: CNPJ do beneficiário deve ter 14 dígitos.", numeroLinha))
	}

	if bb.Agencia == "" || !cnab.TodosDigitos(bb.Agencia) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: prefixo da agência do beneficiário (pos. 018-021) deve conter 4 dígitos.", numeroLinha))
	} else if header != nil && header.Agencia != "" && bb.Agencia != header.Agencia {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: prefixo da agência difere do header (%s x %s).", numeroLinha, bb.Agencia, header.Agencia))
	}

	if bb.Conta == "" || !cnab.TodosDigitos(bb.Conta) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: conta corrente do beneficiário (pos. 023-030) deve ser numérica.", numeroLinha))
	} else if header != nil && header.Conta != "" && bb.Conta != header.Conta {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: conta corrente difere da informada no header (%s x %s).", numeroLinha, bb.Conta, header.Conta))
	}

	switch {
	case titulo.Carteira == "":
		erros = append(erros, fmt.Sprintf(
			"Linha %d: carteira de cobrança (pos. 107-108) não informada.", numeroLinha))
	case !carteirasBB[titulo.Carteira]:
		erros = append(erros, fmt.Sprintf(
			"Linha %d: carteira de cobrança (pos. 107-108) '%s' não está entre as carteiras válidas do BB.", numeroLinha, titulo.Carteira))
	default:
		if validos := tiposCobrancaBB[titulo.Carteira]; !validos[bb.TipoCobranca] {
			erros = append(erros, fmt.Sprintf(
				"Linha %d: tipo de cobrança '%s' não é aceito para a carteira %s.", numeroLinha, bb.TipoCobranca, titulo.Carteira))
		}
	}

	if titulo.Comando == "" || !comandosBB[titulo.Comando] {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: comando (pos. 109-110) '%s' não é reconhecido pelo manual do BB.", numeroLinha, titulo.Comando))
	}

	dataVenc := cnab.ParseDataDDMMAA(cnab.Campo(l, 121, 126))
	titulo.DataVencimento = dataVenc
	titulo.DataVencimentoStr = cnab.FormatarDataBR(dataVenc)
	if dataVenc == nil {
		erros = append(erros, fmt.Sprintf("Linha %d: data de vencimento (pos. 121-126) inválida.", numeroLinha))
	}

	valorCentavos, ok := cnab.ParseValorCentavos(cnab.Campo(l, 127, 139))
	if !ok {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: valor do título (pos. 127-139) deve conter apenas dígitos.", numeroLinha))
	}
	titulo.ValorCentavos = valorCentavos
	titulo.ValorReais = decimal.New(valorCentavos, -2)

	switch {
	case bb.NumeroBanco == "":
		erros = append(erros, fmt.Sprintf("Linha %d: número do banco (pos. 140-142) não informado.", numeroLinha))
	case !cnab.TodosDigitos(bb.NumeroBanco):
		erros = append(erros, fmt.Sprintf("Linha %d: número do banco (pos. 140-142) deve ser numérico.", numeroLinha))
	case codigoBancoHeader != "" && bb.NumeroBanco != codigoBancoHeader:
		erros = append(erros, fmt.Sprintf(
			"Linha %d: número do banco (pos. 140-142) difere do header (%s x %s).", numeroLinha, bb.NumeroBanco, codigoBancoHeader))
	}

	if bb.AgenciaCobradora != "" && !cnab.TodosDigitos(bb.AgenciaCobradora) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: prefixo da agência cobradora (pos. 143-146) deve conter 4 dígitos.", numeroLinha))
	}

	if especie := cnab.CampoTrim(l, 148, 149); !especiesBB[especie] {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: espécie do título (pos. 148-149) '%s' não está na lista permitida.", numeroLinha, especie))
	}

	if aceite := strings.ToUpper(cnab.CampoTrim(l, 150, 150)); aceite != "" && aceite != "A" && aceite != "N" {
		erros = append(erros, fmt.Sprintf("Linha %d: aceite (pos. 150) deve ser 'A' ou 'N'.", numeroLinha))
	}

	dataEmissao := cnab.ParseDataDDMMAA(cnab.Campo(l, 151, 156))
	titulo.DataEmissaoStr = cnab.FormatarDataBR(dataEmissao)
	if dataEmissao == nil {
		erros = append(erros, fmt.Sprintf("Linha %d: data de emissão (pos. 151-156) inválida.", numeroLinha))
	} else if dataVenc != nil && dataEmissao.After(*dataVenc) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: data de emissão não pode ser posterior ao vencimento.", numeroLinha))
	}

	if bb.Instrucao1 != "" && !cnab.TodosDigitos(bb.Instrucao1) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: instrução codificada 1 (pos. 157-158) deve conter 2 dígitos.", numeroLinha))
	}
	if bb.Instrucao2 != "" && !cnab.TodosDigitos(bb.Instrucao2) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: instrução codificada 2 (pos. 159-160) deve conter 2 dígitos.", numeroLinha))
	}

	juros, ok := cnab.ParseValorCentavos(cnab.Campo(l, 161, 173))
	if !ok {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: juros de mora (pos. 161-173) deve conter apenas dígitos.", numeroLinha))
	}
	bb.JurosCentavos = juros
	bb.JurosReais = decimal.New(juros, -2)

	campoDescData := cnab.Campo(l, 174, 179)
	if titulo.Comando == "35" || titulo.Comando == "36" {
		// Nos comandos de multa as posições 174-192 carregam código, data e
		// valor da multa, não o desconto.
		codigoMulta := strings.TrimSpace(cnab.Campo(l, 174, 174))
		if codigoMulta != "1" && codigoMulta != "2" && codigoMulta != "9" {
			erros = append(erros, fmt.Sprintf(
				"Linha %d: código da multa (pos. 174) deve ser 1, 2 ou 9 quando o comando for %s.", numeroLinha, titulo.Comando))
		} else {
			bb.MultaCodigo = codigoMulta
		}
		dataMulta := cnab.ParseDataDDMMAA(cnab.Campo(l, 175, 180))
		if (codigoMulta == "1" || codigoMulta == "2") && dataMulta == nil {
			erros = append(erros, fmt.Sprintf(
				"Linha %d: data de início de multa (pos. 175-180) inválida.", numeroLinha))
		}
		bb.MultaDataStr = cnab.FormatarDataBR(dataMulta)
		valorMulta, ok := cnab.ParseValorCentavos(cnab.Campo(l, 181, 192))
		if !ok {
			erros = append(erros, fmt.Sprintf(
				"Linha %d: valor/percentual de multa (pos. 181-192) deve conter dígitos.", numeroLinha))
		}
		bb.MultaCentavos = valorMulta
		bb.MultaReais = decimal.New(valorMulta, -2)
	} else {
		descData := strings.TrimSpace(campoDescData)
		switch {
		case descData == "777777":
			bb.DescontoDataStr = "Por dia (777777)"
		case descData != "" && descData != "000000":
			dataDesc := cnab.ParseDataDDMMAA(campoDescData)
			if dataDesc == nil {
				erros = append(erros, fmt.Sprintf(
					"Linha %d: data limite para desconto (pos. 174-179) inválida.", numeroLinha))
			} else {
				if dataVenc != nil && dataDesc.After(*dataVenc) {
					erros = append(erros, fmt.Sprintf(
						"Linha %d: data limite para desconto maior que o vencimento.", numeroLinha))
				}
				bb.DescontoDataStr = cnab.FormatarDataBR(dataDesc)
			}
		}

		valorDesc, ok := cnab.ParseValorCentavos(cnab.Campo(l, 180, 192))
		if !ok {
			erros = append(erros, fmt.Sprintf(
				"Linha %d: valor do desconto (pos. 180-192) deve conter dígitos.", numeroLinha))
		}
		if titulo.Comando == "32" && valorDesc > 0 {
			erros = append(erros, fmt.Sprintf(
				"Linha %d: comando 32 (não conceder desconto) exige valor zerado no campo de desconto.", numeroLinha))
		}
		bb.DescontoCentavos = valorDesc
		bb.DescontoReais = decimal.New(valorDesc, -2)
	}

	valorIOF, ok := cnab.ParseValorCentavos(cnab.Campo(l, 193, 205))
	if !ok {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: valor do IOF (pos. 193-205) deve conter dígitos.", numeroLinha))
	}
	bb.IOFCentavos = valorIOF
	bb.IOFReais = decimal.New(valorIOF, -2)

	valorAbat, ok := cnab.ParseValorCentavos(cnab.Campo(l, 206, 218))
	if !ok {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: valor do abatimento (pos. 206-218) deve conter dígitos.", numeroLinha))
	}
	bb.AbatimentoCentavos = valorAbat
	bb.AbatimentoReais = decimal.New(valorAbat, -2)

	if !tiposInscricaoPagadorBB[titulo.TipoInscricaoSacado] {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: tipo de inscrição do pagador (pos. 219-220) inválido.", numeroLinha))
	}

	doc := titulo.DocumentoSacado
	switch {
	case (titulo.TipoInscricaoSacado == "01" || titulo.TipoInscricaoSacado == "02") && doc == "":
		erros = append(erros, fmt.Sprintf(
			"Linha %d: CPF/CNPJ do pagador obrigatório para o tipo informado.", numeroLinha))
	case titulo.TipoInscricaoSacado == "01" && doc != "" && len(doc) != 11:
		erros = append(erros, fmt.Sprintf("Linha %d: CPF do pagador deve ter 11 dígitos.", numeroLinha))
	case titulo.TipoInscricaoSacado == "02" && doc != "" && len(doc) != 14:
		erros = append(erros, fmt.Sprintf("Linha %d: CNPJ do pagador deve ter 14 dígitos.", numeroLinha))
	}

	if titulo.NomeSacado == "" {
		erros = append(erros, fmt.Sprintf("Linha %d: nome do pagador (pos. 235-271) não informado.", numeroLinha))
	}

	if cep := titulo.CEPSacado; cep != "" && (len(cep) != 8 || !cnab.TodosDigitos(cep) || cep == "00000000") {
		erros = append(erros, fmt.Sprintf("Linha %d: CEP do pagador (pos. 327-334) inválido.", numeroLinha))
	}

	if uf := titulo.UFSacado; uf != "" && !cnab.EstadosBR[uf] {
		erros = append(erros, fmt.Sprintf("Linha %d: UF do pagador (pos. 350-351) inválida.", numeroLinha))
	}

	if bb.IndicadorParcial != "" && !indicadorParcialBB[bb.IndicadorParcial] {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: indicador de recebimento parcial (pos. 394) deve ser 'S', 'N' ou branco.", numeroLinha))
	}

	if titulo.DiasProtesto != "" {
		if !cnab.TodosDigitos(titulo.DiasProtesto) {
			erros = append(erros, fmt.Sprintf(
				"Linha %d: dias para protesto/negativação (pos. 392-393) deve conter dígitos.", numeroLinha))
		} else if titulo.Comando == "01" && (bb.Instrucao1 == "06" || bb.Instrucao2 == "06") {
			dias, _ := strconv.Atoi(titulo.DiasProtesto)
			if !diasProtestoValidoBB(dias) {
				erros = append(erros, fmt.Sprintf(
					"Linha %d: número de dias para protesto fora da faixa permitida (06-29, 35 ou 40).", numeroLinha))
			}
		}
	}

	nn := titulo.NossoNumero
	switch {
	case nn != "" && !cnab.TodosDigitos(nn):
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Nosso Número (pos. 064-080) deve conter apenas dígitos.", numeroLinha))
	case (titulo.Carteira == "11" || titulo.Carteira == "31" || titulo.Carteira == "51") && strings.Trim(nn, "0") != "":
		erros = append(erros, fmt.Sprintf(
			"Linha %d: carteiras %s devem enviar Nosso Número zerado conforme o manual.", numeroLinha, titulo.Carteira))
	case titulo.Carteira == "12" || titulo.Carteira == "15" || titulo.Carteira == "17":
		if nn != "" && len(nn) != 17 {
			avisos = append(avisos, fmt.Sprintf(
				"Linha %d: Nosso Número para a carteira %s deveria conter 17 dígitos.", numeroLinha, titulo.Carteira))
		}
		if nn != "" && len(bb.ConvenioCobranca) == 7 && !strings.HasPrefix(nn, bb.ConvenioCobranca) {
			avisos = append(avisos, fmt.Sprintf(
				"Linha %d: primeiros dígitos do Nosso Número não coincidem com o convênio informado (%s).", numeroLinha, bb.ConvenioCobranca))
		}
	}

	return titulo, erros, avisos
}

// aplicarOpcionalBB interpreta um registro tipo 5 que complementa o detalhe
// imediatamente anterior. O serviço determina o conteúdo: 07 traz 2º/3º
// descontos, 01 e-mails do pagador, 03 o Seu Número estendido e 08 o agente
// negativador.
func aplicarOpcionalBB(l string, numeroLinha int, titulo *domain.Titulo) ([]string, []string) {
	var erros, avisos []string
	bb := titulo.DetalheBB

	switch cnab.CampoTrim(l, 2, 3) {
	case "07":
		data2 := cnab.ParseDataDDMMAA(cnab.Campo(l, 4, 9))
		valor2, ok2 := cnab.ParseValorCentavos(cnab.Campo(l, 10, 26))
		data3 := cnab.ParseDataDDMMAA(cnab.Campo(l, 27, 32))
		valor3, ok3 := cnab.ParseValorCentavos(cnab.Campo(l, 33, 49))

		if data2 != nil {
			bb.Desconto2DataStr = cnab.FormatarDataBR(data2)
		}
		if !ok2 {
			erros = append(erros, fmt.Sprintf(
				"Linha %d: valor do 2º desconto (tipo 5, pos. 010-026) deve conter dígitos.", numeroLinha))
		} else {
			bb.Desconto2Reais = decimal.New(valor2, -2)
		}

		if data3 != nil {
			bb.Desconto3DataStr = cnab.FormatarDataBR(data3)
		}
		if !ok3 {
			erros = append(erros, fmt.Sprintf(
				"Linha %d: valor do 3º desconto (tipo 5, pos. 033-049) deve conter dígitos.", numeroLinha))
		} else {
			bb.Desconto3Reais = decimal.New(valor3, -2)
		}

	case "01":
		raw := cnab.CampoTrim(l, 4, 139)
		if raw == "" {
			avisos = append(avisos, fmt.Sprintf(
				"Linha %d: registro opcional de e-mail informado sem endereços.", numeroLinha))
			break
		}
		for _, email := range strings.Split(raw, ";") {
			email = strings.TrimSpace(email)
			if email == "" {
				continue
			}
			bb.EmailsPagador = append(bb.EmailsPagador, email)
			if !strings.Contains(email, "@") {
				avisos = append(avisos, fmt.Sprintf(
					"Linha %d: endereço de e-mail '%s' não contém '@'.", numeroLinha, email))
			}
		}

	case "03":
		if sn := cnab.CampoTrim(l, 4, 18); sn != "" {
			bb.SeuNumero15 = sn
		}

	case "08":
		codigo := cnab.CampoTrim(l, 4, 5)
		if agente, ok := agentesNegativacaoBB[codigo]; ok {
			bb.AgenteNegativador = agente
		} else {
			erros = append(erros, fmt.Sprintf(
				"Linha %d: código do agente negativador '%s' inválido (esperado 10 ou 11).", numeroLinha, codigo))
		}

	default:
		avisos = append(avisos, fmt.Sprintf(
			"Linha %d: registro opcional tipo 5 com tipo de serviço '%s' ainda não é tratado pelo validador.", numeroLinha, cnab.CampoTrim(l, 2, 3)))
	}

	return erros, avisos
}

func validarTrailerBB(l string, numeroLinha, ultimoSeq int) ([]string, []string) {
	var erros, avisos []string
	if cnab.Campo(l, 1, 1) != "9" {
		erros = append(erros, fmt.Sprintf("Linha %d: trailer CNAB 400 deve começar com '9'.", numeroLinha))
	}
	if cnab.CampoTrim(l, 2, 394) != "" {
		avisos = append(avisos, fmt.Sprintf("Linha %d: trailer (pos. 002-394) deveria estar em branco.", numeroLinha))
	}
	seq := cnab.CampoTrim(l, 395, 400)
	if seq == "" || !cnab.TodosDigitos(seq) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: sequência do trailer (pos. 395-400) deve conter 6 dígitos.", numeroLinha))
	} else if n, _ := strconv.Atoi(seq); ultimoSeq != 0 && n != ultimoSeq {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: sequência do trailer é %s, mas o último registro anterior indicava %06d.", numeroLinha, seq, ultimoSeq))
	}
	return erros, avisos
}

func (validadorBB) Validar(linhas []string, _ domain.DadosConta) *domain.ResultadoCnab400 {
	res := novoResultado("001", cnab.NomeBanco("001"))

	var header *domain.HeaderCnab400
	codigoBanco := ""
	ultimoSeq := 0
	trailerEncontrado := false
	var acumulador acumuladorResumo
	var ultimoTitulo *domain.Titulo

	for i, linha := range linhas {
		numeroLinha := i + 1
		if strings.TrimSpace(linha) == "" {
			continue
		}
		l := strings.TrimRight(linha, "\r\n")
		tipo := cnab.Campo(l, 1, 1)

		seqRaw := cnab.CampoTrim(l, 395, 400)
		if seqRaw != "" && cnab.TodosDigitos(seqRaw) {
			seq, _ := strconv.Atoi(seqRaw)
			if ultimoSeq != 0 && seq != ultimoSeq+1 {
				res.ErrosRegistros = append(res.ErrosRegistros, fmt.Sprintf(
					"Linha %d: sequência do registro (pos. 395-400) fora da ordem esperada (esperado %06d).", numeroLinha, ultimoSeq+1))
			}
			ultimoSeq = seq
		} else {
			res.ErrosRegistros = append(res.ErrosRegistros, fmt.Sprintf(
				"Linha %d: sequência do registro (pos. 395-400) deve conter 6 dígitos.", numeroLinha))
		}

		switch tipo {
		case "0":
			if header != nil {
				res.ErrosHeader = append(res.ErrosHeader, "Foram encontrados dois registros header no arquivo.")
				continue
			}
			info, codigo, nome, erros, avisosHeader := validarHeaderBB(l, numeroLinha)
			header = info
			codigoBanco = codigo
			res.CodigoBanco = codigo
			res.NomeBanco = nome
			res.ErrosHeader = append(res.ErrosHeader, erros...)
			for _, a := range avisosHeader {
				aviso(res, domain.CategoriaHeader, a)
			}

		case "7":
			titulo, erros, avisosDetalhe := validarDetalheBB(l, numeroLinha, header, codigoBanco)
			res.ErrosRegistros = append(res.ErrosRegistros, erros...)
			for _, a := range avisosDetalhe {
				aviso(res, domain.CategoriaConvenio, a)
			}
			acumulador.somar(titulo.ValorCentavos, titulo.DataVencimento)
			acumulador.contarComando(titulo.Comando)
			acumulador.contarCarteira(titulo.Carteira)
			res.Titulos = append(res.Titulos, titulo)
			ultimoTitulo = &res.Titulos[len(res.Titulos)-1]

		case "5":
			acumulador.resumo.RegistrosOpcionais++
			if ultimoTitulo == nil {
				res.ErrosRegistros = append(res.ErrosRegistros, fmt.Sprintf(
					"Linha %d: registro opcional tipo 5 sem um registro 7 imediatamente anterior.", numeroLinha))
				continue
			}
			erros, avisosOpt := aplicarOpcionalBB(l, numeroLinha, ultimoTitulo)
			res.ErrosRegistros = append(res.ErrosRegistros, erros...)
			for _, a := range avisosOpt {
				aviso(res, domain.CategoriaOutros, a)
			}

		case "9":
			if trailerEncontrado {
				res.ErrosTrailer = append(res.ErrosTrailer, "Foram encontrados dois trailers no arquivo.")
				continue
			}
			trailerEncontrado = true
			erros, avisosTrailer := validarTrailerBB(l, numeroLinha, ultimoSeq)
			res.ErrosTrailer = append(res.ErrosTrailer, erros...)
			for _, a := range avisosTrailer {
				aviso(res, domain.CategoriaTrailer, a)
			}

		default:
			res.ErrosRegistros = append(res.ErrosRegistros, fmt.Sprintf(
				"Linha %d: tipo de registro '%s' não faz parte do CNAB 400 do BB.", numeroLinha, tipo))
		}
	}

	if header == nil {
		res.ErrosHeader = append(res.ErrosHeader, "Arquivo CNAB 400 sem registro header (tipo 0).")
	}
	if !trailerEncontrado {
		res.ErrosTrailer = append(res.ErrosTrailer, "Arquivo CNAB 400 sem registro trailer (tipo 9).")
	}
	if codigoBanco != "" && codigoBanco != "001" {
		res.ErrosHeader = append(res.ErrosHeader, fmt.Sprintf(
			"CNAB 400 implementado apenas para o Banco do Brasil (001). Arquivo indica banco %s.", codigoBanco))
	}

	res.Header = header
	res.Resumo = acumulador.fechar()
	return res
}
