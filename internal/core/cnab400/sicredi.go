// internal/core/cnab400/sicredi.go
package cnab400

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/LuisEduardoPedra/validaCnab/internal/core/cnab"
	"github.com/LuisEduardoPedra/validaCnab/internal/domain"
	"github.com/shopspring/decimal"
)

// Códigos de um caractere do manual de cobrança Sicredi.
var (
	tiposCobrancaSicredi = map[string]bool{"A": true, "C": true}
	tiposCarteiraSicredi = map[string]bool{"A": true, "C": true}
	tiposMoedaSicredi    = map[string]bool{"A": true}
	tiposDescontoSicredi = map[string]bool{"A": true, "B": true}
	tiposJurosSicredi    = map[string]bool{"A": true, "B": true}
	simNaoSicredi        = map[string]bool{"S": true, "N": true}
	impressaoSicredi     = map[string]bool{"A": true, "B": true}

	especiesSicredi = map[string]bool{
		"A": true, "B": true, "C": true, "D": true, "E": true,
		"G": true, "H": true, "I": true, "J": true, "K": true, "O": true,
	}
)

type validadorSicredi struct{}

func (validadorSicredi) Codigo() string { return "748" }

func validarHeaderSicredi(l string) (*domain.HeaderCnab400, []string, []string) {
	var erros, avisos []string
	header := &domain.HeaderCnab400{}

	if cnab.Campo(l, 2, 2) != "1" {
		erros = append(erros, "Header: identificação da remessa (pos. 002) deve ser '1'.")
	}
	if strings.ToUpper(cnab.CampoTrim(l, 3, 9)) != "REMESSA" {
		avisos = append(avisos, "Header: literal de remessa (pos. 003-009) deveria ser 'REMESSA'.")
	}
	if cnab.Campo(l, 10, 11) != "01" {
		erros = append(erros, "Header: código do serviço (pos. 010-011) deve ser '01'.")
	}
	if strings.ToUpper(cnab.CampoTrim(l, 12, 19)) != "COBRANCA" {
		avisos = append(avisos, "Header: literal de serviço (pos. 012-019) deveria ser 'COBRANCA'.")
	}

	// No Sicredi o código do beneficiário ocupa o lugar da conta.
	header.Conta = cnab.CampoTrim(l, 27, 31)
	if !cnab.TodosDigitos(header.Conta) {
		erros = append(erros, "Header: código do beneficiário (pos. 027-031) deve ser numérico.")
	}
	header.Documento = cnab.CampoTrim(l, 32, 45)
	if !cnab.TodosDigitos(header.Documento) {
		erros = append(erros, "Header: CPF/CNPJ do beneficiário (pos. 032-045) deve ser numérico.")
	}

	if cnab.Campo(l, 77, 79) != "748" {
		erros = append(erros, "Header: código do banco (pos. 077-079) deve ser 748.")
	}
	if !strings.Contains(strings.ToUpper(cnab.CampoTrim(l, 80, 94)), "SICREDI") {
		avisos = append(avisos, "Header: literal do banco (pos. 080-094) deveria mencionar 'SICREDI'.")
	}

	dataGeracao := cnab.ParseDataAAAAMMDD(cnab.CampoTrim(l, 95, 102))
	if dataGeracao == nil {
		erros = append(erros, "Header: data de geração (pos. 095-102) inválida (AAAAMMDD).")
	}
	header.DataGravacao = cnab.FormatarDataBR(dataGeracao)

	header.SequencialRemessa = cnab.CampoTrim(l, 111, 117)
	if header.SequencialRemessa == "" || !cnab.TodosDigitos(header.SequencialRemessa) {
		erros = append(erros, "Header: número da remessa (pos. 111-117) deve ser numérico.")
	}

	return header, erros, avisos
}

func validarDetalheSicredi(l string, numeroLinha int) (domain.Titulo, []string, []string) {
	var erros, avisos []string

	sc := &domain.DadosTituloSicredi{
		TipoCobranca:         strings.ToUpper(cnab.CampoTrim(l, 2, 2)),
		TipoCarteira:         strings.ToUpper(cnab.CampoTrim(l, 3, 3)),
		TipoImpressao:        strings.ToUpper(cnab.CampoTrim(l, 4, 4)),
		TipoBoleto:           strings.ToUpper(cnab.CampoTrim(l, 6, 6)),
		Postagem:             strings.ToUpper(cnab.CampoTrim(l, 72, 72)),
		ImpressaoBoleto:      strings.ToUpper(cnab.CampoTrim(l, 74, 74)),
		InstrucaoProtesto:    cnab.CampoTrim(l, 157, 158),
		DiasProtesto:         cnab.CampoTrim(l, 159, 160),
		InstrucaoNegativacao: cnab.CampoTrim(l, 193, 194),
		DiasNegativacao:      cnab.CampoTrim(l, 195, 196),
		CodigoPagadorCliente: cnab.CampoTrim(l, 335, 339),
		BeneficiarioFinalDoc: cnab.CampoTrim(l, 340, 353),
		BeneficiarioFinal:    cnab.CampoTrim(l, 354, 394),
	}

	titulo := domain.Titulo{
		Linha:           numeroLinha,
		Sequencia:       cnab.CampoTrim(l, 395, 400),
		NossoNumero:     cnab.CampoTrim(l, 48, 56),
		SeuNumero:       cnab.CampoTrim(l, 111, 120),
		Carteira:        sc.TipoCarteira,
		Comando:         sc.InstrucaoProtesto,
		DocumentoSacado: cnab.CampoTrim(l, 221, 234),
		NomeSacado:      cnab.CampoTrim(l, 235, 274),
		EnderecoSacado:  cnab.CampoTrim(l, 275, 314),
		CEPSacado:       cnab.CampoTrim(l, 327, 334),
		DetalheSicredi:  sc,
	}

	if !tiposCobrancaSicredi[sc.TipoCobranca] {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: tipo de cobrança (pos. 002) inválido para Sicredi.", numeroLinha))
	}
	if !tiposCarteiraSicredi[sc.TipoCarteira] {
		erros = append(erros, fmt.Sprintf("Linha %d: tipo de carteira (pos. 003) inválido.", numeroLinha))
	}
	if !impressaoSicredi[sc.TipoImpressao] {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: tipo de impressão (pos. 004) deve ser 'A' ou 'B'.", numeroLinha))
	}
	if moeda := strings.ToUpper(cnab.CampoTrim(l, 17, 17)); !tiposMoedaSicredi[moeda] {
		erros = append(erros, fmt.Sprintf("Linha %d: tipo de moeda (pos. 017) inválido.", numeroLinha))
	}
	if desc := strings.ToUpper(cnab.CampoTrim(l, 18, 18)); !tiposDescontoSicredi[desc] {
		erros = append(erros, fmt.Sprintf("Linha %d: tipo de desconto (pos. 018) inválido.", numeroLinha))
	}
	if juros := strings.ToUpper(cnab.CampoTrim(l, 19, 19)); !tiposJurosSicredi[juros] {
		erros = append(erros, fmt.Sprintf("Linha %d: tipo de juros (pos. 019) inválido.", numeroLinha))
	}

	if nn := titulo.NossoNumero; nn != "" && !cnab.TodosDigitos(nn) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Nosso Número (pos. 048-056) deve conter apenas dígitos.", numeroLinha))
	}
	if dataInstrucao := cnab.CampoTrim(l, 63, 70); dataInstrucao != "" && len(dataInstrucao) != 8 {
		avisos = append(avisos, fmt.Sprintf(
			"Linha %d: data de instrução (pos. 063-070) deveria estar em AAAAMMDD.", numeroLinha))
	}
	if sc.Postagem != "" && !simNaoSicredi[sc.Postagem] {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: postagem (pos. 072) deve ser 'S' ou 'N'.", numeroLinha))
	}
	if sc.ImpressaoBoleto != "" && !impressaoSicredi[sc.ImpressaoBoleto] {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: impressão do boleto (pos. 074) deve ser 'A' ou 'B'.", numeroLinha))
	}
	if titulo.SeuNumero == "" {
		erros = append(erros, fmt.Sprintf("Linha %d: seu número (pos. 111-120) não informado.", numeroLinha))
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

	if especie := strings.ToUpper(cnab.CampoTrim(l, 149, 149)); especie != "" && !especiesSicredi[especie] {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: espécie de documento (pos. 149) inválida.", numeroLinha))
	}
	if aceite := strings.ToUpper(cnab.CampoTrim(l, 150, 150)); aceite != "" && !simNaoSicredi[aceite] {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: campo Aceite (pos. 150) deve ser 'S' ou 'N'.", numeroLinha))
	}

	dataEmissao := cnab.ParseDataDDMMAA(cnab.Campo(l, 151, 156))
	titulo.DataEmissaoStr = cnab.FormatarDataBR(dataEmissao)
	if dataEmissao == nil {
		erros = append(erros, fmt.Sprintf("Linha %d: data de emissão (pos. 151-156) inválida.", numeroLinha))
	}

	if sc.DiasProtesto != "" && !cnab.TodosDigitos(sc.DiasProtesto) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: dias para protesto (pos. 159-160) deve ser numérico.", numeroLinha))
	}
	if _, ok := cnab.ParseValorCentavos(cnab.Campo(l, 161, 173)); !ok {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: juros (pos. 161-173) deve conter apenas dígitos.", numeroLinha))
	}
	if dataDesc := cnab.CampoTrim(l, 174, 179); dataDesc != "" && dataDesc != "000000" {
		if cnab.ParseDataDDMMAA(dataDesc) == nil {
			erros = append(erros, fmt.Sprintf(
				"Linha %d: data limite para desconto (pos. 174-179) inválida.", numeroLinha))
		}
	}
	if _, ok := cnab.ParseValorCentavos(cnab.Campo(l, 180, 192)); !ok {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: valor do desconto (pos. 180-192) deve conter dígitos.", numeroLinha))
	}
	if sc.DiasNegativacao != "" && !cnab.TodosDigitos(sc.DiasNegativacao) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: dias para negativação (pos. 195-196) deve ser numérico.", numeroLinha))
	}
	if _, ok := cnab.ParseValorCentavos(cnab.Campo(l, 206, 218)); !ok {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: valor do abatimento (pos. 206-218) deve conter dígitos.", numeroLinha))
	}

	titulo.TipoInscricaoSacado = cnab.CampoTrim(l, 219, 219)
	if titulo.TipoInscricaoSacado != "1" && titulo.TipoInscricaoSacado != "2" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: tipo de inscrição do pagador (pos. 219) deve ser 1 ou 2.", numeroLinha))
	}
	if !cnab.TodosDigitos(titulo.DocumentoSacado) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: CPF/CNPJ do pagador (pos. 221-234) deve ser numérico.", numeroLinha))
	}
	if titulo.NomeSacado == "" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: nome do pagador (pos. 235-274) não informado.", numeroLinha))
	}
	if cep := titulo.CEPSacado; cep != "" && (len(cep) != 8 || !cnab.TodosDigitos(cep)) {
		erros = append(erros, fmt.Sprintf("Linha %d: CEP do pagador (pos. 327-334) inválido.", numeroLinha))
	}

	return titulo, erros, avisos
}

func (validadorSicredi) Validar(linhas []string, _ domain.DadosConta) *domain.ResultadoCnab400 {
	res := novoResultado("748", cnab.NomeBanco("748"))

	var header *domain.HeaderCnab400
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
		if len([]rune(l)) < 400 {
			res.ErrosRegistros = append(res.ErrosRegistros, fmt.Sprintf(
				"Linha %d: registro com menos de 400 caracteres.", numeroLinha))
			continue
		}

		seqRaw := cnab.CampoTrim(l, 395, 400)
		if seqRaw != "" && cnab.TodosDigitos(seqRaw) {
			seq, _ := strconv.Atoi(seqRaw)
			if ultimoSeq != 0 && seq != ultimoSeq+1 {
				res.ErrosRegistros = append(res.ErrosRegistros, fmt.Sprintf(
					"Linha %d: sequência do registro %06d não segue a ordem esperada (%06d).", numeroLinha, seq, ultimoSeq+1))
			}
			ultimoSeq = seq
		} else {
			res.ErrosRegistros = append(res.ErrosRegistros, fmt.Sprintf(
				"Linha %d: sequência (pos. 395-400) inválida ou vazia.", numeroLinha))
		}

		tipo := cnab.Campo(l, 1, 1)
		switch tipo {
		case "0":
			if header != nil {
				res.ErrosHeader = append(res.ErrosHeader, "Foi encontrado mais de um registro header no arquivo CNAB 400.")
				continue
			}
			info, erros, avisosHeader := validarHeaderSicredi(l)
			header = info
			res.ErrosHeader = append(res.ErrosHeader, erros...)
			for _, a := range avisosHeader {
				aviso(res, domain.CategoriaHeader, a)
			}

		case "1":
			titulo, erros, avisosDetalhe := validarDetalheSicredi(l, numeroLinha)
			res.ErrosRegistros = append(res.ErrosRegistros, erros...)
			for _, a := range avisosDetalhe {
				aviso(res, domain.CategoriaOutros, a)
			}
			acumulador.somar(titulo.ValorCentavos, titulo.DataVencimento)
			acumulador.contarComando(titulo.Comando)
			acumulador.contarCarteira(titulo.Carteira)
			res.Titulos = append(res.Titulos, titulo)
			ultimoTitulo = &res.Titulos[len(res.Titulos)-1]

		case "2", "5", "6", "7", "8":
			if ultimoTitulo == nil {
				res.ErrosRegistros = append(res.ErrosRegistros, fmt.Sprintf(
					"Linha %d: registro tipo %s encontrado antes de um detalhe (tipo 1).", numeroLinha, tipo))
				continue
			}
			if texto := cnab.CampoTrim(l, 2, 394); texto != "" {
				ultimoTitulo.Mensagens = append(ultimoTitulo.Mensagens, fmt.Sprintf("Tipo %s: %s", tipo, texto))
			}

		case "9":
			trailerEncontrado = true
			if cnab.Campo(l, 2, 2) != "1" {
				res.ErrosTrailer = append(res.ErrosTrailer, "Trailer: identificação do arquivo (pos. 002) deve ser '1'.")
			}
			if cnab.Campo(l, 3, 5) != "748" {
				res.ErrosTrailer = append(res.ErrosTrailer, "Trailer: código do banco (pos. 003-005) deve ser 748.")
			}

		default:
			res.ErrosRegistros = append(res.ErrosRegistros, fmt.Sprintf(
				"Linha %d: tipo de registro '%s' não faz parte do layout CNAB 400 do Sicredi.", numeroLinha, tipo))
		}
	}

	if header == nil {
		res.ErrosHeader = append(res.ErrosHeader, "Arquivo CNAB 400 do Sicredi sem registro header (tipo 0).")
	}
	if !trailerEncontrado {
		res.ErrosTrailer = append(res.ErrosTrailer, "Arquivo CNAB 400 do Sicredi sem registro trailer (tipo 9).")
	}

	res.Header = header
	res.Resumo = acumulador.fechar()
	return res
}
