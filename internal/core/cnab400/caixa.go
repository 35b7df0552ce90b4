// internal/core/cnab400/caixa.go
package cnab400

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/LuisEduardoPedra/validaCnab/internal/core/cnab"
	"github.com/LuisEduardoPedra/validaCnab/internal/domain"
	"github.com/shopspring/decimal"
)

type validadorCaixa struct{}

func (validadorCaixa) Codigo() string { return "104" }

func validarHeaderCaixa(l, seqRaw string) (*domain.HeaderCnab400, []string, []string) {
	var erros, avisos []string
	header := &domain.HeaderCnab400{}

	if cnab.Campo(l, 2, 2) != "1" {
		erros = append(erros, "Header: identificação da remessa (pos. 002) deve ser '1'.")
	}
	if literal := strings.ToUpper(cnab.CampoTrim(l, 3, 9)); literal != "REMESSA" && literal != "TESTE" {
		avisos = append(avisos, "Header: literal de remessa (pos. 003-009) deveria ser 'REMESSA'.")
	}
	if cnab.Campo(l, 10, 11) != "01" {
		erros = append(erros, "Header: código do serviço (pos. 010-011) deve ser '01'.")
	}
	if strings.ToUpper(cnab.CampoTrim(l, 12, 26)) != "COBRANCA" {
		avisos = append(avisos, "Header: literal do serviço (pos. 012-026) deveria ser 'COBRANCA'.")
	}

	header.Agencia = cnab.CampoTrim(l, 27, 30)
	if !cnab.TodosDigitos(header.Agencia) || header.Agencia == "" {
		erros = append(erros, "Header: código da agência (pos. 027-030) deve ser numérico.")
	}
	// O código do beneficiário faz o papel da conta no confronto de dados.
	header.Conta = cnab.CampoTrim(l, 31, 37)
	if !cnab.TodosDigitos(header.Conta) || header.Conta == "" {
		erros = append(erros, "Header: código do beneficiário (pos. 031-037) deve ser numérico.")
	}

	header.NomeCedente = cnab.CampoTrim(l, 47, 76)
	if header.NomeCedente == "" {
		avisos = append(avisos, "Header: nome da empresa (pos. 047-076) não informado.")
	}

	if cnab.Campo(l, 77, 79) != "104" {
		erros = append(erros, "Header: código do banco (pos. 077-079) deve ser 104.")
	}
	if !strings.Contains(strings.ToUpper(cnab.CampoTrim(l, 80, 94)), "CAIXA") {
		avisos = append(avisos, "Header: nome do banco (pos. 080-094) deveria mencionar 'CAIXA'.")
	}

	dataGeracao := cnab.ParseDataDDMMAA(cnab.Campo(l, 95, 100))
	if dataGeracao == nil {
		erros = append(erros, "Header: data de geração (pos. 095-100) inválida.")
	}
	header.DataGravacao = cnab.FormatarDataBR(dataGeracao)

	if versao := cnab.CampoTrim(l, 101, 103); !cnab.TodosDigitos(versao) || versao == "" {
		avisos = append(avisos, "Header: versão do layout (pos. 101-103) não informada.")
	}
	if sequencial := cnab.CampoTrim(l, 390, 394); sequencial == "" || !cnab.TodosDigitos(sequencial) {
		erros = append(erros, "Header: número sequencial do arquivo (pos. 390-394) deve ser numérico.")
	}
	header.SequencialRemessa = seqRaw

	return header, erros, avisos
}

func validarDetalheCaixa(l string, numeroLinha int) (domain.Titulo, []string) {
	var erros []string

	titulo := domain.Titulo{
		Linha:           numeroLinha,
		Sequencia:       cnab.CampoTrim(l, 395, 400),
		NossoNumero:     cnab.CampoTrim(l, 63, 72),
		SeuNumero:       cnab.CampoTrim(l, 111, 120),
		Carteira:        cnab.CampoTrim(l, 107, 108),
		Comando:         cnab.CampoTrim(l, 109, 110),
		DocumentoSacado: cnab.CampoTrim(l, 221, 234),
		NomeSacado:      cnab.CampoTrim(l, 234, 253),
		EnderecoSacado:  cnab.CampoTrim(l, 275, 314),
		CEPSacado:       cnab.CampoTrim(l, 327, 334),
		DiasProtesto:    cnab.CampoTrim(l, 275, 276),
	}

	if banco := cnab.Campo(l, 78, 80); strings.TrimSpace(banco) != "" && banco != "104" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: código do banco (pos. 078-080) deve ser 104.", numeroLinha))
	}
	if nn := titulo.NossoNumero; nn != "" && !cnab.TodosDigitos(nn) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Nosso Número (pos. 063-072) deve conter apenas dígitos.", numeroLinha))
	}
	if c := titulo.Comando; c != "" && !cnab.TodosDigitos(c) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: código de comando (pos. 109-110) deve conter 2 dígitos.", numeroLinha))
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

	if ag := cnab.CampoTrim(l, 143, 146); ag != "" && !cnab.TodosDigitos(ag) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: agência cobradora (pos. 143-146) deve ser numérica.", numeroLinha))
	}
	if titulo.NomeSacado == "" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: nome do pagador (pos. 234-253) não informado.", numeroLinha))
	}
	if doc := titulo.DocumentoSacado; doc != "" && !cnab.TodosDigitos(doc) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: documento do pagador (pos. 221-234) deve ser numérico.", numeroLinha))
	}
	if cep := titulo.CEPSacado; cep != "" && (len(cep) != 8 || !cnab.TodosDigitos(cep)) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: CEP do pagador (pos. 327-334) deve conter 8 dígitos.", numeroLinha))
	}

	return titulo, erros
}

func (validadorCaixa) Validar(linhas []string, _ domain.DadosConta) *domain.ResultadoCnab400 {
	res := novoResultado("104", cnab.NomeBanco("104"))

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
				res.ErrosHeader = append(res.ErrosHeader, "Foi encontrado mais de um header no arquivo.")
				continue
			}
			info, erros, avisosHeader := validarHeaderCaixa(l, seqRaw)
			header = info
			res.ErrosHeader = append(res.ErrosHeader, erros...)
			for _, a := range avisosHeader {
				aviso(res, domain.CategoriaHeader, a)
			}

		case "1":
			titulo, erros := validarDetalheCaixa(l, numeroLinha)
			res.ErrosRegistros = append(res.ErrosRegistros, erros...)
			acumulador.somar(titulo.ValorCentavos, titulo.DataVencimento)
			acumulador.contarComando(titulo.Comando)
			acumulador.contarCarteira(titulo.Carteira)
			res.Titulos = append(res.Titulos, titulo)
			ultimoTitulo = &res.Titulos[len(res.Titulos)-1]

		case "2", "7", "8":
			if ultimoTitulo == nil {
				res.ErrosRegistros = append(res.ErrosRegistros, fmt.Sprintf(
					"Linha %d: registro opcional tipo %s sem detalhe anterior.", numeroLinha, tipo))
				continue
			}
			if texto := cnab.CampoTrim(l, 2, 394); texto != "" {
				ultimoTitulo.Mensagens = append(ultimoTitulo.Mensagens, fmt.Sprintf("Tipo %s: %s", tipo, texto))
			}

		case "9":
			if trailerEncontrado {
				res.ErrosTrailer = append(res.ErrosTrailer, "Foram encontrados dois trailers no arquivo.")
				continue
			}
			trailerEncontrado = true
			if cnab.Campo(l, 2, 2) != "1" {
				res.ErrosTrailer = append(res.ErrosTrailer, "Trailer: identificação da remessa deve ser '1'.")
			}
			if cnab.Campo(l, 3, 5) != "104" {
				res.ErrosTrailer = append(res.ErrosTrailer, "Trailer: código do banco deve ser 104.")
			}

		default:
			res.ErrosRegistros = append(res.ErrosRegistros, fmt.Sprintf(
				"Linha %d: tipo de registro '%s' não reconhecido para o layout da Caixa.", numeroLinha, tipo))
		}
	}

	if header == nil {
		res.ErrosHeader = append(res.ErrosHeader, "Arquivo CNAB 400 da Caixa sem header (tipo 0).")
	}
	if !trailerEncontrado {
		res.ErrosTrailer = append(res.ErrosTrailer, "Arquivo CNAB 400 da Caixa sem trailer (tipo 9).")
	}

	res.Header = header
	res.Resumo = acumulador.fechar()
	return res
}
