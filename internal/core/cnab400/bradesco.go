// internal/core/cnab400/bradesco.go
package cnab400

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/LuisEduardoPedra/validaCnab/internal/core/cnab"
	"github.com/LuisEduardoPedra/validaCnab/internal/domain"
	"github.com/shopspring/decimal"
)

type validadorBradesco struct{}

func (validadorBradesco) Codigo() string { return "237" }

func validarHeaderBradesco(l string, numeroLinha int) (*domain.HeaderCnab400, []string, []string) {
	var erros, avisos []string
	header := &domain.HeaderCnab400{}

	if cnab.Campo(l, 2, 2) != "1" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: tipo de operação (pos. 002) deve ser '1' para remessa.", numeroLinha))
	}
	if tipo := strings.ToUpper(cnab.CampoTrim(l, 3, 9)); tipo != "REMESSA" && tipo != "TESTE" {
		avisos = append(avisos, fmt.Sprintf(
			"Linha %d: identificação do tipo de operação (pos. 003-009) não está como 'REMESSA' ou 'TESTE'.", numeroLinha))
	}
	if cnab.Campo(l, 10, 11) != "01" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: tipo de serviço (pos. 010-011) deve ser '01'.", numeroLinha))
	}
	if !strings.Contains(strings.ToUpper(cnab.CampoTrim(l, 12, 26)), "COBRANCA") {
		avisos = append(avisos, fmt.Sprintf(
			"Linha %d: literal de serviço 'COBRANCA' (pos. 012-026) não encontrado no header.", numeroLinha))
	}

	header.Agencia = cnab.CampoTrim(l, 27, 30)
	if header.Agencia != "" && !cnab.TodosDigitos(header.Agencia) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: agência (pos. 027-030) deve ser numérica.", numeroLinha))
	}
	header.Convenio = cnab.CampoTrim(l, 31, 37)
	if header.Convenio == "" || !cnab.TodosDigitos(header.Convenio) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: código do beneficiário (pos. 031-037) deve conter 7 dígitos.", numeroLinha))
	}

	header.NomeCedente = cnab.CampoTrim(l, 47, 76)
	if header.NomeCedente == "" {
		avisos = append(avisos, fmt.Sprintf(
			"Linha %d: nome da empresa (pos. 047-076) está em branco.", numeroLinha))
	}

	if banco := cnab.Campo(l, 77, 79); banco != "237" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: código do banco no header (pos. 077-079) deve ser 237, encontrado '%s'.", numeroLinha, banco))
	}
	if !strings.Contains(strings.ToUpper(cnab.CampoTrim(l, 80, 94)), "BRADESCO") {
		avisos = append(avisos, fmt.Sprintf(
			"Linha %d: nome do banco (pos. 080-094) não contém 'BRADESCO'.", numeroLinha))
	}

	dataGravacao := cnab.ParseDataDDMMAA(cnab.Campo(l, 95, 100))
	if dataGravacao == nil {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: data de gravação (pos. 095-100) inválida.", numeroLinha))
	}
	header.DataGravacao = cnab.FormatarDataBR(dataGravacao)

	header.SequencialRemessa = cnab.CampoTrim(l, 390, 394)
	if header.SequencialRemessa != "" && !cnab.TodosDigitos(header.SequencialRemessa) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: número sequencial da remessa (pos. 390-394) deve ser numérico.", numeroLinha))
	}

	return header, erros, avisos
}

func validarDetalheBradesco(l string, numeroLinha int) (domain.Titulo, []string) {
	var erros []string

	titulo := domain.Titulo{
		Linha:           numeroLinha,
		Sequencia:       cnab.CampoTrim(l, 395, 400),
		NossoNumero:     cnab.CampoTrim(l, 63, 74),
		SeuNumero:       cnab.CampoTrim(l, 117, 126),
		Comando:         cnab.CampoTrim(l, 109, 110),
		DocumentoSacado: cnab.SomenteDigitos(cnab.Campo(l, 301, 314)),
		NomeSacado:      cnab.CampoTrim(l, 325, 354),
		EnderecoSacado:  cnab.CampoTrim(l, 355, 394),
	}

	if nn := titulo.NossoNumero; nn != "" && !cnab.TodosDigitos(nn) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Nosso Número (pos. 063-074) deve conter apenas dígitos.", numeroLinha))
	}

	dataVenc := cnab.ParseDataDDMMAA(cnab.Campo(l, 147, 152))
	titulo.DataVencimento = dataVenc
	titulo.DataVencimentoStr = cnab.FormatarDataBR(dataVenc)
	if dataVenc == nil {
		erros = append(erros, fmt.Sprintf("Linha %d: data de vencimento (pos. 147-152) inválida.", numeroLinha))
	}

	valorCentavos, ok := cnab.ParseValorCentavos(cnab.Campo(l, 153, 165))
	if !ok {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: valor do título (pos. 153-165) deve conter apenas dígitos.", numeroLinha))
	}
	titulo.ValorCentavos = valorCentavos
	titulo.ValorReais = decimal.New(valorCentavos, -2)

	if titulo.NomeSacado == "" {
		erros = append(erros, fmt.Sprintf("Linha %d: nome do pagador (pos. 325-354) não informado.", numeroLinha))
	}
	if doc := cnab.CampoTrim(l, 301, 314); doc != "" && !cnab.TodosDigitos(doc) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: documento do pagador (pos. 301-314) deve ser numérico.", numeroLinha))
	}

	return titulo, erros
}

func (validadorBradesco) Validar(linhas []string, _ domain.DadosConta) *domain.ResultadoCnab400 {
	res := novoResultado("237", cnab.NomeBanco("237"))

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
				res.ErrosHeader = append(res.ErrosHeader, "Foram encontrados dois registros header no arquivo.")
				continue
			}
			info, erros, avisosHeader := validarHeaderBradesco(l, numeroLinha)
			header = info
			res.ErrosHeader = append(res.ErrosHeader, erros...)
			for _, a := range avisosHeader {
				aviso(res, domain.CategoriaHeader, a)
			}

		case "1":
			titulo, erros := validarDetalheBradesco(l, numeroLinha)
			res.ErrosRegistros = append(res.ErrosRegistros, erros...)
			acumulador.somar(titulo.ValorCentavos, titulo.DataVencimento)
			acumulador.contarComando(titulo.Comando)
			res.Titulos = append(res.Titulos, titulo)
			ultimoTitulo = &res.Titulos[len(res.Titulos)-1]

		case "2", "5", "7":
			if ultimoTitulo == nil {
				res.ErrosRegistros = append(res.ErrosRegistros, fmt.Sprintf(
					"Linha %d: registro complementar (tipo %s) sem um detalhe anterior.", numeroLinha, tipo))
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
			if banco := cnab.CampoTrim(l, 77, 79); banco != "" && banco != "237" {
				res.ErrosTrailer = append(res.ErrosTrailer, fmt.Sprintf(
					"Linha %d: código do banco no trailer difere de 237 ('%s').", numeroLinha, banco))
			}

		default:
			res.ErrosRegistros = append(res.ErrosRegistros, fmt.Sprintf(
				"Linha %d: tipo de registro '%s' não faz parte do CNAB 400 do Bradesco.", numeroLinha, tipo))
		}
	}

	if header == nil {
		res.ErrosHeader = append(res.ErrosHeader, "Arquivo CNAB 400 sem registro header (tipo 0).")
	}
	if !trailerEncontrado {
		res.ErrosTrailer = append(res.ErrosTrailer, "Arquivo CNAB 400 sem registro trailer (tipo 9).")
	}

	res.Header = header
	res.Resumo = acumulador.fechar()
	return res
}
