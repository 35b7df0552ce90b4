// internal/core/cnab400/itau.go
package cnab400

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/LuisEduardoPedra/validaCnab/internal/core/cnab"
	"github.com/LuisEduardoPedra/validaCnab/internal/domain"
	"github.com/shopspring/decimal"
)

// Tabela de espécies do manual de cobrança Itaú. Espécie fora da tabela gera
// aviso, não erro: o banco aceita códigos novos sem republicar o manual.
var especiesItau = map[string]bool{
	"01": true, "02": true, "03": true, "04": true, "05": true,
	"06": true, "07": true, "08": true, "09": true, "13": true,
	"15": true, "16": true, "17": true, "99": true,
}

var tiposInscricaoItau = map[string]bool{"01": true, "02": true}

type validadorItau struct{}

func (validadorItau) Codigo() string { return "341" }

func validarHeaderItau(l string, numeroLinha int) (*domain.HeaderCnab400, []string, []string) {
	var erros, avisos []string
	header := &domain.HeaderCnab400{}

	if strings.ToUpper(cnab.CampoTrim(l, 3, 9)) != "REMESSA" {
		avisos = append(avisos, fmt.Sprintf(
			"Linha %d: literal 'REMESSA' (pos. 003-009) não encontrado no header.", numeroLinha))
	}
	if !strings.Contains(strings.ToUpper(cnab.CampoTrim(l, 12, 26)), "COBRANCA") {
		avisos = append(avisos, fmt.Sprintf(
			"Linha %d: literal de serviço 'COBRANCA' (pos. 012-026) não encontrado no header.", numeroLinha))
	}

	header.Agencia = cnab.CampoTrim(l, 27, 30)
	if header.Agencia == "" || !cnab.TodosDigitos(header.Agencia) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: agência (pos. 027-030) deve conter 4 dígitos.", numeroLinha))
	}
	header.Conta = cnab.CampoTrim(l, 33, 37)
	if header.Conta == "" || !cnab.TodosDigitos(header.Conta) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: conta (pos. 033-037) deve conter 5 dígitos.", numeroLinha))
	}
	header.ContaDV = cnab.CampoTrim(l, 38, 38)
	if header.ContaDV == "" {
		erros = append(erros, fmt.Sprintf("Linha %d: DAC da conta (pos. 038) não informado.", numeroLinha))
	}

	header.NomeCedente = cnab.CampoTrim(l, 47, 76)
	if header.NomeCedente == "" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: nome da empresa (pos. 047-076) não pode ficar em branco.", numeroLinha))
	}

	if banco := cnab.Campo(l, 77, 79); banco != "341" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: código do banco no header (pos. 077-079) deve ser 341, encontrado '%s'.", numeroLinha, banco))
	}

	dataGravacao := cnab.ParseDataDDMMAA(cnab.Campo(l, 95, 100))
	if dataGravacao == nil {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: data de geração (pos. 095-100) inválida.", numeroLinha))
	}
	header.DataGravacao = cnab.FormatarDataBR(dataGravacao)

	return header, erros, avisos
}

func validarDetalheItau(l string, numeroLinha int) (domain.Titulo, []string, []string) {
	var erros, avisos []string

	it := &domain.DadosTituloItau{
		Instrucao1:      cnab.CampoTrim(l, 157, 158),
		Instrucao2:      cnab.CampoTrim(l, 159, 160),
		SacadorAvalista: cnab.CampoTrim(l, 352, 381),
		DataMora:        cnab.CampoTrim(l, 386, 391),
		Prazo:           cnab.CampoTrim(l, 392, 393),
	}

	titulo := domain.Titulo{
		Linha:               numeroLinha,
		Sequencia:           cnab.CampoTrim(l, 395, 400),
		NossoNumero:         cnab.CampoTrim(l, 63, 70),
		Carteira:            cnab.CampoTrim(l, 108, 108),
		Comando:             cnab.CampoTrim(l, 109, 110),
		NumeroDocumento:     cnab.CampoTrim(l, 111, 120),
		TipoInscricaoSacado: cnab.CampoTrim(l, 219, 220),
		DocumentoSacado:     cnab.SomenteDigitos(cnab.Campo(l, 221, 234)),
		NomeSacado:          cnab.CampoTrim(l, 235, 264),
		EnderecoSacado:      cnab.CampoTrim(l, 275, 314),
		BairroSacado:        cnab.CampoTrim(l, 315, 326),
		CEPSacado:           cnab.CampoTrim(l, 327, 334),
		CidadeSacado:        cnab.CampoTrim(l, 335, 349),
		UFSacado:            strings.ToUpper(cnab.CampoTrim(l, 350, 351)),
		DetalheItau:         it,
	}
	titulo.SeuNumero = titulo.NumeroDocumento
	if titulo.SeuNumero == "" {
		// Uso da empresa (pos. 038-062) serve de identificação quando o
		// número do documento vem em branco.
		titulo.SeuNumero = cnab.CampoTrim(l, 38, 62)
	}

	if tipo := cnab.CampoTrim(l, 2, 3); !tiposInscricaoItau[tipo] {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: tipo de inscrição da empresa (pos. 002-003) deve ser 01 ou 02.", numeroLinha))
	}
	if doc := cnab.SomenteDigitos(cnab.Campo(l, 4, 17)); doc == "" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: CPF/CNPJ da empresa (pos. 004-017) não informado.", numeroLinha))
	}
	if ag := cnab.CampoTrim(l, 18, 21); ag == "" || !cnab.TodosDigitos(ag) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: agência mantenedora (pos. 018-021) deve conter 4 dígitos.", numeroLinha))
	}
	if conta := cnab.CampoTrim(l, 24, 28); conta == "" || !cnab.TodosDigitos(conta) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: conta corrente (pos. 024-028) deve conter 5 dígitos.", numeroLinha))
	}

	if titulo.NossoNumero == "" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Nosso Número (pos. 063-070) não informado.", numeroLinha))
	} else if !cnab.TodosDigitos(titulo.NossoNumero) || len(titulo.NossoNumero) != 8 {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: Nosso Número (pos. 063-070) deve conter 8 dígitos.", numeroLinha))
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

	if banco := cnab.CampoTrim(l, 140, 142); banco != "341" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: banco cobrador (pos. 140-142) deve ser 341, encontrado '%s'.", numeroLinha, banco))
	}
	if ag := cnab.CampoTrim(l, 143, 147); ag != "" && !cnab.TodosDigitos(ag) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: agência cobradora (pos. 143-147) deve ser numérica.", numeroLinha))
	}

	if especie := cnab.CampoTrim(l, 148, 149); especie != "" && !especiesItau[especie] {
		avisos = append(avisos, fmt.Sprintf(
			"Linha %d: espécie do título (pos. 148-149) '%s' fora da lista do manual, verifique.", numeroLinha, especie))
	}

	if aceite := strings.ToUpper(cnab.CampoTrim(l, 150, 150)); aceite != "A" && aceite != "N" {
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

	if it.Instrucao1 != "" && !cnab.TodosDigitos(it.Instrucao1) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: instrução 1 (pos. 157-158) deve conter dígitos.", numeroLinha))
	}
	if it.Instrucao2 != "" && !cnab.TodosDigitos(it.Instrucao2) {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: instrução 2 (pos. 159-160) deve conter dígitos.", numeroLinha))
	}

	if juros, ok := cnab.ParseValorCentavos(cnab.Campo(l, 161, 173)); ok {
		it.JurosCentavos = juros
	} else {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: juros de 1 dia (pos. 161-173) deve conter dígitos.", numeroLinha))
	}

	if descData := cnab.CampoTrim(l, 174, 179); descData != "" && descData != "000000" {
		d := cnab.ParseDataDDMMAA(cnab.Campo(l, 174, 179))
		if d == nil {
			erros = append(erros, fmt.Sprintf(
				"Linha %d: data limite para desconto (pos. 174-179) inválida.", numeroLinha))
		} else {
			it.DataDesconto = cnab.FormatarDataBR(d)
		}
	}
	if desc, ok := cnab.ParseValorCentavos(cnab.Campo(l, 180, 192)); ok {
		it.DescontoCentavos = desc
	} else {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: valor do desconto (pos. 180-192) deve conter dígitos.", numeroLinha))
	}
	if iof, ok := cnab.ParseValorCentavos(cnab.Campo(l, 193, 205)); ok {
		it.IOFCentavos = iof
	} else {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: valor do IOF (pos. 193-205) deve conter dígitos.", numeroLinha))
	}
	if abat, ok := cnab.ParseValorCentavos(cnab.Campo(l, 206, 218)); ok {
		it.AbatimentoCentavos = abat
	} else {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: valor do abatimento (pos. 206-218) deve conter dígitos.", numeroLinha))
	}

	if !tiposInscricaoItau[titulo.TipoInscricaoSacado] {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: tipo de inscrição do pagador (pos. 219-220) deve ser 01 ou 02.", numeroLinha))
	}
	if titulo.DocumentoSacado == "" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: CPF/CNPJ do pagador (pos. 221-234) não informado.", numeroLinha))
	}
	if titulo.NomeSacado == "" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: nome do pagador (pos. 235-264) não informado.", numeroLinha))
	}
	if cep := titulo.CEPSacado; cep != "" && (len(cep) != 8 || !cnab.TodosDigitos(cep)) {
		erros = append(erros, fmt.Sprintf("Linha %d: CEP do pagador (pos. 327-334) inválido.", numeroLinha))
	}
	if uf := titulo.UFSacado; uf != "" && !cnab.EstadosBR[uf] {
		erros = append(erros, fmt.Sprintf("Linha %d: UF do pagador (pos. 350-351) inválida.", numeroLinha))
	}

	return titulo, erros, avisos
}

// aplicarMultaItau lê o registro tipo 2 (multa) e grava os campos no último
// detalhe processado.
func aplicarMultaItau(l string, numeroLinha int, titulo *domain.Titulo) []string {
	var erros []string
	it := titulo.DetalheItau

	it.MultaCodigo = cnab.CampoTrim(l, 2, 2)
	if it.MultaCodigo != "1" && it.MultaCodigo != "2" {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: código de multa (pos. 002) deve ser 1 (valor fixo) ou 2 (percentual).", numeroLinha))
	}
	dataMulta := cnab.ParseDataDDMMAAAA(cnab.Campo(l, 3, 10))
	if dataMulta == nil {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: data da multa (pos. 003-010) inválida.", numeroLinha))
	}
	it.MultaData = cnab.FormatarDataBR(dataMulta)
	valor, ok := cnab.ParseValorCentavos(cnab.Campo(l, 11, 23))
	if !ok {
		erros = append(erros, fmt.Sprintf(
			"Linha %d: valor/percentual da multa (pos. 011-023) deve conter dígitos.", numeroLinha))
	}
	it.MultaValor = decimal.New(valor, -2)

	return erros
}

func (validadorItau) Validar(linhas []string, _ domain.DadosConta) *domain.ResultadoCnab400 {
	res := novoResultado("341", cnab.NomeBanco("341"))

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

		switch cnab.Campo(l, 1, 1) {
		case "0":
			if header != nil {
				res.ErrosHeader = append(res.ErrosHeader, "Foram encontrados dois registros header no arquivo.")
				continue
			}
			info, erros, avisosHeader := validarHeaderItau(l, numeroLinha)
			header = info
			res.ErrosHeader = append(res.ErrosHeader, erros...)
			for _, a := range avisosHeader {
				aviso(res, domain.CategoriaHeader, a)
			}

		case "1":
			titulo, erros, avisosDetalhe := validarDetalheItau(l, numeroLinha)
			res.ErrosRegistros = append(res.ErrosRegistros, erros...)
			for _, a := range avisosDetalhe {
				aviso(res, domain.CategoriaOutros, a)
			}
			acumulador.somar(titulo.ValorCentavos, titulo.DataVencimento)
			acumulador.contarComando(titulo.Comando)
			acumulador.contarCarteira(titulo.Carteira)
			res.Titulos = append(res.Titulos, titulo)
			ultimoTitulo = &res.Titulos[len(res.Titulos)-1]

		case "2":
			if ultimoTitulo == nil {
				res.ErrosRegistros = append(res.ErrosRegistros, fmt.Sprintf(
					"Linha %d: registro de multa (tipo 2) sem um detalhe anterior.", numeroLinha))
				continue
			}
			res.ErrosRegistros = append(res.ErrosRegistros, aplicarMultaItau(l, numeroLinha, ultimoTitulo)...)

		case "5":
			if ultimoTitulo == nil {
				res.ErrosRegistros = append(res.ErrosRegistros, fmt.Sprintf(
					"Linha %d: registro de sacador/avalista (tipo 5) sem um detalhe anterior.", numeroLinha))
				continue
			}
			if texto := cnab.CampoTrim(l, 2, 394); texto != "" {
				ultimoTitulo.DetalheItau.SacadorAvalista = texto
			}

		case "7", "8":
			if ultimoTitulo == nil {
				res.ErrosRegistros = append(res.ErrosRegistros, fmt.Sprintf(
					"Linha %d: registro de mensagem (tipo %s) sem um detalhe anterior.", numeroLinha, cnab.Campo(l, 1, 1)))
				continue
			}
			if texto := cnab.CampoTrim(l, 2, 394); texto != "" {
				ultimoTitulo.Mensagens = append(ultimoTitulo.Mensagens, texto)
			}

		case "6":
			// Registro de instruções especiais: aceito e ignorado.

		case "9":
			if trailerEncontrado {
				res.ErrosTrailer = append(res.ErrosTrailer, "Foram encontrados dois trailers no arquivo.")
				continue
			}
			trailerEncontrado = true

		default:
			res.ErrosRegistros = append(res.ErrosRegistros, fmt.Sprintf(
				"Linha %d: tipo de registro '%s' não faz parte do CNAB 400 do Itaú.", numeroLinha, cnab.Campo(l, 1, 1)))
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
