// internal/core/cnab240/sisdeb.go
package cnab240

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/LuisEduardoPedra/validaCnab/internal/core/cnab"
	"github.com/LuisEduardoPedra/validaCnab/internal/domain"
	"github.com/shopspring/decimal"
)

// Tipos de moeda aceitos no segmento A do SISDEB (pos. 102-104).
var tiposMoedaSisdeb = map[string]bool{
	"REA": true,
	"USD": true,
	"FAJ": true,
	"IDT": true,
}

// Tipos de mora permitidos quando a moeda é 'REA' (pos. 178-179).
var tiposMoraRealSisdeb = map[string]bool{
	"00": true,
	"01": true,
	"03": true,
}

// DetectarSisdeb reconhece o layout SISDEB do Itaú (débito automático) pelo
// primeiro registro detalhe do arquivo: segmento 'A' indica SISDEB, qualquer
// outro segmento indica cobrança convencional.
func DetectarSisdeb(linhas []string) bool {
	for _, linha := range linhas {
		if strings.TrimSpace(linha) == "" {
			continue
		}
		registro := strings.TrimRight(linha, "\r\n")
		if len([]rune(registro)) < 14 {
			continue
		}
		if cnab.Campo(registro, 8, 8) != "3" {
			continue
		}
		return strings.ToUpper(cnab.Campo(registro, 14, 14)) == "A"
	}
	return false
}

// parseDigitosSisdeb interpreta um campo numérico do SISDEB: branco vale
// zero, dígitos valem o inteiro e qualquer outro conteúdo é inválido.
func parseDigitosSisdeb(raw string) (int64, bool) {
	valor := strings.TrimSpace(raw)
	if valor == "" {
		return 0, true
	}
	if !cnab.TodosDigitos(valor) {
		return 0, false
	}
	n, err := strconv.ParseInt(valor, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// estado acumulado por lote durante a varredura do arquivo SISDEB.
type loteSisdeb struct {
	detalhes          int
	valorCentavos     int64
	quantidadeMoeda   int64
	registros         int
	trailerProcessado bool
}

// ValidarSisdeb decodifica e valida um arquivo CNAB 240 no layout SISDEB do
// Itaú (serviço 05, forma de lançamento 50, segmento A), reconciliando os
// trailers de lote e de arquivo com os totais recalculados.
func ValidarSisdeb(linhas []string) *domain.ResultadoSisdeb {
	res := &domain.ResultadoSisdeb{
		ErrosHeader:   []string{},
		ErrosLotes:    []string{},
		ErrosDetalhes: []string{},
		ErrosTrailer:  []string{},
		Avisos:        []domain.Aviso{},
		Titulos:       []domain.Titulo{},
	}

	aviso := func(categoria domain.CategoriaAviso, formato string, args ...interface{}) {
		res.Avisos = append(res.Avisos, domain.Aviso{
			Categoria: categoria,
			Mensagem:  fmt.Sprintf(formato, args...),
		})
	}

	resumo := &domain.ResumoRemessa{}
	var vencMin, vencMax *time.Time

	var trailerArquivo string
	temHeader := false
	temTrailer := false
	totalRegistros := 0
	totalLotes := 0

	lotes := map[string]*loteSisdeb{}
	var ordemLotes []string

	for i, linha := range linhas {
		numeroLinha := i + 1
		if strings.TrimSpace(linha) == "" {
			continue
		}
		registro := strings.TrimRight(linha, "\r\n")
		if len([]rune(registro)) < 8 {
			res.ErrosDetalhes = append(res.ErrosDetalhes,
				fmt.Sprintf("Linha %d: registro com menos de 8 caracteres, impossível identificar o tipo.", numeroLinha))
			continue
		}

		tipo := cnab.Campo(registro, 8, 8)

		switch tipo {
		case "0", "1", "3", "5", "9":
		default:
			res.ErrosDetalhes = append(res.ErrosDetalhes,
				fmt.Sprintf("Linha %d: tipo de registro '%s' não pertence ao layout SISDEB (0,1,3,5,9).", numeroLinha, tipo))
			continue
		}

		totalRegistros++

		switch tipo {
		case "0":
			if temHeader {
				res.ErrosHeader = append(res.ErrosHeader,
					fmt.Sprintf("Linha %d: foi encontrado mais de um header de arquivo no CNAB 240.", numeroLinha))
			}
			temHeader = true

			if cnab.Campo(registro, 1, 3) != "341" {
				res.ErrosHeader = append(res.ErrosHeader,
					fmt.Sprintf("Linha %d: código do banco no header deve ser 341.", numeroLinha))
			}
			if lote := cnab.Campo(registro, 4, 7); lote != "0000" {
				res.ErrosHeader = append(res.ErrosHeader,
					fmt.Sprintf("Linha %d: header de arquivo deve informar lote '0000', encontrado '%s'.", numeroLinha, lote))
			}
			if tipoReg := cnab.Campo(registro, 8, 8); tipoReg != "0" {
				res.ErrosHeader = append(res.ErrosHeader,
					fmt.Sprintf("Linha %d: header de arquivo deve ter tipo de registro '0', encontrado '%s'.", numeroLinha, tipoReg))
			}
			if ti := cnab.Campo(registro, 18, 18); ti != "1" && ti != "2" {
				res.ErrosHeader = append(res.ErrosHeader,
					fmt.Sprintf("Linha %d: tipo de inscrição da empresa (pos. 018) deve ser '1' ou '2'.", numeroLinha))
			}
			inscricao := cnab.CampoTrim(registro, 19, 32)
			if inscricao == "" {
				res.ErrosHeader = append(res.ErrosHeader,
					fmt.Sprintf("Linha %d: número de inscrição da empresa (pos. 019-032) não informado.", numeroLinha))
			} else if !cnab.TodosDigitos(inscricao) {
				res.ErrosHeader = append(res.ErrosHeader,
					fmt.Sprintf("Linha %d: número de inscrição da empresa deve ser numérico.", numeroLinha))
			}
			if cnab.CampoTrim(registro, 33, 45) == "" {
				res.ErrosHeader = append(res.ErrosHeader,
					fmt.Sprintf("Linha %d: código do convênio (pos. 033-045) não informado.", numeroLinha))
			}
			if ag := cnab.CampoTrim(registro, 54, 57); ag == "" || !cnab.TodosDigitos(ag) {
				res.ErrosHeader = append(res.ErrosHeader,
					fmt.Sprintf("Linha %d: agência do header (pos. 054-057) deve conter 4 dígitos.", numeroLinha))
			}
			if ct := cnab.CampoTrim(registro, 66, 70); ct == "" || !cnab.TodosDigitos(ct) {
				res.ErrosHeader = append(res.ErrosHeader,
					fmt.Sprintf("Linha %d: conta do header (pos. 066-070) deve conter 5 dígitos.", numeroLinha))
			}

		case "1":
			lote := cnab.Campo(registro, 4, 7)
			totalLotes++

			if _, existe := lotes[lote]; existe {
				res.ErrosLotes = append(res.ErrosLotes,
					fmt.Sprintf("Linha %d: lote %s possui mais de um header.", numeroLinha, lote))
			} else {
				ordemLotes = append(ordemLotes, lote)
			}
			lotes[lote] = &loteSisdeb{registros: 1}

			if cnab.Campo(registro, 1, 3) != "341" {
				res.ErrosLotes = append(res.ErrosLotes,
					fmt.Sprintf("Linha %d: lotes do Itaú devem ser enviados com código de banco 341.", numeroLinha))
			}
			if op := strings.ToUpper(cnab.Campo(registro, 9, 9)); op != "D" {
				res.ErrosLotes = append(res.ErrosLotes,
					fmt.Sprintf("Linha %d: tipo de operação (pos. 009) deve ser 'D' para débitos.", numeroLinha))
			}
			if sv := cnab.Campo(registro, 10, 11); sv != "05" {
				res.ErrosLotes = append(res.ErrosLotes,
					fmt.Sprintf("Linha %d: tipo de serviço no header de lote (pos. 010-011) deve ser '05'.", numeroLinha))
			}
			if fl := cnab.Campo(registro, 12, 13); fl != "50" {
				res.ErrosLotes = append(res.ErrosLotes,
					fmt.Sprintf("Linha %d: forma de lançamento (pos. 012-013) deve ser '50'.", numeroLinha))
			}
			if vl := cnab.Campo(registro, 14, 16); vl != "030" {
				aviso(domain.CategoriaHeader,
					"Linha %d: versão do layout no header de lote (pos. 014-016) deveria ser '030'.", numeroLinha)
			}
			if ti := cnab.Campo(registro, 18, 18); ti != "1" && ti != "2" {
				res.ErrosLotes = append(res.ErrosLotes,
					fmt.Sprintf("Linha %d: tipo de inscrição da empresa creditada (pos. 018) deve ser '1' ou '2'.", numeroLinha))
			}
			if insc := cnab.CampoTrim(registro, 19, 32); insc == "" || !cnab.TodosDigitos(insc) {
				res.ErrosLotes = append(res.ErrosLotes,
					fmt.Sprintf("Linha %d: número de inscrição (pos. 019-032) do header de lote deve ser numérico.", numeroLinha))
			}
			if cnab.CampoTrim(registro, 33, 45) == "" {
				res.ErrosLotes = append(res.ErrosLotes,
					fmt.Sprintf("Linha %d: convênio (pos. 033-045) no header de lote não informado.", numeroLinha))
			}
			if ag := cnab.CampoTrim(registro, 54, 57); ag == "" || !cnab.TodosDigitos(ag) {
				res.ErrosLotes = append(res.ErrosLotes,
					fmt.Sprintf("Linha %d: agência no header de lote (pos. 054-057) deve conter 4 dígitos.", numeroLinha))
			}
			if ct := cnab.CampoTrim(registro, 66, 70); ct == "" || !cnab.TodosDigitos(ct) {
				res.ErrosLotes = append(res.ErrosLotes,
					fmt.Sprintf("Linha %d: conta no header de lote (pos. 066-070) deve conter 5 dígitos.", numeroLinha))
			}

		case "3":
			lote := cnab.Campo(registro, 4, 7)
			info, existe := lotes[lote]
			if !existe {
				res.ErrosDetalhes = append(res.ErrosDetalhes,
					fmt.Sprintf("Linha %d: registro detalhe do lote %s sem header correspondente.", numeroLinha, lote))
				continue
			}

			info.detalhes++
			info.registros++

			if seg := strings.ToUpper(cnab.Campo(registro, 14, 14)); seg != "A" {
				res.ErrosDetalhes = append(res.ErrosDetalhes,
					fmt.Sprintf("Linha %d: segmento nos detalhes deve ser 'A', encontrado '%s'.", numeroLinha, seg))
			}

			codigoMov := cnab.CampoTrim(registro, 15, 17)
			if codigoMov == "" || !cnab.TodosDigitos(codigoMov) {
				res.ErrosDetalhes = append(res.ErrosDetalhes,
					fmt.Sprintf("Linha %d: código da instrução para movimento (pos. 015-017) deve conter 3 dígitos.", numeroLinha))
			}
			if cam := cnab.Campo(registro, 18, 20); cam != "000" {
				res.ErrosDetalhes = append(res.ErrosDetalhes,
					fmt.Sprintf("Linha %d: código da câmara (pos. 018-020) deve ser '000'.", numeroLinha))
			}
			if cnab.Campo(registro, 21, 23) != "341" {
				res.ErrosDetalhes = append(res.ErrosDetalhes,
					fmt.Sprintf("Linha %d: código do banco (pos. 021-023) deve ser 341.", numeroLinha))
			}

			agenciaDebitada := cnab.CampoTrim(registro, 25, 28)
			contaDebitada := cnab.CampoTrim(registro, 37, 41)
			dac := cnab.CampoTrim(registro, 43, 43)
			if agenciaDebitada == "" || !cnab.TodosDigitos(agenciaDebitada) {
				res.ErrosDetalhes = append(res.ErrosDetalhes,
					fmt.Sprintf("Linha %d: agência debitada (pos. 025-028) deve ser numérica.", numeroLinha))
			}
			if contaDebitada == "" || !cnab.TodosDigitos(contaDebitada) {
				res.ErrosDetalhes = append(res.ErrosDetalhes,
					fmt.Sprintf("Linha %d: conta debitada (pos. 037-041) deve ser numérica.", numeroLinha))
			}
			if dac != "" && !cnab.TodosDigitos(dac) {
				res.ErrosDetalhes = append(res.ErrosDetalhes,
					fmt.Sprintf("Linha %d: DAC da agência/conta (pos. 043) deve ser numérico.", numeroLinha))
			}

			nomeDebitado := cnab.CampoTrim(registro, 44, 73)
			if nomeDebitado == "" {
				res.ErrosDetalhes = append(res.ErrosDetalhes,
					fmt.Sprintf("Linha %d: nome do debitado (pos. 044-073) não informado.", numeroLinha))
			}

			seuNumero := cnab.CampoTrim(registro, 74, 88)
			dataAgendada := cnab.ParseDataDDMMAAAA(cnab.CampoTrim(registro, 94, 101))
			if dataAgendada == nil {
				res.ErrosDetalhes = append(res.ErrosDetalhes,
					fmt.Sprintf("Linha %d: data agendada (pos. 094-101) inválida.", numeroLinha))
			}

			tipoMoeda := strings.ToUpper(cnab.CampoTrim(registro, 102, 104))
			if !tiposMoedaSisdeb[tipoMoeda] {
				res.ErrosDetalhes = append(res.ErrosDetalhes,
					fmt.Sprintf("Linha %d: tipo de moeda (pos. 102-104) deve ser um dos valores permitidos (FAJ, IDT, REA, USD).", numeroLinha))
			}

			quantidadeMoeda, ok := parseDigitosSisdeb(cnab.Campo(registro, 105, 119))
			if !ok {
				res.ErrosDetalhes = append(res.ErrosDetalhes,
					fmt.Sprintf("Linha %d: quantidade/IOF (pos. 105-119) deve conter apenas dígitos.", numeroLinha))
				quantidadeMoeda = 0
			}

			valorCentavos, ok := parseDigitosSisdeb(cnab.Campo(registro, 120, 134))
			if !ok {
				res.ErrosDetalhes = append(res.ErrosDetalhes,
					fmt.Sprintf("Linha %d: valor agendado (pos. 120-134) deve conter apenas dígitos.", numeroLinha))
				valorCentavos = 0
			}

			if tipoMoeda == "REA" && valorCentavos == 0 {
				res.ErrosDetalhes = append(res.ErrosDetalhes,
					fmt.Sprintf("Linha %d: para moeda 'REA', o valor agendado deve ser maior que zero.", numeroLinha))
			}
			if tipoMoeda != "REA" && quantidadeMoeda == 0 {
				aviso(domain.CategoriaOutros,
					"Linha %d: para moeda diferente de 'REA', o campo quantidade (pos. 105-119) deveria conter o valor a debitar.", numeroLinha)
			}

			nossoNumero := cnab.CampoTrim(registro, 135, 154)
			if nossoNumero != "" {
				aviso(domain.CategoriaOutros,
					"Linha %d: o campo Nosso Número (pos. 135-154) deve ficar em branco na remessa SISDEB.", numeroLinha)
			}
			if cnab.CampoTrim(registro, 155, 162) != "" {
				aviso(domain.CategoriaOutros,
					"Linha %d: data cobrada (pos. 155-162) deve permanecer em branco na remessa.", numeroLinha)
			}
			if vc := cnab.CampoTrim(registro, 163, 177); vc != "" && strings.Trim(vc, "0") != "" {
				aviso(domain.CategoriaOutros,
					"Linha %d: valor cobrado (pos. 163-177) deve permanecer zerado na remessa.", numeroLinha)
			}

			tipoMora := cnab.CampoTrim(registro, 178, 179)
			valorMora, ok := parseDigitosSisdeb(cnab.Campo(registro, 180, 196))
			if !ok {
				res.ErrosDetalhes = append(res.ErrosDetalhes,
					fmt.Sprintf("Linha %d: valor da mora (pos. 180-196) deve conter apenas dígitos.", numeroLinha))
				valorMora = 0
			}
			if tipoMoeda == "REA" {
				if !tiposMoraRealSisdeb[tipoMora] {
					res.ErrosDetalhes = append(res.ErrosDetalhes,
						fmt.Sprintf("Linha %d: tipo da mora (pos. 178-179) deve ser 00, 01 ou 03 para moeda 'REA'.", numeroLinha))
				}
				if tipoMora == "00" && valorMora != 0 {
					res.ErrosDetalhes = append(res.ErrosDetalhes,
						fmt.Sprintf("Linha %d: tipo da mora '00' exige valor de mora zerado.", numeroLinha))
				}
			} else if tipoMora != "" && !cnab.TodosDigitos(tipoMora) {
				res.ErrosDetalhes = append(res.ErrosDetalhes,
					fmt.Sprintf("Linha %d: tipo da mora (pos. 178-179) deve ser numérico.", numeroLinha))
			}

			documentoDebitado := cnab.CampoTrim(registro, 217, 230)
			if documentoDebitado == "" || !cnab.TodosDigitos(documentoDebitado) {
				res.ErrosDetalhes = append(res.ErrosDetalhes,
					fmt.Sprintf("Linha %d: número de inscrição do debitado (pos. 217-230) deve ser numérico.", numeroLinha))
			}
			if cnab.CampoTrim(registro, 231, 240) != "" {
				aviso(domain.CategoriaOutros,
					"Linha %d: campo de ocorrências (pos. 231-240) deve permanecer em branco na remessa.", numeroLinha)
			}

			info.valorCentavos += valorCentavos
			info.quantidadeMoeda += quantidadeMoeda

			resumo.QuantidadeTitulos++
			resumo.ValorTotalCentavos += valorCentavos

			if dataAgendada != nil {
				if vencMin == nil || dataAgendada.Before(*vencMin) {
					vencMin = dataAgendada
				}
				if vencMax == nil || dataAgendada.After(*vencMax) {
					vencMax = dataAgendada
				}
			}

			res.Titulos = append(res.Titulos, domain.Titulo{
				Linha:             numeroLinha,
				Lote:              lote,
				Sequencia:         cnab.CampoTrim(registro, 9, 13),
				NossoNumero:       nossoNumero,
				SeuNumero:         seuNumero,
				DataVencimento:    dataAgendada,
				DataVencimentoStr: cnab.FormatarDataBR(dataAgendada),
				ValorCentavos:     valorCentavos,
				ValorReais:        decimal.New(valorCentavos, -2),
				DocumentoSacado:   documentoDebitado,
				NomeSacado:        nomeDebitado,
				Sisdeb: &domain.DadosTituloSisdeb{
					TipoMoeda:       tipoMoeda,
					QuantidadeMoeda: quantidadeMoeda,
					CodigoMovimento: codigoMov,
					AgenciaDebitada: agenciaDebitada,
					ContaDebitada:   contaDebitada,
				},
			})

		case "5":
			lote := cnab.Campo(registro, 4, 7)
			info, existe := lotes[lote]
			if !existe {
				res.ErrosTrailer = append(res.ErrosTrailer,
					fmt.Sprintf("Linha %d: trailer do lote %s encontrado sem header correspondente.", numeroLinha, lote))
				continue
			}

			info.registros++
			info.trailerProcessado = true

			qtdRegistros := cnab.CampoTrim(registro, 18, 23)
			if qtdRegistros == "" || !cnab.TodosDigitos(qtdRegistros) {
				res.ErrosTrailer = append(res.ErrosTrailer,
					fmt.Sprintf("Linha %d: quantidade de registros (pos. 018-023) deve ser numérica.", numeroLinha))
			} else if qtd, _ := strconv.Atoi(qtdRegistros); qtd != info.registros {
				res.ErrosTrailer = append(res.ErrosTrailer,
					fmt.Sprintf("Linha %d: lote %s informa %d registros no trailer, mas foram encontrados %d (header + detalhes + trailer).",
						numeroLinha, lote, qtd, info.registros))
			}

			totalValor, ok := parseDigitosSisdeb(cnab.Campo(registro, 24, 41))
			if !ok {
				res.ErrosTrailer = append(res.ErrosTrailer,
					fmt.Sprintf("Linha %d: total de valores (pos. 024-041) deve conter apenas dígitos.", numeroLinha))
			} else if totalValor != info.valorCentavos {
				res.ErrosTrailer = append(res.ErrosTrailer,
					fmt.Sprintf("Linha %d: soma dos valores do lote %s (R$ %s) difere do total informado no trailer.",
						numeroLinha, lote, decimal.New(info.valorCentavos, -2).StringFixed(2)))
			}

			totalQuantidade, ok := parseDigitosSisdeb(cnab.Campo(registro, 42, 59))
			if !ok {
				res.ErrosTrailer = append(res.ErrosTrailer,
					fmt.Sprintf("Linha %d: total da quantidade de moedas (pos. 042-059) deve conter apenas dígitos.", numeroLinha))
			} else if totalQuantidade != info.quantidadeMoeda {
				res.ErrosTrailer = append(res.ErrosTrailer,
					fmt.Sprintf("Linha %d: somatório da quantidade/IOF do lote %s difere do informado no trailer.", numeroLinha, lote))
			}

		case "9":
			if temTrailer {
				res.ErrosTrailer = append(res.ErrosTrailer,
					"Foram encontrados dois trailers de arquivo (tipo 9).")
			}
			temTrailer = true
			trailerArquivo = registro
		}
	}

	if !temHeader {
		res.ErrosHeader = append(res.ErrosHeader, "Arquivo CNAB 240 do Itaú sem header (tipo 0).")
	}

	if !temTrailer {
		res.ErrosTrailer = append(res.ErrosTrailer, "Arquivo CNAB 240 do Itaú sem trailer (tipo 9).")
	} else {
		if cnab.Campo(trailerArquivo, 4, 7) != "9999" {
			res.ErrosTrailer = append(res.ErrosTrailer,
				"Trailer de arquivo (pos. 004-007) deve conter '9999'.")
		}

		qtdLotes := cnab.CampoTrim(trailerArquivo, 18, 23)
		if qtdLotes != "" && cnab.TodosDigitos(qtdLotes) {
			if qtd, _ := strconv.Atoi(qtdLotes); qtd != totalLotes {
				res.ErrosTrailer = append(res.ErrosTrailer,
					fmt.Sprintf("Trailer do arquivo informa %d lotes, mas foram encontrados %d headers de lote.", qtd, totalLotes))
			}
		} else {
			res.ErrosTrailer = append(res.ErrosTrailer,
				"Trailer do arquivo deve informar a quantidade de lotes (pos. 018-023).")
		}

		qtdRegistros := cnab.CampoTrim(trailerArquivo, 24, 29)
		if qtdRegistros != "" && cnab.TodosDigitos(qtdRegistros) {
			if qtd, _ := strconv.Atoi(qtdRegistros); qtd != totalRegistros {
				res.ErrosTrailer = append(res.ErrosTrailer,
					fmt.Sprintf("Trailer do arquivo informa %d registros, mas foram encontrados %d do tipo 0/1/3/5/9.", qtd, totalRegistros))
			}
		} else {
			res.ErrosTrailer = append(res.ErrosTrailer,
				"Trailer do arquivo deve informar a quantidade de registros (pos. 024-029).")
		}
	}

	for _, lote := range ordemLotes {
		if !lotes[lote].trailerProcessado {
			res.ErrosTrailer = append(res.ErrosTrailer,
				fmt.Sprintf("O lote %s não possui trailer (registro tipo 5).", lote))
		}
	}

	resumo.ValorTotalReais = decimal.New(resumo.ValorTotalCentavos, -2)
	resumo.MenorVencimento = cnab.FormatarDataBR(vencMin)
	resumo.MaiorVencimento = cnab.FormatarDataBR(vencMax)
	res.Resumo = resumo

	return res
}
