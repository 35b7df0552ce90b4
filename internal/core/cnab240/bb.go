// internal/core/cnab240/bb.go
//
// Validações específicas do Banco do Brasil para CNAB 240. Tudo em modo
// permissivo: as regras de convênio, carteira e coerência de campos refletem
// o manual de particularidades do BB e as recomendações FEBRABAN, então
// divergências viram avisos, nunca erros.
package cnab240

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/LuisEduardoPedra/validaCnab/internal/core/cnab"
	"github.com/LuisEduardoPedra/validaCnab/internal/domain"
)

// Carteiras de cobrança mais usuais no BB.
var carteirasComunsBB = map[string]bool{"11": true, "12": true, "17": true, "31": true, "51": true}

// Códigos de movimento de remessa mais comuns.
var codigosMovimentoBB = map[string]bool{
	"01": true, // entrada de títulos
	"02": true, // pedido de baixa
	"04": true, // concessão de abatimento
	"05": true, // cancelamento de abatimento
	"06": true, // alteração de vencimento
	"09": true, // instrução de protesto
	"10": true, // sustação de protesto
	"18": true, // sustação de protesto / baixa
	"31": true, // alteração de outros dados
}

type infoLoteBB struct {
	linhaHeader int
	convenio    string
	carteira    string
	variacao    string
}

func avisoP(avisos *[]domain.Aviso, formato string, args ...any) {
	*avisos = append(*avisos, domain.Aviso{Categoria: domain.CategoriaSegmentoP, Mensagem: fmt.Sprintf(formato, args...)})
}

func avisoQ(avisos *[]domain.Aviso, formato string, args ...any) {
	*avisos = append(*avisos, domain.Aviso{Categoria: domain.CategoriaSegmentoQ, Mensagem: fmt.Sprintf(formato, args...)})
}

func avisoR(avisos *[]domain.Aviso, formato string, args ...any) {
	*avisos = append(*avisos, domain.Aviso{Categoria: domain.CategoriaSegmentoR, Mensagem: fmt.Sprintf(formato, args...)})
}

func avisoConv(avisos *[]domain.Aviso, formato string, args ...any) {
	*avisos = append(*avisos, domain.Aviso{Categoria: domain.CategoriaConvenio, Mensagem: fmt.Sprintf(formato, args...)})
}

// preenchido informa se o campo traz algo além de zeros e espaços.
func preenchido(raw string) bool {
	v := strings.TrimSpace(raw)
	return v != "" && strings.Trim(v, "0") != ""
}

// ValidarConvenioCarteiraNossoNumeroBB lê convênio, carteira e variação do
// header de lote e confere a formação do Nosso Número de cada segmento P:
// convênio de 4 ou 6 dígitos pede Nosso Número de 12 dígitos, convênio de 7
// dígitos pede 17, sempre prefixado pelo próprio convênio.
func ValidarConvenioCarteiraNossoNumeroBB(linhas []string) []domain.Aviso {
	var avisos []domain.Aviso

	lotesInfo := map[string]infoLoteBB{}

	for i, linha := range linhas {
		l := strings.TrimRight(linha, "\r\n")
		if len([]rune(l)) < 60 {
			continue
		}
		if cnab.Campo(l, 8, 8) != "1" {
			continue
		}
		lote := cnab.Campo(l, 4, 7)

		// Manual de particularidades do BB:
		// convênio de cobrança nas posições 34-42, número da carteira nas
		// 47-48 e variação da carteira nas 49-51.
		convenio := cnab.CampoTrim(l, 34, 42)
		carteira := cnab.CampoTrim(l, 47, 48)
		variacao := cnab.CampoTrim(l, 49, 51)

		lotesInfo[lote] = infoLoteBB{linhaHeader: i + 1, convenio: convenio, carteira: carteira, variacao: variacao}

		if convenio == "" {
			avisoConv(&avisos, "Linha %d (Lote %s, Header de Lote): Convênio de cobrança não informado no campo específico (posições 34-42). Verifique se o convênio foi configurado corretamente no arquivo.", i+1, lote)
		} else if !cnab.TodosDigitos(convenio) {
			avisoConv(&avisos, "Linha %d (Lote %s, Header de Lote): Convênio '%s' contém caracteres não numéricos. O Banco do Brasil trabalha com convênios numéricos.", i+1, lote, convenio)
		} else {
			convDigits := strings.TrimLeft(convenio, "0")
			convLen := len(convDigits)
			if convLen != 4 && convLen != 6 && convLen != 7 {
				avisoConv(&avisos, "Linha %d (Lote %s, Header de Lote): Convênio '%s' possui %d dígitos úteis. Pelas regras do BB, convênios de cobrança costumam ter 4, 6 ou 7 dígitos. Confirme se o convênio está correto com o banco.", i+1, lote, convDigits, convLen)
			}
		}

		if carteira != "" {
			if !cnab.TodosDigitos(carteira) {
				avisoConv(&avisos, "Linha %d (Lote %s, Header de Lote): Número da carteira de cobrança '%s' não é numérico.", i+1, lote, carteira)
			} else if !carteirasComunsBB[carteira] {
				avisoConv(&avisos, "Linha %d (Lote %s, Header de Lote): Carteira de cobrança '%s' não está entre as carteiras mais usuais (11, 12, 17, 31, 51). Isso pode ser apenas um caso especial, mas vale conferir com seu gerente/Banco do Brasil.", i+1, lote, carteira)
			}
		}
	}

	for i, linha := range linhas {
		l := strings.TrimRight(linha, "\r\n")
		if len([]rune(l)) < 60 {
			continue
		}
		if cnab.Campo(l, 8, 8) != "3" || cnab.Campo(l, 14, 14) != "P" {
			continue
		}
		lote := cnab.Campo(l, 4, 7)

		info, ok := lotesInfo[lote]
		if !ok {
			// Sem header de lote não há como amarrar convênio e Nosso Número.
			continue
		}
		if info.convenio == "" || !cnab.TodosDigitos(info.convenio) {
			continue
		}

		convDigits := strings.TrimLeft(info.convenio, "0")
		convLen := len(convDigits)

		// Identificação do Título no Banco (Nosso Número): posições 38-57.
		nnBruto := strings.TrimRight(cnab.Campo(l, 38, 57), " ")
		nnCompacto := strings.ReplaceAll(nnBruto, " ", "")

		if nnCompacto == "" {
			avisoConv(&avisos, "Linha %d (Lote %s, Seg. P): Nosso Número não informado. Pelas regras do BB, isso é permitido quando o banco gera o número, mas confirme se é esse o comportamento desejado.", i+1, lote)
			continue
		}

		nnDigitos := cnab.SomenteDigitos(nnCompacto)
		tamNN := len(nnDigitos)

		switch convLen {
		case 4, 6:
			if tamNN != 12 {
				avisoConv(&avisos, "Linha %d (Lote %s, Seg. P): Convênio de %d dígitos (%s) normalmente utiliza Nosso Número com 12 dígitos (convênio + sequencial + DV), mas foram encontrados %d dígitos em '%s'. Confira se a montagem do Nosso Número está correta.", i+1, lote, convLen, convDigits, tamNN, nnBruto)
			}
			if tamNN >= convLen && nnDigitos[:convLen] != convDigits {
				avisoConv(&avisos, "Linha %d (Lote %s, Seg. P): Os primeiros %d dígitos do Nosso Número '%s' (%s) não conferem com o convênio do Header de Lote (%s). Verifique se o convênio usado na montagem do Nosso Número está correto.", i+1, lote, convLen, nnBruto, nnDigitos[:convLen], convDigits)
			}
		case 7:
			if tamNN != 17 {
				avisoConv(&avisos, "Linha %d (Lote %s, Seg. P): Convênio de 7 dígitos (%s) normalmente utiliza Nosso Número com 17 dígitos (convênio + sequencial), mas foram encontrados %d dígitos em '%s'. Confira se a montagem do Nosso Número está correta.", i+1, lote, convDigits, tamNN, nnBruto)
			}
			if tamNN >= 7 && nnDigitos[:7] != convDigits {
				avisoConv(&avisos, "Linha %d (Lote %s, Seg. P): Os 7 primeiros dígitos do Nosso Número '%s' (%s) não conferem com o convênio do Header de Lote (%s). Verifique se o convênio usado na montagem do Nosso Número está correto.", i+1, lote, nnBruto, nnDigitos[:7], convDigits)
			}
		}

		// Código da Carteira do Segmento P (posição 58) x carteira do header.
		if len([]rune(l)) >= 59 {
			codigoCarteira := cnab.CampoTrim(l, 58, 58)
			if info.carteira != "" && codigoCarteira == "" {
				avisoConv(&avisos, "Linha %d (Lote %s, Seg. P): Número da carteira no Header de Lote é '%s', mas o campo 'Código da Carteira' no Segmento P (posição 58) está em branco. Verifique se o código foi informado conforme o cadastro da carteira no banco.", i+1, lote, info.carteira)
			}
		}
	}

	return avisos
}

// ValidarSegmentosAvancadosBB aplica as validações avançadas dos segmentos
// P, Q e R para o BB. Todas advisórias.
func ValidarSegmentosAvancadosBB(linhas []string) []domain.Aviso {
	var avisos []domain.Aviso

	hoje := time.Now().UTC().Truncate(24 * time.Hour)

	for i, linha := range linhas {
		if strings.TrimSpace(linha) == "" {
			continue
		}
		l := strings.TrimRight(linha, "\r\n")
		if len([]rune(l)) < 160 {
			continue
		}
		if cnab.Campo(l, 8, 8) != "3" {
			continue
		}

		segmento := strings.ToUpper(cnab.Campo(l, 14, 14))
		lote := cnab.Campo(l, 4, 7)

		switch segmento {
		case "P":
			validarSegmentoPBB(&avisos, l, i+1, lote, hoje)
		case "Q":
			validarSegmentoQBB(&avisos, l, i+1, lote)
		case "R":
			validarSegmentoRBB(&avisos, l, i+1, lote)
		}
	}

	return avisos
}

func validarSegmentoPBB(avisos *[]domain.Aviso, l string, idx int, lote string, hoje time.Time) {
	// Código de movimento: posições 16-17.
	codMov := cnab.CampoTrim(l, 16, 17)
	if codMov != "" && (!cnab.TodosDigitos(codMov) || len(codMov) != 2) {
		avisoP(avisos, "Linha %d (Lote %s, Seg. P): código de movimento '%s' fora do padrão de 2 dígitos.", idx, lote, codMov)
	} else if codMov != "" && !codigosMovimentoBB[codMov] {
		avisoP(avisos, "Linha %d (Lote %s, Seg. P): código de movimento '%s' não está na lista de códigos mais comuns. Verifique se está de acordo com o manual do banco.", idx, lote, codMov)
	}

	// Data de vencimento: posições 78-85.
	dataVencRaw := cnab.CampoTrim(l, 78, 85)
	if dataVencRaw != "" && (!cnab.TodosDigitos(dataVencRaw) || len(dataVencRaw) != 8) {
		avisoP(avisos, "Linha %d (Lote %s, Seg. P): data de vencimento '%s' não está no formato DDMMAAAA.", idx, lote, dataVencRaw)
	} else if cnab.TodosDigitos(dataVencRaw) {
		if dt := cnab.ParseDataDDMMAAAA(dataVencRaw); dt == nil {
			avisoP(avisos, "Linha %d (Lote %s, Seg. P): data de vencimento '%s' é inválida.", idx, lote, dataVencRaw)
		} else if dt.Before(hoje) {
			avisoP(avisos, "Linha %d (Lote %s, Seg. P): data de vencimento %s está no passado em relação à data atual.", idx, lote, dt.Format("02/01/2006"))
		}
	}

	// Valor do título: posições 86-100.
	valorRaw := cnab.CampoTrim(l, 86, 100)
	if !cnab.TodosDigitos(valorRaw) {
		avisoP(avisos, "Linha %d (Lote %s, Seg. P): valor do título '%s' não é numérico.", idx, lote, valorRaw)
	} else if v, _ := strconv.ParseInt(valorRaw, 10, 64); v == 0 {
		avisoP(avisos, "Linha %d (Lote %s, Seg. P): valor do título é zero. Verifique se está correto.", idx, lote)
	}

	// Nosso Número: posições 38-57 (formato, não regra de DV).
	nnRaw := cnab.CampoTrim(l, 38, 57)
	if nnRaw == "" {
		avisoP(avisos, "Linha %d (Lote %s, Seg. P): Nosso Número em branco.", idx, lote)
	} else {
		for _, ch := range nnRaw {
			if !(ch >= '0' && ch <= '9') && ch != 'X' && ch != 'x' {
				avisoP(avisos, "Linha %d (Lote %s, Seg. P): Nosso Número '%s' contém caracteres inválidos.", idx, lote, nnRaw)
				break
			}
		}
		if len(nnRaw) < 5 {
			avisoP(avisos, "Linha %d (Lote %s, Seg. P): Nosso Número '%s' parece muito curto. Verifique se está de acordo com o convênio/carteira.", idx, lote, nnRaw)
		}
	}

	// Juros de mora: código na posição 118, data 119-126, valor 127-141.
	var dataJurosRaw string
	if len([]rune(l)) >= 141 {
		codJuros := cnab.CampoTrim(l, 118, 118)
		dataJurosRaw = cnab.CampoTrim(l, 119, 126)
		valorJurosRaw := cnab.CampoTrim(l, 127, 141)

		// 0=sem juros, 1=valor ao dia, 2=taxa mensal, 3=isento
		if codJuros != "" && codJuros != "0" && codJuros != "1" && codJuros != "2" && codJuros != "3" {
			avisoP(avisos, "Linha %d (Lote %s, Seg. P): código de juros de mora '%s' não está entre os códigos usuais (0, 1, 2, 3). Verifique o manual do BB.", idx, lote, codJuros)
		}

		if codJuros == "1" || codJuros == "2" || codJuros == "3" {
			if dataJurosRaw == "" || !cnab.TodosDigitos(dataJurosRaw) || len(dataJurosRaw) != 8 {
				avisoP(avisos, "Linha %d (Lote %s, Seg. P): código de juros '%s' informado, mas a data de início dos juros '%s' não está no formato DDMMAAAA.", idx, lote, codJuros, dataJurosRaw)
			} else if cnab.ParseDataDDMMAAAA(dataJurosRaw) == nil {
				avisoP(avisos, "Linha %d (Lote %s, Seg. P): data de início dos juros '%s' é inválida.", idx, lote, dataJurosRaw)
			}

			if valorJurosRaw == "" || !cnab.TodosDigitos(valorJurosRaw) {
				avisoP(avisos, "Linha %d (Lote %s, Seg. P): código de juros '%s' informado, mas o valor/taxa de juros '%s' não é numérico.", idx, lote, codJuros, valorJurosRaw)
			} else if v, _ := strconv.ParseInt(valorJurosRaw, 10, 64); v == 0 {
				avisoP(avisos, "Linha %d (Lote %s, Seg. P): código de juros '%s' informado, mas o valor/taxa de juros está zerado. Verifique se o campo foi preenchido corretamente.", idx, lote, codJuros)
			}
		}

		if codJuros == "" || codJuros == "0" {
			if preenchido(dataJurosRaw) || preenchido(valorJurosRaw) {
				avisoP(avisos, "Linha %d (Lote %s, Seg. P): código de juros indica 'sem juros' (0 ou vazio), mas há informação preenchida em data/valor de juros. Verifique se o código está coerente.", idx, lote)
			}
		}
	}

	// Desconto 1: código na posição 142, data 143-150, valor 151-165.
	var codDesc1, dataDesc1Raw string
	if len([]rune(l)) >= 165 {
		codDesc1 = cnab.CampoTrim(l, 142, 142)
		dataDesc1Raw = cnab.CampoTrim(l, 143, 150)
		valorDesc1Raw := cnab.CampoTrim(l, 151, 165)

		if codDesc1 != "" && codDesc1 != "0" && codDesc1 != "1" && codDesc1 != "2" && codDesc1 != "3" {
			avisoP(avisos, "Linha %d (Lote %s, Seg. P): código de desconto 1 '%s' não está entre os códigos usuais (0, 1, 2, 3). Verifique o manual do BB.", idx, lote, codDesc1)
		}

		if codDesc1 == "1" || codDesc1 == "2" || codDesc1 == "3" {
			if dataDesc1Raw == "" || !cnab.TodosDigitos(dataDesc1Raw) || len(dataDesc1Raw) != 8 {
				avisoP(avisos, "Linha %d (Lote %s, Seg. P): código de desconto '%s' informado, mas a data do desconto '%s' não está no formato DDMMAAAA.", idx, lote, codDesc1, dataDesc1Raw)
			} else if cnab.ParseDataDDMMAAAA(dataDesc1Raw) == nil {
				avisoP(avisos, "Linha %d (Lote %s, Seg. P): data do desconto '%s' é inválida.", idx, lote, dataDesc1Raw)
			}

			if valorDesc1Raw == "" || !cnab.TodosDigitos(valorDesc1Raw) {
				avisoP(avisos, "Linha %d (Lote %s, Seg. P): código de desconto '%s' informado, mas o valor do desconto '%s' não é numérico.", idx, lote, codDesc1, valorDesc1Raw)
			} else if v, _ := strconv.ParseInt(valorDesc1Raw, 10, 64); v == 0 {
				avisoP(avisos, "Linha %d (Lote %s, Seg. P): código de desconto '%s' informado, mas o valor do desconto está zerado. Verifique se o campo foi preenchido corretamente.", idx, lote, codDesc1)
			}
		}

		if codDesc1 == "" || codDesc1 == "0" {
			if preenchido(dataDesc1Raw) || preenchido(valorDesc1Raw) {
				avisoP(avisos, "Linha %d (Lote %s, Seg. P): código de desconto indica 'sem desconto' (0 ou vazio), mas há informação preenchida em data/valor de desconto. Verifique se o código está coerente.", idx, lote)
			}
		}
	}

	// Protesto e baixa/devolução: protesto na posição 221 com dias em
	// 222-223; baixa na 224 com dias em 225-227.
	if len([]rune(l)) >= 227 {
		codProt := cnab.CampoTrim(l, 221, 221)
		diasProtRaw := cnab.CampoTrim(l, 222, 223)
		codBaixa := cnab.CampoTrim(l, 224, 224)
		diasBaixaRaw := cnab.CampoTrim(l, 225, 227)

		// 1=protestar dias corridos, 2=protestar dias úteis, 3=não protestar
		if codProt != "" && codProt != "1" && codProt != "2" && codProt != "3" {
			avisoP(avisos, "Linha %d (Lote %s, Seg. P): código de protesto '%s' não está entre os códigos usuais (1=protestar dias corridos, 2=protestar dias úteis, 3=não protestar). Confirme no manual/BB.", idx, lote, codProt)
		}

		if codProt == "1" || codProt == "2" {
			if diasProtRaw == "" || !cnab.TodosDigitos(diasProtRaw) {
				avisoP(avisos, "Linha %d (Lote %s, Seg. P): código de protesto '%s' informado, mas o número de dias para protesto '%s' não é numérico.", idx, lote, codProt, diasProtRaw)
			} else if dias, _ := strconv.Atoi(diasProtRaw); dias <= 0 {
				avisoP(avisos, "Linha %d (Lote %s, Seg. P): código de protesto '%s' informado, mas o número de dias para protesto é zero ou negativo. Verifique.", idx, lote, codProt)
			}
		}

		if (codProt == "" || codProt == "3") && preenchido(diasProtRaw) {
			avisoP(avisos, "Linha %d (Lote %s, Seg. P): código de protesto indica 'não protestar' (3 ou vazio), mas há dias para protesto preenchidos ('%s'). Verifique se o código está coerente.", idx, lote, diasProtRaw)
		}

		if codBaixa != "" && codBaixa != "1" && codBaixa != "2" {
			avisoP(avisos, "Linha %d (Lote %s, Seg. P): código de baixa/devolução '%s' não está entre os códigos usuais esperados (ex.: 1 ou 2). Verifique no manual/BB.", idx, lote, codBaixa)
		}

		if codBaixa == "1" {
			if diasBaixaRaw == "" || !cnab.TodosDigitos(diasBaixaRaw) {
				avisoP(avisos, "Linha %d (Lote %s, Seg. P): código de baixa/devolução '%s' informado, mas o número de dias para baixa/devolução '%s' não é numérico.", idx, lote, codBaixa, diasBaixaRaw)
			} else if dias, _ := strconv.Atoi(diasBaixaRaw); dias <= 0 {
				avisoP(avisos, "Linha %d (Lote %s, Seg. P): código de baixa/devolução '%s' informado, mas o número de dias para baixa/devolução é zero ou negativo. Verifique.", idx, lote, codBaixa)
			}
		}

		if (codBaixa == "" || codBaixa == "2") && preenchido(diasBaixaRaw) {
			avisoP(avisos, "Linha %d (Lote %s, Seg. P): código de baixa/devolução indica 'não baixar/devolver automaticamente', mas há dias para baixa/devolução preenchidos ('%s'). Verifique se o código está coerente.", idx, lote, diasBaixaRaw)
		}
	}

	// Coerência entre datas: emissão (posições 110-117) x vencimento x
	// desconto 1 x início dos juros.
	dataEmisRaw := cnab.CampoTrim(l, 110, 117)
	dtVenc := cnab.ParseDataDDMMAAAA(dataVencRaw)
	dtEmis := cnab.ParseDataDDMMAAAA(dataEmisRaw)

	if dtEmis != nil && dtVenc != nil && dtEmis.After(*dtVenc) {
		avisoP(avisos, "Linha %d (Lote %s, Seg. P): data de emissão do título (%s) é posterior à data de vencimento (%s). Verifique a coerência entre emissão e vencimento.", idx, lote, dataEmisRaw, dataVencRaw)
	}

	dtDesc1 := cnab.ParseDataDDMMAAAA(dataDesc1Raw)
	dtJuros := cnab.ParseDataDDMMAAAA(dataJurosRaw)

	if dtVenc != nil && dtEmis != nil && dtDesc1 != nil && (codDesc1 == "1" || codDesc1 == "2") {
		if dtDesc1.Before(*dtEmis) || dtDesc1.After(*dtVenc) {
			avisoP(avisos, "Linha %d (Lote %s, Seg. P): para código de desconto '%s', a data do desconto (%s) deveria estar entre a data de emissão (%s) e a data de vencimento (%s). Verifique a regra de desconto neste título.", idx, lote, codDesc1, dataDesc1Raw, dataEmisRaw, dataVencRaw)
		}
	}

	if dtVenc != nil && dtDesc1 != nil && codDesc1 == "3" && !dtDesc1.Equal(*dtVenc) {
		avisoP(avisos, "Linha %d (Lote %s, Seg. P): para código de desconto '3', a data do desconto (%s) deveria ser igual à data de vencimento (%s). Verifique a configuração do desconto.", idx, lote, dataDesc1Raw, dataVencRaw)
	}

	// C019: a data do juros de mora deve ser posterior ao vencimento.
	if dtVenc != nil && dtJuros != nil && !dtJuros.After(*dtVenc) {
		avisoP(avisos, "Linha %d (Lote %s, Seg. P): data de início dos juros de mora (%s) deveria ser posterior à data de vencimento (%s), conforme regras FEBRABAN. Verifique.", idx, lote, dataJurosRaw, dataVencRaw)
	}
}

func validarSegmentoQBB(avisos *[]domain.Aviso, l string, idx int, lote string) {
	tipoInsc := cnab.CampoTrim(l, 16, 17)
	docSacado := cnab.SomenteDigitos(cnab.CampoTrim(l, 18, 32))

	if (tipoInsc == "01" || tipoInsc == "02") && docSacado != "" {
		if tipoInsc == "01" {
			if len(docSacado) != 11 {
				avisoQ(avisos, "Linha %d (Lote %s, Seg. Q): Tipo informado é CPF (01), mas o documento possui %d dígitos — formato incompatível com CPF. Verifique se o tipo de inscrição está coerente com o documento.", idx, lote, len(docSacado))
			} else if !cnab.ValidarCPF(docSacado) {
				avisoQ(avisos, "Linha %d (Lote %s, Seg. Q): Documento informado é CPF (01), mas '%s' não passou na validação dos dígitos verificadores. Verifique se o documento está correto.", idx, lote, docSacado)
			}
		} else {
			if len(docSacado) != 14 {
				avisoQ(avisos, "Linha %d (Lote %s, Seg. Q): Tipo informado é CNPJ (02), mas o documento possui %d dígitos — formato incompatível com CNPJ. Verifique se o tipo de inscrição está coerente com o documento.", idx, lote, len(docSacado))
			} else if !cnab.ValidarCNPJ(docSacado) {
				avisoQ(avisos, "Linha %d (Lote %s, Seg. Q): Documento informado é CNPJ (02), mas '%s' não passou na validação dos dígitos verificadores. Verifique se o documento está correto.", idx, lote, docSacado)
			}
		}
	}

	nome := cnab.CampoTrim(l, 34, 73)
	if len([]rune(nome)) < 3 {
		avisoQ(avisos, "Linha %d (Lote %s, Seg. Q): nome do sacado muito curto ('%s').", idx, lote, nome)
	}

	if cnab.CampoTrim(l, 74, 113) == "" {
		avisoQ(avisos, "Linha %d (Lote %s, Seg. Q): endereço do sacado em branco.", idx, lote)
	}
	if cnab.CampoTrim(l, 137, 151) == "" {
		avisoQ(avisos, "Linha %d (Lote %s, Seg. Q): cidade do sacado em branco.", idx, lote)
	}

	uf := strings.ToUpper(cnab.CampoTrim(l, 152, 153))
	if uf != "" && !cnab.EstadosBR[uf] {
		avisoQ(avisos, "Linha %d (Lote %s, Seg. Q): UF do sacado '%s' não é um estado brasileiro válido.", idx, lote, uf)
	}

	cep := cnab.CampoTrim(l, 129, 136)
	cepNum := cnab.SomenteDigitos(cep)
	if cepNum == "" || len(cepNum) != 8 {
		avisoQ(avisos, "Linha %d (Lote %s, Seg. Q): CEP do sacado '%s' não possui 8 dígitos numéricos.", idx, lote, cep)
	}
}

func validarSegmentoRBB(avisos *[]domain.Aviso, l string, idx int, lote string) {
	if len([]rune(l)) < 90 {
		return
	}

	type blocoDesconto struct {
		nome     string
		cod      string
		dataRaw  string
		valorRaw string
	}

	blocos := []blocoDesconto{
		{nome: "Desconto 2", cod: cnab.CampoTrim(l, 18, 18), dataRaw: cnab.CampoTrim(l, 19, 26), valorRaw: cnab.CampoTrim(l, 27, 41)},
		{nome: "Desconto 3", cod: cnab.CampoTrim(l, 42, 42), dataRaw: cnab.CampoTrim(l, 43, 50), valorRaw: cnab.CampoTrim(l, 51, 65)},
	}

	for _, b := range blocos {
		if b.cod != "" && b.cod != "0" && b.cod != "1" && b.cod != "2" && b.cod != "3" {
			avisoR(avisos, "Linha %d (Lote %s, Seg. R): código de %s '%s' não está entre os códigos usuais (0, 1, 2, 3). Verifique o manual do banco.", idx, lote, b.nome, b.cod)
		}

		if b.cod == "1" || b.cod == "2" || b.cod == "3" {
			if cnab.ParseDataDDMMAAAA(b.dataRaw) == nil {
				avisoR(avisos, "Linha %d (Lote %s, Seg. R): código de %s '%s' informado, mas a data do desconto '%s' não está em formato DDMMAAAA ou é inválida.", idx, lote, b.nome, b.cod, b.dataRaw)
			}
			if b.valorRaw == "" || !cnab.TodosDigitos(b.valorRaw) {
				avisoR(avisos, "Linha %d (Lote %s, Seg. R): código de %s '%s' informado, mas o valor do desconto '%s' não é numérico.", idx, lote, b.nome, b.cod, b.valorRaw)
			} else if v, _ := strconv.ParseInt(b.valorRaw, 10, 64); v == 0 {
				avisoR(avisos, "Linha %d (Lote %s, Seg. R): código de %s '%s' informado, mas o valor do desconto está zerado. Verifique se o campo foi preenchido corretamente.", idx, lote, b.nome, b.cod)
			}
		}

		if (b.cod == "" || b.cod == "0") && (preenchido(b.dataRaw) || preenchido(b.valorRaw)) {
			avisoR(avisos, "Linha %d (Lote %s, Seg. R): código de %s indica 'sem desconto' (0 ou vazio), mas há data/valor preenchidos. Verifique coerência.", idx, lote, b.nome)
		}
	}

	// Multa: código na posição 66, data 67-74, valor/percentual 75-89.
	codMulta := cnab.CampoTrim(l, 66, 66)
	dataMultaRaw := cnab.CampoTrim(l, 67, 74)
	valorMultaRaw := cnab.CampoTrim(l, 75, 89)

	if codMulta != "" && codMulta != "0" && codMulta != "1" && codMulta != "2" && codMulta != "3" {
		avisoR(avisos, "Linha %d (Lote %s, Seg. R): código de multa '%s' não está entre os códigos usuais (0=sem multa, 1=valor, 2=percentual, 3=isento). Verifique o manual do banco.", idx, lote, codMulta)
	}

	if codMulta == "1" || codMulta == "2" {
		if cnab.ParseDataDDMMAAAA(dataMultaRaw) == nil {
			avisoR(avisos, "Linha %d (Lote %s, Seg. R): código de multa '%s' informado, mas a data da multa '%s' não está em formato DDMMAAAA ou é inválida.", idx, lote, codMulta, dataMultaRaw)
		}
		if valorMultaRaw == "" || !cnab.TodosDigitos(valorMultaRaw) {
			avisoR(avisos, "Linha %d (Lote %s, Seg. R): código de multa '%s' informado, mas o valor/percentual da multa '%s' não é numérico.", idx, lote, codMulta, valorMultaRaw)
		} else if v, _ := strconv.ParseInt(valorMultaRaw, 10, 64); v == 0 {
			avisoR(avisos, "Linha %d (Lote %s, Seg. R): código de multa '%s' informado, mas o valor/percentual da multa está zerado. Verifique se o campo foi preenchido corretamente.", idx, lote, codMulta)
		}
	}

	if (codMulta == "" || codMulta == "0" || codMulta == "3") && (preenchido(dataMultaRaw) || preenchido(valorMultaRaw)) {
		avisoR(avisos, "Linha %d (Lote %s, Seg. R): código de multa indica 'sem multa/isento' (0, 3 ou vazio), mas há data/valor de multa preenchidos. Verifique coerência.", idx, lote)
	}

	// Débito automático (opcional): banco 208-210, agência 211-215, conta 217-228.
	bancoDeb := cnab.CampoTrim(l, 208, 210)
	agDeb := cnab.CampoTrim(l, 211, 215)
	contaDeb := cnab.CampoTrim(l, 217, 228)

	if bancoDeb != "" || agDeb != "" || contaDeb != "" {
		if bancoDeb != "" && !cnab.TodosDigitos(bancoDeb) {
			avisoR(avisos, "Linha %d (Lote %s, Seg. R): banco para débito automático '%s' não é numérico.", idx, lote, bancoDeb)
		}
		if agDeb != "" && !cnab.TodosDigitos(agDeb) {
			avisoR(avisos, "Linha %d (Lote %s, Seg. R): agência para débito automático '%s' não é numérica.", idx, lote, agDeb)
		}
		if contaDeb != "" && !cnab.TodosDigitos(contaDeb) {
			avisoR(avisos, "Linha %d (Lote %s, Seg. R): conta corrente para débito automático '%s' não é numérica.", idx, lote, contaDeb)
		}
	}
}
