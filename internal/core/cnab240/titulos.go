// internal/core/cnab240/titulos.go
package cnab240

import (
	"strings"
	"time"

	"github.com/LuisEduardoPedra/validaCnab/internal/core/cnab"
	"github.com/LuisEduardoPedra/validaCnab/internal/domain"
	"github.com/shopspring/decimal"
)

// registroTipado é uma linha já classificada: a associação P→{Q,R} é
// resolvida varrendo esta lista ordenada, nunca as linhas cruas de novo.
type registroTipado struct {
	numeroLinha int // 1-based, para mensagens
	linha       string
	lote        string
	tipo        string
	segmento    string
}

func classificarRegistros(linhas []string) []registroTipado {
	registros := make([]registroTipado, 0, len(linhas))
	for i, linha := range linhas {
		if strings.TrimSpace(linha) == "" {
			continue
		}
		l := strings.TrimRight(linha, "\r\n")
		r := registroTipado{numeroLinha: i + 1, linha: l}
		if len([]rune(l)) >= 8 {
			r.lote = cnab.Campo(l, 4, 7)
			r.tipo = cnab.Campo(l, 8, 8)
		}
		if len([]rune(l)) >= 14 {
			r.segmento = strings.ToUpper(cnab.Campo(l, 14, 14))
		}
		registros = append(registros, r)
	}
	return registros
}

func lerDataSegmento(raw string) (*time.Time, string) {
	valor := strings.TrimSpace(raw)
	dt := cnab.ParseDataDDMMAAAA(valor)
	return dt, cnab.FormatarDataBR(dt)
}

func lerSegmentoR(l string) *domain.DadosSegmentoR {
	r := &domain.DadosSegmentoR{}

	// Desconto 2: código na 18, data 19-26, valor 27-41.
	r.Desconto2Codigo = cnab.CampoTrim(l, 18, 18)
	_, r.Desconto2Data = lerDataSegmento(cnab.Campo(l, 19, 26))
	if v, ok := cnab.ParseValorCentavos(cnab.Campo(l, 27, 41)); ok {
		r.Desconto2Valor = decimal.New(v, -2)
	}

	// Desconto 3: código na 42, data 43-50, valor 51-65.
	r.Desconto3Codigo = cnab.CampoTrim(l, 42, 42)
	_, r.Desconto3Data = lerDataSegmento(cnab.Campo(l, 43, 50))
	if v, ok := cnab.ParseValorCentavos(cnab.Campo(l, 51, 65)); ok {
		r.Desconto3Valor = decimal.New(v, -2)
	}

	// Multa: código na 66, data 67-74, valor 75-89.
	r.MultaCodigo = cnab.CampoTrim(l, 66, 66)
	_, r.MultaData = lerDataSegmento(cnab.Campo(l, 67, 74))
	if v, ok := cnab.ParseValorCentavos(cnab.Campo(l, 75, 89)); ok {
		r.MultaValor = decimal.New(v, -2)
	}

	return r
}

// ListarTitulos extrai um título por segmento P do arquivo, anexando os
// dados do sacado do segmento Q imediatamente seguinte e os descontos/multa
// de um segmento R até dois registros à frente, sempre dentro do mesmo lote.
func ListarTitulos(codigoBanco string, linhas []string) []domain.Titulo {
	var titulos []domain.Titulo

	layoutBanco, ok := Layouts[codigoBanco]
	if !ok {
		return titulos
	}
	camposP, okP := layoutBanco["P"]
	if !okP {
		return titulos
	}

	posicoes := map[string]CampoLayout{}
	for _, c := range camposP {
		posicoes[c.Nome] = c
	}
	for _, c := range layoutBanco["Q"] {
		posicoes[c.Nome] = c
	}

	cfgNosso, okN := posicoes["nosso_numero"]
	cfgVenc, okV := posicoes["data_vencimento"]
	cfgValor, okVal := posicoes["valor_titulo"]
	if !okN || !okV || !okVal {
		return titulos
	}

	registros := classificarRegistros(linhas)

	for idx, reg := range registros {
		if reg.tipo != "3" || reg.segmento != "P" {
			continue
		}
		l := reg.linha
		if len([]rune(l)) < 100 {
			continue
		}

		titulo := domain.Titulo{
			Linha:       reg.numeroLinha,
			Lote:        reg.lote,
			Sequencia:   cnab.Campo(l, 9, 13),
			NossoNumero: cnab.CampoTrim(l, cfgNosso.Inicio, cfgNosso.Fim),
		}

		dt, dtStr := lerDataSegmento(cnab.Campo(l, cfgVenc.Inicio, cfgVenc.Fim))
		titulo.DataVencimento = dt
		titulo.DataVencimentoStr = dtStr

		if v, ok := cnab.ParseValorCentavos(cnab.Campo(l, cfgValor.Inicio, cfgValor.Fim)); ok {
			titulo.ValorCentavos = v
		}
		titulo.ValorReais = decimal.New(titulo.ValorCentavos, -2)

		// Segmento R: até 2 registros à frente, mesmo lote.
		for delta := 1; delta <= 2; delta++ {
			if idx+delta >= len(registros) {
				break
			}
			prox := registros[idx+delta]
			if len([]rune(prox.linha)) < 90 {
				continue
			}
			if prox.tipo == "3" && prox.segmento == "R" && prox.lote == reg.lote {
				titulo.SegmentoR = lerSegmentoR(prox.linha)
				break
			}
		}

		// Segmento Q: registro imediatamente seguinte, mesmo lote.
		if idx+1 < len(registros) {
			prox := registros[idx+1]
			if len([]rune(prox.linha)) >= 153 && prox.tipo == "3" && prox.segmento == "Q" && prox.lote == reg.lote {
				q := prox.linha
				if c, ok := posicoes["tipo_inscricao"]; ok {
					titulo.TipoInscricaoSacado = cnab.CampoTrim(q, c.Inicio, c.Fim)
				}
				if c, ok := posicoes["documento_sacado"]; ok {
					titulo.DocumentoSacado = cnab.SomenteDigitos(cnab.CampoTrim(q, c.Inicio, c.Fim))
				}
				if c, ok := posicoes["nome_sacado"]; ok {
					titulo.NomeSacado = cnab.CampoTrim(q, c.Inicio, c.Fim)
				}
				if c, ok := posicoes["endereco_sacado"]; ok {
					titulo.EnderecoSacado = cnab.CampoTrim(q, c.Inicio, c.Fim)
				}
				if c, ok := posicoes["bairro_sacado"]; ok {
					titulo.BairroSacado = cnab.CampoTrim(q, c.Inicio, c.Fim)
				}
				if c, ok := posicoes["cep_sacado"]; ok {
					titulo.CEPSacado = cnab.CampoTrim(q, c.Inicio, c.Fim)
				}
				if c, ok := posicoes["cidade_sacado"]; ok {
					titulo.CidadeSacado = cnab.CampoTrim(q, c.Inicio, c.Fim)
				}
				if c, ok := posicoes["uf_sacado"]; ok {
					titulo.UFSacado = cnab.CampoTrim(q, c.Inicio, c.Fim)
				}
			}
		}

		titulos = append(titulos, titulo)
	}

	return titulos
}

// GerarResumo recalcula os agregados da remessa a partir dos títulos
// extraídos: quantidade, valor total e a janela de vencimentos.
func GerarResumo(titulos []domain.Titulo) *domain.ResumoRemessa {
	resumo := &domain.ResumoRemessa{}

	var min, max *time.Time
	for _, t := range titulos {
		resumo.QuantidadeTitulos++
		resumo.ValorTotalCentavos += t.ValorCentavos
		if t.DataVencimento != nil {
			if min == nil || t.DataVencimento.Before(*min) {
				min = t.DataVencimento
			}
			if max == nil || t.DataVencimento.After(*max) {
				max = t.DataVencimento
			}
		}
	}

	resumo.ValorTotalReais = decimal.New(resumo.ValorTotalCentavos, -2)
	resumo.MenorVencimento = cnab.FormatarDataBR(min)
	resumo.MaiorVencimento = cnab.FormatarDataBR(max)
	return resumo
}
