// internal/core/cnab240/segmentos.go
package cnab240

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/LuisEduardoPedra/validaCnab/internal/core/cnab"
	"github.com/LuisEduardoPedra/validaCnab/internal/domain"
)

// TipoCampo identifica a regra-folha aplicada a um campo do layout.
type TipoCampo string

const (
	TipoNumero       TipoCampo = "numero"
	TipoAlfanumerico TipoCampo = "alfanumerico"
	TipoTexto        TipoCampo = "texto"
	TipoLista        TipoCampo = "lista"
	TipoDataDDMMAAAA TipoCampo = "data_ddmmaaaa"
	TipoValor        TipoCampo = "valor"
	TipoCEP          TipoCampo = "cep"
	TipoUF           TipoCampo = "uf"
)

// CampoLayout descreve um campo de segmento: posição no registro (1-based,
// inclusiva), tipo, obrigatoriedade e restrições adicionais.
type CampoLayout struct {
	Nome          string
	Inicio        int
	Fim           int
	Tipo          TipoCampo
	Obrigatorio   bool
	Permitidos    []string
	MinLen        int
	ProibeSoZeros bool
}

// LayoutSegmentos mapeia a letra do segmento para a lista ordenada de campos.
type LayoutSegmentos map[string][]CampoLayout

// layoutComumPQ é o layout de cobrança compartilhado pelos bancos da tabela:
// os campos dos segmentos P e Q seguem o padrão FEBRABAN.
var layoutComumPQ = LayoutSegmentos{
	"P": {
		{Nome: "nosso_numero", Inicio: 38, Fim: 57, Tipo: TipoAlfanumerico, Obrigatorio: true},
		{Nome: "data_vencimento", Inicio: 78, Fim: 85, Tipo: TipoDataDDMMAAAA, Obrigatorio: true},
		{Nome: "valor_titulo", Inicio: 86, Fim: 100, Tipo: TipoValor, Obrigatorio: true},
	},
	"Q": {
		{Nome: "tipo_inscricao", Inicio: 16, Fim: 17, Tipo: TipoLista, Obrigatorio: true, Permitidos: []string{"01", "02"}},
		{Nome: "documento_sacado", Inicio: 18, Fim: 32, Tipo: TipoNumero, Obrigatorio: true, ProibeSoZeros: true},
		{Nome: "nome_sacado", Inicio: 34, Fim: 73, Tipo: TipoTexto, Obrigatorio: true, MinLen: 3},
		{Nome: "endereco_sacado", Inicio: 74, Fim: 113, Tipo: TipoTexto, Obrigatorio: true},
		{Nome: "bairro_sacado", Inicio: 114, Fim: 128, Tipo: TipoTexto},
		{Nome: "cep_sacado", Inicio: 129, Fim: 136, Tipo: TipoCEP, Obrigatorio: true},
		{Nome: "cidade_sacado", Inicio: 137, Fim: 151, Tipo: TipoTexto, Obrigatorio: true},
		{Nome: "uf_sacado", Inicio: 152, Fim: 153, Tipo: TipoUF, Obrigatorio: true},
	},
}

// Layouts registra o layout de segmentos de cada banco suportado na cobrança
// CNAB 240.
var Layouts = map[string]LayoutSegmentos{
	"001": layoutComumPQ, // Banco do Brasil
	"033": layoutComumPQ, // Santander
	"070": layoutComumPQ, // Banco de Brasília (BRB)
	"104": layoutComumPQ, // Caixa Econômica Federal
	"237": layoutComumPQ, // Bradesco
	"341": layoutComumPQ, // Itaú
	"748": layoutComumPQ, // Sicredi
	"756": layoutComumPQ, // Sicoob
}

func categoriaSegmento(segmento string) domain.CategoriaAviso {
	switch segmento {
	case "P":
		return domain.CategoriaSegmentoP
	case "Q":
		return domain.CategoriaSegmentoQ
	case "R":
		return domain.CategoriaSegmentoR
	default:
		return domain.CategoriaOutros
	}
}

func alfanumerico(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

func soZeros(s string) bool {
	for _, r := range s {
		if r != '0' {
			return false
		}
	}
	return s != ""
}

// ValidarSegmentos aplica as regras de campo do layout registrado para o
// banco, percorrendo apenas registros de detalhe (tipo 3). Campos
// obrigatórios em branco e tipos malformados viram erros; questões
// cosméticas viram avisos.
func ValidarSegmentos(codigoBanco string, linhas []string) ([]string, []domain.Aviso) {
	var erros []string
	var avisos []domain.Aviso

	layoutBanco, ok := Layouts[codigoBanco]
	if !ok {
		avisos = append(avisos, domain.Aviso{
			Categoria: domain.CategoriaOutros,
			Mensagem:  fmt.Sprintf("Não há layout de segmentos configurado para o banco %s.", codigoBanco),
		})
		return erros, avisos
	}

	for i, linha := range linhas {
		if strings.TrimSpace(linha) == "" {
			continue
		}
		l := strings.TrimRight(linha, "\r\n")
		if len([]rune(l)) < 15 {
			continue
		}
		if cnab.Campo(l, 8, 8) != "3" {
			continue
		}

		segmento := strings.ToUpper(cnab.Campo(l, 14, 14))
		campos, ok := layoutBanco[segmento]
		if !ok {
			continue
		}

		for _, campo := range campos {
			raw := cnab.Campo(l, campo.Inicio, campo.Fim)
			valor := strings.TrimSpace(raw)
			label := fmt.Sprintf("Linha %d (Segmento %s - %s)", i+1, segmento, campo.Nome)
			posStr := fmt.Sprintf("(posições %d-%d)", campo.Inicio, campo.Fim)

			if valor == "" {
				if campo.Obrigatorio {
					erros = append(erros, fmt.Sprintf("%s: campo obrigatório em branco %s.", label, posStr))
				}
				continue
			}

			switch campo.Tipo {
			case TipoNumero:
				if !cnab.TodosDigitos(valor) {
					erros = append(erros, fmt.Sprintf("%s: valor '%s' contém caracteres não numéricos %s.", label, raw, posStr))
				} else if campo.ProibeSoZeros && soZeros(valor) {
					erros = append(erros, fmt.Sprintf("%s: valor não pode ser composto apenas por zeros %s.", label, posStr))
				}

			case TipoAlfanumerico:
				if !alfanumerico(valor) {
					avisos = append(avisos, domain.Aviso{
						Categoria: categoriaSegmento(segmento),
						Mensagem:  fmt.Sprintf("%s: valor '%s' contém caracteres não alfanuméricos %s.", label, valor, posStr),
					})
				}

			case TipoTexto:
				if len([]rune(valor)) < campo.MinLen {
					avisos = append(avisos, domain.Aviso{
						Categoria: categoriaSegmento(segmento),
						Mensagem: fmt.Sprintf("%s: texto muito curto (tamanho %d, mínimo %d) %s.",
							label, len([]rune(valor)), campo.MinLen, posStr),
					})
				}

			case TipoLista:
				permitido := false
				for _, p := range campo.Permitidos {
					if valor == p {
						permitido = true
						break
					}
				}
				if !permitido {
					erros = append(erros, fmt.Sprintf("%s: valor '%s' inválido (esperado um de %v) %s.",
						label, valor, campo.Permitidos, posStr))
				}

			case TipoDataDDMMAAAA:
				if len(valor) != 8 || !cnab.TodosDigitos(valor) {
					erros = append(erros, fmt.Sprintf("%s: data '%s' com formato inválido (esperado DDMMAAAA numérico) %s.",
						label, raw, posStr))
				} else {
					dia, _ := strconv.Atoi(valor[0:2])
					mes, _ := strconv.Atoi(valor[2:4])
					ano, _ := strconv.Atoi(valor[4:8])
					if dia < 1 || dia > 31 || mes < 1 || mes > 12 || ano < 1900 || ano > 2099 {
						erros = append(erros, fmt.Sprintf("%s: data '%s' fora de faixa válida %s.", label, valor, posStr))
					}
				}

			case TipoValor:
				if !cnab.TodosDigitos(valor) {
					erros = append(erros, fmt.Sprintf("%s: valor '%s' não é numérico %s.", label, raw, posStr))
				} else if centavos, _ := strconv.ParseInt(valor, 10, 64); centavos <= 0 {
					erros = append(erros, fmt.Sprintf("%s: valor deve ser maior que zero %s.", label, posStr))
				}

			case TipoCEP:
				if !cnab.TodosDigitos(valor) || len(valor) != 8 {
					erros = append(erros, fmt.Sprintf("%s: CEP '%s' inválido (esperado 8 dígitos) %s.", label, raw, posStr))
				} else if valor == "00000000" {
					erros = append(erros, fmt.Sprintf("%s: CEP não pode ser '00000000' %s.", label, posStr))
				}

			case TipoUF:
				if !cnab.EstadosBR[valor] {
					erros = append(erros, fmt.Sprintf("%s: UF '%s' inválida (não é um estado brasileiro conhecido) %s.", label, raw, posStr))
				}
			}
		}
	}

	return erros, avisos
}
