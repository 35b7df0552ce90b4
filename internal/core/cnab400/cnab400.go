// internal/core/cnab400/cnab400.go

// Package cnab400 valida arquivos de remessa no padrão CNAB 400. Cada banco
// tem um layout próprio de 400 posições, então a validação é feita por uma
// estratégia por banco, escolhida a partir do header do arquivo.
package cnab400

import (
	"strings"
	"time"

	"github.com/LuisEduardoPedra/validaCnab/internal/core/cnab"
	"github.com/LuisEduardoPedra/validaCnab/internal/domain"
	"github.com/shopspring/decimal"
)

// Validator valida um arquivo CNAB 400 completo de um único banco.
type Validator interface {
	// Codigo devolve o código FEBRABAN do banco coberto pela estratégia.
	Codigo() string
	// Validar percorre o arquivo inteiro e devolve erros por região
	// (header, registros, trailer), avisos e os títulos extraídos.
	Validar(linhas []string, dados domain.DadosConta) *domain.ResultadoCnab400
}

var validadores = map[string]Validator{
	"001": validadorBB{},
	"021": validadorBanestes{},
	"033": validadorSantander{},
	"070": validadorBRB{},
	"104": validadorCaixa{},
	"237": validadorBradesco{},
	"341": validadorItau{},
	"748": validadorSicredi{},
}

// PorCodigo devolve a estratégia cadastrada para o código de banco.
func PorCodigo(codigo string) (Validator, bool) {
	v, ok := validadores[codigo]
	return v, ok
}

// ParaArquivo escolhe a estratégia pelo código de banco gravado no header
// (pos. 077-079). O layout do BRB não tem header tipo 0 e é reconhecido pelo
// literal 'DCB' no início do arquivo. Sem correspondência, o arquivo é
// tratado como Banco do Brasil, o layout mais comum nas remessas recebidas.
func ParaArquivo(linhas []string) Validator {
	for _, linha := range linhas {
		l := strings.TrimRight(linha, "\r\n")
		if strings.TrimSpace(l) == "" {
			continue
		}
		if cnab.Campo(l, 1, 3) == "DCB" {
			return validadores["070"]
		}
		if v, ok := validadores[cnab.Campo(l, 77, 79)]; ok {
			return v
		}
		break
	}
	return validadores["001"]
}

func novoResultado(codigo, nome string) *domain.ResultadoCnab400 {
	return &domain.ResultadoCnab400{
		CodigoBanco:    codigo,
		NomeBanco:      nome,
		ErrosHeader:    []string{},
		ErrosRegistros: []string{},
		ErrosTrailer:   []string{},
		Avisos:         []domain.Aviso{},
		Titulos:        []domain.Titulo{},
	}
}

// acumuladorResumo recalcula os agregados da remessa conforme os detalhes
// são lidos, sem confiar nos totais declarados em trailer.
type acumuladorResumo struct {
	resumo   domain.ResumoRemessa
	min, max *time.Time
}

func (a *acumuladorResumo) somar(valorCentavos int64, vencimento *time.Time) {
	a.resumo.QuantidadeTitulos++
	a.resumo.ValorTotalCentavos += valorCentavos
	if vencimento != nil {
		if a.min == nil || vencimento.Before(*a.min) {
			a.min = vencimento
		}
		if a.max == nil || vencimento.After(*a.max) {
			a.max = vencimento
		}
	}
}

func (a *acumuladorResumo) contarComando(comando string) {
	if comando == "" {
		return
	}
	if a.resumo.Comandos == nil {
		a.resumo.Comandos = map[string]int{}
	}
	a.resumo.Comandos[comando]++
}

func (a *acumuladorResumo) contarCarteira(carteira string) {
	if carteira == "" {
		return
	}
	if a.resumo.Carteiras == nil {
		a.resumo.Carteiras = map[string]int{}
	}
	a.resumo.Carteiras[carteira]++
}

func (a *acumuladorResumo) fechar() *domain.ResumoRemessa {
	a.resumo.ValorTotalReais = decimal.New(a.resumo.ValorTotalCentavos, -2)
	a.resumo.MenorVencimento = cnab.FormatarDataBR(a.min)
	a.resumo.MaiorVencimento = cnab.FormatarDataBR(a.max)
	r := a.resumo
	return &r
}

func aviso(res *domain.ResultadoCnab400, categoria domain.CategoriaAviso, mensagem string) {
	res.Avisos = append(res.Avisos, domain.Aviso{Categoria: categoria, Mensagem: mensagem})
}
