// internal/core/validation/service.go
//
// Orquestração da validação de remessa: decodifica o arquivo (Latin-1),
// detecta o layout (240 ou 400) e encaminha para o conjunto de regras do
// banco detectado, consolidando tudo em um ResultadoValidacao.
package validation

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/LuisEduardoPedra/validaCnab/internal/core/cnab"
	"github.com/LuisEduardoPedra/validaCnab/internal/core/cnab240"
	"github.com/LuisEduardoPedra/validaCnab/internal/core/cnab400"
	"github.com/LuisEduardoPedra/validaCnab/internal/domain"
	"golang.org/x/text/encoding/charmap"
)

type Service interface {
	ValidarRemessa(arquivo io.Reader, dados domain.DadosConta) (*domain.ResultadoValidacao, error)
}

type service struct{}

func NewService() Service {
	return &service{}
}

// LerLinhas decodifica o arquivo de remessa de ISO-8859-1 (padrão dos CNABs
// gerados por ERPs brasileiros) para UTF-8 e devolve as linhas.
func LerLinhas(arquivo io.Reader) ([]string, error) {
	decoder := charmap.ISO8859_1.NewDecoder()
	scanner := bufio.NewScanner(decoder.Reader(arquivo))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var linhas []string
	for scanner.Scan() {
		linhas = append(linhas, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler arquivo de remessa: %w", err)
	}
	return linhas, nil
}

func (s *service) ValidarRemessa(arquivo io.Reader, dados domain.DadosConta) (*domain.ResultadoValidacao, error) {
	linhas, err := LerLinhas(arquivo)
	if err != nil {
		return nil, err
	}
	return ValidarLinhas(linhas, dados), nil
}

// ValidarLinhas roda a validação completa sobre linhas já decodificadas.
func ValidarLinhas(linhas []string, dados domain.DadosConta) *domain.ResultadoValidacao {
	res := novoResultadoValidacao()

	layout, tamanhos := cnab.DetectarLayout(linhas)
	res.TamanhosEncontrados = tamanhos
	if layout == 0 {
		res.Layout = "desconhecido"
		res.ErrosTamanho = append(res.ErrosTamanho, fmt.Sprintf(
			"Não foi possível identificar um layout único (240 ou 400). Tamanhos de linha encontrados: %v.", tamanhos))
		return res
	}
	res.Layout = strconv.Itoa(layout)
	res.ErrosTamanho = append(res.ErrosTamanho, cnab.ValidarTamanhoLinhas(linhas, layout)...)

	if len(linhas) == 0 {
		return res
	}

	switch layout {
	case 240:
		validarCnab240(res, linhas, dados)
	case 400:
		validarCnab400(res, linhas, dados)
	}

	return res
}

func novoResultadoValidacao() *domain.ResultadoValidacao {
	return &domain.ResultadoValidacao{
		ErrosTamanho:   []string{},
		ErrosEstrutura: []string{},
		ErrosBanco:     []string{},
		ErrosLotes:     []string{},
		ErrosSequencia: []string{},
		ErrosSegmentos: []string{},
		Avisos:         []domain.Aviso{},
		Titulos:        []domain.Titulo{},
	}
}

func validarCnab240(res *domain.ResultadoValidacao, linhas []string, dados domain.DadosConta) {
	codigoBanco, nomeBanco := cnab.IdentificarBanco(linhas[0])
	res.CodigoBanco = codigoBanco
	res.NomeBanco = nomeBanco

	sisdeb := codigoBanco == "341" && cnab240.DetectarSisdeb(linhas)

	res.ErrosEstrutura = append(res.ErrosEstrutura, cnab240.ValidarEstrutura(linhas)...)
	res.ErrosEstrutura = append(res.ErrosEstrutura, cnab240.ValidarTotaisArquivo(linhas)...)
	res.ErrosBanco = append(res.ErrosBanco, cnab240.ValidarCodigoBancoConsistente(linhas, codigoBanco)...)
	res.ErrosLotes = append(res.ErrosLotes, cnab240.ValidarLotes(linhas)...)
	res.ErrosLotes = append(res.ErrosLotes, cnab240.ValidarQuantidadesLote(linhas)...)
	res.ErrosSequencia = append(res.ErrosSequencia, cnab240.ValidarSequenciaRegistros(linhas)...)

	if sisdeb {
		analise := cnab240.ValidarSisdeb(linhas)
		res.Sisdeb = analise
		res.Titulos = analise.Titulos
		res.Resumo = analise.Resumo
	} else {
		erros, avisos := cnab240.ValidarSegmentos(codigoBanco, linhas)
		res.ErrosSegmentos = append(res.ErrosSegmentos, erros...)
		res.Avisos = append(res.Avisos, avisos...)

		if codigoBanco == "001" {
			res.Avisos = append(res.Avisos, cnab240.ValidarSegmentosAvancadosBB(linhas)...)
			res.Avisos = append(res.Avisos, cnab240.ValidarConvenioCarteiraNossoNumeroBB(linhas)...)
		}

		res.Titulos = cnab240.ListarTitulos(codigoBanco, linhas)
		res.Resumo = cnab240.GerarResumo(res.Titulos)

		if codigoBanco == "001" {
			res.Avisos = append(res.Avisos, avisosNossoNumeroDuplicado(res.Titulos)...)
		}
	}

	if codigoBanco == "748" {
		analise := cnab240.ValidarSicredi(linhas)
		res.ErrosEstrutura = append(res.ErrosEstrutura, analise.ErrosHeader...)
		res.ErrosSegmentos = append(res.ErrosSegmentos, analise.ErrosSegmentos...)
		res.Avisos = append(res.Avisos, analise.Avisos...)
	}

	confrontarDadosConta(res, codigoBanco, linhas, dados, 240)
}

func validarCnab400(res *domain.ResultadoValidacao, linhas []string, dados domain.DadosConta) {
	validador := cnab400.ParaArquivo(linhas)
	analise := validador.Validar(linhas, dados)

	res.CodigoBanco = analise.CodigoBanco
	res.NomeBanco = analise.NomeBanco
	res.Cnab400 = analise
	res.Titulos = analise.Titulos
	res.Resumo = analise.Resumo

	confrontarDadosConta(res, analise.CodigoBanco, linhas, dados, 400)
}

func confrontarDadosConta(res *domain.ResultadoValidacao, codigoBanco string, linhas []string, dados domain.DadosConta, layout int) {
	if banco := strings.TrimSpace(dados.Banco); banco != "" && banco != codigoBanco {
		res.ErrosDadosConta = append(res.ErrosDadosConta, fmt.Sprintf(
			"Banco informado (%s) é diferente do banco detectado no arquivo (%s).", banco, codigoBanco))
	}

	var erros, avisos []string
	if layout == 240 {
		erros, avisos = cnab240.ValidarDadosCedente(codigoBanco, linhas, dados)
	} else {
		erros, avisos = cnab400.ValidarDadosCedente(codigoBanco, linhas, dados)
	}
	res.ErrosDadosConta = append(res.ErrosDadosConta, erros...)
	res.AvisosDadosConta = append(res.AvisosDadosConta, avisos...)
}

// avisosNossoNumeroDuplicado procura títulos repetindo o mesmo Nosso Número
// na remessa, algo que o BB rejeita no processamento noturno.
func avisosNossoNumeroDuplicado(titulos []domain.Titulo) []domain.Aviso {
	var avisos []domain.Aviso
	vistos := map[string]domain.Titulo{}

	for _, t := range titulos {
		nn := strings.TrimSpace(t.NossoNumero)
		if nn == "" {
			continue
		}
		if primeiro, ok := vistos[nn]; ok {
			avisos = append(avisos, domain.Aviso{
				Categoria: domain.CategoriaConvenio,
				Mensagem: fmt.Sprintf(
					"Títulos com o mesmo Nosso Número '%s': primeiro em Lote %s, Seq %s; depois em Lote %s, Seq %s.",
					nn, primeiro.Lote, primeiro.Sequencia, t.Lote, t.Sequencia),
			})
		} else {
			vistos[nn] = t
		}
	}
	return avisos
}
