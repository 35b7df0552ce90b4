// internal/core/cnab400/banestes.go
package cnab400

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/LuisEduardoPedra/validaCnab/internal/core/cnab"
	"github.com/LuisEduardoPedra/validaCnab/internal/domain"
	"github.com/shopspring/decimal"
)

// validadorBanestes cobre o essencial do layout 400 do Banestes: header,
// extração dos detalhes e conferência de totais do trailer. Tipos de registro
// desconhecidos viram aviso, não erro.
type validadorBanestes struct{}

func (validadorBanestes) Codigo() string { return "021" }

func (validadorBanestes) Validar(linhas []string, _ domain.DadosConta) *domain.ResultadoCnab400 {
	res := novoResultado("021", cnab.NomeBanco("021"))

	var header *domain.HeaderCnab400
	ultimoSeq := 0
	trailerEncontrado := false
	var acumulador acumuladorResumo

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
					"Linha %d: sequência %06d fora da ordem esperada (%06d).", numeroLinha, seq, ultimoSeq+1))
			}
			ultimoSeq = seq
		} else {
			res.ErrosRegistros = append(res.ErrosRegistros, fmt.Sprintf(
				"Linha %d: sequência do registro (pos. 395-400) inválida.", numeroLinha))
		}

		tipo := cnab.Campo(l, 1, 1)
		switch tipo {
		case "0":
			if header != nil {
				res.ErrosHeader = append(res.ErrosHeader, "Foi encontrado mais de um registro header no arquivo CNAB 400.")
				continue
			}
			if banco := cnab.Campo(l, 77, 79); banco != "021" {
				res.ErrosHeader = append(res.ErrosHeader,
					"Header: código do banco (pos. 077-079) deve ser 021.")
			}
			header = &domain.HeaderCnab400{
				NomeCedente:       cnab.CampoTrim(l, 47, 76),
				Agencia:           cnab.CampoTrim(l, 27, 30),
				AgenciaDV:         cnab.CampoTrim(l, 31, 31),
				Conta:             cnab.CampoTrim(l, 32, 39),
				ContaDV:           cnab.CampoTrim(l, 40, 40),
				Documento:         cnab.SomenteDigitos(cnab.Campo(l, 18, 31)),
				SequencialRemessa: cnab.CampoTrim(l, 111, 117),
				DataGravacao:      cnab.FormatarDataBR(cnab.ParseDataDDMMAA(cnab.Campo(l, 95, 100))),
			}

		case "1":
			nossoNumero := cnab.CampoTrim(l, 64, 80)
			if nossoNumero == "" {
				nossoNumero = cnab.CampoTrim(l, 48, 56)
			}
			dataVenc := cnab.ParseDataDDMMAA(cnab.Campo(l, 121, 126))
			valorCentavos, _ := cnab.ParseValorCentavos(cnab.Campo(l, 127, 139))

			titulo := domain.Titulo{
				Linha:             numeroLinha,
				Sequencia:         seqRaw,
				NossoNumero:       nossoNumero,
				SeuNumero:         cnab.CampoTrim(l, 111, 120),
				Carteira:          cnab.CampoTrim(l, 107, 108),
				Comando:           cnab.CampoTrim(l, 109, 110),
				DataVencimento:    dataVenc,
				DataVencimentoStr: cnab.FormatarDataBR(dataVenc),
				ValorCentavos:     valorCentavos,
				ValorReais:        decimal.New(valorCentavos, -2),
				DocumentoSacado:   cnab.SomenteDigitos(cnab.Campo(l, 220, 233)),
				NomeSacado:        cnab.CampoTrim(l, 234, 274),
			}
			acumulador.somar(valorCentavos, dataVenc)
			acumulador.contarComando(titulo.Comando)
			acumulador.contarCarteira(titulo.Carteira)
			res.Titulos = append(res.Titulos, titulo)

		case "5":
			acumulador.resumo.RegistrosOpcionais++

		case "9":
			trailerEncontrado = true
			if banco := cnab.CampoTrim(l, 3, 5); banco != "" && banco != "021" {
				res.ErrosTrailer = append(res.ErrosTrailer,
					"Trailer: código do banco (pos. 003-005) deveria ser 021.")
			}
			if qtd := cnab.CampoTrim(l, 18, 25); cnab.TodosDigitos(qtd) {
				qtdTrailer, _ := strconv.Atoi(qtd)
				if acumulador.resumo.QuantidadeTitulos != 0 && acumulador.resumo.QuantidadeTitulos != qtdTrailer {
					aviso(res, domain.CategoriaTrailer, fmt.Sprintf(
						"Trailer informa %d títulos, mas foram encontrados %d registros tipo 1.",
						qtdTrailer, acumulador.resumo.QuantidadeTitulos))
				}
			}
			if total := cnab.CampoTrim(l, 26, 39); cnab.TodosDigitos(total) {
				totalTrailer, _ := strconv.ParseInt(total, 10, 64)
				if acumulador.resumo.ValorTotalCentavos != 0 && acumulador.resumo.ValorTotalCentavos != totalTrailer {
					aviso(res, domain.CategoriaTrailer,
						"Valor total do trailer difere do somatório calculado a partir dos registros tipo 1.")
				}
			}

		default:
			aviso(res, domain.CategoriaOutros, fmt.Sprintf(
				"Linha %d: tipo de registro '%s' não mapeado para o layout CNAB 400 do Banestes.", numeroLinha, tipo))
		}
	}

	if header == nil {
		res.ErrosHeader = append(res.ErrosHeader, "Header do arquivo CNAB 400 não foi localizado.")
	}
	if !trailerEncontrado {
		res.ErrosTrailer = append(res.ErrosTrailer, "Trailer do arquivo (registro tipo 9) não foi encontrado.")
	}

	res.Header = header
	res.Resumo = acumulador.fechar()
	return res
}
