package cnab400

import (
	"strings"
	"testing"

	"github.com/LuisEduardoPedra/validaCnab/internal/domain"
)

// campoFixo posiciona um valor em uma linha de largura fixa (pos 1-based).
type campoFixo struct {
	pos   int
	valor string
}

func montarLinha400(campos ...campoFixo) string {
	b := []rune(strings.Repeat(" ", 400))
	for _, c := range campos {
		copy(b[c.pos-1:], []rune(c.valor))
	}
	return string(b)
}

func TestParaArquivo(t *testing.T) {
	t.Run("Literal DCB escolhe o BRB", func(t *testing.T) {
		linhas := []string{montarLinha400(campoFixo{1, "DCB001075"})}
		if v := ParaArquivo(linhas); v.Codigo() != "070" {
			t.Errorf("código = %s, esperado 070", v.Codigo())
		}
	})

	t.Run("Código do banco nas posições 77-79", func(t *testing.T) {
		linhas := []string{montarLinha400(campoFixo{1, "0"}, campoFixo{77, "341"})}
		if v := ParaArquivo(linhas); v.Codigo() != "341" {
			t.Errorf("código = %s, esperado 341", v.Codigo())
		}
	})

	t.Run("Sem correspondência assume Banco do Brasil", func(t *testing.T) {
		linhas := []string{montarLinha400(campoFixo{1, "0"}, campoFixo{77, "XYZ"})}
		if v := ParaArquivo(linhas); v.Codigo() != "001" {
			t.Errorf("código = %s, esperado 001", v.Codigo())
		}
	})

	t.Run("Linhas em branco no topo são ignoradas", func(t *testing.T) {
		linhas := []string{"   ", montarLinha400(campoFixo{1, "0"}, campoFixo{77, "748"})}
		if v := ParaArquivo(linhas); v.Codigo() != "748" {
			t.Errorf("código = %s, esperado 748", v.Codigo())
		}
	})
}

func headerBB() string {
	return montarLinha400(
		campoFixo{1, "01REMESSA01COBRANCA"},
		campoFixo{27, "1234"}, campoFixo{31, "5"},
		campoFixo{32, "00123456"}, campoFixo{40, "7"},
		campoFixo{41, "000000"},
		campoFixo{47, "EMPRESA EXEMPLO LTDA"},
		campoFixo{77, "001BANCODOBRASIL"},
		campoFixo{95, "150424"},
		campoFixo{101, "0000001"},
		campoFixo{130, "1234567"},
		campoFixo{395, "000001"},
	)
}

func detalheBB(seq string) string {
	return montarLinha400(
		campoFixo{1, "7"},
		campoFixo{2, "02"},
		campoFixo{4, "11222333000181"},
		campoFixo{18, "1234"}, campoFixo{22, "5"},
		campoFixo{23, "00123456"}, campoFixo{31, "7"},
		campoFixo{32, "1234567"},
		campoFixo{64, "12345670000000001"},
		campoFixo{92, "019"},
		campoFixo{107, "17"},
		campoFixo{109, "01"},
		campoFixo{111, "DOC001"},
		campoFixo{121, "150525"},
		campoFixo{127, "0000000012345"},
		campoFixo{140, "001"},
		campoFixo{148, "01"},
		campoFixo{150, "N"},
		campoFixo{151, "150424"},
		campoFixo{224, "11144477735"},
		campoFixo{219, "01"},
		campoFixo{235, "JOAO DA SILVA"},
		campoFixo{275, "RUA DOS ANDRADAS 100"},
		campoFixo{315, "CENTRO"},
		campoFixo{327, "93010100"},
		campoFixo{335, "PORTO ALEGRE"},
		campoFixo{350, "RS"},
		campoFixo{395, seq},
	)
}

func trailerBB(seq string) string {
	return montarLinha400(campoFixo{1, "9"}, campoFixo{395, seq})
}

func TestValidarBB(t *testing.T) {
	t.Run("Remessa completa sem erros", func(t *testing.T) {
		linhas := []string{headerBB(), detalheBB("000002"), trailerBB("000003")}
		res := validadorBB{}.Validar(linhas, domain.DadosConta{})

		if len(res.ErrosHeader) != 0 {
			t.Errorf("erros de header inesperados: %v", res.ErrosHeader)
		}
		if len(res.ErrosRegistros) != 0 {
			t.Errorf("erros de registro inesperados: %v", res.ErrosRegistros)
		}
		if len(res.ErrosTrailer) != 0 {
			t.Errorf("erros de trailer inesperados: %v", res.ErrosTrailer)
		}
		if len(res.Avisos) != 0 {
			t.Errorf("avisos inesperados: %v", res.Avisos)
		}

		if len(res.Titulos) != 1 {
			t.Fatalf("esperava 1 título, obteve %d", len(res.Titulos))
		}
		titulo := res.Titulos[0]
		if titulo.NossoNumero != "12345670000000001" {
			t.Errorf("nosso número = %q", titulo.NossoNumero)
		}
		if titulo.DataVencimentoStr != "15/05/2025" {
			t.Errorf("vencimento = %q", titulo.DataVencimentoStr)
		}
		if titulo.ValorCentavos != 12345 {
			t.Errorf("valor = %d centavos", titulo.ValorCentavos)
		}
		if titulo.DocumentoSacado != "11144477735" {
			t.Errorf("documento do sacado = %q", titulo.DocumentoSacado)
		}

		if res.Header == nil || res.Header.Agencia != "1234" || res.Header.Conta != "00123456" {
			t.Errorf("header = %+v", res.Header)
		}
		if res.Resumo.QuantidadeTitulos != 1 || res.Resumo.ValorTotalCentavos != 12345 {
			t.Errorf("resumo = %+v", res.Resumo)
		}
		if res.Resumo.Comandos["01"] != 1 || res.Resumo.Carteiras["17"] != 1 {
			t.Errorf("comandos/carteiras = %v / %v", res.Resumo.Comandos, res.Resumo.Carteiras)
		}
	})

	t.Run("Agência do detalhe diferente do header", func(t *testing.T) {
		detalhe := strings.Replace(detalheBB("000002"), "1234", "9999", 1)
		linhas := []string{headerBB(), detalhe, trailerBB("000003")}
		res := validadorBB{}.Validar(linhas, domain.DadosConta{})
		achou := false
		for _, e := range res.ErrosRegistros {
			if strings.Contains(e, "difere do header (9999 x 1234)") {
				achou = true
			}
		}
		if !achou {
			t.Errorf("esperava erro de agência divergente, obteve: %v", res.ErrosRegistros)
		}
	})

	t.Run("Sequência fora de ordem", func(t *testing.T) {
		linhas := []string{headerBB(), detalheBB("000004"), trailerBB("000005")}
		res := validadorBB{}.Validar(linhas, domain.DadosConta{})
		achou := false
		for _, e := range res.ErrosRegistros {
			if strings.Contains(e, "esperado 000002") {
				achou = true
			}
		}
		if !achou {
			t.Errorf("esperava erro de sequência, obteve: %v", res.ErrosRegistros)
		}
	})

	t.Run("Arquivo sem header e sem trailer", func(t *testing.T) {
		res := validadorBB{}.Validar([]string{detalheBB("000001")}, domain.DadosConta{})
		if len(res.ErrosHeader) != 1 || !strings.Contains(res.ErrosHeader[0], "sem registro header") {
			t.Errorf("erros de header: %v", res.ErrosHeader)
		}
		if len(res.ErrosTrailer) != 1 || !strings.Contains(res.ErrosTrailer[0], "sem registro trailer") {
			t.Errorf("erros de trailer: %v", res.ErrosTrailer)
		}
	})

	t.Run("Carteira 11 exige Nosso Número zerado", func(t *testing.T) {
		detalhe := montarLinha400(
			campoFixo{1, "7"}, campoFixo{2, "02"}, campoFixo{4, "11222333000181"},
			campoFixo{18, "1234"}, campoFixo{23, "00123456"},
			campoFixo{64, "12345670000000001"},
			campoFixo{107, "11"}, campoFixo{109, "01"},
			campoFixo{121, "150525"}, campoFixo{127, "0000000012345"},
			campoFixo{140, "001"}, campoFixo{148, "01"}, campoFixo{151, "150424"},
			campoFixo{219, "01"}, campoFixo{224, "11144477735"},
			campoFixo{235, "JOAO DA SILVA"},
			campoFixo{395, "000002"},
		)
		linhas := []string{headerBB(), detalhe, trailerBB("000003")}
		res := validadorBB{}.Validar(linhas, domain.DadosConta{})
		achou := false
		for _, e := range res.ErrosRegistros {
			if strings.Contains(e, "Nosso Número zerado") {
				achou = true
			}
		}
		if !achou {
			t.Errorf("esperava erro de Nosso Número não zerado, obteve: %v", res.ErrosRegistros)
		}
	})

	t.Run("Registro opcional de e-mail", func(t *testing.T) {
		opcional := montarLinha400(
			campoFixo{1, "5"}, campoFixo{2, "01"},
			campoFixo{4, "financeiro@exemplo.com.br;cobranca-exemplo"},
			campoFixo{395, "000003"},
		)
		linhas := []string{headerBB(), detalheBB("000002"), opcional, trailerBB("000004")}
		res := validadorBB{}.Validar(linhas, domain.DadosConta{})

		if len(res.Titulos) != 1 {
			t.Fatalf("esperava 1 título, obteve %d", len(res.Titulos))
		}
		emails := res.Titulos[0].DetalheBB.EmailsPagador
		if len(emails) != 2 {
			t.Fatalf("esperava 2 e-mails, obteve %v", emails)
		}
		achou := false
		for _, a := range res.Avisos {
			if strings.Contains(a.Mensagem, "não contém '@'") {
				achou = true
			}
		}
		if !achou {
			t.Errorf("esperava aviso sobre e-mail sem '@', obteve: %v", res.Avisos)
		}
		if res.Resumo.RegistrosOpcionais != 1 {
			t.Errorf("registros opcionais = %d, esperado 1", res.Resumo.RegistrosOpcionais)
		}
	})
}

func TestValidarDetalheBradesco(t *testing.T) {
	detalhe := func(nossoNumero, documento string) string {
		return montarLinha400(
			campoFixo{1, "1"},
			campoFixo{63, nossoNumero},
			campoFixo{117, "DOC0000001"},
			campoFixo{147, "150525"},
			campoFixo{153, "0000000012345"},
			campoFixo{301, documento},
			campoFixo{325, "JOAO DA SILVA"},
			campoFixo{395, "000002"},
		)
	}

	t.Run("Detalhe com campos numéricos passa limpo", func(t *testing.T) {
		_, erros := validarDetalheBradesco(detalhe("123456789012", "00011144477735"), 2)
		if len(erros) != 0 {
			t.Errorf("esperava nenhum erro, obteve: %v", erros)
		}
	})

	t.Run("Nosso Número com letra gera erro", func(t *testing.T) {
		_, erros := validarDetalheBradesco(detalhe("12345678901A", "00011144477735"), 2)
		if len(erros) != 1 || !strings.Contains(erros[0], "Nosso Número (pos. 063-074)") {
			t.Errorf("esperava erro de Nosso Número não numérico, obteve: %v", erros)
		}
	})

	t.Run("Documento do pagador com letra gera erro", func(t *testing.T) {
		_, erros := validarDetalheBradesco(detalhe("123456789012", "0001114447773X"), 2)
		if len(erros) != 1 || !strings.Contains(erros[0], "documento do pagador (pos. 301-314)") {
			t.Errorf("esperava erro de documento não numérico, obteve: %v", erros)
		}
	})
}

func TestValidarDetalheSantander(t *testing.T) {
	detalhe := func(nossoNumero, documento string) string {
		return montarLinha400(
			campoFixo{1, "1"},
			campoFixo{64, nossoNumero},
			campoFixo{111, "DOC0000001"},
			campoFixo{121, "150525"},
			campoFixo{127, "0000000012345"},
			campoFixo{221, documento},
			campoFixo{235, "JOAO DA SILVA"},
			campoFixo{327, "93010100"},
			campoFixo{395, "000002"},
		)
	}

	t.Run("Detalhe com campos numéricos passa limpo", func(t *testing.T) {
		_, erros := validarDetalheSantander(detalhe("12345678901234567", "00011144477735"), 2)
		if len(erros) != 0 {
			t.Errorf("esperava nenhum erro, obteve: %v", erros)
		}
	})

	t.Run("Nosso Número com letra gera erro", func(t *testing.T) {
		_, erros := validarDetalheSantander(detalhe("1234567890123456A", "00011144477735"), 2)
		if len(erros) != 1 || !strings.Contains(erros[0], "Nosso Número (pos. 064-080)") {
			t.Errorf("esperava erro de Nosso Número não numérico, obteve: %v", erros)
		}
	})

	t.Run("Documento do pagador com letra gera erro", func(t *testing.T) {
		_, erros := validarDetalheSantander(detalhe("12345678901234567", "0001114447773X"), 2)
		if len(erros) != 1 || !strings.Contains(erros[0], "documento do pagador (pos. 221-234)") {
			t.Errorf("esperava erro de documento não numérico, obteve: %v", erros)
		}
	})
}
