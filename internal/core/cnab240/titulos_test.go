package cnab240

import (
	"strings"
	"testing"
)

func TestListarTitulos(t *testing.T) {
	linhas := arquivo240Valido()
	titulos := ListarTitulos("001", linhas)
	if len(titulos) != 1 {
		t.Fatalf("esperava 1 título, obteve %d", len(titulos))
	}

	titulo := titulos[0]
	t.Run("Campos do segmento P", func(t *testing.T) {
		if titulo.NossoNumero != "12345670000000001" {
			t.Errorf("nosso número = %q", titulo.NossoNumero)
		}
		if titulo.DataVencimentoStr != "15/04/2024" {
			t.Errorf("vencimento = %q, esperado 15/04/2024", titulo.DataVencimentoStr)
		}
		if titulo.ValorCentavos != 12345 {
			t.Errorf("valor = %d centavos, esperado 12345", titulo.ValorCentavos)
		}
		if titulo.ValorReais.StringFixed(2) != "123.45" {
			t.Errorf("valor em reais = %s, esperado 123.45", titulo.ValorReais.StringFixed(2))
		}
		if titulo.Lote != "0001" || titulo.Sequencia != "00001" {
			t.Errorf("lote/sequência = %s/%s", titulo.Lote, titulo.Sequencia)
		}
	})

	t.Run("Dados do sacado vêm do segmento Q seguinte", func(t *testing.T) {
		if titulo.NomeSacado != "JOAO DA SILVA" {
			t.Errorf("nome do sacado = %q", titulo.NomeSacado)
		}
		if titulo.DocumentoSacado != "11144477735" {
			t.Errorf("documento do sacado = %q", titulo.DocumentoSacado)
		}
		if titulo.CEPSacado != "93010100" || titulo.UFSacado != "RS" {
			t.Errorf("CEP/UF = %s/%s", titulo.CEPSacado, titulo.UFSacado)
		}
		if titulo.CidadeSacado != "PORTO ALEGRE" {
			t.Errorf("cidade = %q", titulo.CidadeSacado)
		}
	})

	t.Run("Segmento Q de outro lote não é associado", func(t *testing.T) {
		alterado := arquivo240Valido()
		alterado[3] = montarLinha(240,
			campoFixo{1, "001"}, campoFixo{4, "0002"}, campoFixo{8, "3"},
			campoFixo{9, "00002"}, campoFixo{14, "Q"},
			campoFixo{34, "OUTRO LOTE"},
		)
		titulos := ListarTitulos("001", alterado)
		if len(titulos) != 1 {
			t.Fatalf("esperava 1 título, obteve %d", len(titulos))
		}
		if titulos[0].NomeSacado != "" {
			t.Errorf("não deveria anexar Q de outro lote, obteve nome %q", titulos[0].NomeSacado)
		}
	})

	t.Run("Banco sem layout registrado", func(t *testing.T) {
		if titulos := ListarTitulos("999", linhas); len(titulos) != 0 {
			t.Errorf("esperava nenhum título para banco sem layout, obteve %d", len(titulos))
		}
	})
}

func TestGerarResumo(t *testing.T) {
	linhas := arquivo240Valido()

	// Segundo título com vencimento anterior para exercitar a janela.
	extra := []string{
		montarLinha(240,
			campoFixo{1, "001"}, campoFixo{4, "0001"}, campoFixo{8, "3"},
			campoFixo{9, "00003"}, campoFixo{14, "P"},
			campoFixo{38, "12345670000000002"},
			campoFixo{78, "01032024"},
			campoFixo{86, "000000000010000"},
		),
	}
	linhas = append(linhas[:4], append(extra, linhas[4:]...)...)

	titulos := ListarTitulos("001", linhas)
	if len(titulos) != 2 {
		t.Fatalf("esperava 2 títulos, obteve %d", len(titulos))
	}

	resumo := GerarResumo(titulos)
	if resumo.QuantidadeTitulos != 2 {
		t.Errorf("quantidade = %d, esperado 2", resumo.QuantidadeTitulos)
	}
	if resumo.ValorTotalCentavos != 22345 {
		t.Errorf("valor total = %d, esperado 22345", resumo.ValorTotalCentavos)
	}
	if resumo.ValorTotalReais.StringFixed(2) != "223.45" {
		t.Errorf("valor total em reais = %s", resumo.ValorTotalReais.StringFixed(2))
	}
	if resumo.MenorVencimento != "01/03/2024" || resumo.MaiorVencimento != "15/04/2024" {
		t.Errorf("janela de vencimentos = %s a %s", resumo.MenorVencimento, resumo.MaiorVencimento)
	}
}

func TestValidarSegmentos(t *testing.T) {
	t.Run("Arquivo válido não gera erros", func(t *testing.T) {
		erros, avisos := ValidarSegmentos("001", arquivo240Valido())
		if len(erros) != 0 {
			t.Errorf("esperava nenhum erro, obteve: %v", erros)
		}
		if len(avisos) != 0 {
			t.Errorf("esperava nenhum aviso, obteve: %v", avisos)
		}
	})

	t.Run("UF inexistente é erro", func(t *testing.T) {
		linhas := arquivo240Valido()
		linhas[3] = strings.Replace(linhas[3], "RS", "XX", 1)
		erros, _ := ValidarSegmentos("001", linhas)
		if len(erros) != 1 || !strings.Contains(erros[0], "UF 'XX' inválida") {
			t.Errorf("esperava erro de UF, obteve: %v", erros)
		}
	})

	t.Run("Campo obrigatório em branco", func(t *testing.T) {
		linhas := arquivo240Valido()
		linhas[2] = montarLinha(240,
			campoFixo{1, "001"}, campoFixo{4, "0001"}, campoFixo{8, "3"},
			campoFixo{9, "00001"}, campoFixo{14, "P"},
			campoFixo{38, "12345670000000001"},
			campoFixo{86, "000000000012345"},
		)
		erros, _ := ValidarSegmentos("001", linhas)
		achou := false
		for _, e := range erros {
			if strings.Contains(e, "data_vencimento") && strings.Contains(e, "obrigatório em branco") {
				achou = true
			}
		}
		if !achou {
			t.Errorf("esperava erro de vencimento em branco, obteve: %v", erros)
		}
	})

	t.Run("Documento só de zeros é erro", func(t *testing.T) {
		linhas := arquivo240Valido()
		linhas[3] = strings.Replace(linhas[3], "11144477735", "00000000000", 1)
		erros, _ := ValidarSegmentos("001", linhas)
		achou := false
		for _, e := range erros {
			if strings.Contains(e, "apenas por zeros") {
				achou = true
			}
		}
		if !achou {
			t.Errorf("esperava erro de documento zerado, obteve: %v", erros)
		}
	})

	t.Run("Banco sem layout vira aviso", func(t *testing.T) {
		erros, avisos := ValidarSegmentos("999", arquivo240Valido())
		if len(erros) != 0 || len(avisos) != 1 {
			t.Errorf("esperava só um aviso, obteve erros=%v avisos=%v", erros, avisos)
		}
	})
}

func TestDetectarSisdeb(t *testing.T) {
	t.Run("Primeiro detalhe com segmento A", func(t *testing.T) {
		linhas := []string{
			montarLinha(240, campoFixo{1, "341"}, campoFixo{4, "0000"}, campoFixo{8, "0"}),
			montarLinha(240, campoFixo{1, "341"}, campoFixo{4, "0001"}, campoFixo{8, "1"}),
			montarLinha(240, campoFixo{1, "341"}, campoFixo{4, "0001"}, campoFixo{8, "3"}, campoFixo{9, "00001"}, campoFixo{14, "A"}),
		}
		if !DetectarSisdeb(linhas) {
			t.Error("deveria detectar o layout SISDEB")
		}
	})

	t.Run("Cobrança convencional com segmento P", func(t *testing.T) {
		if DetectarSisdeb(arquivo240Valido()) {
			t.Error("não deveria detectar SISDEB em arquivo de cobrança")
		}
	})
}
