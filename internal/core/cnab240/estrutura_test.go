package cnab240

import (
	"strings"
	"testing"
)

// campoFixo posiciona um valor em uma linha de largura fixa (pos 1-based).
type campoFixo struct {
	pos   int
	valor string
}

func montarLinha(tamanho int, campos ...campoFixo) string {
	b := []rune(strings.Repeat(" ", tamanho))
	for _, c := range campos {
		copy(b[c.pos-1:], []rune(c.valor))
	}
	return string(b)
}

// arquivo240Valido monta uma remessa CNAB 240 mínima do Banco do Brasil:
// header de arquivo, um lote com um par P/Q, trailer de lote e de arquivo.
func arquivo240Valido() []string {
	return []string{
		montarLinha(240, campoFixo{1, "001"}, campoFixo{4, "0000"}, campoFixo{8, "0"}),
		montarLinha(240, campoFixo{1, "001"}, campoFixo{4, "0001"}, campoFixo{8, "1"}),
		montarLinha(240,
			campoFixo{1, "001"}, campoFixo{4, "0001"}, campoFixo{8, "3"},
			campoFixo{9, "00001"}, campoFixo{14, "P"},
			campoFixo{38, "12345670000000001"},
			campoFixo{78, "15042024"},
			campoFixo{86, "000000000012345"},
		),
		montarLinha(240,
			campoFixo{1, "001"}, campoFixo{4, "0001"}, campoFixo{8, "3"},
			campoFixo{9, "00002"}, campoFixo{14, "Q"},
			campoFixo{16, "01"},
			campoFixo{22, "11144477735"},
			campoFixo{34, "JOAO DA SILVA"},
			campoFixo{74, "RUA DOS ANDRADAS 100"},
			campoFixo{114, "CENTRO"},
			campoFixo{129, "93010100"},
			campoFixo{137, "PORTO ALEGRE"},
			campoFixo{152, "RS"},
		),
		montarLinha(240, campoFixo{1, "001"}, campoFixo{4, "0001"}, campoFixo{8, "5"}, campoFixo{18, "000004"}),
		montarLinha(240, campoFixo{1, "001"}, campoFixo{4, "9999"}, campoFixo{8, "9"}, campoFixo{18, "000001"}, campoFixo{24, "000006"}),
	}
}

func TestValidarEstrutura(t *testing.T) {
	t.Run("Arquivo completo não gera erros", func(t *testing.T) {
		if erros := ValidarEstrutura(arquivo240Valido()); len(erros) != 0 {
			t.Errorf("esperava nenhum erro, obteve: %v", erros)
		}
	})

	t.Run("Primeira linha que não é header", func(t *testing.T) {
		linhas := arquivo240Valido()[1:]
		erros := ValidarEstrutura(linhas)
		if len(erros) == 0 || !strings.Contains(erros[0], "Header de arquivo inválido") {
			t.Errorf("esperava erro de header, obteve: %v", erros)
		}
	})

	t.Run("Arquivo sem trailer", func(t *testing.T) {
		linhas := arquivo240Valido()
		linhas = linhas[:len(linhas)-1]
		erros := ValidarEstrutura(linhas)
		achou := false
		for _, e := range erros {
			if strings.Contains(e, "Trailer de arquivo inválido") {
				achou = true
			}
		}
		if !achou {
			t.Errorf("esperava erro de trailer, obteve: %v", erros)
		}
	})

	t.Run("Arquivo vazio", func(t *testing.T) {
		erros := ValidarEstrutura(nil)
		if len(erros) != 1 {
			t.Errorf("esperava 1 erro, obteve: %v", erros)
		}
	})

	t.Run("Tipo de registro desconhecido", func(t *testing.T) {
		linhas := arquivo240Valido()
		linhas[2] = montarLinha(240, campoFixo{1, "001"}, campoFixo{4, "0001"}, campoFixo{8, "7"})
		erros := ValidarEstrutura(linhas)
		if len(erros) == 0 || !strings.Contains(erros[0], "tipo de registro '7' inválido") {
			t.Errorf("esperava erro de tipo de registro, obteve: %v", erros)
		}
	})
}

func TestValidarCodigoBancoConsistente(t *testing.T) {
	linhas := arquivo240Valido()
	linhas[3] = montarLinha(240, campoFixo{1, "341"}, campoFixo{4, "0001"}, campoFixo{8, "3"}, campoFixo{9, "00002"}, campoFixo{14, "Q"})
	erros := ValidarCodigoBancoConsistente(linhas, "001")
	if len(erros) != 1 || !strings.Contains(erros[0], "Linha 4") {
		t.Errorf("esperava erro na linha 4, obteve: %v", erros)
	}
}

func TestValidarLotes(t *testing.T) {
	t.Run("Lote completo", func(t *testing.T) {
		if erros := ValidarLotes(arquivo240Valido()); len(erros) != 0 {
			t.Errorf("esperava nenhum erro, obteve: %v", erros)
		}
	})

	t.Run("Lote sem trailer", func(t *testing.T) {
		linhas := arquivo240Valido()
		linhas = append(linhas[:4], linhas[5]) // remove o trailer de lote
		erros := ValidarLotes(linhas)
		if len(erros) != 1 || !strings.Contains(erros[0], "não possui Trailer de Lote") {
			t.Errorf("esperava 1 erro de trailer de lote, obteve: %v", erros)
		}
	})

	t.Run("Lote sem detalhes", func(t *testing.T) {
		linhas := []string{
			montarLinha(240, campoFixo{1, "001"}, campoFixo{4, "0000"}, campoFixo{8, "0"}),
			montarLinha(240, campoFixo{1, "001"}, campoFixo{4, "0001"}, campoFixo{8, "1"}),
			montarLinha(240, campoFixo{1, "001"}, campoFixo{4, "0001"}, campoFixo{8, "5"}, campoFixo{18, "000002"}),
			montarLinha(240, campoFixo{1, "001"}, campoFixo{4, "9999"}, campoFixo{8, "9"}, campoFixo{18, "000001"}, campoFixo{24, "000004"}),
		}
		erros := ValidarLotes(linhas)
		if len(erros) != 1 || !strings.Contains(erros[0], "não possui registros de detalhe") {
			t.Errorf("esperava erro de lote vazio, obteve: %v", erros)
		}
	})
}

func TestValidarQuantidadesLote(t *testing.T) {
	t.Run("Quantidade confere", func(t *testing.T) {
		if erros := ValidarQuantidadesLote(arquivo240Valido()); len(erros) != 0 {
			t.Errorf("esperava nenhum erro, obteve: %v", erros)
		}
	})

	t.Run("Trailer declara quantidade errada", func(t *testing.T) {
		linhas := arquivo240Valido()
		linhas[4] = montarLinha(240, campoFixo{1, "001"}, campoFixo{4, "0001"}, campoFixo{8, "5"}, campoFixo{18, "000007"})
		erros := ValidarQuantidadesLote(linhas)
		if len(erros) != 1 || !strings.Contains(erros[0], "(7)") {
			t.Errorf("esperava erro de quantidade divergente, obteve: %v", erros)
		}
	})

	t.Run("Quantidade não numérica", func(t *testing.T) {
		linhas := arquivo240Valido()
		linhas[4] = montarLinha(240, campoFixo{1, "001"}, campoFixo{4, "0001"}, campoFixo{8, "5"}, campoFixo{18, "00000X"})
		erros := ValidarQuantidadesLote(linhas)
		if len(erros) != 1 || !strings.Contains(erros[0], "não é numérica") {
			t.Errorf("esperava erro de quantidade não numérica, obteve: %v", erros)
		}
	})
}

func TestValidarTotaisArquivo(t *testing.T) {
	t.Run("Totais conferem", func(t *testing.T) {
		if erros := ValidarTotaisArquivo(arquivo240Valido()); len(erros) != 0 {
			t.Errorf("esperava nenhum erro, obteve: %v", erros)
		}
	})

	t.Run("Totais divergentes", func(t *testing.T) {
		linhas := arquivo240Valido()
		linhas[5] = montarLinha(240, campoFixo{1, "001"}, campoFixo{4, "9999"}, campoFixo{8, "9"}, campoFixo{18, "000002"}, campoFixo{24, "000009"})
		erros := ValidarTotaisArquivo(linhas)
		if len(erros) != 2 {
			t.Fatalf("esperava 2 erros (lotes e registros), obteve: %v", erros)
		}
		if !strings.Contains(erros[0], "quantidade de lotes") || !strings.Contains(erros[1], "quantidade de registros") {
			t.Errorf("mensagens inesperadas: %v", erros)
		}
	})
}

func TestValidarSequenciaRegistros(t *testing.T) {
	detalhe := func(seq string) string {
		return montarLinha(240, campoFixo{1, "001"}, campoFixo{4, "0001"}, campoFixo{8, "3"}, campoFixo{9, seq}, campoFixo{14, "P"})
	}

	t.Run("Sequência contínua", func(t *testing.T) {
		linhas := []string{detalhe("00001"), detalhe("00002"), detalhe("00003")}
		if erros := ValidarSequenciaRegistros(linhas); len(erros) != 0 {
			t.Errorf("esperava nenhum erro, obteve: %v", erros)
		}
	})

	t.Run("Salto na sequência", func(t *testing.T) {
		linhas := []string{detalhe("00001"), detalhe("00002"), detalhe("00004")}
		erros := ValidarSequenciaRegistros(linhas)
		if len(erros) != 1 || !strings.Contains(erros[0], "esperado 3") {
			t.Errorf("esperava erro apontando o sequencial 3, obteve: %v", erros)
		}
	})

	t.Run("Sequencial não numérico", func(t *testing.T) {
		linhas := []string{detalhe("00001"), detalhe("ABCDE")}
		erros := ValidarSequenciaRegistros(linhas)
		if len(erros) != 1 || !strings.Contains(erros[0], "não é numérico") {
			t.Errorf("esperava erro de sequencial não numérico, obteve: %v", erros)
		}
	})

	t.Run("Headers e trailers ficam de fora", func(t *testing.T) {
		if erros := ValidarSequenciaRegistros(arquivo240Valido()); len(erros) != 0 {
			t.Errorf("esperava nenhum erro, obteve: %v", erros)
		}
	})
}
