package cnab

import (
	"strings"
	"testing"
)

func TestDetectarLayout(t *testing.T) {
	t.Run("Todas as linhas com 240 posições", func(t *testing.T) {
		linhas := []string{
			strings.Repeat("0", 240),
			strings.Repeat("1", 240),
		}
		layout, tamanhos := DetectarLayout(linhas)
		if layout != 240 {
			t.Errorf("layout = %d, esperado 240", layout)
		}
		if len(tamanhos) != 1 || tamanhos[0] != 240 {
			t.Errorf("tamanhos = %v, esperado [240]", tamanhos)
		}
	})

	t.Run("Todas as linhas com 400 posições", func(t *testing.T) {
		layout, _ := DetectarLayout([]string{strings.Repeat("0", 400)})
		if layout != 400 {
			t.Errorf("layout = %d, esperado 400", layout)
		}
	})

	t.Run("Tamanhos mistos não permitem decidir", func(t *testing.T) {
		linhas := []string{
			strings.Repeat("0", 240),
			strings.Repeat("1", 400),
		}
		layout, tamanhos := DetectarLayout(linhas)
		if layout != 0 {
			t.Errorf("layout = %d, esperado 0 para tamanhos mistos", layout)
		}
		if len(tamanhos) != 2 || tamanhos[0] != 240 || tamanhos[1] != 400 {
			t.Errorf("tamanhos = %v, esperado [240 400] em ordem crescente", tamanhos)
		}
	})

	t.Run("Tamanho único mas fora do padrão", func(t *testing.T) {
		layout, _ := DetectarLayout([]string{strings.Repeat("0", 300)})
		if layout != 0 {
			t.Errorf("layout = %d, esperado 0 para 300 posições", layout)
		}
	})

	t.Run("Linhas em branco e CRLF são ignorados", func(t *testing.T) {
		linhas := []string{
			strings.Repeat("0", 240) + "\r",
			"   ",
			strings.Repeat("1", 240),
		}
		layout, _ := DetectarLayout(linhas)
		if layout != 240 {
			t.Errorf("layout = %d, esperado 240", layout)
		}
	})
}

func TestValidarTamanhoLinhas(t *testing.T) {
	linhas := []string{
		strings.Repeat("0", 240),
		strings.Repeat("1", 239),
	}
	erros := ValidarTamanhoLinhas(linhas, 240)
	if len(erros) != 1 {
		t.Fatalf("esperava 1 erro, obteve %d: %v", len(erros), erros)
	}
	if !strings.Contains(erros[0], "Linha 2") {
		t.Errorf("erro deveria apontar a linha 2: %s", erros[0])
	}
}

func TestIdentificarBanco(t *testing.T) {
	t.Run("Banco mapeado", func(t *testing.T) {
		codigo, nome := IdentificarBanco("00100000...")
		if codigo != "001" || nome != "Banco do Brasil" {
			t.Errorf("IdentificarBanco = (%s, %s)", codigo, nome)
		}
	})

	t.Run("Banco fora da tabela", func(t *testing.T) {
		codigo, nome := IdentificarBanco("99900000...")
		if codigo != "999" || nome != BancoNaoMapeado {
			t.Errorf("IdentificarBanco = (%s, %s)", codigo, nome)
		}
	})
}

func TestNomeBanco(t *testing.T) {
	if NomeBanco("748") != "Sicredi" {
		t.Errorf("NomeBanco(748) = %s", NomeBanco("748"))
	}
	if NomeBanco("999") != BancoNaoMapeado {
		t.Errorf("NomeBanco(999) = %s", NomeBanco("999"))
	}
}
