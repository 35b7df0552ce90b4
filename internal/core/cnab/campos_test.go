package cnab

import "testing"

func TestCampo(t *testing.T) {
	linha := "ABCDEFGHIJ"

	t.Run("Posições 1-based inclusivas", func(t *testing.T) {
		if got := Campo(linha, 1, 3); got != "ABC" {
			t.Errorf("Campo(1,3) = %q, esperado %q", got, "ABC")
		}
		if got := Campo(linha, 4, 4); got != "D" {
			t.Errorf("Campo(4,4) = %q, esperado %q", got, "D")
		}
	})

	t.Run("Linha curta é truncada sem estourar", func(t *testing.T) {
		if got := Campo(linha, 8, 20); got != "HIJ" {
			t.Errorf("Campo(8,20) = %q, esperado %q", got, "HIJ")
		}
		if got := Campo(linha, 20, 30); got != "" {
			t.Errorf("Campo além do fim = %q, esperado vazio", got)
		}
	})

	t.Run("Caracteres acentuados contam como uma posição", func(t *testing.T) {
		if got := Campo("JOÃO DA SILVA", 1, 4); got != "JOÃO" {
			t.Errorf("Campo(1,4) = %q, esperado %q", got, "JOÃO")
		}
	})
}

func TestParseDataDDMMAA(t *testing.T) {
	t.Run("Século inferido para anos baixos", func(t *testing.T) {
		dt := ParseDataDDMMAA("150424")
		if dt == nil {
			t.Fatal("esperava data válida para 150424")
		}
		if FormatarDataBR(dt) != "15/04/2024" {
			t.Errorf("data = %s, esperado 15/04/2024", FormatarDataBR(dt))
		}
	})

	t.Run("Século inferido para anos altos", func(t *testing.T) {
		dt := ParseDataDDMMAA("251299")
		if dt == nil {
			t.Fatal("esperava data válida para 251299")
		}
		if dt.Year() != 1999 {
			t.Errorf("ano = %d, esperado 1999", dt.Year())
		}
	})

	t.Run("Campo zerado significa sem data", func(t *testing.T) {
		if dt := ParseDataDDMMAA("000000"); dt != nil {
			t.Errorf("esperava nil para 000000, obteve %v", dt)
		}
	})

	t.Run("Dia fora do calendário é rejeitado", func(t *testing.T) {
		if dt := ParseDataDDMMAA("310424"); dt != nil {
			t.Errorf("esperava nil para 31 de abril, obteve %v", dt)
		}
		if dt := ParseDataDDMMAA("290223"); dt != nil {
			t.Errorf("esperava nil para 29/02 em ano não bissexto, obteve %v", dt)
		}
	})
}

func TestParseDataDDMMAAAA(t *testing.T) {
	dt := ParseDataDDMMAAAA("15042024")
	if dt == nil {
		t.Fatal("esperava data válida para 15042024")
	}
	if FormatarDataBR(dt) != "15/04/2024" {
		t.Errorf("data = %s, esperado 15/04/2024", FormatarDataBR(dt))
	}
	if dt := ParseDataDDMMAAAA("15041800"); dt != nil {
		t.Errorf("esperava nil para ano 1800, obteve %v", dt)
	}
}

func TestParseValorCentavos(t *testing.T) {
	t.Run("Valor com zeros à esquerda", func(t *testing.T) {
		v, ok := ParseValorCentavos("0000000012345")
		if !ok || v != 12345 {
			t.Errorf("ParseValorCentavos = (%d, %v), esperado (12345, true)", v, ok)
		}
	})

	t.Run("Campo em branco vale zero", func(t *testing.T) {
		v, ok := ParseValorCentavos("             ")
		if !ok || v != 0 {
			t.Errorf("ParseValorCentavos = (%d, %v), esperado (0, true)", v, ok)
		}
	})

	t.Run("Conteúdo não numérico é rejeitado", func(t *testing.T) {
		if _, ok := ParseValorCentavos("00000A0012345"); ok {
			t.Error("esperava ok=false para valor com letra")
		}
	})
}

func TestSomenteDigitos(t *testing.T) {
	if got := SomenteDigitos("  111.444.777-35 "); got != "11144477735" {
		t.Errorf("SomenteDigitos = %q, esperado %q", got, "11144477735")
	}
}
