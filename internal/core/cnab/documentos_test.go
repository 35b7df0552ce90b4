package cnab

import "testing"

func TestValidarCPF(t *testing.T) {
	t.Run("CPF com dígitos corretos", func(t *testing.T) {
		if !ValidarCPF("11144477735") {
			t.Error("11144477735 deveria ser aceito")
		}
	})

	t.Run("CPF com máscara", func(t *testing.T) {
		if !ValidarCPF("111.444.777-35") {
			t.Error("CPF mascarado deveria ser aceito")
		}
	})

	t.Run("Último dígito alterado", func(t *testing.T) {
		if ValidarCPF("11144477736") {
			t.Error("11144477736 deveria ser rejeitado")
		}
	})

	t.Run("Sequência de um único dígito", func(t *testing.T) {
		if ValidarCPF("11111111111") {
			t.Error("sequência repetida deveria ser rejeitada")
		}
	})

	t.Run("Tamanho errado", func(t *testing.T) {
		if ValidarCPF("1114447773") {
			t.Error("CPF com 10 dígitos deveria ser rejeitado")
		}
	})
}

func TestValidarCNPJ(t *testing.T) {
	t.Run("CNPJ com dígitos corretos", func(t *testing.T) {
		if !ValidarCNPJ("11222333000181") {
			t.Error("11222333000181 deveria ser aceito")
		}
	})

	t.Run("Dígito verificador alterado", func(t *testing.T) {
		if ValidarCNPJ("11222333000182") {
			t.Error("11222333000182 deveria ser rejeitado")
		}
	})

	t.Run("Sequência de um único dígito", func(t *testing.T) {
		if ValidarCNPJ("00000000000000") {
			t.Error("sequência repetida deveria ser rejeitada")
		}
	})
}

func TestModulo10(t *testing.T) {
	// Exemplos do manual de cobrança da FEBRABAN.
	casos := []struct {
		numero string
		dv     int
	}{
		{"001905009", 5},
		{"4014481606", 9},
		{"0680935031", 4},
	}
	for _, c := range casos {
		t.Run(c.numero, func(t *testing.T) {
			if got := Modulo10(c.numero); got != c.dv {
				t.Errorf("Modulo10(%s) = %d, esperado %d", c.numero, got, c.dv)
			}
		})
	}

	t.Run("Alterar um dígito muda o DV", func(t *testing.T) {
		if Modulo10("001905009") == Modulo10("001905008") {
			t.Error("números diferentes não deveriam compartilhar o mesmo DV aqui")
		}
	})

	t.Run("Determinístico", func(t *testing.T) {
		if Modulo10("4014481606") != Modulo10("4014481606") {
			t.Error("o mesmo número deve sempre produzir o mesmo DV")
		}
	})
}

func TestModulo11Boleto(t *testing.T) {
	t.Run("Código de barras do exemplo FEBRABAN", func(t *testing.T) {
		if got := Modulo11Boleto("0019373700000001000500940144816060680935031"); got != 3 {
			t.Errorf("Modulo11Boleto = %d, esperado 3", got)
		}
	})

	t.Run("Resultados 0, 1, 10 e 11 viram 1", func(t *testing.T) {
		// Soma zero cai no mapeamento para 1.
		if got := Modulo11Boleto("0000000000"); got != 1 {
			t.Errorf("Modulo11Boleto de zeros = %d, esperado 1", got)
		}
	})
}
