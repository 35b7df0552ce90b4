package boleto

import (
	"strings"
	"testing"
)

// Linha digitável do exemplo do manual de cobrança da FEBRABAN:
// banco 001, moeda 9, fator 3737 (31/12/2007), valor R$ 1,00.
const linhaExemplo = "00190500954014481606906809350314337370000000100"

func TestValidarLinhaDigitavel(t *testing.T) {
	t.Run("Linha do exemplo FEBRABAN é aceita", func(t *testing.T) {
		res := ValidarLinhaDigitavel(linhaExemplo)
		if len(res.Erros) != 0 {
			t.Fatalf("esperava nenhum erro, obteve: %v", res.Erros)
		}
		if res.Banco != "001" {
			t.Errorf("banco = %s, esperado 001", res.Banco)
		}
		if res.Moeda != "9" {
			t.Errorf("moeda = %s, esperado 9", res.Moeda)
		}
		if res.Vencimento != "31/12/2007" {
			t.Errorf("vencimento = %s, esperado 31/12/2007", res.Vencimento)
		}
		if res.ValorCentavos != 100 {
			t.Errorf("valor = %d centavos, esperado 100", res.ValorCentavos)
		}
		if res.ValorReais.StringFixed(2) != "1.00" {
			t.Errorf("valor em reais = %s, esperado 1.00", res.ValorReais.StringFixed(2))
		}
		if len(res.CodigoBarras) != 44 {
			t.Errorf("código de barras com %d dígitos, esperado 44", len(res.CodigoBarras))
		}
	})

	t.Run("Linha com máscara é aceita", func(t *testing.T) {
		mascarada := "00190.50095 40144.816069 06809.350314 3 37370000000100"
		res := ValidarLinhaDigitavel(mascarada)
		if len(res.Erros) != 0 {
			t.Fatalf("esperava nenhum erro, obteve: %v", res.Erros)
		}
	})

	t.Run("Dígito alterado no campo 2 derruba só os DVs afetados", func(t *testing.T) {
		adulterada := []byte(linhaExemplo)
		adulterada[12] = '9' // dentro do campo 2
		res := ValidarLinhaDigitavel(string(adulterada))

		if len(res.Erros) != 2 {
			t.Fatalf("esperava 2 erros (campo 2 e DV geral), obteve %d: %v", len(res.Erros), res.Erros)
		}
		if !strings.Contains(res.Erros[0], "Campo 2") {
			t.Errorf("primeiro erro deveria citar o Campo 2: %s", res.Erros[0])
		}
		if !strings.Contains(res.Erros[1], "geral") {
			t.Errorf("segundo erro deveria citar o DV geral: %s", res.Erros[1])
		}
	})

	t.Run("Quarenta e sete zeros", func(t *testing.T) {
		res := ValidarLinhaDigitavel(strings.Repeat("0", 47))
		// Os DVs de campo por módulo 10 fecham em zero; só o DV geral acusa,
		// porque o módulo 11 mapeia o resultado para 1.
		if len(res.Erros) != 1 || !strings.Contains(res.Erros[0], "geral") {
			t.Fatalf("esperava apenas o erro de DV geral, obteve: %v", res.Erros)
		}
		if res.Vencimento != "Sem data de vencimento (fator 0000)" {
			t.Errorf("vencimento = %s", res.Vencimento)
		}
		if res.ValorCentavos != 0 {
			t.Errorf("valor = %d, esperado 0", res.ValorCentavos)
		}
	})

	t.Run("Tamanho errado interrompe a validação", func(t *testing.T) {
		res := ValidarLinhaDigitavel("123456")
		if len(res.Erros) != 1 || !strings.Contains(res.Erros[0], "47") {
			t.Fatalf("esperava erro de tamanho, obteve: %v", res.Erros)
		}
		if res.CodigoBarras != "" {
			t.Error("não deveria montar código de barras para linha curta")
		}
	})
}
