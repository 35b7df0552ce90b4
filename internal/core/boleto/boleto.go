// Package boleto valida linhas digitáveis de boleto bancário (47 dígitos,
// padrão cobrança FEBRABAN), independente do processamento de remessas.
package boleto

import (
	"fmt"
	"strconv"
	"time"

	"github.com/LuisEduardoPedra/validaCnab/internal/core/cnab"
	"github.com/LuisEduardoPedra/validaCnab/internal/domain"
	"github.com/shopspring/decimal"
)

// base do fator de vencimento definida pela FEBRABAN.
var fatorBase = time.Date(1997, time.October, 7, 0, 0, 0, 0, time.UTC)

// ValidarLinhaDigitavel confere os três DVs de campo (módulo 10), o DV geral
// (módulo 11 sobre o código de barras remontado) e interpreta fator de
// vencimento e valor. Sempre devolve o que conseguiu decodificar, mesmo com
// dígitos verificadores incorretos.
func ValidarLinhaDigitavel(linha string) *domain.ResultadoBoleto {
	res := &domain.ResultadoBoleto{Erros: []string{}}

	d := cnab.SomenteDigitos(linha)
	if len(d) != 47 {
		res.Erros = append(res.Erros, fmt.Sprintf("Tamanho inválido: esperado 47 dígitos, recebido %d.", len(d)))
		return res
	}

	// Campos da linha digitável (47 dígitos):
	// Campo 1: 1-9 + DV (10); Campo 2: 11-20 + DV (21); Campo 3: 22-31 + DV (32)
	// Campo 4: DV geral (33); Campo 5: fator (34-37) + valor (38-47)
	campo1, dv1 := d[0:9], int(d[9]-'0')
	campo2, dv2 := d[10:20], int(d[20]-'0')
	campo3, dv3 := d[21:31], int(d[31]-'0')
	dvGeral := int(d[32]-'0')
	fator := d[33:37]
	valorStr := d[37:47]

	if calc := cnab.Modulo10(campo1); calc != dv1 {
		res.Erros = append(res.Erros, fmt.Sprintf("Dígito verificador do Campo 1 inválido. Esperado %d, encontrado %d.", calc, dv1))
	}
	if calc := cnab.Modulo10(campo2); calc != dv2 {
		res.Erros = append(res.Erros, fmt.Sprintf("Dígito verificador do Campo 2 inválido. Esperado %d, encontrado %d.", calc, dv2))
	}
	if calc := cnab.Modulo10(campo3); calc != dv3 {
		res.Erros = append(res.Erros, fmt.Sprintf("Dígito verificador do Campo 3 inválido. Esperado %d, encontrado %d.", calc, dv3))
	}

	// Remontagem do código de barras: banco(3) + moeda(1) + fator(4) +
	// valor(10) + campo livre(25) = 43 dígitos sem o DV geral. O campo livre
	// vem dos três blocos na ordem do código de barras, não da linha digitável.
	banco := d[0:3]
	moeda := d[3:4]
	campoLivre := d[4:9] + d[10:20] + d[21:31]

	semDV := banco + moeda + fator + valorStr + campoLivre
	if len(semDV) != 43 {
		res.Erros = append(res.Erros, "Falha ao montar código de barras (tamanho diferente de 43 sem DV).")
		return res
	}

	if calc := cnab.Modulo11Boleto(semDV); calc != dvGeral {
		res.Erros = append(res.Erros, fmt.Sprintf("Dígito verificador geral inválido. Esperado %d, encontrado %d.", calc, dvGeral))
	}

	res.CodigoBarras = banco + moeda + strconv.Itoa(dvGeral) + fator + valorStr + campoLivre
	res.Banco = banco
	res.Moeda = moeda

	if fator == "0000" {
		res.Vencimento = "Sem data de vencimento (fator 0000)"
	} else {
		dias, _ := strconv.Atoi(fator)
		res.Vencimento = fatorBase.AddDate(0, 0, dias).Format("02/01/2006")
	}

	centavos, _ := strconv.ParseInt(valorStr, 10, 64)
	res.ValorCentavos = centavos
	res.ValorReais = decimal.New(centavos, -2)

	return res
}
