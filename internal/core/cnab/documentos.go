// internal/core/cnab/documentos.go
package cnab

import "strings"

// ValidarCPF confere os dois dígitos verificadores de um CPF. Aceita o
// número com ou sem máscara; sequências de um único dígito são rejeitadas.
func ValidarCPF(cpf string) bool {
	cpf = SomenteDigitos(cpf)
	if len(cpf) != 11 {
		return false
	}
	if cpf == strings.Repeat(cpf[0:1], 11) {
		return false
	}

	soma := 0
	for i := 0; i < 9; i++ {
		soma += int(cpf[i]-'0') * (10 - i)
	}
	resto := (soma * 10) % 11
	if resto == 10 {
		resto = 0
	}
	if resto != int(cpf[9]-'0') {
		return false
	}

	soma = 0
	for i := 0; i < 10; i++ {
		soma += int(cpf[i]-'0') * (11 - i)
	}
	resto = (soma * 10) % 11
	if resto == 10 {
		resto = 0
	}
	return resto == int(cpf[10]-'0')
}

// ValidarCNPJ confere os dois dígitos verificadores de um CNPJ.
func ValidarCNPJ(cnpj string) bool {
	cnpj = SomenteDigitos(cnpj)
	if len(cnpj) != 14 {
		return false
	}
	if cnpj == strings.Repeat(cnpj[0:1], 14) {
		return false
	}

	pesos1 := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	pesos2 := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}

	soma := 0
	for i := 0; i < 12; i++ {
		soma += int(cnpj[i]-'0') * pesos1[i]
	}
	resto := soma % 11
	dv1 := 0
	if resto >= 2 {
		dv1 = 11 - resto
	}
	if dv1 != int(cnpj[12]-'0') {
		return false
	}

	soma = 0
	for i := 0; i < 13; i++ {
		soma += int(cnpj[i]-'0') * pesos2[i]
	}
	resto = soma % 11
	dv2 := 0
	if resto >= 2 {
		dv2 = 11 - resto
	}
	return dv2 == int(cnpj[13]-'0')
}

// Modulo10 calcula o dígito verificador por módulo 10 (campos 1 a 3 da
// linha digitável): multiplicadores 2 e 1 alternados da direita para a
// esquerda, produtos de dois dígitos somados algarismo a algarismo.
func Modulo10(numero string) int {
	soma := 0
	multiplicador := 2
	for i := len(numero) - 1; i >= 0; i-- {
		prod := int(numero[i]-'0') * multiplicador
		if prod >= 10 {
			prod = prod/10 + prod%10
		}
		soma += prod
		if multiplicador == 2 {
			multiplicador = 1
		} else {
			multiplicador = 2
		}
	}
	return (10 - soma%10) % 10
}

// Modulo11Boleto calcula o dígito verificador geral do código de barras,
// padrão FEBRABAN: pesos de 2 a 9 repetidos da direita para a esquerda,
// DV = 11 - (soma % 11), com os resultados 0, 1, 10 e 11 mapeados para 1.
func Modulo11Boleto(numero string) int {
	soma := 0
	peso := 2
	for i := len(numero) - 1; i >= 0; i-- {
		soma += int(numero[i]-'0') * peso
		peso++
		if peso > 9 {
			peso = 2
		}
	}
	dv := 11 - soma%11
	if dv == 0 || dv == 1 || dv == 10 || dv == 11 {
		dv = 1
	}
	return dv
}
