// Package cnab reúne os utilitários compartilhados pelos validadores de
// remessa: detecção de layout, tabela de bancos, fatiamento posicional e os
// algoritmos de dígito verificador usados em documentos e boletos.
package cnab

import (
	"fmt"
	"sort"
	"strings"
)

// Bancos mapeia o código de compensação (3 dígitos) para o nome de exibição.
// Bancos fora desta tabela são tratados como não mapeados: o arquivo ainda é
// validado pelas regras genéricas, sem pacote de regras específico.
var Bancos = map[string]string{
	"001": "Banco do Brasil",
	"021": "Banestes",
	"033": "Santander",
	"070": "Banco de Brasília (BRB)",
	"104": "Caixa Economica Federal",
	"208": "BTG Pactual",
	"237": "Bradesco",
	"341": "Itau Unibanco",
	"748": "Sicredi",
	"756": "Sicoob",
}

// BancoNaoMapeado é o nome sentinela devolvido para códigos fora da tabela.
const BancoNaoMapeado = "Banco não mapeado neste validador"

// EstadosBR é o conjunto fechado das 27 unidades federativas.
var EstadosBR = map[string]bool{
	"AC": true, "AL": true, "AP": true, "AM": true, "BA": true, "CE": true,
	"DF": true, "ES": true, "GO": true, "MA": true, "MT": true, "MS": true,
	"MG": true, "PA": true, "PB": true, "PR": true, "PE": true, "PI": true,
	"RJ": true, "RN": true, "RS": true, "RO": true, "RR": true, "SC": true,
	"SP": true, "SE": true, "TO": true,
}

// DetectarLayout olha o tamanho das linhas não vazias. Devolve 240 ou 400
// quando o conjunto de tamanhos é exatamente esse valor; caso contrário
// devolve 0 e o conjunto de tamanhos encontrados, em ordem crescente, para o
// chamador reportar layout misto/desconhecido em vez de adivinhar.
func DetectarLayout(linhas []string) (int, []int) {
	tamanhos := map[int]bool{}
	for _, linha := range linhas {
		if strings.TrimSpace(linha) == "" {
			continue
		}
		tamanhos[len([]rune(strings.TrimRight(linha, "\r\n")))] = true
	}

	if len(tamanhos) == 1 {
		for t := range tamanhos {
			if t == 240 || t == 400 {
				return t, []int{t}
			}
		}
	}

	encontrados := make([]int, 0, len(tamanhos))
	for t := range tamanhos {
		encontrados = append(encontrados, t)
	}
	sort.Ints(encontrados)
	return 0, encontrados
}

// ValidarTamanhoLinhas verifica se todas as linhas não vazias têm o tamanho
// do layout. Devolve uma mensagem por linha fora do padrão.
func ValidarTamanhoLinhas(linhas []string, layoutEsperado int) []string {
	var erros []string
	for i, linha := range linhas {
		if strings.TrimSpace(linha) == "" {
			continue
		}
		tamanho := len([]rune(strings.TrimRight(linha, "\r\n")))
		if tamanho != layoutEsperado {
			erros = append(erros, fmt.Sprintf("Linha %d: tamanho %d, esperado %d", i+1, tamanho, layoutEsperado))
		}
	}
	return erros
}

// NomeBanco devolve o nome de exibição de um código de compensação, ou o
// sentinela BancoNaoMapeado para códigos fora da tabela.
func NomeBanco(codigo string) string {
	if nome, ok := Bancos[codigo]; ok {
		return nome
	}
	return BancoNaoMapeado
}

// IdentificarBanco lê o código de compensação nas posições 1 a 3 do header.
func IdentificarBanco(header string) (string, string) {
	codigo := Campo(header, 1, 3)
	nome, ok := Bancos[codigo]
	if !ok {
		nome = BancoNaoMapeado
	}
	return codigo, nome
}
