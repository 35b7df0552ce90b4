// internal/core/cnab240/sicredi.go
//
// Validações específicas do Sicredi para CNAB 240: literais do header,
// códigos de serviço/operação do lote e a exigência de que segmentos Q, R,
// S e Y só apareçam depois de um segmento P dentro do mesmo lote.
package cnab240

import (
	"fmt"
	"strings"

	"github.com/LuisEduardoPedra/validaCnab/internal/core/cnab"
	"github.com/LuisEduardoPedra/validaCnab/internal/domain"
)

// ResultadoSicredi separa os problemas encontrados por região do arquivo.
type ResultadoSicredi struct {
	ErrosHeader    []string
	ErrosSegmentos []string
	Avisos         []domain.Aviso
}

// ValidarSicredi roda as validações básicas do layout CNAB 240 do Sicredi.
func ValidarSicredi(linhas []string) *ResultadoSicredi {
	res := &ResultadoSicredi{}

	if len(linhas) == 0 {
		return res
	}

	layoutCampos := Layouts["748"]
	posicoes := map[string]CampoLayout{}
	for _, c := range layoutCampos["P"] {
		posicoes[c.Nome] = c
	}
	for _, c := range layoutCampos["Q"] {
		posicoes[c.Nome] = c
	}

	header := strings.TrimRight(linhas[0], "\r\n")
	if cnab.Campo(header, 1, 3) != "748" {
		res.ErrosHeader = append(res.ErrosHeader, "Header do arquivo: código do banco deve ser 748 (Sicredi).")
	}
	if literal := strings.ToUpper(cnab.CampoTrim(header, 80, 94)); !strings.Contains(literal, "SICREDI") {
		res.Avisos = append(res.Avisos, domain.Aviso{Categoria: domain.CategoriaHeader,
			Mensagem: "Header do arquivo: literal do banco deveria conter 'SICREDI'."})
	}
	if strings.ToUpper(cnab.CampoTrim(header, 3, 9)) != "REMESSA" {
		res.Avisos = append(res.Avisos, domain.Aviso{Categoria: domain.CategoriaHeader,
			Mensagem: "Header do arquivo: literal 'REMESSA' não encontrado."})
	}
	if strings.ToUpper(cnab.CampoTrim(header, 12, 19)) != "COBRANCA" {
		res.Avisos = append(res.Avisos, domain.Aviso{Categoria: domain.CategoriaHeader,
			Mensagem: "Header do arquivo: literal do serviço devia ser 'COBRANCA'."})
	}
	if dataHeader := cnab.Campo(header, 95, 102); len(dataHeader) != 8 || !cnab.TodosDigitos(dataHeader) {
		res.ErrosHeader = append(res.ErrosHeader, "Header do arquivo: data de geração (pos. 95-102) deve estar em AAAAMMDD.")
	}

	temSegmentoP := false

	for i, linha := range linhas {
		if strings.TrimSpace(linha) == "" {
			continue
		}
		l := strings.TrimRight(linha, "\r\n")
		if len([]rune(l)) < 240 {
			continue
		}
		numeroLinha := i + 1

		switch cnab.Campo(l, 8, 8) {
		case "1":
			if cnab.Campo(l, 10, 11) != "01" {
				res.ErrosHeader = append(res.ErrosHeader, fmt.Sprintf(
					"Linha %d: header de lote deve possuir código de serviço '01'.", numeroLinha))
			}
			if cnab.Campo(l, 9, 9) != "1" {
				res.ErrosHeader = append(res.ErrosHeader, fmt.Sprintf(
					"Linha %d: header de lote deveria indicar operação '1' (cobrança registrada).", numeroLinha))
			}

		case "3":
			segmento := strings.ToUpper(cnab.Campo(l, 14, 14))
			switch segmento {
			case "P":
				temSegmentoP = true
				if cnab.Campo(l, 1, 3) != "748" {
					res.ErrosSegmentos = append(res.ErrosSegmentos, fmt.Sprintf(
						"Linha %d (Segmento P): código do banco deve ser 748.", numeroLinha))
				}
				if c, ok := posicoes["nosso_numero"]; ok {
					if nosso := cnab.CampoTrim(l, c.Inicio, c.Fim); nosso != "" && !cnab.TodosDigitos(nosso) {
						res.ErrosSegmentos = append(res.ErrosSegmentos, fmt.Sprintf(
							"Linha %d (Segmento P): nosso número deve conter somente dígitos.", numeroLinha))
					}
				}
				if c, ok := posicoes["data_vencimento"]; ok {
					if dataVenc := cnab.CampoTrim(l, c.Inicio, c.Fim); len(dataVenc) != 8 || !cnab.TodosDigitos(dataVenc) {
						res.ErrosSegmentos = append(res.ErrosSegmentos, fmt.Sprintf(
							"Linha %d (Segmento P): data de vencimento inválida (esperado DDMMAAAA).", numeroLinha))
					}
				}
				if c, ok := posicoes["valor_titulo"]; ok {
					valorRaw := cnab.CampoTrim(l, c.Inicio, c.Fim)
					if !cnab.TodosDigitos(valorRaw) {
						res.ErrosSegmentos = append(res.ErrosSegmentos, fmt.Sprintf(
							"Linha %d (Segmento P): valor do título deve conter somente dígitos.", numeroLinha))
					} else if soZeros(valorRaw) {
						res.ErrosSegmentos = append(res.ErrosSegmentos, fmt.Sprintf(
							"Linha %d (Segmento P): valor do título não pode ser zero.", numeroLinha))
					}
				}
				if codMov := cnab.Campo(l, 16, 17); !cnab.TodosDigitos(codMov) {
					res.ErrosSegmentos = append(res.ErrosSegmentos, fmt.Sprintf(
						"Linha %d (Segmento P): código de movimento (pos. 16-17) deve ser numérico.", numeroLinha))
				}

			case "Q":
				if !temSegmentoP {
					res.ErrosSegmentos = append(res.ErrosSegmentos, fmt.Sprintf(
						"Linha %d (Segmento Q): encontrado antes do correspondente Segmento P.", numeroLinha))
				}
				if c, ok := posicoes["tipo_inscricao"]; ok {
					if tipo := cnab.CampoTrim(l, c.Inicio, c.Fim); tipo != "01" && tipo != "02" {
						res.ErrosSegmentos = append(res.ErrosSegmentos, fmt.Sprintf(
							"Linha %d (Segmento Q): tipo de inscrição do sacado deve ser 01 ou 02.", numeroLinha))
					}
				}
				if c, ok := posicoes["documento_sacado"]; ok {
					doc := cnab.CampoTrim(l, c.Inicio, c.Fim)
					if !cnab.TodosDigitos(doc) {
						res.ErrosSegmentos = append(res.ErrosSegmentos, fmt.Sprintf(
							"Linha %d (Segmento Q): documento do sacado deve conter apenas dígitos.", numeroLinha))
					} else if soZeros(doc) {
						res.ErrosSegmentos = append(res.ErrosSegmentos, fmt.Sprintf(
							"Linha %d (Segmento Q): documento do sacado não pode ser todo zero.", numeroLinha))
					}
				}
				if c, ok := posicoes["nome_sacado"]; ok {
					if cnab.CampoTrim(l, c.Inicio, c.Fim) == "" {
						res.ErrosSegmentos = append(res.ErrosSegmentos, fmt.Sprintf(
							"Linha %d (Segmento Q): nome do sacado não informado.", numeroLinha))
					}
				}
				if c, ok := posicoes["endereco_sacado"]; ok {
					if cnab.CampoTrim(l, c.Inicio, c.Fim) == "" {
						res.ErrosSegmentos = append(res.ErrosSegmentos, fmt.Sprintf(
							"Linha %d (Segmento Q): endereço do sacado não informado.", numeroLinha))
					}
				}
				if c, ok := posicoes["cep_sacado"]; ok {
					if cep := cnab.CampoTrim(l, c.Inicio, c.Fim); len(cep) != 8 || !cnab.TodosDigitos(cep) {
						res.ErrosSegmentos = append(res.ErrosSegmentos, fmt.Sprintf(
							"Linha %d (Segmento Q): CEP do sacado deve conter 8 dígitos.", numeroLinha))
					}
				}
				if c, ok := posicoes["uf_sacado"]; ok {
					if uf := strings.ToUpper(cnab.CampoTrim(l, c.Inicio, c.Fim)); !cnab.EstadosBR[uf] {
						res.ErrosSegmentos = append(res.ErrosSegmentos, fmt.Sprintf(
							"Linha %d (Segmento Q): UF '%s' do sacado é inválida.", numeroLinha, uf))
					}
				}

			case "R", "S", "Y":
				if !temSegmentoP {
					res.ErrosSegmentos = append(res.ErrosSegmentos, fmt.Sprintf(
						"Linha %d (Segmento %s): deve estar associado a um Segmento P anterior.", numeroLinha, segmento))
				}
			}

		case "5":
			// Trailer de lote encerra a associação com o último P visto.
			temSegmentoP = false
		}
	}

	return res
}
