// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoriaAviso classifica um aviso no momento em que ele é emitido,
// evitando reclassificação por busca de texto na camada de apresentação.
type CategoriaAviso string

const (
	CategoriaSegmentoP CategoriaAviso = "segmento_p"
	CategoriaSegmentoQ CategoriaAviso = "segmento_q"
	CategoriaSegmentoR CategoriaAviso = "segmento_r"
	CategoriaConvenio  CategoriaAviso = "convenio"
	CategoriaHeader    CategoriaAviso = "header"
	CategoriaTrailer   CategoriaAviso = "trailer"
	CategoriaOutros    CategoriaAviso = "outros"
)

// Aviso é uma mensagem de severidade branda: o arquivo é plausível, mas algum
// valor foge do usual ou das recomendações do manual do banco.
type Aviso struct {
	Categoria CategoriaAviso `json:"categoria"`
	Mensagem  string         `json:"mensagem"`
}

// DadosConta carrega os dados informados pelo usuário para confronto com o
// que foi gravado no arquivo de remessa.
type DadosConta struct {
	Banco     string `json:"banco"`
	Agencia   string `json:"agencia"`
	Conta     string `json:"conta"`
	Documento string `json:"documento"`
	Nome      string `json:"nome"`
}

// Titulo é a entidade de negócio extraída de uma remessa: um boleto/título
// por segmento P (CNAB 240) ou por registro de detalhe (CNAB 400).
type Titulo struct {
	Lote            string `json:"lote,omitempty"`
	Linha           int    `json:"linha"`
	Sequencia       string `json:"sequencia,omitempty"`
	NossoNumero     string `json:"nosso_numero"`
	SeuNumero       string `json:"seu_numero,omitempty"`
	Carteira        string `json:"carteira,omitempty"`
	Comando         string `json:"comando,omitempty"`
	NumeroDocumento string `json:"numero_documento,omitempty"`

	DataVencimento    *time.Time `json:"-"`
	DataVencimentoStr string     `json:"data_vencimento"`
	DataEmissaoStr    string     `json:"data_emissao,omitempty"`

	ValorCentavos int64           `json:"valor_centavos"`
	ValorReais    decimal.Decimal `json:"valor_reais"`

	TipoInscricaoSacado string `json:"tipo_inscricao_sacado,omitempty"`
	DocumentoSacado     string `json:"documento_sacado,omitempty"`
	NomeSacado          string `json:"nome_sacado,omitempty"`
	EnderecoSacado      string `json:"endereco_sacado,omitempty"`
	BairroSacado        string `json:"bairro_sacado,omitempty"`
	CEPSacado           string `json:"cep_sacado,omitempty"`
	CidadeSacado        string `json:"cidade_sacado,omitempty"`
	UFSacado            string `json:"uf_sacado,omitempty"`

	// Preenchido pelo segmento R adjacente (CNAB 240), quando presente.
	SegmentoR *DadosSegmentoR `json:"segmento_r,omitempty"`

	// Preenchido apenas no layout Itaú SISDEB (débito automático).
	Sisdeb *DadosTituloSisdeb `json:"sisdeb,omitempty"`

	// Texto livre de registros opcionais/mensagem que acompanham o detalhe
	// (CNAB 400).
	Mensagens []string `json:"mensagens,omitempty"`

	// Dias para protesto/negativação quando o layout traz o campo direto no
	// detalhe (CNAB 400 BB e Caixa).
	DiasProtesto string `json:"dias_protesto,omitempty"`

	// Campos que só existem no layout de um banco específico do CNAB 400.
	DetalheBB      *DadosTituloBB      `json:"detalhe_bb,omitempty"`
	DetalheItau    *DadosTituloItau    `json:"detalhe_itau,omitempty"`
	DetalheSicredi *DadosTituloSicredi `json:"detalhe_sicredi,omitempty"`
}

// DadosTituloBB agrupa os campos do registro tipo 7 do CNAB 400 do Banco do
// Brasil que não têm equivalente nos demais layouts, incluindo o que chega
// pelos registros opcionais tipo 5.
type DadosTituloBB struct {
	TipoInscricaoBeneficiario string          `json:"tipo_inscricao_beneficiario,omitempty"`
	DocumentoBeneficiario     string          `json:"documento_beneficiario,omitempty"`
	Agencia                   string          `json:"agencia,omitempty"`
	AgenciaDV                 string          `json:"agencia_dv,omitempty"`
	Conta                     string          `json:"conta,omitempty"`
	ContaDV                   string          `json:"conta_dv,omitempty"`
	ConvenioCobranca          string          `json:"convenio_cobranca,omitempty"`
	VariacaoCarteira          string          `json:"variacao_carteira,omitempty"`
	TipoCobranca              string          `json:"tipo_cobranca,omitempty"`
	NumeroBanco               string          `json:"numero_banco,omitempty"`
	AgenciaCobradora          string          `json:"agencia_cobradora,omitempty"`
	Instrucao1                string          `json:"instrucao1,omitempty"`
	Instrucao2                string          `json:"instrucao2,omitempty"`
	JurosCentavos             int64           `json:"juros_centavos"`
	JurosReais                decimal.Decimal `json:"juros_reais"`
	DescontoDataStr           string          `json:"desconto_data,omitempty"`
	DescontoCentavos          int64           `json:"desconto_centavos"`
	DescontoReais             decimal.Decimal `json:"desconto_reais"`
	MultaCodigo               string          `json:"multa_codigo,omitempty"`
	MultaDataStr              string          `json:"multa_data,omitempty"`
	MultaCentavos             int64           `json:"multa_centavos"`
	MultaReais                decimal.Decimal `json:"multa_reais"`
	IOFCentavos               int64           `json:"iof_centavos"`
	IOFReais                  decimal.Decimal `json:"iof_reais"`
	AbatimentoCentavos        int64           `json:"abatimento_centavos"`
	AbatimentoReais           decimal.Decimal `json:"abatimento_reais"`
	IndicadorParcial          string          `json:"indicador_recebimento_parcial,omitempty"`
	AgenteNegativador         string          `json:"agente_negativador,omitempty"`
	SeuNumero15               string          `json:"seu_numero_15,omitempty"`
	EmailsPagador             []string        `json:"emails_pagador,omitempty"`
	Observacoes               string          `json:"observacoes,omitempty"`
	Desconto2DataStr          string          `json:"desconto2_data,omitempty"`
	Desconto2Reais            decimal.Decimal `json:"desconto2_reais"`
	Desconto3DataStr          string          `json:"desconto3_data,omitempty"`
	Desconto3Reais            decimal.Decimal `json:"desconto3_reais"`
}

// DadosTituloItau cobre os campos próprios do registro tipo 1 do Itaú e os
// complementos de multa (tipo 2) e sacador avalista (tipo 5).
type DadosTituloItau struct {
	Instrucao1         string          `json:"instrucao1,omitempty"`
	Instrucao2         string          `json:"instrucao2,omitempty"`
	JurosCentavos      int64           `json:"juros_centavos"`
	DescontoCentavos   int64           `json:"desconto_centavos"`
	IOFCentavos        int64           `json:"iof_centavos"`
	AbatimentoCentavos int64           `json:"abatimento_centavos"`
	DataDesconto       string          `json:"data_desconto,omitempty"`
	SacadorAvalista    string          `json:"sacador_avalista,omitempty"`
	DataMora           string          `json:"data_mora,omitempty"`
	Prazo              string          `json:"prazo,omitempty"`
	MultaCodigo        string          `json:"multa_codigo,omitempty"`
	MultaData          string          `json:"multa_data,omitempty"`
	MultaValor         decimal.Decimal `json:"multa_valor"`
}

// DadosTituloSicredi cobre os indicadores do registro tipo 1 do Sicredi.
type DadosTituloSicredi struct {
	TipoCobranca         string `json:"tipo_cobranca,omitempty"`
	TipoCarteira         string `json:"tipo_carteira,omitempty"`
	TipoImpressao        string `json:"tipo_impressao,omitempty"`
	TipoBoleto           string `json:"tipo_boleto,omitempty"`
	Postagem             string `json:"postagem,omitempty"`
	ImpressaoBoleto      string `json:"impressao_boleto,omitempty"`
	InstrucaoProtesto    string `json:"instrucao_protesto,omitempty"`
	DiasProtesto         string `json:"dias_protesto,omitempty"`
	InstrucaoNegativacao string `json:"instrucao_negativacao,omitempty"`
	DiasNegativacao      string `json:"dias_negativacao,omitempty"`
	CodigoPagadorCliente string `json:"codigo_pagador_cliente,omitempty"`
	BeneficiarioFinalDoc string `json:"beneficiario_final_documento,omitempty"`
	BeneficiarioFinal    string `json:"beneficiario_final_nome,omitempty"`
}

// DadosTituloSisdeb agrupa os campos próprios do segmento A do SISDEB.
type DadosTituloSisdeb struct {
	TipoMoeda       string `json:"tipo_moeda"`
	QuantidadeMoeda int64  `json:"quantidade_moeda"`
	CodigoMovimento string `json:"codigo_movimento"`
	AgenciaDebitada string `json:"agencia_debitada"`
	ContaDebitada   string `json:"conta_debitada"`
}

// DadosSegmentoR carrega descontos 2/3 e multa lidos do segmento R.
type DadosSegmentoR struct {
	Desconto2Codigo string          `json:"desconto2_codigo,omitempty"`
	Desconto2Data   string          `json:"desconto2_data,omitempty"`
	Desconto2Valor  decimal.Decimal `json:"desconto2_valor"`
	Desconto3Codigo string          `json:"desconto3_codigo,omitempty"`
	Desconto3Data   string          `json:"desconto3_data,omitempty"`
	Desconto3Valor  decimal.Decimal `json:"desconto3_valor"`
	MultaCodigo     string          `json:"multa_codigo,omitempty"`
	MultaData       string          `json:"multa_data,omitempty"`
	MultaValor      decimal.Decimal `json:"multa_valor"`
}

// ResumoRemessa traz os agregados recalculados pelo validador, nunca os
// declarados nos trailers.
type ResumoRemessa struct {
	QuantidadeTitulos  int             `json:"quantidade_titulos"`
	ValorTotalCentavos int64           `json:"valor_total_centavos"`
	ValorTotalReais    decimal.Decimal `json:"valor_total_reais"`
	MenorVencimento    string          `json:"menor_vencimento,omitempty"`
	MaiorVencimento    string          `json:"maior_vencimento,omitempty"`
	Comandos           map[string]int  `json:"comandos,omitempty"`
	Carteiras          map[string]int  `json:"carteiras,omitempty"`

	// Registros opcionais tipo 5 vistos no CNAB 400 (BB e Banestes).
	RegistrosOpcionais int `json:"registros_opcionais,omitempty"`
}

// HeaderCnab400 guarda os campos de identificação lidos do header de um
// arquivo CNAB 400, usados no confronto de dados da conta e na apresentação.
type HeaderCnab400 struct {
	Agencia           string `json:"agencia,omitempty"`
	AgenciaDV         string `json:"agencia_dv,omitempty"`
	Conta             string `json:"conta,omitempty"`
	ContaDV           string `json:"conta_dv,omitempty"`
	NomeCedente       string `json:"nome_cedente,omitempty"`
	Documento         string `json:"documento,omitempty"`
	Convenio          string `json:"convenio,omitempty"`
	DataGravacao      string `json:"data_gravacao,omitempty"`
	SequencialRemessa string `json:"sequencial_remessa,omitempty"`
}

// ResultadoCnab400 é o contrato comum devolvido por todos os módulos de
// banco do CNAB 400.
type ResultadoCnab400 struct {
	CodigoBanco    string         `json:"codigo_banco"`
	NomeBanco      string         `json:"nome_banco"`
	ErrosHeader    []string       `json:"erros_header"`
	ErrosRegistros []string       `json:"erros_registros"`
	ErrosTrailer   []string       `json:"erros_trailer"`
	Avisos         []Aviso        `json:"avisos"`
	Titulos        []Titulo       `json:"titulos"`
	Resumo         *ResumoRemessa `json:"resumo,omitempty"`
	Header         *HeaderCnab400 `json:"header_info,omitempty"`
}

// ResultadoSisdeb é o contrato do decodificador Itaú SISDEB (débito
// automático, segmento A), com erros separados por região do arquivo.
type ResultadoSisdeb struct {
	ErrosHeader   []string       `json:"erros_header"`
	ErrosLotes    []string       `json:"erros_lotes"`
	ErrosDetalhes []string       `json:"erros_detalhes"`
	ErrosTrailer  []string       `json:"erros_trailer"`
	Avisos        []Aviso        `json:"avisos"`
	Titulos       []Titulo       `json:"titulos"`
	Resumo        *ResumoRemessa `json:"resumo,omitempty"`
}

// ResultadoBoleto é o retorno da validação de linha digitável.
type ResultadoBoleto struct {
	Erros         []string        `json:"erros"`
	CodigoBarras  string          `json:"codigo_barras,omitempty"`
	Banco         string          `json:"banco,omitempty"`
	Moeda         string          `json:"moeda,omitempty"`
	Vencimento    string          `json:"vencimento,omitempty"`
	ValorCentavos int64           `json:"valor_centavos,omitempty"`
	ValorReais    decimal.Decimal `json:"valor_reais,omitempty"`
}

// ResultadoValidacao é o contrato de saída do orquestrador: o chamador (web
// ou CLI) apenas apresenta; nenhuma validação acontece fora do core.
type ResultadoValidacao struct {
	Layout              string   `json:"layout"`
	TamanhosEncontrados []int    `json:"tamanhos_encontrados,omitempty"`
	CodigoBanco         string   `json:"codigo_banco"`
	NomeBanco           string   `json:"nome_banco"`

	ErrosTamanho   []string `json:"erros_tamanho"`
	ErrosEstrutura []string `json:"erros_estrutura"`
	ErrosBanco     []string `json:"erros_banco"`
	ErrosLotes     []string `json:"erros_lotes"`
	ErrosSequencia []string `json:"erros_sequencia"`
	ErrosSegmentos []string `json:"erros_segmentos"`
	Avisos         []Aviso  `json:"avisos"`

	ErrosDadosConta  []string `json:"erros_dados_conta,omitempty"`
	AvisosDadosConta []string `json:"avisos_dados_conta,omitempty"`

	Titulos []Titulo       `json:"titulos"`
	Resumo  *ResumoRemessa `json:"resumo_remessa,omitempty"`

	Sisdeb  *ResultadoSisdeb  `json:"sisdeb,omitempty"`
	Cnab400 *ResultadoCnab400 `json:"cnab400,omitempty"`
}
