// cmd/cli/main.go
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/LuisEduardoPedra/validaCnab/internal/core/boleto"
	"github.com/LuisEduardoPedra/validaCnab/internal/core/validation"
	"github.com/LuisEduardoPedra/validaCnab/internal/domain"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "validacnab",
})

var (
	flagBanco     string
	flagAgencia   string
	flagConta     string
	flagDocumento string
	flagNome      string
	flagJSON      bool
)

var rootCmd = &cobra.Command{
	Use:   "validacnab",
	Short: "Valida arquivos de remessa CNAB 240/400 e linhas digitáveis de boleto",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var remessaCmd = &cobra.Command{
	Use:   "remessa <arquivo>",
	Short: "Valida um arquivo de remessa CNAB 240 ou CNAB 400",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("abrir remessa: %w", err)
		}
		defer f.Close()

		dados := domain.DadosConta{
			Banco:     flagBanco,
			Agencia:   flagAgencia,
			Conta:     flagConta,
			Documento: flagDocumento,
			Nome:      flagNome,
		}

		res, err := validation.NewService().ValidarRemessa(f, dados)
		if err != nil {
			return fmt.Errorf("validar remessa: %w", err)
		}

		if flagJSON {
			return imprimirJSON(res)
		}
		imprimirRelatorio(args[0], res)
		if totalErros(res) > 0 {
			os.Exit(1)
		}
		return nil
	},
}

var boletoCmd = &cobra.Command{
	Use:   "boleto <linha digitável>",
	Short: "Valida uma linha digitável de boleto (47 dígitos)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res := boleto.ValidarLinhaDigitavel(args[0])
		if flagJSON {
			return imprimirJSON(res)
		}
		if len(res.Erros) > 0 {
			for _, e := range res.Erros {
				fmt.Printf("  [ERRO] %s\n", e)
			}
			os.Exit(1)
		}
		fmt.Printf("Linha digitável válida.\n")
		fmt.Printf("  Banco:          %s\n", res.Banco)
		fmt.Printf("  Moeda:          %s\n", res.Moeda)
		if res.Vencimento != "" {
			fmt.Printf("  Vencimento:     %s\n", res.Vencimento)
		}
		fmt.Printf("  Valor:          R$ %s\n", res.ValorReais.StringFixed(2))
		fmt.Printf("  Código de barras: %s\n", res.CodigoBarras)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "imprime o resultado em JSON")

	remessaCmd.Flags().StringVar(&flagBanco, "banco", "", "código do banco esperado (ex.: 001)")
	remessaCmd.Flags().StringVar(&flagAgencia, "agencia", "", "agência do beneficiário para confronto")
	remessaCmd.Flags().StringVar(&flagConta, "conta", "", "conta do beneficiário para confronto")
	remessaCmd.Flags().StringVar(&flagDocumento, "documento", "", "CPF/CNPJ do beneficiário para confronto")
	remessaCmd.Flags().StringVar(&flagNome, "nome", "", "nome do beneficiário para confronto")

	rootCmd.AddCommand(remessaCmd)
	rootCmd.AddCommand(boletoCmd)
}

func imprimirJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func totalErros(res *domain.ResultadoValidacao) int {
	n := len(res.ErrosTamanho) + len(res.ErrosEstrutura) + len(res.ErrosBanco) +
		len(res.ErrosLotes) + len(res.ErrosSequencia) + len(res.ErrosSegmentos) +
		len(res.ErrosDadosConta)
	if res.Cnab400 != nil {
		n += len(res.Cnab400.ErrosHeader) + len(res.Cnab400.ErrosRegistros) + len(res.Cnab400.ErrosTrailer)
	}
	if res.Sisdeb != nil {
		n += len(res.Sisdeb.ErrosHeader) + len(res.Sisdeb.ErrosLotes) +
			len(res.Sisdeb.ErrosDetalhes) + len(res.Sisdeb.ErrosTrailer)
	}
	return n
}

func imprimirSecao(titulo string, erros []string) {
	if len(erros) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", titulo)
	for _, e := range erros {
		fmt.Printf("  [ERRO] %s\n", e)
	}
}

func imprimirAvisos(avisos []domain.Aviso) {
	if len(avisos) == 0 {
		return
	}
	fmt.Printf("\nAvisos:\n")
	for _, a := range avisos {
		fmt.Printf("  [AVISO] (%s) %s\n", a.Categoria, a.Mensagem)
	}
}

func imprimirResumo(resumo *domain.ResumoRemessa) {
	if resumo == nil {
		return
	}
	fmt.Printf("\nResumo da remessa:\n")
	fmt.Printf("  Títulos:     %d\n", resumo.QuantidadeTitulos)
	fmt.Printf("  Valor total: R$ %s\n", resumo.ValorTotalReais.StringFixed(2))
	if resumo.MenorVencimento != "" {
		fmt.Printf("  Vencimentos: %s a %s\n", resumo.MenorVencimento, resumo.MaiorVencimento)
	}
	for comando, qtd := range resumo.Comandos {
		fmt.Printf("  Comando %s: %d\n", comando, qtd)
	}
	for carteira, qtd := range resumo.Carteiras {
		fmt.Printf("  Carteira %s: %d\n", carteira, qtd)
	}
	if resumo.RegistrosOpcionais > 0 {
		fmt.Printf("  Registros opcionais: %d\n", resumo.RegistrosOpcionais)
	}
}

func imprimirRelatorio(arquivo string, res *domain.ResultadoValidacao) {
	logger.Info("arquivo processado", "arquivo", arquivo, "layout", res.Layout, "banco", res.CodigoBanco)

	fmt.Printf("Arquivo:  %s\n", arquivo)
	fmt.Printf("Layout:   CNAB %s\n", res.Layout)
	if res.CodigoBanco != "" {
		fmt.Printf("Banco:    %s - %s\n", res.CodigoBanco, res.NomeBanco)
	}

	imprimirSecao("Tamanho das linhas", res.ErrosTamanho)
	imprimirSecao("Estrutura do arquivo", res.ErrosEstrutura)
	imprimirSecao("Código do banco", res.ErrosBanco)
	imprimirSecao("Lotes", res.ErrosLotes)
	imprimirSecao("Sequência de registros", res.ErrosSequencia)
	imprimirSecao("Segmentos", res.ErrosSegmentos)
	imprimirSecao("Dados da conta", res.ErrosDadosConta)

	if res.Cnab400 != nil {
		imprimirSecao("Header (CNAB 400)", res.Cnab400.ErrosHeader)
		imprimirSecao("Registros (CNAB 400)", res.Cnab400.ErrosRegistros)
		imprimirSecao("Trailer (CNAB 400)", res.Cnab400.ErrosTrailer)
		imprimirAvisos(res.Cnab400.Avisos)
	}
	if res.Sisdeb != nil {
		imprimirSecao("Header (SISDEB)", res.Sisdeb.ErrosHeader)
		imprimirSecao("Lotes (SISDEB)", res.Sisdeb.ErrosLotes)
		imprimirSecao("Detalhes (SISDEB)", res.Sisdeb.ErrosDetalhes)
		imprimirSecao("Trailer (SISDEB)", res.Sisdeb.ErrosTrailer)
		imprimirAvisos(res.Sisdeb.Avisos)
	}

	imprimirAvisos(res.Avisos)
	if len(res.AvisosDadosConta) > 0 {
		fmt.Printf("\nAvisos dos dados da conta:\n")
		for _, a := range res.AvisosDadosConta {
			fmt.Printf("  [AVISO] %s\n", a)
		}
	}

	imprimirResumo(res.Resumo)

	if n := totalErros(res); n > 0 {
		logger.Error("validação concluída com erros", "erros", n)
	} else {
		logger.Info("validação concluída sem erros")
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
}
