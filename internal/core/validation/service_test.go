package validation

import (
	"strings"
	"testing"

	"github.com/LuisEduardoPedra/validaCnab/internal/domain"
)

// campoFixo posiciona um valor em uma linha de largura fixa (pos 1-based).
type campoFixo struct {
	pos   int
	valor string
}

func montarLinha(tamanho int, campos ...campoFixo) string {
	b := []rune(strings.Repeat(" ", tamanho))
	for _, c := range campos {
		copy(b[c.pos-1:], []rune(c.valor))
	}
	return string(b)
}

func arquivo240() []string {
	return []string{
		montarLinha(240, campoFixo{1, "001"}, campoFixo{4, "0000"}, campoFixo{8, "0"}),
		montarLinha(240, campoFixo{1, "001"}, campoFixo{4, "0001"}, campoFixo{8, "1"}),
		montarLinha(240,
			campoFixo{1, "001"}, campoFixo{4, "0001"}, campoFixo{8, "3"},
			campoFixo{9, "00001"}, campoFixo{14, "P"},
			campoFixo{38, "12345670000000001"},
			campoFixo{78, "15042024"},
			campoFixo{86, "000000000012345"},
		),
		montarLinha(240,
			campoFixo{1, "001"}, campoFixo{4, "0001"}, campoFixo{8, "3"},
			campoFixo{9, "00002"}, campoFixo{14, "Q"},
			campoFixo{16, "01"},
			campoFixo{22, "11144477735"},
			campoFixo{34, "JOAO DA SILVA"},
			campoFixo{74, "RUA DOS ANDRADAS 100"},
			campoFixo{129, "93010100"},
			campoFixo{137, "PORTO ALEGRE"},
			campoFixo{152, "RS"},
		),
		montarLinha(240, campoFixo{1, "001"}, campoFixo{4, "0001"}, campoFixo{8, "5"}, campoFixo{18, "000004"}),
		montarLinha(240, campoFixo{1, "001"}, campoFixo{4, "9999"}, campoFixo{8, "9"}, campoFixo{18, "000001"}, campoFixo{24, "000006"}),
	}
}

func TestValidarLinhas(t *testing.T) {
	t.Run("Layout não identificável", func(t *testing.T) {
		linhas := []string{
			strings.Repeat("0", 240),
			strings.Repeat("1", 400),
		}
		res := ValidarLinhas(linhas, domain.DadosConta{})
		if res.Layout != "desconhecido" {
			t.Errorf("layout = %s, esperado desconhecido", res.Layout)
		}
		if len(res.ErrosTamanho) != 1 || !strings.Contains(res.ErrosTamanho[0], "[240 400]") {
			t.Errorf("erros de tamanho: %v", res.ErrosTamanho)
		}
	})

	t.Run("Remessa CNAB 240 do Banco do Brasil", func(t *testing.T) {
		res := ValidarLinhas(arquivo240(), domain.DadosConta{})
		if res.Layout != "240" {
			t.Errorf("layout = %s, esperado 240", res.Layout)
		}
		if res.CodigoBanco != "001" || res.NomeBanco != "Banco do Brasil" {
			t.Errorf("banco = %s (%s)", res.CodigoBanco, res.NomeBanco)
		}
		if len(res.ErrosEstrutura) != 0 {
			t.Errorf("erros de estrutura inesperados: %v", res.ErrosEstrutura)
		}
		if len(res.ErrosSegmentos) != 0 {
			t.Errorf("erros de segmento inesperados: %v", res.ErrosSegmentos)
		}
		if len(res.Titulos) != 1 {
			t.Fatalf("esperava 1 título, obteve %d", len(res.Titulos))
		}
		if res.Resumo == nil || res.Resumo.QuantidadeTitulos != 1 {
			t.Errorf("resumo = %+v", res.Resumo)
		}
	})

	t.Run("Banco informado diferente do detectado", func(t *testing.T) {
		res := ValidarLinhas(arquivo240(), domain.DadosConta{Banco: "341"})
		achou := false
		for _, e := range res.ErrosDadosConta {
			if strings.Contains(e, "Banco informado (341)") && strings.Contains(e, "(001)") {
				achou = true
			}
		}
		if !achou {
			t.Errorf("esperava erro de banco divergente, obteve: %v", res.ErrosDadosConta)
		}
	})

	t.Run("Remessa CNAB 400 é delegada à estratégia do banco", func(t *testing.T) {
		linhas := []string{
			montarLinha(400, campoFixo{1, "0"}, campoFixo{77, "341"}),
		}
		res := ValidarLinhas(linhas, domain.DadosConta{})
		if res.Layout != "400" {
			t.Errorf("layout = %s, esperado 400", res.Layout)
		}
		if res.CodigoBanco != "341" {
			t.Errorf("banco = %s, esperado 341", res.CodigoBanco)
		}
		if res.Cnab400 == nil {
			t.Fatal("esperava resultado CNAB 400 preenchido")
		}
	})
}

func TestLerLinhas(t *testing.T) {
	t.Run("Conteúdo Latin-1 é decodificado", func(t *testing.T) {
		// 'Ã' em ISO-8859-1 é o byte 0xC3.
		entrada := strings.NewReader("JO\xc3O\r\nSEGUNDA LINHA\r\n")
		linhas, err := LerLinhas(entrada)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if len(linhas) != 2 {
			t.Fatalf("esperava 2 linhas, obteve %d", len(linhas))
		}
		if linhas[0] != "JOÃO" {
			t.Errorf("linha decodificada = %q, esperado JOÃO", linhas[0])
		}
	})
}

func TestAvisosNossoNumeroDuplicado(t *testing.T) {
	titulos := []domain.Titulo{
		{NossoNumero: "12345670000000001", Lote: "0001", Sequencia: "00001"},
		{NossoNumero: "12345670000000002", Lote: "0001", Sequencia: "00003"},
		{NossoNumero: "12345670000000001", Lote: "0001", Sequencia: "00005"},
		{NossoNumero: ""},
		{NossoNumero: ""},
	}
	avisos := avisosNossoNumeroDuplicado(titulos)
	if len(avisos) != 1 {
		t.Fatalf("esperava 1 aviso, obteve %d: %v", len(avisos), avisos)
	}
	if !strings.Contains(avisos[0].Mensagem, "'12345670000000001'") {
		t.Errorf("aviso inesperado: %s", avisos[0].Mensagem)
	}
	if avisos[0].Categoria != domain.CategoriaConvenio {
		t.Errorf("categoria = %s", avisos[0].Categoria)
	}
}
