package cnab400

import (
	"strings"
	"testing"

	"github.com/LuisEduardoPedra/validaCnab/internal/domain"
)

func TestValidarDadosCedente(t *testing.T) {
	linhas := []string{headerBB(), detalheBB("000002"), trailerBB("000003")}

	t.Run("Sem dados informados não valida nada", func(t *testing.T) {
		erros, avisos := ValidarDadosCedente("001", linhas, domain.DadosConta{})
		if len(erros) != 0 || len(avisos) != 0 {
			t.Errorf("esperava saída vazia, obteve erros=%v avisos=%v", erros, avisos)
		}
	})

	t.Run("Dados coincidentes", func(t *testing.T) {
		dados := domain.DadosConta{
			Agencia:   "1234",
			Conta:     "123456",
			Documento: "11.222.333/0001-81",
			Nome:      "EMPRESA EXEMPLO",
		}
		erros, avisos := ValidarDadosCedente("001", linhas, dados)
		if len(erros) != 0 {
			t.Errorf("erros inesperados: %v", erros)
		}
		if len(avisos) != 0 {
			t.Errorf("avisos inesperados: %v", avisos)
		}
	})

	t.Run("Zeros à esquerda não contam na agência e na conta", func(t *testing.T) {
		dados := domain.DadosConta{Agencia: "01234", Conta: "00123456"}
		erros, _ := ValidarDadosCedente("001", linhas, dados)
		if len(erros) != 0 {
			t.Errorf("erros inesperados: %v", erros)
		}
	})

	t.Run("Documento divergente", func(t *testing.T) {
		dados := domain.DadosConta{Documento: "99888777000166"}
		erros, _ := ValidarDadosCedente("001", linhas, dados)
		if len(erros) != 1 || !strings.Contains(erros[0], "Documento do titular informado") {
			t.Errorf("esperava erro de documento, obteve: %v", erros)
		}
	})

	t.Run("Agência divergente", func(t *testing.T) {
		dados := domain.DadosConta{Agencia: "4321"}
		erros, _ := ValidarDadosCedente("001", linhas, dados)
		if len(erros) != 1 || !strings.Contains(erros[0], "Agência informada (4321)") {
			t.Errorf("esperava erro de agência, obteve: %v", erros)
		}
	})

	t.Run("Nome divergente vira aviso", func(t *testing.T) {
		dados := domain.DadosConta{Nome: "OUTRA RAZAO SOCIAL"}
		erros, avisos := ValidarDadosCedente("001", linhas, dados)
		if len(erros) != 0 {
			t.Errorf("erros inesperados: %v", erros)
		}
		if len(avisos) != 1 || !strings.Contains(avisos[0], "Nome/Razão social") {
			t.Errorf("esperava aviso de nome, obteve: %v", avisos)
		}
	})

	t.Run("Outros bancos ainda não têm confronto", func(t *testing.T) {
		erros, avisos := ValidarDadosCedente("341", linhas, domain.DadosConta{Agencia: "1234"})
		if len(erros) != 0 || len(avisos) != 1 {
			t.Errorf("esperava só um aviso, obteve erros=%v avisos=%v", erros, avisos)
		}
		if !strings.Contains(avisos[0], "banco 341") {
			t.Errorf("aviso inesperado: %s", avisos[0])
		}
	})
}
