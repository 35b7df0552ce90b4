package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func novoServicoTeste(t *testing.T) Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("senha-forte"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("erro ao gerar hash: %v", err)
	}
	return NewService(Config{
		JWTSecret: "segredo-de-teste",
		TokenTTL:  time.Hour,
		Users: []User{
			{Username: "maria", PasswordHash: string(hash), Roles: []string{"validador"}},
		},
	})
}

func TestLogin(t *testing.T) {
	svc := novoServicoTeste(t)
	ctx := context.Background()

	t.Run("Credenciais corretas devolvem token assinado", func(t *testing.T) {
		token, err := svc.Login(ctx, "maria", "senha-forte")
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if token == "" {
			t.Fatal("token vazio")
		}

		parsed, err := jwt.Parse(token, func(tk *jwt.Token) (interface{}, error) {
			return []byte("segredo-de-teste"), nil
		})
		if err != nil || !parsed.Valid {
			t.Fatalf("token não pôde ser verificado: %v", err)
		}
		claims, ok := parsed.Claims.(jwt.MapClaims)
		if !ok {
			t.Fatal("claims com tipo inesperado")
		}
		if claims["username"] != "maria" {
			t.Errorf("username no token = %v", claims["username"])
		}
	})

	t.Run("Senha errada", func(t *testing.T) {
		_, err := svc.Login(ctx, "maria", "senha-errada")
		if !errors.Is(err, ErrCredenciaisInvalidas) {
			t.Errorf("erro = %v, esperado ErrCredenciaisInvalidas", err)
		}
	})

	t.Run("Usuário desconhecido", func(t *testing.T) {
		_, err := svc.Login(ctx, "desconhecido", "qualquer")
		if !errors.Is(err, ErrCredenciaisInvalidas) {
			t.Errorf("erro = %v, esperado ErrCredenciaisInvalidas", err)
		}
	})

	t.Run("Contexto cancelado", func(t *testing.T) {
		cancelado, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := svc.Login(cancelado, "maria", "senha-forte"); err == nil {
			t.Error("esperava erro com contexto cancelado")
		}
	})
}
