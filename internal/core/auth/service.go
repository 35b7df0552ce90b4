// internal/core/auth/service.go
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrCredenciaisInvalidas cobre usuário inexistente e senha errada com a
// mesma mensagem, para não vazar qual dos dois falhou.
var ErrCredenciaisInvalidas = errors.New("usuário ou senha inválidos")

// User é um usuário da API carregado do arquivo de configuração (viper).
type User struct {
	Username     string   `mapstructure:"username"`
	PasswordHash string   `mapstructure:"password_hash"`
	Roles        []string `mapstructure:"roles"`
}

// Config reúne o que o serviço de autenticação precisa do arquivo de
// configuração.
type Config struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
	Users     []User        `mapstructure:"users"`
}

type Service interface {
	Login(ctx context.Context, username, password string) (string, error)
}

type service struct {
	secret   []byte
	ttl      time.Duration
	usuarios map[string]User
}

func NewService(cfg Config) Service {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	usuarios := make(map[string]User, len(cfg.Users))
	for _, u := range cfg.Users {
		usuarios[u.Username] = u
	}
	return &service{
		secret:   []byte(cfg.JWTSecret),
		ttl:      ttl,
		usuarios: usuarios,
	}
}

func (s *service) Login(ctx context.Context, username, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	user, ok := s.usuarios[username]
	if !ok {
		// Compara contra um hash fixo para igualar o tempo de resposta
		// entre usuário inexistente e senha errada.
		_ = bcrypt.CompareHashAndPassword(
			[]byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOa5l6bJkZxkqB3sXW0mYxW0eWJ1P8TSi"), []byte(password))
		return "", ErrCredenciaisInvalidas
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrCredenciaisInvalidas
	}

	claims := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"roles":    user.Roles,
		"exp":      time.Now().Add(s.ttl).Unix(),
	})

	tokenString, err := claims.SignedString(s.secret)
	if err != nil {
		return "", errors.New("erro ao gerar token de acesso")
	}

	return tokenString, nil
}
