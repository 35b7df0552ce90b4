package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const segredoTeste = "segredo-de-teste"

func tokenTeste(t *testing.T, roles []string) string {
	t.Helper()
	claims := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "maria",
		"roles":    roles,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	assinado, err := claims.SignedString([]byte(segredoTeste))
	if err != nil {
		t.Fatalf("erro ao assinar token de teste: %v", err)
	}
	return assinado
}

func routerTeste(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	cadeia := append([]gin.HandlerFunc{AuthMiddleware([]byte(segredoTeste))}, handlers...)
	cadeia = append(cadeia, func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	router.GET("/protegida", cadeia...)
	return router
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("Token válido libera a rota", func(t *testing.T) {
		router := routerTeste()
		req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
		req.Header.Set("Authorization", "Bearer "+tokenTeste(t, nil))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, esperado 200", rec.Code)
		}
	})

	t.Run("Sem cabeçalho Authorization devolve 401", func(t *testing.T) {
		router := routerTeste()
		req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, esperado 401", rec.Code)
		}
	})

	t.Run("Token assinado com outro segredo devolve 401", func(t *testing.T) {
		claims := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"username": "maria",
			"exp":      time.Now().Add(time.Hour).Unix(),
		})
		assinado, err := claims.SignedString([]byte("outro-segredo"))
		if err != nil {
			t.Fatalf("erro ao assinar token: %v", err)
		}
		router := routerTeste()
		req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
		req.Header.Set("Authorization", "Bearer "+assinado)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, esperado 401", rec.Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	t.Run("Papel presente no token libera a rota", func(t *testing.T) {
		router := routerTeste(RequireRole("validador"))
		req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
		req.Header.Set("Authorization", "Bearer "+tokenTeste(t, []string{"validador"}))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, esperado 200", rec.Code)
		}
	})

	t.Run("Papel ausente devolve 403", func(t *testing.T) {
		router := routerTeste(RequireRole("validador"))
		req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
		req.Header.Set("Authorization", "Bearer "+tokenTeste(t, []string{"leitor"}))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, esperado 403", rec.Code)
		}
	})

	t.Run("Token sem claim de papéis devolve 403", func(t *testing.T) {
		router := routerTeste(RequireRole("validador"))
		req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
		req.Header.Set("Authorization", "Bearer "+tokenTeste(t, nil))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, esperado 403", rec.Code)
		}
	})
}
