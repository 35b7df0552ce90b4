// internal/api/responses/responses.go
package responses

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var logger *zap.Logger

// InitLogger cria o logger estruturado compartilhado pela API. Chamado uma
// vez no main; chamadas repetidas substituem o logger sem efeito colateral.
func InitLogger() {
	l, err := zap.NewProduction()
	if err != nil {
		panic("não foi possível inicializar o logger: " + err.Error())
	}
	logger = l
}

// Logger devolve o logger da aplicação, inicializando sob demanda para que
// testes e ferramentas não precisem chamar InitLogger.
func Logger() *zap.Logger {
	if logger == nil {
		InitLogger()
	}
	return logger
}

// Error registra a falha no log estruturado e responde o JSON de erro
// padronizado. Detalhes extras entram no log, não no corpo da resposta.
func Error(c *gin.Context, status int, message string, details ...string) {
	fields := []zap.Field{
		zap.Int("status", status),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	}
	if len(details) > 0 {
		fields = append(fields, zap.Strings("details", details))
	}
	Logger().Warn(message, fields...)

	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// JSON responde sucesso registrando o acesso.
func JSON(c *gin.Context, status int, payload interface{}) {
	Logger().Info("request atendida",
		zap.Int("status", status),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	)
	c.JSON(status, payload)
}
