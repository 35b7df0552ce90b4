// cmd/web/main.go
package main

import (
	"log"
	"os"

	"github.com/LuisEduardoPedra/validaCnab/internal/api/handlers"
	"github.com/LuisEduardoPedra/validaCnab/internal/api/middleware"
	"github.com/LuisEduardoPedra/validaCnab/internal/api/responses"
	"github.com/LuisEduardoPedra/validaCnab/internal/config"
	"github.com/LuisEduardoPedra/validaCnab/internal/core/auth"
	"github.com/LuisEduardoPedra/validaCnab/internal/core/validation"
	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	cfgFile := pflag.StringP("config", "c", "", "caminho do arquivo de configuração (padrão: ./config.yaml)")
	pflag.String("port", "", "porta HTTP (sobrepõe a configuração)")
	pflag.Parse()

	responses.InitLogger()
	logger := responses.Logger()

	cfg, err := config.Load(*cfgFile, pflag.CommandLine)
	if err != nil {
		log.Fatalf("Erro ao carregar configuração: %v", err)
	}
	if cfg.Auth.JWTSecret == "" {
		logger.Warn("segredo JWT não configurado; defina auth.jwt_secret ou JWT_SECRET")
	}

	authService := auth.NewService(cfg.Auth)
	validationService := validation.NewService()

	authHandler := handlers.NewAuthHandler(authService)
	validationHandler := handlers.NewValidationHandler(validationService)
	boletoHandler := handlers.NewBoletoHandler()

	router := gin.Default()
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/login", authHandler.Login)
		protected := apiV1.Group("/")
		protected.Use(middleware.AuthMiddleware([]byte(cfg.Auth.JWTSecret)))
		{
			// As rotas de validação exigem o papel "validador" no token.
			validate := protected.Group("/validate", middleware.RequireRole("validador"))
			validate.POST("/remessa", validationHandler.HandleValidarRemessa)
			validate.POST("/boleto", boletoHandler.HandleValidarBoleto)
		}
	}
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})

	port := cfg.Port
	if env := os.Getenv("PORT"); env != "" {
		port = env
	}

	logger.Info("🚀 Servidor iniciado", zap.String("port", port))

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Falha ao iniciar o servidor: ", err)
	}
}
