// internal/api/handlers/boleto_handler.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/LuisEduardoPedra/validaCnab/internal/api/responses"
	"github.com/LuisEduardoPedra/validaCnab/internal/core/boleto"
	"github.com/gin-gonic/gin"
)

// BoletoHandler valida linhas digitáveis de boleto (47 dígitos).
type BoletoHandler struct{}

func NewBoletoHandler() *BoletoHandler {
	return &BoletoHandler{}
}

type boletoRequest struct {
	LinhaDigitavel string `json:"linha_digitavel" binding:"required"`
}

func (h *BoletoHandler) HandleValidarBoleto(c *gin.Context) {
	var req boletoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "Corpo da requisição inválido", err.Error())
		return
	}

	linha := strings.TrimSpace(req.LinhaDigitavel)
	if linha == "" {
		responses.Error(c, http.StatusBadRequest, "Linha digitável não informada")
		return
	}

	responses.JSON(c, http.StatusOK, boleto.ValidarLinhaDigitavel(linha))
}
