// internal/api/handlers/validation_handler.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/LuisEduardoPedra/validaCnab/internal/api/responses"
	"github.com/LuisEduardoPedra/validaCnab/internal/core/validation"
	"github.com/LuisEduardoPedra/validaCnab/internal/domain"
	"github.com/gin-gonic/gin"
)

// ValidationHandler recebe o arquivo de remessa e os dados da conta
// informados pelo usuário e devolve o relatório completo de validação.
type ValidationHandler struct {
	service validation.Service
}

func NewValidationHandler(service validation.Service) *ValidationHandler {
	return &ValidationHandler{service: service}
}

func (h *ValidationHandler) HandleValidarRemessa(c *gin.Context) {
	fileHeader, err := c.FormFile("remessaFile")
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Arquivo de remessa não encontrado ou inválido")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Não foi possível abrir o arquivo de remessa")
		return
	}
	defer file.Close()

	dados := domain.DadosConta{
		Banco:     strings.TrimSpace(c.PostForm("banco")),
		Agencia:   strings.TrimSpace(c.PostForm("agencia")),
		Conta:     strings.TrimSpace(c.PostForm("conta")),
		Documento: strings.TrimSpace(c.PostForm("documento")),
		Nome:      strings.TrimSpace(c.PostForm("nome")),
	}

	resultado, err := h.service.ValidarRemessa(file, dados)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao processar o arquivo de remessa", err.Error())
		return
	}

	responses.JSON(c, http.StatusOK, resultado)
}
