package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

// ======================================================
// BUSINESS → HTTP
// ======================================================

var businessStatus = map[string]int{
	"invalid_day":               http.StatusBadRequest,
	"invalid_time":              http.StatusBadRequest,
	"past_date":                 http.StatusBadRequest,
	"no_shop_selected":          http.StatusBadRequest,
	"invalid_credentials":       http.StatusUnauthorized,
	"current_password_required": http.StatusBadRequest,
	"wrong_password":            http.StatusBadRequest,
	"password_mismatch":         http.StatusBadRequest,
	"invalid_image":             http.StatusBadRequest,
	"not_allowed":               http.StatusForbidden,
	"not_found":                 http.StatusNotFound,
	"slot_taken":                http.StatusConflict,
	"name_taken":                http.StatusConflict,
	"phone_taken":               http.StatusConflict,
	"username_taken":            http.StatusConflict,
	"slug_taken":                http.StatusConflict,
	"slot_exists":               http.StatusConflict,
	"storage_unavailable":       http.StatusServiceUnavailable,
}

var businessMessage = map[string]string{
	"invalid_day":               "Dia inválido.",
	"invalid_time":              "Horário inválido.",
	"past_date":                 "Essa data já passou.",
	"no_shop_selected":          "Nenhuma barbearia selecionada.",
	"invalid_credentials":       "Usuário ou senha inválidos.",
	"current_password_required": "Informe a senha atual para alterar a senha.",
	"wrong_password":            "Senha atual incorreta.",
	"password_mismatch":         "Nova senha e confirmação não conferem.",
	"invalid_image":             "Imagem inválida.",
	"not_allowed":               "Ação não permitida.",
	"not_found":                 "Registro não encontrado.",
	"slot_taken":                "Horário já reservado. Escolha outro horário.",
	"name_taken":                "Nome da barbearia já existe.",
	"phone_taken":               "Telefone já cadastrado.",
	"username_taken":            "Já existe um usuário com esse nome.",
	"slug_taken":                "Slug já existe.",
	"slot_exists":               "Já existe um horário igual nesse dia.",
	"storage_unavailable":       "Armazenamento indisponível.",
}

// FromError writes err as a JSON error. Business errors keep their code;
// faults are reported as internalCode without leaking details.
func FromError(c *gin.Context, err error, internalCode string) {
	code, ok := Code(err)
	if !ok {
		Internal(c, internalCode, "Erro interno.")
		return
	}

	status, known := businessStatus[code]
	if !known {
		status = http.StatusBadRequest
	}
	msg := businessMessage[code]
	if msg == "" {
		msg = code
	}

	Write(c, status, code, msg)
}
