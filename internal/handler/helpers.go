package handler

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/email-do-dev/prodata/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var faltantes []string
		for _, fe := range err.(validator.ValidationErrors) {
			faltantes = append(faltantes, fe.Field())
		}
		c.JSON(http.StatusBadRequest, apierror.New("Campos inválidos: "+strings.Join(faltantes, ", ")))
		return false
	}
	return true
}

// parseID lê um parâmetro de rota como UUID; escreve o 400 e devolve false
// quando inválido.
func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return uuid.Nil, false
	}
	return id, true
}

// respondOK escreve {success: true, data}.
func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// respondList escreve {success: true, total, data}.
func respondList(c *gin.Context, data interface{}) {
	total := 0
	if v := reflect.ValueOf(data); v.Kind() == reflect.Slice {
		total = v.Len()
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "total": total, "data": data})
}

// respondErr traduz o erro para o status da taxonomia e escreve o envelope de
// falha, mascarando erros não tipados.
func respondErr(c *gin.Context, err error) {
	c.JSON(apierror.StatusOf(err), apierror.From(err))
}
