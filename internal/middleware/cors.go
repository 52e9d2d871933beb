package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS libera o painel web para falar com a API. A lista de métodos cobre o
// que as rotas realmente expõem, incluindo os PATCH de ativação/conclusão de
// subetapa, que sem isso falhariam no preflight do navegador.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID, Content-Disposition")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
