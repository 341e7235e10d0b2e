package middleware

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows any origin to POST the form and answers preflight requests
func CORS() gin.HandlerFunc {
	c := cors.DefaultConfig()
	c.AllowAllOrigins = true
	c.AllowMethods = []string{"POST", "OPTIONS"}
	c.AllowHeaders = []string{"Content-Type"}
	c.OptionsResponseStatusCode = http.StatusOK
	return cors.New(c)
}
