package server

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// BasicAuth guards the api group. Both fields are compared in constant
// time and the response never says which one was wrong.
func BasicAuth(username, password string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()

		userOK := subtle.ConstantTimeCompare([]byte(user), []byte(username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(password)) == 1

		if !ok || !userOK || !passOK {
			c.Header("WWW-Authenticate", `Basic realm="linkdealer"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorEnvelope{
				Error: APIError{
					Message: "incorrect username or password",
					Code:    "unauthorized",
				},
			})
			return
		}

		c.Next()
	}
}
