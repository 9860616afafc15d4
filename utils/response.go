// utils/response.go
package utils

import (
	"crypto/rand"
	"encoding/base32"
	"strings"

	"github.com/gin-gonic/gin"
)

// RespondWithError sends a JSON error payload with the given status code
func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// GenerateRandomString returns a random alphanumeric string of length n
func GenerateRandomString(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic("failed to read random bytes")
	}
	s := base32.StdEncoding.EncodeToString(buf)
	s = strings.TrimRight(s, "=")
	if len(s) > n {
		s = s[:n]
	}
	return s
}
