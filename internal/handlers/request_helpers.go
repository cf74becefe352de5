package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// respondError writes the contract error body {error, code}. An empty code
// omits the field.
func respondError(c *gin.Context, status int, message, code string) {
	body := gin.H{"error": message}
	if code != "" {
		body["code"] = code
	}
	c.AbortWithStatusJSON(status, body)
}

// respondInternalError surfaces the raw error message in the body. Clients
// parse this prefix; changing it is a breaking change.
func respondInternalError(c *gin.Context, route string, err error) {
	log.Printf("[%s] returning error 500: %v", route, err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error: " + err.Error(),
	})
}

func respondValidationError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := lowerCamel(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"details": details,
		})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "details": err.Error()})
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
