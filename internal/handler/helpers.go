package handler

import (
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"
)

// getPathParam retrieves a path parameter and validates it's not empty.
func getPathParam(c *gin.Context, paramName string) (string, error) {
	value := c.Param(paramName)
	if value == "" {
		return "", fmt.Errorf("%s is required", paramName)
	}
	return value, nil
}

// getFormFile retrieves a file from multipart form data.
func getFormFile(c *gin.Context, fieldName string) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := c.Request.FormFile(fieldName)
	if err != nil {
		return nil, nil, fmt.Errorf("no %s provided", fieldName)
	}
	return file, header, nil
}

// bindJSON binds a JSON request body to a struct.
func bindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return fmt.Errorf("invalid JSON format: %v", err)
	}
	return nil
}

// stripDataURLPrefix removes a leading data URL header from a base64
// payload, if one is present.
func stripDataURLPrefix(encoded string) string {
	if !strings.HasPrefix(encoded, "data:") {
		return encoded
	}
	if idx := strings.Index(encoded, ","); idx >= 0 {
		return encoded[idx+1:]
	}
	return encoded
}
