package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"buildmyhome/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidator makes gin's validator report JSON field names
func registerValidator() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(model.JSONFieldName)
		}
	})
}

// badRequest writes a 400 naming the first field that failed to bind
func badRequest(c *gin.Context, err error) {
	field, msg := firstFieldError(err)
	if field == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request: " + msg})
		return
	}
	c.JSON(http.StatusBadRequest, model.ErrorResponse{
		Error: "Invalid request: " + field + " " + msg,
		Field: field,
	})
}

func firstFieldError(err error) (string, string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), model.Describe(verrs[0])
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeErr.Field, "must be a " + typeErr.Type.String()
	}
	return "", err.Error()
}

// parseID reads a positive integer path parameter
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
