package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

func respondError(c *gin.Context, err error) {
	status, code := httpStatusFromErr(err)
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	if status >= 500 {
		// Store-layer detail stays out of client responses.
		msg = "internal error"
	}
	c.JSON(status, errorEnvelope{Error: apiError{Message: msg, Code: code}})
}

func respondBindError(c *gin.Context, err error) {
	msg := "invalid request body"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(http.StatusBadRequest, errorEnvelope{Error: apiError{Message: msg, Code: "INVALID_ARGUMENT"}})
}
