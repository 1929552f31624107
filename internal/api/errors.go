package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/honeycarbs/jobboard/internal/domain/job"
)

// Error is the body of every failed response: {"error":{"code","message"}}
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func errBadRequest(code, msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: code, Message: msg}
}

func errNotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Code: "not_found", Message: msg}
}

func errPageChanged(want, got int) *Error {
	return &Error{
		Status:  http.StatusConflict,
		Code:    "page_changed",
		Message: fmt.Sprintf("page %d was replaced by page %d before it loaded; retry the request", want, got),
	}
}

func errFetch() *Error {
	return &Error{Status: http.StatusBadGateway, Code: "fetch_failed", Message: job.FetchErrorMessage}
}

func errLookup() *Error {
	return &Error{Status: http.StatusBadGateway, Code: "lookup_failed", Message: job.LookupErrorMessage}
}

func abort(c *gin.Context, e *Error) {
	c.AbortWithStatusJSON(e.Status, gin.H{"error": e})
}
