package remote

import (
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// Error - body of an error response from the QTM backend.
type Error struct {
	Message     string `json:"message"`
	ErrCode     string `json:"errorCode"`
	ExceptionId string `json:"exceptionId"`
	response    *resty.Response
}

func (e *Error) Error() string {
	req := e.response.Request
	msg := fmt.Sprintf(`%s, method: "%s", url: "%s", httpCode: "%d"`, e.Message, req.Method, req.URL, e.HttpStatus())
	if len(e.ErrCode) > 0 {
		msg += fmt.Sprintf(`, errCode: "%s"`, e.ErrCode)
	}
	if len(e.ExceptionId) > 0 {
		msg += fmt.Sprintf(`, exceptionId: "%s"`, e.ExceptionId)
	}
	return msg
}

func (e *Error) SetResponse(response *resty.Response) {
	e.response = response
}

func (e *Error) HttpStatus() int {
	return e.response.StatusCode()
}

func (e *Error) IsBadRequest() bool {
	return e.HttpStatus() == http.StatusBadRequest
}

func (e *Error) IsUnauthorized() bool {
	return e.HttpStatus() == http.StatusUnauthorized
}

func (e *Error) IsForbidden() bool {
	return e.HttpStatus() == http.StatusForbidden
}

func (e *Error) IsNotFound() bool {
	return e.HttpStatus() == http.StatusNotFound
}
