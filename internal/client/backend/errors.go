package backend

import (
	"encoding/json"
	"strings"

	"github.com/supanews/supanews/internal/common"
)

// Error code the REST surface uses for "zero rows where one was requested".
const CodeNoRows = "PGRST116"

// errorBody covers the error shapes of both backend surfaces: the REST one
// ({message, code, details, hint}) and the auth one, which has varied over
// versions ({msg}, {message}, {error, error_description}, {error_code}).
type errorBody struct {
	Message          string `json:"message"`
	Msg              string `json:"msg"`
	ErrorField       string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Code             any    `json:"code"` // string on REST, number on auth
	ErrorCode        string `json:"error_code"`
}

// decodeError translates an error response into a BackendError, passing the
// backend's own message through.
func decodeError(status int, body []byte) *common.BackendError {
	berr := &common.BackendError{Status: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		berr.Message = strings.TrimSpace(string(body))
		return berr
	}

	switch {
	case eb.Message != "":
		berr.Message = eb.Message
	case eb.Msg != "":
		berr.Message = eb.Msg
	case eb.ErrorDescription != "":
		berr.Message = eb.ErrorDescription
	case eb.ErrorField != "":
		berr.Message = eb.ErrorField
	default:
		berr.Message = strings.TrimSpace(string(body))
	}

	switch code := eb.Code.(type) {
	case string:
		berr.Code = code
	}
	if berr.Code == "" {
		berr.Code = eb.ErrorCode
	}

	return berr
}
