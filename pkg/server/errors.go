package server

import (
	"encoding/json"
	"net/http"

	"github.com/vango-dev/signalgraph/internal/errors"
)

// errorBody is the JSON form of an error in responses and stream frames.
type errorBody struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func toErrorBody(err error) errorBody {
	ge := errors.FromError(err, "")
	body := errorBody{Code: ge.Code, Message: ge.Message, Detail: ge.Detail}
	if ge.Wrapped != nil {
		body.Message = err.Error()
	}
	return body
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch errors.CodeOf(err) {
	case "G020", "G021":
		return http.StatusNotFound
	case "G022":
		return http.StatusBadRequest
	case "G001", "G002", "G003", "G004":
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, struct {
		Error errorBody `json:"error"`
	}{toErrorBody(err)})
}

func badRequest(detail string) error {
	return errors.New("G022").WithDetail(detail)
}
