package response

import (
	"encoding/json"
	"net/http"
)

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Resp{Message: "Success", Data: data})
}

func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, Resp{Message: "Success", Data: data})
}

// Error renders err. Anything that is not a *errors.HTTPError becomes a 500
// without leaking its text.
func Error(w http.ResponseWriter, err error) {
	statusCode, body := parseHttpError(err)
	JSON(w, statusCode, body)
}

func JSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
