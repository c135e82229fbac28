package httputil

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigFastest

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, r *http.Request, code int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		GetLogger(r).WithError(err).Error("Failed to encode JSON response.")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(b); err != nil {
		GetLogger(r).WithError(err).Warn("Failed to write JSON response.")
	}
}
