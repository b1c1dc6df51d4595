package utils

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/studentcollab/collabhub/shared/errors"
	"github.com/studentcollab/collabhub/shared/logger"
)

func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	http.Error(w, errors.Message(err), errors.StatusCode(err))
}

// WriteJSON encodes body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Error("encoding json response", "error", err)
	}
}

// Decode reads a backend response body. A malformed body is a failed call
// from the client's point of view, so the error carries ErrNetwork.
func Decode(r io.Reader, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("decoding response body", "error", err)
		return errors.Network(http.StatusBadGateway, "Body is invalid json")
	}
	return nil
}
