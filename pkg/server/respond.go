package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	bmerrors "github.com/matzehuels/bracketmaker/pkg/errors"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Code    bmerrors.Code `json:"code"`
	Message string        `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	err = bmerrors.Classify(err)
	code := bmerrors.GetCode(err)
	status := bmerrors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "err", err)
	} else {
		logger.Debug("request rejected", "code", code, "err", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: bmerrors.UserMessage(err)})
}
