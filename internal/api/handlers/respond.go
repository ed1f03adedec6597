package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/thesislink/engine/internal/api/middleware"
	"github.com/thesislink/engine/internal/api/types"
	"github.com/thesislink/engine/internal/api/validators"
	appErr "github.com/thesislink/engine/pkg/errors"
	"github.com/thesislink/engine/pkg/logger"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError converts an error to the envelope, deriving the HTTP status
// from its code. Unexpected errors are logged; their cause stays server-side.
func writeError(w http.ResponseWriter, err error) {
	status := types.StatusOf(err)
	if status == http.StatusInternalServerError {
		logger.L().Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, types.FromError(err))
}

// decodeValid decodes a JSON body into req and runs struct validation.
func decodeValid(r *http.Request, req any) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return appErr.New(appErr.CodeInvalid, "invalid json")
	}
	if err := validators.New().Struct(req); err != nil {
		return appErr.Wrap(err, appErr.CodeInvalid, err.Error())
	}
	return nil
}

// identity returns the authenticated user id, or uuid.Nil when absent.
func identity(r *http.Request) uuid.UUID {
	id, err := uuid.Parse(middleware.GetUserID(r.Context()))
	if err != nil {
		return uuid.Nil
	}
	return id
}

func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, appErr.New(appErr.CodeInvalid, "invalid id")
	}
	return id, nil
}
