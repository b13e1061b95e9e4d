package handlers

import (
	"net/http"

	"github.com/upb/casting-agency/services"
	"github.com/upb/casting-agency/utils"
	"go.uber.org/zap"
)

// HandleServiceError maps domain errors to HTTP responses. Clients get the
// fixed message for the status; the cause is only logged.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	var writeErr error
	switch {
	case services.IsNotFoundError(err):
		writeErr = utils.WriteNotFound(w)

	case services.IsValidationError(err):
		logger.Debug("request failed validation",
			zap.Error(err),
			zap.Any("details", services.GetErrorDetails(err)))
		writeErr = utils.WriteUnprocessable(w)

	case services.IsBadRequestError(err):
		logger.Debug("bad request", zap.Error(err))
		writeErr = utils.WriteBadRequest(w)

	case services.IsInternalError(err):
		logger.Error("internal server error", zap.Error(err))
		writeErr = utils.WriteInternalServerError(w)

	default:
		logger.Error("unhandled error type",
			zap.Error(err),
			zap.String("error_type", string(services.GetErrorType(err))))
		writeErr = utils.WriteInternalServerError(w)
	}

	if writeErr != nil {
		logger.Error("failed to write error response", zap.Error(writeErr))
	}
}
