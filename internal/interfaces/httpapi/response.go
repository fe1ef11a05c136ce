package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/club-lineup/internal/domain/formation"
	"github.com/riskibarqy/club-lineup/internal/domain/lineup"
	"github.com/riskibarqy/club-lineup/internal/domain/matchevent"
	"github.com/riskibarqy/club-lineup/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "club-lineup"
	internalErrorMsg = "internal server error"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

// errorRules is checked in order; the first rule with a matching target
// wins.
var errorRules = []struct {
	targets []error
	mapped  mappedError
}{
	{
		targets: []error{usecase.ErrInvalidInput, matchevent.ErrInvalidEvent, formation.ErrInvalidSlotKey, lineup.ErrUnknownSlot},
		mapped:  mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"},
	},
	{
		targets: []error{usecase.ErrNotFound, formation.ErrUnknownFormation},
		mapped:  mappedError{http.StatusNotFound, "notFound", "NOT_FOUND"},
	},
	{
		targets: []error{usecase.ErrConflict, matchevent.ErrVersionConflict},
		mapped:  mappedError{http.StatusConflict, "conflict", "ABORTED"},
	},
	{
		targets: []error{lineup.ErrConfirmationRequired},
		mapped:  mappedError{http.StatusConflict, "confirmationRequired", "FAILED_PRECONDITION"},
	},
	{
		targets: []error{usecase.ErrPartialFailure},
		mapped:  mappedError{http.StatusMultiStatus, "partialFailure", "PARTIAL"},
	},
	{
		targets: []error{usecase.ErrDependencyUnavailable},
		mapped:  mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"},
	},
}

var internalError = mappedError{http.StatusInternalServerError, "internalError", "INTERNAL"}

func mapError(err error) mappedError {
	for _, rule := range errorRules {
		for _, target := range rule.targets {
			if errors.Is(err, target) {
				return rule.mapped
			}
		}
	}
	return internalError
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

// writeError maps err onto the error envelope. Unmapped errors are reported
// as a generic internal error so storage details never reach the client.
func writeError(_ context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	msg := err.Error()
	if mapped == internalError {
		msg = internalErrorMsg
	}
	writeErrorBody(w, mapped, msg)
}

func writeInternalError(_ context.Context, w http.ResponseWriter) {
	writeErrorBody(w, internalError, internalErrorMsg)
}

func writeErrorBody(w http.ResponseWriter, mapped mappedError, msg string) {
	writeJSON(w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: msg,
			Status:  mapped.Status,
			Errors: []googleErrorItem{{
				Domain:  errorDomain,
				Reason:  mapped.Reason,
				Message: msg,
			}},
		},
	})
}
