package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/club-lineup/internal/domain/formation"
	"github.com/riskibarqy/club-lineup/internal/domain/lineup"
	"github.com/riskibarqy/club-lineup/internal/domain/matchevent"
	"github.com/riskibarqy/club-lineup/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestMapError_StatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid input", err: fmt.Errorf("%w: 3 positions still need to be filled", usecase.ErrInvalidInput), want: http.StatusBadRequest},
		{name: "invalid event", err: fmt.Errorf("wrap: %w", matchevent.ErrInvalidEvent), want: http.StatusBadRequest},
		{name: "unknown slot", err: lineup.ErrUnknownSlot, want: http.StatusBadRequest},
		{name: "not found", err: fmt.Errorf("%w: lineup", usecase.ErrNotFound), want: http.StatusNotFound},
		{name: "unknown formation", err: formation.ErrUnknownFormation, want: http.StatusNotFound},
		{name: "ledger conflict", err: fmt.Errorf("%w: kept changing", usecase.ErrConflict), want: http.StatusConflict},
		{name: "confirmation required", err: lineup.ErrConfirmationRequired, want: http.StatusConflict},
		{name: "partial", err: fmt.Errorf("%w: 1 of 11", usecase.ErrPartialFailure), want: http.StatusMultiStatus},
		{name: "dependency", err: fmt.Errorf("%w: circuit open", usecase.ErrDependencyUnavailable), want: http.StatusServiceUnavailable},
		{name: "unknown", err: fmt.Errorf("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapError(tt.err).HTTPStatus; got != tt.want {
				t.Fatalf("mapError(%v)=%d want=%d", tt.err, got, tt.want)
			}
		})
	}
}

func TestWriteError_HidesUnmappedErrorText(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("insert match events: pq: relation \"match_events\" does not exist"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, internalErrorMsg) || strings.Contains(body, "match_events") {
		t.Fatalf("expected generic message only, got %s", body)
	}
}
