package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xxayder/NFC-Check/internal/domain"
	"github.com/xxayder/NFC-Check/internal/handler"
)

// ---- GET /tags/route -------------------------------------------------------

func TestGetTagRoute_200(t *testing.T) {
	h := newHTTPHandler(handler.Services{Resolver: &mockTagResolver{
		resolve: func(_ context.Context, tagID string) (domain.Resolution, error) {
			assert.Equal(t, "abc123", tagID)
			return domain.Resolution{
				TagID:          "ABC123",
				BusinessID:     "biz-1",
				RedirectTarget: "https://shop.example/ABC123",
				DeepLink:       "nfccheck://tag/ABC123",
			}, nil
		},
	}})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tags/route?tag_id=abc123", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var body handler.RouteResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ABC123", body.TagID)
	assert.Equal(t, "biz-1", body.BusinessID)
	assert.Equal(t, "nfccheck://tag/ABC123", body.DeepLink)
}

func TestGetTagRoute_MissingTagID_400(t *testing.T) {
	h := newHTTPHandler(handler.Services{Resolver: &mockTagResolver{}})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tags/route", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTagRoute_404(t *testing.T) {
	h := newHTTPHandler(handler.Services{Resolver: &mockTagResolver{
		resolve: func(_ context.Context, _ string) (domain.Resolution, error) {
			return domain.Resolution{}, domain.ErrNotFound
		},
	}})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tags/route?tag_id=Ghost42", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	e := decodeError(t, rec.Body)
	assert.Equal(t, "not_found", e.Error.Code)
	assert.Equal(t, "invalid or inactive tag: Ghost42", e.Error.Message)
}

// ---- POST /tags ------------------------------------------------------------

func registrar(created bool, captured *domain.Registration, capturedKey *string) *mockTagRegistrar {
	return &mockTagRegistrar{
		register: func(_ context.Context, key string, reg domain.Registration) (domain.RegistrationResult, error) {
			*captured = reg
			*capturedKey = key
			return domain.RegistrationResult{
				Tag: domain.Tag{
					ID:        reg.TagID,
					Status:    domain.TagStatusActive,
					CreatedAt: time.Now().UTC(),
					UpdatedAt: time.Now().UTC(),
				},
				Created: created,
			}, nil
		},
	}
}

func TestRegisterTag_201Created(t *testing.T) {
	var reg domain.Registration
	var key string
	h := newHTTPHandler(handler.Services{Registrar: registrar(true, &reg, &key)})

	body := jsonBody(t, map[string]any{
		"admin_key":       "s3cret",
		"tag_id":          "ABC123",
		"business_id":     "biz-1",
		"status":          "inactive",
		"redirect_target": "https://shop.example/{ROWID}",
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tags", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "s3cret", key)
	assert.Equal(t, "ABC123", reg.TagID)
	assert.Equal(t, domain.TagStatusInactive, reg.Status)
	assert.Equal(t, "https://shop.example/{ROWID}", reg.RedirectTarget)

	var resp handler.RegisterTagResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Created)
	assert.Equal(t, "ABC123", resp.Tag.TagID)
}

func TestRegisterTag_200Updated(t *testing.T) {
	var reg domain.Registration
	var key string
	h := newHTTPHandler(handler.Services{Registrar: registrar(false, &reg, &key)})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tags", jsonBody(t, map[string]any{"admin_key": "k", "tag_id": "A"})))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterTag_InvalidJSON_400(t *testing.T) {
	h := newHTTPHandler(handler.Services{Registrar: &mockTagRegistrar{
		register: func(_ context.Context, _ string, _ domain.Registration) (domain.RegistrationResult, error) {
			t.Fatal("service must not be called with an unparsable body")
			return domain.RegistrationResult{}, nil
		},
	}})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tags", strings.NewReader("{not json")))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decodeError(t, rec.Body).Error.Code)
}

func TestRegisterTag_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"validation", fmtValidation("tag_id is required"), http.StatusBadRequest, "validation_error"},
		{"store", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHTTPHandler(handler.Services{Registrar: &mockTagRegistrar{
				register: func(_ context.Context, _ string, _ domain.Registration) (domain.RegistrationResult, error) {
					return domain.RegistrationResult{}, tt.err
				},
			}})

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tags", jsonBody(t, map[string]any{"admin_key": "x"})))

			require.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantErr, decodeError(t, rec.Body).Error.Code)
		})
	}
}

func TestRegisterTag_ValidationMessageUnwrapped(t *testing.T) {
	h := newHTTPHandler(handler.Services{Registrar: &mockTagRegistrar{
		register: func(_ context.Context, _ string, _ domain.Registration) (domain.RegistrationResult, error) {
			return domain.RegistrationResult{}, fmtValidation("tag_id is required")
		},
	}})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tags", jsonBody(t, map[string]any{})))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "tag_id is required", decodeError(t, rec.Body).Error.Message)
}

func TestRegisterTag_AdminMiddlewareApplied(t *testing.T) {
	blocked := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}
	h := handler.NewServer(handler.Services{Registrar: &mockTagRegistrar{}},
		handler.Options{AdminMiddleware: []func(http.Handler) http.Handler{blocked}}, nil).Routes()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tags", jsonBody(t, map[string]any{})))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func fmtValidation(msg string) error {
	return fmt.Errorf("service.RegistrationService.Register: %w: %s", domain.ErrValidation, msg)
}
