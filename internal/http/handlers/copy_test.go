package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"draftflow/internal/domain"
	"draftflow/internal/http/handlers"
	"draftflow/internal/http/httpapi"
	copyprovider "draftflow/internal/providers/copy"
)

type failingEnhancer struct {
	err error
}

func (f *failingEnhancer) Enhance(context.Context, copyprovider.CopyRequest) (*copyprovider.CopyResult, error) {
	return nil, f.err
}

func newEnhanceEnv(t *testing.T, enhancer copyprovider.Enhancer) *testEnv {
	t.Helper()
	env := newTestEnv()
	env.app = handlers.NewApp(zerolog.Nop(), env.products, env.drafts, env.templates, env.jobs, enhancer)
	env.handler = httpapi.NewRouter(env.app, httpapi.RouterOptions{Logger: zerolog.Nop(), DefaultLocale: "zh"})
	if err := env.products.Upsert(context.Background(), &domain.Product{ID: "p-1", Name: "T恤"}); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return env
}

func TestCopyEnhanceProviderFailure(t *testing.T) {
	env := newEnhanceEnv(t, &failingEnhancer{
		err: fmt.Errorf("%w: deepseek http_request", domain.ErrProviderFailure),
	})

	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/copy/enhance", strings.NewReader(`{"productId":"p-1"}`)))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	var res struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Error.Code != "provider_failure" {
		t.Fatalf("error code = %q, want provider_failure", res.Error.Code)
	}
}

func TestCopyEnhanceUnexpectedError(t *testing.T) {
	env := newEnhanceEnv(t, &failingEnhancer{err: errors.New("boom")})

	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/copy/enhance", strings.NewReader(`{"productId":"p-1"}`)))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
