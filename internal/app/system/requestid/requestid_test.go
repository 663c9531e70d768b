package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/wardshift/internal/app/system/requestid"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func serve(t *testing.T, incoming string) (seen, echoed string) {
	t.Helper()
	h := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if incoming != "" {
		req.Header.Set(requestid.Header, incoming)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return seen, rec.Header().Get(requestid.Header)
}

func TestMiddleware_MintsID(t *testing.T) {
	seen, echoed := serve(t, "")
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, echoed)
}

func TestMiddleware_ReusesValidIncomingID(t *testing.T) {
	in := uuid.NewString()
	seen, echoed := serve(t, in)
	assert.Equal(t, in, seen)
	assert.Equal(t, in, echoed)
}

func TestMiddleware_ReplacesMalformedID(t *testing.T) {
	seen, _ := serve(t, "<script>")
	assert.NotEqual(t, "<script>", seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
}

func TestLogger_AddsField(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	var ctx context.Context
	h := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx = r.Context()
		requestid.Logger(ctx, base).Info("hello")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, requestid.FromContext(ctx), logs.All()[0].ContextMap()["request_id"])
}

func TestFromContext_Empty(t *testing.T) {
	assert.Equal(t, "", requestid.FromContext(context.Background()))
}
