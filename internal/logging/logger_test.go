package logging

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Formats(t *testing.T) {
	var buf bytes.Buffer

	l, err := New("debug", "text", &buf)
	require.NoError(t, err)
	l.Debug("dbg", "a", 1)
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "a=1")

	buf.Reset()
	l, err = New("info", "json", &buf)
	require.NoError(t, err)
	l.Info("inf", "b", 2)
	assert.Contains(t, buf.String(), `"msg":"inf"`)
	assert.Contains(t, buf.String(), `"b":2`)
}

func TestNew_RejectsUnknownValues(t *testing.T) {
	_, err := New("loud", "text", &bytes.Buffer{})
	assert.Error(t, err)

	_, err = New("info", "xml", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, slog.Default(), FromContext(context.Background()))

	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := WithLogger(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}

func TestMiddleware_TagsRequest(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("info", "text", &buf)
	require.NoError(t, err)

	var seenID string
	h := Middleware(l, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Info("inside")
		seenID = w.Header().Get(RequestIDHeader)
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	id := rr.Header().Get(RequestIDHeader)
	_, err = uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, seenID)

	out := buf.String()
	assert.Contains(t, out, "msg=inside")
	assert.Contains(t, out, "request_id="+id)
	assert.Contains(t, out, "status=418")
	assert.Contains(t, out, "path=/")
}
