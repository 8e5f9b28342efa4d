package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/balance-service/internal/domain/dto"
	"github.com/guttosm/balance-service/internal/domain/model"
	"github.com/guttosm/balance-service/internal/middleware"
	"github.com/guttosm/balance-service/internal/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := RegisterValidators(); err != nil {
		panic(err)
	}
}

// serve sends a request with an optional JSON body and extra headers.
func serve(router http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the data field of a success envelope into T.
func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Data      T      `json:"data"`
		RequestID string `json:"request_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	return envelope.Data
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

// recordingAuditLogger returns an audit sink whose entries can be read after
// Stop.
func recordingAuditLogger(t *testing.T) (*middleware.AsyncLogger, func() []*model.LogEntry) {
	t.Helper()
	var entries []*model.LogEntry
	svc := new(mocks.MockLoggingService)
	svc.On("CreateLogs", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			entries = append(entries, args.Get(1).([]*model.LogEntry)...)
		}).
		Return(nil)
	sink := middleware.NewAsyncLogger(svc, middleware.AsyncLoggerConfig{FlushInterval: time.Hour})
	t.Cleanup(sink.Stop)
	return sink, func() []*model.LogEntry { return entries }
}
