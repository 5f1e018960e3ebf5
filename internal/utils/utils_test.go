package utils_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MemorialTransportation/web-backend/internal/session"
	"github.com/MemorialTransportation/web-backend/internal/utils"
)

func TestSessionContext(t *testing.T) {
	_, ok := utils.GetSessionFromContext(context.Background())
	assert.False(t, ok)

	tok := session.Token{ID: 3, Username: "jdoe", Role: "driver"}
	got, ok := utils.GetSessionFromContext(utils.WithSession(context.Background(), tok))
	require.True(t, ok)
	assert.Equal(t, tok, got)
}

func TestRequestIDContext(t *testing.T) {
	assert.Empty(t, utils.GetRequestID(context.Background()))
	assert.Equal(t, "abc", utils.GetRequestID(utils.WithRequestID(context.Background(), "abc")))
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	utils.WriteError(rec, http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid username or password")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body utils.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, utils.ErrorBody{Code: "UNAUTHORIZED", Error: "Invalid username or password"}, body)
}
