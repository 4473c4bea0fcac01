package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, write func(c *gin.Context)) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	write(c)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestSuccessEnvelopes(t *testing.T) {
	w, body := record(t, func(c *gin.Context) {
		Success(c, map[string]string{"hello": "world"})
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)
	assert.Nil(t, body.Error)

	w, body = record(t, func(c *gin.Context) {
		Created(c, map[string]string{"id": "42"})
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, body.Success)
}

func TestPartialAndFailureEnvelopes(t *testing.T) {
	w, body := record(t, func(c *gin.Context) {
		MultiStatus(c, map[string]string{"outcome": "partial"})
	})
	assert.Equal(t, http.StatusMultiStatus, w.Code)
	assert.False(t, body.Success)
	assert.NotNil(t, body.Data, "partial results must keep the payload")

	w, body = record(t, func(c *gin.Context) {
		Failure(c, http.StatusBadRequest, map[string]string{"outcome": "failed"})
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, body.Success)
	assert.NotNil(t, body.Data, "failed results must keep the payload")
}

func TestErrorEnvelopes(t *testing.T) {
	tests := []struct {
		name    string
		write   func(c *gin.Context)
		status  int
		code    string
		message string
		details string
	}{
		{
			name:    "bad request",
			write:   func(c *gin.Context) { BadRequest(c, "invalid seat number") },
			status:  http.StatusBadRequest,
			code:    "BAD_REQUEST",
			message: "invalid seat number",
		},
		{
			name:    "not found",
			write:   func(c *gin.Context) { NotFound(c, "show not found") },
			status:  http.StatusNotFound,
			code:    "NOT_FOUND",
			message: "show not found",
		},
		{
			name:    "conflict",
			write:   func(c *gin.Context) { Conflict(c, "seat already booked") },
			status:  http.StatusConflict,
			code:    "CONFLICT",
			message: "seat already booked",
		},
		{
			name:    "internal error",
			write:   func(c *gin.Context) { InternalError(c, assert.AnError) },
			status:  http.StatusInternalServerError,
			code:    "INTERNAL_ERROR",
			message: "Internal Server Error",
			details: assert.AnError.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := record(t, tt.write)
			assert.Equal(t, tt.status, w.Code)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, tt.message, body.Error.Message)
			assert.Equal(t, tt.details, body.Error.Details)
		})
	}
}
