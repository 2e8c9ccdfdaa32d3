package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemHandler_Ping(t *testing.T) {
	router := gin.New()
	h := NewSystemHandler()
	router.GET("/system/ping", h.Ping)

	req := httptest.NewRequest("GET", "/system/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "pong", body["message"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	router := gin.New()
	h := NewSystemHandler()
	router.GET("/system/info", h.GetSystemInfo)

	req := httptest.NewRequest("GET", "/system/info", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var info SystemInfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "PriceSync Backend API", info.Name)
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Uptime)
}
