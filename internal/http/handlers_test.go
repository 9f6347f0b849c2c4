package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpstudio/backend/internal/config"
	"github.com/bpstudio/backend/internal/logging"
	"github.com/bpstudio/backend/internal/monitoring"
	bpprovider "github.com/bpstudio/backend/internal/providers/blueprint"
	"github.com/bpstudio/backend/internal/service"
	"github.com/bpstudio/backend/internal/transpiler"
	"github.com/bpstudio/backend/internal/types"
	"github.com/bpstudio/backend/tests/helpers/testutil"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := transpiler.NewService(config.Default(), logging.Nop())
	registry := service.NewRegistry()
	require.NoError(t, registry.Register(bpprovider.NewProvider(svc)))

	handlers := NewHandlers(svc, registry, monitoring.NewMetrics())

	router := gin.New()
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.POST("/transpile", handlers.Transpile)
	router.POST("/diff", handlers.Diff)
	router.POST("/symbols/extract", handlers.ExtractSymbols)
	router.GET("/services", handlers.ListServices)
	router.POST("/services/execute", handlers.ExecuteService)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRootAndHealth(t *testing.T) {
	router := setupRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "online")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestTranspileEndpoint(t *testing.T) {
	router := setupRouter(t)

	w := postJSON(t, router, "/transpile", map[string]interface{}{
		"document": json.RawMessage(testutil.DoorBlueprint(t)),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result types.TranspileResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "BP_Door", result.ClassName)
	assert.Equal(t, 2, result.NodeCount)
	assert.Contains(t, result.HeaderCode, "class BP_Door : public Actor")
	assert.NotNil(t, result.Warnings)
}

func TestTranspileEndpointDocumentString(t *testing.T) {
	router := setupRouter(t)

	// Document supplied as a JSON string containing serialized JSON.
	w := postJSON(t, router, "/transpile", map[string]interface{}{
		"document": string(testutil.DoorBlueprint(t)),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result types.TranspileResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "BP_Door", result.ClassName)
}

func TestTranspileEndpointBadRequest(t *testing.T) {
	router := setupRouter(t)

	w := postJSON(t, router, "/transpile", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, router, "/transpile", map[string]interface{}{
		"document": json.RawMessage(`{"ParentClass": "Actor"}`),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ClassName")
}

func TestDiffEndpoint(t *testing.T) {
	router := setupRouter(t)

	w := postJSON(t, router, "/diff", map[string]interface{}{
		"document":       json.RawMessage(testutil.DoorBlueprint(t)),
		"existingSource": "bool bIsOpen = false;\nvoid BeginPlay();\n",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result types.DiffResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, types.ConflictNone, result.OverallConflict)
	assert.Empty(t, result.Changes)
}

func TestDiffEndpointRequiresSource(t *testing.T) {
	router := setupRouter(t)

	w := postJSON(t, router, "/diff", map[string]interface{}{
		"document": json.RawMessage(testutil.DoorBlueprint(t)),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExtractSymbolsEndpoint(t *testing.T) {
	router := setupRouter(t)

	w := postJSON(t, router, "/symbols/extract", map[string]interface{}{
		"source": "float Health = 50.0f;\n",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Health"`)
}

func TestListServicesEndpoint(t *testing.T) {
	router := setupRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/services", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"blueprint"`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/services?category=system", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"id":"blueprint"`)
}

func TestExecuteServiceEndpoint(t *testing.T) {
	router := setupRouter(t)

	w := postJSON(t, router, "/services/execute", map[string]interface{}{
		"tool_id": "blueprint.symbols",
		"params":  map[string]interface{}{"source": "float Health;\n"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestExecuteServiceBadToolID(t *testing.T) {
	router := setupRouter(t)

	w := postJSON(t, router, "/services/execute", map[string]interface{}{
		"tool_id": "Not A Tool!",
		"params":  map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocumentBytes(t *testing.T) {
	obj, err := documentBytes(json.RawMessage(`{"a": 1}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1}`, string(obj))

	str, err := documentBytes(json.RawMessage(`"{\"a\": 1}"`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1}`, string(str))

	_, err = documentBytes(json.RawMessage(``))
	assert.Error(t, err)

	_, err = documentBytes(json.RawMessage(`"unterminated`))
	assert.Error(t, err)
}
