package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nutrilens/backend/internal/api"
	"github.com/nutrilens/backend/internal/middleware"
	"github.com/nutrilens/backend/internal/models"
	"github.com/nutrilens/backend/internal/router"
	"github.com/nutrilens/backend/internal/service"
	"github.com/nutrilens/backend/internal/testhelpers"
)

const testSecret = "api-test-secret"

// testEnv is a router backed by an in-memory database and an authenticated user.
type testEnv struct {
	db     *gorm.DB
	auth   *service.AuthService
	router *gin.Engine
	user   *models.User
	token  string
}

type envOptions struct {
	text    service.TextModel
	image   service.ImageModel
	photos  service.PhotoStore
	drafts  service.IDraftService
	limiter *middleware.RateLimiter
}

func newTestEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLite(t)
	auth := service.NewAuthService(db, testSecret, time.Hour)
	entries := service.NewFoodEntryService(db, time.UTC)

	engine := router.SetupRouter([]string{"http://localhost:5173"},
		api.NewHealthHandler(db, nil),
		api.NewAuthHandler(auth),
		api.NewAnalysisHandler(entries, service.NewAnalysisService(opts.text, time.Second), auth, opts.limiter),
		api.NewFoodEntryHandler(entries, auth),
		api.NewUploadHandler(service.NewVisionService(opts.image), opts.drafts, opts.photos, auth),
		api.NewExerciseHandler(service.NewExerciseService(db), auth),
		api.NewNutritionRecordHandler(service.NewNutritionRecordService(db), auth),
	)

	user := testhelpers.CreateTestUser(t, db)
	token, err := auth.GenerateToken(user.ID)
	require.NoError(t, err)

	return &testEnv{db: db, auth: auth, router: engine, user: user, token: token}
}

// do sends body as JSON unless it is a string, which is sent verbatim.
func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.token)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) send(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}
