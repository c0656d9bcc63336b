package facility

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/repository"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open(fmt.Sprintf("file:facility_%s?mode=memory&cache=shared", name), database.Silent())
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	router := gin.New()
	NewHandler(NewService(repository.NewManager(db))).RegisterRoutes(&router.RouterGroup, &router.RouterGroup)
	return router
}

func post(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/facilities", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestFacilities_CreateAndList(t *testing.T) {
	router := setupRouter(t)

	w := post(router, `{"title":"  Wi-Fi "}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = post(router, `{"title":"Pool"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/facilities", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []domain.Facility `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, "Wi-Fi", body.Data[0].Title)
}

func TestFacilities_BlankTitle(t *testing.T) {
	router := setupRouter(t)

	for _, body := range []string{`{"title":"   "}`, `{}`} {
		w := post(router, body)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, body)
		assert.Contains(t, w.Body.String(), "FACILITY_TITLE_EMPTY", body)
	}
}

func TestFacilities_Duplicate(t *testing.T) {
	router := setupRouter(t)

	require.Equal(t, http.StatusCreated, post(router, `{"title":"Spa"}`).Code)

	w := post(router, `{"title":"SPA"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "FACILITY_EXISTS")
}
