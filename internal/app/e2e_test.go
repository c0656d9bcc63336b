package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hotelbooking/internal/cache"
	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/middleware"
	"hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/repository"
	"hotelbooking/internal/tasks"
)

type E2ETestSuite struct {
	router *gin.Engine
	db     *repository.Manager
	queue  *tasks.MemoryQueue
	cookie *http.Cookie
}

type TestResponse struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Detail string          `json:"detail"`
	Code   string          `json:"code"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open(fmt.Sprintf("file:e2e_%s?mode=memory&cache=shared", name), database.Silent())
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, repository.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	m := repository.NewManager(db)
	queue := tasks.NewMemoryQueue(16)
	router := NewRouter(Deps{
		DB:        m,
		Tokens:    jwt.New("test_secret_key_32_characters_min", time.Hour),
		Cache:     cache.NewMemoryStore(),
		CacheTTL:  time.Minute,
		Queue:     queue,
		ImagesDir: t.TempDir(),
		Log:       zap.NewNop(),
	})

	return &E2ETestSuite{router: router, db: m, queue: queue}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder, into interface{}) TestResponse {
	t.Helper()
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "status %d body %s", w.Code, w.Body.String())
	if into != nil {
		require.NoError(t, json.Unmarshal(resp.Data, into))
	}
	return resp
}

func (s *E2ETestSuite) login(t *testing.T, email string) {
	t.Helper()
	creds := map[string]string{"email": email, "password": "Password123"}

	w := s.makeRequest(http.MethodPost, "/auth/register", creds)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.makeRequest(http.MethodPost, "/auth/login", creds)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.AccessTokenCookie {
			s.cookie = c
		}
	}
	require.NotNil(t, s.cookie)
}

// =============================================================================
// Flow 1: catalogue setup and booking until the room is full
// =============================================================================

func TestFlow1_CatalogueAndBooking(t *testing.T) {
	suite := setupTestSuite(t)

	var hotel domain.Hotel
	var room domain.Room
	var wifi domain.Facility

	t.Run("POST /hotels", func(t *testing.T) {
		w := suite.makeRequest(http.MethodPost, "/hotels", map[string]string{
			"title": "Апартаменты Brevis Rents", "location": "Сочи, ул. Орджоникидзе, д. 11/1",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		parseResponse(t, w, &hotel)
	})

	t.Run("POST /facilities", func(t *testing.T) {
		w := suite.makeRequest(http.MethodPost, "/facilities", map[string]string{"title": "Wi-Fi"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		parseResponse(t, w, &wifi)
	})

	t.Run("POST /hotels/:id/rooms", func(t *testing.T) {
		w := suite.makeRequest(http.MethodPost, fmt.Sprintf("/hotels/%d/rooms", hotel.ID), map[string]interface{}{
			"title": "Стандарт", "price": 4000, "quantity": 5, "facilities_ids": []int64{wifi.ID},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		parseResponse(t, w, &room)
		require.Len(t, room.Facilities, 1)
	})

	t.Run("POST /bookings requires auth", func(t *testing.T) {
		w := suite.makeRequest(http.MethodPost, "/bookings", map[string]interface{}{"room_id": room.ID})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "NO_ACCESS_TOKEN", parseResponse(t, w, nil).Code)
	})

	suite.login(t, "guest@example.com")

	from := domain.Today().AddDate(0, 0, 10).Format(domain.DateLayout)
	to := domain.Today().AddDate(0, 0, 12).Format(domain.DateLayout)

	t.Run("five bookings then conflict", func(t *testing.T) {
		body := map[string]interface{}{"room_id": room.ID, "date_from": from, "date_to": to}
		for i := 0; i < 5; i++ {
			w := suite.makeRequest(http.MethodPost, "/bookings", body)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

			var got map[string]interface{}
			parseResponse(t, w, &got)
			assert.Equal(t, float64(8000), got["total_cost"])
		}

		w := suite.makeRequest(http.MethodPost, "/bookings", body)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "ALL_ROOMS_BOOKED", parseResponse(t, w, nil).Code)
	})

	t.Run("GET /hotels hides the full hotel for the range", func(t *testing.T) {
		var hotels []domain.Hotel
		w := suite.makeRequest(http.MethodGet, "/hotels?date_from="+from+"&date_to="+to, nil)
		require.Equal(t, http.StatusOK, w.Code)
		parseResponse(t, w, &hotels)
		assert.Empty(t, hotels)

		w = suite.makeRequest(http.MethodGet, "/hotels", nil)
		parseResponse(t, w, &hotels)
		assert.Len(t, hotels, 1)
	})

	t.Run("GET /bookings/me", func(t *testing.T) {
		var mine []map[string]interface{}
		w := suite.makeRequest(http.MethodGet, "/bookings/me", nil)
		require.Equal(t, http.StatusOK, w.Code)
		parseResponse(t, w, &mine)
		assert.Len(t, mine, 5)
	})

	t.Run("DELETE room with bookings", func(t *testing.T) {
		w := suite.makeRequest(http.MethodDelete, fmt.Sprintf("/hotels/%d/rooms/%d", hotel.ID, room.ID), nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "ROOM_HAS_BOOKINGS", parseResponse(t, w, nil).Code)
	})
}

// =============================================================================
// Flow 2: cached reads are invalidated by writes
// =============================================================================

func TestFlow2_CacheInvalidation(t *testing.T) {
	suite := setupTestSuite(t)

	w := suite.makeRequest(http.MethodGet, "/facilities", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))

	w = suite.makeRequest(http.MethodGet, "/facilities", nil)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))

	w = suite.makeRequest(http.MethodPost, "/facilities", map[string]string{"title": "Pool"})
	require.Equal(t, http.StatusCreated, w.Code)

	var facilities []domain.Facility
	w = suite.makeRequest(http.MethodGet, "/facilities", nil)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	parseResponse(t, w, &facilities)
	assert.Len(t, facilities, 1)
}

// =============================================================================
// Flow 3: malformed JSON never reaches handlers
// =============================================================================

func TestFlow3_InvalidJSON(t *testing.T) {
	suite := setupTestSuite(t)

	req := httptest.NewRequest(http.MethodPost, "/hotels", strings.NewReader(`{"title": "A", "location": `))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := parseResponse(t, w, nil)
	assert.Equal(t, "INVALID_JSON", resp.Code)
	assert.Contains(t, resp.Detail, "отсутствует значение")
}
