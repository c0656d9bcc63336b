package hotel

import (
	"bytes"
	"context"
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

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Detail string          `json:"detail"`
	Code   string          `json:"code"`
}

func setupRouter(t *testing.T) (*gin.Engine, *repository.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open(fmt.Sprintf("file:hotel_%s?mode=memory&cache=shared", name), database.Silent())
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	m := repository.NewManager(db)
	router := gin.New()
	NewHandler(NewService(m)).RegisterRoutes(&router.RouterGroup, &router.RouterGroup)
	return router, m
}

func performRequest(router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestCreateAndGetHotel(t *testing.T) {
	router, _ := setupRouter(t)

	w, env := performRequest(router, http.MethodPost, "/hotels", gin.H{"title": " Grand ", "location": "Sochi"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "OK", env.Status)

	var created domain.Hotel
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Grand", created.Title)

	w, env = performRequest(router, http.MethodGet, fmt.Sprintf("/hotels/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got domain.Hotel
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, created, got)
}

func TestCreateHotel_Validation(t *testing.T) {
	router, _ := setupRouter(t)

	w, env := performRequest(router, http.MethodPost, "/hotels", gin.H{"title": "   ", "location": "Sochi"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Code)
	assert.Contains(t, env.Detail, "title")
}

func TestCreateHotel_Duplicate(t *testing.T) {
	router, _ := setupRouter(t)

	w, _ := performRequest(router, http.MethodPost, "/hotels", gin.H{"title": "Grand", "location": "Sochi"})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := performRequest(router, http.MethodPost, "/hotels", gin.H{"title": "grand", "location": "SOCHI"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "HOTEL_EXISTS", env.Code)
}

func TestGetHotel_NotFound(t *testing.T) {
	router, _ := setupRouter(t)

	w, env := performRequest(router, http.MethodGet, "/hotels/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "HOTEL_NOT_FOUND", env.Code)
}

func TestListHotels_Pagination(t *testing.T) {
	router, m := setupRouter(t)
	ctx := context.Background()
	for i := 1; i <= 7; i++ {
		require.NoError(t, m.Hotels.Create(ctx, &domain.Hotel{Title: fmt.Sprintf("Hotel %d", i), Location: "Sochi"}))
	}

	w, env := performRequest(router, http.MethodGet, "/hotels", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page []domain.Hotel
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page, 5)

	w, env = performRequest(router, http.MethodGet, "/hotels?page=2&per_page=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page, 2)
	assert.Equal(t, "Hotel 6", page[0].Title)

	w, _ = performRequest(router, http.MethodGet, "/hotels?per_page=30", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = performRequest(router, http.MethodGet, "/hotels?page=0", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListHotels_DateRange(t *testing.T) {
	router, m := setupRouter(t)
	ctx := context.Background()

	full := &domain.Hotel{Title: "Full", Location: "Sochi"}
	free := &domain.Hotel{Title: "Free", Location: "Sochi"}
	require.NoError(t, m.Hotels.Create(ctx, full))
	require.NoError(t, m.Hotels.Create(ctx, free))

	fullRoom := &domain.Room{HotelID: full.ID, Title: "Single", Price: 100, Quantity: 1}
	freeRoom := &domain.Room{HotelID: free.ID, Title: "Single", Price: 100, Quantity: 1}
	require.NoError(t, m.Rooms.Create(ctx, fullRoom))
	require.NoError(t, m.Rooms.Create(ctx, freeRoom))

	user := &domain.User{Email: "guest@example.com", PasswordHash: "x"}
	require.NoError(t, m.Users.Create(ctx, user))
	require.NoError(t, m.Bookings.Create(ctx, &domain.Booking{
		UserID: user.ID, RoomID: fullRoom.ID, Price: 100,
		DateFrom: domain.NewDate(2030, 1, 1), DateTo: domain.NewDate(2030, 1, 10),
	}))

	w, env := performRequest(router, http.MethodGet, "/hotels?date_from=2030-01-03&date_to=2030-01-05", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var hotels []domain.Hotel
	require.NoError(t, json.Unmarshal(env.Data, &hotels))
	require.Len(t, hotels, 1)
	assert.Equal(t, "Free", hotels[0].Title)

	w, env = performRequest(router, http.MethodGet, "/hotels?date_from=2030-01-05&date_to=2030-01-03", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "INVALID_DATE_RANGE", env.Code)
}

func TestUpdateAndPatchHotel(t *testing.T) {
	router, m := setupRouter(t)
	ctx := context.Background()
	h := &domain.Hotel{Title: "Old", Location: "Sochi"}
	require.NoError(t, m.Hotels.Create(ctx, h))
	path := fmt.Sprintf("/hotels/%d", h.ID)

	w, _ := performRequest(router, http.MethodPut, path, gin.H{"title": "New"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = performRequest(router, http.MethodPut, path, gin.H{"title": "New", "location": "Kazan"})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = performRequest(router, http.MethodPatch, path, gin.H{"title": "Newer"})
	require.Equal(t, http.StatusOK, w.Code)

	w, env := performRequest(router, http.MethodPatch, path, gin.H{"location": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Code)

	got, err := m.Hotels.GetByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, "Newer", got.Title)
	assert.Equal(t, "Kazan", got.Location)

	w, env = performRequest(router, http.MethodPut, "/hotels/999", gin.H{"title": "X", "location": "Y"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "HOTEL_NOT_FOUND", env.Code)
}

func TestDeleteHotel(t *testing.T) {
	router, m := setupRouter(t)
	ctx := context.Background()

	withRooms := &domain.Hotel{Title: "Busy", Location: "Sochi"}
	empty := &domain.Hotel{Title: "Empty", Location: "Sochi"}
	require.NoError(t, m.Hotels.Create(ctx, withRooms))
	require.NoError(t, m.Hotels.Create(ctx, empty))
	require.NoError(t, m.Rooms.Create(ctx, &domain.Room{HotelID: withRooms.ID, Title: "Suite", Price: 10, Quantity: 1}))

	w, env := performRequest(router, http.MethodDelete, fmt.Sprintf("/hotels/%d", withRooms.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "HOTEL_HAS_ROOMS", env.Code)

	w, _ = performRequest(router, http.MethodDelete, fmt.Sprintf("/hotels/%d", empty.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = performRequest(router, http.MethodDelete, fmt.Sprintf("/hotels/%d", empty.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "HOTEL_NOT_FOUND", env.Code)
}
