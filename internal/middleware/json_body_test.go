package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func echoRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(JSONBody())
	router.POST("/echo", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, string(body))
	})
	return router
}

func postJSON(router http.Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestJSONBody_ValidBodyIsRestored(t *testing.T) {
	w := postJSON(echoRouter(), `{"title":"Grand"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"title":"Grand"}`, w.Body.String())
}

func TestJSONBody_EmptyBodyPasses(t *testing.T) {
	w := postJSON(echoRouter(), "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJSONBody_Classified(t *testing.T) {
	cases := map[string]string{
		`{"title":`:        "отсутствует значение",
		`{"title":"Grand`:  "Незавершенная строка",
		`{"price":-x}`:     "числовой формат",
		`{"title":"a\q"}`:  "escape-последовательность",
		`{"title":"a"} {}`: "Лишние данные",
		`{"title":,}`:      "отсутствует значение",
	}
	for body, want := range cases {
		w := postJSON(echoRouter(), body)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, body)
		assert.Contains(t, w.Body.String(), "INVALID_JSON", body)
		assert.Contains(t, w.Body.String(), want, body)
	}
}

func TestJSONBody_IgnoresOtherContentTypes(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "text/plain")
	echoRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
