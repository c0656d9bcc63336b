package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotelbooking/internal/pkg/apperr"
	"hotelbooking/internal/pkg/response"
)

// JSONBody rejects POST/PUT/PATCH requests whose application/json body does not parse.
func JSONBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}
		ct := strings.ToLower(c.GetHeader("Content-Type"))
		if !strings.HasPrefix(ct, "application/json") || c.Request.Body == nil {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		_ = c.Request.Body.Close()
		if err != nil {
			response.Abort(c, apperr.ErrInvalidJSON)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		if len(bytes.TrimSpace(body)) == 0 {
			c.Next()
			return
		}
		if msg := classifyJSON(body); msg != "" {
			response.Abort(c, apperr.ErrInvalidJSON.WithDetail(msg))
			return
		}
		c.Next()
	}
}

// classifyJSON returns "" for a single valid JSON value, otherwise a user-facing reason.
func classifyJSON(body []byte) string {
	dec := json.NewDecoder(bytes.NewReader(body))
	var v any
	err := dec.Decode(&v)
	if err == nil {
		if _, err := dec.Token(); err != io.EOF {
			return "Лишние данные в JSON!"
		}
		return ""
	}

	if errors.Is(err, io.ErrUnexpectedEOF) {
		if insideString(body) {
			return "Незавершенная строка в JSON данных!"
		}
		return "Неверный формат JSON данных: отсутствует значение!"
	}

	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		msg := syn.Error()
		switch {
		case strings.Contains(msg, "in string escape code"):
			return "Неверная escape-последовательность в JSON данных!"
		case strings.Contains(msg, "in numeric literal"), strings.Contains(msg, "after decimal point"), strings.Contains(msg, "in exponent"):
			return "Неверный числовой формат в JSON данных!"
		case strings.Contains(msg, "in string literal"):
			return "Незавершенная строка в JSON данных!"
		case strings.Contains(msg, "looking for beginning of value"):
			return "Неверный формат JSON данных: отсутствует значение!"
		}
	}
	return apperr.ErrInvalidJSON.Detail
}

func insideString(body []byte) bool {
	in, escaped := false, false
	for _, b := range body {
		switch {
		case escaped:
			escaped = false
		case b == '\\' && in:
			escaped = true
		case b == '"':
			in = !in
		}
	}
	return in
}
