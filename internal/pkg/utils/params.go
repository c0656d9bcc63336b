package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"hotelbooking/internal/pkg/apperr"
	"hotelbooking/internal/pkg/response"
)

// PathID parses a positive integer path parameter. On failure the 422 is
// already written and ok is false.
func PathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, apperr.ErrValidation.WithDetail("Поле '"+name+"' должно быть положительным целым числом"))
		return 0, false
	}
	return id, true
}

// UniqueIDs drops repeated ids keeping first-seen order. nil stays nil.
func UniqueIDs(ids []int64) []int64 {
	if ids == nil {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
