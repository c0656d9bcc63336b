package response

import (
	"github.com/gin-gonic/gin"

	"hotelbooking/internal/pkg/apperr"
)

const statusOK = "OK"

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"status": statusOK,
		"data":   data,
	})
}

// OK writes the envelope without a data field.
func OK(c *gin.Context, statusCode int) {
	c.JSON(statusCode, gin.H{"status": statusOK})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"detail": message,
		"code":   code,
	})
}

// Abort writes the error envelope and stops the middleware chain.
func Abort(c *gin.Context, err error) {
	e := toAppError(c, err)
	c.AbortWithStatusJSON(e.Status, gin.H{
		"detail": e.Detail,
		"code":   e.Code,
	})
}

// Fail maps err onto the error envelope; unknown errors become 500.
func Fail(c *gin.Context, err error) {
	e := toAppError(c, err)
	Error(c, e.Status, e.Code, e.Detail)
}

func toAppError(c *gin.Context, err error) *apperr.Error {
	if e := apperr.From(err); e != nil {
		return e
	}
	// request logger picks this up
	_ = c.Error(err)
	return apperr.ErrInternal
}
