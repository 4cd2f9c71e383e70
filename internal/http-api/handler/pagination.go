package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pagination reads ?page=1&page_size=20. Bad values fall back to the
// defaults; page_size is capped at 100.
func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	} else if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
