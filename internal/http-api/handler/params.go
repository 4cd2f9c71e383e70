package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// pathID parses an integer path parameter, responding 400 when it is not
// a number.
func pathID(c *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + label})
		return 0, false
	}
	return id, true
}
