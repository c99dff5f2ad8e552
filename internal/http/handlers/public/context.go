package public

import (
	handlershared "github.com/shoplite/internal/http/handlers/shared"
	"github.com/shoplite/internal/session"

	"github.com/gin-gonic/gin"
)

func getSession(c *gin.Context) (*session.Session, bool) {
	return handlershared.GetSession(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondErrorWithData(c *gin.Context, code int, key string, data gin.H, err error) {
	handlershared.RespondErrorWithData(c, code, key, data, err)
}
