package bootstrap

import (
	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/portfolio/internal/logutils"
)

// SetGinMode picks gin's mode from APP_ENV and sends gin's own output to the
// service logger's writer.
func SetGinMode(env string) {
	switch env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}
	gin.DefaultWriter = logutils.Log.Out
	gin.DefaultErrorWriter = logutils.Log.Out
}
