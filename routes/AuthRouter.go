package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/telugujayaprakash/myprofileDashboard/controllers"
)

func AuthRouter(incomingRoutes *gin.Engine, auth *controllers.AuthController) {
	incomingRoutes.POST("/api/auth/register", auth.Register)
	incomingRoutes.POST("/api/auth/login", auth.Login)
	incomingRoutes.POST("/api/auth/verify-otp", auth.VerifyOTP)
}
