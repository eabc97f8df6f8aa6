package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/telugujayaprakash/myprofileDashboard/controllers"
)

func UserRouter(incomingRoutes *gin.Engine, profile *controllers.ProfileController, requireAuth, optionalAuth gin.HandlerFunc) {
	incomingRoutes.GET("/api/users/:username", optionalAuth, profile.GetProfile)

	incomingRoutes.PUT("/api/profile", requireAuth, profile.UpdateAccount)
	incomingRoutes.PUT("/api/profile/data", requireAuth, profile.UpdateProfileData)

	incomingRoutes.PUT("/api/users/:username/follow", requireAuth, profile.FollowUser)
	incomingRoutes.PUT("/api/users/:username/unfollow", requireAuth, profile.UnfollowUser)
	incomingRoutes.GET("/api/users/:username/following", requireAuth, profile.CheckFollowing)
}
