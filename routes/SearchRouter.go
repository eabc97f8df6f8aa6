package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/telugujayaprakash/myprofileDashboard/controllers"
)

func SearchRouter(incomingRoutes *gin.Engine, search *controllers.SearchController) {
	incomingRoutes.GET("/api/search/users", search.SearchUsers)
	incomingRoutes.GET("/api/search/posts", search.SearchPosts)
}
