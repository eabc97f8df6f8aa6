package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/telugujayaprakash/myprofileDashboard/controllers"
)

func PostRouter(incomingRoutes *gin.Engine, post *controllers.PostController, requireAuth gin.HandlerFunc) {
	incomingRoutes.POST("/api/posts", requireAuth, post.CreatePost)
	incomingRoutes.GET("/api/posts/feed", requireAuth, post.GetFeed)
	incomingRoutes.GET("/api/posts/:postId", post.GetPostDetails)
	incomingRoutes.PUT("/api/posts/:postId/like", requireAuth, post.ToggleLike)
	incomingRoutes.PUT("/api/posts/:postId/share", requireAuth, post.SharePost)
	incomingRoutes.POST("/api/posts/:postId/comment", requireAuth, post.AddComment)
	incomingRoutes.DELETE("/api/posts/:postId", requireAuth, post.DeletePost)

	incomingRoutes.GET("/:username/posts", post.GetUserPosts)
}
