package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/telugujayaprakash/myprofileDashboard/apperr"
	"github.com/telugujayaprakash/myprofileDashboard/middlewares"
	"github.com/telugujayaprakash/myprofileDashboard/models"
	"github.com/telugujayaprakash/myprofileDashboard/services"
)

const commentPreviewLen = 3

type PostController struct {
	posts        *services.PostService
	interactions *services.InteractionService
	frontendURL  string
}

func NewPostController(posts *services.PostService, interactions *services.InteractionService, frontendURL string) *PostController {
	return &PostController{posts: posts, interactions: interactions, frontendURL: frontendURL}
}

// postSummary is the listing shape: full reaction state but only a short
// comment preview plus the total count.
func postSummary(post models.Post) gin.H {
	return gin.H{
		"_id":           post.ID.Hex(),
		"userid":        post.UserID,
		"username":      post.Username,
		"textmsg":       post.TextMsg,
		"likes":         post.Likes,
		"shares":        post.Shares,
		"comments":      post.RecentComments(commentPreviewLen),
		"commentsCount": len(post.Comments),
		"createdAt":     post.CreatedAt,
		"updatedAt":     post.UpdatedAt,
	}
}

func postSummaries(posts []models.Post) []gin.H {
	out := make([]gin.H, 0, len(posts))
	for _, post := range posts {
		out = append(out, postSummary(post))
	}
	return out
}

type createPostRequest struct {
	TextMsg string `json:"textmsg" validate:"required"`
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Post content is required"})
		return
	}

	post, err := ctl.posts.Create(c.Request.Context(), middlewares.UserID(c), req.TextMsg)
	if err != nil {
		apperr.ToResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully",
		"post":    post,
	})
}

func (ctl *PostController) GetFeed(c *gin.Context) {
	posts, err := ctl.posts.Feed(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		apperr.ToResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Feed fetched successfully",
		"posts":   postSummaries(posts),
	})
}

// GetUserPosts is the public listing behind GET /:username/posts.
func (ctl *PostController) GetUserPosts(c *gin.Context) {
	user, posts, err := ctl.posts.UserPosts(c.Request.Context(), c.Param("username"))
	if err != nil {
		apperr.ToResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Posts fetched successfully",
		"user": gin.H{
			"userid":   user.UserID,
			"username": user.Username,
		},
		"posts": postSummaries(posts),
	})
}

func (ctl *PostController) GetPostDetails(c *gin.Context) {
	post, err := ctl.posts.Details(c.Request.Context(), c.Param("postId"))
	if err != nil {
		apperr.ToResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Post fetched successfully",
		"post":    post,
	})
}

func (ctl *PostController) ToggleLike(c *gin.Context) {
	result, err := ctl.interactions.ToggleLike(c.Request.Context(), c.Param("postId"), middlewares.UserID(c))
	if err != nil {
		apperr.ToResponse(c, err)
		return
	}

	message := "Post unliked"
	if result.Liked {
		message = "Post liked"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"liked":   result.Liked,
		"likes":   result.Likes,
	})
}

func (ctl *PostController) SharePost(c *gin.Context) {
	postID := c.Param("postId")
	shares, err := ctl.interactions.ToggleShare(c.Request.Context(), postID, middlewares.UserID(c))
	if err != nil {
		apperr.ToResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Post shared successfully",
		"shares":        shares,
		"shareableLink": ctl.frontendURL + "/post/" + postID,
	})
}

type commentRequest struct {
	Comment string `json:"comment" validate:"required"`
}

func (ctl *PostController) AddComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Comment is required"})
		return
	}

	result, err := ctl.interactions.AddComment(c.Request.Context(), c.Param("postId"), middlewares.UserID(c), req.Comment)
	if err != nil {
		apperr.ToResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Comment added successfully",
		"comment":       result.Comment,
		"commentsCount": result.CommentsCount,
	})
}

func (ctl *PostController) DeletePost(c *gin.Context) {
	if err := ctl.posts.Delete(c.Request.Context(), c.Param("postId"), middlewares.UserID(c)); err != nil {
		apperr.ToResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
