package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/telugujayaprakash/myprofileDashboard/apperr"
	"github.com/telugujayaprakash/myprofileDashboard/services"
)

type SearchController struct {
	search *services.SearchService
}

func NewSearchController(search *services.SearchService) *SearchController {
	return &SearchController{search: search}
}

func (ctl *SearchController) SearchUsers(c *gin.Context) {
	results, err := ctl.search.Users(c.Request.Context(), c.Query("q"))
	if err != nil {
		apperr.ToResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Users fetched successfully",
		"users":   results,
	})
}

func (ctl *SearchController) SearchPosts(c *gin.Context) {
	posts, err := ctl.search.Posts(c.Request.Context(), c.Query("q"))
	if err != nil {
		apperr.ToResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Posts fetched successfully",
		"posts":   postSummaries(posts),
	})
}
