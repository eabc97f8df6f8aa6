package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/telugujayaprakash/myprofileDashboard/apperr"
	"github.com/telugujayaprakash/myprofileDashboard/middlewares"
	"github.com/telugujayaprakash/myprofileDashboard/models"
	"github.com/telugujayaprakash/myprofileDashboard/services"
	"github.com/telugujayaprakash/myprofileDashboard/stores"
)

type ProfileController struct {
	profiles *services.ProfileService
	follows  *services.FollowService
}

func NewProfileController(profiles *services.ProfileService, follows *services.FollowService) *ProfileController {
	return &ProfileController{profiles: profiles, follows: follows}
}

// GetProfile serves the three-tier profile view: owners see account details,
// other viewers (authenticated or not) see the public card.
func (ctl *ProfileController) GetProfile(c *gin.Context) {
	username := c.Param("username")
	viewerID := middlewares.UserID(c)

	view, err := ctl.profiles.View(c.Request.Context(), username, viewerID)
	if err != nil {
		apperr.ToResponse(c, err)
		return
	}

	profileBody := gin.H{
		"followingCount": 0,
		"followersCount": 0,
	}
	if view.Profile != nil {
		profileBody = gin.H{
			"displayPicture":     view.Profile.DisplayPicture,
			"name":               view.Profile.Name,
			"profession":         view.Profile.Profession,
			"status":             view.Profile.Status,
			"relationshipStatus": view.Profile.RelationshipStatus,
			"socialMediaLinks":   view.Profile.SocialMediaLinks,
			"followingCount":     len(view.Profile.Following),
			"followersCount":     len(view.Profile.Followers),
			"isProfileComplete":  view.Profile.IsProfileComplete,
		}
		if view.Profile.DateOfBirth != nil {
			profileBody["dateOfBirth"] = view.Profile.DateOfBirth
		}
	}

	userBody := gin.H{
		"userid":   view.User.UserID,
		"username": view.User.Username,
	}
	if view.IsOwn {
		userBody["email"] = view.User.Email
		userBody["phonenumber"] = view.User.PhoneNumber
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Profile fetched successfully",
		"user":        userBody,
		"profile":     profileBody,
		"posts":       postSummaries(view.Posts),
		"isOwn":       view.IsOwn,
		"isFollowing": view.IsFollowing,
	})
}

type accountUpdateRequest struct {
	Username    *string `json:"username"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phonenumber"`
}

func (ctl *ProfileController) UpdateAccount(c *gin.Context) {
	var req accountUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email address"})
		return
	}

	user, err := ctl.profiles.UpdateAccount(c.Request.Context(), middlewares.UserID(c), stores.AccountUpdate{
		Username:    req.Username,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		apperr.ToResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user": gin.H{
			"userid":      user.UserID,
			"username":    user.Username,
			"email":       user.Email,
			"phonenumber": user.PhoneNumber,
		},
	})
}

type profileDataRequest struct {
	DisplayPicture     *string             `json:"displayPicture"`
	Name               *string             `json:"name"`
	Profession         *string             `json:"profession"`
	DateOfBirth        *time.Time          `json:"dateOfBirth"`
	Status             *string             `json:"status"`
	RelationshipStatus *string             `json:"relationshipStatus"`
	SocialMediaLinks   []models.SocialLink `json:"socialMediaLinks"`
}

func (ctl *ProfileController) UpdateProfileData(c *gin.Context) {
	var req profileDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	profile, err := ctl.profiles.UpdateProfileData(c.Request.Context(), middlewares.UserID(c), services.ProfileDataInput{
		DisplayPicture:     req.DisplayPicture,
		Name:               req.Name,
		Profession:         req.Profession,
		DateOfBirth:        req.DateOfBirth,
		Status:             req.Status,
		RelationshipStatus: req.RelationshipStatus,
		SocialMediaLinks:   req.SocialMediaLinks,
	})
	if err != nil {
		apperr.ToResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile data updated successfully",
		"profile": profile,
	})
}

func (ctl *ProfileController) FollowUser(c *gin.Context) {
	counts, err := ctl.follows.Follow(c.Request.Context(), middlewares.UserID(c), c.Param("username"))
	if err != nil {
		apperr.ToResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Successfully followed user",
		"followingCount": counts.FollowingCount,
		"followersCount": counts.FollowersCount,
	})
}

func (ctl *ProfileController) UnfollowUser(c *gin.Context) {
	counts, err := ctl.follows.Unfollow(c.Request.Context(), middlewares.UserID(c), c.Param("username"))
	if err != nil {
		apperr.ToResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Successfully unfollowed user",
		"followingCount": counts.FollowingCount,
		"followersCount": counts.FollowersCount,
	})
}

// CheckFollowing answers "does the caller follow :username".
func (ctl *ProfileController) CheckFollowing(c *gin.Context) {
	isFollowing, err := ctl.follows.IsFollowing(c.Request.Context(), middlewares.UserID(c), c.Param("username"))
	if err != nil {
		apperr.ToResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Following status fetched",
		"isFollowing": isFollowing,
	})
}
