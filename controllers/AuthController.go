package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/telugujayaprakash/myprofileDashboard/apperr"
	"github.com/telugujayaprakash/myprofileDashboard/services"
)

var validate = validator.New()

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type registerRequest struct {
	Username    string `json:"username" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phonenumber"`
}

func (ctl *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and email are required"})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and email are required"})
		return
	}

	if err := ctl.auth.Register(c.Request.Context(), req.Username, req.Email, req.PhoneNumber); err != nil {
		apperr.ToResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OTP sent to your email. Please verify to complete registration.",
		"email":   req.Email,
	})
}

type loginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (ctl *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	if err := ctl.auth.Login(c.Request.Context(), req.Email); err != nil {
		apperr.ToResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OTP sent to your email. Please verify to login.",
		"email":   req.Email,
	})
}

type verifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

func (ctl *AuthController) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and OTP are required"})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and OTP are required"})
		return
	}

	result, err := ctl.auth.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		apperr.ToResponse(c, err)
		return
	}

	message := "Login successful!"
	status := http.StatusOK
	if result.Created {
		message = "Account created successfully!"
		status = http.StatusCreated
	}

	c.JSON(status, gin.H{
		"message": message,
		"token":   result.Token,
		"user": gin.H{
			"userid":   result.User.UserID,
			"username": result.User.Username,
			"email":    result.User.Email,
		},
		"redirectUrl": "/" + result.User.Username,
	})
}
