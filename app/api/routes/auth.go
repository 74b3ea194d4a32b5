package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/taskmanager/pkg/constant"
	"github.com/taskmanager/pkg/domains/auth"
	"github.com/taskmanager/pkg/dtos"
	"github.com/taskmanager/pkg/state"
)

func AuthRoutes(r *gin.RouterGroup, s auth.Service, checkAuth gin.HandlerFunc) {
	r.POST("/Registration", register(s))
	r.POST("/Login", login(s))
	r.GET("/EmailVerify/:email", emailVerify(s))
	r.GET("/CodeVerify/:email/:code", codeVerify(s))
	r.POST("/ResetPassword", resetPassword(s))

	authGroup := r.Group("", checkAuth)
	{
		authGroup.GET("/ProfileDetails", profileDetails(s))
		authGroup.PUT("/ProfileUpdate", profileUpdate(s))
	}
}

// @Summary Register a user
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dtos.DTOForUserCreate true "registration"
// @Success 200 {object} dtos.Response
// @Failure 400 {object} dtos.Response
// @Router /Registration [post]
func register(s auth.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req dtos.DTOForUserCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			bindFail(c, err)
			return
		}

		if err := s.Register(c.Request.Context(), req); err != nil {
			fail(c, err)
			return
		}

		success(c, constant.REGISTRATION, nil)
	}
}

// @Summary Log in and receive a token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dtos.DTOForUserLogin true "credentials"
// @Success 200 {object} dtos.Response
// @Failure 400 {object} dtos.Response
// @Router /Login [post]
func login(s auth.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req dtos.DTOForUserLogin
		if err := c.ShouldBindJSON(&req); err != nil {
			bindFail(c, err)
			return
		}

		token, err := s.Login(c.Request.Context(), req)
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(200, dtos.Response{
			Status:  constant.STATUS_SUCCESS,
			Message: constant.LOGIN_SUCCESS,
			Token:   token,
		})
	}
}

// @Summary Read the caller's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dtos.Response{Data=entities.User}
// @Failure 401 {object} dtos.Response
// @Router /ProfileDetails [get]
func profileDetails(s auth.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		user, err := s.ProfileDetails(c.Request.Context(), state.CurrentUser(c).ID)
		if err != nil {
			fail(c, err)
			return
		}

		success(c, constant.PROFILE_DETAILS, user)
	}
}

// @Summary Update the caller's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dtos.DTOForProfileUpdate true "fields to change"
// @Success 200 {object} dtos.Response{Data=entities.User}
// @Failure 400 {object} dtos.Response
// @Router /ProfileUpdate [put]
func profileUpdate(s auth.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req dtos.DTOForProfileUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			bindFail(c, err)
			return
		}

		user, err := s.ProfileUpdate(c.Request.Context(), state.CurrentUser(c).ID, req)
		if err != nil {
			fail(c, err)
			return
		}

		success(c, constant.PROFILE_UPDATED, user)
	}
}

// @Summary Email a password recovery code
// @Tags recovery
// @Produce json
// @Param email path string true "account email"
// @Success 200 {object} dtos.Response
// @Failure 400 {object} dtos.Response
// @Router /EmailVerify/{email} [get]
func emailVerify(s auth.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req dtos.EmailParamDTO
		if err := c.ShouldBindUri(&req); err != nil {
			bindFail(c, err)
			return
		}

		if err := s.EmailVerify(c.Request.Context(), req.Email); err != nil {
			fail(c, err)
			return
		}

		success(c, constant.CODE_SENT, nil)
	}
}

// @Summary Check a recovery code without consuming it
// @Tags recovery
// @Produce json
// @Param email path string true "account email"
// @Param code path string true "6-digit code"
// @Success 200 {object} dtos.Response
// @Failure 400 {object} dtos.Response
// @Router /CodeVerify/{email}/{code} [get]
func codeVerify(s auth.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req dtos.CodeParamDTO
		if err := c.ShouldBindUri(&req); err != nil {
			bindFail(c, err)
			return
		}

		if err := s.CodeVerify(c.Request.Context(), req.Email, req.Code); err != nil {
			fail(c, err)
			return
		}

		success(c, constant.CODE_VERIFIED, nil)
	}
}

// @Summary Set a new password with a recovery code
// @Tags recovery
// @Accept json
// @Produce json
// @Param body body dtos.ResetPasswordDTO true "email, code and new password"
// @Success 200 {object} dtos.Response
// @Failure 400 {object} dtos.Response
// @Router /ResetPassword [post]
func resetPassword(s auth.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req dtos.ResetPasswordDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			bindFail(c, err)
			return
		}

		if err := s.ResetPassword(c.Request.Context(), req); err != nil {
			fail(c, err)
			return
		}

		success(c, constant.PASSWORD_RESET, nil)
	}
}
