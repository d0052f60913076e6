package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mlevshin/authgate/internal/common"
	"github.com/mlevshin/authgate/internal/server/models"
)

// Stable machine-readable failure kinds. The login kind is the same for an
// unknown email and a wrong password.
const (
	kindInvalidCredentials   = "invalid_credentials"
	kindClientNotFound       = "client_not_found"
	kindRefreshTokenNotFound = "refresh_token_not_found"
	kindUserNotFound         = "user_not_found"
	kindValidationError      = "validation_error"
	kindEmailAlreadyTaken    = "email_already_taken"
	kindInternalError        = "internal_error"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type clientLoginRequest struct {
	ClientID     string `json:"client_id" binding:"required"`
	ClientSecret string `json:"client_secret" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenPairResponse struct {
	AccessToken           string    `json:"access_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshToken          string    `json:"refresh_token"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
}

type clientTokenResponse struct {
	AccessToken          string    `json:"access_token"`
	AccessTokenExpiresAt time.Time `json:"access_token_expires_at"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func newTokenPairResponse(pair *models.TokenPair) tokenPairResponse {
	return tokenPairResponse{
		AccessToken:           pair.AccessToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshToken:          pair.RefreshToken,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
	}
}

func fail(c *gin.Context, status int, kind string) {
	c.AbortWithStatusJSON(status, gin.H{"error": kind})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, kindValidationError)
		return
	}

	pair, err := s.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			fail(c, http.StatusBadRequest, kindInvalidCredentials)
			return
		}
		s.logger.Error(c.Request.Context(), "login failed", "err", err.Error())
		fail(c, http.StatusInternalServerError, kindInternalError)
		return
	}

	s.logger.Info(c.Request.Context(), "login ok")
	c.JSON(http.StatusOK, newTokenPairResponse(pair))
}

func (s *Server) loginByClient(c *gin.Context) {
	var req clientLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, kindValidationError)
		return
	}

	token, err := s.auth.LoginByClient(c.Request.Context(), req.ClientID, req.ClientSecret)
	if err != nil {
		if errors.Is(err, common.ErrClientNotFound) {
			fail(c, http.StatusNotFound, kindClientNotFound)
			return
		}
		s.logger.Error(c.Request.Context(), "client login failed", "err", err.Error())
		fail(c, http.StatusInternalServerError, kindInternalError)
		return
	}

	s.logger.Info(c.Request.Context(), "client login ok", "client_id", req.ClientID)
	c.JSON(http.StatusOK, clientTokenResponse{
		AccessToken:          token.AccessToken,
		AccessTokenExpiresAt: token.AccessTokenExpiresAt,
	})
}

func (s *Server) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, kindValidationError)
		return
	}

	pair, err := s.auth.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRefreshTokenNotFound):
			fail(c, http.StatusNotFound, kindRefreshTokenNotFound)
		case errors.Is(err, common.ErrUserNotFound):
			fail(c, http.StatusNotFound, kindUserNotFound)
		default:
			s.logger.Error(c.Request.Context(), "refresh failed", "err", err.Error())
			fail(c, http.StatusInternalServerError, kindInternalError)
		}
		return
	}

	c.JSON(http.StatusOK, newTokenPairResponse(pair))
}

func (s *Server) revoke(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, kindValidationError)
		return
	}

	if err := s.auth.Revoke(c.Request.Context(), req.RefreshToken); err != nil {
		if errors.Is(err, common.ErrRefreshTokenNotFound) {
			fail(c, http.StatusNotFound, kindRefreshTokenNotFound)
			return
		}
		s.logger.Error(c.Request.Context(), "revoke failed", "err", err.Error())
		fail(c, http.StatusInternalServerError, kindInternalError)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, kindValidationError)
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			fail(c, http.StatusBadRequest, kindValidationError)
		case errors.Is(err, common.ErrEmailAlreadyTaken):
			fail(c, http.StatusConflict, kindEmailAlreadyTaken)
		default:
			s.logger.Error(c.Request.Context(), "register failed", "err", err.Error())
			fail(c, http.StatusInternalServerError, kindInternalError)
		}
		return
	}

	s.logger.Info(c.Request.Context(), "user registered", "user_id", user.ID)
	c.JSON(http.StatusCreated, userResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}
