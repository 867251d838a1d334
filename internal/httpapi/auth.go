// Copyright (c) 2025 ToeiRei
// Quoteboard - shared quote board service
// This source code is licensed under the MIT license found in the LICENSE file.

package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/toeirei/quoteboard/internal/credential"
	"github.com/toeirei/quoteboard/internal/i18n"
	"github.com/toeirei/quoteboard/internal/logging"
	"github.com/toeirei/quoteboard/internal/token"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": i18n.T("api.fields_required")})
		return
	}

	err := s.credentials.Register(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"message": i18n.T("api.register_success")})
	case errors.Is(err, credential.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, gin.H{"message": i18n.T("api.username_taken")})
	case isValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"message": i18n.T("api.fields_required")})
	default:
		logging.Errorf("register failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": i18n.T("api.register_error")})
	}
}

func (s *Server) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": i18n.T("api.fields_required")})
		return
	}

	identity, err := s.credentials.Verify(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		signed, issueErr := s.tokens.Issue(identity)
		if issueErr != nil {
			logging.Errorf("token issue failed: %v", issueErr)
			c.JSON(http.StatusInternalServerError, gin.H{"message": i18n.T("api.login_error")})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": i18n.T("api.login_success"),
			"token":   signed,
			"user":    gin.H{"username": identity.Username},
		})
	case errors.Is(err, credential.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": i18n.T("api.invalid_credentials")})
	case isValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"message": i18n.T("api.fields_required")})
	default:
		logging.Errorf("login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": i18n.T("api.login_error")})
	}
}

// contextUserKey is where requireToken stores the authenticated user id.
const contextUserKey = "user_id"

// requireToken gates a route behind a valid bearer token. A missing or
// malformed Authorization header is 401; a header that carries a token
// which fails verification is 422, matching the listing's public/private
// split where reads need no token at all.
func (s *Server) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := token.FromAuthorizationHeader(c.GetHeader("Authorization"))
		if err != nil {
			if errors.Is(err, token.ErrMalformed) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": i18n.T("api.token_malformed")})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": i18n.T("api.token_missing")})
			}
			return
		}

		userID, err := s.tokens.Validate(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"message": i18n.T("api.token_invalid")})
			return
		}

		c.Set(contextUserKey, userID)
		c.Next()
	}
}

func isValidationError(err error) bool {
	var ve *credential.ValidationError
	return errors.As(err, &ve)
}
