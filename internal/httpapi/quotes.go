// Copyright (c) 2025 ToeiRei
// Quoteboard - shared quote board service
// This source code is licensed under the MIT license found in the LICENSE file.

package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/toeirei/quoteboard/internal/i18n"
	"github.com/toeirei/quoteboard/internal/logging"
	"github.com/toeirei/quoteboard/internal/quote"
)

func (s *Server) handleListQuotes(c *gin.Context) {
	page, pageSize := s.quotes.ParsePageParams(c.Query("page"), c.Query("pageSize"))
	result, err := s.quotes.List(c.Request.Context(), page, pageSize)
	if err != nil {
		logging.Errorf("quote listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": i18n.T("api.quote_list_error")})
		return
	}
	c.JSON(http.StatusOK, result)
}

type addQuoteRequest struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

func (s *Server) handleAddQuote(c *gin.Context) {
	userID := c.GetInt(contextUserKey)

	var req addQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": i18n.T("api.quote_fields_required")})
		return
	}

	view, err := s.quotes.Insert(c.Request.Context(), req.Content, req.Author, userID)
	if err != nil {
		var ve *quote.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"message": i18n.T("api.quote_fields_required")})
			return
		}
		logging.Errorf("quote insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": i18n.T("api.quote_add_error")})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": i18n.T("api.quote_added"),
		"content": view.Content,
		"author":  view.Author,
	})
}
