// Copyright (c) 2025 ToeiRei
// Quoteboard - shared quote board service
// This source code is licensed under the MIT license found in the LICENSE file.

// package httpapi exposes the quote board over HTTP: registration,
// login, and the paginated quote listing with authenticated submissions.
package httpapi // import "github.com/toeirei/quoteboard/internal/httpapi"

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/toeirei/quoteboard/buildvars"
	"github.com/toeirei/quoteboard/internal/credential"
	"github.com/toeirei/quoteboard/internal/i18n"
	"github.com/toeirei/quoteboard/internal/logging"
	"github.com/toeirei/quoteboard/internal/quote"
	"github.com/toeirei/quoteboard/internal/token"
)

// Server wires the handlers to their services and serves them over HTTP.
type Server struct {
	credentials *credential.Service
	tokens      *token.Service
	quotes      *quote.Repository

	dbType string
	http   *http.Server
}

// Options configures a Server beyond its three services.
type Options struct {
	// Port the HTTP listener binds to.
	Port int
	// CORSOrigins is a comma-separated allowlist, or "*" for any origin.
	CORSOrigins string
	// DBType names the active storage backend for the health endpoint.
	DBType string
	// Debug switches gin out of release mode.
	Debug bool
}

// New builds a Server with its routes registered.
func New(credentials *credential.Service, tokens *token.Service, quotes *quote.Repository, opts Options) *Server {
	if !opts.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		credentials: credentials,
		tokens:      tokens,
		quotes:      quotes,
		dbType:      opts.DBType,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware(opts.CORSOrigins))

	router.GET("/", s.handleIndex)
	router.GET("/health", s.handleHealth)

	api := router.Group("/api")
	api.POST("/auth/register", s.handleRegister)
	api.POST("/auth/login", s.handleLogin)
	api.GET("/quotes", s.handleListQuotes)
	api.POST("/quotes", s.requireToken(), s.handleAddQuote)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": i18n.T("api.not_found")})
	})

	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	logging.Infof("HTTP server listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Quoteboard API is running!",
		"version": buildvars.VersionOrDefault("dev"),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"database":  s.dbType,
	})
}

// corsMiddleware answers preflight requests and stamps the allow-origin
// header. With a "*" allowlist every origin is reflected; otherwise only
// origins on the list get the header.
func corsMiddleware(origins string) gin.HandlerFunc {
	allowAll := origins == "" || origins == "*"
	var allowed []string
	if !allowAll {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				allowed = append(allowed, o)
			}
		}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if allowAll {
				c.Header("Access-Control-Allow-Origin", "*")
			} else {
				for _, o := range allowed {
					if o == origin {
						c.Header("Access-Control-Allow-Origin", origin)
						c.Header("Vary", "Origin")
						break
					}
				}
			}
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
