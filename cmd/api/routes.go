package main

import (
	"context"
	"net/http"
	"time"

	"github.com/caucashanus/rezervacni-system/internal/api"

	"github.com/gin-gonic/gin"
)

func routes(handlers *api.Handlers, handlerTimeout time.Duration) http.Handler {
	g := gin.Default()

	g.Use(corsMiddleware())
	g.Use(requestIDMiddleware())

	health := g.Group("/health")
	{
		health.GET("", healthHandler)
	}

	g.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "OK. Events at /events?location=...\n")
	})

	g.GET("/events", withTimeout(handlerTimeout, handlers.Events))
	g.GET("/verify-admin", handlers.VerifyAdmin)

	return g
}

func (app *app) routes() http.Handler {
	return routes(app.handlers, app.config.Server.HandlerTimeout)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func withTimeout(d time.Duration, fn gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		fn(c)
	}
}
