package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/caucashanus/rezervacni-system/internal/gcal"

	"github.com/gin-gonic/gin"
)

// EventSource produces the merged event list for a location and optional
// date.
type EventSource interface {
	Events(ctx context.Context, locationID, date string) ([]gcal.Event, error)
}

type Handlers struct {
	svc         EventSource
	cache       *ResponseCache
	adminTokens map[string]string
}

func NewHandlers(svc EventSource, cache *ResponseCache, adminTokens map[string]string) *Handlers {
	return &Handlers{
		svc:         svc,
		cache:       cache,
		adminTokens: adminTokens,
	}
}

// Events serves GET /events?location=...&date=YYYY-MM-DD. Responses are
// cached per location/date for the configured TTL, so pollers hitting the
// same view share one upstream fan-out.
func (h *Handlers) Events(c *gin.Context) {
	location := c.Query("location")
	if location == "" {
		JSONError(c, http.StatusBadRequest, "location param required")
		return
	}
	date := c.Query("date")

	body, err := h.cache.GetOrFetch(cacheKey(location, date), func() ([]byte, error) {
		events, err := h.svc.Events(c.Request.Context(), location, date)
		if err != nil {
			return nil, err
		}
		if events == nil {
			// Keep the response a JSON array even when the day is empty.
			events = []gcal.Event{}
		}
		return json.Marshal(events)
	})
	if err != nil {
		log.Printf("events %s: %v", cacheKey(location, date), err)
		JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}

// VerifyAdmin serves GET /verify-admin?token=...&location=... . A
// well-formed request always gets a 200 with the verdict; only missing
// parameters are a client error.
func (h *Handlers) VerifyAdmin(c *gin.Context) {
	token := c.Query("token")
	location := c.Query("location")
	if token == "" || location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"isAdmin": false})
		return
	}

	want, ok := h.adminTokens[location]
	c.JSON(http.StatusOK, gin.H{"isAdmin": ok && want == token})
}
