package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"osint-desk/internal/dashboard"
	"osint-desk/internal/metrics"
	"osint-desk/internal/model"
	"osint-desk/internal/storage"

	"github.com/gin-gonic/gin"
)

type FiltersResponse struct {
	Source      string `json:"source"`
	Credibility string `json:"credibility"`
	Date        string `json:"date"`
	Search      string `json:"search"`
}

type FeedResponse struct {
	Events  []model.Event   `json:"events"`
	Count   int             `json:"count"`
	Total   int             `json:"total"`
	Filters FiltersResponse `json:"filters"`
}

// EventHandler serves the dataset read-only.
type EventHandler struct {
	repo    storage.Repository
	metrics *metrics.Feed
}

func NewEventHandler(repo storage.Repository, m *metrics.Feed) *EventHandler {
	return &EventHandler{repo: repo, metrics: m}
}

func (h *EventHandler) load(c *gin.Context) ([]model.Event, bool) {
	events, err := h.repo.LoadAll(c.Request.Context())
	if err != nil {
		slog.Error("server: error loading dataset", "error", err)
		if h.metrics != nil {
			h.metrics.LoadErrors.Inc()
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Dataset unavailable"})
		return nil, false
	}
	if h.metrics != nil {
		h.metrics.DatasetSize.Set(float64(len(events)))
	}
	return events, true
}

func (h *EventHandler) GetEvents(c *gin.Context) {
	events, ok := h.load(c)
	if !ok {
		return
	}
	state := dashboard.FromValues(c.Query("source"), c.Query("credibility"), c.Query("date"), c.Query("q"))
	filtered := dashboard.Apply(state, events)

	c.JSON(http.StatusOK, FeedResponse{
		Events: filtered,
		Count:  len(filtered),
		Total:  len(events),
		Filters: FiltersResponse{
			Source:      state.Source,
			Credibility: state.Credibility,
			Date:        state.Date,
			Search:      state.Search,
		},
	})
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	id := c.Param("id")
	eventID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}
	events, ok := h.load(c)
	if !ok {
		return
	}
	for _, ev := range events {
		if ev.ID == eventID {
			c.JSON(http.StatusOK, ev)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
}

func (h *EventHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
