package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/luki/wristtemp/internal/temperature"
)

// EntryResponse is one measurement in the list.
type EntryResponse struct {
	ID          uuid.UUID `json:"id"`
	Temperature float64   `json:"temperature"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Warm        bool      `json:"warm"`
}

// RangeResponse is the padded chart axis range.
type RangeResponse struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// TemperaturesResponse is the body of GET /api/v1/temperatures.
type TemperaturesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	Range     RangeResponse   `json:"range"`
	Threshold float64         `json:"threshold"`
	Ticket    uint64          `json:"ticket"`
	LoadedAt  *time.Time      `json:"loadedAt"`
}

// Handler serves the temperature endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List returns the entries newest first with the chart range.
func (h *Handler) List(c *gin.Context) {
	snap := h.svc.Snapshot()

	resp := TemperaturesResponse{
		Entries: lo.Map(temperature.NewestFirst(snap.Entries), func(e temperature.Entry, _ int) EntryResponse {
			return EntryResponse{
				ID:          e.ID,
				Temperature: e.Temperature,
				StartDate:   e.StartDate,
				EndDate:     e.EndDate,
				Warm:        e.Warm(),
			}
		}),
		Range:     RangeResponse{Min: snap.Min, Max: snap.Max},
		Threshold: temperature.Threshold,
		Ticket:    uint64(snap.Ticket),
	}
	if !snap.LoadedAt.IsZero() {
		resp.LoadedAt = &snap.LoadedAt
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, resp)
}

// Refresh starts a new load and answers before it completes.
func (h *Handler) Refresh(c *gin.Context) {
	ticket := h.svc.Refresh()
	c.JSON(http.StatusAccepted, gin.H{"ticket": uint64(ticket)})
}

// Health handles /healthz and prevents caching.
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
