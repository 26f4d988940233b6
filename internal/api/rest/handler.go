package rest

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roboteam/door-tracker/internal/api/middleware"
	"github.com/roboteam/door-tracker/internal/api/shared/dto"
	"github.com/roboteam/door-tracker/internal/attendance"
	"github.com/roboteam/door-tracker/internal/domain"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// Scan records a card read from a door scanner
	// POST /api/v1/scan
	Scan(c *gin.Context)

	// GetStatus returns the caller's current check-in state
	// GET /api/v1/status
	GetStatus(c *gin.Context)

	// ChangeStatus toggles the caller's state through one of their own tags
	// POST /api/v1/status
	ChangeStatus(c *gin.Context)

	// GetLogs returns the caller's attendance log, newest first
	// GET /api/v1/logs
	GetLogs(c *gin.Context)

	// SaveStatistics upserts today's statistics row for the caller
	// POST /api/v1/statistics
	SaveStatistics(c *gin.Context)

	// EnrollTag creates a pending-registration tag (requires API key)
	// POST /api/v1/tags
	EnrollTag(c *gin.Context)

	// CreateRegistrationLink issues a sign-up link (requires API key)
	// POST /api/v1/registration-links
	CreateRegistrationLink(c *gin.Context)

	// RedeemRegistrationLink consumes a sign-up token (requires API key)
	// POST /api/v1/registration-links/redeem
	RedeemRegistrationLink(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	engine attendance.Engine
	// registrationBaseURL is prepended to issued sign-up tokens
	registrationBaseURL string
	// registrationTokenTTL applies when a link request carries no TTL
	registrationTokenTTL time.Duration
}

// NewHandler creates a new REST API handler over the attendance engine
func NewHandler(engine attendance.Engine, registrationBaseURL string, registrationTokenTTL time.Duration) Handler {
	return &handler{
		engine:               engine,
		registrationBaseURL:  registrationBaseURL,
		registrationTokenTTL: registrationTokenTTL,
	}
}

// Scan records a card read from a door scanner
func (h *handler) Scan(c *gin.Context) {
	var req dto.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	result, err := h.engine.Scan(c.Request.Context(), req.DeviceID, req.CardPayload)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPayload):
			respondBadRequest(c, "Invalid card payload")
		case errors.Is(err, domain.ErrUnauthorizedDevice):
			respondForbidden(c, "Unknown device")
		case errors.Is(err, domain.ErrCardNotRegistered):
			respondNotFound(c, "Card not registered")
		default:
			respondInternalError(c, err, "Failed to process scan")
		}
		return
	}

	c.JSON(http.StatusOK, dto.ScanResponse{
		State: string(result.State),
		Name:  result.Name,
		TagID: result.TagID,
	})
}

// GetStatus returns the caller's current check-in state
func (h *handler) GetStatus(c *gin.Context) {
	identityID, ok := middleware.IdentityID(c)
	if !ok {
		respondUnauthorized(c, "Authentication required")
		return
	}

	status, err := h.engine.Status(c.Request.Context(), identityID)
	if err != nil {
		respondInternalError(c, err, "Failed to get status")
		return
	}

	c.JSON(http.StatusOK, statusResponse(status))
}

// ChangeStatus toggles the caller's state through one of their own tags
func (h *handler) ChangeStatus(c *gin.Context) {
	identityID, ok := middleware.IdentityID(c)
	if !ok {
		respondUnauthorized(c, "Authentication required")
		return
	}

	var req dto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	status, err := h.engine.ChangeStatus(c.Request.Context(), identityID, req.TagID)
	if err != nil {
		if errors.Is(err, domain.ErrTagNotOwned) {
			respondNotFound(c, "Tag not found")
			return
		}
		respondInternalError(c, err, "Failed to change status")
		return
	}

	c.JSON(http.StatusCreated, statusResponse(status))
}

// GetLogs returns the caller's attendance log, newest first
func (h *handler) GetLogs(c *gin.Context) {
	identityID, ok := middleware.IdentityID(c)
	if !ok {
		respondUnauthorized(c, "Authentication required")
		return
	}

	entries, err := h.engine.History(c.Request.Context(), identityID)
	if err != nil {
		respondInternalError(c, err, "Failed to get logs")
		return
	}

	logs := make([]dto.LogEntryResponse, 0, len(entries))
	for _, entry := range entries {
		logs = append(logs, dto.LogEntryResponse{
			ID:     entry.ID,
			Type:   entry.Type,
			Time:   entry.Time,
			Tag:    entry.Tag,
			UserID: entry.UserID,
		})
	}

	c.JSON(http.StatusOK, dto.LogsResponse{Logs: logs})
}

// SaveStatistics upserts today's statistics row for the caller
func (h *handler) SaveStatistics(c *gin.Context) {
	identityID, ok := middleware.IdentityID(c)
	if !ok {
		respondUnauthorized(c, "Authentication required")
		return
	}

	result, err := h.engine.SaveStatistics(c.Request.Context(), identityID)
	if err != nil {
		respondInternalError(c, err, "Failed to save statistics")
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.StatisticsResponse{
		MinutesDay:     result.MinutesDay,
		MinutesWeek:    result.MinutesWeek,
		MinutesMonth:   result.MinutesMonth,
		AverageMinutes: result.AverageWeek,
		TotalMinutes:   result.TotalMinutes,
		Date:           result.Date,
		Created:        result.Created,
	})
}

// EnrollTag creates a pending-registration tag (requires API key)
func (h *handler) EnrollTag(c *gin.Context) {
	var req dto.EnrollTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	tag, err := h.engine.EnrollTag(c.Request.Context(), req.OwnerID, req.DisplayName)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			respondNotFound(c, "Identity not found")
			return
		}
		respondInternalError(c, err, "Failed to enroll tag")
		return
	}

	c.JSON(http.StatusCreated, dto.TagResponse{
		ID:          tag.ID,
		DisplayName: tag.DisplayName,
		OwnerID:     tag.OwnerID,
		State:       string(tag.State),
	})
}

// CreateRegistrationLink issues a sign-up link (requires API key)
func (h *handler) CreateRegistrationLink(c *gin.Context) {
	var req dto.CreateRegistrationLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	ttl := req.ParsedTTL()
	if ttl <= 0 {
		ttl = h.registrationTokenTTL
	}

	link, err := h.engine.IssueRegistrationToken(c.Request.Context(), req.CreatedBy, ttl)
	if err != nil {
		respondInternalError(c, err, "Failed to create registration link")
		return
	}

	c.JSON(http.StatusCreated, dto.RegistrationLinkResponse{
		Token:     link.Token,
		URL:       fmt.Sprintf("%s?token=%s", h.registrationBaseURL, link.Token),
		ExpiresAt: link.ExpiresAt,
	})
}

// RedeemRegistrationLink consumes a sign-up token (requires API key)
func (h *handler) RedeemRegistrationLink(c *gin.Context) {
	var req dto.RedeemRegistrationLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := h.engine.RedeemRegistrationToken(c.Request.Context(), req.Token); err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			respondNotFound(c, "Registration token invalid")
			return
		}
		respondInternalError(c, err, "Failed to redeem registration link")
		return
	}

	c.Status(http.StatusNoContent)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "door-tracker-api",
	})
}

// statusResponse maps an engine status result onto the wire shape
func statusResponse(status *attendance.StatusResult) dto.StatusResponse {
	resp := dto.StatusResponse{
		StateDisplay: status.StateDisplay,
		Date:         status.Date,
		Tag:          status.Tag,
	}
	if status.State != "" {
		state := status.State
		resp.State = &state
	}
	return resp
}
