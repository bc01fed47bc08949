package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rantai-skena/booking-api/internal/middleware"
	"github.com/rantai-skena/booking-api/internal/model"
	"github.com/rantai-skena/booking-api/internal/repository"
)

// ProfileHandler covers the artist and agent profile endpoints plus the
// public artist directory.
type ProfileHandler struct {
	Artists ArtistProfileStore
	Agents  AgentProfileStore
}

// NewProfileHandler constructs a ProfileHandler.
func NewProfileHandler(artists ArtistProfileStore, agents AgentProfileStore) *ProfileHandler {
	return &ProfileHandler{Artists: artists, Agents: agents}
}

// GetArtistProfile handles GET /api/artist/profile (artist only). A missing
// profile is not an error: the client shows the empty form, so data is null.
func (h *ProfileHandler) GetArtistProfile(c echo.Context) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	profile, err := h.Artists.GetByUser(c.Request().Context(), p.ID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return respond(c, http.StatusOK, nil)
		}
		c.Logger().Errorf("get artist profile: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	return respond(c, http.StatusOK, profile)
}

type artistProfileReq struct {
	StageName string  `json:"stageName"`
	City      *string `json:"city"`
	Genre     *string `json:"genre"`
	Bio       *string `json:"bio"`
	Instagram *string `json:"instagram"`
	Spotify   *string `json:"spotify"`
	Youtube   *string `json:"youtube"`
}

// PutArtistProfile handles PUT /api/artist/profile (artist only): creates
// the profile on first save and overwrites it afterwards.
func (h *ProfileHandler) PutArtistProfile(c echo.Context) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req artistProfileReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if strings.TrimSpace(req.StageName) == "" {
		return fail(c, http.StatusBadRequest, "stageName is required")
	}
	profile := model.ArtistProfile{
		UserID:    p.ID,
		StageName: strings.TrimSpace(req.StageName),
		City:      req.City,
		Genre:     req.Genre,
		Bio:       req.Bio,
		Instagram: req.Instagram,
		Spotify:   req.Spotify,
		Youtube:   req.Youtube,
	}
	if err := h.Artists.Upsert(c.Request().Context(), &profile); err != nil {
		c.Logger().Errorf("save artist profile: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	return respond(c, http.StatusOK, profile)
}

// ListPublicArtists handles GET /api/artist/public: the guest-visible artist
// directory with optional q (name search) and city filters.
func (h *ProfileHandler) ListPublicArtists(c echo.Context) error {
	rows, err := h.Artists.ListPublic(c.Request().Context(),
		strings.TrimSpace(c.QueryParam("q")), strings.TrimSpace(c.QueryParam("city")))
	if err != nil {
		c.Logger().Errorf("list public artists: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	if rows == nil {
		rows = []model.PublicArtist{}
	}
	return respond(c, http.StatusOK, rows)
}

// GetPublicArtist handles GET /api/artist/public/:id by account id.
func (h *ProfileHandler) GetPublicArtist(c echo.Context) error {
	row, err := h.Artists.GetPublicByUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return fail(c, http.StatusNotFound, "Artist not found")
		}
		c.Logger().Errorf("get public artist: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	return respond(c, http.StatusOK, row)
}

// GetAgentProfile handles GET /api/agent/profile (agent only).
func (h *ProfileHandler) GetAgentProfile(c echo.Context) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	profile, err := h.Agents.GetByUser(c.Request().Context(), p.ID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return respond(c, http.StatusOK, nil)
		}
		c.Logger().Errorf("get agent profile: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	return respond(c, http.StatusOK, profile)
}

// GetPublicAgent handles GET /api/agent/public/:id by account id.
func (h *ProfileHandler) GetPublicAgent(c echo.Context) error {
	profile, err := h.Agents.GetByUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return fail(c, http.StatusNotFound, "Agent not found")
		}
		c.Logger().Errorf("get public agent: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	return respond(c, http.StatusOK, profile)
}

type agentProfileReq struct {
	AgencyName   string  `json:"agencyName"`
	City         *string `json:"city"`
	Bio          *string `json:"bio"`
	Instagram    *string `json:"instagram"`
	ContactEmail *string `json:"contactEmail"`
	ContactPhone *string `json:"contactPhone"`
}

// PutAgentProfile handles PUT /api/agent/profile (agent only).
func (h *ProfileHandler) PutAgentProfile(c echo.Context) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req agentProfileReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if strings.TrimSpace(req.AgencyName) == "" {
		return fail(c, http.StatusBadRequest, "agencyName is required")
	}
	profile := model.AgentProfile{
		UserID:       p.ID,
		AgencyName:   strings.TrimSpace(req.AgencyName),
		City:         req.City,
		Bio:          req.Bio,
		Instagram:    req.Instagram,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	}
	if err := h.Agents.Upsert(c.Request().Context(), &profile); err != nil {
		c.Logger().Errorf("save agent profile: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	return respond(c, http.StatusOK, profile)
}
