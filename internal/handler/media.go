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

// MediaHandler covers the artist showcase endpoints: music links and the
// image gallery. Files themselves live on the external media host; this
// service only stores URLs.
type MediaHandler struct {
	Music   MusicStore
	Gallery GalleryStore
}

// NewMediaHandler constructs a MediaHandler.
func NewMediaHandler(music MusicStore, gallery GalleryStore) *MediaHandler {
	return &MediaHandler{Music: music, Gallery: gallery}
}

// ListMusic handles GET /api/music (artist only).
func (h *MediaHandler) ListMusic(c echo.Context) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	rows, err := h.Music.ListByArtist(c.Request().Context(), p.ID)
	if err != nil {
		c.Logger().Errorf("list music: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	if rows == nil {
		rows = []model.Music{}
	}
	return respond(c, http.StatusOK, rows)
}

type musicReq struct {
	Title      string  `json:"title"`
	CoverURL   *string `json:"coverUrl"`
	SpotifyURL *string `json:"spotifyUrl"`
	YoutubeURL *string `json:"youtubeUrl"`
	OtherURL   *string `json:"otherUrl"`
}

// CreateMusic handles POST /api/music (artist only).
func (h *MediaHandler) CreateMusic(c echo.Context) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req musicReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if strings.TrimSpace(req.Title) == "" {
		return fail(c, http.StatusBadRequest, "title is required")
	}
	track := model.Music{
		ArtistID:   p.ID,
		Title:      strings.TrimSpace(req.Title),
		CoverURL:   req.CoverURL,
		SpotifyURL: req.SpotifyURL,
		YoutubeURL: req.YoutubeURL,
		OtherURL:   req.OtherURL,
	}
	if err := h.Music.Create(c.Request().Context(), &track); err != nil {
		c.Logger().Errorf("create music: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	return respond(c, http.StatusCreated, track)
}

// DeleteMusic handles DELETE /api/music/:id (artist, owner). Missing and
// foreign-owned tracks share one 404.
func (h *MediaHandler) DeleteMusic(c echo.Context) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	if err := h.Music.DeleteByIDAndArtist(c.Request().Context(), c.Param("id"), p.ID); err != nil {
		if errors.Is(err, repository.ErrMusicNotFound) {
			return fail(c, http.StatusNotFound, "Music not found or not yours")
		}
		c.Logger().Errorf("delete music: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, envelope{Success: true})
}

// ListGallery handles GET /api/gallery (artist only).
func (h *MediaHandler) ListGallery(c echo.Context) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	rows, err := h.Gallery.ListByArtist(c.Request().Context(), p.ID)
	if err != nil {
		c.Logger().Errorf("list gallery: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	if rows == nil {
		rows = []model.GalleryImage{}
	}
	return respond(c, http.StatusOK, rows)
}

type galleryReq struct {
	ImageURL string  `json:"imageUrl"`
	Caption  *string `json:"caption"`
}

// CreateGalleryImage handles POST /api/gallery (artist only).
func (h *MediaHandler) CreateGalleryImage(c echo.Context) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req galleryReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		return fail(c, http.StatusBadRequest, "imageUrl is required")
	}
	img := model.GalleryImage{
		ArtistID: p.ID,
		ImageURL: strings.TrimSpace(req.ImageURL),
		Caption:  req.Caption,
	}
	if err := h.Gallery.Create(c.Request().Context(), &img); err != nil {
		c.Logger().Errorf("create gallery image: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	return respond(c, http.StatusCreated, img)
}

// DeleteGalleryImage handles DELETE /api/gallery/:id (artist, owner).
func (h *MediaHandler) DeleteGalleryImage(c echo.Context) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	if err := h.Gallery.DeleteByIDAndArtist(c.Request().Context(), c.Param("id"), p.ID); err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return fail(c, http.StatusNotFound, "Image not found or not yours")
		}
		c.Logger().Errorf("delete gallery image: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, envelope{Success: true})
}
