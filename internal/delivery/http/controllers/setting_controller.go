package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"invitationgallery/internal/delivery/http/helpers"
	"invitationgallery/internal/domain"
)

// UpsertSettingRequest is the request body for POST /settings. An empty value is allowed.
type UpsertSettingRequest struct {
	Key   string  `json:"key" validate:"required,max=255"`
	Value *string `json:"value" validate:"required"`
}

type SettingController struct {
	Logger  *slog.Logger
	Service domain.SettingService
}

func NewSettingController(logger *slog.Logger, svc domain.SettingService) *SettingController {
	return &SettingController{Logger: logger, Service: svc}
}

// ListSettings godoc
// @Summary List settings
// @Tags settings
// @Produce json
// @Success 200 {array} domain.Setting
// @Failure 500 {object} helpers.ErrorResponse
// @Router /settings [get]
func (c *SettingController) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := c.Service.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Failed to fetch settings")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, settings)
}

// UpsertSetting godoc
// @Summary Create or update a setting
// @Tags settings
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param body body UpsertSettingRequest true "Setting"
// @Success 200 {object} domain.Setting
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /settings [post]
func (c *SettingController) UpsertSetting(w http.ResponseWriter, r *http.Request) {
	var req UpsertSettingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	key := strings.TrimSpace(req.Key)
	if key == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.MsgSettingKeyRequired)
		return
	}
	setting, err := c.Service.Upsert(r.Context(), key, *req.Value)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Failed to update setting")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, setting)
}
