package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"invitationgallery/internal/delivery/http/helpers"
	"invitationgallery/internal/domain"
)

// maxPrice is the largest value the invitations.price INTEGER column holds.
const maxPrice = 2147483647

// CreateInvitationForm holds the text fields of POST /invitations (multipart/form-data).
// Text fields are trimmed before validation.
type CreateInvitationForm struct {
	Title       string `form:"title" validate:"required,max=255"`
	Description string `form:"description" validate:"required"`
	Price       *int   `form:"price" validate:"required,gte=0,lte=2147483647"`
}

func (f CreateInvitationForm) toDomain() *domain.Invitation {
	return domain.NewInvitation(f.Title, f.Description, *f.Price, "")
}

// UpdateInvitationForm holds the optional text fields of PATCH /invitations/{id}. Omitted fields are unchanged.
type UpdateInvitationForm struct {
	Title       *string `form:"title" validate:"omitnil,min=1,max=255"`
	Description *string `form:"description" validate:"omitnil,min=1"`
	Price       *int    `form:"price" validate:"omitnil,gte=0,lte=2147483647"`
}

func (f UpdateInvitationForm) toDomain() domain.InvitationPatch {
	return domain.InvitationPatch{Title: f.Title, Description: f.Description, Price: f.Price}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

type InvitationController struct {
	Logger         *slog.Logger
	Service        domain.InvitationService
	MaxUploadBytes int64
}

func NewInvitationController(logger *slog.Logger, svc domain.InvitationService, maxUploadBytes int64) *InvitationController {
	return &InvitationController{
		Logger:         logger,
		Service:        svc,
		MaxUploadBytes: maxUploadBytes,
	}
}

// ListInvitations godoc
// @Summary List invitations
// @Description Returns every invitation ordered by creation time, oldest first.
// @Tags invitations
// @Produce json
// @Success 200 {array} domain.Invitation
// @Failure 500 {object} helpers.ErrorResponse
// @Router /invitations [get]
func (c *InvitationController) ListInvitations(w http.ResponseWriter, r *http.Request) {
	invs, err := c.Service.List(r.Context())
	if err != nil {
		c.internalError(w, r, err, "Failed to fetch invitations")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, invs)
}

// GetInvitation godoc
// @Summary Get an invitation
// @Tags invitations
// @Produce json
// @Param id path string true "Invitation ID (UUID)"
// @Success 200 {object} domain.Invitation
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /invitations/{id} [get]
func (c *InvitationController) GetInvitation(w http.ResponseWriter, r *http.Request) {
	id, ok := invitationID(w, r)
	if !ok {
		return
	}
	inv, err := c.Service.Get(r.Context(), id)
	if err != nil {
		c.writeError(w, r, err, "Failed to fetch invitation")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, inv)
}

// CreateInvitation godoc
// @Summary Create an invitation
// @Description Multipart form with title, description, price and a required image (jpeg, jpg, png or webp, at most 5MB).
// @Tags invitations
// @Accept mpfd
// @Produce json
// @Security SessionCookie
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param price formData int true "Price"
// @Param image formData file true "Image"
// @Success 201 {object} domain.Invitation
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /invitations [post]
func (c *InvitationController) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	form, ok := c.parseForm(w, r)
	if !ok {
		return
	}
	image := form.Image(helpers.ImageField)
	if image == nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.MsgImageRequired)
		return
	}
	price, err := form.OptionalInt("price")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	req := CreateInvitationForm{
		Title:       strings.TrimSpace(form.Value("title")),
		Description: strings.TrimSpace(form.Value("description")),
		Price:       price,
	}
	if msgs := helpers.Validate(req); len(msgs) > 0 {
		helpers.WriteValidationError(w, msgs)
		return
	}

	inv, err := c.Service.Create(r.Context(), req.toDomain(), image)
	if err != nil {
		c.writeError(w, r, err, "Failed to create invitation")
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, inv)
}

// UpdateInvitation godoc
// @Summary Update an invitation
// @Description Any of title, description, price and image may be sent. A new image replaces the stored one and the old upload is deleted.
// @Tags invitations
// @Accept mpfd
// @Produce json
// @Security SessionCookie
// @Param id path string true "Invitation ID (UUID)"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param price formData int false "Price"
// @Param image formData file false "Image"
// @Success 200 {object} domain.Invitation
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /invitations/{id} [patch]
func (c *InvitationController) UpdateInvitation(w http.ResponseWriter, r *http.Request) {
	id, ok := invitationID(w, r)
	if !ok {
		return
	}
	form, ok := c.parseForm(w, r)
	if !ok {
		return
	}
	price, err := form.OptionalInt("price")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	req := UpdateInvitationForm{
		Title:       trimmed(form.OptionalString("title")),
		Description: trimmed(form.OptionalString("description")),
		Price:       price,
	}
	if msgs := helpers.Validate(req); len(msgs) > 0 {
		helpers.WriteValidationError(w, msgs)
		return
	}

	inv, err := c.Service.Update(r.Context(), id, req.toDomain(), form.Image(helpers.ImageField))
	if err != nil {
		c.writeError(w, r, err, "Failed to update invitation")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, inv)
}

// DeleteInvitation godoc
// @Summary Delete an invitation
// @Description Deletes the invitation and its uploaded image.
// @Tags invitations
// @Security SessionCookie
// @Param id path string true "Invitation ID (UUID)"
// @Success 204
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /invitations/{id} [delete]
func (c *InvitationController) DeleteInvitation(w http.ResponseWriter, r *http.Request) {
	id, ok := invitationID(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		c.writeError(w, r, err, "Failed to delete invitation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *InvitationController) parseForm(w http.ResponseWriter, r *http.Request) (*helpers.Form, bool) {
	form, err := helpers.ParseForm(w, r, c.MaxUploadBytes)
	if err != nil {
		if errors.Is(err, domain.ErrImageTooLarge) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.MsgImageTooLarge)
			return nil, false
		}
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.MsgInvalidRequestBody)
		return nil, false
	}
	if form.FileCount(helpers.ImageField) > 1 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.MsgOneImageOnly)
		return nil, false
	}
	return form, true
}

// invitationID returns the {id} path value. Anything that is not a UUID cannot exist and gets 404.
func invitationID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.MsgInvitationNotFound)
		return "", false
	}
	return id, true
}

func (c *InvitationController) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.MsgInvitationNotFound)
	case errors.Is(err, domain.ErrImageRequired):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.MsgImageRequired)
	case errors.Is(err, domain.ErrUnsupportedImage):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.MsgOnlyImagesAllowed)
	case errors.Is(err, domain.ErrImageTooLarge):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.MsgImageTooLarge)
	default:
		c.internalError(w, r, err, fallback)
	}
}

func (c *InvitationController) internalError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, msg)
}
