package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	carouselapp "github.com/storefront/backend/internal/application/carousel"
	"github.com/storefront/backend/internal/domain/carousel"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

const imageFormField = "image"

// SlideHandler serves the carousel slide endpoints
type SlideHandler struct {
	BaseHandler
	slides *carouselapp.SlideService
	images imageRules
}

// NewSlideHandler creates a slide handler. maxImageBytes bounds every uploaded image.
func NewSlideHandler(slides *carouselapp.SlideService, maxImageBytes int64) *SlideHandler {
	if maxImageBytes <= 0 {
		maxImageBytes = carousel.DefaultMaxImageSize
	}
	return &SlideHandler{
		slides: slides,
		images: imageRules{maxBytes: maxImageBytes},
	}
}

// List godoc
//
//	@ID				listSlides
//	@Summary		List carousel slides
//	@Description	Returns every slide in display order
//	@Tags			slides
//	@Produce		json
//	@Success		200	{object}	SlideListResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/slides [get]
func (h *SlideHandler) List(c *gin.Context) {
	slides, err := h.slides.ListSlides(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "Carousel slides retrieved successfully", slides)
}

// Get godoc
//
//	@ID				getSlide
//	@Summary		Get a carousel slide
//	@Tags			slides
//	@Produce		json
//	@Param			id	path		int	true	"Slide ID"
//	@Success		200	{object}	SlideItemResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/slides/{id} [get]
func (h *SlideHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid slide ID")
		return
	}
	slide, err := h.slides.GetSlide(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "Carousel slide retrieved successfully", slide)
}

// Create godoc
//
//	@ID				createSlide
//	@Summary		Create a carousel slide
//	@Description	Uploads the image and appends the slide unless an order is given
//	@Tags			slides
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Idempotency-Key	header		string	false	"Replays the first response when the same key is sent again"
//	@Param			title		formData	string	true	"Title"
//	@Param			subtitle	formData	string	false	"Subtitle"
//	@Param			altText		formData	string	false	"Alternative text"
//	@Param			order		formData	int		false	"1-based position"
//	@Param			image		formData	file	true	"Image (max 5MB)"
//	@Success		201			{object}	SlideItemResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		403			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse
//	@Failure		413			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Failure		502			{object}	ErrorResponse
//	@Router			/slides [post]
func (h *SlideHandler) Create(c *gin.Context) {
	var req SlideFormRequest
	if !h.bindForm(c, &req) {
		return
	}
	image, ok := h.formImage(c)
	if !ok {
		return
	}

	slide, err := h.slides.CreateSlide(c.Request.Context(), carouselapp.CreateSlideInput{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		AltText:  req.altText(),
		Order:    req.Order,
	}, image)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, "Carousel slide created successfully", slide)
}

// Update godoc
//
//	@ID				updateSlide
//	@Summary		Update a carousel slide
//	@Description	Replaces the fields of a slide. The stored image is kept unless a new one is sent.
//	@Tags			slides
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id			path		int		true	"Slide ID"
//	@Param			title		formData	string	true	"Title"
//	@Param			subtitle	formData	string	false	"Subtitle"
//	@Param			altText		formData	string	false	"Alternative text"
//	@Param			order		formData	int		false	"1-based position"
//	@Param			image		formData	file	false	"Replacement image (max 5MB)"
//	@Success		200			{object}	SlideItemResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		502			{object}	ErrorResponse
//	@Router			/slides/{id} [put]
func (h *SlideHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid slide ID")
		return
	}
	var req SlideFormRequest
	if !h.bindForm(c, &req) {
		return
	}
	image, ok := h.formImage(c)
	if !ok {
		return
	}

	change := carousel.KeepImage()
	if image != nil {
		change = carousel.ReplaceImage(*image)
	}
	slide, err := h.slides.UpdateSlide(c.Request.Context(), id, carouselapp.UpdateSlideInput{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		AltText:  req.altText(),
		Order:    req.Order,
	}, change)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "Carousel slide updated successfully", slide)
}

// BatchUpdate godoc
//
//	@ID				batchUpdateSlides
//	@Summary		Save the whole carousel
//	@Description	Creates entries without id, updates the others and orders every slide by its position in the list. All or nothing.
//	@Tags			slides
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Idempotency-Key	header	string	false	"Replays the first response when the same key is sent again"
//	@Param			request	body		BatchSlidesRequest	true	"Slides in display order"
//	@Success		200		{object}	SlideListResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Router			/slides [put]
func (h *SlideHandler) BatchUpdate(c *gin.Context) {
	var req BatchSlidesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if tooLarge(err) {
			h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeTooLarge, "Request body too large")
			return
		}
		h.BindingError(c, err)
		return
	}

	drafts := make([]carousel.SlideDraft, 0, len(req.Slides))
	for _, item := range req.Slides {
		draft := carousel.SlideDraft{
			ID:       item.ID,
			Fields:   item.fields(),
			ImageRef: item.ImageRef,
			Image:    carousel.KeepImage(),
		}
		// A bad image is reported by the service, after earlier slides' problems
		if item.Image != nil {
			payload, err := h.images.fromBase64(*item.Image)
			if err != nil {
				draft.Image = carousel.RejectImage(err)
			} else {
				draft.Image = carousel.ReplaceImage(*payload)
			}
		}
		drafts = append(drafts, draft)
	}

	slides, err := h.slides.BatchUpdateSlides(c.Request.Context(), drafts)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "Carousel slides updated successfully", slides)
}

// Delete godoc
//
//	@ID				deleteSlide
//	@Summary		Delete a carousel slide
//	@Description	The slide's image stays in the image store
//	@Tags			slides
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"Slide ID"
//	@Success		200	{object}	MessageResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/slides/{id} [delete]
func (h *SlideHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid slide ID")
		return
	}
	if err := h.slides.DeleteSlide(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "Carousel slide deleted successfully", nil)
}

func (h *SlideHandler) bindForm(c *gin.Context, req *SlideFormRequest) bool {
	if err := c.ShouldBind(req); err != nil {
		if tooLarge(err) {
			h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeTooLarge, "Request body too large")
			return false
		}
		h.BindingError(c, err)
		return false
	}
	return true
}

// formImage returns the optional "image" part. A nil payload means none was sent.
func (h *SlideHandler) formImage(c *gin.Context) (*carousel.ImagePayload, bool) {
	fh, err := c.FormFile(imageFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, true
		}
		if tooLarge(err) {
			h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeTooLarge, "Request body too large")
			return nil, false
		}
		h.BadRequest(c, "Malformed multipart body")
		return nil, false
	}
	payload, err := h.images.fromFile(fh)
	if err != nil {
		h.HandleDomainError(c, err)
		return nil, false
	}
	return payload, true
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
