package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avtorg/car-auction/internal/model"
	"github.com/avtorg/car-auction/internal/repository"
	"github.com/avtorg/car-auction/internal/utils"
)

// FeedbackHandler serves the /feedback resource. Nothing verifies
// that the buyer ever won an auction from the seller; any pair of
// user ids that exists is accepted.
type FeedbackHandler struct {
	Feedback *repository.FeedbackRepo
}

// NewFeedbackHandler constructs a FeedbackHandler.
func NewFeedbackHandler(feedback *repository.FeedbackRepo) *FeedbackHandler {
	if feedback == nil {
		panic("nil repository passed to NewFeedbackHandler")
	}
	return &FeedbackHandler{Feedback: feedback}
}

type feedbackPayload struct {
	SellerID   *int64    `json:"seller_feedback_id"`
	BuyerID    *int64    `json:"bayer_id"`
	Rating     *int      `json:"rating"`
	Text       string    `json:"text"`
	CreateDate time.Time `json:"create_date"`
}

func (p *feedbackPayload) validate() []fieldError {
	var errs []fieldError
	if p.SellerID == nil {
		errs = append(errs, fieldError{Field: "seller_feedback_id", Message: "field required"})
	}
	if p.BuyerID == nil {
		errs = append(errs, fieldError{Field: "bayer_id", Message: "field required"})
	}
	if p.Rating == nil {
		errs = append(errs, fieldError{Field: "rating", Message: "field required"})
	}
	return errs
}

// Create handles POST /feedback/.
func (h *FeedbackHandler) Create(c echo.Context) error {
	var body feedbackPayload
	if err := c.Bind(&body); err != nil {
		return badBody(c)
	}
	if errs := body.validate(); len(errs) > 0 {
		return unprocessable(c, errs)
	}
	fb := &model.Feedback{
		SellerID:   *body.SellerID,
		BuyerID:    *body.BuyerID,
		Rating:     *body.Rating,
		Text:       body.Text,
		CreateDate: body.CreateDate,
	}
	if err := h.Feedback.Create(c.Request().Context(), fb); err != nil {
		return serverError(c)
	}
	return c.JSON(http.StatusOK, fb)
}

// ListBySeller handles GET /feedback/seller/:id and returns all
// feedback left for one seller.
func (h *FeedbackHandler) ListBySeller(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	items, err := h.Feedback.ListBySeller(c.Request().Context(), id)
	if err != nil {
		return serverError(c)
	}
	if items == nil {
		items = []*model.Feedback{}
	}
	return c.JSON(http.StatusOK, utils.Paginate(items, c.QueryParam("page"), c.QueryParam("size")))
}

// Get handles GET /feedback/:id.
func (h *FeedbackHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	fb, err := h.Feedback.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrFeedbackNotFound) {
			return notFound(c, msgFeedbackNotFound)
		}
		return serverError(c)
	}
	return c.JSON(http.StatusOK, fb)
}

// Delete handles DELETE /feedback/:id.
func (h *FeedbackHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Feedback.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrFeedbackNotFound) {
			return notFound(c, msgFeedbackNotFound)
		}
		return serverError(c)
	}
	return deleted(c, msgFeedbackDeleted)
}
