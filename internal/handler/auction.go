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

// AuctionHandler serves the /auction resource. It stores whatever
// status the client submits and never closes an auction on its own;
// end_time is data, not a trigger.
type AuctionHandler struct {
	Auctions *repository.AuctionRepo
}

// NewAuctionHandler constructs an AuctionHandler.
func NewAuctionHandler(auctions *repository.AuctionRepo) *AuctionHandler {
	if auctions == nil {
		panic("nil repository passed to NewAuctionHandler")
	}
	return &AuctionHandler{Auctions: auctions}
}

type auctionPayload struct {
	CarID      *int64              `json:"car_id"`
	StartPrice *int64              `json:"start_price"`
	MinPrice   *int64              `json:"min_price"`
	StartTime  time.Time           `json:"start_time"`
	EndTime    time.Time           `json:"end_time"`
	Status     model.AuctionStatus `json:"status"`
}

func (p *auctionPayload) validate() []fieldError {
	var errs []fieldError
	if p.CarID == nil {
		errs = append(errs, fieldError{Field: "car_id", Message: "field required"})
	}
	if p.StartTime.IsZero() {
		errs = append(errs, fieldError{Field: "start_time", Message: "field required"})
	}
	if p.EndTime.IsZero() {
		errs = append(errs, fieldError{Field: "end_time", Message: "field required"})
	}
	if p.Status != "" && !p.Status.Valid() {
		errs = append(errs, fieldError{Field: "status", Message: "value is not a valid enumeration member"})
	}
	return errs
}

func (p *auctionPayload) toModel(id int64) *model.Auction {
	a := &model.Auction{
		ID:        id,
		CarID:     *p.CarID,
		MinPrice:  p.MinPrice,
		StartTime: p.StartTime,
		EndTime:   p.EndTime,
		Status:    p.Status,
	}
	if p.StartPrice != nil {
		a.StartPrice = *p.StartPrice // defaults to 0 when absent
	}
	if a.Status == "" {
		a.Status = model.AuctionActive
	}
	return a
}

// Create handles POST /auction/. The unique car reference makes a
// second auction for the same car a 409.
func (h *AuctionHandler) Create(c echo.Context) error {
	var body auctionPayload
	if err := c.Bind(&body); err != nil {
		return badBody(c)
	}
	if errs := body.validate(); len(errs) > 0 {
		return unprocessable(c, errs)
	}
	auction := body.toModel(0)
	if err := h.Auctions.Create(c.Request().Context(), auction); err != nil {
		if errors.Is(err, repository.ErrAuctionCarExists) {
			return c.JSON(http.StatusConflict, echo.Map{"detail": "auction for this car already exists"})
		}
		return serverError(c)
	}
	return c.JSON(http.StatusOK, auction)
}

// List handles GET /auction/.
func (h *AuctionHandler) List(c echo.Context) error {
	auctions, err := h.Auctions.List(c.Request().Context())
	if err != nil {
		return serverError(c)
	}
	if auctions == nil {
		auctions = []*model.Auction{}
	}
	return c.JSON(http.StatusOK, utils.Paginate(auctions, c.QueryParam("page"), c.QueryParam("size")))
}

// Get handles GET /auction/:id.
func (h *AuctionHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	auction, err := h.Auctions.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrAuctionNotFound) {
			return notFound(c, msgAuctionNotFound)
		}
		return serverError(c)
	}
	return c.JSON(http.StatusOK, auction)
}

// Update handles PUT /auction/:id as a full replace.
func (h *AuctionHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body auctionPayload
	if err := c.Bind(&body); err != nil {
		return badBody(c)
	}
	if errs := body.validate(); len(errs) > 0 {
		return unprocessable(c, errs)
	}
	ctx := c.Request().Context()
	if _, err := h.Auctions.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrAuctionNotFound) {
			return notFound(c, msgAuctionNotFound)
		}
		return serverError(c)
	}
	auction := body.toModel(id)
	if err := h.Auctions.Update(ctx, auction); err != nil {
		if errors.Is(err, repository.ErrAuctionCarExists) {
			return c.JSON(http.StatusConflict, echo.Map{"detail": "auction for this car already exists"})
		}
		return serverError(c)
	}
	return c.JSON(http.StatusOK, auction)
}

// Delete handles DELETE /auction/:id; bids cascade away.
func (h *AuctionHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Auctions.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrAuctionNotFound) {
			return notFound(c, msgAuctionNotFound)
		}
		return serverError(c)
	}
	return deleted(c, msgAuctionDeleted)
}
