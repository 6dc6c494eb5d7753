package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/avtorg/car-auction/internal/model"
	"github.com/avtorg/car-auction/internal/queue"
	"github.com/avtorg/car-auction/internal/repository"
	"github.com/avtorg/car-auction/internal/utils"
)

// BidHandler serves the /bid resource. Bids are accepted exactly as
// submitted: no comparison against the current high bid, no check of
// the auction's status or end time, no locking. Two concurrent bids
// on the same auction both land.
type BidHandler struct {
	Bids    *repository.BidRepo
	publish queue.PublishFunc // nil disables event publishing
}

// NewBidHandler constructs a BidHandler. publish may be nil when no
// broker is configured.
func NewBidHandler(bids *repository.BidRepo, publish queue.PublishFunc) *BidHandler {
	if bids == nil {
		panic("nil repository passed to NewBidHandler")
	}
	return &BidHandler{Bids: bids, publish: publish}
}

type bidPayload struct {
	AuctionID      *int64    `json:"auction_id"`
	UserID         *int64    `json:"user_id"`
	Amount         *int64    `json:"amount"`
	DateRegistered time.Time `json:"date_registered"`
}

func (p *bidPayload) validate() []fieldError {
	var errs []fieldError
	if p.AuctionID == nil {
		errs = append(errs, fieldError{Field: "auction_id", Message: "field required"})
	}
	if p.UserID == nil {
		errs = append(errs, fieldError{Field: "user_id", Message: "field required"})
	}
	if p.Amount == nil {
		errs = append(errs, fieldError{Field: "amount", Message: "field required"})
	}
	return errs
}

// Create handles POST /bid/. A reference to a nonexistent auction or
// user fails at the storage constraint, not with a domain error. On
// success a bid.placed event goes to the broker; a publish failure is
// logged inside the publisher and otherwise ignored.
func (h *BidHandler) Create(c echo.Context) error {
	var body bidPayload
	if err := c.Bind(&body); err != nil {
		return badBody(c)
	}
	if errs := body.validate(); len(errs) > 0 {
		return unprocessable(c, errs)
	}
	bid := &model.Bid{
		AuctionID:      *body.AuctionID,
		UserID:         *body.UserID,
		Amount:         *body.Amount,
		DateRegistered: body.DateRegistered,
	}
	if err := h.Bids.Create(c.Request().Context(), bid); err != nil {
		return serverError(c)
	}
	if h.publish != nil {
		_ = h.publish(c.Request().Context(), queue.BidPlacedEvent{
			EventID:   uuid.NewString(),
			BidID:     bid.ID,
			AuctionID: bid.AuctionID,
			UserID:    bid.UserID,
			Amount:    bid.Amount,
			PlacedAt:  bid.DateRegistered.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, bid)
}

// ListByAuction handles GET /bid/auction/:id and returns all bids on
// one auction.
func (h *BidHandler) ListByAuction(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	bids, err := h.Bids.ListByAuction(c.Request().Context(), id)
	if err != nil {
		return serverError(c)
	}
	if bids == nil {
		bids = []*model.Bid{}
	}
	return c.JSON(http.StatusOK, utils.Paginate(bids, c.QueryParam("page"), c.QueryParam("size")))
}

// Get handles GET /bid/:id.
func (h *BidHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	bid, err := h.Bids.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBidNotFound) {
			return notFound(c, msgBidNotFound)
		}
		return serverError(c)
	}
	return c.JSON(http.StatusOK, bid)
}

// Delete handles DELETE /bid/:id.
func (h *BidHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Bids.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrBidNotFound) {
			return notFound(c, msgBidNotFound)
		}
		return serverError(c)
	}
	return deleted(c, msgBidDeleted)
}
