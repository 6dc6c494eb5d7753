package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/avtorg/car-auction/internal/model"
	"github.com/avtorg/car-auction/internal/repository"
	"github.com/avtorg/car-auction/internal/utils"
)

// CarHandler serves the /car resource.
type CarHandler struct {
	Cars *repository.CarRepo
}

// NewCarHandler constructs a CarHandler.
func NewCarHandler(cars *repository.CarRepo) *CarHandler {
	if cars == nil {
		panic("nil repository passed to NewCarHandler")
	}
	return &CarHandler{Cars: cars}
}

// carPayload is the request body for create and update. Numeric
// fields are pointers so that absence can be told apart from zero.
type carPayload struct {
	Brand        string             `json:"brand"`
	Model        string             `json:"model"`
	Year         model.Date         `json:"year"`
	FuelType     model.FuelType     `json:"fuel_type"`
	Transmission model.Transmission `json:"transmission"`
	Mileage      *int64             `json:"mileage"`
	Price        *float64           `json:"price"`
	Description  string             `json:"description"`
	Image        string             `json:"image"`
	SellerID     *int64             `json:"seller_id"`
}

func (p *carPayload) validate() []fieldError {
	var errs []fieldError
	if strings.TrimSpace(p.Brand) == "" {
		errs = append(errs, fieldError{Field: "brand", Message: "field required"})
	}
	if strings.TrimSpace(p.Model) == "" {
		errs = append(errs, fieldError{Field: "model", Message: "field required"})
	}
	if p.Year.IsZero() {
		errs = append(errs, fieldError{Field: "year", Message: "field required"})
	}
	if !p.FuelType.Valid() {
		errs = append(errs, fieldError{Field: "fuel_type", Message: "value is not a valid enumeration member"})
	}
	if !p.Transmission.Valid() {
		errs = append(errs, fieldError{Field: "transmission", Message: "value is not a valid enumeration member"})
	}
	if p.Mileage == nil {
		errs = append(errs, fieldError{Field: "mileage", Message: "field required"})
	}
	if p.Price == nil {
		errs = append(errs, fieldError{Field: "price", Message: "field required"})
	}
	if p.SellerID == nil {
		errs = append(errs, fieldError{Field: "seller_id", Message: "field required"})
	}
	return errs
}

func (p *carPayload) toModel(id int64) *model.Car {
	return &model.Car{
		ID:           id,
		Brand:        p.Brand,
		Model:        p.Model,
		Year:         p.Year,
		FuelType:     p.FuelType,
		Transmission: p.Transmission,
		Mileage:      *p.Mileage,
		Price:        *p.Price,
		Description:  p.Description,
		Image:        p.Image,
		SellerID:     *p.SellerID,
	}
}

// Create handles POST /car/ and returns the persisted car with its
// generated id. A seller_id referencing no user fails at the foreign
// key and surfaces as a 500, not a domain error.
func (h *CarHandler) Create(c echo.Context) error {
	var body carPayload
	if err := c.Bind(&body); err != nil {
		return badBody(c)
	}
	if errs := body.validate(); len(errs) > 0 {
		return unprocessable(c, errs)
	}
	car := body.toModel(0)
	if err := h.Cars.Create(c.Request().Context(), car); err != nil {
		return serverError(c)
	}
	return c.JSON(http.StatusOK, car)
}

// List handles GET /car/ and returns all cars, optionally truncated
// by page/size query parameters.
func (h *CarHandler) List(c echo.Context) error {
	cars, err := h.Cars.List(c.Request().Context())
	if err != nil {
		return serverError(c)
	}
	if cars == nil {
		cars = []*model.Car{}
	}
	return c.JSON(http.StatusOK, utils.Paginate(cars, c.QueryParam("page"), c.QueryParam("size")))
}

// Get handles GET /car/:id.
func (h *CarHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	car, err := h.Cars.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCarNotFound) {
			return notFound(c, msgCarNotFound)
		}
		return serverError(c)
	}
	return c.JSON(http.StatusOK, car)
}

// Update handles PUT /car/:id. Every stored field is overwritten with
// the payload's values; this is a full replace, not a merge.
func (h *CarHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body carPayload
	if err := c.Bind(&body); err != nil {
		return badBody(c)
	}
	if errs := body.validate(); len(errs) > 0 {
		return unprocessable(c, errs)
	}
	ctx := c.Request().Context()
	if _, err := h.Cars.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCarNotFound) {
			return notFound(c, msgCarNotFound)
		}
		return serverError(c)
	}
	car := body.toModel(id)
	if err := h.Cars.Update(ctx, car); err != nil {
		return serverError(c)
	}
	return c.JSON(http.StatusOK, car)
}

// Delete handles DELETE /car/:id. The car's auction and that
// auction's bids cascade away in the database.
func (h *CarHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Cars.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrCarNotFound) {
			return notFound(c, msgCarNotFound)
		}
		return serverError(c)
	}
	return deleted(c, msgCarDeleted)
}

// Search handles GET /car/search/?brand=&model=&fuel_type=. Supplied
// filters combine with AND; brand and model match case-insensitive
// substrings, fuel_type matches exactly. An empty result is a 404.
func (h *CarHandler) Search(c echo.Context) error {
	q := repository.CarSearchQuery{
		Brand:    strings.TrimSpace(c.QueryParam("brand")),
		Model:    strings.TrimSpace(c.QueryParam("model")),
		FuelType: strings.TrimSpace(c.QueryParam("fuel_type")),
	}
	cars, err := h.Cars.Search(c.Request().Context(), q)
	if err != nil {
		return serverError(c)
	}
	if len(cars) == 0 {
		return notFound(c, msgCarsNotFound)
	}
	return c.JSON(http.StatusOK, cars)
}
