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

// UserHandler serves the /user resource. Unlike the other resources,
// create carries a plaintext password that is bcrypt-hashed before it
// reaches the repository, and update never touches the stored hash.
type UserHandler struct {
	Users      *repository.UserRepo
	BcryptCost int
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(users *repository.UserRepo, bcryptCost int) *UserHandler {
	if users == nil {
		panic("nil repository passed to NewUserHandler")
	}
	return &UserHandler{Users: users, BcryptCost: bcryptCost}
}

type userCreatePayload struct {
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Password    string     `json:"password"`
	PhoneNumber *string    `json:"phone_number"`
	Role        model.Role `json:"role"`
}

func (p *userCreatePayload) validate() []fieldError {
	var errs []fieldError
	if strings.TrimSpace(p.Username) == "" {
		errs = append(errs, fieldError{Field: "username", Message: "field required"})
	}
	if strings.TrimSpace(p.Email) == "" {
		errs = append(errs, fieldError{Field: "email", Message: "field required"})
	} else if !strings.Contains(p.Email, "@") {
		errs = append(errs, fieldError{Field: "email", Message: "value is not a valid email address"})
	}
	if p.Password == "" {
		errs = append(errs, fieldError{Field: "password", Message: "field required"})
	}
	if p.Role != "" && !p.Role.Valid() {
		errs = append(errs, fieldError{Field: "role", Message: "value is not a valid enumeration member"})
	}
	return errs
}

type userUpdatePayload struct {
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	PhoneNumber *string    `json:"phone_number"`
	Role        model.Role `json:"role"`
}

func (p *userUpdatePayload) validate() []fieldError {
	var errs []fieldError
	if strings.TrimSpace(p.Username) == "" {
		errs = append(errs, fieldError{Field: "username", Message: "field required"})
	}
	if strings.TrimSpace(p.Email) == "" {
		errs = append(errs, fieldError{Field: "email", Message: "field required"})
	} else if !strings.Contains(p.Email, "@") {
		errs = append(errs, fieldError{Field: "email", Message: "value is not a valid email address"})
	}
	if !p.Role.Valid() {
		errs = append(errs, fieldError{Field: "role", Message: "value is not a valid enumeration member"})
	}
	return errs
}

// Create handles POST /user/. The password is hashed here; plaintext
// never reaches the repository or the database.
func (h *UserHandler) Create(c echo.Context) error {
	var body userCreatePayload
	if err := c.Bind(&body); err != nil {
		return badBody(c)
	}
	if errs := body.validate(); len(errs) > 0 {
		return unprocessable(c, errs)
	}
	hash, err := utils.HashPassword(body.Password, h.BcryptCost)
	if err != nil {
		return serverError(c)
	}
	role := body.Role
	if role == "" {
		role = model.RoleBuyer
	}
	user := &model.User{
		Username:       strings.TrimSpace(body.Username),
		Email:          body.Email,
		HashedPassword: hash,
		PhoneNumber:    body.PhoneNumber,
		Role:           role,
	}
	if err := h.Users.Create(c.Request().Context(), user); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) || errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"detail": err.Error()})
		}
		return serverError(c)
	}
	return c.JSON(http.StatusOK, user)
}

// List handles GET /user/.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return serverError(c)
	}
	if users == nil {
		users = []*model.User{}
	}
	return c.JSON(http.StatusOK, utils.Paginate(users, c.QueryParam("page"), c.QueryParam("size")))
}

// Get handles GET /user/:id.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	user, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return notFound(c, msgUserNotFound)
		}
		return serverError(c)
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /user/:id. Full replace of profile fields; the
// password hash is not an updatable field.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body userUpdatePayload
	if err := c.Bind(&body); err != nil {
		return badBody(c)
	}
	if errs := body.validate(); len(errs) > 0 {
		return unprocessable(c, errs)
	}
	ctx := c.Request().Context()
	if _, err := h.Users.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return notFound(c, msgUserNotFound)
		}
		return serverError(c)
	}
	user := &model.User{
		ID:          id,
		Username:    strings.TrimSpace(body.Username),
		Email:       body.Email,
		PhoneNumber: body.PhoneNumber,
		Role:        body.Role,
	}
	if err := h.Users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) || errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"detail": err.Error()})
		}
		return serverError(c)
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /user/:id. Cars, their auctions, those
// auctions' bids, the user's own bids, tokens and feedback all
// cascade away in the database.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Users.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return notFound(c, msgUserNotFound)
		}
		return serverError(c)
	}
	return deleted(c, msgUserDeleted)
}
