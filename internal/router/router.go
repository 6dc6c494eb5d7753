// Package router registers the HTTP routes. Paths mirror the public
// contract one-to-one: each resource lives under its own prefix with
// the collection at the trailing-slash root and item operations at
// /:id. The static /car/search/ and /bid/auction/:id routes are
// declared alongside the parameterized ones; Echo matches static
// segments first.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/avtorg/car-auction/internal/handler"
	"github.com/avtorg/car-auction/internal/middleware"
)

// Handlers collects every handler set the router wires up.
type Handlers struct {
	Auth     *handler.AuthHandler
	Users    *handler.UserHandler
	Cars     *handler.CarHandler
	Auctions *handler.AuctionHandler
	Bids     *handler.BidHandler
	Feedback *handler.FeedbackHandler
}

// RegisterRoutes mounts all endpoints on the Echo instance.
func RegisterRoutes(e *echo.Echo, h Handlers, jwtSecret string) {
	e.GET("/healthz", handler.Health)

	auth := e.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)
	auth.GET("/me", h.Auth.Me, middleware.JWTAuth(jwtSecret))

	user := e.Group("/user")
	user.POST("/", h.Users.Create)
	user.GET("/", h.Users.List)
	user.GET("/:id", h.Users.Get)
	user.PUT("/:id", h.Users.Update)
	user.DELETE("/:id", h.Users.Delete)

	car := e.Group("/car")
	car.POST("/", h.Cars.Create)
	car.GET("/", h.Cars.List)
	car.GET("/search/", h.Cars.Search)
	car.GET("/:id", h.Cars.Get)
	car.PUT("/:id", h.Cars.Update)
	car.DELETE("/:id", h.Cars.Delete)

	auction := e.Group("/auction")
	auction.POST("/", h.Auctions.Create)
	auction.GET("/", h.Auctions.List)
	auction.GET("/:id", h.Auctions.Get)
	auction.PUT("/:id", h.Auctions.Update)
	auction.DELETE("/:id", h.Auctions.Delete)

	bid := e.Group("/bid")
	bid.POST("/", h.Bids.Create)
	bid.GET("/auction/:id", h.Bids.ListByAuction)
	bid.GET("/:id", h.Bids.Get)
	bid.DELETE("/:id", h.Bids.Delete)

	feedback := e.Group("/feedback")
	feedback.POST("/", h.Feedback.Create)
	feedback.GET("/seller/:id", h.Feedback.ListBySeller)
	feedback.GET("/:id", h.Feedback.Get)
	feedback.DELETE("/:id", h.Feedback.Delete)
}
