package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance: panic recovery, request validation
// against openapi.yaml, the swagger UI at /swagger/ and every API route.
func NewRouter(s *Server) (*echo.Echo, error) {
	doc, err := LoadSwagger()
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}
	RegisterSwaggerDoc(doc)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(validator)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	RegisterHandlers(e, s)
	return e, nil
}
