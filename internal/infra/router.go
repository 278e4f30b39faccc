package infra

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	apperrors "github.com/scb/customers/internal/errors"
	"github.com/scb/customers/internal/handlers"
	"github.com/scb/customers/internal/repository"
	"github.com/scb/customers/internal/service"
	"github.com/scb/customers/internal/validation"
	"github.com/scb/customers/pkg/db/transactor"
	"github.com/sirupsen/logrus"
)

// Router builds echo application with all routes registered
func Router(pgPool *pgxpool.Pool) (*echo.Echo, error) {
	e := echo.New()

	v, err := validation.Echo()
	if err != nil {
		return nil, err
	}
	e.Validator = v

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	e.HTTPErrorHandler = httpErrorHandler(e)

	// Transactors
	trx := transactor.NewPgxTransactor(pgPool)

	// Repositories
	customerRepo := repository.NewPostgresCustomerRepository(trx)

	// Services
	customerSvc := service.NewCustomerService(trx, customerRepo)

	// Handlers
	customerHandler := handlers.NewCustomerHTTPHandler(customerSvc)

	customersAPI := e.Group("/customers")
	customersAPI.GET("", customerHandler.GetAll)
	customersAPI.GET("/:id", customerHandler.Get)
	customersAPI.POST("", customerHandler.Post)
	customersAPI.PUT("/:id", customerHandler.Put)
	customersAPI.DELETE("/:id", customerHandler.DeleteByID)

	return e, nil
}

// httpErrorHandler converts typed errors raised by services to corresponding
// status code and delegates response rendering to echo default handler
func httpErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var notFoundErr *apperrors.NotFoundErr
		var conflictErr *apperrors.ConflictErr
		var payloadErr *validation.PayloadError
		var httpErr *echo.HTTPError

		switch {
		case errors.As(err, &notFoundErr):
			err = echo.NewHTTPError(http.StatusNotFound, notFoundErr.Error())
		case errors.As(err, &conflictErr):
			err = echo.NewHTTPError(http.StatusConflict, conflictErr)
		case errors.As(err, &payloadErr):
			err = echo.NewHTTPError(http.StatusBadRequest, payloadErr)
		case errors.As(err, &httpErr):
		default:
			logrus.WithField("requestId", c.Response().Header().Get(echo.HeaderXRequestID)).
				Errorf("request processing failed - %v", err)
		}

		e.DefaultHTTPErrorHandler(err, c)
	}
}
