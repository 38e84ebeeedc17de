package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kirill778/flowchart/repository"
	"github.com/kirill778/flowchart/services"
)

// mapServiceError translates service sentinels into HTTP statuses; anything
// unexpected stays a 500.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound),
		errors.Is(err, services.ErrNodeNotFound),
		errors.Is(err, services.ErrEdgeNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNoDiagram),
		errors.Is(err, services.ErrEdgeExists):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrSelfLoop),
		errors.Is(err, services.ErrEmptyInput),
		errors.Is(err, services.ErrInvalidDirection),
		errors.Is(err, services.ErrInvalidFormat):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrShareDisabled):
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
