package handler // handler defines http handlers

import (
    "errors"   // errors matches sentinel values from lower layers
    "log/slog" // slog records unexpected failures
    "net/http" // http defines status code constants

    "github.com/labstack/echo/v4" // echo defines request context types

    "github.com/iliyamo/exam-seating/internal/model"      // model exposes validation errors
    "github.com/iliyamo/exam-seating/internal/repository" // repository exposes storage errors
    "github.com/iliyamo/exam-seating/internal/service"    // service exposes planner errors
    "github.com/iliyamo/exam-seating/internal/session"    // session exposes session store errors
)

// errorBody is the JSON shape of every error response.
func errorBody(msg string) map[string]string { return map[string]string{"error": msg} }

// writeError maps an error from a lower layer onto an HTTP response.
// Unknown errors are logged and reported as 500 without details.
func writeError(c echo.Context, logger *slog.Logger, err error) error {
    switch {
    case errors.Is(err, model.ErrInvalid), errors.Is(err, service.ErrSeatOutOfRange): // bad input
        return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
    case errors.Is(err, repository.ErrHallNotFound): // unknown hall
        return c.JSON(http.StatusNotFound, errorBody("hall not found"))
    case errors.Is(err, repository.ErrCandidateNotFound): // unknown candidate
        return c.JSON(http.StatusNotFound, errorBody("candidate not found"))
    case errors.Is(err, session.ErrNotFound): // unknown or expired session
        return c.JSON(http.StatusNotFound, errorBody("session not found"))
    case errors.Is(err, repository.ErrConflict): // duplicate id
        return c.JSON(http.StatusConflict, errorBody("record already exists"))
    case errors.Is(err, session.ErrBusy): // lost the optimistic race too often
        return c.JSON(http.StatusConflict, errorBody(err.Error()))
    }
    if logger == nil {
        logger = slog.Default()
    }
    logger.Error("request failed", slog.String("route", c.Path()), slog.Any("err", err))
    return c.JSON(http.StatusInternalServerError, errorBody("internal error"))
}
