package handler // declare the package name; contains HTTP handlers

import (
    "net/http" // net/http provides status codes and response helpers

    "github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Health is a simple health‑check endpoint used by load balancers and
// monitoring systems to verify that the service is running.  It returns
// a plain text "ok" message with an HTTP 200 status code.
func Health(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}

// Groups lists the accepted candidate groups so clients can build pickers
// and colour legends without hard-coding them.
func Groups(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"groups": groupNames()})
}
