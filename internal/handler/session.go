package handler

import (
    "log/slog"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/exam-seating/internal/middleware"
    "github.com/iliyamo/exam-seating/internal/model"
    "github.com/iliyamo/exam-seating/internal/seating"
    "github.com/iliyamo/exam-seating/internal/service"
)

// SessionHandler exposes generation and manual overrides.  Every response
// that carries an arrangement also carries its freshly computed conflicts.
type SessionHandler struct {
    Planner *service.Planner
    Logger  *slog.Logger
}

// NewSessionHandler panics if planner is nil.
func NewSessionHandler(planner *service.Planner, logger *slog.Logger) *SessionHandler {
    if planner == nil {
        panic("nil planner passed to NewSessionHandler")
    }
    return &SessionHandler{Planner: planner, Logger: logger}
}

type generateRequest struct {
    Seed *int64 `json:"seed"` // optional; omitted means a fresh seed
}

type moveRequest struct {
    CandidateID string `json:"candidate_id"`
    HallID      string `json:"hall_id"`
    Row         *int   `json:"row"`
    Col         *int   `json:"col"`
}

type unassignRequest struct {
    CandidateID string `json:"candidate_id"`
}

// overrideResponse reports whether the override changed anything next to
// the resulting view.  changed=false is not an error.
type overrideResponse struct {
    Changed bool `json:"changed"`
    *service.View
}

// Generate handles POST /v1/sessions.
func (h *SessionHandler) Generate(c echo.Context) error {
    var body generateRequest
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
    }
    v, err := h.Planner.Generate(c.Request().Context(), body.Seed)
    if err != nil {
        return writeError(c, h.Logger, err)
    }
    return c.JSON(http.StatusCreated, v)
}

// Regenerate handles POST /v1/sessions/:id/regenerate.
func (h *SessionHandler) Regenerate(c echo.Context) error {
    var body generateRequest
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
    }
    v, err := h.Planner.Regenerate(c.Request().Context(), c.Param("id"), body.Seed)
    if err != nil {
        return writeError(c, h.Logger, err)
    }
    return c.JSON(http.StatusOK, v)
}

// Get handles GET /v1/sessions/:id.
func (h *SessionHandler) Get(c echo.Context) error {
    v, err := h.Planner.Get(c.Request().Context(), c.Param("id"))
    if err != nil {
        return writeError(c, h.Logger, err)
    }
    return c.JSON(http.StatusOK, v)
}

// Conflicts handles GET /v1/sessions/:id/conflicts.
func (h *SessionHandler) Conflicts(c echo.Context) error {
    keys, err := h.Planner.Conflicts(c.Request().Context(), c.Param("id"))
    if err != nil {
        return writeError(c, h.Logger, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"conflicts": keys, "count": len(keys)})
}

// Move handles POST /v1/sessions/:id/move.  Moving onto an occupied seat
// swaps the two candidates.
func (h *SessionHandler) Move(c echo.Context) error {
    var body moveRequest
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
    }
    body.CandidateID = strings.TrimSpace(body.CandidateID)
    if body.CandidateID == "" || body.HallID == "" || body.Row == nil || body.Col == nil {
        return c.JSON(http.StatusBadRequest, errorBody("candidate_id, hall_id, row and col are required"))
    }
    op := seating.MoveOp{
        CandidateID: body.CandidateID,
        To:          model.Coordinate{HallID: body.HallID, Row: *body.Row, Col: *body.Col},
    }
    return h.apply(c, op)
}

// Unassign handles POST /v1/sessions/:id/unassign.
func (h *SessionHandler) Unassign(c echo.Context) error {
    var body unassignRequest
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
    }
    if strings.TrimSpace(body.CandidateID) == "" {
        return c.JSON(http.StatusBadRequest, errorBody("candidate_id is required"))
    }
    return h.apply(c, seating.UnassignOp{CandidateID: strings.TrimSpace(body.CandidateID)})
}

func (h *SessionHandler) apply(c echo.Context, op seating.Operation) error {
    v, changed, err := h.Planner.Apply(c.Request().Context(), c.Param("id"), op)
    if err != nil {
        return writeError(c, h.Logger, err)
    }
    return c.JSON(http.StatusOK, overrideResponse{Changed: changed, View: v})
}

// Publish handles POST /v1/sessions/:id/publish.
func (h *SessionHandler) Publish(c echo.Context) error {
    pub, err := h.Planner.Publish(c.Request().Context(), c.Param("id"), middleware.Subject(c))
    if err != nil {
        return writeError(c, h.Logger, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "arrangement_id": pub.ID,
        "session_id":     pub.SessionID,
        "seed":           pub.Seed,
        "seats":          len(pub.Seats),
        "conflicts":      pub.Conflicts,
        "published_at":   pub.PublishedAt,
    })
}
