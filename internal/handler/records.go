package handler

import (
    "context"
    "log/slog"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/exam-seating/internal/model"
)

// HallStore is the hall persistence used by RecordHandler.
type HallStore interface {
    Create(ctx context.Context, h *model.Hall) error
    GetByID(ctx context.Context, id string) (*model.Hall, error)
    List(ctx context.Context) ([]model.Hall, error)
    Update(ctx context.Context, h *model.Hall) error
    Delete(ctx context.Context, id string) error
}

// CandidateStore is the roster persistence used by RecordHandler.
type CandidateStore interface {
    Create(ctx context.Context, c *model.Candidate) error
    GetByID(ctx context.Context, id string) (*model.Candidate, error)
    List(ctx context.Context) ([]model.Candidate, error)
    Delete(ctx context.Context, id string) error
}

// RecordHandler serves the hall and candidate records the engine reads.
// Records are validated here, before they can reach the engine.
type RecordHandler struct {
    Halls      HallStore
    Candidates CandidateStore
    Logger     *slog.Logger
}

// NewRecordHandler panics if a store is nil.
func NewRecordHandler(halls HallStore, candidates CandidateStore, logger *slog.Logger) *RecordHandler {
    if halls == nil || candidates == nil {
        panic("nil store passed to NewRecordHandler")
    }
    return &RecordHandler{Halls: halls, Candidates: candidates, Logger: logger}
}

func groupNames() []string {
    out := make([]string, len(model.Groups))
    for i, g := range model.Groups {
        out[i] = string(g)
    }
    return out
}

// ListHalls handles GET /v1/halls.
func (h *RecordHandler) ListHalls(c echo.Context) error {
    halls, err := h.Halls.List(c.Request().Context())
    if err != nil {
        return writeError(c, h.Logger, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": halls})
}

// GetHall handles GET /v1/halls/:id.
func (h *RecordHandler) GetHall(c echo.Context) error {
    hall, err := h.Halls.GetByID(c.Request().Context(), c.Param("id"))
    if err != nil {
        return writeError(c, h.Logger, err)
    }
    return c.JSON(http.StatusOK, hall)
}

// CreateHall handles POST /v1/halls.
func (h *RecordHandler) CreateHall(c echo.Context) error {
    var body model.Hall
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
    }
    body.ID = strings.TrimSpace(body.ID)
    body.Name = strings.TrimSpace(body.Name)
    if body.Capacity == 0 {
        body.Capacity = body.Rows * body.Cols // default advisory capacity to the grid size
    }
    if err := model.ValidateHall(body); err != nil {
        return writeError(c, h.Logger, err)
    }
    if err := h.Halls.Create(c.Request().Context(), &body); err != nil {
        return writeError(c, h.Logger, err)
    }
    return c.JSON(http.StatusCreated, body)
}

// UpdateHall handles PUT /v1/halls/:id.  The path id wins over any id in
// the body.
func (h *RecordHandler) UpdateHall(c echo.Context) error {
    var body model.Hall
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
    }
    body.ID = c.Param("id")
    body.Name = strings.TrimSpace(body.Name)
    if err := model.ValidateHall(body); err != nil {
        return writeError(c, h.Logger, err)
    }
    if err := h.Halls.Update(c.Request().Context(), &body); err != nil {
        return writeError(c, h.Logger, err)
    }
    return c.JSON(http.StatusOK, body)
}

// DeleteHall handles DELETE /v1/halls/:id.
func (h *RecordHandler) DeleteHall(c echo.Context) error {
    if err := h.Halls.Delete(c.Request().Context(), c.Param("id")); err != nil {
        return writeError(c, h.Logger, err)
    }
    return c.NoContent(http.StatusNoContent)
}

// ListCandidates handles GET /v1/candidates.  ?group= filters by group.
func (h *RecordHandler) ListCandidates(c echo.Context) error {
    cands, err := h.Candidates.List(c.Request().Context())
    if err != nil {
        return writeError(c, h.Logger, err)
    }
    if g := strings.ToUpper(strings.TrimSpace(c.QueryParam("group"))); g != "" {
        filtered := make([]model.Candidate, 0, len(cands))
        for _, cand := range cands {
            if string(cand.Group) == g {
                filtered = append(filtered, cand)
            }
        }
        cands = filtered
    }
    return c.JSON(http.StatusOK, echo.Map{"items": cands})
}

// GetCandidate handles GET /v1/candidates/:id.
func (h *RecordHandler) GetCandidate(c echo.Context) error {
    cand, err := h.Candidates.GetByID(c.Request().Context(), c.Param("id"))
    if err != nil {
        return writeError(c, h.Logger, err)
    }
    return c.JSON(http.StatusOK, cand)
}

// CreateCandidate handles POST /v1/candidates.  Group codes are accepted in
// any case.
func (h *RecordHandler) CreateCandidate(c echo.Context) error {
    var body model.Candidate
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
    }
    body.ID = strings.TrimSpace(body.ID)
    body.Name = strings.TrimSpace(body.Name)
    body.Group = model.Group(strings.ToUpper(strings.TrimSpace(string(body.Group))))
    if err := model.ValidateCandidate(body); err != nil {
        return writeError(c, h.Logger, err)
    }
    if err := h.Candidates.Create(c.Request().Context(), &body); err != nil {
        return writeError(c, h.Logger, err)
    }
    return c.JSON(http.StatusCreated, body)
}

// DeleteCandidate handles DELETE /v1/candidates/:id.
func (h *RecordHandler) DeleteCandidate(c echo.Context) error {
    if err := h.Candidates.Delete(c.Request().Context(), c.Param("id")); err != nil {
        return writeError(c, h.Logger, err)
    }
    return c.NoContent(http.StatusNoContent)
}
