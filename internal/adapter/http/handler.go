package httpadapter

import (
	"context"
	"encoding/json"
	"errors"

	"ouroverse/internal/app/ports"
	"ouroverse/internal/app/session"
	"ouroverse/internal/domain/serpent"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	Session *session.Session
	KPI     kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	api := s.Group("/api")
	api.GET("/state", h.state)

	act := api.Group("/action")
	act.POST("/feed", h.feed)
	act.POST("/buy/:id", h.buy)
	act.POST("/shed", h.shed)
	act.POST("/ascend", h.ascend)
	act.POST("/frenzy", h.frenzy)
	act.POST("/save", h.save)

	s.GET("/ops/kpi", h.kpi)
}

type feedRequest struct {
	ClientResult string `json:"client_result,omitempty"`
}

type ascendRequest struct {
	Purchases []string `json:"purchases,omitempty"`
}

func (h Handler) state(c context.Context, ctx *app.RequestContext) {
	view, err := h.Session.State(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, view)
}

func (h Handler) feed(c context.Context, ctx *app.RequestContext) {
	var body feedRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.Session.Feed(c, session.FeedRequest{
		ClientResult: serpent.Outcome(body.ClientResult),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) buy(c context.Context, ctx *app.RequestContext) {
	upgradeID := string(ctx.Param("id"))
	if upgradeID == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_upgrade_id", "missing upgrade id")
		return
	}

	view, err := h.Session.Buy(c, upgradeID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, view)
}

func (h Handler) shed(c context.Context, ctx *app.RequestContext) {
	resp, err := h.Session.Shed(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) ascend(c context.Context, ctx *app.RequestContext) {
	var body ascendRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.Session.Ascend(c, session.AscendRequest{Purchases: body.Purchases})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) frenzy(c context.Context, ctx *app.RequestContext) {
	view, err := h.Session.StartFrenzy(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, view)
}

func (h Handler) save(c context.Context, ctx *app.RequestContext) {
	resp, err := h.Session.Save(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, session.ErrInvalidOutcome):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_client_result", err.Error())
	case errors.Is(err, session.ErrUnknownUpgrade):
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_upgrade", err.Error())
	case errors.Is(err, session.ErrUpgradeMaxed):
		writeErrorBody(ctx, consts.StatusConflict, "upgrade_maxed", err.Error())
	case errors.Is(err, session.ErrUpgradeLocked):
		writeErrorBody(ctx, consts.StatusConflict, "upgrade_locked", err.Error())
	case errors.Is(err, session.ErrCannotAfford):
		writeErrorBody(ctx, consts.StatusConflict, "cannot_afford", err.Error())
	case errors.Is(err, session.ErrShedUnavailable):
		writeErrorBody(ctx, consts.StatusConflict, "shed_unavailable", err.Error())
	case errors.Is(err, session.ErrAscendUnavailable):
		writeErrorBody(ctx, consts.StatusConflict, "ascend_unavailable", err.Error())
	case errors.Is(err, session.ErrFrenzyActive):
		writeErrorBody(ctx, consts.StatusConflict, "frenzy_active", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
