package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/YuGyeong-Kim02/mbtifortune/internal/app"
	"github.com/YuGyeong-Kim02/mbtifortune/internal/domain"
)

// genericFailureMsg is the only thing the client sees for upstream
// failures; the detail stays in the server log.
const genericFailureMsg = "운세 생성에 실패했어요. 잠시 후 다시 시도해 주세요."

type Handler struct {
	svc *app.FortuneService
}

func NewHandler(svc *app.FortuneService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.POST("/api/fortune", h.DailyFortune)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) DailyFortune(c echo.Context) error {
	// Credential check comes first: without it the body is irrelevant.
	if err := h.svc.Ready(); err != nil {
		return mapError(c, err)
	}

	var req FortuneRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request body could not be read"})
	}

	fortune, err := h.svc.DailyFortune(c.Request().Context(), app.FortuneRequest{
		MBTI:    req.MBTI,
		Concern: req.Concern,
	})
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, FortuneResponse{
		Headline:    fortune.Headline,
		Fortune:     fortune.Fortune,
		ActionSteps: fortune.ActionSteps,
		LuckyItem:   fortune.LuckyItem,
		EnergyLevel: fortune.EnergyLevel,
	})
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, domain.ErrInvalidMBTI):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrMissingAPIKey):
		slog.Error("missing credential", "request_id", requestID)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	default:
		slog.Error("fortune generation failed", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: genericFailureMsg})
	}
}
