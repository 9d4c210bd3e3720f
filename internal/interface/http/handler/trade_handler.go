package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/swapo-org/swapo-backend/internal/interface/http/dto"
	"github.com/swapo-org/swapo-backend/internal/interface/http/response"
	"github.com/swapo-org/swapo-backend/internal/usecase/trade"
)

type TradeHandler struct {
	startTradeUC    *trade.StartTradeUseCase
	completeTradeUC *trade.CompleteTradeUseCase
	getTradeUC      *trade.GetTradeUseCase
	listTradesUC    *trade.ListTradesUseCase
}

func NewTradeHandler(
	startTradeUC *trade.StartTradeUseCase,
	completeTradeUC *trade.CompleteTradeUseCase,
	getTradeUC *trade.GetTradeUseCase,
	listTradesUC *trade.ListTradesUseCase,
) *TradeHandler {
	return &TradeHandler{
		startTradeUC:    startTradeUC,
		completeTradeUC: completeTradeUC,
		getTradeUC:      getTradeUC,
		listTradesUC:    listTradesUC,
	}
}

// ListTrades обрабатывает GET /trades: только обмены текущего пользователя.
func (h *TradeHandler) ListTrades(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	trades, err := h.listTradesUC.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToTradeResponses(trades))
}

func (h *TradeHandler) GetTrade(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	tradeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	t, err := h.getTradeUC.Execute(c.Request.Context(), tradeID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToTradeResponse(t))
}

func (h *TradeHandler) StartTrade(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	tradeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	t, err := h.startTradeUC.Execute(c.Request.Context(), tradeID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToTradeResponse(t))
}

func (h *TradeHandler) CompleteTrade(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	tradeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	t, err := h.completeTradeUC.Execute(c.Request.Context(), tradeID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToTradeResponse(t))
}
