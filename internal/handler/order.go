package handler

import (
	"errors"
	"net/http"

	"github.com/efreitasn/matchcore/internal/domain"
	"github.com/efreitasn/matchcore/internal/service"
)

// OrderHandler handles HTTP requests for order placement.
type OrderHandler struct {
	venue *service.Venue
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(venue *service.Venue) *OrderHandler {
	return &OrderHandler{venue: venue}
}

// placeOrderRequest is the JSON request body for POST /orders. Price is
// required for limit orders and must be absent for mid orders.
type placeOrderRequest struct {
	ID       *int64   `json:"id"`
	Type     string   `json:"type"`
	Side     string   `json:"side"`
	Price    *float64 `json:"price"`
	Quantity float64  `json:"quantity"`
}

// placementResponse is the JSON response for a placed order.
type placementResponse struct {
	ReportID       string          `json:"report_id"`
	Trades         []tradeResponse `json:"trades"`
	FilledQuantity float64         `json:"filled_quantity"`
	VWAP           float64         `json:"vwap"`
	Remaining      float64         `json:"remaining"`
	Resting        bool            `json:"resting"`
}

// tradeResponse is a single fill in the placement response.
type tradeResponse struct {
	TakerID  int64   `json:"taker_id"`
	MakerID  int64   `json:"maker_id"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

// PlaceOrder handles POST /orders.
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if req.ID == nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "id is required")
		return
	}

	var result *service.PlacementResult
	var err error

	switch req.Type {
	case "limit":
		if req.Price == nil {
			WriteError(w, http.StatusBadRequest, "validation_error", "price is required for limit orders")
			return
		}
		result, err = h.venue.PlaceLimitOrder(service.PlaceLimitOrderRequest{
			ID:       *req.ID,
			Side:     domain.Direction(req.Side),
			Price:    *req.Price,
			Quantity: req.Quantity,
		})
	case "mid":
		if req.Price != nil {
			WriteError(w, http.StatusBadRequest, "validation_error", "mid orders must not carry a price")
			return
		}
		result, err = h.venue.PlaceMidOrder(service.PlaceMidOrderRequest{
			ID:       *req.ID,
			Side:     domain.Direction(req.Side),
			Quantity: req.Quantity,
		})
	default:
		WriteError(w, http.StatusBadRequest, "validation_error", `type must be "limit" or "mid"`)
		return
	}
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, buildPlacementResponse(result))
}

func buildPlacementResponse(result *service.PlacementResult) placementResponse {
	trades := make([]tradeResponse, len(result.Trades))
	for i, t := range result.Trades {
		trades[i] = tradeResponse{
			TakerID:  t.TakerID,
			MakerID:  t.MakerID,
			Price:    t.Price,
			Quantity: t.Quantity,
		}
	}
	return placementResponse{
		ReportID:       result.ReportID,
		Trades:         trades,
		FilledQuantity: result.FilledQuantity,
		VWAP:           result.VWAP,
		Remaining:      result.Remaining,
		Resting:        result.Resting,
	}
}

// mapDomainError maps core errors to HTTP responses.
func mapDomainError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrWrongOrderType):
		WriteError(w, http.StatusBadRequest, "wrong_order_type", err.Error())
	case errors.Is(err, domain.ErrEmptySide):
		WriteError(w, http.StatusNotFound, "empty_side", err.Error())
	case errors.Is(err, domain.ErrEmptyBook):
		WriteError(w, http.StatusNotFound, "empty_book", err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
