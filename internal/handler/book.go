package handler

import (
	"net/http"
	"strconv"

	"github.com/efreitasn/matchcore/internal/domain"
	"github.com/efreitasn/matchcore/internal/service"
)

// BookHandler handles HTTP requests for book-state queries.
type BookHandler struct {
	venue *service.Venue
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(venue *service.Venue) *BookHandler {
	return &BookHandler{venue: venue}
}

// levelResponse is one aggregated price level in the book response.
type levelResponse struct {
	Price         float64 `json:"price"`
	TotalQuantity float64 `json:"total_quantity"`
}

// bookResponse is the JSON response for GET /book.
type bookResponse struct {
	Bids    []levelResponse `json:"bids"`
	Asks    []levelResponse `json:"asks"`
	BestBid *float64        `json:"best_bid"`
	BestAsk *float64        `json:"best_ask"`
	Mid     *float64        `json:"mid"`
	Spread  *float64        `json:"spread"`
}

// restingOrderResponse is one resting order in GET /book/orders.
type restingOrderResponse struct {
	ID        int64   `json:"id"`
	Side      string  `json:"side"`
	Price     float64 `json:"price"`
	Quantity  float64 `json:"quantity"`
	Remaining float64 `json:"remaining"`
}

// vwapResponse is the JSON response for GET /book/vwap.
type vwapResponse struct {
	Side *string `json:"side"`
	VWAP float64 `json:"vwap"`
}

// GetBook handles GET /book.
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	snap := h.venue.Snapshot()

	resp := bookResponse{
		Bids:    toLevelResponses(snap.Bids),
		Asks:    toLevelResponses(snap.Asks),
		BestBid: snap.BestBid,
		BestAsk: snap.BestAsk,
		Mid:     snap.Mid,
		Spread:  snap.Spread,
	}
	WriteJSON(w, http.StatusOK, resp)
}

// GetOrdersAtPrice handles GET /book/orders?price=.
func (h *BookHandler) GetOrdersAtPrice(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("price")
	if raw == "" {
		WriteError(w, http.StatusBadRequest, "validation_error", "price query parameter is required")
		return
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "price must be a number")
		return
	}

	orders, err := h.venue.OrdersAtPrice(price)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	resp := make([]restingOrderResponse, len(orders))
	for i, o := range orders {
		resp[i] = restingOrderResponse{
			ID:        o.ID,
			Side:      string(o.Side),
			Price:     o.Price,
			Quantity:  o.Quantity,
			Remaining: o.Remaining,
		}
	}
	WriteJSON(w, http.StatusOK, resp)
}

// GetVWAP handles GET /book/vwap with an optional side query parameter.
func (h *BookHandler) GetVWAP(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("side")

	var vwap float64
	var err error
	var side *string

	if raw == "" {
		vwap, err = h.venue.VWAPBook()
	} else {
		vwap, err = h.venue.VWAPSide(domain.Direction(raw))
		side = &raw
	}
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, vwapResponse{Side: side, VWAP: vwap})
}

func toLevelResponses(levels []service.LevelSnapshot) []levelResponse {
	out := make([]levelResponse, len(levels))
	for i, lvl := range levels {
		out[i] = levelResponse{Price: lvl.Price, TotalQuantity: lvl.TotalQuantity}
	}
	return out
}
