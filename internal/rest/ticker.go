package rest

import (
	"encoding/json"
	"net/http"

	tickerDomain "github.com/muhammadchandra19/hodlinfo/internal/domain/ticker"
	"github.com/muhammadchandra19/hodlinfo/pkg/logger"
)

// FetchDataSuccessMessage is the body of a successful GET /fetch-data.
const FetchDataSuccessMessage = "Data fetched and stored successfully."

// TickerHandler serves the ticker endpoints.
type TickerHandler struct {
	usecase tickerDomain.Usecase
	logger  logger.Interface
}

// NewTickerHandler creates a new TickerHandler.
func NewTickerHandler(usecase tickerDomain.Usecase, logger logger.Interface) *TickerHandler {
	return &TickerHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// FetchData runs a sync and answers with a plain-text confirmation.
func (h *TickerHandler) FetchData(w http.ResponseWriter, r *http.Request) {
	if _, err := h.usecase.Sync(r.Context()); err != nil {
		writeText(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeText(w, http.StatusOK, FetchDataSuccessMessage)
}

// Tickers lists the stored tickers as a JSON array.
func (h *TickerHandler) Tickers(w http.ResponseWriter, r *http.Request) {
	tickers, err := h.usecase.List(r.Context())
	if err != nil {
		writeText(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(tickers); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to write tickers response", logger.Field{
			Key:   "error",
			Value: err.Error(),
		})
	}
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
