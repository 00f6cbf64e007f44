package handler

import (
	"net/http"
	"strings"

	"github.com/iho/dairyledger/internal/adapter/http/dto"
	"github.com/iho/dairyledger/internal/domain"
	"github.com/iho/dairyledger/internal/usecase"
)

// CalendarHandler converts dates between the AD and BS calendars.
type CalendarHandler struct {
	conv  domain.DateConverter
	clock usecase.Clock
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(conv domain.DateConverter, clock usecase.Clock) *CalendarHandler {
	return &CalendarHandler{conv: conv, clock: clock}
}

// ToBS converts ?date=YYYY-MM-DD (AD, today by default) to BS.
func (h *CalendarHandler) ToBS(w http.ResponseWriter, r *http.Request) {
	ad, err := dto.ParseOptionalDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}
	if ad.IsZero() {
		ad = domain.NewDate(h.clock.Now())
	}

	writeJSON(w, http.StatusOK, dto.CalendarResponse{AD: ad, BS: h.conv.ToBS(ad)})
}

// ToAD converts ?date=YYYY-MM-DD (BS) to AD.
func (h *CalendarHandler) ToAD(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("date"))
	if raw == "" {
		writeError(w, http.StatusBadRequest, "missing date", "")
		return
	}

	bs, err := domain.ParseBSDate(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CalendarResponse{AD: h.conv.ToAD(bs), BS: bs})
}
