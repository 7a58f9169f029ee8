package handlers

import (
	"net/http"

	"github.com/DanielPopoola/yappy-pos-gateway/internal/domain/dto"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/interfaces/rest"
)

// HandleOpenDevice registers the POS device with the provider and returns
// the resulting session.
func (h *Handlers) HandleOpenDevice(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeBody(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	req, err := dto.NewOpenDeviceRequest(raw)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	session, err := h.deviceService.OpenDevice(r.Context(), *req)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteData(w, http.StatusOK, session.ToView())
}

// HandleCloseDevice closes a session. When the body does not name one, the
// most recently stored session is closed instead.
func (h *Handlers) HandleCloseDevice(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeBody(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	if raw["sessionId"] == nil || raw["sessionId"] == "" {
		sessionID, err := h.deviceService.LatestSessionID(r.Context())
		if err != nil {
			rest.WriteError(w, err, h.logger)
			return
		}
		raw["sessionId"] = sessionID
	}

	req, err := dto.NewCloseDeviceRequest(raw)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	summary, err := h.deviceService.CloseDevice(r.Context(), *req)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteData(w, http.StatusOK, summary)
}
