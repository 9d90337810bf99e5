package http

import (
	"net/http"

	"roomdesk-backend/internal/assignment"
	"roomdesk-backend/internal/domain"
	"roomdesk-backend/internal/service"
)

type RoomHandler struct {
	roomSvc service.RoomService
	clock   assignment.Clock
}

func NewRoomHandler(roomSvc service.RoomService, clock assignment.Clock) *RoomHandler {
	return &RoomHandler{roomSvc: roomSvc, clock: clock}
}

// ListRooms returns the room cards for ?date= (today by default).
func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	day, err := parseDate("date", r.URL.Query().Get("date"), assignment.Today(h.clock))
	if err != nil {
		writeError(w, r, err)
		return
	}
	cards, err := h.roomSvc.RoomCards(r.Context(), day)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, roomsResponse{Date: day, Rooms: cards})
}

func (h *RoomHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req roomStatusRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	room, err := h.roomSvc.UpdateRoomStatus(r.Context(), id, domain.RoomStatus(req.Status))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}
