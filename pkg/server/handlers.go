package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vango-dev/signalgraph/internal/errors"
	"github.com/vango-dev/signalgraph/pkg/building"
	"github.com/vango-dev/signalgraph/pkg/reactive"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// target resolves the {kind} and {id} URL parameters.
func target(r *http.Request) (resolver, int, error) {
	kind := chi.URLParam(r, "kind")
	res, ok := kinds[kind]
	if !ok {
		return nil, 0, errors.New("G020").WithDetail(fmt.Sprintf("unknown entity kind %q", kind))
	}
	id, err := parseID(r)
	if err != nil {
		return nil, 0, err
	}
	return res, id, nil
}

func parseID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest(fmt.Sprintf("invalid id %q", raw))
	}
	return id, nil
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	res, id, err := target(r)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	view, err := res.snapshot(s.root, id)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleField(w http.ResponseWriter, r *http.Request) {
	sig, err := s.resolveField(r)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	v, err := reactive.Sample(sig)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, valueFrame{Value: v})
}

func (s *Server) resolveField(r *http.Request) (reactive.Signal[any], error) {
	res, id, err := target(r)
	if err != nil {
		return nil, err
	}
	return res.field(s.root, id, chi.URLParam(r, "field"))
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	switch kind := chi.URLParam(r, "kind"); kind {
	case "rooms":
		s.handleUpdateRoom(w, r)
	case "windows":
		s.handleUpdateWindow(w, r)
	case "houses":
		writeError(w, http.StatusBadRequest, badRequest("houses have no stored fields"))
	default:
		err := errors.New("G020").WithDetail(fmt.Sprintf("unknown entity kind %q", kind))
		writeError(w, statusFor(err), err)
	}
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	switch kind := chi.URLParam(r, "kind"); kind {
	case "houses":
		s.handleCreateHouse(w, r)
	case "rooms":
		s.handleCreateRoom(w, r)
	case "windows":
		s.handleCreateWindow(w, r)
	default:
		err := errors.New("G020").WithDetail(fmt.Sprintf("unknown entity kind %q", kind))
		writeError(w, statusFor(err), err)
	}
}

// dimensions is the body of update requests. Absent fields are unchanged.
type dimensions struct {
	Length *float64 `json:"length"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
}

func (d dimensions) validate() error {
	for name, v := range map[string]*float64{"length": d.Length, "width": d.Width, "height": d.Height} {
		if v != nil && *v < 0 {
			return badRequest(name + " must not be negative")
		}
	}
	return nil
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest("invalid request body: " + err.Error())
	}
	return nil
}

func (s *Server) handleUpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	room, ok := s.root.Room(id)
	if !ok {
		err := errors.New("G020").WithDetail(fmt.Sprintf("room %d", id))
		writeError(w, statusFor(err), err)
		return
	}

	var body dimensions
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := body.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if body.Length != nil {
		room.SetLength(*body.Length)
	}
	if body.Width != nil {
		room.SetWidth(*body.Width)
	}
	if body.Height != nil {
		room.SetHeight(*body.Height)
	}
	writeJSON(w, http.StatusOK, viewRoom(room))
}

func (s *Server) handleUpdateWindow(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	window, ok := s.root.Window(id)
	if !ok {
		err := errors.New("G020").WithDetail(fmt.Sprintf("window %d", id))
		writeError(w, statusFor(err), err)
		return
	}

	var body dimensions
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.Length != nil {
		writeError(w, http.StatusBadRequest, badRequest("windows have no length"))
		return
	}
	if err := body.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if body.Width != nil {
		window.SetWidth(*body.Width)
	}
	if body.Height != nil {
		window.SetHeight(*body.Height)
	}
	writeJSON(w, http.StatusOK, viewWindow(window))
}

func (s *Server) handleCreateHouse(w http.ResponseWriter, r *http.Request) {
	var body houseView
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.root.House(body.ID); exists {
		writeError(w, http.StatusConflict, badRequest(fmt.Sprintf("house %d already exists", body.ID)))
		return
	}
	h := building.NewHouse(s.root, body.ID)
	s.logger.Info("entity created", "kind", "house", "id", body.ID)
	writeJSON(w, http.StatusCreated, viewHouse(h))
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var body roomView
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.Length < 0 || body.Width < 0 || body.Height < 0 {
		writeError(w, http.StatusBadRequest, badRequest("dimensions must not be negative"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.root.Room(body.ID); exists {
		writeError(w, http.StatusConflict, badRequest(fmt.Sprintf("room %d already exists", body.ID)))
		return
	}
	if _, ok := s.root.House(body.HouseID); !ok {
		writeError(w, http.StatusBadRequest, badRequest(fmt.Sprintf("unknown house %d", body.HouseID)))
		return
	}
	room := building.NewRoom(s.root, body.ID, body.HouseID, body.Length, body.Width, body.Height)
	s.logger.Info("entity created", "kind", "room", "id", body.ID, "house", body.HouseID)
	writeJSON(w, http.StatusCreated, viewRoom(room))
}

func (s *Server) handleCreateWindow(w http.ResponseWriter, r *http.Request) {
	var body windowView
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.Width < 0 || body.Height < 0 {
		writeError(w, http.StatusBadRequest, badRequest("dimensions must not be negative"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.root.Window(body.ID); exists {
		writeError(w, http.StatusConflict, badRequest(fmt.Sprintf("window %d already exists", body.ID)))
		return
	}
	if _, ok := s.root.Room(body.RoomID); !ok {
		writeError(w, http.StatusBadRequest, badRequest(fmt.Sprintf("unknown room %d", body.RoomID)))
		return
	}
	window := building.NewWindow(s.root, body.ID, body.RoomID, body.Width, body.Height)
	s.logger.Info("entity created", "kind", "window", "id", body.ID, "room", body.RoomID)
	writeJSON(w, http.StatusCreated, viewWindow(window))
}
