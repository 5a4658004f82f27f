package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/mesh-intelligence/lurelands/internal/engine"
	"github.com/mesh-intelligence/lurelands/pkg/types"
)

func (s *Server) routes(r *mux.Router) {
	p := r.PathPrefix("/players/{id}").Subrouter()
	p.HandleFunc("", s.getPlayer).Methods(http.MethodGet)
	p.HandleFunc("/inventory", s.getInventory).Methods(http.MethodGet)
	p.HandleFunc("/stats", s.getStats).Methods(http.MethodGet)
	p.HandleFunc("/quests", s.getQuests).Methods(http.MethodGet)
	p.HandleFunc("/events", s.getEvents).Methods(http.MethodGet)

	p.HandleFunc("/join", s.join).Methods(http.MethodPost)
	p.HandleFunc("/leave", s.leave).Methods(http.MethodPost)
	p.HandleFunc("/name", s.rename).Methods(http.MethodPost)
	p.HandleFunc("/position", s.position).Methods(http.MethodPost)
	p.HandleFunc("/cast", s.cast).Methods(http.MethodPost)
	p.HandleFunc("/cast/stop", s.stopCast).Methods(http.MethodPost)
	p.HandleFunc("/catch", s.catch).Methods(http.MethodPost)
	p.HandleFunc("/sell", s.sell).Methods(http.MethodPost)
	p.HandleFunc("/buy", s.buy).Methods(http.MethodPost)
	p.HandleFunc("/equip", s.equip).Methods(http.MethodPost)
	p.HandleFunc("/unequip", s.unequip).Methods(http.MethodPost)
	p.HandleFunc("/xp", s.xp).Methods(http.MethodPost)
	p.HandleFunc("/gold/{op:add|spend|set}", s.gold).Methods(http.MethodPost)
	p.HandleFunc("/quests/{quest}/accept", s.acceptQuest).Methods(http.MethodPost)
	p.HandleFunc("/quests/{quest}/complete", s.completeQuest).Methods(http.MethodPost)
	p.HandleFunc("/npcs/{npc}/interact", s.interact).Methods(http.MethodPost)

	r.HandleFunc("/catches/{id}/release", s.release).Methods(http.MethodPost)
}

// mutate decodes the request body into req, runs fn and answers 204.
func mutate[T any](s *Server, fn func(r *http.Request, id string, req T) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req T
		if err := decode(r, &req); err != nil {
			s.writeError(w, err)
			return
		}
		if err := fn(r, mux.Vars(r)["id"], req); err != nil {
			s.writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type joinRequest struct {
	Name  string `json:"name"`
	Color uint32 `json:"color"`
}

func (s *Server) join(w http.ResponseWriter, r *http.Request) {
	mutate(s, func(r *http.Request, id string, req joinRequest) error {
		return s.engine.JoinWorld(r.Context(), id, req.Name, req.Color)
	})(w, r)
}

func (s *Server) leave(w http.ResponseWriter, r *http.Request) {
	mutate(s, func(r *http.Request, id string, _ struct{}) error {
		return s.engine.LeaveWorld(r.Context(), id)
	})(w, r)
}

type nameRequest struct {
	Name string `json:"name"`
}

func (s *Server) rename(w http.ResponseWriter, r *http.Request) {
	mutate(s, func(r *http.Request, id string, req nameRequest) error {
		return s.engine.UpdatePlayerName(r.Context(), id, req.Name)
	})(w, r)
}

type positionRequest struct {
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Facing float32 `json:"facing"`
}

func (s *Server) position(w http.ResponseWriter, r *http.Request) {
	mutate(s, func(r *http.Request, id string, req positionRequest) error {
		return s.engine.UpdatePosition(r.Context(), id, req.X, req.Y, req.Facing)
	})(w, r)
}

type castRequest struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

func (s *Server) cast(w http.ResponseWriter, r *http.Request) {
	mutate(s, func(r *http.Request, id string, req castRequest) error {
		return s.engine.StartCasting(r.Context(), id, req.X, req.Y)
	})(w, r)
}

func (s *Server) stopCast(w http.ResponseWriter, r *http.Request) {
	mutate(s, func(r *http.Request, id string, _ struct{}) error {
		return s.engine.StopCasting(r.Context(), id)
	})(w, r)
}

func (s *Server) catch(w http.ResponseWriter, r *http.Request) {
	var req engine.Catch
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	req.PlayerID = mux.Vars(r)["id"]
	catchID, err := s.engine.CatchFish(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"catch_id": catchID})
}

type sellRequest struct {
	ItemID   string `json:"item_id"`
	Rarity   uint8  `json:"rarity"`
	Quantity uint32 `json:"quantity"`
}

func (s *Server) sell(w http.ResponseWriter, r *http.Request) {
	var req sellRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	total, err := s.engine.SellItem(r.Context(), mux.Vars(r)["id"], req.ItemID, req.Rarity, req.Quantity)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint32{"gold": total})
}

type itemRequest struct {
	ItemID string `json:"item_id"`
}

func (s *Server) buy(w http.ResponseWriter, r *http.Request) {
	mutate(s, func(r *http.Request, id string, req itemRequest) error {
		return s.engine.BuyItem(r.Context(), id, req.ItemID)
	})(w, r)
}

func (s *Server) equip(w http.ResponseWriter, r *http.Request) {
	mutate(s, func(r *http.Request, id string, req itemRequest) error {
		return s.engine.EquipPole(r.Context(), id, req.ItemID)
	})(w, r)
}

func (s *Server) unequip(w http.ResponseWriter, r *http.Request) {
	mutate(s, func(r *http.Request, id string, _ struct{}) error {
		return s.engine.UnequipPole(r.Context(), id)
	})(w, r)
}

type xpRequest struct {
	Amount uint64 `json:"amount"`
	Source string `json:"source"`
}

func (s *Server) xp(w http.ResponseWriter, r *http.Request) {
	mutate(s, func(r *http.Request, id string, req xpRequest) error {
		return s.engine.AddXP(r.Context(), id, req.Amount, req.Source)
	})(w, r)
}

type goldRequest struct {
	Amount uint32 `json:"amount"`
}

func (s *Server) gold(w http.ResponseWriter, r *http.Request) {
	mutate(s, func(r *http.Request, id string, req goldRequest) error {
		switch mux.Vars(r)["op"] {
		case "add":
			return s.engine.AddGold(r.Context(), id, req.Amount)
		case "spend":
			return s.engine.SpendGold(r.Context(), id, req.Amount)
		default:
			return s.engine.SetGold(r.Context(), id, req.Amount)
		}
	})(w, r)
}

func (s *Server) acceptQuest(w http.ResponseWriter, r *http.Request) {
	mutate(s, func(r *http.Request, id string, _ struct{}) error {
		return s.engine.AcceptQuest(r.Context(), id, mux.Vars(r)["quest"])
	})(w, r)
}

func (s *Server) completeQuest(w http.ResponseWriter, r *http.Request) {
	mutate(s, func(r *http.Request, id string, _ struct{}) error {
		return s.engine.CompleteQuest(r.Context(), id, mux.Vars(r)["quest"])
	})(w, r)
}

type interactRequest struct {
	Kind string `json:"kind"`
}

func (s *Server) interact(w http.ResponseWriter, r *http.Request) {
	mutate(s, func(r *http.Request, id string, req interactRequest) error {
		return s.engine.RecordNPCInteraction(r.Context(), id, mux.Vars(r)["npc"], req.Kind)
	})(w, r)
}

func (s *Server) release(w http.ResponseWriter, r *http.Request) {
	mutate(s, func(r *http.Request, id string, _ struct{}) error {
		return s.engine.ReleaseFish(r.Context(), id)
	})(w, r)
}

func (s *Server) getPlayer(w http.ResponseWriter, r *http.Request) {
	p, err := s.engine.Player(r.Context(), mux.Vars(r)["id"])
	s.read(w, playerJSON(p), err)
}

func (s *Server) getInventory(w http.ResponseWriter, r *http.Request) {
	stacks, err := s.engine.Inventory(r.Context(), mux.Vars(r)["id"])
	out := make([]stackView, 0, len(stacks))
	for _, st := range stacks {
		out = append(out, stackView{ID: st.ID, ItemID: st.ItemID, Rarity: st.Rarity, Quantity: st.Quantity})
	}
	s.read(w, out, err)
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.engine.Stats(r.Context(), mux.Vars(r)["id"])
	s.read(w, statsJSON(st), err)
}

func (s *Server) getQuests(w http.ResponseWriter, r *http.Request) {
	board, err := s.engine.AvailableQuests(r.Context(), mux.Vars(r)["id"])
	s.read(w, board, err)
}

func (s *Server) getEvents(w http.ResponseWriter, r *http.Request) {
	filter, err := eventFilter(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	filter.PlayerID = mux.Vars(r)["id"]
	evs, err := s.engine.Events(r.Context(), filter)
	if evs == nil {
		evs = []*types.GameEvent{}
	}
	s.read(w, evs, err)
}

func (s *Server) read(w http.ResponseWriter, v any, err error) {
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// eventFilter parses the type, since (RFC 3339) and limit query parameters.
func eventFilter(r *http.Request) (types.EventFilter, error) {
	q := r.URL.Query()
	f := types.EventFilter{EventType: q.Get("type")}
	if v := q.Get("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, fmt.Errorf("%w: since: %v", errBadRequest, err)
		}
		f.Since = t
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, fmt.Errorf("%w: limit must be a non-negative integer", errBadRequest)
		}
		f.Limit = n
	}
	return f, nil
}
