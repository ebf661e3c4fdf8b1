package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/agorasim/agora/internal/domain"
	"github.com/agorasim/agora/internal/sim"
)

// SimulationHandler serves read-only views of the latest published
// simulation snapshot. It never touches the live model.
type SimulationHandler struct {
	holder *sim.StateHolder
}

func NewSimulationHandler(holder *sim.StateHolder) *SimulationHandler {
	return &SimulationHandler{holder: holder}
}

// State returns the full snapshot: tick, agents, essays, critiques,
// schools and the current topic agenda.
func (h *SimulationHandler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.holder.State())
}

func (h *SimulationHandler) Agents(w http.ResponseWriter, r *http.Request) {
	agents := h.holder.State().Agents
	if agents == nil {
		agents = []domain.PhilosopherState{}
	}
	writeJSON(w, http.StatusOK, agents)
}

func (h *SimulationHandler) AgentByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid agent id")
		return
	}

	for _, a := range h.holder.State().Agents {
		if a.ID == id {
			writeJSON(w, http.StatusOK, a)
			return
		}
	}
	writeError(w, http.StatusNotFound, "agent not found")
}

// Essays lists every essay in the snapshot, optionally filtered by the
// topic query parameter.
func (h *SimulationHandler) Essays(w http.ResponseWriter, r *http.Request) {
	essays := h.holder.State().Essays
	if essays == nil {
		essays = []domain.Essay{}
	}

	if raw := r.URL.Query().Get("topic"); raw != "" {
		if !domain.ValidTopic(raw) {
			writeError(w, http.StatusBadRequest, "unknown topic")
			return
		}
		topic := domain.Topic(raw)
		filtered := make([]domain.Essay, 0, len(essays))
		for _, e := range essays {
			if e.Topic == topic {
				filtered = append(filtered, e)
			}
		}
		essays = filtered
	}

	writeJSON(w, http.StatusOK, essays)
}

func (h *SimulationHandler) Critiques(w http.ResponseWriter, r *http.Request) {
	critiques := h.holder.State().Critiques
	if critiques == nil {
		critiques = []domain.Critique{}
	}
	writeJSON(w, http.StatusOK, critiques)
}

func (h *SimulationHandler) Schools(w http.ResponseWriter, r *http.Request) {
	schools := h.holder.State().Schools
	if schools == nil {
		schools = []domain.School{}
	}
	writeJSON(w, http.StatusOK, schools)
}

func (h *SimulationHandler) Agenda(w http.ResponseWriter, r *http.Request) {
	agenda := h.holder.State().Agenda
	if agenda == nil {
		agenda = domain.Agenda{}
	}
	writeJSON(w, http.StatusOK, agenda)
}

// Series returns the per-tick metrics collected since the run began.
func (h *SimulationHandler) Series(w http.ResponseWriter, r *http.Request) {
	series := h.holder.Series()
	if series == nil {
		series = []domain.TickMetrics{}
	}
	writeJSON(w, http.StatusOK, series)
}
