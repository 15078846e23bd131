package api

import (
	"net/http"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/ArtemKolodko/band-oracle-updater/pkg/updater"
	"github.com/ArtemKolodko/band-oracle-updater/pkg/version"
)

// LoopStatus is the read-only view of the update loop the handlers need
type LoopStatus interface {
	State() updater.State
	Cycles() uint64
	LastCycleAt() time.Time
	Interval() time.Duration
}

type Config struct {
	Name      string
	Signer    ethcommon.Address
	Contracts []ethcommon.Address
}

// Handler handles HTTP requests
type Handler struct {
	status LoopStatus
	config *Config
}

type HealthResponse struct {
	Status      string     `json:"status"`
	State       string     `json:"state"`
	Cycles      uint64     `json:"cycles"`
	LastCycleAt *time.Time `json:"last_cycle_at"`
}

type InfoResponse struct {
	Name            string   `json:"name"`
	Version         string   `json:"version"`
	Signer          string   `json:"signer"`
	Contracts       []string `json:"contracts"`
	IntervalSeconds int64    `json:"interval_seconds"`
}

func NewHandler(status LoopStatus, config *Config) *Handler {
	if status == nil {
		panic("loop status is nil")
	}
	if config == nil {
		panic("config is nil")
	}
	return &Handler{
		status: status,
		config: config,
	}
}

// Health reports liveness of the process and the loop state
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status: "ok",
		State:  h.status.State().String(),
		Cycles: h.status.Cycles(),
	}
	if last := h.status.LastCycleAt(); !last.IsZero() {
		last = last.UTC()
		resp.LastCycleAt = &last
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	contracts := make([]string, 0, len(h.config.Contracts))
	for _, c := range h.config.Contracts {
		contracts = append(contracts, c.Hex())
	}
	writeJSON(w, http.StatusOK, InfoResponse{
		Name:            h.config.Name,
		Version:         version.Version,
		Signer:          h.config.Signer.Hex(),
		Contracts:       contracts,
		IntervalSeconds: int64(h.status.Interval() / time.Second),
	})
}
