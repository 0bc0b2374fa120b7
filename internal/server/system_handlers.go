package server

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/veldt-labs/cashlens/internal/database"
	"github.com/veldt-labs/cashlens/internal/scheduler"
)

// SystemHandlers handles system-wide monitoring endpoints
type SystemHandlers struct {
	log         zerolog.Logger
	startupTime time.Time
	financeDB   *database.DB
	cacheDB     *database.DB
	sched       *scheduler.Scheduler
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, financeDB, cacheDB *database.DB, sched *scheduler.Scheduler) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("component", "system_handlers").Logger(),
		startupTime: time.Now(),
		financeDB:   financeDB,
		cacheDB:     cacheDB,
		sched:       sched,
	}
}

// DBInfo describes one database file.
type DBInfo struct {
	Name            string  `json:"name"`
	SizeMB          float64 `json:"size_mb"`
	OpenConnections int     `json:"open_connections"`
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")

	cpuPercent, ramPercent := h.getSystemStats()

	var jobs []scheduler.JobStatus
	if h.sched != nil {
		jobs = h.sched.Jobs()
	}

	response := map[string]interface{}{
		"status":         "running",
		"uptime_seconds": int64(time.Since(h.startupTime).Seconds()),
		"cpu_percent":    cpuPercent,
		"ram_percent":    ramPercent,
		"databases":      h.databaseInfo(),
		"jobs":           jobs,
		"timestamp":      time.Now().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode system status")
	}
}

// HandleDatabaseStats handles GET /api/system/database/stats
func (h *SystemHandlers) HandleDatabaseStats(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting database stats")

	databases := h.databaseInfo()
	totalSizeMB := 0.0
	for _, db := range databases {
		totalSizeMB += db.SizeMB
	}

	response := map[string]interface{}{
		"databases":     databases,
		"total_size_mb": totalSizeMB,
		"last_checked":  time.Now().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode database stats")
	}
}

func (h *SystemHandlers) databaseInfo() []DBInfo {
	info := []DBInfo{}
	for _, db := range []*database.DB{h.financeDB, h.cacheDB} {
		if db == nil {
			continue
		}

		sizeMB := 0.0
		if stat, err := os.Stat(db.Path()); err == nil {
			sizeMB = float64(stat.Size()) / 1024 / 1024
		}

		info = append(info, DBInfo{
			Name:            db.Name(),
			SizeMB:          sizeMB,
			OpenConnections: db.Conn().Stats().OpenConnections,
		})
	}
	return info
}

// getSystemStats calculates CPU and RAM usage percentages.
// Uses a 100ms sampling interval to keep the endpoint responsive.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}
