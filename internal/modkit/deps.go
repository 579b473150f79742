package modkit

import (
	"gracewell/internal/modkit/repokit"
	"gracewell/internal/platform/config"
	"gracewell/internal/platform/logger"
	"gracewell/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// any backend may be nil when it is not configured
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
	Bus store.Bus
}

// FromStore lifts the opened backends into module deps
func FromStore(st *store.Store, cfg config.Conf) Deps {
	if st == nil {
		return Deps{Log: *logger.Get(), Cfg: cfg}
	}
	return Deps{Log: st.Log, Cfg: cfg, PG: st.PG, CH: st.CH, Bus: st.Bus}
}

// Named returns a copy whose logger is tagged with the module name
func (d Deps) Named(module string) Deps {
	d.Log = d.Log.With().Str("module", module).Logger()
	return d
}
