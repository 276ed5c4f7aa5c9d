// Package main provides a minimal HTTP server exposing debug endpoints.
package main

import (
	"expvar"
	"fmt"
	"net/http"
	_ "net/http/pprof" // register /debug/pprof
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintln(w, "tinkerpop server is running. See /healthz, /metrics, /debug/vars, /debug/pprof/")
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, "ok")
	})

	// Prometheus-compatible metrics endpoint (no external deps)
	mux.HandleFunc("/metrics", promMetricsHandler)

	addr := ":8080"
	if v := os.Getenv("TINKERPOP_ADDR"); v != "" {
		addr = v
	}
	logger.Info().Str("addr", addr).Msg("starting tinkerpop server")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}

// promMetricsHandler renders known expvar metrics in Prometheus text format.
func promMetricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

	type meta struct {
		typ, help string
		isMap     bool
		label     string
	}
	metas := map[string]meta{
		"tinkerpop_traversers_seeded_total":     {typ: "counter", help: "Traversers seeded at traversal start"},
		"tinkerpop_traversers_halted_total":     {typ: "counter", help: "Traversers that reached the halt future"},
		"tinkerpop_bulk_merges_total":           {typ: "counter", help: "Equivalent traversers folded by bulk merging"},
		"tinkerpop_step_invocations_total":      {typ: "counter", help: "Step process invocations"},
		"tinkerpop_supersteps_total":            {typ: "counter", help: "Supersteps executed by the distributed engine"},
		"tinkerpop_traverser_messages_total":    {typ: "counter", help: "Traverser migrations between vertices"},
		"tinkerpop_strategy_applications_total": {typ: "counter", help: "Strategy applications", isMap: true, label: "strategy"},
	}

	varNames := make([]string, 0, 64)
	expvar.Do(func(kv expvar.KeyValue) {
		varNames = append(varNames, kv.Key)
	})
	sort.Strings(varNames)

	for _, name := range varNames {
		v := expvar.Get(name)
		m, known := metas[name]
		if !known {
			if iv, ok := v.(*expvar.Int); ok {
				_, _ = fmt.Fprintf(w, "# TYPE %s gauge\n", name)
				_, _ = fmt.Fprintf(w, "%s %s\n", name, iv.String())
			}
			continue
		}
		_, _ = fmt.Fprintf(w, "# HELP %s %s\n", name, sanitizeHelp(m.help))
		_, _ = fmt.Fprintf(w, "# TYPE %s %s\n", name, m.typ)
		if m.isMap {
			if mp, ok := v.(*expvar.Map); ok {
				sub := make([]expvar.KeyValue, 0, 8)
				mp.Do(func(kv expvar.KeyValue) { sub = append(sub, kv) })
				sort.Slice(sub, func(i, j int) bool { return sub[i].Key < sub[j].Key })
				for _, kv := range sub {
					fmt.Fprintf(w, "%s{%s=\"%s\"} %s\n", name, m.label, escapeLabel(kv.Key), kv.Value.String())
				}
			}
		} else {
			fmt.Fprintf(w, "%s %s\n", name, v.String())
		}
	}
}

func sanitizeHelp(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
