// Package metrics publishes runtime counters via expvar. The debug server
// renders them in Prometheus text format.
package metrics

import (
	"expvar"
)

var (
	traversersSeeded  = new(expvar.Int)
	traversersHalted  = new(expvar.Int)
	bulkMerges        = new(expvar.Int)
	stepInvocations   = new(expvar.Int)
	supersteps        = new(expvar.Int)
	traverserMessages = new(expvar.Int)
	strategyApplies   = expvar.NewMap("tinkerpop_strategy_applications_total")
)

func init() {
	expvar.Publish("tinkerpop_traversers_seeded_total", traversersSeeded)
	expvar.Publish("tinkerpop_traversers_halted_total", traversersHalted)
	expvar.Publish("tinkerpop_bulk_merges_total", bulkMerges)
	expvar.Publish("tinkerpop_step_invocations_total", stepInvocations)
	expvar.Publish("tinkerpop_supersteps_total", supersteps)
	expvar.Publish("tinkerpop_traverser_messages_total", traverserMessages)
}

func AddTraversersSeeded(n int64)  { traversersSeeded.Add(n) }
func AddTraversersHalted(n int64)  { traversersHalted.Add(n) }
func IncBulkMerges()               { bulkMerges.Add(1) }
func AddStepInvocations(n int64)   { stepInvocations.Add(n) }
func IncSupersteps()               { supersteps.Add(1) }
func AddTraverserMessages(n int64) { traverserMessages.Add(n) }
func IncStrategyApply(name string) { strategyApplies.Add(name, 1) }
