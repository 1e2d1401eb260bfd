// Package harness replays stimulus vectors against simulated circuit
// models and aggregates a pass/fail verdict.
//
// # Pipeline
//
// A run wires four pieces together:
//
//   - a stimulus source: an ordered []Step, either exhaustively generated
//     (Exhaustive) or a literal table, possibly loaded from a YAML scenario
//   - a clocked driver: applies one input vector per step and advances the
//     model one evaluation (combinational) or one full clock period
//     (sequential), optionally dumping trace samples to a Recorder
//   - an oracle: a pure function computing expected outputs, tracking the
//     circuit's register state in lockstep with the simulated clock edges
//   - a comparator: checks every observed output field against its
//     expected value and records mismatches without aborting, so a single
//     run surfaces every failing vector
//
// # Verdict
//
// Result.Pass starts true and is cleared on the first mismatch; it is
// never reset within a run. The process exit code derived from it (0 all
// passed, 1 any mismatch) is the only machine-readable contract.
//
// # Scenario Format
//
// Literal vector tables are defined in YAML files:
//
//	name: reg_sync_reset
//	description: "Reset-active and reset-inactive loads"
//	model: SyncReset4BitReg
//	reset_cycles: 1
//	vectors:
//	  - inputs: { io_reset: 1, io_d: 10 }
//	    expect: { io_q: 0 }
//	  - inputs: { io_reset: 0, io_d: 10 }
//	    expect: { io_q: 10 }
//
// Unknown fields, unknown signal names and values wider than the signal
// are rejected at load/bind time, before the model is touched.
package harness
