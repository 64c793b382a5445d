// Package motion maps per-tick features to a discrete motion state and
// smooths the visual parameters the renderer draws.
package motion

// State is the discrete visual/behavioral state for a tick.
type State string

const (
	Neutral     State = "NEUTRAL"
	Default     State = "DEFAULT"
	Drift       State = "DRIFT"
	Vibration   State = "VIBRATION"
	Flow        State = "FLOW"
	Aggregation State = "AGGREGATION"
	Drip        State = "DRIP"
	Scattering  State = "SCATTERING"
)

// States lists every state a classification can produce, in decision order.
var States = []State{Default, Scattering, Vibration, Flow, Aggregation, Drip, Drift}

func (s State) String() string {
	return string(s)
}

// Valid reports whether s is a known state, including Neutral.
func (s State) Valid() bool {
	if s == Neutral {
		return true
	}
	for _, known := range States {
		if s == known {
			return true
		}
	}
	return false
}
