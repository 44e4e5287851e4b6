package model

// Result is the recommendation engine's output for one classification.
// Alerts describe detected problems; actions are operator steps ordered
// most severe first.
type Result struct {
	Severity Severity
	Alerts   []string
	Actions  []string
}
