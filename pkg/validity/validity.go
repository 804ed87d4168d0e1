// Package validity combines the remote acyclicity verdict with the local
// connectivity check into a single pipeline status.
package validity

// Reason explains the outcome of Evaluate.
type Reason string

const (
	ReasonValid             Reason = "valid"
	ReasonCycleDetected     Reason = "cycle_detected"
	ReasonDisconnectedNodes Reason = "disconnected_nodes"
)

// Message is the sentence shown in the validation report.
func (r Reason) Message() string {
	switch r {
	case ReasonValid:
		return "Pipeline is valid: acyclic and fully connected"
	case ReasonCycleDetected:
		return "Invalid pipeline: cycle detected in graph structure"
	case ReasonDisconnectedNodes:
		return "Invalid pipeline: disconnected nodes detected"
	}
	return "Invalid pipeline: validation failed"
}

// Result is the validity summary of one submitted snapshot.
// Cycles and disconnection are normal outcomes here, not errors.
type Result struct {
	StructurallyAcyclic bool   `json:"structurally_acyclic"`
	FullyConnected      bool   `json:"fully_connected"`
	PipelineValid       bool   `json:"pipeline_valid"`
	Reason              Reason `json:"reason"`
}

// Evaluate combines both verdicts. A cycle takes precedence over
// disconnection when picking the reason.
func Evaluate(localConnectivity, remoteIsAcyclic bool) Result {
	res := Result{
		StructurallyAcyclic: remoteIsAcyclic,
		FullyConnected:      localConnectivity,
		PipelineValid:       remoteIsAcyclic && localConnectivity,
	}
	switch {
	case !remoteIsAcyclic:
		res.Reason = ReasonCycleDetected
	case !localConnectivity:
		res.Reason = ReasonDisconnectedNodes
	default:
		res.Reason = ReasonValid
	}
	return res
}
