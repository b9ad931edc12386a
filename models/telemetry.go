// Package models declares the JSON payloads the viewer exchanges with its
// other backends. They carry no behavior.
package models

// TelemetryEvent is a single client-side event
type TelemetryEvent struct {
	Name       string                 `json:"name"`
	Timestamp  int64                  `json:"timestamp"`
	SessionID  string                 `json:"sessionId,omitempty"`
	Path       string                 `json:"path,omitempty"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// PerformanceMetric is a timing or size sample reported by the viewer
type PerformanceMetric struct {
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Unit      string  `json:"unit,omitempty"`
	Timestamp int64   `json:"timestamp"`
}

// TelemetryBatch groups events and metrics sent in one request
type TelemetryBatch struct {
	SessionID string              `json:"sessionId"`
	Events    []TelemetryEvent    `json:"events"`
	Metrics   []PerformanceMetric `json:"metrics,omitempty"`
	SentAt    int64               `json:"sentAt"`
}
