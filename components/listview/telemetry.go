package listview

import "context"

// Telemetry records pipeline and mutation events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

type noopMutationHook struct{}

func (noopMutationHook) MutationRecorded(context.Context, MutationEvent) error { return nil }
