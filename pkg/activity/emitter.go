package activity

import "context"

// Config toggles emission without unwiring hooks.
type Config struct {
	Enabled bool
}

// Emitter dispatches events to a hook chain when enabled.
type Emitter struct {
	hooks   Hooks
	enabled bool
}

// NewEmitter builds an emitter. An emitter with no hooks reports disabled
// regardless of config.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	return &Emitter{
		hooks:   hooks,
		enabled: cfg.Enabled && len(hooks) > 0,
	}
}

// Enabled reports whether Emit will deliver events.
func (e *Emitter) Enabled() bool {
	return e != nil && e.enabled
}

// Emit delivers the event through the hook chain. Disabled emitters drop
// events silently.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if !e.Enabled() {
		return nil
	}
	return e.hooks.Notify(ctx, evt)
}
