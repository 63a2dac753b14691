package effectmodel

import "errors"

// EffectEnum is the context key an effect handler is registered under.
type EffectEnum string

const (
	EffectLog EffectEnum = "delta_uniform_go_effect_enum_log"
)

var ErrNoEffectHandler = errors.New("no effect handler registered for this effect")

type EffectScopeConfig struct {
	BufferSize int // default: 1
}

func NewEffectScopeConfig(bufferSize int) EffectScopeConfig {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return EffectScopeConfig{
		BufferSize: bufferSize,
	}
}
