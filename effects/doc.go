// Package effects scopes side effects to a context.
//
// A handler is registered on a context with WithXxxEffectHandler and stays
// alive until the returned teardown runs. Code holding the context performs
// the effect without knowing which handler serves it, so the search and
// reporting code can log without owning a logger and tests can swap in an
// observer.
//
// Fire-and-forget effects are delivered in order on one goroutine per
// handler. Performing an effect with no handler in scope panics.
package effects
