// Package evaluator computes normalized achievement progress from user
// stats. Evaluation is pure and deterministic: the same definition and
// snapshot always produce the same progress, with no side effects.
package evaluator

import (
	"sync"

	"github.com/utsavratan/gestureflow/pkg/domain"
)

// Func computes progress in [0,100] for one achievement type.
// Implementations must be pure: no I/O, no mutation of def or stats.
type Func func(def *domain.AchievementDefinition, stats *domain.UserStatsSnapshot) float64

// Registry maps achievement types to their evaluator functions.
// Dispatch is by type: adding a new achievement type means registering one
// function, not editing a central branch. Unknown types evaluate to 0 so
// catalog entries can ship ahead of their evaluators.
type Registry struct {
	mu    sync.RWMutex
	funcs map[domain.AchievementType]Func
}

// NewRegistry creates an empty registry.
// Most callers want NewBuiltinRegistry instead.
func NewRegistry() *Registry {
	return &Registry{
		funcs: make(map[domain.AchievementType]Func),
	}
}

// NewBuiltinRegistry creates a registry with all built-in evaluators
// registered.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	r.Register(domain.TypeAlphabetMaster, EvaluateAlphabetMaster)
	r.Register(domain.TypePracticeStreak, EvaluatePracticeStreak)
	r.Register(domain.TypeAccuracyExpert, EvaluateAccuracyExpert)
	r.Register(domain.TypeSocialButterfly, EvaluateSocialButterfly)
	return r
}

// Register adds or replaces the evaluator for a type.
func (r *Registry) Register(t domain.AchievementType, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.funcs[t] = fn
}

// Evaluate returns normalized progress in [0,100] for the definition
// against the snapshot. Unregistered types return 0, never an error.
// The result is clamped regardless of what the evaluator returns.
func (r *Registry) Evaluate(def *domain.AchievementDefinition, stats *domain.UserStatsSnapshot) float64 {
	if def == nil || stats == nil {
		return 0
	}

	r.mu.RLock()
	fn, ok := r.funcs[def.Type]
	r.mu.RUnlock()

	if !ok {
		return 0
	}

	return clamp(fn(def, stats))
}

// clamp bounds progress to [0,100].
func clamp(progress float64) float64 {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}
