package system

import (
	"fmt"
	"log"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/shmup/ecs/component"
)

const (
	closeRange      = 150.0
	recoveryBelow   = 0.5
	ultimateBelow   = 0.3
	repeatPenalty   = 0.3
	recoveryBoost   = 2.0
	ultimateBoost   = 3.0
	rangeMatchBoost = 2.0
)

// AbilityContext is what a weigher sees when scoring one candidate ability.
type AbilityContext struct {
	Ability     component.AbilityID
	Category    component.AbilityCategory
	HealthRatio float64
	// Distance to the player; HasPlayer is false when no player is in play.
	Distance  float64
	HasPlayer bool
	Last      component.AbilityID
}

// AbilityWeigher scores a candidate ability for the weighted lottery. The
// sampling itself stays in the boss system.
type AbilityWeigher interface {
	Weight(ctx AbilityContext) float64
}

// DefaultWeigher favors recovery at low health, ultimates when nearly dead,
// abilities that suit the player's range and penalizes immediate repeats.
type DefaultWeigher struct{}

func (DefaultWeigher) Weight(ctx AbilityContext) float64 {
	weight := 1.0
	if ctx.HealthRatio < recoveryBelow && ctx.Category == component.CategoryRecovery {
		weight *= recoveryBoost
	}
	if ctx.HealthRatio < ultimateBelow && ctx.Category == component.CategoryUltimate {
		weight *= ultimateBoost
	}
	if ctx.HasPlayer {
		if ctx.Distance < closeRange && ctx.Category == component.CategoryClose {
			weight *= rangeMatchBoost
		}
		if ctx.Distance >= closeRange && ctx.Category == component.CategoryLong {
			weight *= rangeMatchBoost
		}
	}
	if ctx.Last != "" && ctx.Ability == ctx.Last {
		weight *= repeatPenalty
	}
	return weight
}

// ScriptWeigher evaluates a tengo script per candidate. The script reads
// ability, category, health_ratio, distance, has_player and last, and must
// assign a numeric weight. Any failure falls back to the wrapped weigher.
type ScriptWeigher struct {
	mu       sync.Mutex
	compiled *tengo.Compiled
	fallback AbilityWeigher
	log      *log.Logger
}

// NewScriptWeigher compiles src. A nil fallback selects DefaultWeigher.
func NewScriptWeigher(src []byte, fallback AbilityWeigher, logger *log.Logger) (*ScriptWeigher, error) {
	if fallback == nil {
		fallback = DefaultWeigher{}
	}
	if logger == nil {
		logger = log.Default()
	}
	script := tengo.NewScript(src)
	_ = script.Add("ability", "")
	_ = script.Add("category", "")
	_ = script.Add("health_ratio", 1.0)
	_ = script.Add("distance", 0.0)
	_ = script.Add("has_player", false)
	_ = script.Add("last", "")
	_ = script.Add("weight", 1.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("system: compile ability weights: %w", err)
	}
	return &ScriptWeigher{compiled: compiled, fallback: fallback, log: logger}, nil
}

func (s *ScriptWeigher) Weight(ctx AbilityContext) float64 {
	if s == nil || s.compiled == nil {
		return DefaultWeigher{}.Weight(ctx)
	}
	w, err := s.run(ctx)
	if err != nil {
		s.log.Printf("boss: ability weight script %s: %v", ctx.Ability, err)
		return s.fallback.Weight(ctx)
	}
	return w
}

func (s *ScriptWeigher) run(ctx AbilityContext) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.compiled
	if err := c.Set("ability", string(ctx.Ability)); err != nil {
		return 0, err
	}
	if err := c.Set("category", ctx.Category.String()); err != nil {
		return 0, err
	}
	if err := c.Set("health_ratio", ctx.HealthRatio); err != nil {
		return 0, err
	}
	if err := c.Set("distance", ctx.Distance); err != nil {
		return 0, err
	}
	if err := c.Set("has_player", ctx.HasPlayer); err != nil {
		return 0, err
	}
	if err := c.Set("last", string(ctx.Last)); err != nil {
		return 0, err
	}
	if err := c.Set("weight", 1.0); err != nil {
		return 0, err
	}
	if err := c.Run(); err != nil {
		return 0, err
	}
	if !c.IsDefined("weight") {
		return 0, fmt.Errorf("weight not defined")
	}
	v := c.Get("weight")
	switch v.ValueType() {
	case "float", "int":
		return v.Float(), nil
	}
	return 0, fmt.Errorf("weight has type %s", v.ValueType())
}
