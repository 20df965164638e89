package system

import "github.com/milk9111/shmup/ecs/component"

const phasedAlpha = 0.3

// updateStates advances the timers that run independently of movement.
func (s *EnemySystem) updateStates(e *component.Enemy, dt float64) {
	e.Health.Tick(dt)
	e.Flash.Tick(dt)
	if e.Shield != nil {
		updateShield(e.Shield, dt)
	}
	if e.Stealth != nil {
		updateStealth(e, dt)
	}
	if e.Regen != nil {
		updateRegen(e, dt)
	}
	if e.Phase != nil {
		updatePhase(e, dt)
	}
}

// updateShield waits out the regen delay after a break, then refills the
// shield and reactivates it once full.
func updateShield(sh *component.Shield, dt float64) {
	if sh.Active {
		return
	}
	if sh.Delay.Active() && !sh.Delay.Tick(dt) {
		return
	}
	sh.Health += sh.RegenRate * dt / 1000
	if sh.Health >= sh.Max {
		sh.Health = sh.Max
		sh.Active = true
	}
}

func updateStealth(e *component.Enemy, dt float64) {
	st := e.Stealth
	st.Timer.Tick(dt)
	if st.Timer.Active() {
		return
	}
	if st.Stealthed {
		st.Stealthed = false
		st.Timer.Start(st.Cooldown)
		e.SetAlpha(st.AlphaVisible)
		return
	}
	st.Stealthed = true
	st.Timer.Start(st.Duration)
	e.SetAlpha(st.AlphaInvisible)
}

func updateRegen(e *component.Enemy, dt float64) {
	if e.Current >= e.Max || e.Dead {
		return
	}
	rg := e.Regen
	rg.Timer.Tick(dt)
	if rg.Timer.Active() {
		return
	}
	e.Health.Heal(rg.Rate * dt / 1000)
}

func updatePhase(e *component.Enemy, dt float64) {
	ph := e.Phase
	if ph.Phased {
		ph.Timer.Tick(dt)
		if !ph.Timer.Active() {
			exitPhase(e)
		}
		return
	}
	ph.CooldownTimer.Tick(dt)
	if !ph.CooldownTimer.Active() && e.Ratio() < ph.HealthTrigger {
		enterPhase(e)
	}
}

// enterPhase starts the timed invulnerable fade.
func enterPhase(e *component.Enemy) {
	ph := e.Phase
	if ph == nil || ph.Phased {
		return
	}
	ph.Phased = true
	ph.Timer.Start(ph.Duration)
	e.Health.Invulnerable = true
	e.SetAlpha(phasedAlpha)
}

func exitPhase(e *component.Enemy) {
	ph := e.Phase
	ph.Phased = false
	ph.CooldownTimer.Start(ph.Cooldown)
	e.Health.Invulnerable = false
	e.SetAlpha(1)
}
