package component

// EncounterState tracks the current wave.
type EncounterState struct {
	Wave             int
	EnemiesRemaining int
	TotalEnemies     int
	SpawnQueue       []string
	WaveActive       bool
	BossWave         bool
	SpawnTimer       Countdown
	// WaveTimer counts down the delay before the next wave starts.
	WaveTimer Countdown
}

// Progress returns the completed fraction of the wave.
func (s *EncounterState) Progress() float64 {
	if s == nil || s.TotalEnemies <= 0 {
		return 1
	}
	done := s.TotalEnemies - s.EnemiesRemaining
	if done < 0 {
		done = 0
	}
	return float64(done) / float64(s.TotalEnemies)
}
