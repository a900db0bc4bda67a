package policies

// TrainingStats accumulates the metadata persisted with a checkpoint.
type TrainingStats struct {
	Episodes   int     `json:"episodes"`
	Cumulative float64 `json:"cumulative_reward"`
	Best       float64 `json:"best_reward"`
}

func (s *TrainingStats) Record(episodeReward float64) {
	s.Episodes++
	s.Cumulative += episodeReward
	if s.Episodes == 1 || episodeReward > s.Best {
		s.Best = episodeReward
	}
}

// Average is the mean episode reward over training.
func (s *TrainingStats) Average() float64 {
	if s.Episodes == 0 {
		return 0
	}
	return s.Cumulative / float64(s.Episodes)
}
