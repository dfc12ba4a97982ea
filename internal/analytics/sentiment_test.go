package analytics

import "testing"

func TestScoreSentiment_AllPositiveSaturates(t *testing.T) {
	s := ScoreSentiment("great amazing excellent progress")
	if s.Raw != 4 {
		t.Errorf("Raw = %d, expected 4", s.Raw)
	}
	if s.Normalized != 1.0 {
		t.Errorf("Normalized = %v, expected 1.0", s.Normalized)
	}
	if s.Label != SentimentPositive {
		t.Errorf("Label = %q, expected %q", s.Label, SentimentPositive)
	}
}

func TestScoreSentiment_NoMatchesIsNeutral(t *testing.T) {
	s := ScoreSentiment("we deployed the service on kubernetes today")
	if s.Raw != 0 {
		t.Errorf("Raw = %d, expected 0", s.Raw)
	}
	if s.Normalized != 0 {
		t.Errorf("Normalized = %v, expected 0", s.Normalized)
	}
	if s.Label != SentimentNeutral {
		t.Errorf("Label = %q, expected %q", s.Label, SentimentNeutral)
	}
}

func TestScoreSentiment_NegativeSaturates(t *testing.T) {
	s := ScoreSentiment("frustrated stuck confused overwhelmed")
	if s.Normalized != -1.0 {
		t.Errorf("Normalized = %v, expected -1.0", s.Normalized)
	}
	if s.Label != SentimentNegative {
		t.Errorf("Label = %q, expected %q", s.Label, SentimentNegative)
	}
}

func TestScoreSentiment_MixedAndThresholds(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		raw        int
		normalized float64
		label      string
	}{
		{"one positive", "it was great", 1, 1.0 / 3, SentimentPositive},
		{"one negative", "it was hard", -1, -1.0 / 3, SentimentNegative},
		{"balanced", "great but hard", 0, 0, SentimentNeutral},
		{"net positive", "great great hard", 1, 1.0 / 3, SentimentPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ScoreSentiment(tt.text)
			if s.Raw != tt.raw {
				t.Errorf("Raw = %d, expected %d", s.Raw, tt.raw)
			}
			if s.Normalized != tt.normalized {
				t.Errorf("Normalized = %v, expected %v", s.Normalized, tt.normalized)
			}
			if s.Label != tt.label {
				t.Errorf("Label = %q, expected %q", s.Label, tt.label)
			}
		})
	}
}

func TestScoreSentiment_StripsPunctuation(t *testing.T) {
	s := ScoreSentiment("Great! Really great.")
	if s.Raw != 2 {
		t.Errorf("Raw = %d, expected 2 (punctuation should not block matches)", s.Raw)
	}
}

func TestTallyMood(t *testing.T) {
	var dist MoodDistribution
	for _, mood := range []string{"great", "good", "good", "okay", "down", "", "unknown"} {
		TallyMood(&dist, mood)
	}

	if dist.Great != 1 {
		t.Errorf("Great = %d, expected 1", dist.Great)
	}
	if dist.Good != 2 {
		t.Errorf("Good = %d, expected 2", dist.Good)
	}
	if dist.Okay != 1 {
		t.Errorf("Okay = %d, expected 1", dist.Okay)
	}
	if dist.Down != 1 {
		t.Errorf("Down = %d, expected 1", dist.Down)
	}
}
