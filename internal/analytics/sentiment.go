package analytics

import "strings"

// Fixed lexicons for the self-contained sentiment estimate. Scoring counts
// word matches; it does not attempt negation handling or stemming.
var positiveWords = map[string]struct{}{
	"great": {}, "good": {}, "excellent": {}, "amazing": {}, "awesome": {},
	"love": {}, "loved": {}, "enjoy": {}, "enjoyed": {}, "fun": {},
	"excited": {}, "exciting": {}, "happy": {}, "confident": {},
	"helpful": {}, "clear": {}, "success": {}, "successful": {},
	"progress": {}, "improved": {}, "improving": {}, "proud": {},
	"win": {}, "won": {}, "breakthrough": {}, "motivated": {},
	"inspiring": {}, "productive": {}, "easy": {}, "best": {},
}

var negativeWords = map[string]struct{}{
	"bad": {}, "hard": {}, "difficult": {}, "confused": {}, "confusing": {},
	"frustrated": {}, "frustrating": {}, "stuck": {}, "struggle": {},
	"struggled": {}, "struggling": {}, "overwhelmed": {}, "overwhelming": {},
	"tired": {}, "boring": {}, "bored": {}, "unclear": {}, "worried": {},
	"worry": {}, "fail": {}, "failed": {}, "failing": {}, "anxious": {},
	"lost": {}, "slow": {}, "worst": {}, "hate": {}, "annoying": {},
}

// Sentiment labels.
const (
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
	SentimentNeutral  = "Neutral"
)

// Sentiment is a bounded lexical sentiment estimate for one text blob.
type Sentiment struct {
	Raw        int     `json:"raw"`        // positive matches minus negative matches
	Normalized float64 `json:"normalized"` // clamp(raw/3, -1, 1)
	Label      string  `json:"label"`
}

// ScoreSentiment counts lexicon matches in the text and normalizes the raw
// difference to [-1, 1]. Labels switch at +/-0.2.
func ScoreSentiment(text string) Sentiment {
	var positives, negatives int
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:'\"()[]")
		if _, ok := positiveWords[word]; ok {
			positives++
			continue
		}
		if _, ok := negativeWords[word]; ok {
			negatives++
		}
	}

	raw := positives - negatives
	normalized := float64(raw) / 3
	if normalized > 1 {
		normalized = 1
	} else if normalized < -1 {
		normalized = -1
	}

	label := SentimentNeutral
	if normalized > 0.2 {
		label = SentimentPositive
	} else if normalized < -0.2 {
		label = SentimentNegative
	}

	return Sentiment{Raw: raw, Normalized: normalized, Label: label}
}

// TallyMood adds an explicit journal mood into the four-bucket histogram.
// Unknown or empty moods are ignored; the histogram is independent of the
// computed sentiment score.
func TallyMood(dist *MoodDistribution, mood string) {
	switch mood {
	case "great":
		dist.Great++
	case "good":
		dist.Good++
	case "okay":
		dist.Okay++
	case "down":
		dist.Down++
	}
}
