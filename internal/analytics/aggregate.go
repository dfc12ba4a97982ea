package analytics

import (
	"math"
	"sort"
	"strings"
	"time"
)

// ComputeTeamMetrics groups reflections by the joined profile's team and
// reports per-team counts and mean scores. Records without a team land in
// the "No Team" bucket. Output is sorted by team name for stable rendering.
func ComputeTeamMetrics(records []Reflection) []TeamMetrics {
	type acc struct {
		count               int
		totalConfidence     int
		totalRecommendation int
	}

	teams := make(map[string]*acc)
	for _, r := range records {
		team := profileTeam(r.Profile)
		a, ok := teams[team]
		if !ok {
			a = &acc{}
			teams[team] = a
		}
		a.count++
		a.totalConfidence += r.ConfidenceLevel
		a.totalRecommendation += r.RecommendationScore
	}

	metrics := make([]TeamMetrics, 0, len(teams))
	for team, a := range teams {
		metrics = append(metrics, TeamMetrics{
			Team:              team,
			Count:             a.count,
			AvgConfidence:     round1(float64(a.totalConfidence) / float64(a.count)),
			AvgRecommendation: round1(float64(a.totalRecommendation) / float64(a.count)),
		})
	}
	sort.Slice(metrics, func(i, j int) bool { return metrics[i].Team < metrics[j].Team })
	return metrics
}

// ComputeChartSeries buckets reflections by bootcamp date and emits mean
// confidence, mean recommendation and count per bucket, ascending by date.
// Records with an unparseable date are excluded and reported via anomaly.
func ComputeChartSeries(records []Reflection, anomaly AnomalyFunc) []ChartPoint {
	type acc struct {
		day                 time.Time
		count               int
		totalConfidence     int
		totalRecommendation int
	}

	buckets := make(map[time.Time]*acc)
	for _, r := range records {
		day, ok := parseDay(r.ID, r.BootcampDate, anomaly)
		if !ok {
			continue
		}
		a, found := buckets[day]
		if !found {
			a = &acc{day: day}
			buckets[day] = a
		}
		a.count++
		a.totalConfidence += r.ConfidenceLevel
		a.totalRecommendation += r.RecommendationScore
	}

	ordered := make([]*acc, 0, len(buckets))
	for _, a := range buckets {
		ordered = append(ordered, a)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].day.Before(ordered[j].day) })

	points := make([]ChartPoint, len(ordered))
	for i, a := range ordered {
		points[i] = ChartPoint{
			Date:           a.day.Format("Jan 2"),
			Confidence:     round1(float64(a.totalConfidence) / float64(a.count)),
			Recommendation: round1(float64(a.totalRecommendation) / float64(a.count)),
			Count:          a.count,
		}
	}
	return points
}

// ComputeUserEngagement rolls reflections and journal entries up per user.
// Users are keyed by profile email when the join is present, falling back to
// the raw user id. Output is sorted by total activity, descending.
func ComputeUserEngagement(records []Reflection, entries []Entry, now time.Time, anomaly AnomalyFunc) []UserEngagement {
	type acc struct {
		engagement      UserEngagement
		totalConfidence int
		activityDates   []time.Time
	}

	users := make(map[string]*acc)
	get := func(userID string, p *Profile) *acc {
		key := userID
		if p != nil && p.Email != "" {
			key = p.Email
		}
		a, ok := users[key]
		if !ok {
			a = &acc{engagement: UserEngagement{
				UserID: userID,
				Name:   profileName(p),
				Team:   profileTeam(p),
			}}
			if p != nil {
				a.engagement.Email = p.Email
			}
			users[key] = a
		}
		return a
	}

	for _, r := range records {
		a := get(r.UserID, r.Profile)
		a.engagement.TotalReflections++
		a.totalConfidence += r.ConfidenceLevel
		if r.CreatedAt.After(a.engagement.LastActivity) {
			a.engagement.LastActivity = r.CreatedAt
		}
		if day, ok := parseDay(r.ID, r.BootcampDate, anomaly); ok {
			a.activityDates = append(a.activityDates, day)
		}
	}

	for _, e := range entries {
		a := get(e.UserID, e.Profile)
		a.engagement.TotalJournalEntries++
		if e.CreatedAt.After(a.engagement.LastActivity) {
			a.engagement.LastActivity = e.CreatedAt
		}
		a.activityDates = append(a.activityDates, dayOf(e.CreatedAt))
	}

	result := make([]UserEngagement, 0, len(users))
	for _, a := range users {
		if a.engagement.TotalReflections > 0 {
			a.engagement.AvgConfidence = round1(float64(a.totalConfidence) / float64(a.engagement.TotalReflections))
		}
		a.engagement.Streak = Streak(a.activityDates, now)
		result = append(result, a.engagement)
	}

	sort.Slice(result, func(i, j int) bool {
		ti := result[i].TotalReflections + result[i].TotalJournalEntries
		tj := result[j].TotalReflections + result[j].TotalJournalEntries
		if ti != tj {
			return ti > tj
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// ComputeSentimentTrend buckets all free text by calendar date and reports
// the mean lexical sentiment plus the explicit-mood histogram per bucket,
// ascending by date. Reflections bucket on their bootcamp date, journal
// entries on their submission date.
func ComputeSentimentTrend(records []Reflection, entries []Entry, anomaly AnomalyFunc) []SentimentPoint {
	type acc struct {
		day   time.Time
		sum   float64
		count int
		moods MoodDistribution
	}

	buckets := make(map[time.Time]*acc)
	get := func(day time.Time) *acc {
		a, ok := buckets[day]
		if !ok {
			a = &acc{day: day}
			buckets[day] = a
		}
		return a
	}

	for _, r := range records {
		day, ok := parseDay(r.ID, r.BootcampDate, anomaly)
		if !ok {
			continue
		}
		text := r.KeyLearnings + " " + r.PracticalApplications + " " + r.SuccessMoment
		a := get(day)
		a.sum += ScoreSentiment(text).Normalized
		a.count++
	}

	for _, e := range entries {
		a := get(dayOf(e.CreatedAt))
		a.sum += ScoreSentiment(e.Title + " " + e.Content).Normalized
		a.count++
		TallyMood(&a.moods, e.Mood)
	}

	ordered := make([]*acc, 0, len(buckets))
	for _, a := range buckets {
		ordered = append(ordered, a)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].day.Before(ordered[j].day) })

	points := make([]SentimentPoint, len(ordered))
	for i, a := range ordered {
		points[i] = SentimentPoint{
			Date:             a.day.Format(DateLayout),
			Sentiment:        round1(a.sum / float64(a.count)),
			MoodDistribution: a.moods,
		}
	}
	return points
}

// ComputeParticipation tallies every record's submission time into a
// 7x24 (weekday, hour) grid.
func ComputeParticipation(records []Reflection, entries []Entry) ParticipationGrid {
	var grid ParticipationGrid
	for _, r := range records {
		grid[int(r.CreatedAt.Weekday())][r.CreatedAt.Hour()]++
	}
	for _, e := range entries {
		grid[int(e.CreatedAt.Weekday())][e.CreatedAt.Hour()]++
	}
	return grid
}

// ComputeLearningProgress emits each user's confidence progression over
// their reflections in bootcamp-date order, with a sequential week index.
// Users with fewer than two datapoints are dropped since a single point
// cannot show progression.
func ComputeLearningProgress(records []Reflection, anomaly AnomalyFunc) []LearningProgress {
	type dated struct {
		day        time.Time
		confidence int
	}
	type acc struct {
		userID string
		name   string
		points []dated
	}

	users := make(map[string]*acc)
	for _, r := range records {
		day, ok := parseDay(r.ID, r.BootcampDate, anomaly)
		if !ok {
			continue
		}
		a, found := users[r.UserID]
		if !found {
			a = &acc{userID: r.UserID, name: profileName(r.Profile)}
			users[r.UserID] = a
		}
		a.points = append(a.points, dated{day: day, confidence: r.ConfidenceLevel})
	}

	result := make([]LearningProgress, 0, len(users))
	for _, a := range users {
		if len(a.points) < 2 {
			continue
		}
		sort.SliceStable(a.points, func(i, j int) bool { return a.points[i].day.Before(a.points[j].day) })

		progression := make([]ProgressPoint, len(a.points))
		for i, p := range a.points {
			progression[i] = ProgressPoint{
				Date:       p.day.Format(DateLayout),
				Confidence: p.confidence,
				Week:       i + 1,
			}
		}
		result = append(result, LearningProgress{UserID: a.userID, Name: a.name, Progression: progression})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].UserID < result[j].UserID
	})
	return result
}

// ComputeOverview reports the headline totals for the admin page. Empty
// input averages to 0, never NaN.
func ComputeOverview(records []Reflection) Overview {
	o := Overview{TotalResponses: len(records)}
	if len(records) == 0 {
		return o
	}

	var totalConfidence, totalRecommendation int
	for _, r := range records {
		totalConfidence += r.ConfidenceLevel
		totalRecommendation += r.RecommendationScore
	}
	o.AvgConfidence = round1(float64(totalConfidence) / float64(len(records)))
	o.AvgRecommendation = round1(float64(totalRecommendation) / float64(len(records)))
	return o
}

// ComputePersonalStats rolls up one user's reflections for the insights tab:
// totals, streak, first-to-last confidence improvement, top keywords.
func ComputePersonalStats(records []Reflection, now time.Time, anomaly AnomalyFunc) PersonalStats {
	stats := PersonalStats{TotalReflections: len(records)}
	if len(records) == 0 {
		return stats
	}

	var totalConfidence, totalRecommendation int
	var texts []string
	var activityDates []time.Time
	type dated struct {
		day        time.Time
		confidence int
	}
	var orderable []dated

	for _, r := range records {
		totalConfidence += r.ConfidenceLevel
		totalRecommendation += r.RecommendationScore
		texts = append(texts, r.KeyLearnings, r.PracticalApplications, r.SuccessMoment, r.BootcampSession)
		if day, ok := parseDay(r.ID, r.BootcampDate, anomaly); ok {
			activityDates = append(activityDates, day)
			orderable = append(orderable, dated{day: day, confidence: r.ConfidenceLevel})
		}
	}

	n := float64(len(records))
	stats.AvgConfidence = round1(float64(totalConfidence) / n)
	stats.AvgRecommendation = round1(float64(totalRecommendation) / n)
	stats.Streak = Streak(activityDates, now)
	stats.TopKeywords = TopKeywords(strings.Join(texts, " "), 5)

	if len(orderable) > 1 {
		sort.SliceStable(orderable, func(i, j int) bool { return orderable[i].day.Before(orderable[j].day) })
		first := orderable[0].confidence
		last := orderable[len(orderable)-1].confidence
		if first > 0 {
			stats.ImprovementRate = int(math.Floor(float64(last-first)/float64(first)*100 + 0.5))
		}
	}
	return stats
}
