package analytics

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// csvHeaders is the fixed export column order. Changing it breaks the
// spreadsheets admins have built on top of the export.
var csvHeaders = []string{
	"Name",
	"Email",
	"Team",
	"Bootcamp Date",
	"Session",
	"Key Learnings",
	"Practical Applications",
	"Success Moment",
	"Confidence Level",
	"Recommendation Score",
	"Submitted At",
}

// ExportCSV serializes reflections into the 11-column export format. Every
// field is double-quoted; embedded quotes are doubled. Missing profile
// fields export as empty strings, not placeholder labels.
func ExportCSV(records []Reflection) []byte {
	var b strings.Builder

	writeRow := func(fields []string) {
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(f, `"`, `""`))
			b.WriteByte('"')
		}
		b.WriteByte('\n')
	}

	writeRow(csvHeaders)

	for _, r := range records {
		var name, email, team string
		if r.Profile != nil {
			name = strings.TrimSpace(r.Profile.FirstName + " " + r.Profile.LastName)
			email = r.Profile.Email
			team = r.Profile.Team
		}
		writeRow([]string{
			name,
			email,
			team,
			r.BootcampDate,
			r.BootcampSession,
			r.KeyLearnings,
			r.PracticalApplications,
			r.SuccessMoment,
			strconv.Itoa(r.ConfidenceLevel),
			strconv.Itoa(r.RecommendationScore),
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return []byte(b.String())
}

// ExportFilename embeds the current date into the download name.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("reflections-%s.csv", now.Format(DateLayout))
}
