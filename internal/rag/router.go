package rag

import (
	"regexp"
	"strings"
)

// exactPhrases are small per-role lists of multi-word phrases that, if
// found verbatim as a substring of the lowercased question, immediately
// decide routing (step 2 of C10).
var exactPhrases = map[Role][]string{
	RoleRuby:     {"reschedule my appointment", "change my plan", "cancel my session", "customer service"},
	RoleDrWarren: {"lab results", "blood work", "doctor's note", "medical history"},
	RoleAdvik:    {"sleep score", "heart rate variability", "recovery score", "wearable data"},
	RoleCarla:    {"meal plan", "body composition", "macro split", "nutrition plan"},
	RoleRachel:   {"training program", "workout plan", "strength training", "personal trainer"},
	RoleNeel:     {"progress report", "monthly summary", "overall progress"},
}

// keywords are single-word (or hyphenated) terms scored per step 3: +2 for
// a whole-word match, +1 for a substring match.
var keywords = map[Role][]string{
	RoleRuby:     {"schedule", "appointment", "concierge", "booking", "logistics", "reschedule", "cancel", "admin"},
	RoleDrWarren: {"lab", "labs", "ldl", "hdl", "cholesterol", "glucose", "doctor", "diagnosis", "medical", "crp", "apob"},
	RoleAdvik:    {"sleep", "hrv", "rhr", "recovery", "stress", "wearable", "steps", "readiness"},
	RoleCarla:    {"nutrition", "diet", "meal", "calories", "macro", "weight", "bodyfat", "bodycomp"},
	RoleRachel:   {"workout", "training", "fitness", "vo2", "strength", "squat", "deadlift", "grip", "mobility"},
	RoleNeel:     {"progress", "kpi", "summary", "overview", "trend", "review", "monthly"},
}

// wordBoundaryCache is built once at init from the fixed keyword set and
// never written again, so concurrent requests routing through Route only
// ever read it — Route runs on the per-request path under Echo's
// per-request goroutines, and a map written lazily per-request would race.
var wordBoundaryCache = buildWordBoundaryCache()

func buildWordBoundaryCache() map[string]*regexp.Regexp {
	cache := make(map[string]*regexp.Regexp)
	for _, kws := range keywords {
		for _, kw := range kws {
			if _, ok := cache[kw]; !ok {
				cache[kw] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
			}
		}
	}
	return cache
}

func wholeWordMatch(keyword, lowered string) bool {
	return wordBoundaryCache[keyword].MatchString(lowered)
}

// Route maps a question to a role (C10). An explicitRole, if valid, wins
// outright. Otherwise exact phrases are checked, then keyword scoring;
// ties or an all-zero score fall back to the default role.
func Route(question string, explicitRole string) Role {
	if explicitRole != "" {
		if r := Role(explicitRole); r.Valid() {
			return r
		}
	}

	lowered := strings.ToLower(question)

	for _, role := range AllRoles {
		for _, phrase := range exactPhrases[role] {
			if strings.Contains(lowered, phrase) {
				return role
			}
		}
	}

	scores := make(map[Role]int, len(AllRoles))
	for _, role := range AllRoles {
		score := 0
		for _, kw := range keywords[role] {
			if wholeWordMatch(kw, lowered) {
				score += 2
			} else if strings.Contains(lowered, kw) {
				score += 1
			}
		}
		scores[role] = score
	}

	best := DefaultRole
	bestScore := 0
	tie := false
	for _, role := range AllRoles {
		s := scores[role]
		if s > bestScore {
			best = role
			bestScore = s
			tie = false
		} else if s == bestScore && s > 0 {
			tie = true
		}
	}

	if bestScore == 0 || tie {
		return DefaultRole
	}
	return best
}
