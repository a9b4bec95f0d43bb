package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sevigo/issue-warden/internal/core"
)

// Strategy identifies which parsing path recovered the analysis fields.
type Strategy string

const (
	// StrategyStructured means the response carried a decodable JSON object.
	StrategyStructured Strategy = "structured"
	// StrategyText means the fields were scraped from free-form text.
	StrategyText Strategy = "text"
)

// Defaults substituted for fields the model left out or mangled.
const (
	defaultMissingRequirements   = "Unable to determine"
	defaultImplementationQuality = "Not assessed"
	defaultRecommendation        = "No specific recommendations"
)

const rawPreviewRunes = 200

var (
	// Matches: "Correctness Score: 8" or "**Risk Level:** HIGH" style label lines.
	fieldLabelRegex = regexp.MustCompile(`^[*#>\s-]*([A-Za-z][A-Za-z_ ]*?)[*_]*\s*:\s*(.*)$`)
	riskTokenRegex  = regexp.MustCompile(`(?i)\b(low|medium|high)\b`)
	scoreDigitRegex = regexp.MustCompile(`\d+`)
)

// AnalysisFields carries the six review fields recovered from a model
// response. On the structured path every field is populated, with defaults
// substituted for anything missing. On the text path the narrative pointers
// stay nil when no label matched, so the caller decides what to show.
type AnalysisFields struct {
	Correctness           core.Score
	Completeness          core.Score
	Risk                  core.RiskLevel
	MissingRequirements   *string
	ImplementationQuality *string
	Recommendations       []string
	Strategy              Strategy
	RawPreview            string
}

// ParseAnalysis extracts the review fields from raw model output. It first
// tries to decode a JSON object embedded anywhere in the text, then falls
// back to scraping labeled lines. It returns an error only when neither
// path recovers anything usable.
func ParseAnalysis(raw string) (*AnalysisFields, error) {
	if fields, ok := parseStructured(raw); ok {
		return fields, nil
	}

	fields := parseLabeledText(raw)
	if fields.empty() {
		return nil, fmt.Errorf("no recognizable analysis fields in model response")
	}
	fields.Strategy = StrategyText
	fields.RawPreview = previewOf(raw)
	return fields, nil
}

// modelResponse mirrors the JSON contract the prompts ask for. Every field
// is kept loose so one malformed value cannot sink the rest.
type modelResponse struct {
	CorrectnessScore      json.RawMessage `json:"correctness_score"`
	CompletenessScore     json.RawMessage `json:"completeness_score"`
	RiskLevel             json.RawMessage `json:"risk_level"`
	MissingRequirements   json.RawMessage `json:"missing_requirements"`
	ImplementationQuality json.RawMessage `json:"implementation_quality"`
	Recommendations       json.RawMessage `json:"recommendations"`
}

func parseStructured(raw string) (*AnalysisFields, bool) {
	payload, ok := extractJSONObject(raw)
	if !ok {
		return nil, false
	}

	var resp modelResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		return nil, false
	}

	fields := &AnalysisFields{
		Correctness:  coerceScore(resp.CorrectnessScore),
		Completeness: coerceScore(resp.CompletenessScore),
		Risk:         coerceRisk(resp.RiskLevel),
		Strategy:     StrategyStructured,
	}

	missing := defaultMissingRequirements
	if s, ok := coerceText(resp.MissingRequirements); ok {
		missing = s
	}
	fields.MissingRequirements = &missing

	quality := defaultImplementationQuality
	if s, ok := coerceText(resp.ImplementationQuality); ok {
		quality = s
	}
	fields.ImplementationQuality = &quality

	fields.Recommendations = coerceRecommendations(resp.Recommendations)
	if fields.Recommendations == nil {
		fields.Recommendations = []string{defaultRecommendation}
	}

	return fields, true
}

// extractJSONObject slices from the first '{' to the last '}' in the text.
// Models routinely wrap the object in prose or markdown fences; the greedy
// slice strips both.
func extractJSONObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

func coerceScore(raw json.RawMessage) core.Score {
	if len(raw) == 0 {
		return core.ScoreNA()
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return core.NewScore(int(num))
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return parseScoreText(s)
	}

	return core.ScoreNA()
}

// parseScoreText handles "8", "8/10" and "8.5" style values.
func parseScoreText(s string) core.Score {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "/"); idx >= 0 {
		s = strings.TrimSpace(s[:idx])
	}
	if n, err := strconv.Atoi(s); err == nil {
		return core.NewScore(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return core.NewScore(int(f))
	}
	return core.ScoreNA()
}

func coerceRisk(raw json.RawMessage) core.RiskLevel {
	s, ok := coerceText(raw)
	if !ok {
		return core.RiskUnknown
	}
	return core.ParseRiskLevel(s)
}

func coerceText(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// coerceRecommendations accepts a string array or a bare string. A nil
// return means the field was missing or unusable; an empty slice means the
// model explicitly returned an empty list.
func coerceRecommendations(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, item := range list {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if single = strings.TrimSpace(single); single != "" {
			return []string{single}
		}
	}

	return nil
}

// parseLabeledText scrapes "LABEL: value" lines from free-form model output.
// A narrative label captures its own line plus any following lines until the
// next label-shaped line.
func parseLabeledText(raw string) *AnalysisFields {
	fields := &AnalysisFields{Risk: core.RiskUnknown}

	var section string
	var missingLines, qualityLines []string

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// Bullet lines inside a recommendations block never start a new
		// field even when they contain a colon.
		if section == "recommendations" && isBulletLine(trimmed) {
			if entry := stripBullet(trimmed); entry != "" {
				fields.Recommendations = append(fields.Recommendations, entry)
			}
			continue
		}

		matches := fieldLabelRegex.FindStringSubmatch(trimmed)
		if matches == nil {
			switch section {
			case "missing":
				missingLines = append(missingLines, trimmed)
			case "quality":
				qualityLines = append(qualityLines, trimmed)
			case "recommendations":
				if entry := stripBullet(trimmed); entry != "" {
					fields.Recommendations = append(fields.Recommendations, entry)
				}
			}
			continue
		}

		label := normalizeLabel(matches[1])
		value := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(matches[2]), "*_"))
		section = ""

		switch label {
		case "correctness score", "correctness":
			fields.Correctness = scoreFromText(value)
		case "completeness score", "completeness":
			fields.Completeness = scoreFromText(value)
		case "risk level", "risk":
			fields.Risk = riskFromText(value)
		case "missing requirements":
			section = "missing"
			if value != "" {
				missingLines = append(missingLines, value)
			}
		case "implementation quality":
			section = "quality"
			if value != "" {
				qualityLines = append(qualityLines, value)
			}
		case "recommendations", "recommendation":
			section = "recommendations"
			if entry := stripBullet(value); entry != "" {
				fields.Recommendations = append(fields.Recommendations, entry)
			}
		}
	}

	if len(missingLines) > 0 {
		joined := strings.Join(missingLines, "\n")
		fields.MissingRequirements = &joined
	}
	if len(qualityLines) > 0 {
		joined := strings.Join(qualityLines, "\n")
		fields.ImplementationQuality = &joined
	}

	return fields
}

func (f *AnalysisFields) empty() bool {
	return !f.Correctness.Known &&
		!f.Completeness.Known &&
		f.Risk == core.RiskUnknown &&
		f.MissingRequirements == nil &&
		f.ImplementationQuality == nil &&
		len(f.Recommendations) == 0
}

func normalizeLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	label = strings.ReplaceAll(label, "_", " ")
	return strings.Join(strings.Fields(label), " ")
}

func scoreFromText(value string) core.Score {
	match := scoreDigitRegex.FindString(value)
	if match == "" {
		return core.ScoreNA()
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return core.ScoreNA()
	}
	return core.NewScore(n)
}

func riskFromText(value string) core.RiskLevel {
	match := riskTokenRegex.FindString(value)
	if match == "" {
		return core.RiskUnknown
	}
	return core.ParseRiskLevel(match)
}

func isBulletLine(line string) bool {
	if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") {
		return true
	}
	// Numbered list entries like "1. Add tests".
	if idx := strings.IndexAny(line, ".)"); idx > 0 {
		if _, err := strconv.Atoi(line[:idx]); err == nil {
			return true
		}
	}
	return false
}

func stripBullet(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "-*")
	if idx := strings.IndexAny(line, ".)"); idx > 0 {
		if _, err := strconv.Atoi(strings.TrimSpace(line[:idx])); err == nil {
			line = line[idx+1:]
		}
	}
	return strings.TrimSpace(line)
}

func previewOf(raw string) string {
	raw = strings.TrimSpace(raw)
	runes := []rune(raw)
	if len(runes) <= rawPreviewRunes {
		return raw
	}
	return string(runes[:rawPreviewRunes]) + "..."
}
