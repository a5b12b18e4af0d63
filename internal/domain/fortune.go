package domain

import (
	"regexp"
	"strings"
)

// Fortune is the structured daily reading generated by the LLM.
type Fortune struct {
	Headline    string   `json:"headline"`
	Fortune     string   `json:"fortune"`
	ActionSteps []string `json:"actionSteps"`
	LuckyItem   string   `json:"luckyItem"`
	EnergyLevel string   `json:"energyLevel"`
}

var mbtiPattern = regexp.MustCompile(`^[IE][NS][TF][JP]$`)

// NormalizeMBTI trims and uppercases code and checks it against the 16 MBTI
// types. Returns ErrInvalidMBTI for anything else.
func NormalizeMBTI(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !mbtiPattern.MatchString(code) {
		return "", ErrInvalidMBTI
	}
	return code, nil
}

// Tone is the visual classification derived from an energy level label.
type Tone string

const (
	ToneHigh Tone = "high"
	ToneMid  Tone = "mid"
	ToneLow  Tone = "low"
)

// EnergyTone classifies an energy level label by substring match.
// "높음" wins over "낮음"; a label containing neither is mid.
func EnergyTone(level string) Tone {
	switch {
	case strings.Contains(level, "높음"):
		return ToneHigh
	case strings.Contains(level, "낮음"):
		return ToneLow
	default:
		return ToneMid
	}
}
