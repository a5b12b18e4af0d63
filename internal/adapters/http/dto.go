package http

// FortuneRequest is the JSON body accepted by POST /api/fortune.
type FortuneRequest struct {
	MBTI    string `json:"mbti"`
	Concern string `json:"concern"`
}

// FortuneResponse is the JSON shape returned on success.
type FortuneResponse struct {
	Headline    string   `json:"headline"`
	Fortune     string   `json:"fortune"`
	ActionSteps []string `json:"actionSteps"`
	LuckyItem   string   `json:"luckyItem"`
	EnergyLevel string   `json:"energyLevel"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
