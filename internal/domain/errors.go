package domain

import "errors"

var (
	ErrMissingAPIKey      = errors.New("OPENROUTER_API_KEY is not configured")
	ErrInvalidMBTI        = errors.New("please provide a valid MBTI type")
	ErrUpstreamLLM        = errors.New("upstream LLM failure")
	ErrEmptyCompletion    = errors.New("LLM returned empty content")
	ErrInvalidFortuneJSON = errors.New("LLM returned invalid fortune JSON")
)
