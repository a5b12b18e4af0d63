package ports

import (
	"context"

	"github.com/YuGyeong-Kim02/mbtifortune/internal/domain"
)

// FortuneInput holds everything the LLM needs to generate a reading.
// Concern is never empty here; the application layer substitutes a
// placeholder phrase before the port is called.
type FortuneInput struct {
	MBTI    string
	Concern string
}

// FortuneTeller generates a daily fortune via an LLM.
type FortuneTeller interface {
	Tell(ctx context.Context, in FortuneInput) (domain.Fortune, error)
}
