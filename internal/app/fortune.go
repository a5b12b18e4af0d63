package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/YuGyeong-Kim02/mbtifortune/internal/domain"
	"github.com/YuGyeong-Kim02/mbtifortune/internal/ports"
)

// defaultConcern is substituted into the prompt when the user left the
// concern field empty.
const defaultConcern = "특별한 고민은 없어요"

// FortuneRequest is the application-level input (no HTTP types).
type FortuneRequest struct {
	MBTI    string
	Concern string
}

// FortuneService orchestrates validation and the single LLM invocation.
type FortuneService struct {
	teller ports.FortuneTeller
	apiKey func() string
}

// NewFortuneService builds a service. apiKey is called per request so the
// credential is read from the environment at request time, not at startup.
func NewFortuneService(teller ports.FortuneTeller, apiKey func() string) *FortuneService {
	return &FortuneService{
		teller: teller,
		apiKey: apiKey,
	}
}

// Ready reports whether the upstream credential is configured.
func (s *FortuneService) Ready() error {
	if s.apiKey() == "" {
		return domain.ErrMissingAPIKey
	}
	return nil
}

// DailyFortune validates the request and asks the LLM for a reading.
// Exactly one upstream attempt is made; failures are not retried.
func (s *FortuneService) DailyFortune(ctx context.Context, req FortuneRequest) (domain.Fortune, error) {
	if err := s.Ready(); err != nil {
		return domain.Fortune{}, err
	}

	mbti, err := domain.NormalizeMBTI(req.MBTI)
	if err != nil {
		return domain.Fortune{}, err
	}

	concern := strings.TrimSpace(req.Concern)
	if concern == "" {
		concern = defaultConcern
	}

	fortune, err := s.teller.Tell(ctx, ports.FortuneInput{
		MBTI:    mbti,
		Concern: concern,
	})
	if err != nil {
		return domain.Fortune{}, fmt.Errorf("tell fortune: %w", err)
	}

	return fortune, nil
}
