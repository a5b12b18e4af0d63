package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	httpadapter "github.com/YuGyeong-Kim02/mbtifortune/internal/adapters/http"
	"github.com/YuGyeong-Kim02/mbtifortune/internal/app"
	"github.com/YuGyeong-Kim02/mbtifortune/internal/domain"
	"github.com/YuGyeong-Kim02/mbtifortune/internal/ports"
)

type mockTeller struct {
	out   domain.Fortune
	err   error
	calls int
	last  ports.FortuneInput
}

func (m *mockTeller) Tell(_ context.Context, in ports.FortuneInput) (domain.Fortune, error) {
	m.calls++
	m.last = in
	return m.out, m.err
}

func testFortune() domain.Fortune {
	return domain.Fortune{
		Headline:    "작은 기회가 찾아오는 날",
		Fortune:     "오늘은 평소보다 집중력이 좋은 날입니다.",
		ActionSteps: []string{"아침 산책하기", "미뤄둔 연락 하나 하기", "일찍 잠들기"},
		LuckyItem:   "파란색 펜",
		EnergyLevel: "에너지 높음",
	}
}

func setup(teller *mockTeller, apiKey string) *echo.Echo {
	e := echo.New()
	svc := app.NewFortuneService(teller, func() string { return apiKey })
	httpadapter.NewHandler(svc).Register(e)
	return e
}

func postFortune(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/fortune", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestDailyFortune_Success(t *testing.T) {
	teller := &mockTeller{out: testFortune()}
	e := setup(teller, "test-key")

	rec := postFortune(e, `{"mbti":"intj","concern":""}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got httpadapter.FortuneResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unparseable response: %v", err)
	}
	if got.Headline != "작은 기회가 찾아오는 날" {
		t.Errorf("unexpected headline: %s", got.Headline)
	}
	if len(got.ActionSteps) < 3 {
		t.Errorf("expected at least 3 action steps, got %d", len(got.ActionSteps))
	}
	if got.EnergyLevel != "에너지 높음" {
		t.Errorf("unexpected energy level: %s", got.EnergyLevel)
	}

	// Lowercase code normalized, empty concern replaced by the placeholder.
	if teller.last.MBTI != "INTJ" {
		t.Errorf("expected normalized MBTI INTJ, got %q", teller.last.MBTI)
	}
	if teller.last.Concern != "특별한 고민은 없어요" {
		t.Errorf("expected placeholder concern, got %q", teller.last.Concern)
	}
}

func TestDailyFortune_MissingAPIKey(t *testing.T) {
	teller := &mockTeller{out: testFortune()}
	e := setup(teller, "")

	// Credential check wins even when the body is garbage.
	for _, body := range []string{`{"mbti":"INTJ"}`, `not json`} {
		rec := postFortune(e, body)
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("body=%q: expected 500, got %d", body, rec.Code)
		}
		var resp httpadapter.ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unparseable error response: %v", err)
		}
		if resp.Error == "" {
			t.Error("expected an error message")
		}
	}
	if teller.calls != 0 {
		t.Errorf("LLM must not be called without a credential, got %d calls", teller.calls)
	}
}

func TestDailyFortune_BadBody(t *testing.T) {
	teller := &mockTeller{out: testFortune()}
	e := setup(teller, "test-key")

	rec := postFortune(e, `{"mbti":`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp httpadapter.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unparseable error response: %v", err)
	}
	if resp.Error != "request body could not be read" {
		t.Errorf("unexpected message: %s", resp.Error)
	}
	if teller.calls != 0 {
		t.Errorf("LLM must not be called for a bad body, got %d calls", teller.calls)
	}
}

func TestDailyFortune_InvalidMBTI(t *testing.T) {
	teller := &mockTeller{out: testFortune()}
	e := setup(teller, "test-key")

	for _, body := range []string{`{}`, `{"mbti":""}`, `{"mbti":"ABCD"}`, `{"mbti":"INTJX"}`} {
		rec := postFortune(e, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body=%s: expected 400, got %d", body, rec.Code)
		}
	}
	if teller.calls != 0 {
		t.Errorf("LLM must not be called for invalid MBTI, got %d calls", teller.calls)
	}
}

func TestDailyFortune_UpstreamFailureIsGeneric(t *testing.T) {
	teller := &mockTeller{err: domain.ErrInvalidFortuneJSON}
	e := setup(teller, "test-key")

	rec := postFortune(e, `{"mbti":"ENFP","concern":"면접이 걱정돼요"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp httpadapter.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unparseable error response: %v", err)
	}
	if strings.Contains(resp.Error, "JSON") {
		t.Errorf("upstream detail leaked to client: %s", resp.Error)
	}
	if resp.Error != "운세 생성에 실패했어요. 잠시 후 다시 시도해 주세요." {
		t.Errorf("unexpected message: %s", resp.Error)
	}
}

func TestHealthz(t *testing.T) {
	e := setup(&mockTeller{}, "test-key")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
