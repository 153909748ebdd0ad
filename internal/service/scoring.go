package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lumenhq/lumen-backend/internal/llm"
	"github.com/lumenhq/lumen-backend/internal/model"
	"github.com/lumenhq/lumen-backend/internal/repository"
	"github.com/lumenhq/lumen-backend/pkg/apperror"
	"github.com/lumenhq/lumen-backend/pkg/logger"
)

// ScoreResult is the outcome of one scoring pass, before persistence.
type ScoreResult struct {
	Score              int      `json:"score"`
	Reasoning          string   `json:"reasoning"`
	KeyPatterns        []string `json:"key_patterns"`
	ProgressIndicators []string `json:"progress_indicators"`
	AreasForGrowth     []string `json:"areas_for_growth"`
	Confidence         string   `json:"confidence"`

	// InsufficientData marks the sentinel result returned without an LLM
	// call when the lookback window holds too little material.
	InsufficientData bool `json:"insufficient_data,omitempty"`
}

const insufficientDataReasoning = "There isn't enough recent writing to score this category yet. " +
	"Keep journaling or chatting for a few more days and try again."

type ScoringService struct {
	aggregator *Aggregator
	llm        llm.Completer
	scores     repository.ScoreRepository
	users      repository.UserRepository
	log        *logger.Logger
}

func NewScoringService(aggregator *Aggregator, completer llm.Completer, scores repository.ScoreRepository, users repository.UserRepository, log *logger.Logger) *ScoringService {
	return &ScoringService{
		aggregator: aggregator,
		llm:        completer,
		scores:     scores,
		users:      users,
		log:        log,
	}
}

// Score produces a ScoreResult for one (user, category) pair. Pure with
// respect to storage: nothing is persisted here.
func (s *ScoringService) Score(ctx context.Context, userID uuid.UUID, categoryID string, lookbackDays int) (*ScoreResult, error) {
	def, ok := CategoryByID(categoryID)
	if !ok {
		return nil, apperror.New(http.StatusNotFound, fmt.Sprintf("unknown category %q", categoryID), apperror.ErrNotFound)
	}

	content, err := s.aggregator.Collect(ctx, userID, lookbackDays)
	if err != nil {
		return nil, err
	}

	if !content.Sufficient() {
		return &ScoreResult{
			Score:              0,
			Reasoning:          insufficientDataReasoning,
			KeyPatterns:        []string{},
			ProgressIndicators: []string{},
			AreasForGrowth:     []string{},
			Confidence:         model.ConfidenceLow,
			InsufficientData:   true,
		}, nil
	}

	prompt := buildScorePrompt(def, content, lookbackDays)

	var result ScoreResult
	if err := s.llm.CompleteJSON(ctx, prompt, &result); err != nil {
		return nil, apperror.New(http.StatusBadGateway, "failed to analyze content", fmt.Errorf("%w: %v", apperror.ErrAIService, err))
	}

	result.Score = clamp(result.Score, 0, 100)
	result.Confidence = normalizeConfidence(result.Confidence)
	return &result, nil
}

// Generate is the persisting wrapper around Score. It enforces category
// selection, converts the insufficient-data sentinel into a 400, and writes
// exactly one CategoryScore row for the period.
func (s *ScoringService) Generate(ctx context.Context, userID uuid.UUID, categoryID, periodType string, lookbackDays int) (*model.CategoryScore, error) {
	selected, err := s.users.HasSelectedCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}
	if !selected {
		return nil, apperror.New(http.StatusForbidden, "category is not selected by this user", apperror.ErrForbidden)
	}

	if periodType == "" {
		periodType = model.PeriodDaily
	}
	if periodType != model.PeriodDaily && periodType != model.PeriodWeekly {
		return nil, apperror.New(http.StatusBadRequest, "period_type must be daily or weekly", apperror.ErrBadRequest)
	}

	result, err := s.Score(ctx, userID, categoryID, lookbackDays)
	if err != nil {
		return nil, err
	}
	if result.InsufficientData {
		return nil, apperror.New(http.StatusBadRequest, result.Reasoning, apperror.ErrBadRequest)
	}

	periodStart, periodEnd := periodBounds(periodType, time.Now().UTC())

	row := &model.CategoryScore{
		UserID:             userID,
		CategoryID:         categoryID,
		PeriodType:         periodType,
		PeriodStart:        periodStart,
		PeriodEnd:          periodEnd,
		Score:              result.Score,
		Delta:              s.deltaFromPrevious(ctx, userID, categoryID, periodType, periodStart, result.Score),
		Reasoning:          result.Reasoning,
		KeyPatterns:        result.KeyPatterns,
		ProgressIndicators: result.ProgressIndicators,
		AreasForGrowth:     result.AreasForGrowth,
		Confidence:         result.Confidence,
	}

	if err := s.scores.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// GenerateAllSelected scores every selected category sequentially, one at a
// time, in selection order. Duplicate-period conflicts mean the category was
// already scored today and are skipped, not failed.
func (s *ScoringService) GenerateAllSelected(ctx context.Context, userID uuid.UUID, lookbackDays int) error {
	categoryIDs, err := s.users.SelectedCategories(ctx, userID)
	if err != nil {
		return err
	}

	for _, categoryID := range categoryIDs {
		_, err := s.Generate(ctx, userID, categoryID, model.PeriodDaily, lookbackDays)
		if err != nil {
			if apperror.MapErrorToStatus(err) == http.StatusConflict {
				s.log.Debug("category already scored for period", "user_id", userID, "category_id", categoryID)
				continue
			}
			return fmt.Errorf("scoring category %s: %w", categoryID, err)
		}
	}
	return nil
}

// History returns persisted scores newest-first.
func (s *ScoringService) History(ctx context.Context, userID uuid.UUID, categoryID, periodType string, limit int) ([]model.CategoryScore, error) {
	if _, ok := CategoryByID(categoryID); !ok {
		return nil, apperror.New(http.StatusNotFound, fmt.Sprintf("unknown category %q", categoryID), apperror.ErrNotFound)
	}
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	return s.scores.FindByCategory(ctx, userID, categoryID, periodType, limit)
}

// WeeklySummary summarizes the last seven daily scores for a category.
func (s *ScoringService) WeeklySummary(ctx context.Context, userID uuid.UUID, categoryID string) (*WeeklySummary, error) {
	if _, ok := CategoryByID(categoryID); !ok {
		return nil, apperror.New(http.StatusNotFound, fmt.Sprintf("unknown category %q", categoryID), apperror.ErrNotFound)
	}

	rows, err := s.scores.FindByCategory(ctx, userID, categoryID, model.PeriodDaily, 7)
	if err != nil {
		return nil, err
	}

	// Rows come back newest-first; the summary wants chronological order.
	scores := make([]int, len(rows))
	for i, row := range rows {
		scores[len(rows)-1-i] = row.Score
	}

	summary := calculateWeeklySummary(scores)
	return &summary, nil
}

func (s *ScoringService) deltaFromPrevious(ctx context.Context, userID uuid.UUID, categoryID, periodType string, periodStart time.Time, score int) *int {
	prevStart := periodStart.AddDate(0, 0, -1)
	if periodType == model.PeriodWeekly {
		prevStart = periodStart.AddDate(0, 0, -7)
	}

	prev, err := s.scores.FindByPeriod(ctx, userID, categoryID, periodType, prevStart)
	if err != nil {
		s.log.Warn("failed to look up previous period score", "error", err)
		return nil
	}
	if prev == nil {
		return nil
	}
	d := score - prev.Score
	return &d
}

// periodBounds anchors daily periods at midnight UTC and weekly periods at
// Monday 00:00 UTC.
func periodBounds(periodType string, now time.Time) (time.Time, time.Time) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if periodType == model.PeriodWeekly {
		offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
		start := day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7)
	}
	return day, day.AddDate(0, 0, 1)
}

func buildScorePrompt(def CategoryDefinition, content *AggregatedContent, lookbackDays int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a careful, evidence-bound psychological assessment assistant.\n")
	fmt.Fprintf(&b, "Assess the user on the category %q over the last %d days.\n\n", def.Name, lookbackDays)
	fmt.Fprintf(&b, "Category description: %s\n", def.Description)
	fmt.Fprintf(&b, "Scoring criteria: %s\n", def.Criteria)
	fmt.Fprintf(&b, "Focus areas: %s\n\n", strings.Join(def.FocusAreas, ", "))

	b.WriteString("Recent journal entries (newest first):\n")
	for _, e := range content.JournalEntries {
		fmt.Fprintf(&b, "- [%s] %s: %s\n", e.CreatedAt.Format("2006-01-02"), e.Title, e.Content)
	}

	b.WriteString("\nRecent chat messages (newest first):\n")
	for _, m := range content.Messages {
		fmt.Fprintf(&b, "- [%s] %s: %s\n", m.CreatedAt.Format("2006-01-02"), m.Role, m.Content)
	}

	b.WriteString(`
Respond with a single JSON object and nothing else (no markdown fences):
{
  "score": <integer 0-100>,
  "reasoning": "<2-3 sentences grounded in the content above>",
  "key_patterns": ["<1-3 observed patterns>"],
  "progress_indicators": ["<signs of progress, may be empty>"],
  "areas_for_growth": ["<concrete growth areas, may be empty>"],
  "confidence": "low" | "medium" | "high"
}
`)
	return b.String()
}

func normalizeConfidence(c string) string {
	switch strings.ToLower(strings.TrimSpace(c)) {
	case model.ConfidenceHigh:
		return model.ConfidenceHigh
	case model.ConfidenceMedium:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
