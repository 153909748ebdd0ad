package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/lumenhq/lumen-backend/internal/jobs"
	"github.com/lumenhq/lumen-backend/internal/llm"
	"github.com/lumenhq/lumen-backend/internal/model"
	"github.com/lumenhq/lumen-backend/internal/repository"
	"github.com/lumenhq/lumen-backend/pkg/apperror"
	"github.com/lumenhq/lumen-backend/pkg/logger"
)

// Corpus sizes for reflection synthesis. Larger than the scoring caps since
// a reflection reads the user's whole history.
const (
	reflectionMaxMessages = 100
	reflectionMaxJournals = 20
	reflectionMaxMoods    = 30

	reflectionMinMessages = 10
	reflectionMinJournals = 3
)

const reflectionJobType = "personality-reflection"

const insufficientReflectionMessage = "We don't have enough of your writing yet to build a meaningful reflection. " +
	"Keep journaling and chatting for a little while and request it again."

const quotaMessage = "The AI service has hit its usage limit. Please try again in a little while."

// reflectionPayload is the JSON shape the LLM must return.
type reflectionPayload struct {
	Summary              string   `json:"summary"`
	Openness             int      `json:"openness"`
	Conscientiousness    int      `json:"conscientiousness"`
	Extraversion         int      `json:"extraversion"`
	Agreeableness        int      `json:"agreeableness"`
	Neuroticism          int      `json:"neuroticism"`
	Archetype            string   `json:"archetype"`
	DominantTraits       []string `json:"dominant_traits"`
	BehavioralPatterns   []string `json:"behavioral_patterns"`
	EmotionalPatterns    []string `json:"emotional_patterns"`
	RelationshipDynamics []string `json:"relationship_dynamics"`
	CopingMechanisms     []string `json:"coping_mechanisms"`
	GrowthAreas          []string `json:"growth_areas"`
	Strengths            []string `json:"strengths"`
	BlindSpots           []string `json:"blind_spots"`
	ValuesBeliefs        []string `json:"values_beliefs"`
	TherapeuticInsights  []string `json:"therapeutic_insights"`
	CoreInsight          string   `json:"core_insight"`
	GrowthLeveragePoint  string   `json:"growth_leverage_point"`
}

// reflectionCorpus is everything that goes into one synthesis prompt.
type reflectionCorpus struct {
	Messages []model.ChatMessage
	Journals []model.JournalEntry
	Moods    []model.MoodEntry
	Facts    map[string][]model.MemoryFact
	Stats    model.ReflectionStats
}

func (c *reflectionCorpus) sufficient() bool {
	return c.Stats.MessageCount >= reflectionMinMessages || c.Stats.JournalCount >= reflectionMinJournals
}

type ReflectionService struct {
	reflections repository.ReflectionRepository
	journals    repository.JournalRepository
	chats       repository.ChatRepository
	moods       repository.MoodRepository
	memories    repository.MemoryRepository
	llm         llm.Completer
	coordinator *jobs.Coordinator
	log         *logger.Logger
}

func NewReflectionService(
	reflections repository.ReflectionRepository,
	journals repository.JournalRepository,
	chats repository.ChatRepository,
	moods repository.MoodRepository,
	memories repository.MemoryRepository,
	completer llm.Completer,
	coordinator *jobs.Coordinator,
	log *logger.Logger,
) *ReflectionService {
	return &ReflectionService{
		reflections: reflections,
		journals:    journals,
		chats:       chats,
		moods:       moods,
		memories:    memories,
		llm:         completer,
		coordinator: coordinator,
		log:         log,
	}
}

// Request creates a pending reflection and kicks off the background job,
// returning immediately so the client can start polling. If a pending or
// processing record already exists for the user it is returned instead;
// this guard lives here (backed by the database) in addition to the
// coordinator's in-memory dedup because only the database survives
// restarts.
func (s *ReflectionService) Request(ctx context.Context, userID uuid.UUID, tier string) (*model.PersonalityReflection, error) {
	switch tier {
	case model.TierFree, model.TierStandard, model.TierPremium:
	default:
		return nil, apperror.New(http.StatusBadRequest, "tier must be free, standard or premium", apperror.ErrBadRequest)
	}

	active, err := s.reflections.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return active, nil
	}

	rec := &model.PersonalityReflection{
		UserID: userID,
		Tier:   tier,
		Status: model.ReflectionPending,
	}
	if err := s.reflections.Create(ctx, rec); err != nil {
		return nil, err
	}

	id := rec.ID
	s.coordinator.Run(reflectionJobType, userID.String(), func() error {
		return s.generate(context.Background(), id, userID)
	})

	return rec, nil
}

// Latest returns the user's newest reflection regardless of status.
func (s *ReflectionService) Latest(ctx context.Context, userID uuid.UUID) (*model.PersonalityReflection, error) {
	rec, err := s.reflections.FindLatestByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperror.New(http.StatusNotFound, "No personality reflection found", apperror.ErrNotFound)
	}
	return rec, nil
}

// GetByID is the polling endpoint's lookup: 404 when missing, 403 when the
// record belongs to someone else.
func (s *ReflectionService) GetByID(ctx context.Context, userID, id uuid.UUID) (*model.PersonalityReflection, error) {
	rec, err := s.reflections.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperror.New(http.StatusNotFound, "No personality reflection found", apperror.ErrNotFound)
	}
	if rec.UserID != userID {
		return nil, apperror.New(http.StatusForbidden, "you do not own this reflection", apperror.ErrForbidden)
	}
	return rec, nil
}

// generate runs inside the coordinator. Every failure path ends in a failed
// status on the record; errors never escape past the job boundary.
func (s *ReflectionService) generate(ctx context.Context, id, userID uuid.UUID) error {
	progress := func(pct int, section string) {
		if err := s.reflections.UpdateProgress(ctx, id, model.ReflectionProcessing, pct, section); err != nil {
			s.log.Warn("failed to update reflection progress", "reflection_id", id, "error", err)
		}
	}

	progress(5, "Gathering your history")

	corpus, err := s.buildCorpus(ctx, userID)
	if err != nil {
		s.fail(ctx, id, err)
		return err
	}

	if !corpus.sufficient() {
		// Not an error: a null synthesis surfaced as failed with a
		// specific, actionable message.
		if err := s.reflections.MarkFailed(ctx, id, insufficientReflectionMessage); err != nil {
			s.log.Error("failed to mark reflection insufficient", "reflection_id", id, "error", err)
		}
		return nil
	}

	progress(25, "Reading your patterns")

	var payload reflectionPayload
	prompt := buildReflectionPrompt(corpus)
	progress(40, "Synthesizing your profile")
	if err := s.llm.CompleteJSON(ctx, prompt, &payload); err != nil {
		s.fail(ctx, id, err)
		return err
	}

	progress(90, "Writing it up")

	fields := map[string]interface{}{
		"summary": payload.Summary,
		"core_traits": model.CoreTraits{
			Openness:          clamp(payload.Openness, 0, 100),
			Conscientiousness: clamp(payload.Conscientiousness, 0, 100),
			Extraversion:      clamp(payload.Extraversion, 0, 100),
			Agreeableness:     clamp(payload.Agreeableness, 0, 100),
			Neuroticism:       clamp(payload.Neuroticism, 0, 100),
			Archetype:         payload.Archetype,
			DominantTraits:    payload.DominantTraits,
		},
		"behavioral_patterns":   model.StringList(payload.BehavioralPatterns),
		"emotional_patterns":    model.StringList(payload.EmotionalPatterns),
		"relationship_dynamics": model.StringList(payload.RelationshipDynamics),
		"coping_mechanisms":     model.StringList(payload.CopingMechanisms),
		"growth_areas":          model.StringList(payload.GrowthAreas),
		"strengths":             model.StringList(payload.Strengths),
		"blind_spots":           model.StringList(payload.BlindSpots),
		"values_beliefs":        model.StringList(payload.ValuesBeliefs),
		"therapeutic_insights":  model.StringList(payload.TherapeuticInsights),
		"core_insight":          nilIfEmpty(payload.CoreInsight),
		"growth_leverage_point": nilIfEmpty(payload.GrowthLeveragePoint),
		"stats":                 corpus.Stats,
	}

	if err := s.reflections.MarkCompleted(ctx, id, fields); err != nil {
		s.fail(ctx, id, err)
		return err
	}

	s.log.Info("reflection completed", "reflection_id", id, "user_id", userID)
	return nil
}

func (s *ReflectionService) fail(ctx context.Context, id uuid.UUID, cause error) {
	msg := cause.Error()
	if llm.IsQuotaError(cause) {
		msg = quotaMessage
	}
	if err := s.reflections.MarkFailed(ctx, id, msg); err != nil {
		s.log.Error("failed to mark reflection failed", "reflection_id", id, "error", err)
	}
}

func (s *ReflectionService) buildCorpus(ctx context.Context, userID uuid.UUID) (*reflectionCorpus, error) {
	messages, err := s.chats.FindNewestMessagesByUser(ctx, userID, reflectionMaxMessages)
	if err != nil {
		return nil, err
	}
	journals, err := s.journals.FindByUser(ctx, userID, reflectionMaxJournals)
	if err != nil {
		return nil, err
	}
	moods, err := s.moods.FindByUser(ctx, userID, reflectionMaxMoods)
	if err != nil {
		return nil, err
	}
	facts, err := s.memories.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	messageCount, err := s.chats.CountMessagesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	journalCount, err := s.journals.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	moodCount, err := s.moods.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	entryDates, err := s.journals.EntryDates(ctx, userID)
	if err != nil {
		return nil, err
	}

	factsByCategory := make(map[string][]model.MemoryFact)
	factCategoryCounts := make(map[string]int)
	for _, f := range facts {
		factsByCategory[f.Category] = append(factsByCategory[f.Category], f)
		factCategoryCounts[f.Category]++
	}

	moodCounts := make(map[string]int)
	for _, m := range moods {
		moodCounts[m.Mood]++
	}

	stats := model.ReflectionStats{
		MessageCount:      int(messageCount),
		JournalCount:      int(journalCount),
		MoodCount:         int(moodCount),
		FactCount:         len(facts),
		AvgMoodIntensity:  averageMoodIntensity(moods),
		JournalStreakDays: journalStreak(entryDates),
		TopMoods:          topN(moodCounts, 5),
		TopFactCategories: topN(factCategoryCounts, 5),
		EngagementScore:   engagementScore(int(messageCount), int(journalCount), int(moodCount), len(facts)),
	}

	return &reflectionCorpus{
		Messages: messages,
		Journals: journals,
		Moods:    moods,
		Facts:    factsByCategory,
		Stats:    stats,
	}, nil
}

func buildReflectionPrompt(c *reflectionCorpus) string {
	var b strings.Builder

	b.WriteString("You are a perceptive, honest personality analyst. Build a full personality profile of the user from their own words below.\n")
	b.WriteString("Be specific and evidence-bound; never invent facts that the material does not support.\n\n")

	fmt.Fprintf(&b, "Activity statistics: %d chat messages, %d journal entries, %d mood entries, %d known facts, %.1f average mood intensity, %d-day journal streak.\n\n",
		c.Stats.MessageCount, c.Stats.JournalCount, c.Stats.MoodCount, c.Stats.FactCount, c.Stats.AvgMoodIntensity, c.Stats.JournalStreakDays)

	b.WriteString("Journal entries (newest first):\n")
	for _, e := range c.Journals {
		fmt.Fprintf(&b, "- [%s] %s: %s\n", e.CreatedAt.Format("2006-01-02"), e.Title, e.Content)
	}

	b.WriteString("\nChat messages (newest first):\n")
	for _, m := range c.Messages {
		fmt.Fprintf(&b, "- [%s] %s: %s\n", m.CreatedAt.Format("2006-01-02"), m.Role, m.Content)
	}

	b.WriteString("\nMood entries (newest first):\n")
	for _, m := range c.Moods {
		fmt.Fprintf(&b, "- [%s] %s (%d/10) %s\n", m.CreatedAt.Format("2006-01-02"), m.Mood, m.Intensity, m.Note)
	}

	b.WriteString("\nKnown facts about the user, by category:\n")
	for category, facts := range c.Facts {
		fmt.Fprintf(&b, "%s:\n", category)
		for _, f := range facts {
			fmt.Fprintf(&b, "- %s (confidence %d)\n", f.Content, f.Confidence)
		}
	}

	b.WriteString(`
Respond with a single JSON object and nothing else (no markdown fences):
{
  "summary": "<3-5 sentence portrait of who this person is>",
  "openness": <0-100>, "conscientiousness": <0-100>, "extraversion": <0-100>,
  "agreeableness": <0-100>, "neuroticism": <0-100>,
  "archetype": "<a short evocative label>",
  "dominant_traits": ["..."],
  "behavioral_patterns": ["..."],
  "emotional_patterns": ["..."],
  "relationship_dynamics": ["..."],
  "coping_mechanisms": ["..."],
  "growth_areas": ["..."],
  "strengths": ["..."],
  "blind_spots": ["..."],
  "values_beliefs": ["..."],
  "therapeutic_insights": ["..."],
  "core_insight": "<the single most striking, useful truth about this person>",
  "growth_leverage_point": "<the one change that would unlock the most growth>"
}
`)
	return b.String()
}

func nilIfEmpty(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
