package service

// CategoryDefinition is the static scoring rubric for one psychological
// category. Definitions live in code, not the database; category ids are
// stable strings referenced by UserCategory and CategoryScore rows.
type CategoryDefinition struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Criteria    string   `json:"criteria"`
	FocusAreas  []string `json:"focus_areas"`
	PromptHints []string `json:"prompt_hints"`
}

var categories = []CategoryDefinition{
	{
		ID:          "1",
		Name:        "Boundary Setting",
		Description: "How clearly and consistently the user defines and protects personal limits.",
		Criteria: "Score high when the user describes saying no, negotiating their needs, or declining requests that conflict with their wellbeing. " +
			"Score low when the user repeatedly describes overcommitting, people-pleasing, or resentment about obligations they did not want.",
		FocusAreas:  []string{"saying no", "negotiating needs", "time protection", "guilt after declining"},
		PromptHints: []string{"Did you say no to anything this week?", "What obligation drained you most?"},
	},
	{
		ID:          "2",
		Name:        "Emotional Regulation",
		Description: "How the user notices, names, and modulates emotional responses.",
		Criteria: "Score high when the user names emotions precisely and describes deliberate responses to strong feelings. " +
			"Score low when entries show unexamined reactivity, suppression, or being overwhelmed without strategies.",
		FocusAreas:  []string{"naming emotions", "pausing before reacting", "self-soothing", "rumination"},
		PromptHints: []string{"What emotion showed up most today?", "How did you respond when it peaked?"},
	},
	{
		ID:          "3",
		Name:        "Self-Awareness",
		Description: "How accurately the user observes their own patterns, triggers, and motivations.",
		Criteria: "Score high when the user connects behavior to underlying needs or history. " +
			"Score low when entries stay at the level of events with no reflection on the user's own role.",
		FocusAreas:  []string{"noticing triggers", "linking behavior to needs", "owning mistakes"},
		PromptHints: []string{"What surprised you about your own reaction today?"},
	},
	{
		ID:          "4",
		Name:        "Stress Management",
		Description: "How the user anticipates, buffers, and recovers from stress.",
		Criteria: "Score high when the user describes concrete recovery practices and realistic load management. " +
			"Score low when stress is described as constant and unaddressed.",
		FocusAreas:  []string{"recovery practices", "workload pacing", "sleep", "physical signals"},
		PromptHints: []string{"What helped you decompress this week?"},
	},
	{
		ID:          "5",
		Name:        "Relationships",
		Description: "Quality and reciprocity of the user's close connections.",
		Criteria: "Score high when the user describes mutual support, repair after conflict, and initiating contact. " +
			"Score low when entries show isolation, one-sided effort, or avoided conversations.",
		FocusAreas:  []string{"reaching out", "conflict repair", "feeling seen", "reciprocity"},
		PromptHints: []string{"Who did you feel closest to this week, and why?"},
	},
	{
		ID:          "6",
		Name:        "Self-Compassion",
		Description: "How the user treats themselves after setbacks and mistakes.",
		Criteria: "Score high when the user speaks to themselves the way they would to a friend. " +
			"Score low when entries are dominated by harsh self-criticism or perfectionism.",
		FocusAreas:  []string{"inner critic", "forgiving mistakes", "realistic standards"},
		PromptHints: []string{"What would you say to a friend in your situation?"},
	},
	{
		ID:          "7",
		Name:        "Growth Mindset",
		Description: "Whether the user frames difficulty as learnable rather than fixed.",
		Criteria: "Score high when setbacks are framed as information and the user describes trying new approaches. " +
			"Score low when entries frame ability as fixed or avoid challenge.",
		FocusAreas:  []string{"framing setbacks", "trying new approaches", "seeking feedback"},
		PromptHints: []string{"What did a recent failure teach you?"},
	},
	{
		ID:          "8",
		Name:        "Communication",
		Description: "How directly and constructively the user expresses needs and disagreements.",
		Criteria: "Score high when the user describes direct, specific, non-blaming expression of needs. " +
			"Score low when entries show avoidance, hinting, or explosive delivery.",
		FocusAreas:  []string{"direct asks", "difficult conversations", "listening"},
		PromptHints: []string{"Was there a conversation you avoided this week?"},
	},
}

// Categories returns all category definitions in display order.
func Categories() []CategoryDefinition {
	out := make([]CategoryDefinition, len(categories))
	copy(out, categories)
	return out
}

// CategoryByID resolves a category id to its rubric.
func CategoryByID(id string) (CategoryDefinition, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return CategoryDefinition{}, false
}
