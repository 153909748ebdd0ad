package dto

type GenerateScoreRequest struct {
	PeriodType   string `json:"period_type" binding:"omitempty,oneof=daily weekly"`
	LookbackDays int    `json:"lookback_days" binding:"omitempty,min=1,max=90"`
}

type ScoreHistoryFilter struct {
	Period string `form:"period" binding:"omitempty,oneof=daily weekly"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
}
