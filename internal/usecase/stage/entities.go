package stage

type CreateProjectInput struct {
	Name string `json:"name"`
}

type CreateStageInput struct {
	Name string `json:"name"`
}

type ProjectDTO struct {
	ProjectID            string `json:"project_id"`
	Name                 string `json:"name"`
	CurrentStagePosition int    `json:"current_stage_position"`
}

type StageDTO struct {
	StageID  string `json:"stage_id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// StageProgressDTO distinguishes "no proposals" (Total == 0, Rate 0) from
// "0% approved" — callers must not conflate the two.
type StageProgressDTO struct {
	StageID   string  `json:"stage_id"`
	Name      string  `json:"name"`
	Position  int     `json:"position"`
	Total     int     `json:"total_proposals"`
	Approved  int     `json:"approved_proposals"`
	Rate      float64 `json:"completion_rate"`
	IsCurrent bool    `json:"is_current"`
}

type ProjectProgressDTO struct {
	ProjectID            string             `json:"project_id"`
	CurrentStagePosition int                `json:"current_stage_position"`
	Stages               []StageProgressDTO `json:"stages"`
	OverallRate          float64            `json:"overall_rate"`
}
