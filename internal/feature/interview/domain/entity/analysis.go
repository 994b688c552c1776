package entity

// JobAnalysis は求人票から抽出したスキルプロファイルです。永続化されません。
type JobAnalysis struct {
	JobTitle         string
	Industry         string
	PersonalSkills   []string
	TechnicalSkills  []string
	Certifications   []string
	CoreCompetencies []string
	AdditionalNotes  []string
}

// InterviewSections は面接の4つのフェーズです。
type InterviewSections struct {
	Introduction         string
	TechnicalAssessment  string
	BehavioralAssessment string
	Closing              string
}

// InterviewStructure は推奨される面接構成です。
type InterviewStructure struct {
	EstimatedDuration string
	Sections          InterviewSections
}

// GenerateRequest は質問生成の入力です。
type GenerateRequest struct {
	JobDescription    string
	Styles            []Style
	Level             ExperienceLevel
	NumberOfQuestions int
	Language          string
}

// QuestionSet はパイプライン全体の出力です。
type QuestionSet struct {
	Analysis       JobAnalysis
	Level          ExperienceLevel
	TotalQuestions int
	Structure      InterviewStructure
	Questions      []GeneratedQuestion
}
