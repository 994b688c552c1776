package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultQuestions(t *testing.T) {
	tests := []struct {
		name   string
		styles []Style
		count  int
		want   []Style
	}{
		{"single style", []Style{StyleTechnical}, 5, []Style{StyleTechnical}},
		{"request order kept", []Style{StyleKnowledge, StyleBehavioral}, 5, []Style{StyleKnowledge, StyleBehavioral}},
		{"truncated to count", []Style{StyleKnowledge, StyleBehavioral, StyleTechnical}, 2, []Style{StyleKnowledge, StyleBehavioral}},
		{"duplicates collapsed", []Style{StyleTechnical, StyleTechnical}, 5, []Style{StyleTechnical}},
		{"unknown style ignored", []Style{"Trivia", StyleSituational}, 5, []Style{StyleSituational}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultQuestions(tt.styles, tt.count)
			styles := make([]Style, 0, len(got))
			for _, q := range got {
				assert.NotEmpty(t, q.Question)
				assert.NotEmpty(t, q.ExpectedAnswer)
				assert.NotEmpty(t, q.EvaluationTips)
				styles = append(styles, q.Style)
			}
			assert.Equal(t, tt.want, styles)
		})
	}
}

func TestDefaultQuestions_EveryStyleCovered(t *testing.T) {
	for _, s := range Styles() {
		got := DefaultQuestions([]Style{s}, 1)
		if assert.Len(t, got, 1, s) {
			assert.Equal(t, s, got[0].Style)
		}
	}
}

func TestFallbackDuration(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{1, "Approximately 1 to 1 hours"},
		{4, "Approximately 1 to 1 hours"},
		{5, "Approximately 1 to 2 hours"},
		{7, "Approximately 1 to 2 hours"},
		{8, "Approximately 2 to 2 hours"},
		{20, "Approximately 2 to 2 hours"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FallbackDuration(tt.count), "count=%d", tt.count)
	}
}

func TestStyleAndLevelValid(t *testing.T) {
	assert.True(t, StyleProblemSolving.Valid())
	assert.False(t, Style("problem-solving").Valid())
	assert.True(t, LevelMidLevel.Valid())
	assert.False(t, ExperienceLevel("Junior").Valid())
}

func TestDefaultAnalysis(t *testing.T) {
	a := DefaultAnalysis()
	assert.Equal(t, "AI Specialist", a.JobTitle)
	assert.Len(t, a.PersonalSkills, 5)
	assert.Len(t, a.TechnicalSkills, 5)
	assert.Len(t, a.Certifications, 3)
	assert.Len(t, a.AdditionalNotes, 6)
}
