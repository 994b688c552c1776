// Package entity はinterviewフィーチャーのドメインエンティティを定義します。
package entity

import "github.com/google/uuid"

// Style は質問スタイルです。固定の列挙値のみ有効です。
type Style string

const (
	StyleBehavioral     Style = "Behavioral"
	StyleSituational    Style = "Situational"
	StyleTechnical      Style = "Technical"
	StyleKnowledge      Style = "Knowledge"
	StyleTerminology    Style = "Terminology"
	StyleProblemSolving Style = "Problem-Solving"
)

// Styles は有効なスタイルを定義順で返します。
func Styles() []Style {
	return []Style{StyleBehavioral, StyleSituational, StyleTechnical, StyleKnowledge, StyleTerminology, StyleProblemSolving}
}

// Valid はsが列挙値の一つであるかを返します。
func (s Style) Valid() bool {
	for _, v := range Styles() {
		if s == v {
			return true
		}
	}
	return false
}

// ExperienceLevel は候補者の経験レベルです。
type ExperienceLevel string

const (
	LevelFresher  ExperienceLevel = "Fresher"
	LevelMidLevel ExperienceLevel = "Mid-Level"
	LevelSenior   ExperienceLevel = "Senior"
)

// ExperienceLevels は有効な経験レベルを返します。
func ExperienceLevels() []ExperienceLevel {
	return []ExperienceLevel{LevelFresher, LevelMidLevel, LevelSenior}
}

// Valid はlが列挙値の一つであるかを返します。
func (l ExperienceLevel) Valid() bool {
	for _, v := range ExperienceLevels() {
		if l == v {
			return true
		}
	}
	return false
}

// QuestionItem は生成された質問の全体です。回答と評価のヒントはサーバー側にのみ保持されます。
type QuestionItem struct {
	Question       string
	ExpectedAnswer string
	EvaluationTips string
	Style          Style
}

// GeneratedQuestion は呼び出し元に返す質問です。
type GeneratedQuestion struct {
	ID       uuid.UUID
	Question string
	Style    Style
}

// Answer はIDで後から取得される回答と評価のヒントです。
type Answer struct {
	Answer         string `json:"answer"`
	EvaluationTips string `json:"evaluationTips"`
}
