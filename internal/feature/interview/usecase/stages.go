package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"brightloop_backend/internal/feature/interview/domain/entity"
)

// errNoJSONObject は応答にJSONオブジェクトが見つからない場合のエラーです。
var errNoJSONObject = errors.New("no JSON object in completion")

// complete はテンプレートを描画して1回だけ補完を呼び出し、最初のJSONオブジェクトをoutへデコードします。
// 呼び出しごとにcallTimeoutのタイムアウトを設定します。
func (p *pipeline) complete(ctx context.Context, t *template.Template, data promptData, out any) error {
	prompt, err := render(t, data)
	if err != nil {
		return fmt.Errorf("failed to render prompt: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	text, err := p.client.Complete(callCtx, SystemPrompt, prompt)
	if err != nil {
		return fmt.Errorf("completion failed: %w", err)
	}

	raw, ok := extractJSONObject(text)
	if !ok {
		return errNoJSONObject
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("failed to decode completion: %w", err)
	}
	return nil
}

type analysisPayload struct {
	JobTitle         string   `json:"jobTitle"`
	Industry         string   `json:"industry"`
	PersonalSkills   []string `json:"personalSkills"`
	TechnicalSkills  []string `json:"technicalSkills"`
	Certifications   []string `json:"certifications"`
	CoreCompetencies []string `json:"coreCompetencies"`
	AdditionalNotes  []string `json:"additionalNotes"`
}

// cleanList は空白要素を除いたリストを返します。nilの場合は空スライスを返します。
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// toAnalysis は必須フィールド（jobTitle, industry, personalSkills, technicalSkills）を検査します。
// 任意フィールドは欠落時に空リストになります。
func (a analysisPayload) toAnalysis() (entity.JobAnalysis, error) {
	out := entity.JobAnalysis{
		JobTitle:         strings.TrimSpace(a.JobTitle),
		Industry:         strings.TrimSpace(a.Industry),
		PersonalSkills:   cleanList(a.PersonalSkills),
		TechnicalSkills:  cleanList(a.TechnicalSkills),
		Certifications:   cleanList(a.Certifications),
		CoreCompetencies: cleanList(a.CoreCompetencies),
		AdditionalNotes:  cleanList(a.AdditionalNotes),
	}
	switch {
	case out.JobTitle == "":
		return out, errors.New("jobTitle is missing")
	case out.Industry == "":
		return out, errors.New("industry is missing")
	case len(out.PersonalSkills) == 0:
		return out, errors.New("personalSkills is empty")
	case len(out.TechnicalSkills) == 0:
		return out, errors.New("technicalSkills is empty")
	}
	return out, nil
}

// analyze は求人票を分析します。失敗時は固定の分析結果を返します。
func (p *pipeline) analyze(ctx context.Context, data promptData) entity.JobAnalysis {
	var payload analysisPayload
	err := p.complete(ctx, analysisPrompt, data, &payload)
	if err == nil {
		var analysis entity.JobAnalysis
		if analysis, err = payload.toAnalysis(); err == nil {
			return analysis
		}
	}
	p.logFallback(ctx, "analyze", err)
	return entity.DefaultAnalysis()
}

type questionsPayload struct {
	Questions []struct {
		Question       string `json:"question"`
		ExpectedAnswer string `json:"expectedAnswer"`
		EvaluationTips string `json:"evaluationTips"`
		Style          string `json:"style"`
	} `json:"questions"`
}

// toItems は質問文が空の項目を捨て、要求外のスタイルを最初の要求スタイルに付け替え、count件に切り詰めます。
func (q questionsPayload) toItems(styles []entity.Style, count int) ([]entity.QuestionItem, error) {
	requested := make(map[entity.Style]bool, len(styles))
	for _, s := range styles {
		requested[s] = true
	}

	items := make([]entity.QuestionItem, 0, min(len(q.Questions), count))
	for _, raw := range q.Questions {
		if len(items) == count {
			break
		}
		text := strings.TrimSpace(raw.Question)
		if text == "" {
			continue
		}
		style := entity.Style(strings.TrimSpace(raw.Style))
		if !requested[style] {
			style = styles[0]
		}
		items = append(items, entity.QuestionItem{
			Question:       text,
			ExpectedAnswer: strings.TrimSpace(raw.ExpectedAnswer),
			EvaluationTips: strings.TrimSpace(raw.EvaluationTips),
			Style:          style,
		})
	}
	if len(items) == 0 {
		return nil, errors.New("no valid questions")
	}
	return items, nil
}

// generateQuestions は質問を生成します。失敗時は要求スタイルの固定質問を返します。
func (p *pipeline) generateQuestions(ctx context.Context, data promptData) []entity.QuestionItem {
	var payload questionsPayload
	err := p.complete(ctx, questionsPrompt, data, &payload)
	if err == nil {
		var items []entity.QuestionItem
		if items, err = payload.toItems(data.Styles, data.Count); err == nil {
			return items
		}
	}
	p.logFallback(ctx, "generate_questions", err)
	return entity.DefaultQuestions(data.Styles, data.Count)
}

type structurePayload struct {
	EstimatedDuration string `json:"estimatedDuration"`
	Structure         struct {
		Introduction         string `json:"introduction"`
		TechnicalAssessment  string `json:"technicalAssessment"`
		BehavioralAssessment string `json:"behavioralAssessment"`
		Closing              string `json:"closing"`
	} `json:"structure"`
}

func (s structurePayload) toStructure() (entity.InterviewStructure, error) {
	out := entity.InterviewStructure{
		EstimatedDuration: strings.TrimSpace(s.EstimatedDuration),
		Sections: entity.InterviewSections{
			Introduction:         strings.TrimSpace(s.Structure.Introduction),
			TechnicalAssessment:  strings.TrimSpace(s.Structure.TechnicalAssessment),
			BehavioralAssessment: strings.TrimSpace(s.Structure.BehavioralAssessment),
			Closing:              strings.TrimSpace(s.Structure.Closing),
		},
	}
	if out.EstimatedDuration == "" {
		return out, errors.New("estimatedDuration is missing")
	}
	sec := out.Sections
	if sec.Introduction == "" || sec.TechnicalAssessment == "" || sec.BehavioralAssessment == "" || sec.Closing == "" {
		return out, errors.New("structure section is missing")
	}
	return out, nil
}

// generateStructure は面接構成を生成します。失敗時は質問数から算出した固定構成を返します。
func (p *pipeline) generateStructure(ctx context.Context, data promptData) entity.InterviewStructure {
	var payload structurePayload
	err := p.complete(ctx, structurePrompt, data, &payload)
	if err == nil {
		var structure entity.InterviewStructure
		if structure, err = payload.toStructure(); err == nil {
			return structure
		}
	}
	p.logFallback(ctx, "generate_structure", err)
	return entity.DefaultStructure(data.Count)
}
