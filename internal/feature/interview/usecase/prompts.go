package usecase

import (
	"bytes"
	"strings"
	"text/template"

	"brightloop_backend/internal/feature/interview/domain/entity"
)

// SystemPrompt は全ステージ共通のシステムプロンプトです。
const SystemPrompt = "You are an expert HR and recruitment specialist with deep knowledge of AI and technology roles. Provide detailed, structured, and professional responses."

var funcs = template.FuncMap{
	"join": func(items any) string {
		switch v := items.(type) {
		case []string:
			return strings.Join(v, ", ")
		case []entity.Style:
			s := make([]string, len(v))
			for i, st := range v {
				s[i] = string(st)
			}
			return strings.Join(s, ", ")
		}
		return ""
	},
}

var analysisPrompt = template.Must(template.New("analysis").Funcs(funcs).Parse(`
Analyze the following job description and extract key information. Return the response in valid JSON format only, no additional text:

Job Description: "{{.JobDescription}}"
Experience Level: "{{.Level}}"

Please extract and return a JSON object with the following structure:
{
  "jobTitle": "extracted or inferred job title",
  "industry": "industry sector",
  "personalSkills": ["skill1", "skill2", "skill3", "skill4", "skill5"],
  "technicalSkills": ["tech1", "tech2", "tech3", "tech4", "tech5"],
  "certifications": ["cert1", "cert2", "cert3"],
  "coreCompetencies": ["competency1", "competency2", "competency3", "competency4", "competency5"],
  "additionalNotes": ["note1", "note2", "note3", "note4", "note5", "note6"]
}

Make sure the skills and competencies are relevant to the job description and experience level provided.
`))

var questionsPrompt = template.Must(template.New("questions").Funcs(funcs).Parse(`
Generate {{.Count}} interview questions for the following job requirements:

Job Title: {{.Analysis.JobTitle}}
Industry: {{.Analysis.Industry}}
Experience Level: {{.Level}}
Question Styles: {{join .Styles}}
Technical Skills: {{join .Analysis.TechnicalSkills}}
Personal Skills: {{join .Analysis.PersonalSkills}}

Job Description: "{{.JobDescription}}"

Please generate questions that match the specified styles: {{join .Styles}}.

Question Style Definitions:
- Technical: Questions about technical knowledge, tools, and implementation
- Behavioral: Questions about past experiences and behavior patterns
- Situational: Hypothetical scenarios and how they would handle them
- Knowledge: Questions testing theoretical knowledge and concepts
- Terminology: Questions about definitions and technical terms
- Problem-Solving: Questions requiring analytical thinking and solution design

Write the questions, expected answers and evaluation tips in {{.Language}}.

Return the response in valid JSON format only, no additional text:
{
  "questions": [
    {
      "question": "the interview question text",
      "expectedAnswer": "detailed expected answer explaining what a good response should include",
      "evaluationTips": "tips for the interviewer on what to look for when evaluating the answer",
      "style": "question style from the provided list"
    }
  ]
}

Make sure questions are appropriate for {{.Level}} level candidates and cover the specified question styles evenly.
`))

var structurePrompt = template.Must(template.New("structure").Funcs(funcs).Parse(`
Create an interview structure for a {{.Analysis.JobTitle}} position ({{.Level}} level) with {{.Count}} questions.

Job Details:
- Industry: {{.Analysis.Industry}}
- Technical Skills: {{join .Analysis.TechnicalSkills}}
- Core Competencies: {{join .Analysis.CoreCompetencies}}

Return the response in valid JSON format only, no additional text:
{
  "estimatedDuration": "time estimate like 'Approximately 90 to 120 minutes'",
  "structure": {
    "introduction": "detailed guidance for introduction phase",
    "technicalAssessment": "detailed guidance for technical assessment phase",
    "behavioralAssessment": "detailed guidance for behavioral assessment phase",
    "closing": "detailed guidance for closing phase"
  }
}

Make the structure appropriate for {{.Level}} level candidates.
`))

// promptData は全テンプレートに渡す値です。
type promptData struct {
	JobDescription string
	Level          entity.ExperienceLevel
	Styles         []entity.Style
	Count          int
	Language       string
	Analysis       entity.JobAnalysis
}

func render(t *template.Template, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
