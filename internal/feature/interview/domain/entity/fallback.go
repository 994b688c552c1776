package entity

import (
	"fmt"
	"math"
)

// DefaultAnalysis は分析ステージが失敗した場合の固定の分析結果です。
func DefaultAnalysis() JobAnalysis {
	return JobAnalysis{
		JobTitle: "AI Specialist",
		Industry: "Technology / AI Solutions",
		PersonalSkills: []string{
			"Machine Learning", "Natural Language Processing", "Computer Vision",
			"Ethical AI", "Data Privacy",
		},
		TechnicalSkills: []string{
			"AI Model Development", "Bias Mitigation", "Model Tuning",
			"Data Preprocessing", "Regulatory Compliance",
		},
		Certifications: []string{
			"Certified AI Practitioner", "Data Science Certification", "Ethical AI Training",
		},
		CoreCompetencies: []string{
			"Technical Expertise", "Problem Solving", "Ethical Awareness",
			"Communication", "Collaboration",
		},
		AdditionalNotes: []string{
			"Focus on candidate's grasp of AI fundamentals and ethical considerations.",
			"Watch for clear communication and structured problem-solving.",
			"Be alert to vague answers or inability to provide examples.",
			"Maintain a balanced tone to keep stress moderate but insightful.",
			"Use note-taking to capture key candidate strengths and concerns.",
			"Evaluate how candidates align with company values and AI responsibility.",
		},
	}
}

// defaultQuestions はスタイルごとに1問ずつの固定質問です。
var defaultQuestions = map[Style]QuestionItem{
	StyleTechnical: {
		Question:       "Can you explain how machine learning differs from traditional programming and provide an example of its application in healthcare or finance?",
		ExpectedAnswer: "The candidate should explain that traditional programming follows explicit instructions coded by developers, whereas machine learning allows models to learn patterns from data and improve over time. An example in healthcare could be AI-driven diagnostics identifying diseases from imaging data, and in finance, algorithms predicting market trends.",
		EvaluationTips: "Look for clear differentiation between ML and traditional programming, and relevant practical examples. Assess if the candidate understands the core concept and real-world impact.",
		Style:          StyleTechnical,
	},
	StyleBehavioral: {
		Question:       "Tell me about a time you had to explain a complex technical result to a non-technical stakeholder. How did you approach it?",
		ExpectedAnswer: "A structured answer (situation, task, action, result) describing how the candidate identified the audience's needs, simplified the message without losing accuracy, and confirmed understanding. Strong answers mention a concrete outcome such as a decision that was made.",
		EvaluationTips: "Check that the example is specific and recent. Listen for empathy with the audience and evidence that the candidate adapted the explanation rather than repeating jargon.",
		Style:          StyleBehavioral,
	},
	StyleSituational: {
		Question:       "Imagine a model you deployed starts producing noticeably worse predictions a week before an important launch. What would you do?",
		ExpectedAnswer: "The candidate should describe triaging the issue (data drift, pipeline changes, upstream schema changes), communicating the risk to stakeholders early, deciding between rollback and a hotfix, and setting up monitoring to catch the problem sooner next time.",
		EvaluationTips: "Look for a calm, prioritised plan and for communication with stakeholders. Be wary of answers that jump straight to retraining without diagnosing the cause.",
		Style:          StyleSituational,
	},
	StyleKnowledge: {
		Question:       "What is the bias-variance trade-off, and how does it influence the choice of model complexity?",
		ExpectedAnswer: "Bias is error from overly simple assumptions and variance is error from sensitivity to the training data. Increasing complexity lowers bias but raises variance; the goal is the complexity that minimises total generalisation error, often found with validation data, regularisation or cross-validation.",
		EvaluationTips: "Assess whether the candidate can connect the theory to practical tools such as regularisation and validation curves, not only recite definitions.",
		Style:          StyleKnowledge,
	},
	StyleTerminology: {
		Question:       "How would you define precision and recall, and when would you prioritise one over the other?",
		ExpectedAnswer: "Precision is the share of positive predictions that are correct; recall is the share of actual positives that are found. Recall matters more when misses are costly (for example disease screening), precision when false alarms are costly (for example fraud blocking of legitimate payments).",
		EvaluationTips: "Look for exact definitions and a sensible real-world example for each priority. Bonus for mentioning the F1 score or threshold tuning.",
		Style:          StyleTerminology,
	},
	StyleProblemSolving: {
		Question:       "A classification dataset has 99% negative examples. How would you build and evaluate a model that is genuinely useful?",
		ExpectedAnswer: "The candidate should reject accuracy as the metric, propose precision/recall, PR-AUC or cost-based metrics, and discuss resampling, class weights, threshold tuning and collecting more positive examples. They should validate with a stratified split.",
		EvaluationTips: "Evaluate the reasoning process: do they identify the metric problem first, weigh several techniques, and explain how they would verify the improvement?",
		Style:          StyleProblemSolving,
	},
}

// DefaultQuestions は要求されたスタイルの固定質問を要求順に返し、count件に切り詰めます。
// 固定質問が足りない場合は補充しません。
func DefaultQuestions(styles []Style, count int) []QuestionItem {
	items := make([]QuestionItem, 0, len(styles))
	seen := make(map[Style]bool, len(styles))
	for _, s := range styles {
		q, ok := defaultQuestions[s]
		if !ok || seen[s] {
			continue
		}
		seen[s] = true
		items = append(items, q)
	}
	if count >= 0 && len(items) > count {
		items = items[:count]
	}
	return items
}

// FallbackDuration は質問数からclamp(count*15, 60, 120)分の所要時間を表示用に整形します。
func FallbackDuration(count int) string {
	minutes := min(max(count*15, 60), 120)
	hours := float64(minutes) / 60
	return fmt.Sprintf("Approximately %d to %d hours", int(math.Floor(hours)), int(math.Ceil(hours)))
}

// DefaultStructure は構成ステージが失敗した場合の固定の面接構成です。
func DefaultStructure(count int) InterviewStructure {
	return InterviewStructure{
		EstimatedDuration: FallbackDuration(count),
		Sections: InterviewSections{
			Introduction:         "Begin by welcoming the candidate and providing a brief overview of the company and its AI initiatives. Explain the role's expectations in terms of technical expertise and ethical responsibility. Outline the interview format and estimated timing to set clear expectations.",
			TechnicalAssessment:  "Start with foundational AI concepts such as machine learning principles and differences from traditional programming. Progress to discussing practical applications and challenges in NLP and computer vision. Incorporate problem-solving questions about model performance and bias mitigation to evaluate applied knowledge.",
			BehavioralAssessment: "Assess communication clarity as candidates explain complex AI concepts. Explore teamwork experiences, adaptability to evolving AI technologies, and ethical decision-making approaches. Use open-ended questions to gauge cultural fit and collaboration skills.",
			Closing:              "Invite the candidate's questions to clarify any role or company aspects. Explain next steps in the hiring process and provide a timeline for feedback. Thank the candidate for their time and maintain a professional, positive tone to end the interview.",
		},
	}
}
