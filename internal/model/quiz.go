package model

// QuizQuestion 单道题目，CorrectAnswers 为无序集合
type QuizQuestion struct {
	Question       string   `json:"question" yaml:"question"`
	Options        []string `json:"options" yaml:"options"`
	CorrectAnswers []string `json:"correct_answers" yaml:"correct_answers"`
}

// QuizDefinition 测验定义，Title 取自对应学习页面
type QuizDefinition struct {
	ID        string
	Title     string
	Questions []QuizQuestion
}

// ClientQuestion 下发给客户端的题目，不包含正确答案
type ClientQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type ClientQuiz struct {
	Title     string           `json:"title"`
	Questions []ClientQuestion `json:"questions"`
}

type QuizSubmission struct {
	UserID  string     `json:"user_id" binding:"required"`
	Answers [][]string `json:"answers" binding:"required"`
}

type GradeResult struct {
	Score          int  `json:"score"`
	TotalQuestions int  `json:"totalQuestions"`
	Passed         bool `json:"passed"`
}

// LearningMaterial 学习页面及其标题
type LearningMaterial struct {
	File  string `json:"file"`
	Title string `json:"title"`
}
