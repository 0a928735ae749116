package model

// StartQuizRequest opens a session
type StartQuizRequest struct {
	UserID        string  `json:"userId"`
	PreviousScore float64 `json:"previousScore"`
}

// StartQuizResponse carries the first question
type StartQuizResponse struct {
	SessionID         string          `json:"sessionId"`
	Difficulty        Difficulty      `json:"difficulty"`
	Question          *PublicQuestion `json:"question"`
	QuestionsAnswered int             `json:"questionsAnswered"`
	CorrectAnswers    int             `json:"correctAnswers"`
	TotalQuestions    int             `json:"totalQuestions"`
}

// SubmitAnswerRequest grades one answer
type SubmitAnswerRequest struct {
	SessionID  string `json:"sessionId"`
	QuestionID string `json:"questionId"`
	UserAnswer string `json:"userAnswer"`
}

// AnswerResult is the verdict for one submitted answer
type AnswerResult struct {
	IsCorrect     bool   `json:"isCorrect"`
	Score         int    `json:"score"`
	Message       string `json:"message"`
	CorrectAnswer string `json:"correctAnswer"`
}

// NextQuestionRequest advances a session. PreviousScore is 1 when the last answer was correct.
type NextQuestionRequest struct {
	SessionID     string `json:"sessionId"`
	PreviousScore int    `json:"previousScore"`
}

// NextQuestionResponse is either progress with a new question or the terminal summary
type NextQuestionResponse struct {
	Question          *PublicQuestion `json:"question,omitempty"`
	Difficulty        Difficulty      `json:"difficulty,omitempty"`
	QuestionsAnswered int             `json:"questionsAnswered"`
	CorrectAnswers    int             `json:"correctAnswers"`
	CurrentAccuracy   float64         `json:"currentAccuracy"`
	TotalQuestions    int             `json:"totalQuestions"`
	SessionCompleted  bool            `json:"sessionCompleted"`
	Summary           *SessionSummary `json:"summary,omitempty"`
}

// EndQuizRequest terminates a session early or explicitly
type EndQuizRequest struct {
	SessionID string `json:"sessionId"`
}

// SessionSummary is the terminal result of a session
type SessionSummary struct {
	SessionID         string     `json:"sessionId"`
	UserID            string     `json:"userId"`
	FinalScore        float64    `json:"finalScore"`
	QuestionsAnswered int        `json:"questionsAnswered"`
	CorrectAnswers    int        `json:"correctAnswers"`
	FinalDifficulty   Difficulty `json:"finalDifficulty"`
	Feedback          string     `json:"feedback"`
	NextDifficulty    Difficulty `json:"nextDifficulty"`
	SessionCompleted  bool       `json:"sessionCompleted"`
	ResultID          string     `json:"resultId,omitempty"`
}
