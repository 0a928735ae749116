package model

import "time"

// Result is the persisted outcome of a finished session
type Result struct {
	ID                string     `json:"id" bson:"_id"`
	UserID            string     `json:"userId" bson:"userId"`
	TotalScore        float64    `json:"totalScore" bson:"totalScore"`
	QuestionsAnswered int        `json:"questionsAnswered" bson:"questionsAnswered"`
	CorrectAnswers    int        `json:"correctAnswers" bson:"correctAnswers"`
	FinalDifficulty   Difficulty `json:"finalDifficulty" bson:"finalDifficulty"`
	Feedback          string     `json:"feedback" bson:"feedback"`
	NextDifficulty    Difficulty `json:"nextDifficulty" bson:"nextDifficulty"`
	Timestamp         time.Time  `json:"timestamp" bson:"timestamp"`
}
