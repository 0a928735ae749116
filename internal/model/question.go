package model

// OptionCount is the number of choices every question carries
const OptionCount = 4

// Question is a stored multiple-choice question
type Question struct {
	ID            string     `json:"id" bson:"_id"`
	QuestionText  string     `json:"questionText" bson:"questionText"`
	Options       []string   `json:"options" bson:"options"`
	CorrectAnswer string     `json:"correctAnswer,omitempty" bson:"correctAnswer"`
	Difficulty    Difficulty `json:"difficulty" bson:"difficulty"`
}

// PublicQuestion is what a learner sees while a session is running
type PublicQuestion struct {
	ID           string     `json:"id"`
	QuestionText string     `json:"questionText"`
	Options      []string   `json:"options"`
	Difficulty   Difficulty `json:"difficulty"`
}

// Public strips the correct answer
func (q *Question) Public() *PublicQuestion {
	if q == nil {
		return nil
	}
	opts := make([]string, len(q.Options))
	copy(opts, q.Options)
	return &PublicQuestion{
		ID:           q.ID,
		QuestionText: q.QuestionText,
		Options:      opts,
		Difficulty:   q.Difficulty,
	}
}

// CreateQuestionRequest is the admin payload for adding a question
type CreateQuestionRequest struct {
	QuestionText  string   `json:"questionText"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Difficulty    string   `json:"difficulty"`
}

// ImportReport summarises a bulk question import
type ImportReport struct {
	Imported       int `json:"imported"`
	Skipped        int `json:"skipped"`
	Failed         int `json:"failed"`
	TotalAvailable int `json:"totalAvailable"`
}
