package service

import "adaptivequiz/internal/model"

// SampleQuestions is the built-in starter set
var SampleQuestions = []model.Question{
	{
		QuestionText:  "What is the capital of France?",
		Options:       []string{"London", "Berlin", "Paris", "Madrid"},
		CorrectAnswer: "Paris",
		Difficulty:    model.DifficultyEasy,
	},
	{
		QuestionText:  "What is 2 + 2?",
		Options:       []string{"3", "4", "5", "6"},
		CorrectAnswer: "4",
		Difficulty:    model.DifficultyEasy,
	},
	{
		QuestionText:  "What is the chemical symbol for gold?",
		Options:       []string{"Go", "Gd", "Au", "Ag"},
		CorrectAnswer: "Au",
		Difficulty:    model.DifficultyMedium,
	},
	{
		QuestionText:  "Who wrote 'Romeo and Juliet'?",
		Options:       []string{"Shakespeare", "Dickens", "Hemingway", "Twain"},
		CorrectAnswer: "Shakespeare",
		Difficulty:    model.DifficultyMedium,
	},
	{
		QuestionText:  "What is the speed of light in m/s?",
		Options:       []string{"3x10^6", "3x10^8", "3x10^10", "3x10^12"},
		CorrectAnswer: "3x10^8",
		Difficulty:    model.DifficultyHard,
	},
}
