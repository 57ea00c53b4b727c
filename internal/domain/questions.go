package domain

// DefaultQuestionSetID names the question set every quiz attempt runs against.
const DefaultQuestionSetID = "default"

// DefaultQuestions returns the canonical deploy-time question set. Every
// CorrectOption happens to be 0 in this data; the scorer must not rely on it.
func DefaultQuestions() QuestionSet {
	return QuestionSet{
		ID: DefaultQuestionSetID,
		Questions: []Question{
			{
				ID:     1,
				Prompt: "What's your ideal weekend activity?",
				Options: []string{
					"Going to a party",
					"Reading a book at home",
					"Outdoor adventure",
					"Netflix and chill",
				},
				CorrectOption: 0,
			},
			{
				ID:     2,
				Prompt: "How do you prefer to communicate?",
				Options: []string{
					"Face-to-face",
					"Text messages",
					"Phone calls",
					"Social media",
				},
				CorrectOption: 0,
			},
			{
				ID:     3,
				Prompt: "What's your music taste?",
				Options: []string{
					"Pop and mainstream",
					"Rock and alternative",
					"Hip-hop and R&B",
					"Classical and jazz",
				},
				CorrectOption: 0,
			},
			{
				ID:     4,
				Prompt: "How do you handle stress?",
				Options: []string{
					"Talk to friends",
					"Exercise",
					"Meditation",
					"Creative activities",
				},
				CorrectOption: 0,
			},
			{
				ID:     5,
				Prompt: "What's your ideal vacation?",
				Options: []string{
					"Beach resort",
					"City exploration",
					"Mountain retreat",
					"Road trip",
				},
				CorrectOption: 0,
			},
		},
	}
}
