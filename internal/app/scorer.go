package app

import "quizmatch-service/internal/domain"

// Score counts the positions where the submitted answer index equals the
// question's correct option. Answers are positional: answers[i] belongs to
// questions[i]. Missing or out-of-range answers count as incorrect rather
// than erroring, so the result is always within [0, len(questions)].
func Score(questions []domain.Question, answers []int) int {
	total := 0
	for i, q := range questions {
		if i >= len(answers) {
			break
		}
		a := answers[i]
		if a < 0 || a >= len(q.Options) {
			continue
		}
		if a == q.CorrectOption {
			total++
		}
	}
	return total
}
