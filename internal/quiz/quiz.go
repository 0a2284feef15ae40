// Package quiz holds the general-knowledge questions a visitor answers before
// signing up. Answers are recorded as given; none is marked right or wrong.
package quiz

import "errors"

var ErrNoAnswer = errors.New("no answer selected")

type Question struct {
	Prompt  string
	Options []string
}

var questions = []Question{
	{
		Prompt:  "Which is the largest ocean in the world?",
		Options: []string{"Atlantic Ocean", "Indian Ocean", "Pacific Ocean", "Arctic Ocean"},
	},
	{
		Prompt:  "Who is known as the father of computers?",
		Options: []string{"Charles Babbage", "Albert Einstein", "Isaac Newton", "Alan Turing"},
	},
	{
		Prompt:  "What is the capital of Japan?",
		Options: []string{"Seoul", "Beijing", "Tokyo", "Bangkok"},
	},
}

// Questions returns a copy of the fixed question list, in order.
func Questions() []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		out[i] = Question{Prompt: q.Prompt, Options: append([]string(nil), q.Options...)}
	}
	return out
}

// Chooser picks one option for question i of total.
type Chooser func(q Question, i, total int) (string, error)

// Run asks every question in order and returns the chosen options. An empty
// choice is an error; any non-empty choice is accepted.
func Run(choose Chooser) ([]string, error) {
	qs := Questions()
	answers := make([]string, 0, len(qs))

	for i, q := range qs {
		a, err := choose(q, i, len(qs))
		if err != nil {
			return nil, err
		}
		if a == "" {
			return nil, ErrNoAnswer
		}
		answers = append(answers, a)
	}

	return answers, nil
}
