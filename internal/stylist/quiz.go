package stylist

import (
	"fmt"
	"math"
	"slices"
)

// Question is one quiz step.
type Question struct {
	Field   string
	Title   string
	Options []string
	Multi   bool
}

// QuizQuestions are the six quiz steps in order.
var QuizQuestions = []Question{
	{
		Field:   "gender",
		Title:   "What's your gender preference?",
		Options: []string{"Women's Fashion", "Men's Fashion", "Unisex", "Prefer not to say"},
	},
	{
		Field:   "ageGroup",
		Title:   "What's your age group?",
		Options: []string{"18-25", "26-35", "36-45", "46-55", "56+"},
	},
	{
		Field:   "style",
		Title:   "What styles do you prefer?",
		Options: []string{"Casual", "Formal", "Street Style", "Bohemian", "Minimalist", "Vintage", "Sporty", "Chic"},
		Multi:   true,
	},
	{
		Field:   "colors",
		Title:   "What are your favorite colors?",
		Options: []string{"Black", "White", "Neutral Tones", "Pastels", "Bold Colors", "Earth Tones", "Jewel Tones"},
		Multi:   true,
	},
	{
		Field:   "occasions",
		Title:   "What occasions do you dress for?",
		Options: []string{"Work", "Casual Outings", "Parties", "Formal Events", "Sports", "Travel", "Date Night"},
		Multi:   true,
	},
	{
		Field:   "budget",
		Title:   "What's your budget range?",
		Options: []string{"Budget-Friendly ($)", "Mid-Range ($$)", "Premium ($$$)", "Luxury ($$$$)"},
	},
}

// QuizPreferences are the answers collected by the quiz.
type QuizPreferences struct {
	Gender    string   `json:"gender"`
	AgeGroup  string   `json:"ageGroup"`
	Style     []string `json:"style"`
	Colors    []string `json:"colors"`
	Occasions []string `json:"occasions"`
	Budget    string   `json:"budget"`
}

func (p *QuizPreferences) single(field string) *string {
	switch field {
	case "gender":
		return &p.Gender
	case "ageGroup":
		return &p.AgeGroup
	case "budget":
		return &p.Budget
	}
	return nil
}

func (p *QuizPreferences) multi(field string) *[]string {
	switch field {
	case "style":
		return &p.Style
	case "colors":
		return &p.Colors
	case "occasions":
		return &p.Occasions
	}
	return nil
}

// Quiz walks the user through QuizQuestions. Step is 1-based.
type Quiz struct {
	step     int
	answers  QuizPreferences
	complete bool
}

// NewQuiz starts at step 1 with no answers.
func NewQuiz() *Quiz {
	return &Quiz{step: 1}
}

func (q *Quiz) Step() int { return q.step }
func (q *Quiz) TotalSteps() int { return len(QuizQuestions) }
func (q *Quiz) Question() Question { return QuizQuestions[q.step-1] }
func (q *Quiz) Answers() QuizPreferences { return q.answers }
func (q *Quiz) Complete() bool { return q.complete }
func (q *Quiz) IsLastStep() bool { return q.step == len(QuizQuestions) }

// Percent is the rounded share of steps reached.
func (q *Quiz) Percent() int {
	return int(math.Round(float64(q.step) / float64(len(QuizQuestions)) * 100))
}

// Select toggles option on multi-select steps and replaces the answer on
// single-select steps.
func (q *Quiz) Select(option string) error {
	question := q.Question()
	if !slices.Contains(question.Options, option) {
		return fmt.Errorf("%w: %s %q", ErrInvalidOption, question.Field, option)
	}
	if question.Multi {
		values := q.answers.multi(question.Field)
		if i := slices.Index(*values, option); i >= 0 {
			*values = slices.Delete(*values, i, i+1)
		} else {
			*values = append(*values, option)
		}
		return nil
	}
	*q.answers.single(question.Field) = option
	return nil
}

// IsSelected reports whether option is part of the current step's answer.
func (q *Quiz) IsSelected(option string) bool {
	question := q.Question()
	if question.Multi {
		return slices.Contains(*q.answers.multi(question.Field), option)
	}
	return *q.answers.single(question.Field) == option
}

// CanProceed reports whether the current step has an answer.
func (q *Quiz) CanProceed() bool {
	question := q.Question()
	if question.Multi {
		return len(*q.answers.multi(question.Field)) > 0
	}
	return *q.answers.single(question.Field) != ""
}

// Next advances one step. On the last step it marks the quiz complete and
// returns the answers with done set.
func (q *Quiz) Next() (prefs QuizPreferences, done bool, err error) {
	if !q.CanProceed() {
		return QuizPreferences{}, false, fmt.Errorf("%w: %s unanswered", ErrIncomplete, q.Question().Field)
	}
	if q.step < len(QuizQuestions) {
		q.step++
		return QuizPreferences{}, false, nil
	}
	q.complete = true
	return q.answers, true, nil
}

// Back moves to the previous step. It reports false on step 1.
func (q *Quiz) Back() bool {
	if q.step <= 1 {
		return false
	}
	q.step--
	return true
}
