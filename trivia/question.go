// Package trivia implements the question gate that stands between a deadlocked
// board and the end of the game.
package trivia

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// OptionCount is the number of answers every question offers.
const OptionCount = 4

// ErrInvalidQuestion is returned for questions that cannot be asked.
var ErrInvalidQuestion = errors.New("invalid trivia question")

// Question is a multiple-choice prompt with exactly one correct option.
type Question struct {
	Prompt  string              `json:"prompt"`
	Options [OptionCount]string `json:"options"`
	Correct int                 `json:"correct"`
}

// UnmarshalJSON decodes a question, rejecting unknown fields and any option
// list that does not hold exactly OptionCount entries.
func (q *Question) UnmarshalJSON(data []byte) error {
	var raw struct {
		Prompt  string   `json:"prompt"`
		Options []string `json:"options"`
		Correct int      `json:"correct"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if len(raw.Options) != OptionCount {
		return fmt.Errorf("%w: %q has %d options, want %d", ErrInvalidQuestion, raw.Prompt, len(raw.Options), OptionCount)
	}

	q.Prompt = raw.Prompt
	copy(q.Options[:], raw.Options)
	q.Correct = raw.Correct
	return nil
}

// Validate checks the question can be presented and answered.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("%w: empty prompt", ErrInvalidQuestion)
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("%w: %q option %s is empty", ErrInvalidQuestion, q.Prompt, OptionLabel(i))
		}
	}
	if q.Correct < 0 || q.Correct >= OptionCount {
		return fmt.Errorf("%w: %q correct index %d", ErrInvalidQuestion, q.Prompt, q.Correct)
	}
	return nil
}

// OptionLabel returns the letter shown in front of option i ("A" for 0).
func OptionLabel(i int) string {
	if i < 0 || i >= OptionCount {
		return "?"
	}
	return string(rune('A' + i))
}

// Catalog is a fixed, read-only list of questions.
type Catalog struct {
	questions []Question
}

// NewCatalog validates questions and returns a catalog holding a private copy.
func NewCatalog(questions []Question) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrInvalidQuestion)
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
	}
	c := &Catalog{questions: make([]Question, len(questions))}
	copy(c.questions, questions)
	return c, nil
}

// DecodeCatalog reads a JSON array of questions.
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	var questions []Question
	dec := json.NewDecoder(r)
	if err := dec.Decode(&questions); err != nil {
		return nil, fmt.Errorf("decode trivia catalog: %w", err)
	}
	return NewCatalog(questions)
}

// Len returns the number of questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// At returns question i. Questions are values, so callers cannot alter the catalog.
func (c *Catalog) At(i int) Question {
	return c.questions[i]
}

// DefaultCatalog returns the built-in questions.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultQuestions)
	if err != nil {
		panic(err)
	}
	return c
}

var defaultQuestions = []Question{
	{
		Prompt:  "What is the capital of France?",
		Options: [OptionCount]string{"London", "Berlin", "Paris", "Madrid"},
		Correct: 2,
	},
	{
		Prompt:  "Which planet is known as the Red Planet?",
		Options: [OptionCount]string{"Venus", "Mars", "Jupiter", "Saturn"},
		Correct: 1,
	},
	{
		Prompt:  "What is 2 + 2?",
		Options: [OptionCount]string{"3", "4", "5", "6"},
		Correct: 1,
	},
	{
		Prompt:  "Who painted the Mona Lisa?",
		Options: [OptionCount]string{"Van Gogh", "Picasso", "Leonardo da Vinci", "Michelangelo"},
		Correct: 2,
	},
	{
		Prompt:  "What is the largest ocean on Earth?",
		Options: [OptionCount]string{"Atlantic", "Pacific", "Indian", "Arctic"},
		Correct: 1,
	},
	{
		Prompt:  "How many continents are there?",
		Options: [OptionCount]string{"5", "6", "7", "8"},
		Correct: 2,
	},
	{
		Prompt:  "What gas do plants absorb from the atmosphere?",
		Options: [OptionCount]string{"Oxygen", "Carbon Dioxide", "Nitrogen", "Hydrogen"},
		Correct: 1,
	},
	{
		Prompt:  "Which programming language is known for web development?",
		Options: [OptionCount]string{"Python", "JavaScript", "C++", "Java"},
		Correct: 1,
	},
	{
		Prompt:  "What is the smallest prime number?",
		Options: [OptionCount]string{"0", "1", "2", "3"},
		Correct: 2,
	},
	{
		Prompt:  "Which animal is known as the King of the Jungle?",
		Options: [OptionCount]string{"Tiger", "Lion", "Elephant", "Gorilla"},
		Correct: 1,
	},
	{
		Prompt:  "What is Java's motto?",
		Options: [OptionCount]string{"Compile once, crash everywhere", "Objects all the way down", "Write less, do more", "Write once, run anywhere"},
		Correct: 3,
	},
}
