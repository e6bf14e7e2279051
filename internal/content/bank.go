package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/vytor/theoryflash/internal/logger"
	"github.com/vytor/theoryflash/internal/models"
)

//go:embed bank.json
var embeddedBank []byte

// Bank is the read-only question and sign content.
type Bank struct {
	Questions []models.Question `json:"questions"`
	Signs     []models.Sign     `json:"signs"`

	questions map[string]models.Question
	signs     map[string]models.Sign
}

// Default returns the embedded bank.
func Default() *Bank {
	b, err := Parse(embeddedBank)
	if err != nil {
		panic(fmt.Sprintf("embedded content bank is invalid: %v", err))
	}
	return b
}

// Load reads the bank at path, or the embedded one when path is empty.
func Load(path string) (*Bank, error) {
	log := logger.Default().WithPrefix("content")
	if strings.TrimSpace(path) == "" {
		log.Debug("using embedded content bank")
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content bank: %w", err)
	}
	b, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	log.Info("loaded content bank %s: %d questions, %d signs", path, len(b.Questions), len(b.Signs))
	return b, nil
}

// Parse decodes and validates a bank document.
func Parse(raw []byte) (*Bank, error) {
	var doc Bank
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode content bank: %w", err)
	}
	return New(doc.Questions, doc.Signs)
}

// New indexes questions and signs, rejecting duplicates and impossible answers.
func New(questions []models.Question, signs []models.Sign) (*Bank, error) {
	b := &Bank{
		questions: make(map[string]models.Question, len(questions)),
		signs:     make(map[string]models.Sign, len(signs)),
	}
	for _, s := range signs {
		if s.ID == "" {
			return nil, fmt.Errorf("sign without id")
		}
		if _, dup := b.signs[s.ID]; dup {
			return nil, fmt.Errorf("duplicate sign id %q", s.ID)
		}
		b.signs[s.ID] = s
		b.Signs = append(b.Signs, s)
	}
	for _, q := range questions {
		if q.ID == "" {
			return nil, fmt.Errorf("question without id")
		}
		if _, dup := b.questions[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		if q.CorrectAnswer < 0 || (len(q.Options) > 0 && q.CorrectAnswer >= len(q.Options)) {
			return nil, fmt.Errorf("question %q: correct answer %d out of range", q.ID, q.CorrectAnswer)
		}
		if q.SignID != "" {
			if _, ok := b.signs[q.SignID]; !ok {
				return nil, fmt.Errorf("question %q references unknown sign %q", q.ID, q.SignID)
			}
		}
		b.questions[q.ID] = q
		b.Questions = append(b.Questions, q)
	}
	return b, nil
}

// Question looks up a question by id.
func (b *Bank) Question(id string) (models.Question, bool) {
	q, ok := b.questions[id]
	return q, ok
}

// Sign looks up a sign by id.
func (b *Bank) Sign(id string) (models.Sign, bool) {
	s, ok := b.signs[id]
	return s, ok
}

// SignIDs lists sign ids in bank order; it is the flashcard deck.
func (b *Bank) SignIDs() []string {
	out := make([]string, 0, len(b.Signs))
	for _, s := range b.Signs {
		out = append(out, s.ID)
	}
	return out
}

// Categories lists the distinct question categories, sorted.
func (b *Bank) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range b.Questions {
		if !seen[q.Category] {
			seen[q.Category] = true
			out = append(out, q.Category)
		}
	}
	sort.Strings(out)
	return out
}
