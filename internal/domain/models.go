package domain

import (
	"fmt"
	"math/rand"
	"sort"
)

// GroupKind is the closed set of answer-group variants.
type GroupKind string

const (
	SingleChoice GroupKind = "choose-single"
	MultiChoice  GroupKind = "choose-multiple"
	FillBlank    GroupKind = "fill-blank"
)

// Choice is one answer option. Implementations are immutable values;
// equality is structural and used for deduplication and tests.
type Choice interface {
	Equal(other Choice) bool
	Render(showAnswers bool) string
}

// FixedChoice is a selectable multiple-choice option.
type FixedChoice struct {
	Correct bool
	Text    string
}

func (c FixedChoice) Equal(other Choice) bool {
	o, ok := other.(FixedChoice)
	return ok && o == c
}

// BlankChoice is a fill-in slot. Length is the field width in inches,
// kept as the source attribute string.
type BlankChoice struct {
	Answer    string
	HasAnswer bool
	Length    string
}

func (b BlankChoice) Equal(other Choice) bool {
	o, ok := other.(BlankChoice)
	return ok && o == b
}

// AnswerGroup is a typed group of choices. A FillBlank group holds exactly
// one BlankChoice; fixed groups hold zero or more FixedChoice values.
type AnswerGroup struct {
	Kind    GroupKind
	Choices []Choice
}

func (g AnswerGroup) Equal(other AnswerGroup) bool {
	if g.Kind != other.Kind || len(g.Choices) != len(other.Choices) {
		return false
	}
	for i := range g.Choices {
		if !g.Choices[i].Equal(other.Choices[i]) {
			return false
		}
	}
	return true
}

// shuffle permutes the group's choices. Blank groups and groups with fewer
// than two choices never consume a random draw; that is part of the
// determinism contract, not an optimization.
func (g *AnswerGroup) shuffle(rnd *rand.Rand) {
	if g.Kind == FillBlank || len(g.Choices) < 2 {
		return
	}
	rnd.Shuffle(len(g.Choices), func(i, j int) {
		g.Choices[i], g.Choices[j] = g.Choices[j], g.Choices[i]
	})
}

// Answers is the ordered sequence of answer groups of one question.
// Group order is rendering order and is never permuted.
type Answers struct {
	Groups []AnswerGroup
}

func (a Answers) Equal(other Answers) bool {
	if len(a.Groups) != len(other.Groups) {
		return false
	}
	for i := range a.Groups {
		if !a.Groups[i].Equal(other.Groups[i]) {
			return false
		}
	}
	return true
}

func (a *Answers) shuffle(rnd *rand.Rand) {
	for i := range a.Groups {
		a.Groups[i].shuffle(rnd)
	}
}

// Question binds a prompt to its answers. A question is a value: identity
// is its content.
type Question struct {
	Text    string
	Answers Answers
}

func (q Question) Equal(other Question) bool {
	return q.Text == other.Text && q.Answers.Equal(other.Answers)
}

// Section is a named pool of questions, mergeable across bank files and
// sampled down to a fixed count per exam.
type Section struct {
	Name      string
	Questions []Question
}

func NewSection(name string) *Section {
	return &Section{Name: name}
}

// AddQuestion appends a question, rejecting structural duplicates.
func (s *Section) AddQuestion(q Question) error {
	for _, existing := range s.Questions {
		if existing.Equal(q) {
			return fmt.Errorf("%w: %q", ErrDuplicateQuestion, q.Text)
		}
	}
	s.Questions = append(s.Questions, q)
	return nil
}

// Merge appends other's questions after the existing ones, preserving
// other's internal order. Both sections must carry the same name.
func (s *Section) Merge(other *Section) error {
	if s.Name != other.Name {
		return fmt.Errorf("%w: %q vs %q", ErrSectionMismatch, s.Name, other.Name)
	}
	for _, q := range other.Questions {
		if err := s.AddQuestion(q); err != nil {
			return err
		}
	}
	return nil
}

// Shuffle normalizes the question list to text order, shuffles each
// question's choice groups in that order, then permutes the questions.
// Sorting first decouples the outcome from bank-file merge order: the
// same seed and pool content yield the same result regardless of how the
// pool was assembled.
func (s *Section) Shuffle(rnd *rand.Rand) {
	sort.Slice(s.Questions, func(i, j int) bool {
		return s.Questions[i].Text < s.Questions[j].Text
	})
	for i := range s.Questions {
		s.Questions[i].Answers.shuffle(rnd)
	}
	rnd.Shuffle(len(s.Questions), func(i, j int) {
		s.Questions[i], s.Questions[j] = s.Questions[j], s.Questions[i]
	})
}

// ReduceToSample replaces the question list with a uniform sample of k
// distinct questions from the current pool.
func (s *Section) ReduceToSample(rnd *rand.Rand, k int) error {
	if k > len(s.Questions) {
		return fmt.Errorf("section %q: %w: want %d of %d", s.Name, ErrSampleTooLarge, k, len(s.Questions))
	}
	sample := make([]Question, 0, k)
	for _, idx := range rnd.Perm(len(s.Questions))[:k] {
		sample = append(sample, s.Questions[idx])
	}
	s.Questions = sample
	return nil
}

// Exam is one variant: an insertion-ordered collection of sections plus
// the metadata that parameterizes the rendered document.
type Exam struct {
	Seed        int64
	Title       string
	Name        string
	Variant     string
	ShowAnswers bool

	sections []*Section
	index    map[string]int
}

func NewExam(seed int64, title, name, variant string, showAnswers bool) *Exam {
	return &Exam{
		Seed:        seed,
		Title:       title,
		Name:        name,
		Variant:     variant,
		ShowAnswers: showAnswers,
		index:       make(map[string]int),
	}
}

// AddOrMergeSection inserts a new section or merges into the section of
// the same name. Later merges do not change a section's position.
func (e *Exam) AddOrMergeSection(sec *Section) error {
	if i, ok := e.index[sec.Name]; ok {
		return e.sections[i].Merge(sec)
	}
	e.index[sec.Name] = len(e.sections)
	e.sections = append(e.sections, sec)
	return nil
}

// Section returns the section with the given name, if present.
func (e *Exam) Section(name string) (*Section, bool) {
	i, ok := e.index[name]
	if !ok {
		return nil, false
	}
	return e.sections[i], true
}

// Sections returns the sections in insertion order.
func (e *Exam) Sections() []*Section {
	return e.sections
}

// Shuffle visits sections in name-sorted order so the draws a section
// receives depend only on the set of section names, not on bank-file order.
func (e *Exam) Shuffle(rnd *rand.Rand) {
	byName := make([]*Section, len(e.sections))
	copy(byName, e.sections)
	sort.Slice(byName, func(i, j int) bool { return byName[i].Name < byName[j].Name })
	for _, sec := range byName {
		sec.Shuffle(rnd)
	}
}
