// Package bank parses XML question-bank files into domain sections.
// Parsing is fail-fast: any unsupported tag or missing required part
// aborts the load, the pipeline never repairs malformed banks.
package bank

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"examgen/internal/domain"
)

const defaultBlankLength = "2"

type sectionXML struct {
	XMLName   xml.Name      `xml:"section"`
	Name      string        `xml:"name,attr"`
	Questions []questionXML `xml:"question"`
}

type questionXML struct {
	Text    string      `xml:"text"`
	Answers *answersXML `xml:"answers"`
}

// Answer-group children vary by tag and their document order matters, so
// they are captured with ",any" and dispatched on the element name.
type answersXML struct {
	Groups []groupXML `xml:",any"`
}

type groupXML struct {
	XMLName     xml.Name
	Length      string      `xml:"length,attr"`
	CorrectText *textXML    `xml:"correct-text"`
	Choices     []choiceXML `xml:",any"`
}

type textXML struct {
	Value string `xml:",chardata"`
}

type choiceXML struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
}

// LoadSection reads one bank file and builds its section.
func LoadSection(path string) (*domain.Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	sec, err := ParseSection(data)
	if err != nil {
		return nil, fmt.Errorf("bank %s: %w", path, err)
	}
	return sec, nil
}

// ParseSection builds a section from a bank document. The root element
// must be <section> with a non-empty name attribute.
func ParseSection(data []byte) (*domain.Section, error) {
	var root sectionXML
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(root.Name)
	if name == "" {
		return nil, errors.New("section is missing the name attribute")
	}

	sec := domain.NewSection(name)
	for i, q := range root.Questions {
		question, err := buildQuestion(q)
		if err != nil {
			return nil, fmt.Errorf("section %q, question %d: %w", name, i+1, err)
		}
		if err := sec.AddQuestion(question); err != nil {
			return nil, fmt.Errorf("section %q: %w", name, err)
		}
	}
	return sec, nil
}

func buildQuestion(q questionXML) (domain.Question, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return domain.Question{}, errors.New("missing text")
	}
	if q.Answers == nil {
		return domain.Question{}, errors.New("missing answers")
	}

	groups := make([]domain.AnswerGroup, 0, len(q.Answers.Groups))
	for _, g := range q.Answers.Groups {
		group, err := buildGroup(g)
		if err != nil {
			return domain.Question{}, err
		}
		groups = append(groups, group)
	}
	return domain.Question{Text: text, Answers: domain.Answers{Groups: groups}}, nil
}

func buildGroup(g groupXML) (domain.AnswerGroup, error) {
	switch g.XMLName.Local {
	case string(domain.FillBlank):
		return buildBlankGroup(g)
	case string(domain.SingleChoice):
		return buildFixedGroup(domain.SingleChoice, g)
	case string(domain.MultiChoice):
		return buildFixedGroup(domain.MultiChoice, g)
	default:
		return domain.AnswerGroup{}, fmt.Errorf("unsupported answer group <%s>", g.XMLName.Local)
	}
}

func buildBlankGroup(g groupXML) (domain.AnswerGroup, error) {
	if len(g.Choices) > 0 {
		return domain.AnswerGroup{}, fmt.Errorf("fill-blank group must not contain <%s>", g.Choices[0].XMLName.Local)
	}

	length := strings.TrimSpace(g.Length)
	if length == "" {
		length = defaultBlankLength
	}
	if v, err := strconv.ParseFloat(length, 64); err != nil || v <= 0 {
		return domain.AnswerGroup{}, fmt.Errorf("fill-blank length %q is not a positive number", length)
	}

	blank := domain.BlankChoice{Length: length}
	if g.CorrectText != nil {
		blank.Answer = strings.TrimSpace(g.CorrectText.Value)
		blank.HasAnswer = true
	}
	return domain.AnswerGroup{Kind: domain.FillBlank, Choices: []domain.Choice{blank}}, nil
}

func buildFixedGroup(kind domain.GroupKind, g groupXML) (domain.AnswerGroup, error) {
	// The explicit fields exist for fill-blank decoding; on a fixed group
	// they mean the bank is malformed, not that they should be ignored.
	if g.CorrectText != nil {
		return domain.AnswerGroup{}, fmt.Errorf("unsupported choice element <correct-text> in <%s>", kind)
	}
	if g.Length != "" {
		return domain.AnswerGroup{}, fmt.Errorf("unsupported length attribute on <%s>", kind)
	}

	choices := make([]domain.Choice, 0, len(g.Choices))
	for _, c := range g.Choices {
		switch c.XMLName.Local {
		case "choice", "correct-choice":
			text := strings.TrimSpace(c.Text)
			if text == "" {
				return domain.AnswerGroup{}, fmt.Errorf("empty <%s> in <%s>", c.XMLName.Local, kind)
			}
			choices = append(choices, domain.FixedChoice{
				Correct: c.XMLName.Local == "correct-choice",
				Text:    text,
			})
		default:
			return domain.AnswerGroup{}, fmt.Errorf("unsupported choice element <%s> in <%s>", c.XMLName.Local, kind)
		}
	}
	return domain.AnswerGroup{Kind: kind, Choices: choices}, nil
}
