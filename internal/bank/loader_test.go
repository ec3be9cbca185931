package bank_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"examgen/internal/bank"
	"examgen/internal/domain"
)

const sampleBank = `<section name="intro">
  <question>
    <text>  What resists changes in motion?  </text>
    <answers>
      <choose-single>
        <correct-choice>Mass</correct-choice>
        <choice>Charge</choice>
      </choose-single>
      <fill-blank length="3">
        <correct-text> inertia </correct-text>
      </fill-blank>
    </answers>
  </question>
  <question>
    <text>Pick the vector quantities.</text>
    <answers>
      <choose-multiple>
        <correct-choice>Velocity</correct-choice>
        <correct-choice>Force</correct-choice>
        <choice>Temperature</choice>
      </choose-multiple>
      <fill-blank/>
    </answers>
  </question>
</section>`

func TestParseSection(t *testing.T) {
	sec, err := bank.ParseSection([]byte(sampleBank))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if sec.Name != "intro" {
		t.Fatalf("name = %q, want intro", sec.Name)
	}
	if len(sec.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(sec.Questions))
	}

	first := sec.Questions[0]
	if first.Text != "What resists changes in motion?" {
		t.Fatalf("text not trimmed: %q", first.Text)
	}
	groups := first.Answers.Groups
	if len(groups) != 2 || groups[0].Kind != domain.SingleChoice || groups[1].Kind != domain.FillBlank {
		t.Fatalf("unexpected group layout: %+v", groups)
	}
	if want := (domain.FixedChoice{Correct: true, Text: "Mass"}); !groups[0].Choices[0].Equal(want) {
		t.Fatalf("first choice = %+v, want %+v", groups[0].Choices[0], want)
	}
	if want := (domain.BlankChoice{Answer: "inertia", HasAnswer: true, Length: "3"}); !groups[1].Choices[0].Equal(want) {
		t.Fatalf("blank = %+v, want %+v", groups[1].Choices[0], want)
	}

	second := sec.Questions[1]
	multi := second.Answers.Groups[0]
	if multi.Kind != domain.MultiChoice || len(multi.Choices) != 3 {
		t.Fatalf("unexpected multi group: %+v", multi)
	}
	// Bare fill-blank: no answer, default length.
	if want := (domain.BlankChoice{Length: "2"}); !second.Answers.Groups[1].Choices[0].Equal(want) {
		t.Fatalf("bare blank = %+v, want %+v", second.Answers.Groups[1].Choices[0], want)
	}
}

func TestParseSectionErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "wrong root",
			doc:  `<quiz name="intro"/>`,
			want: "section",
		},
		{
			name: "missing name",
			doc:  `<section></section>`,
			want: "name attribute",
		},
		{
			name: "missing text",
			doc:  `<section name="a"><question><answers/></question></section>`,
			want: "missing text",
		},
		{
			name: "missing answers",
			doc:  `<section name="a"><question><text>q</text></question></section>`,
			want: "missing answers",
		},
		{
			name: "unsupported group",
			doc:  `<section name="a"><question><text>q</text><answers><essay/></answers></question></section>`,
			want: "unsupported answer group <essay>",
		},
		{
			name: "unsupported choice",
			doc:  `<section name="a"><question><text>q</text><answers><choose-single><maybe>x</maybe></choose-single></answers></question></section>`,
			want: "unsupported choice element <maybe>",
		},
		{
			name: "correct-text in fixed group",
			doc:  `<section name="a"><question><text>q</text><answers><choose-single><correct-text>leak</correct-text><choice>x</choice></choose-single></answers></question></section>`,
			want: "unsupported choice element <correct-text> in <choose-single>",
		},
		{
			name: "length on fixed group",
			doc:  `<section name="a"><question><text>q</text><answers><choose-multiple length="2"><choice>x</choice></choose-multiple></answers></question></section>`,
			want: "unsupported length attribute on <choose-multiple>",
		},
		{
			name: "empty choice",
			doc:  `<section name="a"><question><text>q</text><answers><choose-single><choice>  </choice></choose-single></answers></question></section>`,
			want: "empty <choice> in <choose-single>",
		},
		{
			name: "blank with choices",
			doc:  `<section name="a"><question><text>q</text><answers><fill-blank><choice>x</choice></fill-blank></answers></question></section>`,
			want: "fill-blank group must not contain",
		},
		{
			name: "bad blank length",
			doc:  `<section name="a"><question><text>q</text><answers><fill-blank length="wide"/></answers></question></section>`,
			want: "not a positive number",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := bank.ParseSection([]byte(tc.doc))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestParseSectionRejectsDuplicateQuestions(t *testing.T) {
	doc := `<section name="a">
  <question><text>q</text><answers><choose-single><choice>x</choice></choose-single></answers></question>
  <question><text>q</text><answers><choose-single><choice>x</choice></choose-single></answers></question>
</section>`
	_, err := bank.ParseSection([]byte(doc))
	if !errors.Is(err, domain.ErrDuplicateQuestion) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestLoadSection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "intro.xml")
	if err := os.WriteFile(path, []byte(sampleBank), 0o644); err != nil {
		t.Fatalf("write bank: %v", err)
	}

	sec, err := bank.LoadSection(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if sec.Name != "intro" || len(sec.Questions) != 2 {
		t.Fatalf("unexpected section: %q with %d questions", sec.Name, len(sec.Questions))
	}

	if _, err := bank.LoadSection(filepath.Join(dir, "missing.xml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
