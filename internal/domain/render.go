package domain

import (
	"fmt"
	"strings"
)

// Rendering targets the LaTeX exam document class. Every Render is pure:
// no mutation, byte-identical output on repeated calls.

func (c FixedChoice) Render(showAnswers bool) string {
	directive := `\choice`
	if c.Correct && showAnswers {
		directive = `\CorrectChoice`
	}
	return directive + " " + c.Text + "\n"
}

func (b BlankChoice) Render(showAnswers bool) string {
	var sb strings.Builder
	sb.WriteString(`\fillin`)
	if showAnswers && b.HasAnswer {
		sb.WriteString("[" + b.Answer + "]")
	}
	sb.WriteString("[" + b.Length + "in]")
	return sb.String()
}

func (g AnswerGroup) Render(showAnswers bool) string {
	var sb strings.Builder
	switch g.Kind {
	case FillBlank:
		for _, c := range g.Choices {
			sb.WriteString("\n")
			sb.WriteString(c.Render(showAnswers))
		}
	case SingleChoice:
		renderWrapped(&sb, "choices", g.Choices, showAnswers)
	case MultiChoice:
		renderWrapped(&sb, "checkboxes", g.Choices, showAnswers)
	}
	sb.WriteString("\n")
	return sb.String()
}

func renderWrapped(sb *strings.Builder, env string, choices []Choice, showAnswers bool) {
	sb.WriteString(`\begin{` + env + "}\n")
	for _, c := range choices {
		sb.WriteString("\n")
		sb.WriteString(c.Render(showAnswers))
	}
	sb.WriteString("\n\\end{" + env + "}")
}

func (a Answers) Render(showAnswers bool) string {
	var sb strings.Builder
	for _, g := range a.Groups {
		sb.WriteString("\n")
		sb.WriteString(g.Render(showAnswers))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (q Question) Render(showAnswers bool) string {
	var sb strings.Builder
	sb.WriteString("\\question\n")
	sb.WriteString(q.Text)
	sb.WriteString("\n")
	sb.WriteString(q.Answers.Render(showAnswers))
	sb.WriteString("\n")
	return sb.String()
}

func (s *Section) Render(showAnswers bool) string {
	var sb strings.Builder
	for _, q := range s.Questions {
		sb.WriteString("\n")
		sb.WriteString(q.Render(showAnswers))
	}
	sb.WriteString("\n")
	return sb.String()
}

// Render emits the full document: preamble, all sections in insertion
// order, closer.
func (e *Exam) Render() string {
	var sb strings.Builder
	sb.WriteString(e.preamble())
	for _, sec := range e.sections {
		sb.WriteString("\n")
		sb.WriteString(sec.Render(e.ShowAnswers))
	}
	sb.WriteString("\n\\end{questions}\n\\end{document}\n")
	return sb.String()
}

func (e *Exam) preamble() string {
	classOpts := "a4paper"
	if e.ShowAnswers {
		classOpts += ",answers"
	}
	header := fmt.Sprintf("{%s}{%s}{%s %d}", e.Name, e.Title, e.Variant, e.Seed)
	return `\documentclass[` + classOpts + `]{exam}

\usepackage[T2A]{fontenc}
\usepackage[utf8]{inputenc}
\usepackage[bulgarian]{babel}
\selectlanguage{bulgarian}
\usepackage{minted}
\usepackage{color}

\pagestyle{headandfoot}

\runningheadrule
\runningfootrule
\firstpageheadrule
\firstpagefootrule

\firstpageheader` + header + `
\runningheader` + header + `

\firstpagefooter{}{\thepage\ / \numpages}{}
\runningfooter{}{\thepage\ / \numpages}{}

\begin{document}

\begin{questions}
`
}
