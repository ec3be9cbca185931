// Package app orchestrates the assembly pipeline: per seed, load banks,
// merge same-named sections, shuffle, sample, render, write.
package app

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"examgen/internal/bank"
	"examgen/internal/config"
	"examgen/internal/domain"
)

// Generator builds and writes exam variants for one configuration.
type Generator struct {
	cfg    config.Config
	outDir string
}

// Result describes one written exam document.
type Result struct {
	Seed        int64
	ShowAnswers bool
	Path        string
	Digest      string
}

// PoolReport summarizes one configured section against its merged pool.
type PoolReport struct {
	Name   string
	Pool   int
	Sample int
}

func NewGenerator(cfg config.Config, outDir string) *Generator {
	return &Generator{cfg: cfg, outDir: outDir}
}

// BuildExam assembles one variant. Each build owns its generator seeded
// from the exam seed, so builds for different seeds are independent and
// the paired answers variant reproduces the exact same draws.
func (g *Generator) BuildExam(seed int64, showAnswers bool) (*domain.Exam, error) {
	rnd := rand.New(rand.NewSource(seed))
	exam := domain.NewExam(seed, g.cfg.Title, g.cfg.Name, g.cfg.Variant, showAnswers)

	for _, path := range g.cfg.Files {
		sec, err := bank.LoadSection(path)
		if err != nil {
			return nil, err
		}
		if err := exam.AddOrMergeSection(sec); err != nil {
			return nil, err
		}
	}

	exam.Shuffle(rnd)

	for _, quota := range g.cfg.Sections {
		sec, ok := exam.Section(quota.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrSectionNotFound, quota.Name)
		}
		if err := sec.ReduceToSample(rnd, quota.Questions); err != nil {
			return nil, err
		}
	}
	return exam, nil
}

// Run builds, renders, and writes every configured variant. Seeds are
// processed concurrently; each goroutine owns its generator, which is what
// makes the parallelism safe. Results come back seed-ascending.
func (g *Generator) Run(ctx context.Context) ([]Result, error) {
	seeds := make([]int64, len(g.cfg.Seeds))
	copy(seeds, g.cfg.Seeds)
	sort.Slice(seeds, func(i, j int) bool { return seeds[i] < seeds[j] })

	perSeed := 1
	if g.cfg.AnswersVariant {
		perSeed = 2
	}
	results := make([]Result, len(seeds)*perSeed)

	eg, ctx := errgroup.WithContext(ctx)
	for i, seed := range seeds {
		i, seed := i, seed
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			variants := []bool{false}
			if g.cfg.AnswersVariant {
				variants = append(variants, true)
			}
			for j, showAnswers := range variants {
				res, err := g.writeExam(seed, showAnswers)
				if err != nil {
					return err
				}
				results[i*perSeed+j] = res
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (g *Generator) writeExam(seed int64, showAnswers bool) (Result, error) {
	exam, err := g.BuildExam(seed, showAnswers)
	if err != nil {
		return Result{}, err
	}

	doc := []byte(exam.Render())
	path := filepath.Join(g.outDir, examFileName(seed, showAnswers))
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return Result{}, fmt.Errorf("write exam: %w", err)
	}

	sum := sha512.Sum512(doc)
	return Result{
		Seed:        seed,
		ShowAnswers: showAnswers,
		Path:        path,
		Digest:      hex.EncodeToString(sum[:]),
	}, nil
}

// Validate loads and merges every bank once and checks each quota against
// its pool, without consuming randomness or writing files.
func (g *Generator) Validate() ([]PoolReport, error) {
	exam := domain.NewExam(0, g.cfg.Title, g.cfg.Name, g.cfg.Variant, false)
	for _, path := range g.cfg.Files {
		sec, err := bank.LoadSection(path)
		if err != nil {
			return nil, err
		}
		if err := exam.AddOrMergeSection(sec); err != nil {
			return nil, err
		}
	}

	reports := make([]PoolReport, 0, len(g.cfg.Sections))
	for _, quota := range g.cfg.Sections {
		sec, ok := exam.Section(quota.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrSectionNotFound, quota.Name)
		}
		if quota.Questions > len(sec.Questions) {
			return nil, fmt.Errorf("section %q: %w: want %d of %d",
				quota.Name, domain.ErrSampleTooLarge, quota.Questions, len(sec.Questions))
		}
		reports = append(reports, PoolReport{Name: quota.Name, Pool: len(sec.Questions), Sample: quota.Questions})
	}
	return reports, nil
}

func examFileName(seed int64, showAnswers bool) string {
	if showAnswers {
		return fmt.Sprintf("exam_%d_answers.tex", seed)
	}
	return fmt.Sprintf("exam_%d.tex", seed)
}
