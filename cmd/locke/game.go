package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/FabledTyromancer/Professorlocke/internal/names"
	"github.com/FabledTyromancer/Professorlocke/internal/quiz"
	"github.com/FabledTyromancer/Professorlocke/internal/store"
	"github.com/FabledTyromancer/Professorlocke/internal/units"
)

const help = "Commands: :prev, :next, :units, :quit"

// Preferences and results are optional; store is nil with -no-save.
type resultStore interface {
	Preferences(ctx context.Context) (store.Preferences, error)
	SavePreferences(ctx context.Context, p store.Preferences) error
	RecordResult(ctx context.Context, r store.Result) (store.Result, error)
}

type game struct {
	in     io.Reader
	out    io.Writer
	logger *slog.Logger
	quiz   *quiz.Session
	store  resultStore
}

var errQuit = errors.New("quit")

func (g *game) play(ctx context.Context) error {
	if g.store != nil {
		prefs, err := g.store.Preferences(ctx)
		if err != nil {
			g.logger.Warn("loading preferences", "error", err)
		} else {
			g.quiz.SetUnits(units.FromMetric(prefs.UseMetric))
		}
	}

	sc := bufio.NewScanner(g.in)
	for {
		fmt.Fprint(g.out, "Which Pokémon? ")
		if !sc.Scan() {
			fmt.Fprintln(g.out)
			return sc.Err()
		}
		input := strings.TrimSpace(sc.Text())
		switch input {
		case "":
			continue
		case ":quit":
			return nil
		case ":units":
			g.toggleUnits(ctx)
			continue
		}

		if _, err := g.quiz.Start(input); err != nil {
			fmt.Fprintf(g.out, "No Pokémon matches %q.\n", input)
			continue
		}
		e, _ := g.quiz.Entity()
		fmt.Fprintf(g.out, "\nQuiz on %s (#%d), %d questions. %s\n",
			names.Display(e.Name), e.ID, g.quiz.Len(), help)

		if err := g.ask(ctx, sc); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		}
	}
}

// ask runs the question loop until the quiz is complete.
func (g *game) ask(ctx context.Context, sc *bufio.Scanner) error {
	for !g.quiz.IsComplete() {
		if err := ctx.Err(); err != nil {
			return err
		}
		q, _ := g.quiz.Current()
		i := g.quiz.Index()
		fmt.Fprintf(g.out, "\nQuestion %d/%d: %s\n", i+1, g.quiz.Len(), q.Prompt)
		if q.Kind == quiz.KindBoolean {
			fmt.Fprintln(g.out, "(true/false)")
		}
		if raw, v, ok := g.quiz.Answer(i); ok {
			fmt.Fprintf(g.out, "You answered %q. %s\n", raw, quiz.Feedback(v, q))
		}
		fmt.Fprint(g.out, "> ")

		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return err
			}
			return errQuit
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case ":quit":
			return errQuit
		case ":prev":
			g.quiz.Prev()
			continue
		case ":next":
			g.quiz.Next()
			continue
		case ":units":
			g.toggleUnits(ctx)
			continue
		case "":
			continue
		}

		v, err := g.quiz.Submit(line)
		if errors.Is(err, quiz.ErrAlreadyAnswered) {
			fmt.Fprintln(g.out, "Already answered. Use :next or :prev to move on.")
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(g.out, quiz.Feedback(v, q))
		g.advance()
	}

	grade, _ := g.quiz.Grade()
	fmt.Fprintf(g.out, "\n%s\n\n", quiz.GradeMessage(grade))
	g.record(ctx, grade)
	return nil
}

// advance moves to the next unanswered question, wrapping around once.
func (g *game) advance() {
	n := g.quiz.Len()
	start := g.quiz.Index()
	for step := 1; step < n; step++ {
		target := (start + step) % n
		if g.quiz.Answered(target) {
			continue
		}
		for g.quiz.Index() < target {
			g.quiz.Next()
		}
		for g.quiz.Index() > target {
			g.quiz.Prev()
		}
		return
	}
}

func (g *game) toggleUnits(ctx context.Context) {
	sys := units.Metric
	if g.quiz.Units().IsMetric() {
		sys = units.Imperial
	}
	g.quiz.SetUnits(sys)
	fmt.Fprintf(g.out, "Units: %s\n", sys)

	if g.store != nil {
		if err := g.store.SavePreferences(ctx, store.Preferences{UseMetric: sys.IsMetric()}); err != nil {
			g.logger.Warn("saving preferences", "error", err)
		}
	}
}

func (g *game) record(ctx context.Context, grade quiz.Grade) {
	if g.store == nil {
		return
	}
	e, _ := g.quiz.Entity()
	_, err := g.store.RecordResult(ctx, store.Result{
		Pokemon: e.Name,
		Score:   grade.Score,
		Total:   grade.Total,
		Percent: grade.Percent,
		Passed:  grade.Passed,
	})
	if err != nil {
		g.logger.Warn("recording result", "error", err)
	}
}
