package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"strait/internal/batch"
	"strait/internal/diag"
	"strait/internal/obligation"
	"strait/internal/report"
)

// Options управляет прогоном репортера.
type Options struct {
	// Jobs ограничивает параллелизм рендеринга; 0 = GOMAXPROCS, 1 =
	// последовательный прогон.
	Jobs int
	// MaxDiagnostics задаёт ёмкость Bag при загрузке дампа.
	MaxDiagnostics int
	// RecursionLimit из манифеста; дамп решателя имеет приоритет.
	RecursionLimit int
}

// DefaultMaxDiagnostics bounds the bag when the manifest does not say
// otherwise.
const DefaultMaxDiagnostics = 256

// Run admits every failure in input order, renders the admitted ones and
// merges the results into the session's bag. Admission is sequential: the
// dedup gate and the prior-error snapshots depend on order. Rendering is
// parallel when allowed, but the merged output is byte-identical to the
// sequential run.
//
// Admission snapshots the prior-error state, so a failure may only be
// admitted after every earlier failure has finished reporting. The run
// therefore stays sequential until the session first carries an error;
// from that point HasErrors can never flip back, the remaining snapshots
// are all equal, and rendering is free to fan out.
func Run(ctx context.Context, sess *report.Session, failures []obligation.Failure, opts Options) (*diag.Fatal, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	rep := report.New(sess)

	next := 0
	for ; next < len(failures) && !sess.HasErrors(); next++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		adm, ok := sess.Admit(&failures[next])
		if !ok {
			continue
		}
		if fatal := rep.Render(adm, sess.Sink()); fatal != nil {
			return fatal, nil
		}
	}
	if next >= len(failures) {
		return nil, nil
	}

	admitted := make([]report.Admitted, 0, len(failures)-next)
	for i := next; i < len(failures); i++ {
		if adm, ok := sess.Admit(&failures[i]); ok {
			admitted = append(admitted, adm)
		}
	}

	if jobs == 1 || len(admitted) < 2 {
		for _, adm := range admitted {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if fatal := rep.Render(adm, sess.Sink()); fatal != nil {
				return fatal, nil
			}
		}
		return nil, nil
	}

	// Каждая горутина пишет в свой Bag; индексы уникальны, мьютекс не
	// нужен.
	bags := make([]*diag.Bag, len(admitted))
	fatals := make([]*diag.Fatal, len(admitted))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(admitted)))
	for i, adm := range admitted {
		i, adm := i, adm
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			bag := diag.NewBag(int(sess.Bag.Cap()))
			fatals[i] = rep.Render(adm, diag.BagReporter{Bag: bag})
			bags[i] = bag
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Слияние в порядке допуска; после первой фатальной ошибки вывод
	// обрезается, как при последовательном прогоне.
	for i, bag := range bags {
		sess.Bag.Merge(bag)
		if fatals[i] != nil {
			return fatals[i], nil
		}
	}
	return nil, nil
}

// RunFile загружает дамп решателя и прогоняет по нему репортер.
func RunFile(ctx context.Context, path string, opts Options) (*report.Session, *diag.Fatal, error) {
	payload, err := batch.Load(path)
	if err != nil {
		return nil, nil, err
	}

	maxDiags := opts.MaxDiagnostics
	if maxDiags <= 0 {
		maxDiags = DefaultMaxDiagnostics
	}
	sess, failures, err := payload.Build(diag.NewBag(maxDiags))
	if err != nil {
		return nil, nil, err
	}
	if payload.RecursionLimit == 0 && opts.RecursionLimit > 0 {
		sess.RecursionLimit = opts.RecursionLimit
	}

	fatal, err := Run(ctx, sess, failures, opts)
	if err != nil {
		return nil, nil, err
	}
	return sess, fatal, nil
}
