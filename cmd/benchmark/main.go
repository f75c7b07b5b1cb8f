package main

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/accessors/reactive"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

const (
	widthKey   = "width"
	heightKey  = "height"
	itersKey   = "iters"
	profileKey = "profile"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure propagation through chains of derived accessors",
		Flags: []cli.Flag{
			&cli.IntSliceFlag{
				Name:  widthKey,
				Usage: "Number of parallel chains",
				Value: []int64{1, 10, 100, 1_000},
			},
			&cli.IntSliceFlag{
				Name:  heightKey,
				Usage: "Length of every chain",
				Value: []int64{1, 10, 100, 1_000},
			},
			&cli.IntFlag{
				Name:  itersKey,
				Usage: "Writes per graph",
				Value: 100,
			},
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "CPU profile output, empty to disable",
				Value: "default.pgo",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(err, "creating profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return errors.Wrap(err, "starting profile")
		}
		defer pprof.StopCPUProfile()
	}

	iters := int(cmd.Int(itersKey))
	if iters < 1 {
		return errors.Errorf("--%s must be at least 1", itersKey)
	}
	ww, hh := toInts(cmd.IntSlice(widthKey)), toInts(cmd.IntSlice(heightKey))

	log.Info("warming up")
	benchmark("Computed", reactive.CreateComputed[int], ww, hh, iters, false)

	benchmark("Computed", reactive.CreateComputed[int], ww, hh, iters, true)
	benchmark("Memo", func(rt *reactive.Runtime, fn func() int) *reactive.Accessor[int] {
		return reactive.CreateMemo(rt, fn)
	}, ww, hh, iters, true)
	return nil
}

func toInts(vv []int64) []int {
	out := make([]int, len(vv))
	for i, v := range vv {
		out[i] = int(v)
	}
	return out
}

type deriveFunc func(rt *reactive.Runtime, fn func() int) *reactive.Accessor[int]

func benchmark(title string, derive deriveFunc, ww, hh []int, iters int, shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rt := reactive.NewRuntime(reactive.WithErrorHandler(func(err error) {
				log.Panic(err)
			}))
			src, setSrc := reactive.CreateState(rt, 1)
			dispose := reactive.CreateRoot(rt, func(dispose func()) func() {
				for i := 0; i < w; i++ {
					last := src
					for j := 0; j < h; j++ {
						prev := last
						last = derive(rt, func() int {
							return prev.Get() + 1
						})
					}

					reactive.CreateEffect(rt, func() error {
						last.Get()
						return nil
					})
				}
				return dispose
			})

			for i := 0; i < iters; i++ {
				start := time.Now()
				setSrc.Update(func(prev int) int { return prev + 1 })
				tach.AddTime(time.Since(start))
			}
			dispose()

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	if shouldRender {
		tbl.Render()
	}
}
