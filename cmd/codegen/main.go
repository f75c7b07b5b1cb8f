package main

import (
	"context"
	"os"
	"time"

	"github.com/delaneyj/accessors/cmd/codegen/templates"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

const (
	genericParamCountKey = "count"
	outputKey            = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate the fixed arity Combine helpers",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  genericParamCountKey,
				Usage: "Number of generic parameters to generate",
				Value: 8,
			},
			&cli.StringFlag{
				Name:  outputKey,
				Usage: "File to write",
				Value: "reactive/combine_gen.go",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Info("Codegen for combine helpers started")
	defer func() {
		log.Infof("Codegen for combine helpers finished in %v", time.Since(start))
	}()

	count := int(cmd.Uint(genericParamCountKey))
	if count < 1 {
		return errors.Errorf("--%s must be at least 1", genericParamCountKey)
	}
	out := cmd.String(outputKey)

	contents := templates.CombineGen(count)
	if err := os.WriteFile(out, []byte(contents), 0644); err != nil {
		return errors.Wrapf(err, "writing %s", out)
	}
	return nil
}
