package app

import (
	"github.com/spf13/cobra"

	"github.com/imgmanip/imgmanip/configs"
	"github.com/imgmanip/imgmanip/internal/jobs"
	"github.com/imgmanip/imgmanip/pkg/img"
)

// demoSequence is the list of operations run by the demo command.
var demoSequence = []string{"rotate", "reflect", "edges", "blackwhite", "grayscale", "original"}

func newDemoCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "demo FILE",
		Short: "Run every operation on an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("workers") {
				configs.Config.Transform.Workers = workers
			}
			if err := configs.Validate(); err != nil {
				return err
			}
			return runDemo(args[0], configs.Config.Transform.Workers)
		},
	}

	cmd.Flags().IntVarP(
		&workers, "workers", "w",
		configs.Config.Transform.Workers, "Number of operations running at once",
	)

	return cmd
}

func runDemo(source string, workers int) error {
	p, err := newPresenter(source)
	if err != nil {
		return err
	}

	ops := make([]*img.Operation, len(demoSequence))
	for i, name := range demoSequence {
		if ops[i], err = img.Lookup(name); err != nil {
			return err
		}
	}

	params := img.Params{Threshold: configs.Config.Transform.EdgeThreshold}
	pool := jobs.New(workers)
	for _, op := range ops {
		op := op
		pool.Submit(op.Name, func() error {
			_, err := runOperation(op, source, params, p)
			return err
		})
	}

	return pool.Wait()
}
