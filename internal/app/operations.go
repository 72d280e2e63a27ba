package app

import (
	"fmt"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/imgmanip/imgmanip/configs"
	"github.com/imgmanip/imgmanip/internal/output"
	"github.com/imgmanip/imgmanip/pkg/img"
)

func newOperationCmd(name string) *cobra.Command {
	op, err := img.Lookup(name)
	if err != nil {
		panic(err)
	}

	var threshold int
	cmd := &cobra.Command{
		Use:   op.Name + " FILE",
		Short: op.Description,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := img.Params{Threshold: configs.Config.Transform.EdgeThreshold}
			if cmd.Flags().Changed("threshold") {
				params.Threshold = threshold
			}
			if err := validateThreshold(params.Threshold); err != nil {
				return err
			}

			p, err := newPresenter(args[0])
			if err != nil {
				return err
			}
			dest, err := runOperation(op, args[0], params, p)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), dest)
			return nil
		},
	}

	if op.Name == "edges" {
		cmd.Flags().IntVarP(
			&threshold, "threshold", "t",
			configs.Config.Transform.EdgeThreshold, "Edge detection threshold",
		)
	}

	return cmd
}

// runOperation loads the source image, applies the operation and hands
// the result to the presenter. It returns the result's destination.
func runOperation(op *img.Operation, source string, params img.Params, p output.Presenter) (string, error) {
	start := time.Now()

	m, err := img.Load(source)
	if err != nil {
		return "", err
	}

	res := op.Apply(m, params)
	dest, err := p.Present(op.Name, res)
	if err != nil {
		return "", err
	}

	opLogger.WithFields(log.Fields{
		"op":         op.Name,
		"source":     filepath.Base(source),
		"path":       dest,
		"width":      res.Width(),
		"height":     res.Height(),
		"elapsed_ms": float64(time.Since(start).Microseconds()) / 1000.0,
	}).Info()
	return dest, nil
}
