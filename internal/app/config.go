package app

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/imgmanip/imgmanip/configs"
)

func newConfigCmd() *cobra.Command {
	var dest string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print or save the current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dest == "" {
				return configs.Encode(cmd.OutOrStdout())
			}

			if err := configs.WriteConfig(dest); err != nil {
				return fmt.Errorf("error writing configuration (%s)", err)
			}
			log.WithField("path", dest).Info("configuration saved")
			return nil
		},
	}

	cmd.Flags().StringVarP(
		&dest, "write", "w",
		"", "Write the configuration to this file",
	)

	return cmd
}
