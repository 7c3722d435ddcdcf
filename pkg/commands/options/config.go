package options

import (
	"github.com/spf13/cobra"
)

// ConfigOptions
type ConfigOptions struct {
	File string
}

func AddConfigArg(cmd *cobra.Command, o *ConfigOptions) {
	cmd.PersistentFlags().StringVar(&o.File, "config", "",
		"Config file (default ~/.config/emojipick/config.yaml).")
}
