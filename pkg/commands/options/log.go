package options

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
)

// LogOptions
type LogOptions struct {
	Level uint
	Path  string
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.PersistentFlags().UintVarP(&o.Level, "log-level", "v", 0,
		"Verbosity: 0 info, 1 debug, 2 trace.")
	cmd.PersistentFlags().StringVar(&o.Path, "log", "",
		`Log file path. "-" or empty logs to stdout.`)
}

// InitLog points jwalterweatherman at the log file, if any, and sets the
// thresholds. With a log file stdout is silenced so the picker UI stays
// clean.
func InitLog(o *LogOptions) error {
	if o.Path != "-" && o.Path != "" {
		jww.SetStdoutOutput(ioutil.Discard)
		if err := os.MkdirAll(filepath.Dir(o.Path), 0o755); err != nil {
			return errors.Wrap(err, "log directory")
		}
		logOutput, err := os.OpenFile(o.Path,
			os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return errors.Wrap(err, "open log file")
		}
		jww.SetLogOutput(logOutput)
	}

	switch {
	case o.Level > 1:
		jww.SetStdoutThreshold(jww.LevelTrace)
		jww.SetLogThreshold(jww.LevelTrace)
		jww.SetFlags(log.LstdFlags | log.Lmicroseconds)
		jww.INFO.Printf("log level set to: TRACE")
	case o.Level == 1:
		jww.SetStdoutThreshold(jww.LevelDebug)
		jww.SetLogThreshold(jww.LevelDebug)
		jww.SetFlags(log.LstdFlags | log.Lmicroseconds)
		jww.INFO.Printf("log level set to: DEBUG")
	default:
		jww.SetStdoutThreshold(jww.LevelWarn)
		jww.SetLogThreshold(jww.LevelInfo)
	}
	return nil
}
