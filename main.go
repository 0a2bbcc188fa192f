package main

import (
	"errors"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/matt-g-everett/rdtools/sequence"
	"github.com/matt-g-everett/rdtools/stream"
)

type app struct {
	Config     stream.Config
	Log        *logrus.Logger
	configPath string
	verbose    bool
}

func newApp() *app {
	a := new(app)
	a.Log = logrus.New()
	return a
}

// readConfig decodes the config file. A missing file at the default path
// leaves every value at its default.
func (a *app) readConfig(cmd *cobra.Command) error {
	if a.verbose {
		a.Log.SetLevel(logrus.DebugLevel)
	}

	f, err := os.Open(a.configPath)
	if os.IsNotExist(err) && !cmd.Flags().Changed("config") {
		a.Config.SetDefaults()
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	a.Config, err = stream.DecodeConfig(f)
	if err != nil {
		return err
	}
	a.Log.WithField("config", a.configPath).Debugf("Config: %+v", a.Config)
	return nil
}

// emptyInput reports an empty input set as a diagnostic rather than a failure.
func (a *app) emptyInput(err error) error {
	if errors.Is(err, sequence.ErrEmptyInputSet) {
		a.Log.WithError(err).Warn("nothing to do")
		return nil
	}
	return err
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rdtools",
		Short:         "Sequencing, stencil and rendering tools for reaction-diffusion output",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.readConfig(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "config.yaml", "YAML config file.")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log debug output.")

	root.AddCommand(a.keyframeCmd(), a.playCmd(), a.stencilCmd(), a.renderCmd(), a.previewCmd())
	return root
}

func main() {
	a := newApp()
	if err := a.rootCmd().Execute(); err != nil {
		a.Log.Error(err)
		os.Exit(1)
	}
}
