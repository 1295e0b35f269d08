package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type rootCmdConfig struct {
	settings
	configFile string
	v          *viper.Viper
	logger     *zap.Logger
	ctx        context.Context
	cancelFunc context.CancelFunc
}

func main() {
	config := &rootCmdConfig{v: viper.New()}
	err := cliParser(config).Execute()
	if config.cancelFunc != nil {
		config.cancelFunc()
	}
	if config.logger != nil {
		config.logger.Sync()
	}
	if err != nil {
		os.Exit(1)
	}
}

func cliParser(config *rootCmdConfig) *cobra.Command {
	menu := menuCmd(config)
	rootCmd := &cobra.Command{
		Use:   "acorn",
		Short: "acorn is a tool to grow ID3 decision trees",
		Long:  `A tool to grow categorical decision trees from your data with ID3, test them, and use them to make predictions`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(config.v, cmd, config.configFile)
			if err != nil {
				return err
			}
			config.settings = *s
			config.logger = newLogger(config.Verbose)
			return nil
		},
		Run:          menu.Run,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&(config.configFile), "config", "", "path to a YAML file with settings (verbose, catalog, output-dir, dot)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log the trace of the tree growth (env ACORN_VERBOSE)")
	rootCmd.PersistentFlags().String("catalog", "", "path to a YAML catalog of datasets for the menu (env ACORN_CATALOG, defaults to the built-in catalog)")
	rootCmd.PersistentFlags().String("output-dir", "output", "directory in which rendered tree images are created (env ACORN_OUTPUT_DIR)")
	rootCmd.PersistentFlags().String("dot", "dot", "name or path of the Graphviz dot binary used to render trees (env ACORN_DOT)")
	rootCmd.Flags().AddFlagSet(menu.Flags())
	rootCmd.AddCommand(versionCmd(), menu, growCmd(config), testCmd(config), predictCmd(config), splitCmd(config), setCmd(config))
	return rootCmd
}

func (rcc *rootCmdConfig) Logger() *zap.Logger {
	if rcc.logger == nil {
		rcc.logger = newLogger(rcc.Verbose)
	}
	return rcc.logger
}

func (rcc *rootCmdConfig) Context() context.Context {
	rcc.setContextAndCancelFunc()
	return rcc.ctx
}

func (rcc *rootCmdConfig) setContextAndCancelFunc() {
	if rcc.ctx == nil {
		rcc.ctx, rcc.cancelFunc = signal.NotifyContext(context.Background(), os.Interrupt)
	}
}

// exit reports err on stderr and terminates the process with the given code.
func exit(code int, err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(code)
}
