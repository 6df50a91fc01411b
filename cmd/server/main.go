package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version    = "dev"
	configPath string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hotdogbot",
		Short: "Tells you whether the picture you texted is a hotdog",
		Long: "hotdogbot receives MMS webhooks, asks a vision model whether the attached image " +
			"is a hotdog and texts the verdict back.",
		Version:      version,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file (default: $CONFIG_FILE)")

	root.AddCommand(serveCmd())
	root.AddCommand(classifyCmd())

	return root
}
