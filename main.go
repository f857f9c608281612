package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/PolarWolf314/vaultmark/cmd"
	"github.com/PolarWolf314/vaultmark/internal/ui"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vaultmark",
	Short: "vaultmark - hide and recover text watermarks in images.",
	Long: `vaultmark hides a short text watermark in the least significant bits of
an image's color channels and recovers it again.

Features:
  - Embed a watermark into PNG, BMP, GIF or JPEG input (written as PNG or BMP)
  - Extract and verify watermarks, including across whole directory trees
  - Obfuscate payloads with a key, or seal them with a passphrase
  - Keep a local activity log of who watermarked what

Usage:
  vaultmark <command> [flags]

Available Commands:
  watermark  Embed, extract and verify image watermarks
  config     Manage vaultmark configuration

Run 'vaultmark help <command>' for more details on a specific command.
`,
	SilenceUsage: true,
	Run: func(c *cobra.Command, args []string) {
		fmt.Println(ui.Info.Sprint(figure.NewFigure("vaultmark", "small", true).String()))
		fmt.Println("Run " + ui.Code.Sprint("vaultmark --help") + " to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.WatermarkCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
