// Command uxn boots and runs Uxn ROMs from the command line.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/zotley/uxn/internal/host"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "uxn",
		Short: "uxn — a small stack-based bytecode virtual machine",
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newDumpCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var debug bool
	var baseDir string

	cmd := &cobra.Command{
		Use:   "run <rom-file>",
		Short: "Boot and run a Uxn ROM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, err := host.LoadROM(args[0])
			if err != nil {
				return fmt.Errorf("uxn: %w", err)
			}

			logger := log.New(os.Stderr, "uxn: ", log.Lmicroseconds)
			boot := host.NewBoot(host.Options{BaseDir: baseDir, Debug: debug, Logger: logger})

			term := host.NewTerminal(boot.Console)
			term.Start()
			defer term.Stop()

			if err := boot.Run(rom); err != nil {
				return err
			}
			if boot.System.ExitCode != 0 {
				os.Exit(int(boot.System.ExitCode))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "pre-set the system debug register to 1 (stack dumps are logged on non-zero debug-port writes)")
	cmd.Flags().StringVar(&baseDir, "base-dir", ".", "sandbox root for the file device")
	return cmd
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <rom-file>",
		Short: "Print a ROM's bytes as a hex listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, err := host.LoadROM(args[0])
			if err != nil {
				return fmt.Errorf("uxn: %w", err)
			}
			for i := 0; i < len(rom); i += 16 {
				end := i + 16
				if end > len(rom) {
					end = len(rom)
				}
				fmt.Printf("%04x  % x\n", host.ResetVector+i, rom[i:end])
			}
			return nil
		},
	}
}
