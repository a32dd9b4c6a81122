package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ekagansahin/Dentist-Tetris/controller"
	"github.com/ekagansahin/Dentist-Tetris/ui"
)

var (
	flagConfig string
	flagPort   string
	flagBaud   int
	flagMock   bool
	flagSeed   int64
)

var rootCmd = &cobra.Command{
	Use:   "dentris",
	Short: "Host for the tilt-and-encoder Tetris controller",
	Long: "dentris runs the game session against the hand-held controller: it reads " +
		"sensor frames over USB serial, drives the game and menus, and sends score " +
		"and sound feedback back to the firmware. Without a port it falls back to " +
		"keyboard-driven mock input.",
	RunE:          runRoot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports that look like the controller",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ports, err := controller.ListPorts()
		if err != nil {
			return err
		}
		for _, p := range ports {
			cmd.Println(p)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to the YAML config file")
	rootCmd.Flags().StringVarP(&flagPort, "port", "p", "", "serial port of the controller, e.g. /dev/ttyACM0")
	rootCmd.Flags().IntVarP(&flagBaud, "baud", "b", 0, "serial baud rate")
	rootCmd.Flags().BoolVar(&flagMock, "mock-input", false, "use keyboard input instead of the controller")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "piece sequence seed, 0 seeds from the clock")
	rootCmd.AddCommand(portsCmd)
}

func runRoot(cmd *cobra.Command, _ []string) error {
	cfg, err := controller.LoadConfig(flagConfig)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Port = flagPort
	}
	if flags.Changed("baud") {
		cfg.BaudRate = flagBaud
	}
	if flags.Changed("mock-input") {
		cfg.MockInput = flagMock
	}
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "dentris",
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ui.Run blocks on the main goroutine; the session runs behind it once
	// a connection is chosen.
	ui.Run(ctx, cfg, func(cfg controller.Config, gameUI *ui.GameUI) {
		bridge := openBridge(cfg, gameUI, logger)
		session := controller.NewSession(cfg, bridge, gameUI, logger)
		if err := session.Run(ctx); err != nil {
			logger.Error("session stopped", "error", err)
		}
	})
	return nil
}

// openBridge connects to the firmware, or falls back to keyboard-driven
// mock input when no controller is reachable.
func openBridge(cfg controller.Config, gameUI *ui.GameUI, logger *log.Logger) controller.Bridge {
	if !cfg.MockInput {
		bridge, err := controller.OpenSerial(cfg.Port, cfg.BaudRate, logger)
		if err == nil {
			return bridge
		}
		logger.Warn("serial open failed, using mock input", "error", err)
	}

	mock := controller.NewMockBridge(logger)
	gameUI.AttachMock(mock)
	logger.Info("mock input active", "keys", "arrows tilt, up rotates, space selects, pgup/pgdn scroll")
	return mock
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
