package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dragon-ctrl-core/config"
	"dragon-ctrl-core/utils"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "dragonbot",
		Short:         "Drive the robot from gamepads at a fixed control rate",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCommand(), newFramesCommand())
	return root
}

func newRunCommand() *cobra.Command {
	v := config.New()
	var cfgPath, envFile string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the control loop",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(v, cfgPath, envFile)
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfgPath, "config", "", "YAML or JSON config file")
	f.StringVar(&envFile, "env-file", ".env", "dotenv file with DRAGON_ overrides")
	f.String("mode", "teleop", "disabled|autonomous|teleop")
	f.String("variant", "sim", "year1|softwaretest|serialbase|sim")
	f.Float64("duration", 0, "seconds to run, 0 for until interrupted")
	f.String("log", "info", "trace|debug|info|warn|error|critical")
	bindFlags(v, cmd, map[string]string{
		"loop.mode":        "mode",
		"hardware.variant": "variant",
		"loop.duration_s":  "duration",
		"log.level":        "log",
	})
	return cmd
}

func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		_ = v.BindPFlag(key, cmd.Flags().Lookup(flag))
	}
}

func run(v *viper.Viper, cfgPath, envFile string) error {
	if err := config.LoadEnvFiles(envFile); err != nil {
		return reportStartup(err)
	}
	cfg, err := config.Load(v, cfgPath)
	if err != nil {
		return reportStartup(err)
	}

	log, err := utils.NewFileLogger(cfg.Log.Path, utils.ParseLevel(cfg.Log.Level), cfg.Log.Stdout)
	if err != nil {
		return reportStartup(errors.Wrapf(err, "cannot open %s", cfg.Log.Path))
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner, err := NewRunner(ctx, cfg, log)
	if err != nil {
		log.Critical("Startup failed: %v", err)
		return err
	}
	defer runner.Close()

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Critical("Run failed: %v", err)
		return err
	}
	return nil
}

func reportStartup(err error) error {
	_, _ = os.Stderr.WriteString("ERROR: " + err.Error() + "\n")
	return err
}

func newFramesCommand() *cobra.Command {
	var mapPath string
	cmd := &cobra.Command{
		Use:   "frames",
		Short: "List the frames and signals of a CAN motor map",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmap, err := utils.LoadCANMap(mapPath)
			if err != nil {
				return reportStartup(err)
			}
			printFrames(cmd, cmap)
			return nil
		},
	}
	cmd.Flags().StringVar(&mapPath, "map", "config/can/year1_map.csv", "path to the motor map CSV")
	return cmd
}

func printFrames(cmd *cobra.Command, cmap *utils.CANMap) {
	out := cmd.OutOrStdout()
	for _, name := range cmap.FrameNames() {
		fd := cmap.ByName[name]
		fmt.Fprintf(out, "%-18s 0x%03X %s dlc=%d cycle=%dms\n", fd.Name, fd.ID, fd.Direction, fd.DLC, fd.CycleMS)
		for _, s := range fd.Signals {
			fmt.Fprintf(out, "  %-14s bits %2d..%2d factor=%g range=[%g, %g] %s\n",
				s.Name, s.StartBit, s.StartBit+s.BitLength-1, s.Factor, s.Min, s.Max, s.Unit)
		}
	}
}
