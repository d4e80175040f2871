package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samsamfire/canbridge/pkg/app"
	"github.com/samsamfire/canbridge/pkg/bridge"
	"github.com/samsamfire/canbridge/pkg/trace"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	// CAN drivers, registered through their init functions
	_ "github.com/samsamfire/canbridge/pkg/can/socketcan"
	_ "github.com/samsamfire/canbridge/pkg/can/virtual"
)

var (
	configPath string
	tracePath  string
	period     time.Duration
	verbose    bool
)

func main() {
	root := &cobra.Command{
		Use:   "canbridge",
		Short: "Bridge CAN traffic between hardware interfaces and a simulated CAN network",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "equipment configuration file (ini)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	_ = root.MarkPersistentFlagRequired("config")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the bridge update loop until interrupted",
		RunE:  runBridge,
	}
	runCmd.Flags().DurationVar(&period, "period", 10*time.Millisecond, "update cycle period")
	runCmd.Flags().StringVar(&tracePath, "trace", "", "write bridged frames as CBOR records to this file")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration and bus resolution without running",
		RunE:  checkConfig,
	}

	root.AddCommand(runCmd, checkCmd)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildApplication() (*app.App, []*bridge.Bridge, error) {
	application, err := app.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	bridges := app.ChildrenRecursiveAs[*bridge.Bridge](application)
	if len(bridges) == 0 {
		return nil, nil, fmt.Errorf("no CanBridge sections in %v", configPath)
	}
	if err := app.InitTree(application); err != nil {
		return nil, nil, err
	}
	return application, bridges, nil
}

func runBridge(cmd *cobra.Command, args []string) error {
	application, bridges, err := buildApplication()
	if err != nil {
		return err
	}
	if tracePath != "" {
		traceFile, err := os.Create(tracePath)
		if err != nil {
			return err
		}
		defer traceFile.Close()
		recorder := trace.NewRecorder(traceFile)
		for _, b := range bridges {
			b.SetRecorder(recorder)
		}
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	log.Infof("[MAIN] running %v bridge(s), period %v", len(bridges), period)
	for {
		select {
		case <-ticker.C:
			app.UpdateTree(application)
		case <-stop:
			for _, b := range bridges {
				stats := b.Stats()
				log.Infof("[MAIN] %v : %v to virtual, %v to hardware, %v echoes suppressed, %v unknown ids",
					b.Name(), stats.ForwardedToVirtual, stats.ForwardedToHardware,
					stats.SuppressedEchoes, stats.UnknownIdentifiers)
			}
			return nil
		}
	}
}

func checkConfig(cmd *cobra.Command, args []string) error {
	_, bridges, err := buildApplication()
	if err != nil {
		return err
	}
	for _, b := range bridges {
		fmt.Printf("bridge %v (index %v) : resolved\n", b.Name(), b.Index())
	}
	return nil
}
