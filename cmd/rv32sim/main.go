package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sts08015/rv32i-pipeline/pkg/batch"
	"github.com/sts08015/rv32i-pipeline/pkg/config"
	"github.com/sts08015/rv32i-pipeline/pkg/cpu"
	"github.com/sts08015/rv32i-pipeline/pkg/isa"
	"github.com/sts08015/rv32i-pipeline/pkg/loader"
	"github.com/sts08015/rv32i-pipeline/pkg/report"
)

// argErrorExit is returned when the CLI itself is misused — bad flags,
// missing required arguments.
const argErrorExit = 1

// loadErrorExit is returned on image-format or file-open failure, matching
// the original C reference's exit(1)/exit(2) split kept distinct here.
const loadErrorExit = 2

func main() {
	rootCmd := &cobra.Command{
		Use:   "rv32sim",
		Short: "RV32I 5-stage pipeline simulator",
	}

	var imemPath, dmemPath, configPath, format, checkpointPath string
	var cycles, memDepth int

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a program through the pipeline and report final state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "config: %v\n", err)
				os.Exit(loadErrorExit)
			}
			cfg = cfg.WithDefaults()
			if imemPath != "" {
				cfg.IMemPath = imemPath
			}
			if dmemPath != "" {
				cfg.DMemPath = dmemPath
			}
			if cmd.Flags().Changed("cycles") {
				cfg.Cycles = cycles
			}
			if cmd.Flags().Changed("mem-depth") {
				cfg.MemDepth = memDepth
			}
			if format != "" {
				cfg.Format = format
			}
			if checkpointPath != "" {
				cfg.CheckpointPath = checkpointPath
			}

			if cfg.IMemPath == "" {
				return fmt.Errorf("--imem is required")
			}

			imem, err := loader.LoadInstructions(cfg.IMemPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "loading instruction image: %v\n", err)
				os.Exit(loadErrorExit)
			}
			var dmemInit []uint32
			if cfg.DMemPath != "" {
				dmemInit, err = loader.LoadData(cfg.DMemPath)
				if err != nil {
					fmt.Fprintf(os.Stderr, "loading data image: %v\n", err)
					os.Exit(loadErrorExit)
				}
			}

			e := cpu.NewEngine(imem, cfg.MemDepth)
			if dmemInit != nil {
				e.DMem.LoadWords(dmemInit)
			}
			e.Run(cfg.Cycles)

			switch cfg.Format {
			case "json":
				if err := report.JSON(os.Stdout, report.NewSnapshot(e)); err != nil {
					return err
				}
			default:
				report.Text(os.Stdout, &e.RF, e.DMem)
			}

			if cfg.CheckpointPath != "" {
				if err := report.SaveCheckpoint(cfg.CheckpointPath, report.NewCheckpoint(e)); err != nil {
					return fmt.Errorf("saving checkpoint: %w", err)
				}
			}
			return nil
		},
	}
	runCmd.Flags().StringVar(&imemPath, "imem", "", "instruction image path")
	runCmd.Flags().StringVar(&dmemPath, "dmem", "", "data image path")
	runCmd.Flags().StringVar(&configPath, "config", "", "optional YAML config file")
	runCmd.Flags().IntVar(&cycles, "cycles", 0, "cycles to run (default from config, else 50)")
	runCmd.Flags().IntVar(&memDepth, "mem-depth", 0, "word depth of each memory (default from config, else 1024)")
	runCmd.Flags().StringVar(&format, "format", "", "output format: text or json")
	runCmd.Flags().StringVar(&checkpointPath, "checkpoint", "", "gob-encode final state to this path")

	var disasmImem string
	disasmCmd := &cobra.Command{
		Use:   "disasm",
		Short: "Disassemble every instruction in an image",
		RunE: func(cmd *cobra.Command, args []string) error {
			if disasmImem == "" {
				return fmt.Errorf("--imem is required")
			}
			imem, err := loader.LoadInstructions(disasmImem)
			if err != nil {
				fmt.Fprintf(os.Stderr, "loading instruction image: %v\n", err)
				os.Exit(loadErrorExit)
			}
			for i, inst := range imem {
				fmt.Printf("%4d: %s\n", i, isa.Disassemble(inst))
			}
			return nil
		},
	}
	disasmCmd.Flags().StringVar(&disasmImem, "imem", "", "instruction image path")

	var batchDir string
	var batchWorkers int
	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Run every scenario fixture in a directory and report pass/fail",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios, err := batch.LoadScenarioDir(batchDir)
			if err != nil {
				fmt.Fprintf(os.Stderr, "loading scenarios: %v\n", err)
				os.Exit(loadErrorExit)
			}
			pool := batch.NewPool(batchWorkers)
			pool.Run(scenarios)

			failed := 0
			for _, o := range pool.Results.Outcomes() {
				status := "PASS"
				if !o.Passed {
					status = "FAIL"
					failed++
				}
				fmt.Printf("  [%s] %-20s %s\n", status, o.Name, o.Duration)
				for _, m := range o.Mismatch {
					fmt.Printf("         %s\n", m)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d scenario(s) failed", failed)
			}
			return nil
		},
	}
	batchCmd.Flags().StringVar(&batchDir, "dir", "testdata/scenarios", "directory of scenario fixtures")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "number of workers (0 = NumCPU)")

	rootCmd.AddCommand(runCmd, disasmCmd, batchCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(argErrorExit)
	}
}
