package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vaibhaw-/AuditNorm/internal/auditgen"
	"github.com/vaibhaw-/AuditNorm/internal/auditnorm/logger"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate":
		genCmd := flag.NewFlagSet("generate", flag.ExitOnError)
		configPath := genCmd.String("config", "", "Path to config file")
		logLevel := genCmd.String("log-level", "info", "log level: debug|info|warn|error")
		genCmd.Parse(os.Args[2:])
		if *configPath == "" {
			fmt.Println("Error: --config is required for 'generate'")
			genCmd.Usage()
			os.Exit(1)
		}
		if err := logger.InitLogger(*logLevel); err != nil {
			fmt.Fprintf(os.Stderr, "Error: init logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		if err := auditgen.Run(*configPath); err != nil {
			logger.L().Errorw("generation failed", "err", err.Error())
			logger.Sync()
			os.Exit(1)
		}

	case "help", "--help", "-h":
		printHelp()
	default:
		fmt.Printf("Unknown subcommand: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`Usage: auditgen <subcommand> --config <path>`)
	fmt.Println()
	fmt.Println("Subcommands:")
	fmt.Println("  generate  --config <path>   Write a synthetic auditd log")
	fmt.Println("  help                        Show this help message")
}
