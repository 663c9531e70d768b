// Package main implements wardshiftctl, the operator CLI for the ward
// scheduler. It talks to MongoDB directly and shares the server's stores.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dalemusser/wardshift/internal/app/system/timezones"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	mongoURI      string
	mongoDatabase string
	redisAddr     string
	wardTimezone  string
	outputFormat  string
	timeout       time.Duration
	verbose       bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "wardshiftctl",
	Short: "Inspect and maintain ward shift schedules and duty sheets",
	Long: `wardshiftctl reads the same MongoDB the wardshift server uses.

Connection settings default to the WARDSHIFT_* environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch outputFormat {
		case "yaml", "json":
		default:
			return fmt.Errorf("--output must be yaml or json, got %q", outputFormat)
		}
		if _, err := timezones.Location(wardTimezone); err != nil {
			return fmt.Errorf("--timezone: %w", err)
		}
		return nil
	},
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func init() {
	rootCmd.PersistentFlags().StringVar(&mongoURI, "mongo-uri", envOr("WARDSHIFT_MONGO_URI", "mongodb://localhost:27017"), "MongoDB connection URI")
	rootCmd.PersistentFlags().StringVar(&mongoDatabase, "mongo-database", envOr("WARDSHIFT_MONGO_DATABASE", "wardshift"), "MongoDB database name")
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis-addr", os.Getenv("WARDSHIFT_REDIS_ADDR"), "Redis host:port (blank disables the cache)")
	rootCmd.PersistentFlags().StringVar(&wardTimezone, "timezone", envOr("WARDSHIFT_WARD_TIMEZONE", timezones.Default), "Ward timezone")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "yaml", "Output format: yaml or json")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Operation timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(dutysheetCmd)
	rootCmd.AddCommand(scheduleCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// writeOutput renders v as JSON or YAML. YAML goes through the JSON form so
// both formats share the API's field names.
func writeOutput(w io.Writer, format string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(json.RawMessage(raw))
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
