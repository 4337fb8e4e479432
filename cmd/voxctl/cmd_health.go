package main

import (
    "context"
    "fmt"
    "time"

    "github.com/spf13/cobra"

    "voxhire/agent/internal/config"
    "voxhire/agent/internal/health"
)

func init() {
    rootCmd.AddCommand(healthCmd)
}

var healthCmd = &cobra.Command{
    Use:   "health",
    Short: "Check collaborator reachability and archive storage",
    Args:  cobra.NoArgs,
    RunE: func(cmd *cobra.Command, args []string) error {
        cfg := config.Load()
        ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
        defer cancel()

        status := health.CheckAll(ctx, cfg)
        fmt.Print(status)
        if !status.OK {
            return fmt.Errorf("health check failed")
        }
        return nil
    },
}
