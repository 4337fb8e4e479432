package main

import (
    "fmt"
    "os"

    "github.com/joho/godotenv"
    "github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
    Use:   "voxctl",
    Short: "Operator tooling for the interview agent",
    PersistentPreRun: func(cmd *cobra.Command, args []string) {
        _ = godotenv.Load()
    },
}

func main() {
    if err := rootCmd.Execute(); err != nil {
        fmt.Fprintln(os.Stderr, err)
        os.Exit(1)
    }
}
