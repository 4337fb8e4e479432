package main

import (
    "encoding/json"
    "fmt"
    "os"
    "text/tabwriter"

    "github.com/spf13/cobra"

    "voxhire/agent/internal/archive"
    "voxhire/agent/internal/config"
)

func init() {
    rootCmd.AddCommand(archiveCmd)
    archiveCmd.AddCommand(archiveListCmd, archiveShowCmd, archiveDeleteCmd)
}

func openStore() (*archive.Store, error) {
    cfg := config.Load()
    return archive.New(cfg.Archive.Dir)
}

var archiveCmd = &cobra.Command{
    Use:   "archive",
    Short: "Inspect completed interviews",
}

var archiveListCmd = &cobra.Command{
    Use:   "list",
    Short: "List archived interviews, most recent first",
    Args:  cobra.NoArgs,
    RunE: func(cmd *cobra.Command, args []string) error {
        store, err := openStore()
        if err != nil {
            return fmt.Errorf("open archive: %w", err)
        }
        entries := store.List()
        if len(entries) == 0 {
            fmt.Println("No archived interviews.")
            return nil
        }

        w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
        fmt.Fprintln(w, "ID\tJOB\tCANDIDATE\tSCORE\tCOMPLETED")
        for _, e := range entries {
            score := "-"
            if e.Evaluation != nil {
                score = string(e.Evaluation.Score)
            }
            fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
                e.ID,
                e.JobTitle,
                e.CandidateName,
                score,
                e.CompletedAt.Format("2006-01-02 15:04:05"),
            )
        }
        return w.Flush()
    },
}

var archiveShowCmd = &cobra.Command{
    Use:   "show <id>",
    Short: "Print one archived interview as JSON",
    Args:  cobra.ExactArgs(1),
    RunE: func(cmd *cobra.Command, args []string) error {
        store, err := openStore()
        if err != nil {
            return fmt.Errorf("open archive: %w", err)
        }
        entry, ok := store.Get(args[0])
        if !ok {
            return fmt.Errorf("interview not found: %s", args[0])
        }
        out, err := json.MarshalIndent(entry, "", "  ")
        if err != nil {
            return err
        }
        fmt.Println(string(out))
        return nil
    },
}

var archiveDeleteCmd = &cobra.Command{
    Use:   "delete <id>",
    Short: "Delete an archived interview",
    Args:  cobra.ExactArgs(1),
    RunE: func(cmd *cobra.Command, args []string) error {
        store, err := openStore()
        if err != nil {
            return fmt.Errorf("open archive: %w", err)
        }
        if _, ok := store.Get(args[0]); !ok {
            return fmt.Errorf("interview not found: %s", args[0])
        }
        store.Delete(args[0])
        fmt.Printf("Interview %s deleted.\n", args[0])
        return nil
    },
}
