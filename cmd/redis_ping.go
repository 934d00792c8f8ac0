package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"osint-desk/internal/redisclient"
	"osint-desk/internal/storage"

	"github.com/spf13/cobra"
)

// pingCmd pings the configured Redis server.
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Ping Redis and print PONG",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		res, err := rdb.Ping(ctx).Result()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), res)
		return nil
	},
}

// unlockCmd clears a stale import lock left by a crashed run.
var unlockCmd = &cobra.Command{
	Use:   "unlock [dataset_path]",
	Short: "Remove the import lock for a dataset",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		path := cfg.Dataset.Path
		if len(args) == 1 {
			path = args[0]
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		lock := storage.NewRedisLock(rdb, abs, 0)
		removed, err := lock.Clear(ctx)
		if err != nil {
			return err
		}
		if removed {
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", lock.Key())
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "No lock held for %s\n", abs)
		}
		return nil
	},
}

func init() {
	redisCmd.AddCommand(pingCmd)
	redisCmd.AddCommand(unlockCmd)
}
