package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/thatcatcamp/tint/internal/backup"
	"github.com/thatcatcamp/tint/internal/config"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage palette backups",
	Long:  "Commands for managing palette backups: create, list, restore, delete, and status",
}

var backupNote string

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Back up every palette and the current theme",
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, a *app) error {
			manager := backup.NewBackupManager(config.GetString("backups.path"), a.store)
			path, err := manager.CreateBackup(ctx, backupNote)
			if err != nil {
				return err
			}
			fmt.Printf("Backup written to %s\n", path)
			return nil
		})
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available backups",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		manager := backup.NewBackupManager(config.GetString("backups.path"), nil)
		list, err := manager.ListBackups()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if len(list) == 0 {
			fmt.Println("No backups found")
			return
		}

		fmt.Println("Available backups:")
		for i, info := range list {
			modified := info.ModTime.Format("2006-01-02 15:04:05")
			fmt.Printf("%d. %s (%s, %s)\n", i+1, info.Name, modified, formatBytes(info.Size))
		}
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <filename>",
	Short: "Restore palettes from a backup",
	Long: `Restore adds the palettes of a backup that are not already in the
collection (matched by name) and puts back the saved theme.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filename := args[0]

		if !assumeYes {
			fmt.Printf("Restore from '%s'? The current theme will be replaced. (type 'yes' to confirm): ", filename)
			var confirmation string
			fmt.Scanln(&confirmation)
			if confirmation != "yes" {
				fmt.Println("Restore cancelled.")
				return
			}
		}

		run(func(ctx context.Context, a *app) error {
			manager := backup.NewBackupManager(config.GetString("backups.path"), a.store)
			result, err := manager.RestoreBackup(ctx, filename)
			if err != nil {
				return err
			}
			fmt.Printf("Restored %d palettes (%d skipped) from %s\n", result.Added, result.Skipped, filename)
			return nil
		})
	},
}

var backupDeleteCmd = &cobra.Command{
	Use:   "delete <filename>",
	Short: "Delete a backup",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		filename := args[0]

		if !assumeYes {
			fmt.Printf("Are you sure you want to delete '%s'? (type 'yes' to confirm): ", filename)
			var confirmation string
			fmt.Scanln(&confirmation)
			if confirmation != "yes" {
				fmt.Println("Deletion cancelled.")
				return
			}
		}

		manager := backup.NewBackupManager(config.GetString("backups.path"), nil)
		if err := manager.DeleteBackup(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Successfully deleted %s\n", filename)
	},
}

var backupStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show backup status and statistics",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		manager := backup.NewBackupManager(config.GetString("backups.path"), nil)
		list, err := manager.ListBackups()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		var totalSize int64
		var oldestTime time.Time
		var newestTime time.Time

		for _, info := range list {
			totalSize += info.Size
			if oldestTime.IsZero() || info.ModTime.Before(oldestTime) {
				oldestTime = info.ModTime
			}
			if newestTime.IsZero() || info.ModTime.After(newestTime) {
				newestTime = info.ModTime
			}
		}

		fmt.Println("Backup Status:")
		fmt.Printf("  Directory: %s\n", manager.SystemDir())
		fmt.Printf("  Total backups: %d\n", len(list))
		fmt.Printf("  Total size: %s\n", formatBytes(totalSize))
		fmt.Printf("  Retention: %d\n", config.GetInt("backups.retention"))
		if !oldestTime.IsZero() {
			fmt.Printf("  Oldest backup: %s\n", oldestTime.Format("2006-01-02 15:04:05"))
		}
		if !newestTime.IsZero() {
			fmt.Printf("  Newest backup: %s\n", newestTime.Format("2006-01-02 15:04:05"))
		}
	},
}

var backupPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete backups beyond backups.retention",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		manager := backup.NewBackupManager(config.GetString("backups.path"), nil)
		removed, err := manager.Prune(config.GetInt("backups.retention"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Removed %d backups\n", removed)
	},
}

// formatBytes converts bytes to human-readable format
func formatBytes(bytes int64) string {
	units := []string{"B", "KB", "MB", "GB"}
	size := float64(bytes)

	for _, unit := range units {
		if size < 1024.0 {
			return fmt.Sprintf("%.2f %s", size, unit)
		}
		size /= 1024.0
	}

	return fmt.Sprintf("%.2f TB", size)
}

func init() {
	backupCreateCmd.Flags().StringVar(&backupNote, "note", "", "note stored with the backup")

	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupDeleteCmd)
	backupCmd.AddCommand(backupStatusCmd)
	backupCmd.AddCommand(backupPruneCmd)
}
