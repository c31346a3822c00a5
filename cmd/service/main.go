// @title        User Record Service API
// @version      1.0
// @description  建立與更新使用者紀錄的服務
// @host         localhost:8080
// @BasePath     /
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var exitFunc = os.Exit

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "user-service",
		Short:        "User record service",
		Long:         "HTTP 服務，提供使用者建立與更新；不帶子命令時等同 serve",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

func execute(ctx context.Context, args []string) error {
	root := newRootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := execute(ctx, os.Args[1:])
	stop()
	if err != nil {
		exitFunc(1)
	}
}
