package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/carbonwallet/internal/tui"
)

func newNoticeCmd() *cobra.Command {
	noticeCmd := &cobra.Command{
		Use:   "notice",
		Short: "Show or acknowledge the local state notice",
		Long:  tui.NoticeText + "\n\nInteractive runs show this notice until it is acknowledged.",
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether the notice was acknowledged",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			seen, err := rt.notice.Acknowledged(cmd.Context())
			if err != nil {
				return err
			}
			if seen {
				fmt.Fprintln(rt.out, "acknowledged")
			} else {
				fmt.Fprintln(rt.out, "not acknowledged")
			}
			return nil
		},
	}

	acceptCmd := &cobra.Command{
		Use:   "accept",
		Short: "Acknowledge the notice so it is not shown again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.notice.Acknowledge(cmd.Context()); err != nil {
				return err
			}
			rt.toaster.Success("Notice acknowledged")
			return nil
		},
	}

	noticeCmd.AddCommand(statusCmd, acceptCmd)
	return noticeCmd
}
