package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartchef/smartchef/internal/probe"
)

var probeCfg = probe.DefaultConfig()

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Wait for the recipe backend to wake up",
	Long: `Polls the recipe backend until it answers. Hosted backends may sleep
when idle and take a while to start on the first request.`,
	Args: cobra.NoArgs,
	RunE: runProbe,
}

func init() {
	flags := probeCmd.Flags()
	flags.DurationVar(&probeCfg.Interval, "interval", probeCfg.Interval, "delay between attempts")
	flags.IntVar(&probeCfg.MaxAttempts, "max-attempts", probeCfg.MaxAttempts, "give up after this many attempts")
	flags.DurationVar(&probeCfg.MaxWait, "max-wait", probeCfg.MaxWait, "give up after this long")
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	cfg := probeCfg
	cfg.HideAfter = 1 // the command exits once ready; nothing to hide

	p := probe.New(backendClient, cfg, log)
	last := -1
	final := p.Run(cmd.Context(), func(u probe.Update) {
		if int(u.State) == last {
			return
		}
		last = int(u.State)
		title, sub := probe.Status(u.State)
		switch {
		case title == "":
		case sub == "":
			fmt.Fprintln(out, title)
		default:
			fmt.Fprintf(out, "%s %s\n", title, sub)
		}
	})

	switch final {
	case probe.StateReady, probe.StateHidden:
		return nil
	case probe.StateGaveUp:
		return fmt.Errorf("backend did not respond after %d attempts", p.Attempts())
	default:
		return errors.New("probe cancelled")
	}
}
