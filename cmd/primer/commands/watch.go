package commands

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dyluth/primer/internal/printer"
	"github.com/dyluth/primer/pkg/registry"
	"github.com/spf13/cobra"
)

var (
	watchLimit int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream registry changes",
	Long: `Print material registrations and availability changes as they happen.

Events are delivered at most once: changes made while nobody is watching are
not replayed.

Examples:
  primer watch
  primer watch --limit 1   # exit after the first event`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchLimit, "limit", 0, "Exit after this many events (0 = run until interrupted)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	sub, err := s.client.SubscribeMaterialEvents(ctx)
	if err != nil {
		return err
	}
	defer sub.Close()

	log.Printf("[Watch] Subscribed to material events for instance '%s'", s.cfg.Instance)

	errs := sub.Errors()
	seen := 0
	for {
		select {
		case <-ctx.Done():
			log.Printf("[Watch] Shutting down...")
			return nil

		case event, ok := <-sub.Events():
			if !ok {
				log.Printf("[Watch] Subscription closed")
				return nil
			}

			printEvent(event)

			seen++
			if watchLimit > 0 && seen >= watchLimit {
				return nil
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			log.Printf("[Watch] Subscription error: %v", err)
		}
	}
}

func printEvent(event *registry.MaterialEvent) {
	m := event.Material
	switch event.Kind {
	case registry.EventRegistered:
		printer.Step("material %d registered by %s at height %d: %q\n", m.ID, m.Owner, m.CreatedAt, m.Title)
	case registry.EventAvailabilityChanged:
		printer.Step("material %d is now %s\n", m.ID, printer.Availability(m.Available))
	}
}
