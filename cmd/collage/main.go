// Command collage composites two images from a settings file.
//
// Usage:
//
//	collage render --settings s.json --image1 a.png --image2 b.jpg --out out.png
//	collage defaults > s.json
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "collage:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "collage",
		Short:         "Deterministic two-image compositing",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRenderCmd(), newDefaultsCmd())
	return root
}
