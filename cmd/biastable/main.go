// Command biastable prints how a subject box would be pushed out of a
// reference box at a grid of offsets around it.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/milk9111/fighter/hitbox"
)

type options struct {
	refW, refH  float64
	subW, subH  float64
	step        float64
	radius      int
	overlapOnly bool
}

func main() {
	var o options
	flag.Float64Var(&o.refW, "ref-w", 1, "reference box width")
	flag.Float64Var(&o.refH, "ref-h", 1, "reference box height")
	flag.Float64Var(&o.subW, "w", 0.8, "subject width")
	flag.Float64Var(&o.subH, "h", 1.8, "subject height")
	flag.Float64Var(&o.step, "step", 0.25, "offset step between rows")
	flag.IntVar(&o.radius, "n", 4, "steps on each side of the reference center")
	flag.BoolVar(&o.overlapOnly, "overlap", true, "only print offsets where the boxes overlap")
	flag.Parse()

	if err := writeTable(os.Stdout, o); err != nil {
		log.Fatal(err)
	}
}

func extentAt(cx, cy, w, h float64) hitbox.Extent {
	return hitbox.Extent{MinX: cx - w/2, MaxX: cx + w/2, MinY: cy - h/2, MaxY: cy + h/2}
}

// writeTable prints one row per subject center offset, measured from the
// reference box's center.
func writeTable(out io.Writer, o options) error {
	if o.refW <= 0 || o.refH <= 0 || o.subW <= 0 || o.subH <= 0 || o.step <= 0 || o.radius < 0 {
		return fmt.Errorf("biastable: sizes and step must be positive")
	}
	ref := extentAt(0, 0, o.refW, o.refH)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "dx\tdy\toverlap\trule\taxis\tdir\tdelta\tbias x\tbias y\t")
	for i := -o.radius; i <= o.radius; i++ {
		for j := -o.radius; j <= o.radius; j++ {
			dx, dy := float64(i)*o.step, float64(j)*o.step
			sub := extentAt(dx, dy, o.subW, o.subH)
			overlap := hitbox.Overlaps(sub, ref)
			if o.overlapOnly && !overlap {
				continue
			}
			p := hitbox.ComputePush(sub, ref)
			fmt.Fprintf(tw, "%.3f\t%.3f\t%t\t%s\t%s\t%s\t%.4f\t%.4f\t%.4f\t\n",
				dx, dy, overlap, p.Rule, p.Axis, p.Direction, p.Delta, p.BiasX, p.BiasY)
		}
	}
	return tw.Flush()
}
