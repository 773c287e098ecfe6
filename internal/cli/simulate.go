package cli

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/Seth7171/TaleWeaver-sub000/internal/appearance"
	"github.com/Seth7171/TaleWeaver-sub000/internal/book"
	"github.com/Seth7171/TaleWeaver-sub000/internal/driver"
	"github.com/Seth7171/TaleWeaver-sub000/internal/headless"
	"github.com/Seth7171/TaleWeaver-sub000/internal/timing"
)

// SimulateCommand runs one jump on a headless book and prints its schedule
// and the leaf events as they happen.
type SimulateCommand struct {
	Pages    int
	PoolSize int
	From     int
	To       int
	TurnTime time.Duration
	Mode     string
	TickRate int
	Verbose  bool

	Out io.Writer
}

func NewSimulateCommand() *SimulateCommand {
	return &SimulateCommand{Out: os.Stdout}
}

func (cmd *SimulateCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)

	fs.IntVar(&cmd.Pages, "pages", 20, "Number of pages in the book")
	fs.IntVar(&cmd.PoolSize, "pool", book.DefaultMaxPagesTurningCount, "Maximum number of leaves turning at once")
	fs.IntVar(&cmd.From, "from", 1, "Page the book is open at")
	fs.IntVar(&cmd.To, "to", 11, "Page to turn to")
	fs.DurationVar(&cmd.TurnTime, "time", time.Second, "Turn time")
	fs.StringVar(&cmd.Mode, "mode", "per-page", "How -time is read: per-page or total")
	fs.IntVar(&cmd.TickRate, "tick", driver.DefaultTickRate, "Simulated ticks per second")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print engine diagnostics")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s simulate [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Turn a headless book from one page to another and print the leaf timeline.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s simulate -pages 40 -from 1 -to 31\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s simulate -to 21 -mode total -time 3s -pool 3\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Pages < 1 {
		return fmt.Errorf("pages must be at least 1")
	}
	if cmd.PoolSize < 1 {
		return fmt.Errorf("pool must be at least 1")
	}
	if cmd.TickRate < 1 {
		return fmt.Errorf("tick must be at least 1")
	}
	return nil
}

func (cmd *SimulateCommand) Run() error {
	out := cmd.Out
	if out == nil {
		out = os.Stdout
	}

	mode, err := timing.ParseMode(cmd.Mode)
	if err != nil {
		return err
	}

	handles := make([]appearance.Handle, cmd.Pages)
	for i := range handles {
		handles[i] = appearance.Handle(fmt.Sprintf("page-%d", i+1))
	}

	logger := log.New(io.Discard, "", 0)
	if cmd.Verbose {
		logger = log.New(out, "book: ", 0)
	}

	cfg := book.DefaultConfig()
	cfg.MaxPagesTurningCount = cmd.PoolSize
	stage := headless.NewStage()
	b := book.New(cfg, appearance.NewRegistry(), stage.States(), stage.LeafFactory(),
		book.WithLogger(logger),
		book.WithPages(handles),
		book.WithState(book.OpenMiddle),
		book.WithPageNumber(cmd.From),
	)
	d := driver.New(b, stage, driver.Options{TickRate: cmd.TickRate})

	if leaves := leavesBetween(b.CurrentLeftPageNumber(), cmd.To); leaves > 0 {
		s, err := timing.Calculate(mode, cmd.TurnTime, cmd.PoolSize, leaves)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Schedule: %d leaves, %v per leaf, %v total, %v between starts\n",
			s.Leaves, s.TimePerPage, s.TotalTurnTime, s.DelayBetweenPageTurns)
	}

	var elapsed time.Duration
	done := false
	cb := book.TurnCallbacks{
		OnPageTurnStart: func(ev book.PageTurn) {
			fmt.Fprintf(out, "%8v  start  leaf %d  %d/%d  reveals %d-%d\n",
				elapsed, ev.Leaf.Index(), ev.FrontPage, ev.BackPage, ev.FirstVisiblePage, ev.LastVisiblePage)
		},
		OnPageTurnEnd: func(ev book.PageTurn) {
			fmt.Fprintf(out, "%8v  end    leaf %d  %d/%d  settles %d-%d\n",
				elapsed, ev.Leaf.Index(), ev.FrontPage, ev.BackPage, ev.FirstVisiblePage, ev.LastVisiblePage)
		},
		OnCompleted: func(_, to book.State, page int) {
			done = true
			fmt.Fprintf(out, "%8v  done   %s on page %d\n", elapsed, to, page)
		},
	}

	if err := b.TurnToPage(cmd.To, mode, cmd.TurnTime, 0, cb); err != nil {
		return err
	}

	dt := time.Second / time.Duration(cmd.TickRate)
	limit := cmd.TurnTime*time.Duration(cmd.Pages+1) + time.Second
	for !done && elapsed <= limit {
		elapsed += dt
		d.Step(dt)
	}
	if !done {
		return fmt.Errorf("jump did not complete within %v", limit)
	}

	fmt.Fprintf(out, "Showing pages %d-%d after %d ticks\n",
		b.CurrentLeftPageNumber(), b.CurrentRightPageNumber(), d.Ticks())
	return nil
}

func leavesBetween(fromLeft, to int) int {
	toLeft := to
	if toLeft%2 == 0 {
		toLeft--
	}
	n := (toLeft - fromLeft) / 2
	if n < 0 {
		n = -n
	}
	return n
}
