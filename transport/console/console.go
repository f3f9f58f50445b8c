package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

const helpText = `commands:
  play <0-8>   place the next mark (a bare number works too)
  jump <n>     go to move n (0 restarts)
  history      list moves
  status       show the board
  save         save the game
  load         load the saved game
  quit         exit`

type uGame interface {
	State(ctx context.Context) *entity.GameView
	Play(ctx context.Context, cell int) (*entity.GameView, error)
	JumpTo(ctx context.Context, move int) (*entity.GameView, error)
	Save(ctx context.Context) (*entity.GameView, error)
	Load(ctx context.Context) (*entity.GameView, error)
}

// Console is a line based front end for a single game.
type Console struct {
	logger *slog.Logger
	uGame  uGame
	out    io.Writer
	output *termenv.Output
}

func New(logger *slog.Logger, uGame uGame, out io.Writer, opts ...termenv.OutputOption) *Console {
	return &Console{
		logger: logger.With("component", "console"),
		uGame:  uGame,
		out:    out,
		output: termenv.NewOutput(out, opts...),
	}
}

// Run - reads commands from in until quit, EOF or ctx cancellation.
// A cancelled ctx returns at once even while waiting for a line.
func (that *Console) Run(ctx context.Context, in io.Reader) error {
	that.render(that.uGame.State(ctx))

	lines := make(chan string)
	readErrCh := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		readErrCh <- scanner.Err()
	}()

	for {
		that.printf("> ")

		var (
			line string
			ok   bool
		)

		select {
		case <-ctx.Done():
			that.printf("\n")
			return nil
		case line, ok = <-lines:
		}

		if !ok {
			break
		}

		quit, err := that.execute(ctx, strings.Fields(line))
		if err != nil {
			that.printf("%s\n", that.output.String("error: "+err.Error()).Foreground(that.output.Color("1")))
		}

		if quit {
			return nil
		}
	}

	select {
	case err := <-readErrCh:
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
	default:
	}

	return nil
}

func (that *Console) execute(ctx context.Context, args []string) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}

	var (
		view *entity.GameView
		err  error
	)

	switch cmd := strings.ToLower(args[0]); cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		that.printf("%s\n", helpText)
		return false, nil
	case "status", "show":
		view = that.uGame.State(ctx)
	case "history":
		that.renderHistory(that.uGame.State(ctx))
		return false, nil
	case "play", "jump":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: %s <n>", cmd)
		}

		n, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			return false, fmt.Errorf("not a number: %q", args[1])
		}

		if cmd == "play" {
			view, err = that.uGame.Play(ctx, n)
		} else {
			view, err = that.uGame.JumpTo(ctx, n)
		}
	case "save":
		that.printf("%s\n", that.output.String("saving...").Faint())
		view, err = that.uGame.Save(ctx)
	case "load":
		view, err = that.uGame.Load(ctx)
	default:
		cell, convErr := strconv.Atoi(cmd)
		if convErr != nil {
			return false, fmt.Errorf("unknown command %q, type help", cmd)
		}

		view, err = that.uGame.Play(ctx, cell)
	}

	if err != nil {
		return false, err
	}

	that.render(view)

	return false, nil
}

func (that *Console) render(view *entity.GameView) {
	var sb strings.Builder

	for row := 0; row < 3; row++ {
		cells := make([]string, 3)
		for col := 0; col < 3; col++ {
			cell := row*3 + col
			cells[col] = " " + that.mark(view.Board[cell], cell) + " "
		}

		sb.WriteString(strings.Join(cells, "|"))
		sb.WriteString("\n")

		if row < 2 {
			sb.WriteString("---+---+---\n")
		}
	}

	sb.WriteString(that.output.String(view.Status).Bold().String())
	sb.WriteString(fmt.Sprintf("  (move %d of %d)\n", view.CurrentMove, len(view.History)-1))

	if view.Notice != "" {
		sb.WriteString(that.output.String(view.Notice).Foreground(that.output.Color("3")).String())
		sb.WriteString("\n")
	}

	that.printf("%s", sb.String())
}

func (that *Console) renderHistory(view *entity.GameView) {
	for _, entry := range view.History {
		line := fmt.Sprintf("%2d  %s", entry.Move, entry.Description)
		if entry.Move == view.CurrentMove {
			line = that.output.String(line + "  <").Bold().String()
		}

		that.printf("%s\n", line)
	}
}

func (that *Console) mark(mark entity.Mark, cell int) string {
	switch mark {
	case entity.PlayerX:
		return that.output.String("X").Foreground(that.output.Color("1")).Bold().String()
	case entity.PlayerO:
		return that.output.String("O").Foreground(that.output.Color("4")).Bold().String()
	default:
		return that.output.String(strconv.Itoa(cell)).Faint().String()
	}
}

func (that *Console) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("could not write output", "error", err)
	}
}
