// Command deskctl is the front-desk client for the librarian server.
package main

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mmynk/librarian/internal/circulation"
	"github.com/mmynk/librarian/internal/client"
	"github.com/mmynk/librarian/internal/config"
	"github.com/mmynk/librarian/internal/errmap"
	"github.com/mmynk/librarian/pkg/logging"
)

// app carries what every command needs once flags are parsed.
type app struct {
	cfg    *config.Config
	client *client.Client
	cat    *circulation.Catalog
	out    io.Writer
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}
	var serverURL, locale string

	root := &cobra.Command{
		Use:          "deskctl",
		Short:        "Front-desk client for the school library",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if serverURL != "" {
				cfg.ServerURL = serverURL
			}
			if locale != "" {
				cfg.Locale = locale
			}
			logging.Setup(cfg.LogLevel, cfg.LogFormat)

			a.cfg = cfg
			a.client = client.New(nil, cfg.ServerURL, cfg.HTTPTimeout)
			a.cat = circulation.NewCatalog(cfg.Locale)
			return nil
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&serverURL, "server", "", "server URL (default $LIBRARIAN_URL)")
	root.PersistentFlags().StringVar(&locale, "locale", "", "message language, e.g. en or ar (default $LIBRARIAN_LOCALE)")

	root.AddCommand(
		newBooksCmd(a),
		newUsersCmd(a),
		newAdminsCmd(a),
		newLoansCmd(a),
		newStatsCmd(a),
		newShellCmd(a),
	)
	return root
}

// newTable returns a table writer that renders to the app's output.
func (a *app) newTable(header ...any) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(a.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	return t
}

// describe turns a failure into the line shown to the librarian.
func (a *app) describe(op string, err error) error {
	var verr *circulation.ValidationError
	if errors.As(err, &verr) {
		for _, field := range slices.Sorted(maps.Keys(verr.Fields)) {
			fmt.Fprintf(a.out, "  %s: %s\n", field, verr.Fields[field])
		}
		return errors.New("loan not issued")
	}

	var notice *circulation.Notice
	if errors.As(err, &notice) {
		return errors.New(notice.Message)
	}

	res := errmap.Classify(err)
	switch res.Kind {
	case errmap.Fields:
		for _, field := range slices.Sorted(maps.Keys(res.Fields)) {
			fmt.Fprintf(a.out, "  %s: %s\n", field, res.Fields[field])
		}
		return fmt.Errorf("%s rejected", op)
	case errmap.Notice:
		return errors.New(a.cat.Text(circulation.MsgErrorDetail, res.Message))
	default:
		return fmt.Errorf("%s failed: %w", op, err)
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
