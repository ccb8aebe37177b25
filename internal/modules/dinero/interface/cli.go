package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"dineroCheck/internal/config"
	"dineroCheck/internal/modules/dinero/application/port"
	"dineroCheck/internal/modules/dinero/application/usecase"
	"dineroCheck/internal/modules/dinero/domain"
	"dineroCheck/internal/modules/dinero/infrastructure"
	"dineroCheck/internal/shared/errmap"
)

const (
	errorPrefix    = "Error while verifying Dinero connection: "
	publishTimeout = 10 * time.Second
)

var (
	errMissingCommand = errors.New("a command is required: verify or post")
	errInvalidLookup  = errors.New("must be list or path")
)

// Options configures the CLI. Zero values fall back to the process environment and standard streams.
type Options struct {
	Getenv     func(string) string
	Settings   config.Settings
	HTTPClient *http.Client
	Publisher  port.RunPublisher
	RunID      string
	Stdout     io.Writer
	Stderr     io.Writer
	Now        func() time.Time
}

// App is the dinero-check command line.
type App struct {
	getenv     func(string) string
	settings   config.Settings
	httpClient *http.Client
	publisher  port.RunPublisher
	runID      string
	stdout     io.Writer
	stderr     io.Writer
	now        func() time.Time
	errors     *errmap.Mapper
}

func NewApp(opts Options) *App {
	app := &App{
		getenv:     opts.Getenv,
		settings:   opts.Settings,
		httpClient: opts.HTTPClient,
		publisher:  opts.Publisher,
		runID:      opts.RunID,
		stdout:     opts.Stdout,
		stderr:     opts.Stderr,
		now:        opts.Now,
		errors: errmap.NewMapper().
			WithMapping(config.ErrMissingConfiguration, 1, true).
			WithDefault(1, errorPrefix),
	}
	if app.getenv == nil {
		app.getenv = os.Getenv
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	if app.now == nil {
		app.now = time.Now
	}
	return app
}

// Run executes the command line and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	root := a.RootCommand()
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	outcome := a.errors.Map(root.ExecuteContext(ctx))
	if outcome.Message != "" {
		fmt.Fprintln(a.stderr, outcome.Message)
	}
	return outcome.Code
}

func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "dinero-check",
		Short:         "Verify connectivity with the Dinero accounting API",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return errMissingCommand
		},
	}
	root.AddCommand(a.verifyCommand(), a.postCommand())
	return root
}

func (a *App) verifyCommand() *cobra.Command {
	shape := domain.LookupPath
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Obtain an access token and confirm the organization is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			creds, err := config.LoadCredentials(a.getenv)
			if err != nil {
				return err
			}

			report, err := a.newCheck(shape).Verify(cmd.Context(), creds)
			a.publish(cmd.Context(), domain.ModeVerify, creds, report, err)
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().Var(lookupValue{shape: &shape}, flagOrgLookup, "organization lookup: path (GET /{org}/organization) or list (GET /organizations)")
	return cmd
}

func (a *App) postCommand() *cobra.Command {
	var (
		date        domain.VoucherDate
		description string
		amount      decimal.Decimal
		amountSet   bool
	)
	shape := domain.LookupList
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Verify connectivity, create a manual voucher and book it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			voucher, err := domain.NewManualVoucher(date, description, amount)
			if err != nil {
				return err
			}

			creds, err := config.LoadCredentials(a.getenv)
			if err != nil {
				return err
			}

			report, err := a.newCheck(shape).VerifyAndPost(cmd.Context(), creds, voucher)
			a.publish(cmd.Context(), domain.ModePost, creds, report, err)
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), report)
		},
	}

	flags := cmd.Flags()
	flags.Var(voucherDateValue{date: &date}, flagVoucherDate, "ISO formatted date (YYYY-MM-DD) to use for the manual voucher")
	flags.StringVar(&description, flagDescription, "", "description for the manual voucher line")
	flags.Var(amountValue{amount: &amount, set: &amountSet}, flagAmount, "amount to post on the manual voucher line")
	flags.Var(lookupValue{shape: &shape}, flagOrgLookup, "organization lookup: list (GET /organizations) or path (GET /{org}/organization)")
	for _, name := range []string{flagVoucherDate, flagDescription, flagAmount} {
		// Only fails for a flag that was never defined.
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("post command: %v", err))
		}
	}
	return cmd
}

func (a *App) newCheck(shape domain.LookupShape) *usecase.ConnectivityCheck {
	endpoints := a.settings.Endpoints
	tokens := infrastructure.NewTokenHTTPClient(endpoints.TokenURL, endpoints.Timeout, a.httpClient)
	organizations := infrastructure.NewOrganizationHTTPClient(endpoints.APIBaseURL, endpoints.Timeout, a.httpClient, shape)
	vouchers := infrastructure.NewVoucherHTTPClient(endpoints.APIBaseURL, endpoints.Timeout, a.httpClient)
	return usecase.NewConnectivityCheck(tokens, organizations, vouchers, vouchers)
}

// publish never fails the run; the audit event is best effort.
func (a *App) publish(ctx context.Context, mode domain.Mode, creds domain.Credentials, report *domain.Report, runErr error) {
	if a.publisher == nil {
		return
	}
	result := domain.NewRunResult(a.runID, mode, creds.OrganizationID, report, runErr, a.now())
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := a.publisher.Publish(ctx, result); err != nil {
		slog.Warn("run result publish failed", slog.String("mode", string(mode)), slog.Any("error", err))
	}
}
