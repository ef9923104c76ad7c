package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theakshaypant/calcom/internal/adapter/calcom"
	"github.com/theakshaypant/calcom/internal/config"
	"github.com/theakshaypant/calcom/internal/confirm"
	"github.com/theakshaypant/calcom/internal/core"
)

// envAPIURL overrides the API base URL.
const envAPIURL = "CALCOM_API_URL"

// session is everything a command needs, resolved once before it runs.
type session struct {
	store    *config.Store
	record   config.Record
	timezone string
	loc      *time.Location
	out      printer
	logger   *log.Logger
	// client is nil for commands that manage credentials.
	client *calcom.Client
}

var (
	cfgFile string
	sess    *session

	// prompter asks before mutations; tests swap it out.
	prompter confirm.Prompter = confirm.NewReadlinePrompter()
	// clock is the current time for filters and next-occurrence math.
	clock = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "calcom",
	Short: "Manage Cal.com availability, links and bookings from the terminal",
	Long: `calcom talks to the Cal.com v2 API so you can check and change your
availability, share booking links, look up free slots and manage bookings
without opening a browser.

Every command that changes something asks first. Pass --yes to skip the
prompt or --dry-run to see the exact payload without sending it.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: initSession,
}

// Execute runs the command tree and exits with its status.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes args and returns the exit status: 0 on success, 2 when the user
// declined a confirmation and 1 for every other failure.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	sess = nil
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return renderError(stdout, stderr, errorMode(), err)
	}
	return 0
}

// errorMode is the output mode for reporting a failure. Flags parsed before a
// flag error still count.
func errorMode() outputMode {
	if sess != nil {
		return sess.out.mode
	}
	mode, err := parseOutputMode(viper.GetString("output"), viper.GetBool("json"))
	if err != nil {
		return outputText
	}
	return mode
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/calcom-cli/config.json)")
	rootCmd.PersistentFlags().Bool("json", false, "Print machine-readable JSON (same as --output json)")
	rootCmd.PersistentFlags().StringP("output", "o", string(outputText), "Output format: text, json or yaml")
	rootCmd.PersistentFlags().String("timezone", "", "IANA timezone for this run (overrides the stored one)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log API requests to stderr")
	rootCmd.PersistentFlags().String("api-url", "", "Cal.com API base URL")
	_ = rootCmd.PersistentFlags().MarkHidden("api-url")

	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("timezone", rootCmd.PersistentFlags().Lookup("timezone"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url"))

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &core.ValidationError{Message: err.Error()}
	})
}

func initConfig() {
	// Environment variables
	viper.BindEnv("api_key", config.EnvAPIKey)
	viper.BindEnv("api_url", envAPIURL)
}

// initSession loads the local config and, for commands that call the API, builds
// the client. Help and completion run without any of it.
func initSession(cmd *cobra.Command, args []string) error {
	if isBuiltin(cmd) {
		return nil
	}

	mode, err := parseOutputMode(viper.GetString("output"), viper.GetBool("json"))
	if err != nil {
		return err
	}
	s := &session{
		out:    printer{w: cmd.OutOrStdout(), mode: mode},
		logger: log.New(io.Discard, "", 0),
	}
	sess = s

	if viper.GetBool("verbose") {
		s.logger = log.New(cmd.ErrOrStderr(), "calcom: ", log.LstdFlags|log.Lmicroseconds)
	}

	if s.store, err = config.NewStore(cfgFile); err != nil {
		return err
	}
	if s.record, err = s.store.Load(); err != nil {
		return err
	}
	s.logger.Printf("using config file %s", s.store.Path)

	s.timezone, err = config.ResolveTimezone(viper.GetString("timezone"), s.record)
	if err != nil {
		// auth set is how a bad stored timezone gets replaced.
		if cmd != authSetCmd {
			return err
		}
		s.timezone = core.DefaultTimezone
	}
	if s.loc, err = time.LoadLocation(s.timezone); err != nil {
		return &core.ValidationError{Message: "Invalid timezone", Value: s.timezone}
	}

	if isAuthCommand(cmd) {
		return nil
	}

	tok, err := config.ResolveToken(viper.GetString("api_key"), s.record)
	if err != nil {
		return err
	}
	s.logger.Printf("using API key from %s", tok.Source)

	s.client, err = calcom.NewClient(tok.Value, viper.GetString("api_url"), calcom.WithLogger(s.logger))
	return err
}

func isBuiltin(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		name := c.Name()
		if name == "help" || name == "completion" || strings.HasPrefix(name, "__complete") {
			return true
		}
	}
	return false
}

func isAuthCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == authCmd {
			return true
		}
	}
	return false
}

func flagString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return strings.TrimSpace(v)
}

func flagBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}

// requireFlags fails with a validation error naming the first flag that was not given.
func requireFlags(cmd *cobra.Command, names ...string) error {
	for _, name := range names {
		if !cmd.Flags().Changed(name) {
			return &core.ValidationError{Message: fmt.Sprintf("required option --%s not specified", name)}
		}
	}
	return nil
}
