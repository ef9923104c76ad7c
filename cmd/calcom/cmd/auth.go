package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theakshaypant/calcom/internal/config"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the stored Cal.com API key",
	Long: `Manage the API key used to talk to Cal.com.

The key is stored in the local config file with owner-only permissions.
CALCOM_API_KEY, when set, takes precedence over the stored key.`,
}

var authSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store an API key (and optionally a default timezone)",
	Args:  cobra.NoArgs,
	RunE:  runAuthSet,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the API key comes from",
	Args:  cobra.NoArgs,
	RunE:  runAuthStatus,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authSetCmd, authStatusCmd)

	authSetCmd.Flags().String("api-key", "", "Cal.com API key")
	authSetCmd.Flags().String("timezone", "", "Default IANA timezone to store (e.g. Europe/Oslo)")
}

func runAuthSet(cmd *cobra.Command, args []string) error {
	if err := requireFlags(cmd, "api-key"); err != nil {
		return err
	}

	rec, err := sess.store.SetAuth(flagString(cmd, "api-key"), flagString(cmd, "timezone"))
	if err != nil {
		return err
	}

	timezone := rec.Timezone
	if timezone == "" {
		timezone = sess.timezone
	}
	return sess.out.result("Auth updated in local config (secret hidden).", map[string]any{
		"configured": true,
		"configPath": sess.store.Path,
		"timezone":   timezone,
	})
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	// A missing key is reported, not failed on.
	tok, _ := config.ResolveToken(viper.GetString("api_key"), sess.record)
	st := config.NewStatus(tok, sess.store.Path, sess.timezone)

	p := sess.out
	if p.structured() {
		return p.emit(st)
	}

	if !st.Authenticated {
		p.line("No API key configured. Run `calcom auth set --api-key <key>` or set %s.", config.EnvAPIKey)
		p.line("%s %s", labelStyle.Render("Timezone:"), st.Timezone)
		return nil
	}

	p.line("Authenticated via %s.", st.Source)
	p.line("%s %s", labelStyle.Render("Token:"), *st.TokenPreview)
	p.line("%s %s", labelStyle.Render("Config:"), st.ConfigPath)
	p.line("%s %s", labelStyle.Render("Timezone:"), st.Timezone)
	return nil
}
