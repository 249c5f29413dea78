// Command contio is a developer tool for the contio controllers.
//
// Configuration is read from, in order of precedence:
//  1. command-line flags (--token-secret, --user-token, ...)
//  2. CONTIO_* environment variables (CONTIO_TOKEN_SECRET, CONTIO_USER_TOKEN, ...)
//  3. the file given with --config, or .contio.yml in the working directory
package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-contio"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "CONTIO"

type app struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "contio",
		Short: "Developer tool for the contio chat controllers",
		Long: `contio mints and inspects chat user tokens, checks passwords against the
sign up policy and runs the authentication and channel flows against an
in-memory session service.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is .contio.yml)")
	flags.StringP("log-level", "l", "warn", "log level (debug, info, warn, error)")
	flags.String("user-token", "", "static user token used to connect")
	flags.String("token-secret", "", "secret used to mint and verify user tokens")
	flags.String("channel-type", contio.DefaultChannelType, "default channel type")
	flags.String("channel-image", contio.DefaultChannelImage, "image attached to new channels")
	flags.Int("min-user-name-length", contio.DefaultMinUserNameLength, "length a user name must exceed")

	a.bindFlags(flags)

	root.AddCommand(
		newTokenCmd(a),
		newPasswordCmd(),
		newSignInCmd(a),
		newSignUpCmd(a),
		newChannelCmd(a),
	)

	return root
}

func (a *app) bindFlags(flags *pflag.FlagSet) {
	bindings := map[string]string{
		"log_level":            "log-level",
		"user_token":           "user-token",
		"token_secret":         "token-secret",
		"channel_type":         "channel-type",
		"channel_image":        "channel-image",
		"min_user_name_length": "min-user-name-length",
	}
	for key, flag := range bindings {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}
}

func (a *app) initConfig() error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.SetConfigName(".contio")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return nil
}

func (a *app) options() (contio.Options, error) {
	opts := contio.DefaultOptions()
	if err := a.v.Unmarshal(&opts); err != nil {
		return contio.Options{}, fmt.Errorf("decode config: %w", err)
	}
	return opts, nil
}

func (a *app) logger(w io.Writer) contio.Logger {
	return newCLILogger(w, a.v.GetString("log_level"))
}
