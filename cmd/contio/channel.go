package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-contio"
	"github.com/spf13/cobra"
)

type channelFlags struct {
	user        string
	name        string
	channelType string
	hashedIDs   bool
	activity    bool
	pretty      bool
}

func newChannelCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channel",
		Short: "Channel operations",
	}

	flags := &channelFlags{}
	create := &cobra.Command{
		Use:   "create",
		Short: "Log a user in and create a channel",
		Example: `  contio channel create --user alice --name general --token-secret s3cr3t
  contio channel create --user alice --name general --type livestream --hashed-ids`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreateChannel(cmd, a, flags)
		},
	}

	create.Flags().StringVarP(&flags.user, "user", "u", "", "user name to log in with")
	create.Flags().StringVarP(&flags.name, "name", "n", "", "channel name")
	create.Flags().StringVarP(&flags.channelType, "type", "t", "", "channel type (default from config)")
	create.Flags().BoolVar(&flags.hashedIDs, "hashed-ids", false, "derive the channel id from its name")
	create.Flags().BoolVar(&flags.activity, "activity", false, "print the activity log as JSON lines")
	create.Flags().BoolVar(&flags.pretty, "pretty", false, "indent the activity log")

	cmd.AddCommand(create)
	return cmd
}

func runCreateChannel(cmd *cobra.Command, a *app, flags *channelFlags) error {
	opts, err := a.options()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := a.logger(cmd.ErrOrStderr())
	sink := &activityLog{}

	clientOpts := []contio.ClientOption{
		contio.WithClientLogger(logger),
		contio.WithClientActivitySink(sink),
	}
	if flags.hashedIDs {
		clientOpts = append(clientOpts, contio.WithClientChannelIDs(contio.HashedChannelIDs))
	}

	client, err := contio.NewClient(newMemoryService(opts, 0), opts, clientOpts...)
	if err != nil {
		return err
	}

	token, err := contio.TokenProviderFromConfig(opts).Token(ctx, flags.user)
	if err != nil {
		return errors.New(contio.ServiceErrorMessage(err))
	}

	login, err := client.Login().Login(ctx, flags.user, token)
	if err != nil {
		return err
	}
	loginEvent, err := login.Wait(ctx)
	if err != nil {
		return err
	}
	if loginEvent.Kind != contio.LoginSucceeded {
		return errors.New(loginEvent.Reason)
	}

	profile := client.UserDetails().Refresh()
	logger.Info("connected as %s", profile.User.ID)

	created, err := client.Channels().CreateChannel(ctx, flags.name, flags.channelType).Wait(ctx)
	if err != nil {
		return err
	}

	if err := client.Channels().LogOut(ctx); err != nil {
		logger.Warn("logout: %v", err)
	}

	out := cmd.OutOrStdout()
	if flags.activity {
		if err := sink.writeJSON(out, flags.pretty); err != nil {
			return err
		}
	}

	if created.Kind != contio.ChannelCreated {
		return errors.New(created.Reason)
	}

	fmt.Fprintf(out, "created %s (%s)\n", created.Channel.CID(), created.Channel.ExtraData["name"])
	return nil
}
