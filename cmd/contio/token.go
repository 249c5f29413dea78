package main

import (
	"fmt"
	"time"

	"github.com/goliatone/go-contio"
	"github.com/spf13/cobra"
)

func newTokenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint and inspect chat user tokens",
	}
	cmd.AddCommand(newTokenMintCmd(a), newTokenInspectCmd(a))
	return cmd
}

func newTokenMintCmd(a *app) *cobra.Command {
	var (
		userID string
		ttl    time.Duration
		issuer string
	)

	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint an HS256 user token with the configured secret",
		Example: `  contio token mint --user bob --token-secret s3cr3t
  CONTIO_TOKEN_SECRET=s3cr3t contio token mint --user bob --ttl 24h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.options()
			if err != nil {
				return err
			}

			token, expiresAt, err := contio.MintUserToken([]byte(opts.GetTokenSecret()), userID, contio.UserTokenOptions{
				TTL:    ttl,
				Issuer: issuer,
			})
			if err != nil {
				return fmt.Errorf("mint token: %s", contio.ServiceErrorMessage(err))
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			if !expiresAt.IsZero() {
				a.logger(cmd.ErrOrStderr()).Info("token expires at %s", expiresAt.Format(time.RFC3339))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "user id the token is issued for")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime, zero issues a token without expiration")
	cmd.Flags().StringVar(&issuer, "issuer", "", "optional issuer claim")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newTokenInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <token>",
		Short: "Print the user id of a token, verifying it when a secret is configured",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.options()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if secret := opts.GetTokenSecret(); secret != "" {
				claims, err := contio.NewHMACTokenValidator([]byte(secret)).Validate(args[0])
				if err != nil {
					return fmt.Errorf("inspect token: %s", contio.ServiceErrorMessage(err))
				}
				fmt.Fprintf(out, "user_id: %s (verified)\n", claims.UserID)
				if claims.ExpiresAt != nil {
					fmt.Fprintf(out, "expires: %s\n", claims.ExpiresAt.Time.Format(time.RFC3339))
				}
				return nil
			}

			userID, err := contio.UnverifiedUserID(args[0])
			if err != nil {
				return fmt.Errorf("inspect token: %s", contio.ServiceErrorMessage(err))
			}
			fmt.Fprintf(out, "user_id: %s (unverified)\n", userID)
			return nil
		},
	}
}
