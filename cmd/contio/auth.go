package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/goliatone/go-contio"
	"github.com/goliatone/go-contio/activitymap"
	"github.com/goliatone/go-contio/memory"
	"github.com/goliatone/go-print"
	"github.com/spf13/cobra"
)

type authFlags struct {
	user     string
	password string
	latency  time.Duration
	timeout  time.Duration
	activity bool
	pretty   bool
}

func newSignInCmd(a *app) *cobra.Command {
	return newAuthCmd(a, contio.ModeSignIn, "signin", "Sign a user in through the authentication form")
}

func newSignUpCmd(a *app) *cobra.Command {
	return newAuthCmd(a, contio.ModeSignUp, "signup", "Sign a user up through the authentication form")
}

func newAuthCmd(a *app, mode contio.AuthenticationMode, use, short string) *cobra.Command {
	flags := &authFlags{}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthentication(cmd, a, mode, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.user, "user", "u", "", "user name")
	cmd.Flags().StringVarP(&flags.password, "password", "p", "", "password")
	cmd.Flags().DurationVar(&flags.latency, "latency", 0, "simulated session service latency")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "connect timeout, zero waits forever")
	cmd.Flags().BoolVar(&flags.activity, "activity", false, "print the activity log as JSON lines")
	cmd.Flags().BoolVar(&flags.pretty, "pretty", false, "indent the activity log")

	return cmd
}

func runAuthentication(cmd *cobra.Command, a *app, mode contio.AuthenticationMode, flags *authFlags) error {
	opts, err := a.options()
	if err != nil {
		return err
	}

	logger := a.logger(cmd.ErrOrStderr())
	sink := &activityLog{}
	service := newMemoryService(opts, flags.latency)

	client, err := contio.NewClient(service, opts,
		contio.WithClientLogger(logger),
		contio.WithClientActivitySink(sink),
		contio.WithClientSubmitTimeout(flags.timeout),
	)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	form := client.Authentication()
	unsubscribe := form.States().Subscribe(func(s contio.FormState) {
		logger.Debug("form state mode=%s user=%q requirements=%s loading=%t", s.Mode, s.UserName, s.Requirements, s.IsLoading)
	})
	defer unsubscribe()

	events := []contio.FormEvent{
		contio.UserNameChanged{Name: flags.user},
		contio.PasswordChanged{Password: flags.password},
	}
	if form.State().Mode != mode {
		events = append(events, contio.ToggleMode{})
	}
	for _, event := range events {
		if _, err := form.HandleEvent(ctx, event); err != nil {
			return err
		}
	}

	if !form.State().IsFormValid() {
		logger.Warn("form is not valid for %s", mode)
	}

	submission, err := form.HandleEvent(ctx, contio.Authenticate{})
	if err != nil {
		return err
	}

	outcome, err := submission.Wait(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flags.activity {
		if err := sink.writeJSON(out, flags.pretty); err != nil {
			return err
		}
	}

	if !outcome.Succeeded() {
		return errors.New(outcome.Reason)
	}

	fmt.Fprintf(out, "%s: %s\n", outcome.Kind, outcome.UserID)
	return nil
}

func newMemoryService(opts contio.Options, latency time.Duration) *memory.SessionService {
	serviceOpts := []memory.Option{memory.WithLatency(latency)}
	if secret := opts.GetTokenSecret(); secret != "" {
		serviceOpts = append(serviceOpts, memory.WithTokenValidator(contio.NewHMACTokenValidator([]byte(secret))))
	}
	return memory.NewSessionService(serviceOpts...)
}

type activityLog struct {
	mu     sync.Mutex
	events []contio.ActivityEvent
}

func (l *activityLog) Record(_ context.Context, event contio.ActivityEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
	return nil
}

func (l *activityLog) writeJSON(w io.Writer, pretty bool) error {
	l.mu.Lock()
	events := append([]contio.ActivityEvent(nil), l.events...)
	l.mu.Unlock()

	records := activitymap.NormalizeAll(events, activitymap.WithActorFallback("cli"))
	if pretty {
		for _, record := range records {
			fmt.Fprintln(w, print.MaybePrettyJSON(record))
		}
		return nil
	}

	enc := json.NewEncoder(w)
	for _, record := range records {
		if err := enc.Encode(record); err != nil {
			return fmt.Errorf("encode activity: %w", err)
		}
	}
	return nil
}
