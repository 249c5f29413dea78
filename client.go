package contio

import (
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// ClientOption customizes NewClient.
type ClientOption func(*clientOptions)

type clientOptions struct {
	logger        Logger
	sink          ActivitySink
	clock         func() time.Time
	tokens        TokenProvider
	channelIDs    ChannelIDGenerator
	submitTimeout time.Duration
}

// WithClientLogger sets the logger shared by all controllers.
func WithClientLogger(logger Logger) ClientOption {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// WithClientActivitySink sets the ActivitySink shared by all controllers.
func WithClientActivitySink(sink ActivitySink) ClientOption {
	return func(o *clientOptions) {
		o.sink = sink
	}
}

// WithClientClock injects a custom clock (useful for tests).
func WithClientClock(clock func() time.Time) ClientOption {
	return func(o *clientOptions) {
		o.clock = clock
	}
}

// WithClientTokenProvider overrides the credential source derived from Config.
func WithClientTokenProvider(tokens TokenProvider) ClientOption {
	return func(o *clientOptions) {
		o.tokens = tokens
	}
}

// WithClientChannelIDs overrides how channel ids are produced.
func WithClientChannelIDs(gen ChannelIDGenerator) ClientOption {
	return func(o *clientOptions) {
		o.channelIDs = gen
	}
}

// WithClientSubmitTimeout bounds authentication connect calls.
func WithClientSubmitTimeout(timeout time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.submitTimeout = timeout
	}
}

// Client wires every controller to one session service and one Config.
type Client struct {
	config  Config
	service SessionService

	authentication *AuthenticationController
	login          *LoginController
	channels       *ChannelController
	userDetails    *UserDetailsController
}

// NewClient builds the controllers for service using cfg.
func NewClient(service SessionService, cfg Config, opts ...ClientOption) (*Client, error) {
	if service == nil {
		return nil, ErrSessionServiceRequired
	}
	if cfg == nil {
		cfg = DefaultOptions()
	}

	options := clientOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	if options.tokens == nil {
		options.tokens = TokenProviderFromConfig(cfg)
	}

	authentication, err := NewAuthenticationController(service, options.tokens,
		WithAuthenticationLogger(options.logger),
		WithAuthenticationActivitySink(options.sink),
		WithAuthenticationClock(options.clock),
		WithSubmitTimeout(options.submitTimeout),
	)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to build authentication controller")
	}

	login, err := NewLoginController(service,
		WithLoginLogger(options.logger),
		WithLoginActivitySink(options.sink),
		WithLoginClock(options.clock),
		WithMinUserNameLength(cfg.GetMinUserNameLength()),
	)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to build login controller")
	}

	channels, err := NewChannelController(service,
		WithChannelLogger(options.logger),
		WithChannelActivitySink(options.sink),
		WithChannelClock(options.clock),
		WithChannelIDGenerator(options.channelIDs),
		WithChannelDefaults(cfg.GetDefaultChannelType(), cfg.GetChannelImage()),
	)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to build channel controller")
	}

	userDetails, err := NewUserDetailsController(service)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to build user details controller")
	}

	return &Client{
		config:         cfg,
		service:        service,
		authentication: authentication,
		login:          login,
		channels:       channels,
		userDetails:    userDetails,
	}, nil
}

func (c *Client) Config() Config {
	return c.config
}

func (c *Client) Service() SessionService {
	return c.service
}

func (c *Client) Authentication() *AuthenticationController {
	return c.authentication
}

func (c *Client) Login() *LoginController {
	return c.login
}

func (c *Client) Channels() *ChannelController {
	return c.channels
}

func (c *Client) UserDetails() *UserDetailsController {
	return c.userDetails
}
