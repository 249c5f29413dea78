package contio

import "strings"

const (
	// DefaultChannelType is used when CreateChannel is called without a type
	DefaultChannelType = "messaging"
	// DefaultMinUserNameLength is the length a trimmed user name must exceed
	DefaultMinUserNameLength = 3
	// DefaultChannelImage is attached to new channels
	DefaultChannelImage = "https://drive.google.com/file/d/1vupzyOJXaEEZyXn0465LtzsQrFMSLrV6/view?usp=sharing"
)

var _ Config = Options{}

// Options is the plain struct implementation of Config. Zero fields resolve
// to package defaults.
type Options struct {
	UserToken         string `mapstructure:"user_token" json:"user_token"`
	TokenSecret       string `mapstructure:"token_secret" json:"token_secret"`
	ChannelType       string `mapstructure:"channel_type" json:"channel_type"`
	ChannelImage      string `mapstructure:"channel_image" json:"channel_image"`
	MinUserNameLength int    `mapstructure:"min_user_name_length" json:"min_user_name_length"`
}

// DefaultOptions returns Options populated with package defaults
func DefaultOptions() Options {
	return Options{
		ChannelType:       DefaultChannelType,
		ChannelImage:      DefaultChannelImage,
		MinUserNameLength: DefaultMinUserNameLength,
	}
}

func (o Options) GetUserToken() string {
	return o.UserToken
}

func (o Options) GetTokenSecret() string {
	return o.TokenSecret
}

func (o Options) GetDefaultChannelType() string {
	if t := strings.TrimSpace(o.ChannelType); t != "" {
		return t
	}
	return DefaultChannelType
}

func (o Options) GetChannelImage() string {
	if o.ChannelImage == "" {
		return DefaultChannelImage
	}
	return o.ChannelImage
}

func (o Options) GetMinUserNameLength() int {
	if o.MinUserNameLength <= 0 {
		return DefaultMinUserNameLength
	}
	return o.MinUserNameLength
}

// TokenProviderFromConfig picks the credential source configured in cfg: a
// minted token when a secret is set, the static user token otherwise.
func TokenProviderFromConfig(cfg Config) TokenProvider {
	if cfg == nil {
		return StaticToken("")
	}
	if secret := cfg.GetTokenSecret(); secret != "" {
		return NewTokenMinter([]byte(secret))
	}
	return StaticToken(cfg.GetUserToken())
}
