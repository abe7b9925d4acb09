package mail

// Config holds configuration for outgoing credential emails.
type Config struct {
	// Host is the SMTP server host.
	Host string `mapstructure:"host" default:"smtp.gmail.com"`
	// Port is the SMTP server port (TLS).
	Port int `mapstructure:"port" default:"465"`
	// From is the sender address, also used as the SMTP username.
	From string `mapstructure:"from" default:"infopsicouja@gmail.com"`
	// Password is the SMTP password. Empty disables sending.
	Password string `mapstructure:"password" default:""`
}
