package mail

// SMTPConfig carries everything the sender needs, including the
// identity and secret used to build unsubscribe footers.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string

	FromEmail string
	FromName  string

	AppURL            string
	UnsubscribeSecret string
}

type EmailSender struct {
	cfg SMTPConfig
}
