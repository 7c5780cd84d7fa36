package mail

type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
	IsHTML  bool
}

type MailSender interface {
	Send(message *Message) error
}
