package entity

// OutboundEmail is a single plain-text email to deliver
type OutboundEmail struct {
	From    string
	To      string
	Subject string
	Body    string
}
