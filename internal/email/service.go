package email

import (
	"bytes"
	"fmt"
	"mime"
	"net/smtp"
)

// SendFunc delivers a raw message. It matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Service handles email sending via SMTP
type Service struct {
	host string
	port string
	from string
	send SendFunc
}

func NewService(host, port, from string) *Service {
	return &Service{
		host: host,
		port: port,
		from: from,
		send: smtp.SendMail,
	}
}

// WithSender replaces the SMTP transport
func (s *Service) WithSender(send SendFunc) *Service {
	s.send = send
	return s
}

// SendOrderConfirmation emails the customer a summary of their order
func (s *Service) SendOrderConfirmation(to string, confirmation OrderConfirmation) error {
	body, err := BuildOrderConfirmationBody(confirmation)
	if err != nil {
		return fmt.Errorf("render confirmation: %w", err)
	}
	return s.deliver(to, ConfirmationSubject(confirmation.OrderNumber), body)
}

// ConfirmationSubject is the subject line of the order confirmation
func ConfirmationSubject(orderNumber string) string {
	return fmt.Sprintf("FlyGear: замовлення %s прийнято", orderNumber)
}

func (s *Service) deliver(to, subject, body string) error {
	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.BEncoding.Encode("UTF-8", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return s.send(addr, nil, s.from, []string{to}, msg.Bytes())
}
