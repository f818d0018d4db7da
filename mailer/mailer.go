package mailer

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

// Sender delivers a single HTML email. Failures are the caller's problem;
// order flows treat email as fire-and-forget.
type Sender interface {
	Send(to, subject, html string) error
}

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(host string, port int, user, pass string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   fmt.Sprintf("\"Tienda Online\" <%s>", user),
	}
}

func (m *Mailer) Send(to, subject, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)
	return m.dialer.DialAndSend(msg)
}

// SendAsync fires the email on a goroutine and logs the outcome. Used after
// order creation and payment confirmation, where a mail failure must never
// fail the request.
func SendAsync(s Sender, to, subject, html string) {
	go func() {
		if err := s.Send(to, subject, html); err != nil {
			log.Printf("❌ Failed to send email to %s: %v", to, err)
			return
		}
		log.Printf("📩 Email sent to %s", to)
	}()
}

func OrderCreatedBody(name, orderID string, total float64) string {
	return fmt.Sprintf(`
		<h2>Hola %s, ¡gracias por tu compra!</h2>
		<p>Tu orden <strong>#%s</strong> fue creada por un total de <strong>$%.2f</strong>.</p>
		<p>Podés seguir el estado de tu orden desde tu cuenta.</p>
		<p>Nos alegra tenerte como cliente 💙</p>
	`, name, orderID, total)
}

func PaymentConfirmedBody(name, orderID string) string {
	return fmt.Sprintf(`
		<h2>Hola %s, ¡recibimos tu pago!</h2>
		<p>El pago de tu orden <strong>#%s</strong> fue confirmado.</p>
		<p>Te avisaremos cuando tu pedido sea enviado.</p>
	`, name, orderID)
}
