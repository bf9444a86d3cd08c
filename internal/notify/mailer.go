package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/BruksfildServices01/barbershop-manager/internal/config"
)

type BookingConfirmation struct {
	ClientName   string
	ClientEmail  string
	ShopName     string
	ShopAddress  string
	ServiceName  string
	EmployeeName string
	Start        time.Time
}

// Notifier recebe confirmações sem bloquear quem chama. Close entrega o
// que ainda está na fila antes de retornar.
type Notifier interface {
	Enqueue(c BookingConfirmation)
	Close()
}

type Noop struct{}

func (Noop) Enqueue(BookingConfirmation) {}
func (Noop) Close()                      {}

type Mailer struct {
	cfg   *config.Config
	log   *slog.Logger
	queue chan BookingConfirmation
	done  chan struct{}
	send  func(ctx context.Context, c BookingConfirmation) error

	mu     sync.RWMutex
	closed bool
}

func NewMailer(cfg *config.Config, log *slog.Logger) *Mailer {
	m := &Mailer{
		cfg:   cfg,
		log:   log,
		queue: make(chan BookingConfirmation, 50),
		done:  make(chan struct{}),
	}
	m.send = m.sendSMTP
	go m.worker()
	return m
}

// New devolve um Mailer quando SMTP está configurado, senão um Noop.
func New(cfg *config.Config, log *slog.Logger) Notifier {
	if !cfg.MailEnabled() {
		return Noop{}
	}
	return NewMailer(cfg, log)
}

func (m *Mailer) Enqueue(c BookingConfirmation) {
	if c.ClientEmail == "" {
		return
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		m.log.Warn("mailer closed, dropping confirmation", "to", c.ClientEmail)
		return
	}

	select {
	case m.queue <- c:
	default:
		m.log.Warn("mail queue full, dropping confirmation", "to", c.ClientEmail)
	}
}

// Close para de aceitar confirmações e espera a fila esvaziar.
func (m *Mailer) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		<-m.done
		return
	}
	m.closed = true
	close(m.queue)
	m.mu.Unlock()

	<-m.done
}

func (m *Mailer) worker() {
	defer close(m.done)
	for c := range m.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := m.send(ctx, c); err != nil {
			m.log.Error("booking confirmation failed", "to", c.ClientEmail, "err", err)
		}
		cancel()
	}
}

func (m *Mailer) sendSMTP(ctx context.Context, c BookingConfirmation) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.SMTPFrom); err != nil {
		return fmt.Errorf("from: %w", err)
	}
	if err := msg.To(c.ClientEmail); err != nil {
		return fmt.Errorf("to: %w", err)
	}
	msg.Subject(Subject(c))
	msg.SetBodyString(mail.TypeTextPlain, Body(c))

	opts := []mail.Option{
		mail.WithPort(m.cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.SMTPUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.SMTPUser),
			mail.WithPassword(m.cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(m.cfg.SMTPHost, opts...)
	if err != nil {
		return fmt.Errorf("smtp client (host=%s port=%d): %w", m.cfg.SMTPHost, m.cfg.SMTPPort, err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send (host=%s port=%d): %w", m.cfg.SMTPHost, m.cfg.SMTPPort, err)
	}
	return nil
}

func Subject(c BookingConfirmation) string {
	return fmt.Sprintf("Agendamento confirmado - %s", c.ShopName)
}

func Body(c BookingConfirmation) string {
	return fmt.Sprintf(
		"Olá, %s!\n\n"+
			"Seu agendamento de %s com %s está confirmado para %s às %s.\n\n"+
			"%s\n%s\n",
		c.ClientName,
		c.ServiceName,
		c.EmployeeName,
		c.Start.Format("02/01/2006"),
		c.Start.Format("15:04"),
		c.ShopName,
		c.ShopAddress,
	)
}
