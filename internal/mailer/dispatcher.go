package mailer

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"talent-hive/internal/domain/application"
	"talent-hive/internal/infrastructure/mail"
	"talent-hive/internal/worker"
)

var ErrQueueFull = errors.New("mailer: dispatch queue full")

type resourceLookup interface {
	GetInterviewResources(ctx context.Context, jobTitle, companyName string) []string
}

// Notifier is told about every prep email that went out.
type Notifier interface {
	NotifyInterviewPrepSent(companyName, jobTitle string)
}

type PrepRequest struct {
	StudentName string
	Email       string
	JobTitle    string
	CompanyName string
}

// Dispatcher sends application and interview-prep emails. Prep emails can be
// sent inline or handed to a worker pool so the caller never waits on them.
type Dispatcher struct {
	resources   resourceLookup
	transport   mail.Transport
	pool        *worker.Pool
	notifier    Notifier
	taskTimeout time.Duration
	logger      *log.Logger
	now         func() time.Time

	drained chan struct{}
	start   sync.Once
}

type DispatcherOptions struct {
	Workers     int
	QueueSize   int
	RatePerSec  int
	TaskTimeout time.Duration
	Notifier    Notifier
}

func NewDispatcher(resources resourceLookup, transport mail.Transport, opts DispatcherOptions, logger *log.Logger) *Dispatcher {
	if opts.TaskTimeout <= 0 {
		opts.TaskTimeout = 30 * time.Second
	}
	pool := worker.NewPool(opts.Workers, opts.QueueSize)
	pool.SetRateLimit(opts.RatePerSec)
	return &Dispatcher{
		resources:   resources,
		transport:   transport,
		pool:        pool,
		notifier:    opts.Notifier,
		taskTimeout: opts.TaskTimeout,
		logger:      logger,
		now:         time.Now,
		drained:     make(chan struct{}),
	}
}

// Start runs the workers until ctx is cancelled or Close drains the queue.
// Task failures are only logged.
func (d *Dispatcher) Start(ctx context.Context) {
	d.start.Do(func() {
		results := d.pool.Run(ctx)
		go func() {
			defer close(d.drained)
			for r := range results {
				if r.Err != nil {
					d.logf("[Mailer] Detached task failed task=%s err=%v", r.Name, r.Err)
				}
			}
		}()
	})
}

// Close stops accepting tasks and waits for queued ones up to ctx.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.pool.Close()
	d.start.Do(func() { close(d.drained) })
	select {
	case <-d.drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SendInterviewPrep looks up resources and sends the prep email inline.
func (d *Dispatcher) SendInterviewPrep(ctx context.Context, req PrepRequest) error {
	resources := d.resources.GetInterviewResources(ctx, req.JobTitle, req.CompanyName)

	html, err := RenderPrepEmail(req.StudentName, req.JobTitle, req.CompanyName, resources, d.now())
	if err != nil {
		return err
	}

	err = d.transport.Send(ctx, mail.Message{
		FromName: brand + " Career Support",
		To:       req.Email,
		Subject:  PrepSubject(req.JobTitle, req.CompanyName),
		HTML:     html,
		Headers: map[string]string{
			"X-Priority": "3",
			"X-Mailer":   brand + " Interview Prep",
		},
	})
	if err != nil {
		return err
	}

	d.logf("[Mailer] Interview prep sent to=%s company=%q title=%q resources=%d", req.Email, req.CompanyName, req.JobTitle, len(resources))
	if d.notifier != nil {
		d.notifier.NotifyInterviewPrepSent(req.CompanyName, req.JobTitle)
	}
	return nil
}

// DispatchInterviewPrep queues the prep email and returns immediately. The
// task runs with its own timeout, detached from any request context.
func (d *Dispatcher) DispatchInterviewPrep(req PrepRequest) error {
	ok := d.pool.TrySubmit(worker.Task{
		Name: "interview_prep:" + req.Email,
		Run: func(ctx context.Context) error {
			tctx, cancel := context.WithTimeout(ctx, d.taskTimeout)
			defer cancel()
			return d.SendInterviewPrep(tctx, req)
		},
	})
	if !ok {
		d.logf("[Mailer] Interview prep dropped to=%s company=%q title=%q reason=queue_full", req.Email, req.CompanyName, req.JobTitle)
		return ErrQueueFull
	}
	return nil
}

func (d *Dispatcher) SendApplicationConfirmation(ctx context.Context, app application.Application) error {
	submitted := app.CreatedAt
	if submitted.IsZero() {
		submitted = d.now()
	}
	return d.transport.Send(ctx, mail.Message{
		FromName: brand,
		To:       app.Email,
		Subject:  ConfirmationSubject(app.JobTitle, app.CompanyName),
		Text:     RenderConfirmationText(strings.TrimSpace(app.StudentName), app.JobTitle, app.CompanyName, submitted),
		Headers: map[string]string{
			"X-Priority": "3",
			"X-Mailer":   brand,
		},
	})
}

func (d *Dispatcher) logf(format string, args ...any) {
	if d.logger != nil {
		d.logger.Printf(format, args...)
	}
}
