package services

import (
	"log"
	"sync"
	"sync/atomic"
)

// MailDispatcher — очередь исходящих писем с пулом воркеров.
// HTTP-ответ не ждёт SMTP: init кладёт задание и сразу отвечает клиенту.
// Ошибки отправки логируются и никогда не откатывают уже закоммиченную
// заявку — пользователь либо запросит resend, либо код истечёт.
type MailDispatcher struct {
	emails    EmailService
	ch        chan mailJob
	done      chan struct{}
	wg        sync.WaitGroup
	dropped   atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

type mailJob struct {
	email string
	code  string
}

func NewMailDispatcher(emails EmailService, workers, bufferSize int) *MailDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if bufferSize <= 0 {
		bufferSize = 64
	}

	d := &MailDispatcher{
		emails: emails,
		ch:     make(chan mailJob, bufferSize),
		done:   make(chan struct{}),
	}

	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.run()
	}

	return d
}

func (d *MailDispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case job := <-d.ch:
			d.deliver(job)
		case <-d.done:
			// дослать то, что уже лежит в очереди, и выйти
			for {
				select {
				case job := <-d.ch:
					d.deliver(job)
				default:
					return
				}
			}
		}
	}
}

func (d *MailDispatcher) deliver(job mailJob) {
	if err := d.emails.SendConfirmationCode(job.email, job.code); err != nil {
		log.Printf("[mail][dispatch] send failed: to=%s err=%v", job.email, err)
		return
	}
	log.Printf("[mail][dispatch] sent: to=%s", job.email)
}

// Enqueue — неблокирующая постановка. Полная очередь — письмо отбрасывается
// (счётчик Dropped), заявка в БД при этом не трогается.
func (d *MailDispatcher) Enqueue(email, code string) {
	if d == nil || d.closed.Load() {
		return
	}
	select {
	case d.ch <- mailJob{email: email, code: code}:
	case <-d.done:
	default:
		d.dropped.Add(1)
		log.Printf("[mail][dispatch] queue full, dropped: to=%s", email)
	}
}

// Close — останавливает приём, дожидается доставки накопленного.
func (d *MailDispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.done)
		d.wg.Wait()
	})
}

func (d *MailDispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
