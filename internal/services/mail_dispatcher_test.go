package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingEmailService struct {
	mu   sync.Mutex
	sent []string
	fail bool
}

func (c *countingEmailService) SendConfirmationCode(email, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return fmt.Errorf("smtp down")
	}
	c.sent = append(c.sent, email)
	return nil
}

func (c *countingEmailService) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

func TestMailDispatcher_DrainsOnClose(t *testing.T) {
	emails := &countingEmailService{}
	d := NewMailDispatcher(emails, 2, 16)

	for i := 0; i < 10; i++ {
		d.Enqueue(fmt.Sprintf("user%d@x.com", i), "123456")
	}
	d.Close()

	// Close обязан дослать всё, что лежало в очереди
	assert.Equal(t, 10, emails.count())
	assert.Equal(t, uint64(0), d.Dropped())
}

func TestMailDispatcher_EnqueueAfterCloseIsNoop(t *testing.T) {
	emails := &countingEmailService{}
	d := NewMailDispatcher(emails, 1, 4)
	d.Close()

	d.Enqueue("late@x.com", "123456")
	assert.Equal(t, 0, emails.count())
}

func TestMailDispatcher_SendFailureIsSwallowed(t *testing.T) {
	emails := &countingEmailService{fail: true}
	d := NewMailDispatcher(emails, 1, 4)

	// ошибки транспорта не всплывают к вызывающему
	require.NotPanics(t, func() {
		d.Enqueue("user@x.com", "123456")
		d.Close()
	})
}

func TestMailDispatcher_CloseIdempotent(t *testing.T) {
	d := NewMailDispatcher(&countingEmailService{}, 1, 4)
	d.Close()
	require.NotPanics(t, d.Close)
}
