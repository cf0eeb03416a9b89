package lmstfy

import (
	"fmt"
	"time"

	"github.com/bitleak/lmstfy/client"
)

// Message job pulled off a queue
type Message struct {
	ID    string // job ID
	Queue string // queue name
	Data  []byte // raw payload
}

// Client lmstfy client wrapper
type Client struct {
	cli       *client.LmstfyClient
	namespace string
}

// NewClient creates an lmstfy client
func NewClient(host string, port int, namespace string, token string) (*Client, error) {
	cli := client.NewLmstfyClient(host, port, namespace, token)
	return &Client{
		cli:       cli,
		namespace: namespace,
	}, nil
}

// Consume pulls one message (blocks until a message arrives or timeout)
func (c *Client) Consume(queue string, timeout time.Duration, ttr time.Duration) (*Message, error) {
	timeoutSec := uint32(timeout.Seconds())
	ttrSec := uint32(ttr.Seconds())

	job, err := c.cli.Consume(queue, ttrSec, timeoutSec)
	if err != nil {
		return nil, fmt.Errorf("lmstfy consume failed: %w", err)
	}

	// timed out without a message
	if job == nil {
		return nil, nil
	}

	return &Message{
		ID:    job.ID,
		Queue: job.Queue,
		Data:  job.Data,
	}, nil
}

// Ack acknowledges (deletes) a message
func (c *Client) Ack(queue string, jobID string) error {
	if err := c.cli.Ack(queue, jobID); err != nil {
		return fmt.Errorf("lmstfy ack failed: %w", err)
	}
	return nil
}

// Publish enqueues a message
// ttl=0 never expires, delay=0 immediately available
func (c *Client) Publish(queue string, data []byte, ttl, delay uint32) (string, error) {
	jobID, err := c.cli.Publish(queue, data, ttl, 3, delay)
	if err != nil {
		return "", fmt.Errorf("lmstfy publish failed: %w", err)
	}
	return jobID, nil
}
