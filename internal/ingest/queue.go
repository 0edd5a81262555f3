package ingest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// SubjectJob is the NATS subject carrying ingestion jobs.
const SubjectJob = "linkflow.ingest.job"

// workerGroup makes subscriptions a queue group so each job is delivered to a
// single worker process even when several are running.
const workerGroup = "linkflow-ingest-workers"

// Metadata travels with a job and is stamped onto every chunk it produces.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
}

// Job is one unit of save-context work: a raw document to chunk, embed and
// store. The queue owns it from Enqueue until a worker picks it up.
type Job struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata"`
}

// Queue is the broker client for the ingestion path. Retry and redelivery are
// the broker's concern, not ours.
type Queue struct {
	conn   *nats.Conn
	subs   []*nats.Subscription
	logger *slog.Logger
}

func Connect(url, token string, logger *slog.Logger) (*Queue, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Queue{conn: nc, logger: logger}, nil
}

// Enqueue publishes a job and returns its ID. The caller gets confirmation of
// enqueueing only; embedding completes out of band.
func (q *Queue) Enqueue(job Job) (string, error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}

	payload, err := json.Marshal(job)
	if err != nil {
		return "", fmt.Errorf("marshal job: %w", err)
	}
	if err := q.conn.Publish(SubjectJob, payload); err != nil {
		return "", fmt.Errorf("publish job: %w", err)
	}

	q.logger.Info("job enqueued", "job_id", job.ID, "source", job.Metadata.Source, "bytes", len(job.Text))
	return job.ID, nil
}

// Subscribe registers a handler for ingestion jobs within the worker queue group.
func (q *Queue) Subscribe(handler func(job Job)) error {
	sub, err := q.conn.QueueSubscribe(SubjectJob, workerGroup, func(msg *nats.Msg) {
		var job Job
		if err := json.Unmarshal(msg.Data, &job); err != nil {
			q.logger.Error("failed to parse job payload", "error", err)
			return
		}
		handler(job)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", SubjectJob, err)
	}
	q.subs = append(q.subs, sub)
	q.logger.Info("subscribed", "subject", SubjectJob, "group", workerGroup)
	return nil
}

func (q *Queue) Close() {
	for _, sub := range q.subs {
		_ = sub.Unsubscribe()
	}
	q.conn.Close()
}
