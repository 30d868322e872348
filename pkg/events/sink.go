// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package events

import (
	"context"
	"sync"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/moov-io/base"
	"github.com/moov-io/railgate/pkg/achx"
	"github.com/moov-io/railgate/pkg/rails"

	"gocloud.dev/pubsub"
)

const sendTimeout = 10 * time.Second

// TopicSink sends decisions to a pubsub.Topic. Sends happen on their own
// goroutine so callers never block, failures are logged.
type TopicSink struct {
	logger log.Logger
	topic  *pubsub.Topic

	wg sync.WaitGroup
}

func NewTopicSink(logger log.Logger, topic *pubsub.Topic) *TopicSink {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &TopicSink{
		logger: logger,
		topic:  topic,
	}
}

func (s *TopicSink) Decided(decision rails.Decision) {
	eventID := base.ID()
	s.send(eventID, RailSelected, &DecisionEvent{
		EventID:   eventID,
		EventType: RailSelected,
		Rail:      decision.Type,
		Score:     decision.Score,
		Criteria:  decision.Criteria,
		Timestamp: time.Now(),
	})
}

// File publishes the summary of an encoded or decoded file.
func (s *TopicSink) File(eventType string, summary achx.Summary) {
	eventID := base.ID()
	s.send(eventID, eventType, &FileEvent{
		EventID:   eventID,
		EventType: eventType,
		Summary:   summary,
		Timestamp: time.Now(),
	})
}

func (s *TopicSink) send(eventID, eventType string, event interface{}) {
	msg, err := buildMessage(eventID, event)
	if err != nil {
		level.Error(s.logger).Log("events", eventType, "eventID", eventID, "error", err)
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := s.topic.Send(ctx, msg); err != nil {
			level.Error(s.logger).Log("events", eventType, "eventID", eventID, "error", err)
			return
		}
		level.Debug(s.logger).Log("events", eventType, "eventID", eventID, "sent", true)
	}()
}

// Close waits for pending sends and shuts down the topic.
func (s *TopicSink) Close(ctx context.Context) error {
	s.wg.Wait()
	return s.topic.Shutdown(ctx)
}

// MockSink records every decision it receives.
type MockSink struct {
	mu        sync.Mutex
	decisions []rails.Decision
}

func (m *MockSink) Decided(decision rails.Decision) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decisions = append(m.decisions, decision)
}

func (m *MockSink) Decisions() []rails.Decision {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]rails.Decision(nil), m.decisions...)
}
