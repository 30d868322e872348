// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/moov-io/railgate/pkg/achx"
	"github.com/moov-io/railgate/pkg/config"
	"github.com/moov-io/railgate/pkg/model"
	"github.com/moov-io/railgate/pkg/rails"

	"github.com/stretchr/testify/require"
)

func TestTopicSink(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg := &config.Events{InMem: &config.InMemEvents{URL: "mem://rail-decisions"}}
	topic, err := OpenTopic(ctx, cfg)
	require.NoError(t, err)

	sub, err := OpenSubscription(ctx, cfg.InMem.URL)
	require.NoError(t, err)
	defer sub.Shutdown(ctx)

	sink := NewTopicSink(log.NewNopLogger(), topic)

	amt, err := model.NewAmountFromInt("USD", 15000000)
	require.NoError(t, err)
	selector := rails.NewSelector(log.NewNopLogger(), sink, rails.DefaultThresholds(), rails.DefaultCatalog()...)
	_, err = selector.Select(rails.Criteria{Amount: *amt, Urgency: rails.Urgent})
	require.NoError(t, err)

	msg, err := sub.Receive(ctx)
	require.NoError(t, err)
	msg.Ack()

	var event DecisionEvent
	require.NoError(t, json.Unmarshal(msg.Body, &event))
	require.Equal(t, RailSelected, event.EventType)
	require.Equal(t, rails.Wire, event.Rail)
	require.Equal(t, 100, event.Score)
	require.Equal(t, event.EventID, msg.Metadata["eventID"])
	require.True(t, event.Criteria.Amount.Equal(*amt))

	sink.File(FileEncoded, achx.Summary{BatchCount: 2, TotalCredit: 100000})
	msg, err = sub.Receive(ctx)
	require.NoError(t, err)
	msg.Ack()

	var file FileEvent
	require.NoError(t, json.Unmarshal(msg.Body, &file))
	require.Equal(t, FileEncoded, file.EventType)
	require.Equal(t, 2, file.Summary.BatchCount)
	require.Equal(t, int64(100000), file.Summary.TotalCredit)

	require.NoError(t, sink.Close(ctx))
}

func TestOpenTopic__errors(t *testing.T) {
	ctx := context.Background()

	_, err := OpenTopic(ctx, nil)
	require.Error(t, err)

	_, err = OpenTopic(ctx, &config.Events{})
	require.Error(t, err)

	_, err = OpenTopic(ctx, &config.Events{InMem: &config.InMemEvents{URL: "other://topic"}})
	require.Error(t, err)
}

func TestKafkaConfig(t *testing.T) {
	cfg := kafkaConfig()
	require.True(t, cfg.Producer.Return.Successes)
	require.NoError(t, cfg.Validate())
}

func TestMockSink(t *testing.T) {
	sink := &MockSink{}
	sink.Decided(rails.Decision{Type: rails.ACH, Score: 90})
	sink.Decided(rails.Decision{Type: rails.Wire, Score: 80})

	decisions := sink.Decisions()
	require.Len(t, decisions, 2)
	require.Equal(t, rails.Wire, decisions[1].Type)
}
