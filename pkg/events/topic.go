// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package events

import (
	"context"
	"errors"

	"github.com/moov-io/railgate/pkg/config"

	"github.com/Shopify/sarama"
	"gocloud.dev/pubsub"
	"gocloud.dev/pubsub/kafkapubsub"
	_ "gocloud.dev/pubsub/mempubsub"
)

// OpenTopic opens the topic described by cfg.
func OpenTopic(ctx context.Context, cfg *config.Events) (*pubsub.Topic, error) {
	if cfg == nil {
		return nil, errors.New("events: missing config")
	}
	switch {
	case cfg.InMem != nil:
		return pubsub.OpenTopic(ctx, cfg.InMem.URL)

	case cfg.Kafka != nil:
		return kafkapubsub.OpenTopic(cfg.Kafka.Brokers, kafkaConfig(), cfg.Kafka.Topic, nil)
	}
	return nil, errors.New("events: no topic configured")
}

// OpenSubscription opens a subscription by URL, i.e. mem://railgate.
func OpenSubscription(ctx context.Context, url string) (*pubsub.Subscription, error) {
	return pubsub.OpenSubscription(ctx, url)
}

// kafkaConfig returns a producer config which waits for every send to be acknowledged.
func kafkaConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = "railgate"
	cfg.Version = sarama.V0_11_0_0
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	return cfg
}
