// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package events publishes rail decisions and ACH file summaries to a
// gocloud.dev/pubsub topic. In-memory (mem://) and Kafka topics are supported.
package events

import (
	"encoding/json"
	"time"

	"github.com/moov-io/railgate/pkg/achx"
	"github.com/moov-io/railgate/pkg/rails"

	"gocloud.dev/pubsub"
)

const (
	RailSelected = "RailSelected"
	FileEncoded  = "FileEncoded"
	FileDecoded  = "FileDecoded"
)

// DecisionEvent is the message body sent for every rail decision.
type DecisionEvent struct {
	EventID   string         `json:"eventID"`
	EventType string         `json:"eventType"`
	Rail      rails.Type     `json:"rail"`
	Score     int            `json:"score"`
	Criteria  rails.Criteria `json:"criteria"`
	Timestamp time.Time      `json:"timestamp"`
}

// FileEvent is the message body sent after a file is encoded or decoded.
type FileEvent struct {
	EventID   string       `json:"eventID"`
	EventType string       `json:"eventType"`
	Summary   achx.Summary `json:"summary"`
	Timestamp time.Time    `json:"timestamp"`
}

func buildMessage(eventID string, event interface{}) (*pubsub.Message, error) {
	bs, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	meta := make(map[string]string)
	meta["eventID"] = eventID

	return &pubsub.Message{
		Body:     bs,
		Metadata: meta,
	}, nil
}
