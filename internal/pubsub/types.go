package pubsub

import (
	"cloud.google.com/go/pubsub"
	"github.com/mauv0809/rei-da-mesa/internal/stats"
	"github.com/mauv0809/rei-da-mesa/internal/table"
)

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
// It doubles as the topic name.
type EventType string

const (
	EventMatchFinished EventType = "match-finished"
)

// MatchFinished is published after a finished match is committed.
type MatchFinished struct {
	Match table.Match `msgpack:"match"`
	// Queue is the rotated queue right after the match.
	Queue []string `msgpack:"queue"`
	// Winners and Losers are resolved so subscribers do not need the roster.
	Winners []stats.PlayerRef `msgpack:"winners"`
	Losers  []stats.PlayerRef `msgpack:"losers"`
}
