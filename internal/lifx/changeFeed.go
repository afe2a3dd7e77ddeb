package lifx

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	sse "github.com/r3labs/sse/v2"
)

// ChangeFeed listens to the lighting service's event stream, events mean the
// state of some light changed outside this bridge
type ChangeFeed struct {
	logger *log.Logger
	server ServerSource
	path   string

	client       *sse.Client
	eventChannel chan *sse.Event
}

func NewChangeFeed(logger *log.Logger, server ServerSource, path string) *ChangeFeed {
	return &ChangeFeed{logger: logger, server: server, path: path}
}

func (f *ChangeFeed) Subscribe(eventChannel chan *sse.Event) error {

	server := strings.TrimRight(f.server.Server(), "/")
	if server == "" {
		return ErrNoServerConfigured
	}

	f.eventChannel = eventChannel
	f.client = sse.NewClient(server + f.path)
	f.client.Headers["Accept"] = "text/event-stream"

	f.client.OnConnect(func(_ *sse.Client) {
		f.logger.Info("Connected to lighting service, listening for changes...", "server", server)
	})
	f.client.OnDisconnect(func(_ *sse.Client) {
		f.logger.Info("Disconnected from lighting service change feed")
	})

	if err := f.client.SubscribeChan("", f.eventChannel); err != nil {
		return fmt.Errorf("error subscribing to %s%s: %w", server, f.path, err)
	}
	return nil
}

func (f *ChangeFeed) Unsubscribe() {
	if f.client == nil {
		return
	}
	f.logger.Debug("Unsubscribe change feed")
	f.client.Unsubscribe(f.eventChannel)
}
