package logging

import (
	"fmt"
	"log"
	"sort"
	"strings"
)

// ConsolePublisher renders events as single lines through a standard logger.
type ConsolePublisher struct {
	logger  *log.Logger
	minimum Severity
}

// NewConsole constructs a console publisher that drops events below the
// minimum severity.
func NewConsole(logger *log.Logger, minimum Severity) *ConsolePublisher {
	if logger == nil {
		logger = log.Default()
	}
	return &ConsolePublisher{logger: logger, minimum: minimum}
}

// Publish renders one event line.
func (c *ConsolePublisher) Publish(event Event) {
	if event.Severity < c.minimum {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] tick=%d actor=%s/%s", event.Type, event.Tick, event.Actor.Kind, event.Actor.ID)
	for _, target := range event.Targets {
		fmt.Fprintf(&b, " target=%s/%s", target.Kind, target.ID)
	}
	if len(event.Extra) > 0 {
		keys := make([]string, 0, len(event.Extra))
		for k := range event.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, event.Extra[k])
		}
	}
	c.logger.Print(b.String())
}
