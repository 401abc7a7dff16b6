package notify

import (
	"context"
	"fmt"
	"io"
	"log"
	"slices"
	"strings"
	"time"

	shoutrrr "github.com/nicholas-fedor/shoutrrr"
	router "github.com/nicholas-fedor/shoutrrr/pkg/router"
	stypes "github.com/nicholas-fedor/shoutrrr/pkg/types"
)

// ShoutrrrProvider sends via nicholas-fedor/shoutrrr.
// Creates a single sender for multiple URLs.
type ShoutrrrProvider struct {
	name    string
	enabled bool
	urls    []string
	types   map[string]bool
	sender  *router.ServiceRouter
	timeout time.Duration
}

// NewShoutrrrProvider creates a shoutrrr-backed push provider for the given
// service URLs.
func NewShoutrrrProvider(name string, enabled bool, urls, supportedTypes []string, timeout time.Duration) *ShoutrrrProvider {
	sp := &ShoutrrrProvider{
		name:    strings.TrimSpace(name),
		enabled: enabled,
		urls:    slices.Clone(urls),
		types:   map[string]bool{},
		timeout: timeout,
	}
	if sp.name == "" {
		sp.name = "shoutrrr"
	}
	if len(supportedTypes) == 0 {
		sp.types[string(TypeAlert)] = true
		sp.types[string(TypeInfo)] = true
		sp.types[string(TypeError)] = true
	} else {
		for _, t := range supportedTypes {
			sp.types[t] = true
		}
	}
	return sp
}

func (s *ShoutrrrProvider) GetName() string          { return s.name }
func (s *ShoutrrrProvider) IsEnabled() bool          { return s.enabled }
func (s *ShoutrrrProvider) SupportsType(t Type) bool { return s.types[string(t)] }

// ValidateConfig builds the sender and validates the configured URLs.
func (s *ShoutrrrProvider) ValidateConfig() error {
	if !s.enabled {
		return nil
	}
	if len(s.urls) == 0 {
		return fmt.Errorf("at least one URL is required")
	}
	sender, err := shoutrrr.CreateSender(s.urls...)
	if err != nil {
		return fmt.Errorf("invalid shoutrrr URL configuration: %w", err)
	}
	s.sender = sender
	if s.timeout > 0 {
		s.sender.Timeout = s.timeout
	}
	s.sender.SetLogger(log.New(io.Discard, "", 0))
	return nil
}

// Send delivers the notification to every configured URL.
func (s *ShoutrrrProvider) Send(ctx context.Context, n *Notification) error {
	if s.sender == nil {
		return fmt.Errorf("shoutrrr sender not initialized")
	}
	_ = ctx // router handles its own timeouts

	body := n.Message
	params := stypes.Params{}
	if n.Title != "" {
		params.SetTitle(n.Title)
	}
	errs := s.sender.Send(body, &params)
	for _, e := range errs {
		if e != nil {
			return fmt.Errorf("shoutrrr send failed: %w", e)
		}
	}
	return nil
}

// PushoverURL builds a shoutrrr service URL from raw Pushover credentials.
func PushoverURL(token, user string) string {
	return fmt.Sprintf("pushover://shoutrrr:%s@%s/", token, user)
}
