package routeros

import (
	"context"
	"fmt"
	"strings"
	"time"

	routeros "github.com/go-routeros/routeros/v3"
	"go.uber.org/zap"
)

// APIDialer opens sessions against a Mikrotik router over its binary API port.
type APIDialer struct {
	addr     string
	username string
	password string
	timeout  time.Duration
	logger   *zap.Logger
}

// NewAPIDialer creates a dialer for the given router address and credentials
func NewAPIDialer(addr, username, password string, timeout time.Duration, logger *zap.Logger) *APIDialer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &APIDialer{
		addr:     addr,
		username: username,
		password: password,
		timeout:  timeout,
		logger:   logger,
	}
}

// Open connects and authenticates one API session
func (d *APIDialer) Open(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client, err := routeros.DialTimeout(d.addr, d.username, d.password, d.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to router %s: %w", d.addr, err)
	}

	d.logger.Debug("router session opened", zap.String("addr", d.addr))
	return &apiSession{client: client, logger: d.logger}, nil
}

type apiSession struct {
	client *routeros.Client
	logger *zap.Logger
}

func (s *apiSession) CreateHotspotAccount(ctx context.Context, username, password, profileName, duration string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := s.client.Run(
		"/ip/hotspot/user/add",
		"=name="+username,
		"=password="+password,
		"=profile="+profileName,
		"=limit-uptime="+duration,
	)
	if err != nil {
		return fmt.Errorf("failed to create hotspot account %s: %w", username, err)
	}
	return nil
}

func (s *apiSession) RemoveHotspotAccount(ctx context.Context, username string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	reply, err := s.client.Run(
		"/ip/hotspot/user/print",
		"?name="+username,
		"=.proplist=.id",
	)
	if err != nil {
		return fmt.Errorf("failed to look up hotspot account %s: %w", username, err)
	}
	if len(reply.Re) == 0 {
		// Already gone; nothing to clean up.
		return nil
	}

	ids := make([]string, 0, len(reply.Re))
	for _, re := range reply.Re {
		if id, ok := re.Map[".id"]; ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	_, err = s.client.Run(
		"/ip/hotspot/user/remove",
		"=.id="+strings.Join(ids, ","),
	)
	if err != nil {
		return fmt.Errorf("failed to remove hotspot account %s: %w", username, err)
	}
	return nil
}

func (s *apiSession) Close() error {
	s.client.Close()
	return nil
}
