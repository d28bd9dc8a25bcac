package auth

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/common"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/models"
)

const (
	DemoEmail       = "demo@managex.com"
	DemoPassword    = "demo123"
	DemoUserID      = "demo-user-id"
	DemoDisplayName = "Demo User"
)

// DemoProvider implements Verifier and Registrar without a backend. Every call
// waits Latency first to behave like a remote provider.
type DemoProvider struct {
	Latency time.Duration
	Now     func() time.Time
}

func NewDemoProvider(latency time.Duration) *DemoProvider {
	return &DemoProvider{Latency: latency, Now: time.Now}
}

func (p *DemoProvider) wait(ctx context.Context) error {
	if p.Latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.Latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *DemoProvider) now() time.Time {
	if p.Now == nil {
		return models.Timestamp(time.Now())
	}
	return models.Timestamp(p.Now())
}

func (p *DemoProvider) Verify(ctx context.Context, email, password string) (*models.User, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(DemoEmail))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(DemoPassword))
	if emailOK&passOK != 1 {
		return nil, common.ErrInvalidCredentials
	}

	return &models.User{
		ID:          DemoUserID,
		Email:       email,
		DisplayName: DemoDisplayName,
		CreatedAt:   p.now(),
	}, nil
}

// Register accepts any input. When displayName is empty the local part of
// email is used.
func (p *DemoProvider) Register(ctx context.Context, email, password, displayName string) (*models.User, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	if displayName == "" {
		displayName, _, _ = strings.Cut(email, "@")
	}

	return &models.User{
		ID:          models.NewID(models.PrefixUser),
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   p.now(),
	}, nil
}
