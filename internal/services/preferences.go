package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/common"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/logging"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/models"
)

// SettingsKey is the key/value entry holding the settings record.
const SettingsKey = "app_settings"

const (
	enablePrompt = "Enable biometric authentication"
	unlockPrompt = "Authenticate to access ManagerX"
)

// SettingsPatch lists the fields to change; nil fields are left as they are.
type SettingsPatch struct {
	Theme                *models.Theme
	BiometricEnabled     *bool
	NotificationsEnabled *bool
	AutoSaveInterval     *int
}

func (p SettingsPatch) apply(s models.AppSettings) models.AppSettings {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.BiometricEnabled != nil {
		s.BiometricEnabled = *p.BiometricEnabled
	}
	if p.NotificationsEnabled != nil {
		s.NotificationsEnabled = *p.NotificationsEnabled
	}
	if p.AutoSaveInterval != nil {
		s.AutoSaveInterval = *p.AutoSaveInterval
	}
	return s
}

// PreferencesService owns the installation-wide settings record and gates
// access behind the biometric challenge when enabled.
type PreferencesService struct {
	kv  KeyValueStore
	bio BiometricAuthenticator
	log logging.Logger

	op sync.Mutex

	mu       sync.RWMutex
	settings models.AppSettings
	loading  bool
	err      error
}

func NewPreferencesService(kv KeyValueStore, bio BiometricAuthenticator, logger logging.Logger) *PreferencesService {
	return &PreferencesService{
		kv:       kv,
		bio:      bio,
		log:      logger.With("component", "preferences"),
		settings: models.DefaultSettings(),
	}
}

// Init loads the stored settings.
func (p *PreferencesService) Init(ctx context.Context) {
	p.LoadSettings(ctx)
}

// Dispose resets the in-memory settings to defaults.
func (p *PreferencesService) Dispose() {
	p.op.Lock()
	defer p.op.Unlock()

	p.mu.Lock()
	p.settings, p.err, p.loading = models.DefaultSettings(), nil, false
	p.mu.Unlock()
}

func (p *PreferencesService) Settings() models.AppSettings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.settings
}

func (p *PreferencesService) IsLoading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

func (p *PreferencesService) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.err
}

func (p *PreferencesService) ClearError() {
	p.mu.Lock()
	p.err = nil
	p.mu.Unlock()
}

func (p *PreferencesService) fail(err error) {
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
}

// LoadSettings reads the stored record over the defaults. Keys missing from
// the record keep their default; unknown keys are ignored.
func (p *PreferencesService) LoadSettings(ctx context.Context) {
	p.op.Lock()
	defer p.op.Unlock()

	p.mu.Lock()
	p.loading, p.err = true, nil
	p.mu.Unlock()

	settings, err := p.read(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		p.log.Error(ctx, "failed to load settings", "error", err)
		p.err = fmt.Errorf("failed to load settings: %w", err)
		return
	}
	p.settings = settings
}

func (p *PreferencesService) read(ctx context.Context) (models.AppSettings, error) {
	settings := models.DefaultSettings()
	raw, err := p.kv.Get(ctx, SettingsKey)
	if err != nil || len(raw) == 0 {
		return settings, err
	}
	if err := json.Unmarshal(raw, &settings); err != nil {
		return models.DefaultSettings(), err
	}
	return settings, nil
}

// UpdateSettings merges patch into the current settings and persists the
// whole record. The in-memory settings change only when the write succeeds.
func (p *PreferencesService) UpdateSettings(ctx context.Context, patch SettingsPatch) {
	p.op.Lock()
	defer p.op.Unlock()
	p.update(ctx, patch)
}

func (p *PreferencesService) update(ctx context.Context, patch SettingsPatch) bool {
	next := patch.apply(p.Settings())

	raw, err := json.Marshal(next)
	if err == nil {
		err = p.kv.Set(ctx, SettingsKey, raw)
	}
	if err != nil {
		p.log.Error(ctx, "failed to update settings", "error", err)
		p.fail(fmt.Errorf("failed to update settings: %w", err))
		return false
	}

	p.mu.Lock()
	p.settings = next
	p.mu.Unlock()
	return true
}

// EnableBiometric turns on the biometric gate after checking the hardware,
// the enrollment and a successful challenge. It reports whether the gate is
// now enabled; on failure Err distinguishes the three cases with
// common.ErrBiometricUnavailable, common.ErrBiometricNotEnrolled and
// common.ErrBiometricFailed.
func (p *PreferencesService) EnableBiometric(ctx context.Context) bool {
	p.op.Lock()
	defer p.op.Unlock()

	if err := p.checkBiometric(ctx); err != nil {
		p.log.Warn(ctx, "biometric not enabled", "error", err)
		p.fail(err)
		return false
	}

	ok, err := p.bio.Authenticate(ctx, enablePrompt)
	if err != nil || !ok {
		if err != nil {
			err = fmt.Errorf("%w: %w", common.ErrBiometricFailed, err)
		} else {
			err = common.ErrBiometricFailed
		}
		p.fail(err)
		return false
	}

	on := true
	return p.update(ctx, SettingsPatch{BiometricEnabled: &on})
}

func (p *PreferencesService) checkBiometric(ctx context.Context) error {
	hasHardware, err := p.bio.HasHardware(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrBiometricUnavailable, err)
	}
	if !hasHardware {
		return common.ErrBiometricUnavailable
	}

	enrolled, err := p.bio.IsEnrolled(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrBiometricNotEnrolled, err)
	}
	if !enrolled {
		return common.ErrBiometricNotEnrolled
	}
	return nil
}

// DisableBiometric turns the gate off without a challenge.
func (p *PreferencesService) DisableBiometric(ctx context.Context) {
	p.op.Lock()
	defer p.op.Unlock()

	off := false
	p.update(ctx, SettingsPatch{BiometricEnabled: &off})
}

// AuthenticateWithBiometric runs the challenge when the gate is enabled and
// reports whether access is granted. With the gate off it grants access
// without prompting.
func (p *PreferencesService) AuthenticateWithBiometric(ctx context.Context) bool {
	p.op.Lock()
	defer p.op.Unlock()

	if !p.Settings().BiometricEnabled {
		return true
	}

	ok, err := p.bio.Authenticate(ctx, unlockPrompt)
	if err != nil {
		p.log.Warn(ctx, "biometric challenge failed", "error", err)
		p.fail(fmt.Errorf("%w: %w", common.ErrBiometricFailed, err))
		return false
	}
	return ok
}
