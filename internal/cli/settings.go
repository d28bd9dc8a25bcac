package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/models"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/services"
)

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (c *CLI) ShowSettings(context.Context) error {
	s := c.app.Preferences.Settings()
	fmt.Fprintf(c.out, "theme:         %s\n", s.Theme)
	fmt.Fprintf(c.out, "biometric:     %s\n", onOff(s.BiometricEnabled))
	fmt.Fprintf(c.out, "notifications: %s\n", onOff(s.NotificationsEnabled))
	fmt.Fprintf(c.out, "autosave:      %dms\n", s.AutoSaveInterval)
	return nil
}

func (c *CLI) SetTheme(ctx context.Context, theme string) error {
	t := models.Theme(strings.ToLower(strings.TrimSpace(theme)))
	switch t {
	case models.ThemeLight, models.ThemeDark, models.ThemeSystem:
	default:
		return errors.New("usage: theme <light|dark|system>")
	}

	c.app.Preferences.UpdateSettings(ctx, services.SettingsPatch{Theme: &t})
	return takeErr(c.app.Preferences)
}

// SetBiometric turns the biometric gate on (after a challenge) or off.
func (c *CLI) SetBiometric(ctx context.Context, mode string) error {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "on":
		if !c.app.Preferences.EnableBiometric(ctx) {
			return takeErr(c.app.Preferences)
		}
		fmt.Fprintln(c.out, okColor.Sprint("Biometric lock enabled."))
	case "off":
		c.app.Preferences.DisableBiometric(ctx)
		if err := takeErr(c.app.Preferences); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Biometric lock disabled.")
	default:
		fmt.Fprintf(c.out, "biometric: %s\n", onOff(c.app.Preferences.Settings().BiometricEnabled))
	}
	return nil
}
