package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"remotejobs-engine/internal/config"
)

const (
	// Groups this app's secrets in the OS keychain.
	KeyringService = "remotejobs"

	envSMTPPassword = "SMTP_PASSWORD"
)

// GetSMTPPassword checks the OS keyring first, then the SMTP_PASSWORD env var
// (for headless deployments without a keychain).
func GetSMTPPassword(keyringAccount string) (string, error) {
	if strings.TrimSpace(keyringAccount) != "" {
		pw, err := keyring.Get(KeyringService, keyringAccount)
		if err == nil && strings.TrimSpace(pw) != "" {
			return pw, nil
		}
	}
	if pw := strings.TrimSpace(os.Getenv(envSMTPPassword)); pw != "" {
		return pw, nil
	}
	return "", errors.New("SMTP password not found (set it in the keychain or via SMTP_PASSWORD)")
}

func SetSMTPPassword(keyringAccount string, password string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, password)
}

func DeleteSMTPPassword(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, keyringAccount)
}

func SMTPKeyringAccount(cfg config.Config) string {
	return fmt.Sprintf(
		"remotejobs:smtp:%s@%s",
		cfg.SMTP.Username,
		cfg.SMTP.Host,
	)
}
