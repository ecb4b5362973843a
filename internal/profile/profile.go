package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"

	terrors "github.com/PolarWolf314/totara/internal/errors"
	"github.com/PolarWolf314/totara/internal/settings"

	"github.com/google/uuid"
)

// FileName is the settings file every totara profile persists to,
// normalized by the settings layer to profile.toml.
const FileName = "profile"

const defaultRetries = 3

// ProxyCredentials holds an optional upstream proxy. The password is
// encrypted at rest; host and username are stored as-is.
type ProxyCredentials struct {
	Host     string `toml:"host"`
	Username string `toml:"username"`
	Password string `toml:"password,omitempty" totara:"encrypted"`
}

// Settings is the totara user profile. It embeds settings.Document, so
// saving and loading runs through the encryption-aware persistence layer.
type Settings struct {
	settings.Document `toml:"-"`

	DeviceID string            `toml:"device_id"`
	Endpoint string            `toml:"endpoint"`
	APIToken string            `toml:"api_token,omitempty" totara:"encrypted"`
	Retries  int               `toml:"retries"`
	Proxy    *ProxyCredentials `toml:"proxy,omitempty"`
}

// DefaultDir returns the per-user profile directory, following the
// platform configuration-directory convention.
func DefaultDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config directory: %w", err)
	}
	return filepath.Join(configDir, "totara"), nil
}

// Load opens the profile stored under dir, creating defaults on first
// run. A first run also mints the device ID and persists it immediately.
func Load(dir string, opts ...settings.Option) (*Settings, error) {
	s := &Settings{Retries: defaultRetries}
	if err := settings.Init(s, dir, FileName, opts...); err != nil {
		return nil, err
	}

	if s.DeviceID == "" {
		s.DeviceID = uuid.New().String()
		if err := s.Save(); err != nil {
			return nil, err
		}
		// Save leaves encrypted fields as ciphertext in memory; reload so
		// the caller sees plaintext again.
		if err := s.Load(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Keys returns the profile keys addressable from the command line, sorted.
func (s *Settings) Keys() []string {
	var keys []string
	for _, fd := range settings.Fields(reflect.TypeOf(s)) {
		if scalarKind(fd.Type.Kind()) {
			keys = append(keys, fd.Key)
		}
	}
	sort.Strings(keys)
	return keys
}

// IsSecret reports whether the named key is stored encrypted.
func (s *Settings) IsSecret(key string) bool {
	fd, err := s.field(key)
	return err == nil && fd.Encrypted
}

// Get returns the named key's current value as a string.
func (s *Settings) Get(key string) (string, error) {
	fd, err := s.field(key)
	if err != nil {
		return "", err
	}

	v := reflect.ValueOf(s).Elem().Field(fd.Index)
	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	default:
		return "", fmt.Errorf("%w: %s", terrors.ErrUnsupportedKey, key)
	}
}

// Set parses value into the named key's declared type and assigns it. The
// caller still has to save the profile.
func (s *Settings) Set(key, value string) error {
	fd, err := s.field(key)
	if err != nil {
		return err
	}

	v := reflect.ValueOf(s).Elem().Field(fd.Index)
	switch v.Kind() {
	case reflect.String:
		v.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%s expects an integer: %w", key, err)
		}
		v.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s expects a boolean: %w", key, err)
		}
		v.SetBool(b)
	default:
		return fmt.Errorf("%w: %s", terrors.ErrUnsupportedKey, key)
	}
	return nil
}

func (s *Settings) field(key string) (settings.FieldDescriptor, error) {
	for _, fd := range settings.Fields(reflect.TypeOf(s)) {
		if strings.EqualFold(fd.Key, key) {
			if !scalarKind(fd.Type.Kind()) {
				return settings.FieldDescriptor{}, fmt.Errorf("%w: %s", terrors.ErrUnsupportedKey, key)
			}
			return fd, nil
		}
	}
	return settings.FieldDescriptor{}, fmt.Errorf("%w: %s", terrors.ErrUnknownKey, key)
}

func scalarKind(k reflect.Kind) bool {
	switch k {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}
