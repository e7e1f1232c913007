package session

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/dmitrymomot/httpkit/pkg/logger"
)

const (
	// MinSecretLength is the shortest secret accepted by NewCookieStorage.
	MinSecretLength = 32
	// MaxCookiePayload is the largest sealed payload CookieStorage will emit.
	MaxCookiePayload = 4000
)

type cookieEnvelope struct {
	Expires int64           `json:"e,omitempty"`
	Data    json.RawMessage `json:"d"`
}

// CookieStorage keeps the whole session in the session cookie. The data is
// sealed with XChaCha20-Poly1305; the sealed payload is the session id, so a
// new id is produced by every Save. Nothing is stored server side and
// concurrent requests of one client are not serialized.
type CookieStorage struct {
	aead    cipher.AEAD
	ttl     time.Duration
	opts    storageOptions
	id      string
	name    string
	started bool
	data    *Data
}

// NewCookieStorage creates a storage sealing data with a key derived from
// secret. Sealed data older than ttl is ignored; zero ttl disables the check.
func NewCookieStorage(secret string, ttl time.Duration, opts ...StorageOption) (*CookieStorage, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrInvalidSecret
	}
	key := sha256.Sum256([]byte(secret))
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, errors.Join(ErrInvalidSecret, err)
	}
	o := newStorageOptions(opts)
	return &CookieStorage{aead: aead, ttl: ttl, opts: o, name: o.name}, nil
}

// Start opens the session with the data sealed in the id. A missing,
// tampered or expired payload starts an empty session. Always succeeds.
func (s *CookieStorage) Start(ctx context.Context) bool {
	if s.started {
		return true
	}
	s.data = NewData()
	if s.id != "" {
		data, err := s.open(s.id, time.Now())
		if err != nil {
			s.opts.logger.DebugContext(ctx, "session cookie rejected",
				logger.Backend("cookie"),
				logger.Error(err),
			)
			s.id = ""
		} else {
			s.data = data
		}
	}
	s.started = true
	return true
}

func (s *CookieStorage) IsStarted() bool { return s.started }

func (s *CookieStorage) ID() string { return s.id }

func (s *CookieStorage) SetID(id string) { s.id = id }

func (s *CookieStorage) Name() string { return s.name }

func (s *CookieStorage) SetName(name string) { s.name = name }

// Save seals the data into a new id and closes the session. The session is
// closed even when sealing fails; the id is left unchanged in that case.
func (s *CookieStorage) Save(context.Context) error {
	if !s.started {
		return nil
	}
	s.started = false

	payload, err := s.seal(s.data, time.Now())
	if err != nil {
		return err
	}
	if len(payload) > MaxCookiePayload {
		return ErrPayloadTooLarge
	}
	s.id = payload
	return nil
}

func (s *CookieStorage) Clear() {
	s.Collection().Clear()
}

func (s *CookieStorage) Collection() *Data {
	if s.data == nil {
		s.data = NewData()
	}
	return s.data
}

func (s *CookieStorage) seal(data *Data, now time.Time) (string, error) {
	raw, err := encodeData(data)
	if err != nil {
		return "", errors.Join(ErrInvalidPayload, err)
	}
	env := cookieEnvelope{Data: raw}
	if s.ttl > 0 {
		env.Expires = now.Add(s.ttl).Unix()
	}
	plain, err := json.Marshal(env)
	if err != nil {
		return "", errors.Join(ErrInvalidPayload, err)
	}

	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plain)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", errors.Join(ErrInvalidPayload, err)
	}
	sealed := s.aead.Seal(nonce, nonce, plain, []byte(s.name))
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (s *CookieStorage) open(payload string, now time.Time) (*Data, error) {
	sealed, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}
	ns := s.aead.NonceSize()
	if len(sealed) < ns+s.aead.Overhead() {
		return nil, ErrInvalidPayload
	}
	plain, err := s.aead.Open(nil, sealed[:ns], sealed[ns:], []byte(s.name))
	if err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}

	var env cookieEnvelope
	if err := json.Unmarshal(plain, &env); err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}
	if env.Expires > 0 && now.Unix() > env.Expires {
		return nil, ErrInvalidPayload
	}
	return decodeData(env.Data)
}
