package credstore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/crypto/argon2"
)

const (
	saltLen  = 16
	nonceLen = 12
)

// File is a CredentialStore persisted as a single encrypted file.
// The whole key-value map is serialized to JSON and sealed with AES-256-GCM
// under a key derived from the passphrase via argon2id. Salt and nonce are
// regenerated on every write, file mode is 0600.
type File struct {
	mu         sync.Mutex
	path       string
	passphrase []byte
}

// NewFile returns a file store at path, keyed by passphrase.
func NewFile(path string, passphrase []byte) *File {
	return &File{path: path, passphrase: passphrase}
}

func (f *File) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}
	values[key] = value
	return f.save(values)
}

func (f *File) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}
	delete(values, key)
	return f.save(values)
}

func (f *File) load() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credential file: %w", err)
	}
	if len(raw) < saltLen+nonceLen {
		return nil, errors.New("credential file truncated")
	}

	salt := raw[:saltLen]
	nonce := raw[saltLen : saltLen+nonceLen]
	ciphertext := raw[saltLen+nonceLen:]

	gcm, err := f.aead(salt)
	if err != nil {
		return nil, err
	}
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt credential file: %w", err)
	}

	values := map[string]string{}
	if err := json.Unmarshal(plaintext, &values); err != nil {
		return nil, fmt.Errorf("parse credential file: %w", err)
	}
	return values, nil
}

func (f *File) save(values map[string]string) error {
	plaintext, err := json.Marshal(values)
	if err != nil {
		return err
	}

	buf := make([]byte, saltLen+nonceLen)
	if _, err := rand.Read(buf); err != nil {
		return err
	}
	salt := buf[:saltLen]
	nonce := buf[saltLen:]

	gcm, err := f.aead(salt)
	if err != nil {
		return err
	}
	sealed := gcm.Seal(nil, nonce, plaintext, nil)

	out := append(append(append([]byte{}, salt...), nonce...), sealed...)
	return os.WriteFile(f.path, out, 0o600)
}

func (f *File) aead(salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(f.passphrase, salt, 1, 64*1024, 4, 32)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
